package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KovyD20/Video-games-database-project/internal/catalog"
)

// PageScript describes what a scripted source serves, page by page.
//
// Example:
//
//	name: overlap
//	pages:
//	  - page: 1
//	    range: [1, 24]
//	  - page: 2
//	    error: "connection reset"
//	  - page: 2
//	    range: [20, 43]
//
// Steps for the same page are applied in order: errors are returned one
// per request before the page's items are served. Pages not listed are
// empty.
type PageScript struct {
	// Name identifies the script; it is also the golden file name.
	Name string `yaml:"name"`

	// Description explains what the script exercises.
	Description string `yaml:"description,omitempty"`

	// Pages lists the scripted steps.
	Pages []PageStep `yaml:"pages"`
}

// PageStep scripts one page response.
type PageStep struct {
	// Page is the 1-based page number.
	Page int `yaml:"page"`

	// IDs lists explicit item ids.
	IDs []string `yaml:"ids,omitempty"`

	// Range is an inclusive [from, to] span of numeric ids.
	Range []int `yaml:"range,omitempty"`

	// Error, if set, makes this step a failed request.
	Error string `yaml:"error,omitempty"`
}

// LoadPageScript reads and validates a page script YAML file.
// Unknown fields are rejected.
func LoadPageScript(path string) (*PageScript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page script: %w", err)
	}

	var script PageScript
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&script); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := script.validate(); err != nil {
		return nil, fmt.Errorf("invalid page script: %w", err)
	}
	return &script, nil
}

func (p *PageScript) validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	for i, step := range p.Pages {
		if step.Page < 1 {
			return fmt.Errorf("pages[%d]: page must be >= 1", i)
		}
		set := 0
		if step.IDs != nil {
			set++
		}
		if step.Range != nil {
			set++
			if len(step.Range) != 2 || step.Range[0] > step.Range[1] {
				return fmt.Errorf("pages[%d]: range must be [from, to] with from <= to", i)
			}
		}
		if step.Error != "" {
			set++
		}
		if set > 1 {
			return fmt.Errorf("pages[%d]: ids, range and error are mutually exclusive", i)
		}
	}
	return nil
}

// Source builds a ScriptedSource serving this script.
func (p *PageScript) Source() *ScriptedSource {
	src := NewScriptedSource()
	for _, step := range p.Pages {
		switch {
		case step.Error != "":
			src.FailPage(step.Page, errors.New(step.Error))
		case step.Range != nil:
			src.SetPage(step.Page, ItemRange(step.Range[0], step.Range[1]))
		default:
			items := make([]catalog.Item, 0, len(step.IDs))
			for _, id := range step.IDs {
				items = append(items, catalog.Item{ID: catalog.ID(id), Name: "Game " + id})
			}
			src.SetPage(step.Page, items)
		}
	}
	return src
}
