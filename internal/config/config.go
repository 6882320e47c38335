package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/KovyD20/Video-games-database-project/internal/scroll"
	"github.com/KovyD20/Video-games-database-project/internal/source"
)

//go:embed schema.cue
var schemaCUE string

// Config holds every runtime setting.
type Config struct {
	// APIKey is the catalog API key. Required for fetching.
	APIKey string `yaml:"api_key" json:"api_key"`

	// BaseURL is the catalog API root.
	BaseURL string `yaml:"base_url" json:"base_url"`

	// Database is the SQLite file holding the session and reviews.
	Database string `yaml:"database" json:"database"`

	// ScrollThreshold is the near-bottom distance in viewport units.
	ScrollThreshold float64 `yaml:"scroll_threshold" json:"scroll_threshold"`

	// ScrollRate bounds scroll triggers to one per interval ("250ms").
	// Empty or "0s" disables the bound.
	ScrollRate string `yaml:"scroll_rate" json:"scroll_rate"`

	// HTTPTimeout is the per-request timeout for the catalog API ("15s").
	HTTPTimeout string `yaml:"http_timeout" json:"http_timeout"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BaseURL:         source.DefaultBaseURL,
		Database:        "gamesdb.db",
		ScrollThreshold: scroll.DefaultThreshold,
		HTTPTimeout:     "15s",
	}
}

// Load returns Default() overlaid with the file at path. Fields the file
// does not mention keep their defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = decodeYAML(data, &cfg)
	case ".cue":
		err = decodeCUE(data, path, &cfg)
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// decodeCUE evaluates a CUE file and decodes its concrete JSON form.
func decodeCUE(data []byte, path string, cfg *Config) error {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return err
	}
	raw, err := v.MarshalJSON()
	if err != nil {
		return err
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	return decoder.Decode(cfg)
}

// Validate checks cfg against the #Config schema and parses its durations.
func (c Config) Validate() error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	v := def.Unify(ctx.Encode(c))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if _, err := c.ScrollInterval(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Timeout(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ScrollInterval parses ScrollRate. Empty means zero.
func (c Config) ScrollInterval() (time.Duration, error) {
	return parseDuration("scroll_rate", c.ScrollRate)
}

// Timeout parses HTTPTimeout. Empty means zero (no timeout).
func (c Config) Timeout() (time.Duration, error) {
	return parseDuration("http_timeout", c.HTTPTimeout)
}

func parseDuration(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative", field)
	}
	return d, nil
}
