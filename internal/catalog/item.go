package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ID identifies an item. Numeric and string wire forms compare equal
// when their text is equal ("7" and 7 are the same item).
type ID string

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return errors.New("catalog: item id is null")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("catalog: item id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("catalog: item id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes IDs in canonical integer form ("7", "-3") back as
// numbers and quotes everything else, including "007" and "+5".
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// String returns the canonical text form.
func (id ID) String() string {
	return string(id)
}

// Genre is a named genre tag.
type Genre struct {
	Name string `json:"name"`
}

// Platform names a gaming platform.
type Platform struct {
	Name string `json:"name"`
}

// PlatformEntry wraps a platform the way the API nests it.
type PlatformEntry struct {
	Platform Platform `json:"platform"`
}

// Item is one catalog entry as returned by the remote source.
type Item struct {
	ID         ID              `json:"id"`
	Name       string          `json:"name"`
	ImageURL   string          `json:"background_image"`
	Released   string          `json:"released"`
	Rating     float64         `json:"rating"`
	Metacritic *int            `json:"metacritic"`
	Genres     []Genre         `json:"genres"`
	Platforms  []PlatformEntry `json:"platforms"`
}
