package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func TestFilter(t *testing.T) {
	items := []Item{
		{ID: "1", Name: "Portal 2"},
		{ID: "2", Name: "Grand Theft Auto V"},
		{ID: "3", Name: "Portal"},
		{ID: "4", Name: "Pokémon Legends"},
	}

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"blank matches all", "", []string{"Portal 2", "Grand Theft Auto V", "Portal", "Pokémon Legends"}},
		{"whitespace matches all", "   ", []string{"Portal 2", "Grand Theft Auto V", "Portal", "Pokémon Legends"}},
		{"case insensitive", "PORTAL", []string{"Portal 2", "Portal"}},
		{"substring", "theft", []string{"Grand Theft Auto V"}},
		{"accented", "POKÉMON", []string{"Pokémon Legends"}},
		{"no match", "zelda", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Filter(items, tt.term)))
		})
	}
}

func TestFilter_DoesNotAliasInput(t *testing.T) {
	items := []Item{{ID: "1", Name: "Portal"}}
	out := Filter(items, "")
	out[0].Name = "changed"
	assert.Equal(t, "Portal", items[0].Name)
}

func TestDescribe(t *testing.T) {
	score := 96
	it := Item{
		ID:         "4200",
		Name:       "Portal 2",
		Released:   "2011-04-18",
		Rating:     4.61,
		Metacritic: &score,
		Genres:     []Genre{{Name: "Shooter"}, {Name: "Puzzle"}},
		Platforms: []PlatformEntry{
			{Platform: Platform{Name: "PC"}},
			{Platform: Platform{Name: "Xbox 360"}},
		},
	}

	d := Describe(it)
	assert.Equal(t, "4.61 / 5", d.Rating)
	assert.Equal(t, "96", d.Metacritic)
	assert.Equal(t, "Shooter, Puzzle", d.Genres)
	assert.Equal(t, "PC, Xbox 360", d.Platforms)
}

func TestDescribe_MissingMetacritic(t *testing.T) {
	zero := 0
	assert.Equal(t, "N/A", Describe(Item{ID: "1"}).Metacritic)
	assert.Equal(t, "N/A", Describe(Item{ID: "1", Metacritic: &zero}).Metacritic)
	assert.Equal(t, "", Describe(Item{ID: "1"}).Genres)
}
