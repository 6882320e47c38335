package catalog

import (
	"strconv"
	"strings"
)

// Detail is the display form of a single item.
type Detail struct {
	ID         ID     `json:"id"`
	Name       string `json:"name"`
	ImageURL   string `json:"image_url"`
	Released   string `json:"released"`
	Rating     string `json:"rating"`
	Metacritic string `json:"metacritic"`
	Genres     string `json:"genres"`
	Platforms  string `json:"platforms"`
}

// Describe renders it for a detail view. A missing metacritic score
// shows as "N/A".
func Describe(it Item) Detail {
	metacritic := "N/A"
	if it.Metacritic != nil && *it.Metacritic != 0 {
		metacritic = strconv.Itoa(*it.Metacritic)
	}

	genres := make([]string, 0, len(it.Genres))
	for _, g := range it.Genres {
		genres = append(genres, g.Name)
	}
	platforms := make([]string, 0, len(it.Platforms))
	for _, p := range it.Platforms {
		platforms = append(platforms, p.Platform.Name)
	}

	return Detail{
		ID:         it.ID,
		Name:       it.Name,
		ImageURL:   it.ImageURL,
		Released:   it.Released,
		Rating:     strconv.FormatFloat(it.Rating, 'f', -1, 64) + " / 5",
		Metacritic: metacritic,
		Genres:     strings.Join(genres, ", "),
		Platforms:  strings.Join(platforms, ", "),
	}
}
