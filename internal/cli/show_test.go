package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KovyD20/Video-games-database-project/internal/review"
)

func TestShow_Detail(t *testing.T) {
	env := newTestEnv(t)

	res := env.run("show", "1")
	require.NoError(t, res.err, res.stdout)

	assert.Equal(t, `The Witcher 3: Wild Hunt
Released:   2015-05-18
Rating:     4.66 / 5
Metacritic: 92
Genres:     Action, RPG
Platforms:  PC, PlayStation 4

No reviews yet.
`, res.stdout)
	assert.Len(t, env.catalog.Requests(), 1)
}

func TestShow_MissingMetacriticAndReviews(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.runWith("register", "--email", "b@x.com", "--password", "p", "--username", "bob").err)
	require.NoError(t, env.runWith("review", "add", "4", "Tough but fair", "--rating", "4").err)

	res := env.run("--format", "json", "show", "4")
	require.NoError(t, res.err, res.stdout)

	var out ShowResult
	decodeResponse(t, res.stdout, &out)
	assert.Equal(t, "Hollow Knight", out.Item.Name)
	assert.Equal(t, "4.4 / 5", out.Item.Rating)
	assert.Equal(t, []review.Review{{Author: "bob", Text: "Tough but fair", Rating: 4}}, out.Reviews)
	assert.Len(t, env.catalog.Requests(), 2, "loads pages until the item appears")

	res = env.run("--format", "json", "show", "3")
	require.NoError(t, res.err)
	decodeResponse(t, res.stdout, &out)
	assert.Equal(t, "N/A", out.Item.Metacritic)
}

func TestShow_NotFound(t *testing.T) {
	env := newTestEnv(t)

	res := env.run("show", "999", "--pages", "10")
	require.Error(t, res.err)
	assert.Equal(t, ExitFailure, GetExitCode(res.err))
	assert.Contains(t, res.stdout, "Error [E008]")
	assert.Len(t, env.catalog.Requests(), 3, "stops at the end of the catalog")
}
