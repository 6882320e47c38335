package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KovyD20/Video-games-database-project/internal/app"
	"github.com/KovyD20/Video-games-database-project/internal/testutil"
)

const testAPIKey = "test-key"

// catalogPages is what the fake catalog API serves, page by page.
var catalogPages = map[int][]string{
	1: {
		`{"id": 1, "name": "The Witcher 3: Wild Hunt", "released": "2015-05-18", "rating": 4.66, "metacritic": 92,
		  "genres": [{"name": "Action"}, {"name": "RPG"}],
		  "platforms": [{"platform": {"name": "PC"}}, {"platform": {"name": "PlayStation 4"}}]}`,
		`{"id": 2, "name": "Portal 2", "released": "2011-04-18", "rating": 4.61, "metacritic": 95}`,
		`{"id": 3, "name": "Tetris", "released": "1984-06-06", "rating": 4, "metacritic": null}`,
	},
	2: {
		`{"id": 3, "name": "Tetris", "released": "1984-06-06", "rating": 4, "metacritic": null}`,
		`{"id": 4, "name": "Hollow Knight", "released": "2017-02-24", "rating": 4.4, "metacritic": 87}`,
	},
}

// fakeCatalog serves catalogPages and records the query of every request.
type fakeCatalog struct {
	*httptest.Server
	mu       sync.Mutex
	requests []map[string]string
	status   int
}

func newFakeCatalog(t *testing.T) *fakeCatalog {
	t.Helper()
	fc := &fakeCatalog{}
	fc.Server = httptest.NewServer(http.HandlerFunc(fc.serve))
	t.Cleanup(fc.Close)
	return fc
}

func (fc *fakeCatalog) serve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fc.mu.Lock()
	fc.requests = append(fc.requests, map[string]string{
		"key":       q.Get("key"),
		"page":      q.Get("page"),
		"page_size": q.Get("page_size"),
	})
	status := fc.status
	fc.mu.Unlock()

	if status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}
	if r.URL.Path != "/games" || q.Get("key") != testAPIKey {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	page, _ := strconv.Atoi(q.Get("page"))
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"count": 4, "results": [` + strings.Join(catalogPages[page], ",") + `]}`))
}

func (fc *fakeCatalog) setStatus(status int) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.status = status
}

func (fc *fakeCatalog) Requests() []map[string]string {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	out := make([]map[string]string, len(fc.requests))
	copy(out, fc.requests)
	return out
}

// testEnv runs CLI invocations against one database and fake catalog.
type testEnv struct {
	t       *testing.T
	db      string
	envFile string
	catalog *fakeCatalog
	ids     *testutil.SequenceIDGenerator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, nil, 0o644))

	t.Setenv("RAWG_API_KEY", "")
	t.Setenv("VITE_RAWG_API_KEY", "")

	return &testEnv{
		t:       t,
		db:      filepath.Join(dir, "gamesdb.db"),
		envFile: envFile,
		catalog: newFakeCatalog(t),
		ids:     testutil.NewSequenceIDGenerator("user"),
	}
}

type runResult struct {
	stdout string
	stderr string
	err    error
}

// run executes the root command with the test database, catalog and key.
func (e *testEnv) run(args ...string) runResult {
	return e.runWith(append([]string{"--api-key", testAPIKey}, args...)...)
}

// runWith executes the root command without supplying an API key.
func (e *testEnv) runWith(args ...string) runResult {
	e.t.Helper()

	opts := &RootOptions{
		AppOptions: []app.Option{app.WithIDGenerator(e.ids)},
	}
	cmd := NewRootCommandWithOptions(opts)

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(append([]string{
		"--db", e.db,
		"--env-file", e.envFile,
		"--base-url", e.catalog.URL,
	}, args...))

	err := cmd.Execute()
	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// jsonResponse decodes a --format json response, keeping data raw.
type jsonResponse struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *CLIError       `json:"error"`
}

func decodeResponse(t *testing.T, out string, data any) jsonResponse {
	t.Helper()
	var resp jsonResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
	if data != nil && resp.Data != nil {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return resp
}
