package web_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dasdy/keyview/db"
	"github.com/dasdy/keyview/keylog"
	"github.com/dasdy/keyview/viewer"
	"github.com/dasdy/keyview/web"
	"github.com/dasdy/keyview/web/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, name string) string {
	t.Helper()

	content, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	return string(content)
}

func newTestServer(t *testing.T, dev bool) (*httptest.Server, *viewer.State) {
	t.Helper()

	storage, err := db.NewMemoryStorage()
	require.NoError(t, err)

	tracker := db.NewChordTracker(2)
	state := viewer.New()
	state.OnChange(keylog.Recorder(storage, tracker, nil))

	handler := &routes.ServerHandler{State: state, Storage: storage, Tracker: tracker}
	server := httptest.NewServer(web.BuildServer(handler, dev))

	t.Cleanup(func() {
		server.Close()
		state.Close()
		storage.Close()
	})

	return server, state
}

func post(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	content, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", strings.NewReader(string(content)))
	require.NoError(t, err)

	return resp
}

func TestServerRoundTrip(t *testing.T) {
	server, state := newTestServer(t, false)

	resp := post(t, server.URL+"/api/layout", routes.LoadRequest{
		Name:      "info",
		Positions: readFile(t, "info.json"),
		Keymap:    readFile(t, "board.keymap"),
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, state.Layout())
	assert.Len(t, state.Layout().Keys, 4)

	resp = post(t, server.URL+"/api/events", []map[string]any{
		{"type": "key", "key": "Shift", "pressed": true},
		{"type": "key", "key": "q", "pressed": true},
		{"type": "key", "key": "q", "pressed": false},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.True(t, state.Pressed("SHIFT"))
	assert.False(t, state.Pressed("Q"))

	resp, err := http.Get(server.URL + "/api/log")
	require.NoError(t, err)
	defer resp.Body.Close()

	var log routes.LogResponse

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&log))
	assert.Len(t, log.Recent, 3)
	assert.Len(t, log.Counts, 2)

	resp, err = http.Get(server.URL + "/?width=800&height=400")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServerRoutes(t *testing.T) {
	server, _ := newTestServer(t, true)

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))

	resp, err = http.Get(server.URL + "/api/layout")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(server.URL + "/api/events")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Get(server.URL + "/missing")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
