package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vmunix/episoder/internal/config"
	"github.com/vmunix/episoder/internal/openlist"
)

type batchCall struct {
	SrcDir        string                  `json:"src_dir"`
	RenameObjects []openlist.RenameObject `json:"rename_objects"`
}

type renameCall struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// fakeOpenList is an in-memory OpenList server. Renames are applied to
// its directory listings.
type fakeOpenList struct {
	t        *testing.T
	user     string
	password string
	token    string

	mu      sync.Mutex
	dirs    map[string][]openlist.Object
	logins  int
	batches []batchCall
	renames []renameCall
}

func newFakeOpenList(t *testing.T, dirs map[string][]openlist.Object) *fakeOpenList {
	t.Helper()
	return &fakeOpenList{
		t:        t,
		user:     "alice",
		password: "secret",
		token:    "tok-1",
		dirs:     dirs,
	}
}

// Build creates and returns the httptest.Server.
// The server is closed when the test ends.
func (f *fakeOpenList) Build() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", f.handleLogin)
	mux.HandleFunc("/api/me", f.authed(f.handleMe))
	mux.HandleFunc("/api/fs/list", f.authed(f.handleList))
	mux.HandleFunc("/api/fs/batch_rename", f.authed(f.handleBatchRename))
	mux.HandleFunc("/api/fs/rename", f.authed(f.handleRename))

	srv := httptest.NewServer(mux)
	f.t.Cleanup(srv.Close)
	return srv
}

func (f *fakeOpenList) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != f.token {
			respondEnvelope(f.t, w, 401, "token is invalidated", nil)
			return
		}
		next(w, r)
	}
}

func (f *fakeOpenList) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	assert.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))

	if req.Username != f.user || req.Password != f.password {
		respondEnvelope(f.t, w, 400, "password is incorrect", nil)
		return
	}

	f.mu.Lock()
	f.logins++
	f.mu.Unlock()
	respondEnvelope(f.t, w, 200, "success", map[string]string{"token": f.token})
}

func (f *fakeOpenList) handleMe(w http.ResponseWriter, _ *http.Request) {
	respondEnvelope(f.t, w, 200, "success", map[string]any{"id": 1, "username": f.user})
}

func (f *fakeOpenList) handleList(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	assert.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))

	f.mu.Lock()
	objs, ok := f.dirs[req.Path]
	f.mu.Unlock()
	if !ok {
		respondEnvelope(f.t, w, 500, "object not found", nil)
		return
	}
	respondEnvelope(f.t, w, 200, "success", map[string]any{"content": objs, "total": len(objs)})
}

func (f *fakeOpenList) handleBatchRename(w http.ResponseWriter, r *http.Request) {
	var req batchCall
	assert.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))

	f.mu.Lock()
	f.batches = append(f.batches, req)
	for _, o := range req.RenameObjects {
		f.renameLocked(req.SrcDir, o.SrcName, o.NewName)
	}
	f.mu.Unlock()
	respondEnvelope(f.t, w, 200, "success", nil)
}

func (f *fakeOpenList) handleRename(w http.ResponseWriter, r *http.Request) {
	var req renameCall
	assert.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))

	f.mu.Lock()
	f.renames = append(f.renames, req)
	f.renameLocked(path.Dir(req.Path), path.Base(req.Path), req.Name)
	f.mu.Unlock()
	respondEnvelope(f.t, w, 200, "success", nil)
}

func (f *fakeOpenList) renameLocked(dir, from, to string) {
	for i, o := range f.dirs[dir] {
		if o.Name == from {
			f.dirs[dir][i].Name = to
		}
	}
}

func (f *fakeOpenList) names(dir string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, o := range f.dirs[dir] {
		out = append(out, o.Name)
	}
	return out
}

// respondJSON writes a JSON response with proper content-type header.
// Fails the test if JSON encoding fails instead of silently ignoring.
func respondJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("failed to encode JSON response: %v", err)
	}
}

func respondEnvelope(t *testing.T, w http.ResponseWriter, code int, message string, data any) {
	t.Helper()
	respondJSON(t, w, map[string]any{"code": code, "message": message, "data": data})
}

// newTestApp returns an app talking to srvURL as alice, with its output
// captured.
func newTestApp(t *testing.T, srvURL string) (*app, *bytes.Buffer) {
	t.Helper()

	cfg := config.Default()
	cfg.Server.URL = srvURL
	cfg.Server.Username = "alice"
	cfg.Server.Password = "secret"
	cfg.Auth.TokenFile = filepath.Join(t.TempDir(), "token")

	log := newLogger(io.Discard, "error")
	out := &bytes.Buffer{}
	return &app{
		cfg:    cfg,
		log:    log,
		client: openlist.New(srvURL, openlist.WithLogger(log)),
		tokens: openlist.TokenStore{Path: cfg.Auth.TokenFile},
		out:    out,
	}, out
}

// withInput feeds input to the prompts for the rest of the test.
func withInput(t *testing.T, input string) {
	t.Helper()
	oldIn, oldOut, oldTerm := stdin, promptOut, isTerminal
	stdin = bufio.NewReader(strings.NewReader(input))
	promptOut = io.Discard
	isTerminal = func() bool { return false }
	t.Cleanup(func() {
		stdin, promptOut, isTerminal = oldIn, oldOut, oldTerm
	})
}

// withJSON turns on --json for the rest of the test.
func withJSON(t *testing.T) {
	t.Helper()
	old := jsonOutput
	jsonOutput = true
	t.Cleanup(func() { jsonOutput = old })
}

func showDir() map[string][]openlist.Object {
	return map[string][]openlist.Object{
		"/tv/Show": {
			{Name: "Extras", IsDir: true},
			{Name: "Show 1x01.mkv", Size: 1 << 30},
			{Name: "Show 1x02.mkv", Size: 1 << 30},
			{Name: "notes.txt", Size: 12},
		},
		"/tv/Empty": {},
	}
}

func (f *fakeOpenList) batchCalls() []batchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]batchCall(nil), f.batches...)
}

func (f *fakeOpenList) renameCalls() []renameCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]renameCall(nil), f.renames...)
}

func (f *fakeOpenList) loginCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logins
}
