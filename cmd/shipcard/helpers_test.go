package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-shipcard/internal/config"
	"github.com/alnah/go-shipcard/internal/snapshot"
)

const validCard = `---
title: CLI Card
summary: Rendered from the command line
hero: ./hero.png
tags: [go, cli]
---
## Usage

Run [it](https://example.com).
`

// syncBuffer is a bytes.Buffer safe for concurrent writes and reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// mockSnapshotter records captures instead of starting a browser.
type mockSnapshotter struct {
	mu     sync.Mutex
	opts   []snapshot.Options
	err    error
	closed bool
}

func (m *mockSnapshotter) Capture(_ context.Context, html string, opts snapshot.Options) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opts = append(m.opts, opts)
	if m.err != nil {
		return nil, m.err
	}
	return []byte(fmt.Sprintf("%s:%d", opts.Format, len(html))), nil
}

func (m *mockSnapshotter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

type testIO struct {
	env    *Environment
	stdout *syncBuffer
	stderr *syncBuffer
	snap   *mockSnapshotter
}

// newTestEnv returns an environment with captured output, no process
// environment and a mock browser.
func newTestEnv(t *testing.T) *testIO {
	t.Helper()
	tio := &testIO{stdout: &syncBuffer{}, stderr: &syncBuffer{}, snap: &mockSnapshotter{}}
	tio.env = &Environment{
		Now:            time.Now,
		Stdout:         tio.stdout,
		Stderr:         tio.stderr,
		Stdin:          strings.NewReader(""),
		Getenv:         func(string) string { return "" },
		NewSnapshotter: func(config.SnapshotConfig) Snapshotter { return tio.snap },
	}
	return tio
}

// writeFile writes content under a temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// fakeGitHub serves a repository API and raw host for one card.
func fakeGitHub(t *testing.T, card string, cardStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/repos/{owner}/{repo}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"default_branch":"trunk","stargazers_count":42,"license":{"spdx_id":"MIT"}}`)
	})
	mux.HandleFunc("/raw/", func(w http.ResponseWriter, r *http.Request) {
		if cardStatus != 0 {
			w.WriteHeader(cardStatus)
			return
		}
		if !strings.HasSuffix(r.URL.Path, "/trunk/.ishipped/card.md") {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, card)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// githubConfig writes a config file pointing the client at srv.
func githubConfig(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	return writeFile(t, "shipcard.yaml", fmt.Sprintf(`github:
  apiBaseURL: %s/api
  rawBaseURL: %s/raw
log:
  level: none
`, srv.URL, srv.URL))
}
