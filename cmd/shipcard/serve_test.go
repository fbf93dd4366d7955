package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"
)

// freeAddr returns a loopback address nothing is listening on.
func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	l.Close()
	return addr
}

// ---------------------------------------------------------------------------
// TestServe - Start, answer health checks, stop on cancel
// ---------------------------------------------------------------------------

func TestServe(t *testing.T) {
	t.Parallel()

	tio := newTestEnv(t)
	addr := freeAddr(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- runServeCmd(ctx, []string{"-q", "--addr", addr}, tio.env)
	}()

	url := fmt.Sprintf("http://%s/health/live", addr)
	ok := waitFor(t, 3*time.Second, func() bool {
		resp, err := http.Get(url) // #nosec G107 -- test server
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	})
	if !ok {
		t.Fatalf("server never became healthy, stderr: %s", tio.stderr.String())
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runServeCmd() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServe_BadAssets(t *testing.T) {
	t.Parallel()

	tio := newTestEnv(t)
	cfg := writeFile(t, "shipcard.yaml", "assets:\n  basePath: /no/such/assets\n")

	err := runServeCmd(context.Background(), []string{"-c", cfg}, tio.env)
	if err == nil {
		t.Fatal("expected error")
	}
	if code := exitCodeFor(err); code != ExitUsage {
		t.Errorf("exit code = %d, want %d (%v)", code, ExitUsage, err)
	}
	if strings.Contains(tio.stderr.String(), "starting HTTP server") {
		t.Error("server should not start")
	}
}
