package tui

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexroute/internal/core"
	"github.com/vovakirdan/hexroute/internal/leaderboard"
	"github.com/vovakirdan/hexroute/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "hexroute.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

var finished = core.Result{RunID: "run-1", LevelID: "lvl01", Moves: 4, ElapsedSeconds: 75.8}

func TestRecorderLocalOnly(t *testing.T) {
	store := openStore(t)
	rec := NewRecorder(store, nil, quietLogger())

	out := rec.Record(context.Background(), "NEO", finished)
	if out.Err != nil || !out.Saved || out.Submitted {
		t.Fatalf("outcome = %+v", out)
	}
	if out.Summary() != "BREACH LOGGED LOCALLY" {
		t.Errorf("summary = %q", out.Summary())
	}

	run, err := store.RunByID("run-1")
	if err != nil || run == nil {
		t.Fatalf("RunByID = %+v, %v", run, err)
	}
	if run.OperatorName != "NEO" || run.Moves != 4 || run.ElapsedSeconds != 75.8 {
		t.Errorf("stored run = %+v", run)
	}

	entries, _ := store.TopEntries(0)
	if len(entries) != 1 || entries[0].TimeCompleted != "1m 15s" || entries[0].DurationSeconds != 75 {
		t.Errorf("entries = %+v", entries)
	}
}

func TestRecorderIgnoresDuplicateRun(t *testing.T) {
	store := openStore(t)
	rec := NewRecorder(store, nil, quietLogger())

	rec.Record(context.Background(), "NEO", finished)
	out := rec.Record(context.Background(), "NEO", finished)
	if out.Err != nil || !out.Saved {
		t.Errorf("duplicate outcome = %+v", out)
	}

	entries, _ := store.TopEntries(0)
	if len(entries) != 1 {
		t.Errorf("duplicate run created %d entries", len(entries))
	}
}

func TestRecorderSubmitsRemotely(t *testing.T) {
	remote := openStore(t)
	ts := httptest.NewServer(leaderboard.NewServer(remote, nil, quietLogger()).Handler())
	defer ts.Close()

	local := openStore(t)
	client := leaderboard.NewClient(ts.URL, leaderboard.WithLogger(quietLogger()))
	out := NewRecorder(local, client, quietLogger()).Record(context.Background(), "TRINITY", finished)

	if out.Err != nil || !out.Saved || !out.Submitted {
		t.Fatalf("outcome = %+v", out)
	}

	remoteEntries, _ := remote.TopEntries(0)
	if len(remoteEntries) != 1 || remoteEntries[0].OperatorName != "TRINITY" {
		t.Errorf("remote entries = %+v", remoteEntries)
	}
	localEntries, _ := local.TopEntries(0)
	if len(localEntries) != 0 {
		t.Error("entries should only go to the remote leaderboard when one is configured")
	}
}

func TestRecorderRemoteFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"Missing required fields"}`)
	}))
	defer ts.Close()

	client := leaderboard.NewClient(ts.URL,
		leaderboard.WithLogger(quietLogger()),
		leaderboard.WithBackoff(time.Millisecond))
	out := NewRecorder(openStore(t), client, quietLogger()).Record(context.Background(), "X", finished)

	if !out.Saved || out.Submitted || out.Err == nil {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestRecorderResubmitsDuplicateRun(t *testing.T) {
	remote := openStore(t)
	upstream := leaderboard.NewServer(remote, nil, quietLogger()).Handler()
	var down atomic.Bool
	down.Store(true)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if down.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		upstream.ServeHTTP(w, r)
	}))
	defer ts.Close()

	local := openStore(t)
	client := leaderboard.NewClient(ts.URL,
		leaderboard.WithLogger(quietLogger()),
		leaderboard.WithRetries(0),
		leaderboard.WithBackoff(time.Millisecond))
	rec := NewRecorder(local, client, quietLogger())

	first := rec.Record(context.Background(), "MORPHEUS", finished)
	if !first.Saved || first.Submitted || first.Err == nil {
		t.Fatalf("first outcome = %+v", first)
	}

	down.Store(false)
	second := rec.Record(context.Background(), "MORPHEUS", finished)
	if second.Err != nil || !second.Saved || !second.Submitted {
		t.Fatalf("second outcome = %+v, expected saved and submitted", second)
	}

	remoteEntries, _ := remote.TopEntries(0)
	if len(remoteEntries) != 1 {
		t.Errorf("remote entries = %d, expected 1", len(remoteEntries))
	}
	localEntries, _ := local.TopEntries(0)
	if len(localEntries) != 0 {
		t.Errorf("local entries = %d, expected 0", len(localEntries))
	}
}

func TestNilRecorder(t *testing.T) {
	var rec *Recorder
	if out := rec.Record(context.Background(), "X", finished); out.Saved || out.Err != nil {
		t.Errorf("nil recorder outcome = %+v", out)
	}
}
