package docwatch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/starford/othala/internal/session"
	"github.com/starford/othala/internal/testutil"
	"github.com/starford/othala/internal/validate"
)

func watcherTestEnv(t *testing.T) (string, *session.Service) {
	t.Helper()
	store := testutil.TestStore(t)
	return store.Path(), session.NewService(store, validate.DefaultPolicy())
}

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	docPath, svc := watcherTestEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var events []string

	go Watch(ctx, svc, docPath, testLogger(), func(kind, path string) {
		mu.Lock()
		events = append(events, kind+":"+path)
		mu.Unlock()
	})

	time.Sleep(100 * time.Millisecond)

	_ = os.WriteFile(docPath, []byte(`{"name": "Grace"}`), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return svc.Document().Name == "Grace"
	}, "document not reloaded after write")

	eventually(t, 2*time.Second, 50*time.Millisecond, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, e := range events {
			if e == "updated:portfolio_data.json" {
				return true
			}
		}
		return false
	}, "expected updated callback")
}

func TestWatch_MalformedFileKeepsPriorState(t *testing.T) {
	docPath, svc := watcherTestEnv(t)
	svc.SetProfile(session.Profile{Name: "Ada"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Watch(ctx, svc, docPath, testLogger(), nil)
	time.Sleep(100 * time.Millisecond)

	_ = os.WriteFile(docPath, []byte(`[not an object]`), 0o644)
	time.Sleep(500 * time.Millisecond)

	if got := svc.Document().Name; got != "Ada" {
		t.Errorf("name = %q, want prior state preserved", got)
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	docPath, svc := watcherTestEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Watch(ctx, svc, docPath, testLogger(), nil)
	time.Sleep(100 * time.Millisecond)

	other := filepath.Join(filepath.Dir(docPath), "notes.txt")
	_ = os.WriteFile(other, []byte(`{"name": "Eve"}`), 0o644)
	time.Sleep(500 * time.Millisecond)

	if got := svc.Document().Name; got != "" {
		t.Errorf("name = %q, unrelated file must not trigger a reload", got)
	}
}
