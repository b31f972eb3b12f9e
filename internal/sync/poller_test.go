package sync_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/safetyflash/internal/i18n"
	"github.com/nhle/safetyflash/internal/sync"
)

func writeTerms(t *testing.T, path, body string, mod time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func TestPoller_LoadsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms.yaml")
	writeTerms(t, path, "en:\n  playlist_empty: Nothing here\n", time.Now().Add(-time.Hour))

	catalog := i18n.New("fi", nil)
	p := sync.New(catalog, path, time.Hour, nil)
	p.Start()
	t.Cleanup(p.Stop)

	assert.Eventually(t, func() bool {
		return catalog.T("playlist_empty", "en") == "Nothing here"
	}, 2*time.Second, 10*time.Millisecond)

	writeTerms(t, path, "en:\n  playlist_empty: Still nothing\n", time.Now())
	p.Refresh()

	assert.Eventually(t, func() bool {
		return catalog.T("playlist_empty", "en") == "Still nothing"
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, sync.StateIdle, p.Status().State)
	assert.False(t, p.Status().LastSync.IsZero())
}

type countingLoader struct {
	calls chan string
}

func (c *countingLoader) Load(path string) error {
	c.calls <- path
	return nil
}

func TestPoller_SkipsUnchangedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms.yaml")
	writeTerms(t, path, "fi: {}\n", time.Now().Add(-time.Hour))

	loader := &countingLoader{calls: make(chan string, 10)}
	p := sync.New(loader, path, time.Hour, nil)
	p.Start()

	select {
	case got := <-loader.calls:
		assert.Equal(t, path, got)
	case <-time.After(2 * time.Second):
		t.Fatal("initial load did not happen")
	}

	p.Refresh()
	p.Stop()
	assert.Empty(t, loader.calls, "unchanged file must not be reloaded")
}

func TestPoller_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	p := sync.New(i18n.New("fi", nil), path, time.Hour, nil)
	p.Start()
	t.Cleanup(p.Stop)

	assert.Eventually(t, func() bool {
		return p.Status().State == sync.StateError
	}, 2*time.Second, 10*time.Millisecond)
	assert.Error(t, p.Status().Error)
}

func TestPoller_StopIsIdempotent(t *testing.T) {
	p := sync.New(i18n.New("fi", nil), "unused", time.Hour, nil)
	p.Stop()
	p.Start()
	p.Stop()
	p.Stop()
}

func TestPoller_Restart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terms.yaml")
	writeTerms(t, path, "fi: {}\n", time.Now())

	loader := &countingLoader{calls: make(chan string, 10)}
	p := sync.New(loader, path, time.Hour, nil)
	p.Start()
	<-loader.calls
	p.Stop()
	p.Start()
	p.Stop()
}
