package server_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nhle/safetyflash/internal/csrf"
	"github.com/nhle/safetyflash/internal/metrics"
	"github.com/nhle/safetyflash/internal/model"
	"github.com/nhle/safetyflash/internal/server"
	"github.com/nhle/safetyflash/internal/session"
	"github.com/nhle/safetyflash/internal/store"
	"github.com/nhle/safetyflash/internal/view"
	"github.com/nhle/safetyflash/tests/testutil"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newServer(t *testing.T, st store.Store) *httptest.Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	views, err := view.New(view.Options{
		Store:      st,
		Logger:     zap.NewNop(),
		Metrics:    metrics.New(reg),
		Now:        func() time.Time { return now },
		ReorderURL: "/app/api/display_playlist_reorder.php",
	})
	require.NoError(t, err)

	srv := httptest.NewServer(server.New(server.Options{
		Store:    st,
		Views:    views,
		Logger:   zap.NewNop(),
		Issuer:   csrf.NewSignedIssuer([]byte("0123456789abcdef0123456789abcdef"), 0),
		Gatherer: reg,
		BaseURL:  "https://flash.example.com",
	}))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string, headers map[string]string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHealthz(t *testing.T) {
	srv := newServer(t, testutil.NewTestStore(t))
	resp, body := get(t, srv, "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok\n", body)
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

func TestTargetSelectorRoute(t *testing.T) {
	st := testutil.NewTestStore(t)
	id := testutil.SeedFlash(t, st, model.Flash{Lang: "sv"})
	d := testutil.SeedDisplay(t, st, model.DisplayKey{Label: "Matsal", Lang: "sv"})
	testutil.SeedTarget(t, st, id, d, false, 0)
	srv := newServer(t, st)

	resp, body := get(t, srv, "/fragments/flashes/"+itoa(id)+"/targets?lang=sv", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, "Matsal")
	assert.Contains(t, body, `value="`+itoa(d)+`" checked`)
}

func TestTargetSelectorRoute_UsesFlashLanguage(t *testing.T) {
	st := testutil.NewTestStore(t)
	id := testutil.SeedFlash(t, st, model.Flash{Lang: "fi"})
	fi := testutil.SeedDisplay(t, st, model.DisplayKey{Label: "FiScreen", Lang: "fi"})
	testutil.SeedDisplay(t, st, model.DisplayKey{Label: "EnScreen", Lang: "en"})
	testutil.SeedTarget(t, st, id, fi, false, 0)
	srv := newServer(t, st)

	for _, path := range []string{
		"/fragments/flashes/" + itoa(id) + "/targets",
		"/fragments/flashes/" + itoa(id) + "/targets?lang=en",
	} {
		t.Run(path, func(t *testing.T) {
			resp, body := get(t, srv, path, map[string]string{session.HeaderLang: "en"})
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, body, `data-lang="fi"`)
			assert.Contains(t, body, "FiScreen")
			assert.NotContains(t, body, "EnScreen")
			assert.Contains(t, body, `value="`+itoa(fi)+`" checked`)
		})
	}
}

func TestTargetSelectorRoute_MissingFlash(t *testing.T) {
	st := testutil.NewTestStore(t)
	testutil.SeedDisplay(t, st, model.DisplayKey{Label: "Aula", Lang: "fi"})
	srv := newServer(t, st)

	resp, body := get(t, srv, "/fragments/flashes/404/targets?lang=fi", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Tiedotetta ei löytynyt.")
	assert.NotContains(t, body, "Aula")
}

func TestTargetSelectorRoute_BadID(t *testing.T) {
	srv := newServer(t, testutil.NewTestStore(t))
	resp, _ := get(t, srv, "/fragments/flashes/abc/targets", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFlashRoutes_MissingFlash(t *testing.T) {
	srv := newServer(t, testutil.NewTestStore(t))
	resp, body := get(t, srv, "/fragments/flashes/404/targets-modal", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Tiedotetta ei löytynyt.")
}

func TestMetaRoute_RoleHeaders(t *testing.T) {
	st := testutil.NewTestStore(t)
	id := testutil.SeedFlash(t, st, model.Flash{State: model.StatePendingSupervisor})
	srv := newServer(t, st)

	_, asSafety := get(t, srv, "/fragments/flashes/"+itoa(id)+"/meta", map[string]string{
		session.HeaderRoles: "safety",
	})
	_, anonymous := get(t, srv, "/fragments/flashes/"+itoa(id)+"/meta", nil)

	assert.Contains(t, asSafety, `data-action="add-reviewer"`)
	assert.NotContains(t, anonymous, `data-action="add-reviewer"`)
	assert.Regexp(t, `data-csrf="[^"]+"`, asSafety)
}

func TestModalRoute_IssuesCSRF(t *testing.T) {
	st := testutil.NewTestStore(t)
	id := testutil.SeedFlash(t, st, model.Flash{})
	srv := newServer(t, st)

	_, body := get(t, srv, "/fragments/flashes/"+itoa(id)+"/targets-modal", nil)
	assert.Regexp(t, `data-csrf="[^"]+"`, body)
	assert.Contains(t, body, `name="ttl_days" value="30" checked`)
}

func TestPlaylistRoute(t *testing.T) {
	st := testutil.NewTestStore(t)
	d := testutil.SeedDisplay(t, st, model.DisplayKey{Label: "Aula", Lang: "fi"})
	f := testutil.SeedPublished(t, st, "fi", "Kaatunut teline", now.Add(-time.Hour))
	testutil.SeedTarget(t, st, f, d, true, 1)
	srv := newServer(t, st)

	resp, body := get(t, srv, "/fragments/displays/"+itoa(d)+"/playlist", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Kaatunut teline")
	assert.Contains(t, body, `data-reorder-url="https://flash.example.com/app/api/display_playlist_reorder.php"`)

	resp, body = get(t, srv, "/fragments/displays/0/playlist", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "Virheellinen näytön tunniste.")
}

func TestLanguageHeader(t *testing.T) {
	st := testutil.NewTestStore(t)
	d := testutil.SeedDisplay(t, st, model.DisplayKey{Label: "Aula", Lang: "fi"})
	srv := newServer(t, st)

	_, body := get(t, srv, "/fragments/flashes/0/targets", map[string]string{session.HeaderLang: "fi-FI"})
	assert.Contains(t, body, `value="`+itoa(d)+`"`)
	assert.Contains(t, body, `data-lang="fi"`)
}

func TestMetricsRoute(t *testing.T) {
	srv := newServer(t, testutil.NewTestStore(t))
	_, _ = get(t, srv, "/fragments/flashes/0/targets", nil)

	resp, body := get(t, srv, "/metrics", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(body, `safetyflash_fragment_renders_total{fragment="target_selector"} 1`), body)
}

func TestListenAndServe_Shutdown(t *testing.T) {
	views, err := view.New(view.Options{})
	require.NoError(t, err)
	s := server.New(server.Options{Views: views})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
