package lowboy

import (
	"context"
	"encoding/base64"
	"io"
	"io/fs"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/lowboy/internal/appctx"
	"github.com/MKhiriev/lowboy/internal/auth"
	"github.com/MKhiriev/lowboy/internal/config"
	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/model"
	"github.com/MKhiriev/lowboy/internal/store"
	"github.com/MKhiriev/lowboy/internal/view"
	"github.com/MKhiriev/lowboy/internal/workers"
)

// widgetApp is a minimal application with its own table, route and job.
type widgetApp struct {
	newUsers atomic.Int32
	jobRuns  atomic.Int32
}

func (a *widgetApp) Name() string     { return "widgets" }
func (a *widgetApp) AppTitle() string { return "Widgets" }

func (a *widgetApp) Routes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		view.Show(w, r, view.HTML("<p>widgets</p>"), view.Title("Home"))
	})
}

func (a *widgetApp) Migrations() fs.FS {
	return fstest.MapFS{
		"sqlite/00001_widgets.sql": {Data: []byte("-- +goose Up\nCREATE TABLE widget (id INTEGER PRIMARY KEY);\n\n-- +goose Down\nDROP TABLE widget;\n")},
	}
}

func (a *widgetApp) Static() fs.FS {
	return fstest.MapFS{"lowboy.css": {Data: []byte("body {}")}}
}

func (a *widgetApp) Layout() view.Layout { return view.DefaultLayout() }

func (a *widgetApp) ErrorView(status int, message string) view.Renderable {
	return view.HTML("<p class=\"widget-error\">" + message + "</p>")
}

func (a *widgetApp) LiftUser(_ context.Context, _ store.Querier, record model.LowboyUserRecord) (any, error) {
	return record.Username, nil
}

func (a *widgetApp) OnNewUser(context.Context, store.Querier, model.LowboyUserRecord, auth.RegistrationDetails) error {
	a.newUsers.Add(1)
	return nil
}

func (a *widgetApp) Jobs(*appctx.Context) []workers.Job {
	return []workers.Job{{
		Name:      "widget-counter",
		Interval:  time.Hour,
		Immediate: true,
		Worker: workers.WorkerFunc(func(context.Context) error {
			a.jobRuns.Add(1)
			return nil
		}),
	}}
}

func testConfig(t *testing.T) *config.StructuredConfig {
	t.Helper()
	return &config.StructuredConfig{
		Database: config.Database{URL: filepath.Join(t.TempDir(), "widgets.db"), PoolSize: 4},
		Session:  config.Session{Key: base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", 64)))},
		Server:   config.Server{HTTPAddress: "127.0.0.1:0"},
	}
}

func bootTest(t *testing.T, app App, cfg *config.StructuredConfig) *Instance {
	t.Helper()
	inst, err := Boot(context.Background(), app, cfg, logger.Nop(), WithVersion("9.9.9"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = inst.Context.DB.Close() })
	return inst
}

// ─────────────────────────────────────────────
// Boot
// ─────────────────────────────────────────────

func TestBoot_AppliesMigrations(t *testing.T) {
	inst := bootTest(t, &widgetApp{}, testConfig(t))
	ctx := context.Background()

	for _, table := range []string{"user", "widget", "tower_session"} {
		var name string
		err := inst.Context.DB.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}
}

func TestBoot_RouterServesAppAndFramework(t *testing.T) {
	app := &widgetApp{}
	inst := bootTest(t, app, testConfig(t))

	srv := httptest.NewServer(inst.Router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar, CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}

	get := func(path string) (int, string) {
		resp, err := client.Get(srv.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	status, body := get("/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "<title>Home | Widgets</title>")
	assert.Contains(t, body, "lowboy 9.9.9")

	status, body = get("/missing")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, `<p class="widget-error">Not Found</p>`)

	status, _ = get("/static/lowboy.css")
	assert.Equal(t, http.StatusOK, status)

	resp, err := client.PostForm(srv.URL+"/register", url.Values{
		"name": {"Ada"}, "username": {"ada"}, "email": {"ada@example.com"}, "password": {"secret123"},
	})
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, int32(1), app.newUsers.Load())

	resp, err = client.PostForm(srv.URL+"/login", url.Values{"username": {"ada"}, "password": {"secret123"}})
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	_, body = get("/")
	assert.Contains(t, body, `<a href="/logout">Log out</a>`)
}

func TestBoot_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.StructuredConfig)
	}{
		{
			name:   "unknown database scheme",
			mutate: func(cfg *config.StructuredConfig) { cfg.Database.URL = "mysql://localhost/lowboy" },
		},
		{
			name:   "undecodable session key",
			mutate: func(cfg *config.StructuredConfig) { cfg.Session.Key = "%%%" },
		},
		{
			name: "incomplete oauth provider",
			mutate: func(cfg *config.StructuredConfig) {
				cfg.OAuthProviders = []config.OAuthProvider{{Name: "acme", ClientID: "id"}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(cfg)

			inst, err := Boot(context.Background(), &widgetApp{}, cfg, logger.Nop())
			assert.Error(t, err)
			assert.Nil(t, inst)
		})
	}
}

func TestSessionKey(t *testing.T) {
	cfg := testConfig(t)
	key, err := sessionKey(cfg, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, []byte(strings.Repeat("k", 64)), key)

	cfg.Session.Key = ""
	first, err := sessionKey(cfg, logger.Nop())
	require.NoError(t, err)
	second, err := sessionKey(cfg, logger.Nop())
	require.NoError(t, err)
	assert.Len(t, first, generatedKeyLen)
	assert.NotEqual(t, first, second)
}

// ─────────────────────────────────────────────
// Serve
// ─────────────────────────────────────────────

func TestServe_RunsJobsAndStops(t *testing.T) {
	app := &widgetApp{}
	inst, err := Boot(context.Background(), app, testConfig(t), logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- inst.Serve(ctx) }()

	require.Eventually(t, func() bool { return app.jobRuns.Load() > 0 }, 5*time.Second, 10*time.Millisecond)

	sub := inst.Context.Events.Subscribe()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return")
	}

	_, open := <-sub.C()
	assert.False(t, open, "subscriptions are closed on shutdown")
	assert.Error(t, inst.Context.DB.Ping(), "the database is closed on shutdown")

	assert.ErrorIs(t, inst.Serve(context.Background()), ErrAlreadyServing)
}
