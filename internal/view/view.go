// Package view renders the SafetyFlash admin fragments: the display target
// selector and management modal, the per-display playlist manager, the flash
// preview, and the view-page status widgets.
//
// Every fragment renders something. A missing context (no flash, no display
// id, no database) renders a localized notice; a failed query renders as an
// empty result and is reported through the logger and the degraded-query
// counter. Only template or writer errors are returned.
package view

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/safetyflash/internal/i18n"
	"github.com/nhle/safetyflash/internal/metrics"
	"github.com/nhle/safetyflash/internal/session"
	"github.com/nhle/safetyflash/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// Fragment names, used as template names and metric labels.
const (
	FragmentTargetSelector  = "target_selector"
	FragmentTargetsModal    = "targets_modal"
	FragmentPlaylistManager = "playlist_manager"
	FragmentPreview         = "preview"
	FragmentMetaBox         = "meta_box"
	FragmentTargetsStatus   = "targets_status"
	FragmentPlaylistStatus  = "playlist_status"
	FragmentNotice          = "notice"
)

// Options configures a Renderer.
type Options struct {
	// Store is the host-provided store. When nil, Open is used per render.
	Store store.Store
	Open  store.Opener

	Terms   *i18n.Catalog
	Logger  *zap.Logger
	Metrics *metrics.Collectors

	// Now defaults to time.Now.
	Now func() time.Time

	// ReorderURL is emitted as data-reorder-url on the playlist manager.
	ReorderURL    string
	PlaylistLimit int
}

// Renderer renders fragments to an io.Writer.
type Renderer struct {
	store         store.Store
	open          store.Opener
	terms         *i18n.Catalog
	log           *zap.Logger
	metrics       *metrics.Collectors
	now           func() time.Time
	reorderURL    string
	playlistLimit int
	tmpl          *template.Template
}

// New parses the embedded templates and returns a Renderer.
func New(opts Options) (*Renderer, error) {
	r := &Renderer{
		store:         opts.Store,
		open:          opts.Open,
		terms:         opts.Terms,
		log:           opts.Logger,
		metrics:       opts.Metrics,
		now:           opts.Now,
		reorderURL:    opts.ReorderURL,
		playlistLimit: opts.PlaylistLimit,
	}
	if r.terms == nil {
		r.terms = i18n.New("fi", nil)
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	if r.now == nil {
		r.now = time.Now
	}

	tmpl, err := template.New("fragments").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing fragment templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

var funcs = template.FuncMap{
	"date":     formatDate,
	"dateTime": formatDateTime,
}

const (
	dateLayout     = "02.01.2006"
	dateTimeLayout = "02.01.2006 15:04"
	emptyValue     = "-"
)

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return emptyValue
	}
	return t.Format(dateLayout)
}

func formatDateTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return emptyValue
	}
	return t.Format(dateTimeLayout)
}

// page is embedded in every fragment's data so templates can call .T.
type page struct {
	tr   func(string) string
	CSRF string
}

// T translates key into the viewer's language.
func (p page) T(key string) string {
	return p.tr(key)
}

func (r *Renderer) page(sc *session.Context) page {
	if sc == nil {
		return page{tr: r.terms.Translator("")}
	}
	return page{tr: r.terms.Translator(sc.Lang), CSRF: sc.CSRFToken}
}

// acquire returns host when given, else the renderer's store, else a store
// opened for this render. release must be called when done.
func (r *Renderer) acquire(host store.Store) (store.Store, func(), error) {
	if host != nil {
		return host, func() {}, nil
	}
	if r.store != nil {
		return r.store, func() {}, nil
	}
	if r.open == nil {
		return nil, nil, fmt.Errorf("no database configured")
	}
	s, err := r.open()
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return s, func() {
		if err := s.Close(); err != nil {
			r.log.Warn("closing database", zap.Error(err))
		}
	}, nil
}

// degrade returns the failure hook for store.Result.OrEmpty.
func (r *Renderer) degrade(fragment string, fields ...zap.Field) func(error) {
	return func(err error) {
		r.log.Warn("query failed, rendering empty",
			append(fields, zap.String("fragment", fragment), zap.Error(err))...)
		r.metrics.Degrade(fragment)
	}
}

func (r *Renderer) execute(w io.Writer, fragment string, data any) error {
	if err := r.tmpl.ExecuteTemplate(w, fragment, data); err != nil {
		return fmt.Errorf("rendering %s: %w", fragment, err)
	}
	r.metrics.Rendered(fragment)
	return nil
}

type noticeData struct {
	page
	Kind    string
	Message string
}

// Notice renders a localized message box. kind is "error" or "info".
func (r *Renderer) Notice(w io.Writer, sc *session.Context, kind, key string) error {
	p := r.page(sc)
	return r.execute(w, FragmentNotice, noticeData{page: p, Kind: kind, Message: p.T(key)})
}

// withStore runs fn against an acquired store, rendering a notice instead
// when no store can be acquired.
func (r *Renderer) withStore(
	ctx context.Context,
	w io.Writer,
	sc *session.Context,
	fragment string,
	host store.Store,
	fn func(store.Store) error,
) error {
	st, release, err := r.acquire(host)
	if err != nil {
		r.log.Warn("no database for fragment", zap.String("fragment", fragment), zap.Error(err))
		return r.Notice(w, sc, "error", "error_no_database")
	}
	defer release()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(st)
}

// absURL resolves a configured path against the viewer's base URL. Absolute
// URLs are returned unchanged.
func absURL(sc *session.Context, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return sc.URL(path)
}
