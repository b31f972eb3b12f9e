package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nhle/safetyflash/internal/model"
	"github.com/nhle/safetyflash/internal/session"
	"github.com/nhle/safetyflash/internal/store"
)

type flashFragment func(ctx context.Context, w io.Writer, sc *session.Context, flash *model.Flash) error

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

// handleTargetSelector serves the selector in the flash's own language. Only
// without a flash (id 0) is the language taken from ?lang=, falling back to
// the viewer's language.
func (s *Server) handleTargetSelector(w http.ResponseWriter, r *http.Request) {
	flashID, ok := pathID(r, "flashID")
	if !ok || flashID < 0 {
		http.Error(w, "invalid flash id", http.StatusBadRequest)
		return
	}
	sc := session.From(r.Context())

	lang := r.URL.Query().Get("lang")
	if flashID > 0 {
		flash, status := s.loadFlash(r, flashID)
		if flash == nil {
			s.render(w, r, status, func(buf io.Writer) error {
				return s.flashNotice(buf, sc, status)
			})
			return
		}
		lang = flash.Lang
	}

	s.render(w, r, http.StatusOK, func(buf io.Writer) error {
		return s.views.TargetSelector(r.Context(), buf, sc, flashID, lang)
	})
}

// withFlash loads the flash named in the path and hands it to fn. A missing
// flash is rendered by fn as a notice with status 404.
func (s *Server) withFlash(fn flashFragment) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flashID, ok := pathID(r, "flashID")
		if !ok || flashID <= 0 {
			http.Error(w, "invalid flash id", http.StatusBadRequest)
			return
		}
		sc := session.From(r.Context())

		flash, status := s.loadFlash(r, flashID)
		s.render(w, r, status, func(buf io.Writer) error {
			if status == http.StatusServiceUnavailable {
				return s.flashNotice(buf, sc, status)
			}
			return fn(r.Context(), buf, sc, flash)
		})
	}
}

// loadFlash returns the flash and 200, or nil with 404 when it does not
// exist, 500 when the lookup failed and 503 without a store.
func (s *Server) loadFlash(r *http.Request, flashID int64) (*model.Flash, int) {
	if s.store == nil {
		return nil, http.StatusServiceUnavailable
	}
	flash, err := s.store.GetFlash(r.Context(), flashID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, http.StatusNotFound
	case err != nil:
		s.log.Warn("loading flash", zap.Int64("flash_id", flashID), zap.Error(err))
		return nil, http.StatusInternalServerError
	}
	return flash, http.StatusOK
}

// flashNotice renders the notice for a failed loadFlash.
func (s *Server) flashNotice(w io.Writer, sc *session.Context, status int) error {
	if status == http.StatusServiceUnavailable {
		return s.views.Notice(w, sc, "error", "error_no_database")
	}
	return s.views.Notice(w, sc, "error", "error_flash_missing")
}

func (s *Server) handlePlaylistManager(w http.ResponseWriter, r *http.Request) {
	displayKeyID, _ := pathID(r, "displayKeyID")
	status := http.StatusOK
	if displayKeyID <= 0 {
		status = http.StatusBadRequest
	}
	sc := session.From(r.Context())
	s.render(w, r, status, func(buf io.Writer) error {
		return s.views.PlaylistManager(r.Context(), buf, sc, displayKeyID, nil)
	})
}

// render buffers the fragment so a template error never leaves a partial
// response.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, fn func(io.Writer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		s.log.Error("rendering fragment",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
