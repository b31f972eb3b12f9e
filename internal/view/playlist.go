package view

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/nhle/safetyflash/internal/expiry"
	"github.com/nhle/safetyflash/internal/model"
	"github.com/nhle/safetyflash/internal/session"
	"github.com/nhle/safetyflash/internal/store"
)

type previewData struct {
	page
	Flash     model.Flash
	TypeClass string
	TypeLabel string
	Duration  int
}

func (r *Renderer) preview(p page, f model.Flash) previewData {
	return previewData{
		page:      p,
		Flash:     f,
		TypeClass: "sf-type-" + typeOrDefault(f.Type),
		TypeLabel: p.T("type_" + typeOrDefault(f.Type)),
		Duration:  expiry.DurationOrDefault(f.DisplayDurationSeconds),
	}
}

func typeOrDefault(t string) string {
	switch t {
	case model.TypeRed, model.TypeYellow, model.TypeGreen:
		return t
	default:
		return model.TypeYellow
	}
}

// Preview renders flash as a single screen slide.
func (r *Renderer) Preview(w io.Writer, sc *session.Context, flash *model.Flash) error {
	if flash == nil {
		return r.Notice(w, sc, "error", "error_flash_missing")
	}
	return r.execute(w, FragmentPreview, r.preview(r.page(sc), *flash))
}

type playlistItem struct {
	Position int
	ID       int64
	First    bool
	Last     bool
	Preview  previewData
}

type managerData struct {
	page
	Display    *model.DisplayKey
	ReorderURL string
	Items      []playlistItem
}

// PlaylistManager renders the ordered playlist of one display with move
// up/down controls. Moves are posted by client script to the reorder
// endpoint; this fragment only shows the current order. host takes
// precedence over the renderer's store; when both are nil a store is opened
// for the duration of the render.
func (r *Renderer) PlaylistManager(
	ctx context.Context,
	w io.Writer,
	sc *session.Context,
	displayKeyID int64,
	host store.Store,
) error {
	if displayKeyID <= 0 {
		return r.Notice(w, sc, "error", "error_display_invalid")
	}
	return r.withStore(ctx, w, sc, FragmentPlaylistManager, host, func(st store.Store) error {
		display, err := st.GetDisplayKey(ctx, displayKeyID)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				r.degrade(FragmentPlaylistManager, zap.Int64("display_key_id", displayKeyID))(err)
			}
			return r.Notice(w, sc, "error", "error_display_not_found")
		}

		limit := r.playlistLimit
		if limit <= 0 || limit > model.MaxPlaylistItems {
			limit = model.MaxPlaylistItems
		}
		flashes := store.Fetch(func() ([]model.PlaylistItem, error) {
			return st.GetPlaylist(ctx, displayKeyID, r.now(), limit)
		}).OrEmpty(r.degrade(FragmentPlaylistManager, zap.Int64("display_key_id", displayKeyID)))

		p := r.page(sc)
		items := make([]playlistItem, len(flashes))
		for i, f := range flashes {
			items[i] = playlistItem{
				Position: i + 1,
				ID:       f.ID,
				First:    i == 0,
				Last:     i == len(flashes)-1,
				Preview:  r.preview(p, f.Flash),
			}
		}

		return r.execute(w, FragmentPlaylistManager, managerData{
			page:       p,
			Display:    display,
			ReorderURL: absURL(sc, r.reorderURL),
			Items:      items,
		})
	})
}
