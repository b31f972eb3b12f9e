package view

import (
	"context"
	"io"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/safetyflash/internal/expiry"
	"github.com/nhle/safetyflash/internal/i18n"
	"github.com/nhle/safetyflash/internal/model"
	"github.com/nhle/safetyflash/internal/session"
	"github.com/nhle/safetyflash/internal/store"
)

// playlistPath is the external playlist API, relative to the base URL.
const playlistPath = "app/api/display_playlist.php"

// stateClasses maps each lifecycle state to its badge class.
var stateClasses = map[string]string{
	model.StateDraft:             "sf-status-draft",
	model.StatePendingSupervisor: "sf-status-pending-supervisor",
	model.StatePendingReview:     "sf-status-pending-review",
	model.StateRequestInfo:       "sf-status-request-info",
	model.StateReviewed:          "sf-status-reviewed",
	model.StateToComms:           "sf-status-to-comms",
	model.StatePublished:         "sf-status-published",
}

// StateClass returns the badge class for state.
func StateClass(state string) string {
	if c, ok := stateClasses[state]; ok {
		return c
	}
	return "sf-status-unknown"
}

type metaData struct {
	page
	Flash           *model.Flash
	StateClass      string
	StateLabel      string
	Preview         previewData
	PendingReviewer bool
	Reviewers       []model.Reviewer
	CanManage       bool
}

// MetaBox renders the flash's content, status badge and archived badge. While
// the flash waits for a supervisor, the assigned reviewers are listed, with
// add/replace/remove controls for admins and the safety team.
func (r *Renderer) MetaBox(
	ctx context.Context,
	w io.Writer,
	sc *session.Context,
	flash *model.Flash,
) error {
	if flash == nil || flash.ID <= 0 {
		return r.Notice(w, sc, "error", "error_flash_missing")
	}
	return r.withStore(ctx, w, sc, FragmentMetaBox, nil, func(st store.Store) error {
		p := r.page(sc)
		data := metaData{
			page:            p,
			Flash:           flash,
			StateClass:      StateClass(flash.State),
			StateLabel:      p.T("status_" + flash.State),
			Preview:         r.preview(p, *flash),
			PendingReviewer: flash.State == model.StatePendingSupervisor,
		}
		if data.PendingReviewer {
			data.Reviewers = store.Fetch(func() ([]model.Reviewer, error) {
				return st.GetReviewers(ctx, flash.ID)
			}).OrEmpty(r.degrade(FragmentMetaBox, zap.Int64("flash_id", flash.ID)))
			data.CanManage = sc.CanManageReviewers()
		}
		return r.execute(w, FragmentMetaBox, data)
	})
}

// StatusTarget is one assignment in the targets status widget.
type StatusTarget struct {
	Label        string
	Active       bool
	LangMismatch bool
}

// StatusGroup is the assignments of one site group.
type StatusGroup struct {
	Name   string
	Active int
	Total  int
	Items  []StatusTarget
}

// GroupTargets groups assignments by site group, keeping their order, and
// counts live ones. Assignments whose display language differs from lang are
// flagged.
func GroupTargets(targets []model.TargetDisplay, lang string) (groups []StatusGroup, active, total int) {
	for _, t := range targets {
		if len(groups) == 0 || groups[len(groups)-1].Name != t.SiteGroup {
			groups = append(groups, StatusGroup{Name: t.SiteGroup})
		}
		g := &groups[len(groups)-1]
		g.Items = append(g.Items, StatusTarget{
			Label:        t.Label,
			Active:       t.IsActive,
			LangMismatch: lang != "" && t.Lang != lang,
		})
		g.Total++
		total++
		if t.IsActive {
			g.Active++
			active++
		}
	}
	return groups, active, total
}

type targetsStatusData struct {
	page
	FlashID int64
	Groups  []StatusGroup
	Active  int
	Total   int
}

// TargetsStatus renders every display assignment of flash grouped by site
// group, with live/total counts and a live or pending marker per display.
func (r *Renderer) TargetsStatus(
	ctx context.Context,
	w io.Writer,
	sc *session.Context,
	flash *model.Flash,
) error {
	if flash == nil || flash.ID <= 0 {
		return r.Notice(w, sc, "error", "error_flash_missing")
	}
	return r.withStore(ctx, w, sc, FragmentTargetsStatus, nil, func(st store.Store) error {
		targets := store.Fetch(func() ([]model.TargetDisplay, error) {
			return st.GetFlashTargets(ctx, flash.ID)
		}).OrEmpty(r.degrade(FragmentTargetsStatus, zap.Int64("flash_id", flash.ID)))

		groups, active, total := GroupTargets(targets, flash.Lang)
		return r.execute(w, FragmentTargetsStatus, targetsStatusData{
			page:    r.page(sc),
			FlashID: flash.ID,
			Groups:  groups,
			Active:  active,
			Total:   total,
		})
	})
}

type playlistStatusData struct {
	page
	FlashID     int64
	Status      expiry.Status
	StatusLabel string
	Detail      string
	CanManage   bool
	ShowRemove  bool
	ShowRestore bool
	PlaylistURL string
}

// PlaylistStatus renders whether a published flash is active, expired or
// removed from the display playlists, with a countdown to expiry while it is
// active. Nothing is rendered for unpublished flashes, or for published ones
// that are neither live on any display nor removed.
func (r *Renderer) PlaylistStatus(
	ctx context.Context,
	w io.Writer,
	sc *session.Context,
	flash *model.Flash,
) error {
	if flash == nil || !flash.IsPublished() {
		return nil
	}
	return r.withStore(ctx, w, sc, FragmentPlaylistStatus, nil, func(st store.Store) error {
		onFail := r.degrade(FragmentPlaylistStatus, zap.Int64("flash_id", flash.ID))
		now := r.now()
		status := expiry.PlaylistStatus(flash.DisplayExpiresAt, flash.DisplayRemovedAt, now)

		live := store.Fetch(func() (int, error) {
			return st.CountActiveTargets(ctx, flash.ID)
		}).OrEmpty(onFail)
		if live == 0 && status != expiry.StatusRemoved {
			return nil
		}

		p := r.page(sc)
		data := playlistStatusData{
			page:        p,
			FlashID:     flash.ID,
			Status:      status,
			StatusLabel: p.T("playlist_status_" + string(status)),
			CanManage:   sc.CanManagePlaylist(),
		}

		switch status {
		case expiry.StatusRemoved:
			data.Detail = i18n.Format(p.T("playlist_removed_at"), "date", formatDateTime(flash.DisplayRemovedAt))
		case expiry.StatusExpired:
			data.Detail = i18n.Format(p.T("playlist_expired_at"), "date", formatDateTime(flash.DisplayExpiresAt))
		default:
			data.Detail = countdown(p, flash.DisplayExpiresAt, now)
		}

		if data.CanManage {
			data.ShowRemove = status == expiry.StatusActive
			data.ShowRestore = status == expiry.StatusRemoved
			if live > 0 {
				key := store.Fetch(func() (string, error) {
					return st.GetPlaylistAPIKey(ctx, flash.ID)
				}).OrEmpty(onFail)
				if key != "" {
					data.PlaylistURL = playlistURL(sc, key)
				}
			}
		}
		return r.execute(w, FragmentPlaylistStatus, data)
	})
}

func countdown(p page, expiresAt *time.Time, now time.Time) string {
	if expiresAt == nil {
		return p.T("playlist_no_expiry")
	}
	days := expiry.DaysLeft(*expiresAt, now)
	if days == 0 {
		return p.T("expires_today")
	}
	return i18n.Format(p.T("expires_in_days"), "n", days)
}

func playlistURL(sc *session.Context, apiKey string) string {
	return sc.URL(playlistPath) + "?key=" + url.QueryEscape(apiKey) + "&format=html"
}
