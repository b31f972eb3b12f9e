package view

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/nhle/safetyflash/internal/expiry"
	"github.com/nhle/safetyflash/internal/i18n"
	"github.com/nhle/safetyflash/internal/model"
	"github.com/nhle/safetyflash/internal/session"
	"github.com/nhle/safetyflash/internal/store"
)

// SelectorOption is one display checkbox.
type SelectorOption struct {
	ID      int64
	Label   string
	Site    string
	Checked bool
}

// SelectorGroup is the checkboxes of one site group.
type SelectorGroup struct {
	Name    string
	Options []SelectorOption
}

// BuildSelector groups displays by site group, keeping their order, and
// checks the ones in preselected.
func BuildSelector(displays []model.DisplayKey, preselected map[int64]bool) []SelectorGroup {
	var groups []SelectorGroup
	for _, d := range displays {
		if len(groups) == 0 || groups[len(groups)-1].Name != d.SiteGroup {
			groups = append(groups, SelectorGroup{Name: d.SiteGroup})
		}
		g := &groups[len(groups)-1]
		g.Options = append(g.Options, SelectorOption{
			ID:      d.ID,
			Label:   d.Label,
			Site:    d.Site,
			Checked: preselected[d.ID],
		})
	}
	return groups
}

type selectorData struct {
	page
	FlashID int64
	Lang    string
	Groups  []SelectorGroup
}

// selectorFor loads the displays for lang and the flash's preselection.
// Failed reads degrade to no displays or no preselection.
func (r *Renderer) selectorFor(
	ctx context.Context,
	st store.Store,
	fragment string,
	flashID int64,
	lang string,
	activeOnly bool,
) []SelectorGroup {
	onFail := r.degrade(fragment, zap.Int64("flash_id", flashID), zap.String("lang", lang))

	displays := store.Fetch(func() ([]model.DisplayKey, error) {
		return st.ListActiveDisplayKeys(ctx, lang)
	}).OrEmpty(onFail)

	preselected := map[int64]bool{}
	if flashID > 0 {
		ids := store.Fetch(func() ([]int64, error) {
			return st.GetTargetDisplayIDs(ctx, flashID, activeOnly)
		}).OrEmpty(onFail)
		for _, id := range ids {
			preselected[id] = true
		}
	}
	return BuildSelector(displays, preselected)
}

// TargetSelector renders the display checkboxes for a flash in lang. A
// display is checked when any assignment to it exists, live or not. A
// flashID <= 0 renders every display unchecked.
func (r *Renderer) TargetSelector(
	ctx context.Context,
	w io.Writer,
	sc *session.Context,
	flashID int64,
	lang string,
) error {
	lang = i18n.Normalize(lang)
	if lang == "" && sc != nil {
		lang = sc.Lang
	}
	return r.withStore(ctx, w, sc, FragmentTargetSelector, nil, func(st store.Store) error {
		groups := r.selectorFor(ctx, st, FragmentTargetSelector, flashID, lang, false)
		return r.execute(w, FragmentTargetSelector, selectorData{
			page:    r.page(sc),
			FlashID: flashID,
			Lang:    lang,
			Groups:  groups,
		})
	})
}

// Choice is one radio button.
type Choice struct {
	Value   int
	Label   string
	Checked bool
}

type modalData struct {
	page
	Flash     *model.Flash
	TTL       []Choice
	Durations []Choice
	Selector  selectorData
}

// TTLChoices returns the TTL radios with selected checked.
func TTLChoices(tr func(string) string, selected int) []Choice {
	choices := make([]Choice, 0, len(expiry.TTLBuckets))
	for _, days := range expiry.TTLBuckets {
		label := tr("ttl_none")
		if days > 0 {
			label = i18n.Format(tr("ttl_days"), "n", days)
		}
		choices = append(choices, Choice{Value: days, Label: label, Checked: days == selected})
	}
	return choices
}

// DurationChoices returns the slide duration radios with selected checked.
func DurationChoices(tr func(string) string, selected int) []Choice {
	choices := make([]Choice, 0, len(expiry.DurationChoices))
	for _, sec := range expiry.DurationChoices {
		choices = append(choices, Choice{
			Value:   sec,
			Label:   i18n.Format(tr("duration_seconds"), "n", sec),
			Checked: sec == selected,
		})
	}
	return choices
}

// TargetsModal renders the display management modal for flash: TTL bucket,
// slide duration and the display selector. Unlike TargetSelector, only live
// assignments are checked. Saving is done by an external endpoint.
func (r *Renderer) TargetsModal(
	ctx context.Context,
	w io.Writer,
	sc *session.Context,
	flash *model.Flash,
) error {
	if flash == nil || flash.ID <= 0 {
		return r.Notice(w, sc, "error", "error_flash_missing")
	}
	return r.withStore(ctx, w, sc, FragmentTargetsModal, nil, func(st store.Store) error {
		p := r.page(sc)
		ttl := expiry.InferTTLBucket(flash.DisplayExpiresAt, r.now())
		duration := expiry.DurationOrDefault(flash.DisplayDurationSeconds)

		return r.execute(w, FragmentTargetsModal, modalData{
			page:      p,
			Flash:     flash,
			TTL:       TTLChoices(p.T, ttl),
			Durations: DurationChoices(p.T, duration),
			Selector: selectorData{
				page:    p,
				FlashID: flash.ID,
				Lang:    flash.Lang,
				Groups:  r.selectorFor(ctx, st, FragmentTargetsModal, flash.ID, flash.Lang, true),
			},
		})
	})
}
