package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/safetyflash/internal/expiry"
	"github.com/nhle/safetyflash/internal/model"
	"github.com/nhle/safetyflash/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill an empty database with demo displays and flashes",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := seedDemo(cmd.Context(), st, time.Now())
		if err != nil {
			return err
		}
		logger.Info("seeded demo data", zap.Int("flashes", n))
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d flashes\n", n)
		return nil
	},
}

type demoFlash struct {
	flash   model.Flash
	targets []int // indexes into the created displays
	live    bool
}

// seedDemo creates a small set of displays and flashes covering every
// playlist status. It returns the number of flashes created.
func seedDemo(ctx context.Context, st store.Store, now time.Time) (int, error) {
	displays := []model.DisplayKey{
		{Site: "Helsinki HQ", SiteGroup: "Helsinki", Label: "Aula", Lang: "fi", SortOrder: 1, IsActive: true},
		{Site: "Helsinki HQ", SiteGroup: "Helsinki", Label: "Ruokala", Lang: "fi", SortOrder: 2, IsActive: true},
		{Site: "Vaasa", SiteGroup: "Vaasa", Label: "Matsal", Lang: "sv", SortOrder: 1, IsActive: true},
		{Site: "Tallinn", SiteGroup: "Tallinn", Label: "Lobby", Lang: "en", SortOrder: 1, IsActive: true},
	}
	displayIDs := make([]int64, len(displays))
	for i, d := range displays {
		id, err := st.CreateDisplayKey(ctx, d)
		if err != nil {
			return 0, err
		}
		displayIDs[i] = id
	}

	ago := func(d time.Duration) *time.Time {
		t := now.Add(-d)
		return &t
	}
	in := func(days int) *time.Time {
		return expiry.ExpiresAt(days, now)
	}
	day := 24 * time.Hour

	flashes := []demoFlash{
		{flash: model.Flash{
			Lang: "fi", State: model.StatePublished, Type: model.TypeRed,
			Title: "Putoava esine telineeltä", Site: "Helsinki HQ", SiteDetail: "Porraskäytävä B",
			OccurredAt: ago(3 * day), PublishedAt: ago(2 * day), DisplayExpiresAt: in(28),
		}, targets: []int{0, 1}, live: true},
		{flash: model.Flash{
			Lang: "fi", State: model.StatePublished, Type: model.TypeGreen,
			Title: "Siisti työmaa", Site: "Helsinki HQ",
			OccurredAt: ago(10 * day), PublishedAt: ago(9 * day), DisplayExpiresAt: ago(day),
		}, targets: []int{0}, live: true},
		{flash: model.Flash{
			Lang: "fi", State: model.StatePublished, Type: model.TypeYellow,
			Title: "Liukas lattia ruokalassa", Site: "Helsinki HQ", SiteDetail: "Ruokala",
			OccurredAt: ago(5 * day), PublishedAt: ago(4 * day), DisplayRemovedAt: ago(day),
		}, targets: []int{1}, live: false},
		{flash: model.Flash{
			Lang: "sv", State: model.StatePublished, Type: model.TypeYellow,
			Title: "Nästan olycka vid lastkajen", Site: "Vaasa",
			OccurredAt: ago(2 * day), PublishedAt: ago(day),
		}, targets: []int{2}, live: true},
		{flash: model.Flash{
			Lang: "fi", State: model.StatePendingSupervisor, Type: model.TypeRed,
			Title: "Sähkökaapin ovi auki", Site: "Helsinki HQ",
			OccurredAt: ago(day),
		}, targets: []int{0}, live: false},
	}

	var reviewerFlash int64
	for i, df := range flashes {
		id, err := st.CreateFlash(ctx, df.flash)
		if err != nil {
			return i, err
		}
		for order, idx := range df.targets {
			err := st.AssignTarget(ctx, model.Target{
				FlashID:      id,
				DisplayKeyID: displayIDs[idx],
				IsActive:     df.live,
				SortOrder:    order + 1,
			})
			if err != nil {
				return i, err
			}
		}
		if df.flash.State == model.StatePendingSupervisor {
			reviewerFlash = id
		}
	}

	if reviewerFlash > 0 {
		uid, err := st.CreateUser(ctx, model.User{FirstName: "Maija", LastName: "Mehiläinen", Email: "maija@example.com"})
		if err != nil {
			return len(flashes), err
		}
		if err := st.AssignReviewer(ctx, reviewerFlash, uid); err != nil {
			return len(flashes), fmt.Errorf("assigning demo reviewer: %w", err)
		}
	}
	return len(flashes), nil
}
