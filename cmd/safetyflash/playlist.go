package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nhle/safetyflash/internal/expiry"
	"github.com/nhle/safetyflash/internal/i18n"
	"github.com/nhle/safetyflash/internal/model"
	"github.com/nhle/safetyflash/internal/theme"
)

var (
	playlistDisplay int64
	playlistLang    string
)

var playlistCmd = &cobra.Command{
	Use:   "playlist",
	Short: "Print the current playlist of a display",
	RunE: func(cmd *cobra.Command, args []string) error {
		if playlistDisplay <= 0 {
			return fmt.Errorf("--display must be a positive display id")
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		display, err := st.GetDisplayKey(ctx, playlistDisplay)
		if err != nil {
			return err
		}
		items, err := st.GetPlaylist(ctx, playlistDisplay, time.Now(), cfg.Playlist.Limit)
		if err != nil {
			return err
		}

		terms := i18n.New(cfg.I18n.DefaultLang, nil)
		if cfg.I18n.TermsFile != "" {
			if err := terms.Load(cfg.I18n.TermsFile); err != nil {
				return err
			}
		}
		lang := playlistLang
		if lang == "" {
			lang = display.Lang
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderPlaylist(display, items, terms.Translator(lang)))
		return nil
	},
}

func init() {
	playlistCmd.Flags().Int64Var(&playlistDisplay, "display", 0, "display key id")
	playlistCmd.Flags().StringVar(&playlistLang, "lang", "", "term language (defaults to the display's)")
}

// renderPlaylist lays out the playlist as numbered slides tinted by type.
func renderPlaylist(display *model.DisplayKey, items []model.PlaylistItem, tr func(string) string) string {
	var b strings.Builder

	header := display.Label
	if display.SiteGroup != "" {
		header += " · " + display.SiteGroup
	}
	b.WriteString(theme.HeaderStyle.Render(header))
	b.WriteString("\n")

	if len(items) == 0 {
		b.WriteString(theme.MutedStyle.Render(tr("playlist_empty")))
		return b.String()
	}

	for i, item := range items {
		f := item.Flash
		body := lipgloss.JoinVertical(lipgloss.Left,
			theme.TypeStyle(f.Type).Render(tr("type_"+typeOrDefault(f.Type))),
			f.Title,
			theme.MutedStyle.Render(fmt.Sprintf("%s · %d s", siteLine(f), expiry.DurationOrDefault(f.DisplayDurationSeconds))),
		)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			theme.PositionStyle.Render(fmt.Sprintf("%d.", i+1)),
			theme.SlideFor(f.Type).Render(body),
		))
		b.WriteString("\n")
	}
	return b.String()
}

func typeOrDefault(t string) string {
	switch t {
	case model.TypeRed, model.TypeGreen:
		return t
	default:
		return model.TypeYellow
	}
}

func siteLine(f model.Flash) string {
	switch {
	case f.Site == "":
		return "-"
	case f.SiteDetail == "":
		return f.Site
	default:
		return f.Site + ", " + f.SiteDetail
	}
}
