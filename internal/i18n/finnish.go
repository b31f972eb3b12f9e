package i18n

// finnish holds the built-in Finnish terms every lookup falls back to.
var finnish = map[string]string{
	// Display selector
	"display_targets_none": "Tälle kielelle ei ole aktiivisia infonäyttöjä.",
	"display_group_other":  "Muut",
	"display_select_all":   "Valitse kaikki",
	"display_select_none":  "Poista valinnat",

	// Display targets modal
	"targets_modal_title": "Infonäyttöjen hallinta",
	"ttl_heading":         "Näkyvyysaika",
	"ttl_none":            "Ei vanhenemista",
	"ttl_days":            "{n} päivää",
	"duration_heading":    "Näyttöaika diaa kohden",
	"duration_seconds":    "{n} s",
	"targets_heading":     "Infonäytöt",
	"cancel":              "Peruuta",
	"save":                "Tallenna",

	// Flash types
	"type_red":    "Vaaratilanne",
	"type_yellow": "Läheltä piti",
	"type_green":  "Hyvä havainto",

	// Playlist manager
	"playlist_empty": "Soittolista on tyhjä.",
	"move_up":        "Siirrä ylös",
	"move_down":      "Siirrä alas",

	// States
	"status_draft":              "Luonnos",
	"status_pending_supervisor": "Odottaa esimiehen tarkastusta",
	"status_pending_review":     "Odottaa tarkastusta",
	"status_request_info":       "Lisätietoja pyydetty",
	"status_reviewed":           "Tarkastettu",
	"status_to_comms":           "Viestinnällä",
	"status_published":          "Julkaistu",
	"archived":                  "Arkistoitu",

	// Meta box
	"meta_type":         "Tyyppi",
	"meta_lang":         "Kieli",
	"meta_site":         "Työmaa",
	"meta_site_detail":  "Tarkempi sijainti",
	"meta_occurred_at":  "Tapahtuma-aika",
	"meta_published_at": "Julkaistu",
	"meta_summary":      "Lyhyt kuvaus",
	"meta_description":  "Kuvaus",
	"reviewers_heading": "Tarkastajat",
	"reviewers_none":    "Tarkastajia ei ole määritetty.",
	"reviewer_add":      "Lisää tarkastaja",
	"reviewer_replace":  "Vaihda",
	"reviewer_remove":   "Poista",

	// Targets status
	"targets_status_heading": "Infonäytöt",
	"targets_none":           "Ei valittuja infonäyttöjä.",
	"target_active":          "Näkyy näytöllä",
	"target_pending":         "Odottaa julkaisua",

	// Playlist status
	"playlist_status_heading": "Näkyvyys infonäytöillä",
	"playlist_status_active":  "Aktiivinen",
	"playlist_status_expired": "Vanhentunut",
	"playlist_status_removed": "Poistettu",
	"playlist_removed_at":     "Poistettu näytöiltä {date}",
	"playlist_expired_at":     "Vanhentui {date}",
	"playlist_no_expiry":      "Ei vanhenemispäivää",
	"expires_today":           "Vanhenee tänään",
	"expires_in_days":         "Vanhenee {n} päivän kuluttua",
	"playlist_remove":         "Poista näytöiltä",
	"playlist_restore":        "Palauta näytöille",
	"playlist_view":           "Näytä soittolista",

	// Errors
	"error_no_database":       "Tietokantayhteys puuttuu.",
	"error_flash_missing":     "Tiedotetta ei löytynyt.",
	"error_display_invalid":   "Virheellinen näytön tunniste.",
	"error_display_not_found": "Näyttöä ei löytynyt.",
}
