package models

// Locale selects which service's feed conventions a pipeline run uses.
type Locale string

const (
	// LocaleJapan is the domestic service.
	LocaleJapan Locale = "jp"
	// LocaleInternational is the international service.
	LocaleInternational Locale = "intl"
)

// CurrentVersion is the version label of the latest release. Entries
// mapped to it are flagged is_new.
const CurrentVersion = "maimai でらっくす PRiSM"

// SpecialCase pins the id (and optionally the title) of an entry whose
// source title collides with another song. Keyed by the image-derived
// id, which is stable across feed updates.
type SpecialCase struct {
	ID    string
	Title string
}

// Profile bundles every locale-specific constant of the pipeline.
// All differences between the domestic and international runs live
// here as data; the transform code is shared.
type Profile struct {
	Locale Locale

	// PlusStep is added to a rating whose label carries a '+' modifier.
	PlusStep float64

	// PadMissingTiers keeps charts index-aligned with the tier list by
	// appending zero-filled rows for tiers without note data.
	PadMissingTiers bool

	// AssignChartIDs enables per-rating sequential chart ids.
	AssignChartIDs bool

	// UtageRatingKeys are tried in order for the special-event rating.
	UtageRatingKeys []string

	// CurrentVersion is the label that marks an entry as new.
	CurrentVersion string

	// RecentVersions is the freshness window for cached-catalog
	// adoption: entries older than these trust the cache for ids,
	// entries within them trust the cache for ratings and note data.
	RecentVersions []string

	// SpecialCases maps image-derived ids to pinned identities.
	SpecialCases map[string]SpecialCase

	// DateOverrides forces the release date of specific titles whose
	// feed dates are historically wrong.
	DateOverrides map[string]string
}

// JapanProfile returns the domestic pipeline constants.
func JapanProfile() Profile {
	return Profile{
		Locale:          LocaleJapan,
		PlusStep:        0.5,
		UtageRatingKeys: []string{"lev_utage_i", "lev_utage"},
		CurrentVersion:  CurrentVersion,
		SpecialCases: map[string]SpecialCase{
			"1e44516a8a3b5a51": {ID: "131"},
			"e90f79d9dcff84df": {ID: "383"},
		},
	}
}

// InternationalProfile returns the international pipeline constants.
func InternationalProfile() Profile {
	return Profile{
		Locale:          LocaleInternational,
		PlusStep:        0.6,
		PadMissingTiers: true,
		AssignChartIDs:  true,
		UtageRatingKeys: []string{"lev_utage"},
		CurrentVersion:  CurrentVersion,
		RecentVersions: []string{
			"maimai でらっくす PRiSM",
			"maimai でらっくす PRiSM PLUS",
		},
		SpecialCases: map[string]SpecialCase{
			"1e44516a8a3b5a51": {ID: "131", Title: "Link"},
			"e90f79d9dcff84df": {ID: "383", Title: "Link(COF)"},
		},
		DateOverrides: map[string]string{
			"夜明けまであと３秒": "20170214",
			"みんなの":      "20181002",
		},
	}
}
