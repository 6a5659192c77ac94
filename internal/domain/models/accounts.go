package models

import "time"

// AccountSchemaVersion tags every stored account document so that later shape
// changes can be migrated instead of silently misread.
const AccountSchemaVersion = 1

const DefaultWatchlist = "default"

type Account struct {
	ID            string      `json:"id"`
	Email         string      `json:"email"`
	PasswordHash  []byte      `json:"passwordHash,omitempty"`
	Username      string      `json:"username"`
	CreatedAt     time.Time   `json:"createdAt"`
	Watchlists    []Watchlist `json:"watchlists"`
	Reviews       []Review    `json:"reviews"`
	Friends       []string    `json:"friends"`
	Preferences   Preferences `json:"preferences"`
	Settings      Settings    `json:"settings"`
	Version       uint        `json:"version"`
	SchemaVersion int         `json:"schemaVersion"`
}

// Public returns a copy that is safe to hand to clients.
func (a *Account) Public() *Account {
	cp := *a
	cp.PasswordHash = nil
	return &cp
}

func (a *Account) Watchlist(name string) *Watchlist {
	for i := range a.Watchlists {
		if a.Watchlists[i].Name == name {
			return &a.Watchlists[i]
		}
	}
	return nil
}

type Watchlist struct {
	Name          string          `json:"name"`
	Items         []WatchlistItem `json:"items"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	IsPublic      bool            `json:"isPublic"`
	Collaborators []string        `json:"collaborators"`
}

func (w *Watchlist) Item(imdbID string) *WatchlistItem {
	for i := range w.Items {
		if w.Items[i].ImdbID == imdbID {
			return &w.Items[i]
		}
	}
	return nil
}

type WatchlistItem struct {
	ImdbID    string     `json:"imdbID"`
	Title     string     `json:"Title"`
	Year      string     `json:"Year"`
	Type      string     `json:"Type"`
	Poster    string     `json:"Poster"`
	AddedAt   time.Time  `json:"addedAt"`
	Watched   bool       `json:"watched"`
	WatchedAt *time.Time `json:"watchedAt,omitempty"`
	Rating    *int       `json:"rating,omitempty"`
	Notes     string     `json:"notes"`
	Progress  *int       `json:"progress,omitempty"` // percent watched, series only
}

type Review struct {
	ImdbID    string    `json:"imdbId"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	Watched   bool      `json:"watched"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Likes     int       `json:"likes"`
	Helpful   int       `json:"helpful"`
}

type Preferences struct {
	FavoriteGenres     []string `json:"favoriteGenres"`
	FavoriteActors     []string `json:"favoriteActors"`
	FavoriteDirectors  []string `json:"favoriteDirectors"`
	PreferredLanguages []string `json:"preferredLanguages"`
	MinRating          float64  `json:"minRating"`
	MaxRuntime         int      `json:"maxRuntime"`
	ExcludeGenres      []string `json:"excludeGenres"`
}

type Settings struct {
	Theme         string               `json:"theme" validate:"oneof=dark light"`
	Notifications NotificationSettings `json:"notifications"`
	Privacy       PrivacySettings      `json:"privacy"`
	FamilyMode    FamilyModeSettings   `json:"familyMode"`
}

type NotificationSettings struct {
	Email            bool `json:"email"`
	Push             bool `json:"push"`
	WatchlistUpdates bool `json:"watchlistUpdates"`
	FriendActivity   bool `json:"friendActivity"`
}

type PrivacySettings struct {
	ProfilePublic   bool `json:"profilePublic"`
	WatchlistPublic bool `json:"watchlistPublic"`
	ReviewsPublic   bool `json:"reviewsPublic"`
}

type FamilyModeSettings struct {
	Enabled          bool     `json:"enabled"`
	Restrictions     []string `json:"restrictions"`
	ApprovalRequired bool     `json:"approvalRequired"`
}

func DefaultSettings() Settings {
	return Settings{
		Theme: "dark",
		Notifications: NotificationSettings{
			Email:            true,
			WatchlistUpdates: true,
			FriendActivity:   true,
		},
		Privacy: PrivacySettings{
			ProfilePublic: true,
			ReviewsPublic: true,
		},
		FamilyMode: FamilyModeSettings{Restrictions: []string{}},
	}
}
