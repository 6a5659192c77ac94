package social

import (
	"context"
	"time"

	"fym/proj/internal/clients/omdb"
	"fym/proj/internal/domain/models"
)

// Provider serves the social pages. Nothing behind it is shared between
// users or persisted across restarts.
type Provider interface {
	FriendActivity(ctx context.Context) ([]models.FriendActivity, error)
	CommonInterests(ctx context.Context, friendID string) ([]models.CommonInterest, error)
	HiddenGems(ctx context.Context, filter, sortBy, query string) ([]models.HiddenGem, error)
	SubmitGem(ctx context.Context, userID string, in GemInput) (*models.HiddenGem, error)
	VoteGem(ctx context.Context, gemID, direction string) (*models.HiddenGem, error)
	WatchParties(ctx context.Context) ([]models.WatchParty, error)
	CreateWatchParty(ctx context.Context, host Host, in WatchPartyInput) (*models.WatchParty, error)
	PostMessage(ctx context.Context, partyID string, author Host, text string) (*models.ChatMessage, error)
	CollaborativeLists(ctx context.Context) ([]models.CollaborativeList, error)
	CreateCollaborativeList(ctx context.Context, ownerID string, in ListInput) (*models.CollaborativeList, error)
	AddCollaborator(ctx context.Context, listID, userID string) (*models.CollaborativeList, error)
	MoodCollections(ctx context.Context) ([]models.MoodCollection, error)
	CreateMoodCollection(ctx context.Context, userID string, in MoodInput) (*models.MoodCollection, error)
	StreamingAvailability(ctx context.Context, imdbID, region string) (*models.StreamingAvailability, error)
}

// Searcher resolves a submitted gem title to a provider id.
type Searcher interface {
	Search(ctx context.Context, params omdb.SearchParams) (*models.SearchEnvelope, error)
}

type TaskExecutor interface {
	TryAdd(task func()) bool
}

const (
	VoteUp   = "up"
	VoteDown = "down"

	UnknownImdbID = "unknown"
	DefaultRegion = "US"
)

// Host identifies the signed-in user acting on a party.
type Host struct {
	ID       string
	Username string
}

type GemInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Year        string `json:"year" validate:"omitempty,max=9"`
	Type        string `json:"type" validate:"omitempty,oneof=movie series"`
	Description string `json:"description" validate:"required,max=2000"`
	// Tags is a comma separated list.
	Tags string `json:"tags" validate:"max=500"`
}

type WatchPartyInput struct {
	Title           string    `json:"title" validate:"required,max=200"`
	Description     string    `json:"description" validate:"max=2000"`
	MovieID         string    `json:"movieId" validate:"required"`
	MovieTitle      string    `json:"movieTitle"`
	ScheduledDate   time.Time `json:"scheduledDate" validate:"required"`
	Duration        int       `json:"duration" validate:"gte=0,lte=1440"`
	Cost            float64   `json:"cost" validate:"gte=0"`
	MaxParticipants int       `json:"maxParticipants" validate:"gte=0,lte=100"`
	Invitees        []string  `json:"invitees" validate:"max=20,dive,email"`
}

type ListInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	IsPublic    bool   `json:"isPublic"`
}

type MoodInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Mood        string `json:"mood" validate:"required,max=50"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
	Banner      string `json:"banner" validate:"omitempty,url"`
	IsPublic    bool   `json:"isPublic"`
}
