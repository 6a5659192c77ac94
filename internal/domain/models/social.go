package models

import "time"

type FriendActivity struct {
	UserID    string        `json:"userId"`
	Username  string        `json:"username"`
	Activity  string        `json:"activity"` // watched | reviewed | added_to_watchlist | created_list
	Item      WatchlistItem `json:"item"`
	Timestamp time.Time     `json:"timestamp"`
	Details   string        `json:"details,omitempty"`
}

type CommonInterest struct {
	ImdbID       string  `json:"imdbId"`
	Title        string  `json:"title"`
	Poster       string  `json:"poster"`
	Year         string  `json:"year"`
	Type         string  `json:"type"`
	MutualRating float64 `json:"mutualRating"`
	User1Rating  float64 `json:"user1Rating"`
	User2Rating  float64 `json:"user2Rating"`
	User1Watched bool    `json:"user1Watched"`
	User2Watched bool    `json:"user2Watched"`
}

type HiddenGem struct {
	ID          string    `json:"id"`
	ImdbID      string    `json:"imdbId"`
	Title       string    `json:"title"`
	Year        string    `json:"year"`
	Type        string    `json:"type"`
	Poster      string    `json:"poster"`
	Description string    `json:"description"`
	SubmittedBy string    `json:"submittedBy"`
	SubmittedAt time.Time `json:"submittedAt"`
	Upvotes     int       `json:"upvotes"`
	Downvotes   int       `json:"downvotes"`
	Tags        []string  `json:"tags"`
	Verified    bool      `json:"verified"`
}

type WatchParty struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	HostID        string        `json:"hostId"`
	Participants  []string      `json:"participants"`
	MovieID       string        `json:"movieId"`
	ScheduledDate time.Time     `json:"scheduledDate"`
	Duration      int           `json:"duration"`
	Cost          float64       `json:"cost"`
	CostPerPerson float64       `json:"costPerPerson"`
	Status        string        `json:"status"` // scheduled | active | completed | cancelled
	ChatMessages  []ChatMessage `json:"chatMessages"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type ChatMessage struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	Username       string     `json:"username"`
	Message        string     `json:"message"`
	Timestamp      time.Time  `json:"timestamp"`
	Reactions      []Reaction `json:"reactions"`
	SceneTimestamp *int       `json:"sceneTimestamp,omitempty"`
}

type Reaction struct {
	Emoji string   `json:"emoji"`
	Users []string `json:"users"`
}

type CollaborativeList struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	OwnerID       string          `json:"ownerId"`
	Collaborators []string        `json:"collaborators"`
	Items         []WatchlistItem `json:"items"`
	IsPublic      bool            `json:"isPublic"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type MoodCollection struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Mood        string          `json:"mood"`
	Color       string          `json:"color"`
	Banner      string          `json:"banner"`
	Items       []WatchlistItem `json:"items"`
	IsPublic    bool            `json:"isPublic"`
	CreatedBy   string          `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Followers   []string        `json:"followers"`
}

type StreamingPlatform struct {
	Name         string   `json:"name"`
	Region       string   `json:"region"`
	URL          string   `json:"url"`
	Price        *float64 `json:"price,omitempty"`
	Subscription bool     `json:"subscription"`
}

type StreamingAvailability struct {
	ImdbID      string              `json:"imdbId"`
	Platforms   []StreamingPlatform `json:"platforms"`
	LastUpdated time.Time           `json:"lastUpdated"`
}
