package social

import (
	"time"

	"fym/proj/internal/domain/models"
)

type streamingService struct {
	name         string
	url          string
	monthlyPrice float64
	regions      []string
}

var allRegions = []string{"US", "UK", "CA", "AU", "DE", "FR", "JP", "IN", "BR", "MX"}

var streamingServices = map[string]streamingService{
	"netflix": {name: "Netflix", url: "https://www.netflix.com", monthlyPrice: 15.49, regions: allRegions},
	"disney":  {name: "Disney+", url: "https://www.disneyplus.com", monthlyPrice: 7.99, regions: allRegions},
	"hulu":    {name: "Hulu", url: "https://www.hulu.com", monthlyPrice: 7.99, regions: []string{"US"}},
	"amazon":  {name: "Prime Video", url: "https://www.primevideo.com", monthlyPrice: 8.99, regions: allRegions},
	"hbo":     {name: "HBO Max", url: "https://www.max.com", monthlyPrice: 14.99, regions: []string{"US", "UK", "CA", "AU", "DE", "FR", "BR", "MX"}},
}

const (
	posterBeforeSunrise = "https://m.media-amazon.com/images/M/MV5BZDdiZTAwYzAtMDI3Ni00OTRjLTkzN2UtMGE3MDMyZmU4NTU4XkEyXkFqcGdeQXVyNjU0OTQ0OTY@._V1_SX300.jpg"
	posterDonnieDarko   = "https://m.media-amazon.com/images/M/MV5BZjZlZDlkYTktMmU1My00ZDBiLWFlNjEtYTBhNjVlOTc4YjM2XkEyXkFqcGdeQXVyMTMxODk2OTU@._V1_SX300.jpg"
	posterBigLebowski   = "https://m.media-amazon.com/images/M/MV5BMTQ0NjUzMDMyOF5BMl5BanBnXkFtZTgwODA1OTU0MDE@._V1_SX300.jpg"
	posterDeadPoets     = "https://m.media-amazon.com/images/M/MV5BOGYwYWNjMzgtNGU4ZC00NWQ2LWEwZjUtMzE1Zjc3NjY3YTU1XkEyXkFqcGdeQXVyMTQxNzMzNDI@._V1_SX300.jpg"
	posterInception     = "https://m.media-amazon.com/images/M/MV5BMjAxMzY3NjcxNF5BMl5BanBnXkFtZTcwNTI5OTM0Mw@@._V1_SX300.jpg"
	posterLaLaLand      = "https://m.media-amazon.com/images/M/MV5BMzUzNDM2NzM2MV5BMl5BanBnXkFtZTgwNTM3NTg4OTE@._V1_SX300.jpg"
	posterDarkKnight    = "https://m.media-amazon.com/images/M/MV5BMTMxNTMwODM0NF5BMl5BanBnXkFtZTcwODAyMTk2Mw@@._V1_SX300.jpg"
	posterInterstellar  = "https://m.media-amazon.com/images/M/MV5BZjdkOTU3MDktN2IxOS00OGEyLWFmMjktY2FiMmZkNWIyODZiXkEyXkFqcGdeQXVyMTMxODk2OTU@._V1_SX300.jpg"
	posterLionKing      = "https://m.media-amazon.com/images/M/MV5BYTYxNGMyZTYtMjE3MS00MzNjLWFjNmYtMDk3N2FjMjhiYzNhXkEyXkFqcGdeQXVyNjY5NDU4NzI@._V1_SX300.jpg"
	posterShining       = "https://m.media-amazon.com/images/M/MV5BZWFlYmY2MGEtZjVkYS00YzU4LTg0YjQtYzY1ZGE3NTA5NGQxXkEyXkFqcGdeQXVyMTQxNzMzNDI@._V1_SX300.jpg"
	posterPrincessBride = "https://m.media-amazon.com/images/M/MV5BMGM4M2Q5N2MtNThkZS00NTc1LTk1NTUtNWE5N2FmNzM0ZTAyXkEyXkFqcGdeQXVyNjE0ODc0MDc@._V1_SX300.jpg"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T { return &v }

type seedData struct {
	activity  []models.FriendActivity
	interests map[string][]models.CommonInterest
	gems      []models.HiddenGem
	parties   []models.WatchParty
	lists     []models.CollaborativeList
	moods     []models.MoodCollection
	streaming map[string][]string
}

// seed returns fresh copies on every call so that separate providers never
// share state.
func seed() seedData {
	return seedData{
		activity: []models.FriendActivity{
			{
				UserID: "2", Username: "AlexMovieBuff", Activity: "watched",
				Item: models.WatchlistItem{
					ImdbID: "tt1375666", Title: "Inception", Year: "2010", Type: models.TypeMovie, Poster: posterInception,
					AddedAt: ts("2024-01-25T10:00:00Z"), Watched: true, WatchedAt: ptr(ts("2024-01-25T20:00:00Z")),
					Rating: ptr(5), Notes: "Mind-blowing! Nolan at his best.",
				},
				Timestamp: ts("2024-01-25T20:30:00Z"),
				Details:   "Rated 5/5 stars",
			},
			{
				UserID: "3", Username: "SarahCinema", Activity: "added_to_watchlist",
				Item: models.WatchlistItem{
					ImdbID: "tt3783958", Title: "La La Land", Year: "2016", Type: models.TypeMovie, Poster: posterLaLaLand,
					AddedAt: ts("2024-01-26T15:00:00Z"),
				},
				Timestamp: ts("2024-01-26T15:00:00Z"),
				Details:   `Added to "Must Watch" list`,
			},
			{
				UserID: "2", Username: "AlexMovieBuff", Activity: "reviewed",
				Item: models.WatchlistItem{
					ImdbID: "tt0468569", Title: "The Dark Knight", Year: "2008", Type: models.TypeMovie, Poster: posterDarkKnight,
					AddedAt: ts("2024-01-24T10:00:00Z"), Watched: true, WatchedAt: ptr(ts("2024-01-24T19:00:00Z")),
					Rating: ptr(5), Notes: "Heath Ledger's Joker is legendary!",
				},
				Timestamp: ts("2024-01-24T19:30:00Z"),
				Details:   `Wrote a review: "Masterpiece of cinema"`,
			},
		},
		interests: map[string][]models.CommonInterest{
			"": {
				{ImdbID: "tt1375666", Title: "Inception", Poster: posterInception, Year: "2010", Type: models.TypeMovie,
					MutualRating: 4.5, User1Rating: 5, User2Rating: 4, User1Watched: true, User2Watched: true},
				{ImdbID: "tt0468569", Title: "The Dark Knight", Poster: posterDarkKnight, Year: "2008", Type: models.TypeMovie,
					MutualRating: 4.8, User1Rating: 5, User2Rating: 4.6, User1Watched: true, User2Watched: true},
				{ImdbID: "tt0816692", Title: "Interstellar", Poster: posterInterstellar, Year: "2014", Type: models.TypeMovie,
					MutualRating: 4.2, User1Rating: 4.5, User2Rating: 3.9, User1Watched: true},
				{ImdbID: "tt3783958", Title: "La La Land", Poster: posterLaLaLand, Year: "2016", Type: models.TypeMovie,
					MutualRating: 4.0, User1Rating: 3.5, User2Rating: 4.5, User2Watched: true},
			},
		},
		gems: []models.HiddenGem{
			{
				ID: "1", ImdbID: "tt0112471", Title: "Before Sunrise", Year: "1995", Type: models.TypeMovie, Poster: posterBeforeSunrise,
				Description: "A beautiful, intimate conversation between two strangers who meet on a train. This film captures the magic of connection and the fleeting nature of time.",
				SubmittedBy: "2", SubmittedAt: ts("2024-01-20T10:00:00Z"), Upvotes: 45, Downvotes: 2,
				Tags: []string{"romance", "drama", "indie", "conversation"}, Verified: true,
			},
			{
				ID: "2", ImdbID: "tt0246578", Title: "Donnie Darko", Year: "2001", Type: models.TypeMovie, Poster: posterDonnieDarko,
				Description: "A mind-bending psychological thriller that explores time travel, destiny, and the nature of reality. A cult classic that gets better with each viewing.",
				SubmittedBy: "3", SubmittedAt: ts("2024-01-22T14:00:00Z"), Upvotes: 38, Downvotes: 5,
				Tags: []string{"sci-fi", "thriller", "psychological", "cult"}, Verified: true,
			},
			{
				ID: "3", ImdbID: "tt0118715", Title: "The Big Lebowski", Year: "1998", Type: models.TypeMovie, Poster: posterBigLebowski,
				Description: "The Dude abides. A hilarious and quotable comedy that has become a cultural phenomenon. Perfect for a laid-back movie night.",
				SubmittedBy: "1", SubmittedAt: ts("2024-01-25T16:00:00Z"), Upvotes: 52, Downvotes: 1,
				Tags: []string{"comedy", "crime", "cult", "quotable"},
			},
			{
				ID: "4", ImdbID: "tt0097165", Title: "Dead Poets Society", Year: "1989", Type: models.TypeMovie, Poster: posterDeadPoets,
				Description: "An inspiring story about a teacher who changes his students' lives through poetry. Robin Williams delivers a powerful performance.",
				SubmittedBy: "4", SubmittedAt: ts("2024-01-26T09:00:00Z"), Upvotes: 41, Downvotes: 3,
				Tags: []string{"drama", "inspirational", "education", "robin-williams"}, Verified: true,
			},
		},
		parties: []models.WatchParty{
			{
				ID: "1", Title: "Marvel Movie Night", Description: "Watching the latest Marvel movie together!",
				HostID: "1", Participants: []string{"2", "3", "4"}, MovieID: "tt4154796",
				ScheduledDate: ts("2024-02-15T20:00:00Z"), Duration: 150, Cost: 15.99, CostPerPerson: 3.99,
				Status: "scheduled", ChatMessages: []models.ChatMessage{}, CreatedAt: ts("2024-01-25T10:00:00Z"),
			},
			{
				ID: "2", Title: "Horror Movie Marathon", Description: "Spooky night with classic horror films",
				HostID: "2", Participants: []string{"1", "3"}, MovieID: "tt0081505",
				ScheduledDate: ts("2024-02-20T19:00:00Z"), Duration: 180,
				Status: "scheduled", ChatMessages: []models.ChatMessage{}, CreatedAt: ts("2024-01-26T14:00:00Z"),
			},
		},
		lists: []models.CollaborativeList{
			{
				ID: "1", Name: "Family Movie Night", OwnerID: "1", Collaborators: []string{"1", "2", "3"}, IsPublic: true,
				Items: []models.WatchlistItem{{
					ImdbID: "tt0110357", Title: "The Lion King", Year: "1994", Type: models.TypeMovie, Poster: posterLionKing,
					AddedAt: ts("2024-01-20T10:00:00Z"), Notes: "Perfect for family viewing",
				}},
				CreatedAt: ts("2024-01-15T10:00:00Z"), UpdatedAt: ts("2024-01-25T10:00:00Z"),
			},
			{
				ID: "2", Name: "Horror Movie Marathon", OwnerID: "1", Collaborators: []string{"1", "4"},
				Items: []models.WatchlistItem{{
					ImdbID: "tt0081505", Title: "The Shining", Year: "1980", Type: models.TypeMovie, Poster: posterShining,
					AddedAt: ts("2024-01-22T14:00:00Z"), Notes: "Classic horror film",
				}},
				CreatedAt: ts("2024-01-20T14:00:00Z"), UpdatedAt: ts("2024-01-26T14:00:00Z"),
			},
		},
		moods: []models.MoodCollection{
			{
				ID: "1", Name: "Cozy Rainy Day Movies", Mood: "Cozy", Color: "#84cc16",
				Description: "Perfect films to watch when it's raining outside and you want to stay warm and cozy.",
				Banner:      "https://images.unsplash.com/photo-1513475382585-d06e58bcb0e0?w=800&h=400&fit=crop",
				Items: []models.WatchlistItem{{
					ImdbID: "tt0093779", Title: "The Princess Bride", Year: "1987", Type: models.TypeMovie, Poster: posterPrincessBride,
					AddedAt: ts("2024-01-25T10:00:00Z"),
				}},
				IsPublic: true, CreatedBy: "2", Followers: []string{"1", "3", "4"},
				CreatedAt: ts("2024-01-20T10:00:00Z"), UpdatedAt: ts("2024-01-25T10:00:00Z"),
			},
			{
				ID: "2", Name: "Mind-Bending Sci-Fi", Mood: "Excited", Color: "#ef4444",
				Description: "Science fiction films that will make you question reality and blow your mind.",
				Banner:      "https://images.unsplash.com/photo-1446776877081-d282a0f896e2?w=800&h=400&fit=crop",
				Items: []models.WatchlistItem{{
					ImdbID: "tt1375666", Title: "Inception", Year: "2010", Type: models.TypeMovie, Poster: posterInception,
					AddedAt: ts("2024-01-25T10:00:00Z"),
				}},
				IsPublic: true, CreatedBy: "3", Followers: []string{"1", "2", "5"},
				CreatedAt: ts("2024-01-22T14:00:00Z"), UpdatedAt: ts("2024-01-26T14:00:00Z"),
			},
		},
		streaming: map[string][]string{
			"tt0112471": {"netflix", "hulu"},
			"tt0246578": {"netflix", "amazon"},
			"tt0118715": {"hbo", "amazon"},
			"tt0097165": {"disney", "hulu"},
		},
	}
}
