package filters

import (
	"sort"
	"strings"

	"fym/proj/internal/domain/models"
)

const (
	GemsAll      = "all"
	GemsVerified = "verified"
	GemsTrending = "trending"

	GemsSortRecent  = "recent"
	GemsSortPopular = "popular"
	GemsSortRating  = "rating"
)

const trendingGemUpvotes = 20

func FilterGems(gems []models.HiddenGem, filter, query string) []models.HiddenGem {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]models.HiddenGem, 0, len(gems))
	for _, g := range gems {
		if filter == GemsVerified && !g.Verified {
			continue
		}
		if filter == GemsTrending && g.Upvotes < trendingGemUpvotes {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(g.Title), query) &&
			!strings.Contains(strings.ToLower(g.Description), query) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// SortGems orders gems in place, best first.
func SortGems(gems []models.HiddenGem, by string) {
	sort.SliceStable(gems, func(i, j int) bool {
		a, b := gems[i], gems[j]
		switch by {
		case GemsSortRecent:
			return a.SubmittedAt.After(b.SubmittedAt)
		case GemsSortPopular:
			return a.Upvotes-a.Downvotes > b.Upvotes-b.Downvotes
		case GemsSortRating:
			return a.Upvotes > b.Upvotes
		}
		return false
	})
}
