package accounts

import (
	"context"
	"sort"
	"time"

	"fym/proj/internal/domain/models"
)

func listNameOrDefault(name string) string {
	if name == "" {
		return models.DefaultWatchlist
	}
	return name
}

// AddToWatchlist creates the list on first use and is idempotent on the movie
// id: adding an item that is already on the list changes nothing.
func (s *AccountService) AddToWatchlist(ctx context.Context, userID string, item models.WatchlistItem, listName string) (*models.Account, error) {
	const op = "accounts.AccountService.AddToWatchlist"
	listName = listNameOrDefault(listName)
	return s.mutate(ctx, op, userID, func(acc *models.Account) (bool, error) {
		now := s.now().UTC()
		list := acc.Watchlist(listName)
		if list == nil {
			acc.Watchlists = append(acc.Watchlists, models.Watchlist{
				Name:          listName,
				Items:         []models.WatchlistItem{},
				CreatedAt:     now,
				UpdatedAt:     now,
				Collaborators: []string{},
			})
			list = &acc.Watchlists[len(acc.Watchlists)-1]
		}
		if list.Item(item.ImdbID) != nil {
			return false, nil
		}
		item.AddedAt = now
		item.Watched = false
		item.WatchedAt = nil
		list.Items = append(list.Items, item)
		list.UpdatedAt = now
		return true, nil
	})
}

// RemoveFromWatchlist is lenient: a missing list or item is a no-op.
func (s *AccountService) RemoveFromWatchlist(ctx context.Context, userID, movieID, listName string) (*models.Account, error) {
	const op = "accounts.AccountService.RemoveFromWatchlist"
	listName = listNameOrDefault(listName)
	return s.mutate(ctx, op, userID, func(acc *models.Account) (bool, error) {
		list := acc.Watchlist(listName)
		if list == nil {
			return false, nil
		}
		kept := list.Items[:0:0]
		for _, it := range list.Items {
			if it.ImdbID != movieID {
				kept = append(kept, it)
			}
		}
		if len(kept) == len(list.Items) {
			return false, nil
		}
		list.Items = kept
		list.UpdatedAt = s.now().UTC()
		return true, nil
	})
}

func (s *AccountService) MarkWatched(ctx context.Context, userID, movieID, listName string) (*models.Account, error) {
	const op = "accounts.AccountService.MarkWatched"
	listName = listNameOrDefault(listName)
	return s.mutate(ctx, op, userID, func(acc *models.Account) (bool, error) {
		item, list := findItem(acc, movieID, listName)
		if item == nil {
			return false, ErrWatchlistItemNotFound
		}
		now := s.now().UTC()
		item.Watched = true
		item.WatchedAt = &now
		list.UpdatedAt = now
		return true, nil
	})
}

// UpdateItemNotes replaces the notes and the personal rating of an item. A nil
// rating clears it.
func (s *AccountService) UpdateItemNotes(ctx context.Context, userID, movieID, listName, notes string, rating *int) (*models.Account, error) {
	const op = "accounts.AccountService.UpdateItemNotes"
	listName = listNameOrDefault(listName)
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, ErrInvalidReview
	}
	return s.mutate(ctx, op, userID, func(acc *models.Account) (bool, error) {
		item, list := findItem(acc, movieID, listName)
		if item == nil {
			return false, ErrWatchlistItemNotFound
		}
		item.Notes = notes
		item.Rating = rating
		list.UpdatedAt = s.now().UTC()
		return true, nil
	})
}

func findItem(acc *models.Account, movieID, listName string) (*models.WatchlistItem, *models.Watchlist) {
	list := acc.Watchlist(listName)
	if list == nil {
		return nil, nil
	}
	return list.Item(movieID), list
}

func (s *AccountService) Watchlists(ctx context.Context, userID string) ([]models.Watchlist, error) {
	acc, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return acc.Watchlists, nil
}

// WatchHistory lists watched items across all lists, most recent first.
func (s *AccountService) WatchHistory(ctx context.Context, userID string) ([]models.WatchlistItem, error) {
	acc, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	history := []models.WatchlistItem{}
	for _, list := range acc.Watchlists {
		for _, it := range list.Items {
			if it.Watched {
				history = append(history, it)
			}
		}
	}
	sort.SliceStable(history, func(i, j int) bool {
		return watchedAt(history[i]).After(watchedAt(history[j]))
	})
	return history, nil
}

func watchedAt(it models.WatchlistItem) time.Time {
	if it.WatchedAt == nil {
		return time.Time{}
	}
	return *it.WatchedAt
}
