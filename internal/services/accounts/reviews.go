package accounts

import (
	"context"

	"fym/proj/internal/domain/models"
)

type ReviewInput struct {
	Rating  int
	Text    string
	Watched bool
}

// AddReview upserts the review for movieID: a second review of the same movie
// replaces the first instead of adding another.
func (s *AccountService) AddReview(ctx context.Context, userID, movieID string, in ReviewInput) (*models.Account, error) {
	const op = "accounts.AccountService.AddReview"
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidReview
	}
	return s.mutate(ctx, op, userID, func(acc *models.Account) (bool, error) {
		now := s.now().UTC()
		for i := range acc.Reviews {
			if acc.Reviews[i].ImdbID == movieID {
				acc.Reviews[i].Rating = in.Rating
				acc.Reviews[i].Text = in.Text
				acc.Reviews[i].Watched = in.Watched
				acc.Reviews[i].UpdatedAt = now
				return true, nil
			}
		}
		acc.Reviews = append(acc.Reviews, models.Review{
			ImdbID:    movieID,
			Rating:    in.Rating,
			Text:      in.Text,
			Watched:   in.Watched,
			CreatedAt: now,
			UpdatedAt: now,
		})
		return true, nil
	})
}

func (s *AccountService) Reviews(ctx context.Context, userID string) ([]models.Review, error) {
	acc, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return acc.Reviews, nil
}
