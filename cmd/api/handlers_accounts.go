package main

import (
	"fmt"
	"net/http"
	"strings"

	"fym/proj/internal/domain/models"
	"fym/proj/internal/services/accounts"

	"github.com/go-chi/chi/v5"
)

type signUpInput struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Username string `json:"username" validate:"required,min=2,max=50"`
}

type signInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// authPayload returns the account together with the token that carries the
// session it was bound to.
func (app *Application) authPayload(r *http.Request, acc *models.Account) (envelop, error) {
	token, err := app.issueSessionToken(sessionIDFromCtx(r))
	if err != nil {
		return nil, err
	}
	return envelop{"account": acc, "token": token}, nil
}

func (app *Application) signup(w http.ResponseWriter, r *http.Request) {
	var in signUpInput
	if !app.decodeBody(w, r, &in) {
		return
	}
	acc, err := app.accounts.SignUp(r.Context(), sessionIDFromCtx(r), accounts.SignUpInput{
		Email:    in.Email,
		Password: in.Password,
		Username: in.Username,
	})
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	data, err := app.authPayload(r, acc)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, data, "Account created")
}

func (app *Application) signin(w http.ResponseWriter, r *http.Request) {
	var in signInInput
	if !app.decodeBody(w, r, &in) {
		return
	}
	acc, err := app.accounts.SignIn(r.Context(), sessionIDFromCtx(r), in.Email, in.Password)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	data, err := app.authPayload(r, acc)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, data, "Signed in")
}

func (app *Application) signout(w http.ResponseWriter, r *http.Request) {
	if err := app.accounts.SignOut(r.Context(), sessionIDFromCtx(r)); err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, nil, "Signed out")
}

func (app *Application) me(w http.ResponseWriter, r *http.Request) {
	app.Http.Ok(w, r, envelop{"account": userFromCtx(r)}, "")
}

type profileInput struct {
	Username    *string             `json:"username" validate:"omitempty,min=2,max=50"`
	Email       *string             `json:"email" validate:"omitempty,email,max=254"`
	Preferences *models.Preferences `json:"preferences"`
}

func (app *Application) updateProfile(w http.ResponseWriter, r *http.Request) {
	var in profileInput
	if !app.decodeBody(w, r, &in) {
		return
	}
	acc, err := app.accounts.UpdateProfile(r.Context(), userFromCtx(r).ID, accounts.ProfileInput{
		Username:    in.Username,
		Email:       in.Email,
		Preferences: in.Preferences,
	})
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"account": acc}, "Profile updated")
}

func (app *Application) updateSettings(w http.ResponseWriter, r *http.Request) {
	var in models.Settings
	if !app.decodeBody(w, r, &in) {
		return
	}
	acc, err := app.accounts.UpdateSettings(r.Context(), userFromCtx(r).ID, in)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"settings": acc.Settings}, "Settings saved")
}

func (app *Application) getWatchlists(w http.ResponseWriter, r *http.Request) {
	userID := userFromCtx(r).ID
	lists, err := app.accounts.Watchlists(r.Context(), userID)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	history, err := app.accounts.WatchHistory(r.Context(), userID)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"watchlists": lists, "history": history}, "")
}

type watchlistItemInput struct {
	ImdbID string `json:"imdbID" validate:"imdbid"`
	Title  string `json:"Title" validate:"required,max=300"`
	Year   string `json:"Year" validate:"max=20"`
	Type   string `json:"Type" validate:"omitempty,oneof=movie series episode"`
	Poster string `json:"Poster" validate:"max=2048"`
	Notes  string `json:"notes" validate:"max=2000"`
}

func (app *Application) addWatchlistItem(w http.ResponseWriter, r *http.Request) {
	var in watchlistItemInput
	if !app.decodeBody(w, r, &in) {
		return
	}
	item := models.WatchlistItem{
		ImdbID: in.ImdbID,
		Title:  in.Title,
		Year:   in.Year,
		Type:   in.Type,
		Poster: in.Poster,
		Notes:  in.Notes,
	}
	acc, err := app.accounts.AddToWatchlist(r.Context(), userFromCtx(r).ID, item, chi.URLParam(r, "name"))
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"watchlists": acc.Watchlists}, "Added to watchlist")
}

func (app *Application) removeWatchlistItem(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	acc, err := app.accounts.RemoveFromWatchlist(r.Context(), userFromCtx(r).ID, id, chi.URLParam(r, "name"))
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"watchlists": acc.Watchlists}, "Removed from watchlist")
}

func (app *Application) markWatched(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	acc, err := app.accounts.MarkWatched(r.Context(), userFromCtx(r).ID, id, chi.URLParam(r, "name"))
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"watchlists": acc.Watchlists}, "Marked as watched")
}

type itemNotesInput struct {
	Notes  string `json:"notes" validate:"max=2000"`
	Rating *int   `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

func (app *Application) updateWatchlistItem(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	var in itemNotesInput
	if !app.decodeBody(w, r, &in) {
		return
	}
	acc, err := app.accounts.UpdateItemNotes(r.Context(), userFromCtx(r).ID, id, chi.URLParam(r, "name"), in.Notes, in.Rating)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"watchlists": acc.Watchlists}, "Watchlist item updated")
}

func (app *Application) exportWatchlist(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	filename := strings.NewReplacer(`"`, "", "/", "_", "\\", "_").Replace(name)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-watchlist.csv"`, filename))
	if err := accounts.ExportWatchlistCSV(w, userFromCtx(r), name); err != nil {
		app.log.Error("failed to export watchlist", "errMsg", err.Error())
	}
}

type reviewInput struct {
	Rating  int    `json:"rating" validate:"gte=1,lte=5" errorMsg:"Rating must be between 1 and 5"`
	Text    string `json:"text" validate:"max=5000"`
	Watched bool   `json:"watched"`
}

func (app *Application) getReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := app.accounts.Reviews(r.Context(), userFromCtx(r).ID)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"reviews": reviews}, "")
}

func (app *Application) putReview(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	var in reviewInput
	if !app.decodeBody(w, r, &in) {
		return
	}
	acc, err := app.accounts.AddReview(r.Context(), userFromCtx(r).ID, id, accounts.ReviewInput{
		Rating:  in.Rating,
		Text:    in.Text,
		Watched: in.Watched,
	})
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"reviews": acc.Reviews}, "Review saved")
}
