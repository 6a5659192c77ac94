package main

import (
	"net/http"

	"fym/proj/internal/domain/filters"
	"fym/proj/internal/services/social"

	"github.com/go-chi/chi/v5"
)

func hostFromCtx(r *http.Request) social.Host {
	user := userFromCtx(r)
	return social.Host{ID: user.ID, Username: user.Username}
}

func (app *Application) friendsActivity(w http.ResponseWriter, r *http.Request) {
	activity, err := app.social.FriendActivity(r.Context())
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"activity": activity}, "")
}

func (app *Application) commonInterests(w http.ResponseWriter, r *http.Request) {
	items, err := app.social.CommonInterests(r.Context(), r.URL.Query().Get("friend"))
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"commonInterests": items}, "")
}

type gemsQuery struct {
	Filter string `schema:"filter" validate:"omitempty,oneof=all verified trending"`
	Sort   string `schema:"sort" validate:"omitempty,oneof=recent popular rating"`
	Query  string `schema:"query" validate:"max=200"`
}

func (app *Application) hiddenGems(w http.ResponseWriter, r *http.Request) {
	q := gemsQuery{Filter: filters.GemsAll, Sort: filters.GemsSortPopular}
	if !app.decodeQuery(w, r, &q) {
		return
	}
	gems, err := app.social.HiddenGems(r.Context(), q.Filter, q.Sort, q.Query)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"gems": gems}, "")
}

func (app *Application) submitGem(w http.ResponseWriter, r *http.Request) {
	var in social.GemInput
	if !app.decodeBody(w, r, &in) {
		return
	}
	gem, err := app.social.SubmitGem(r.Context(), userFromCtx(r).ID, in)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"gem": gem}, "Hidden gem submitted")
}

type voteInput struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

func (app *Application) voteGem(w http.ResponseWriter, r *http.Request) {
	var in voteInput
	if !app.decodeBody(w, r, &in) {
		return
	}
	gem, err := app.social.VoteGem(r.Context(), chi.URLParam(r, "id"), in.Direction)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"gem": gem}, "")
}

func (app *Application) watchParties(w http.ResponseWriter, r *http.Request) {
	parties, err := app.social.WatchParties(r.Context())
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"parties": parties}, "")
}

func (app *Application) createWatchParty(w http.ResponseWriter, r *http.Request) {
	var in social.WatchPartyInput
	if !app.decodeBody(w, r, &in) {
		return
	}
	party, err := app.social.CreateWatchParty(r.Context(), hostFromCtx(r), in)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"party": party}, "Watch party created")
}

type messageInput struct {
	Message string `json:"message" validate:"required,max=1000"`
}

func (app *Application) postPartyMessage(w http.ResponseWriter, r *http.Request) {
	var in messageInput
	if !app.decodeBody(w, r, &in) {
		return
	}
	msg, err := app.social.PostMessage(r.Context(), chi.URLParam(r, "id"), hostFromCtx(r), in.Message)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"message": msg}, "")
}

func (app *Application) collaborativeLists(w http.ResponseWriter, r *http.Request) {
	lists, err := app.social.CollaborativeLists(r.Context())
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"lists": lists}, "")
}

func (app *Application) createCollaborativeList(w http.ResponseWriter, r *http.Request) {
	var in social.ListInput
	if !app.decodeBody(w, r, &in) {
		return
	}
	list, err := app.social.CreateCollaborativeList(r.Context(), userFromCtx(r).ID, in)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"list": list}, "Watchlist created")
}

type collaboratorInput struct {
	UserID string `json:"userId" validate:"required,max=64"`
}

func (app *Application) addCollaborator(w http.ResponseWriter, r *http.Request) {
	var in collaboratorInput
	if !app.decodeBody(w, r, &in) {
		return
	}
	list, err := app.social.AddCollaborator(r.Context(), chi.URLParam(r, "id"), in.UserID)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"list": list}, "Collaborator added")
}

func (app *Application) moodCollections(w http.ResponseWriter, r *http.Request) {
	moods, err := app.social.MoodCollections(r.Context())
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"collections": moods}, "")
}

func (app *Application) createMoodCollection(w http.ResponseWriter, r *http.Request) {
	var in social.MoodInput
	if !app.decodeBody(w, r, &in) {
		return
	}
	c, err := app.social.CreateMoodCollection(r.Context(), userFromCtx(r).ID, in)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"collection": c}, "Collection created")
}

func (app *Application) streamingAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	availability, err := app.social.StreamingAvailability(r.Context(), id, r.URL.Query().Get("region"))
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"availability": availability}, "")
}
