package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"fym/proj/internal/api/notify"
	"fym/proj/internal/clients/omdb"
	"fym/proj/internal/domain/models"
	"fym/proj/internal/lib/validator"

	"github.com/go-chi/chi/v5"
)

func (app *Application) extractIDParam(w http.ResponseWriter, r *http.Request) (id string, extracted bool) {
	id = strings.TrimSpace(chi.URLParam(r, "id"))
	if !omdb.IsValidID(id) {
		app.Http.BadRequest(w, r, "invalid title ID, expected an IMDb identifier like tt0111161")
		return "", false
	}
	return id, true
}

func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	src := http.MaxBytesReader(w, r.Body, int64(maxBytes))
	defer io.Copy(io.Discard, src)
	dec := json.NewDecoder(src)
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err != nil {
		return handleJsonErr(err)
	}
	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func handleJsonErr(err error) error {
	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	var invalidUnmarshalError *json.InvalidUnmarshalError
	var maxBytesError *http.MaxBytesError
	switch {
	case errors.As(err, &syntaxError):
		return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)

	case errors.Is(err, io.ErrUnexpectedEOF):
		return errors.New("body contains badly-formed JSON")

	case errors.As(err, &unmarshalTypeError):
		if unmarshalTypeError.Field != "" {
			return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
		}
		return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

	case errors.Is(err, io.EOF):
		return errors.New("body must not be empty")

	case strings.HasPrefix(err.Error(), "json: unknown field "):
		fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
		return fmt.Errorf("body contains unknown key %s", fieldName)

	case errors.As(err, &maxBytesError):
		return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)

	case errors.As(err, &invalidUnmarshalError):
		panic(err)
	default:
		return err
	}
}

// decodeBody reads and validates a JSON body, answering the request itself
// when that fails.
func (app *Application) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := app.readJSON(w, r, dst); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return false
	}
	return app.validate(w, r, dst)
}

// decodeQuery fills dst from the query string using its schema tags.
func (app *Application) decodeQuery(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := app.decoder.Decode(dst, r.URL.Query()); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return false
	}
	return app.validate(w, r, dst)
}

func (app *Application) validate(w http.ResponseWriter, r *http.Request, obj any) bool {
	if errs := validator.ValidateStruct(app.validator, obj); errs != nil {
		app.Http.UnprocessableEntity(w, r, errs)
		return false
	}
	return true
}

func sessionIDFromCtx(r *http.Request) string {
	sid, _ := r.Context().Value(CtxKeySession).(string)
	return sid
}

// userFromCtx is nil for anonymous requests.
func userFromCtx(r *http.Request) *models.Account {
	user, _ := r.Context().Value(CtxKeyUser).(*models.Account)
	return user
}

// feedPayload attaches a fallback notification when err is set.
func feedPayload(key string, records []models.MovieRecord, err error) envelop {
	data := envelop{key: records}
	if err != nil {
		data["notification"] = notify.Fallback(err)
	}
	return data
}
