package main

import (
	"net/http"

	"github.com/okorolev/fitcoach/internal/errors"
	"github.com/okorolev/fitcoach/internal/program"
)

// sessionGET returns one session with its exercises and prescribed sets.
func (app *application) sessionGET(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := app.parseIDParam(w, r, "sessionID")
	if !ok {
		return
	}

	session, err := app.programService.GetSession(r.Context(), sessionID)
	if errors.Is(err, program.ErrNotFound) {
		app.notFound(w, r)
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, toSessionJSON(session))
}

// sessionCompletePOST marks a session as completed.
func (app *application) sessionCompletePOST(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := app.parseIDParam(w, r, "sessionID")
	if !ok {
		return
	}

	err := app.programService.CompleteSession(r.Context(), sessionID)
	if errors.Is(err, program.ErrNotFound) {
		app.notFound(w, r)
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, map[string]string{"status": "completed"})
}
