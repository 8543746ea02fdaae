package main

import (
	"net/http"

	"github.com/okorolev/fitcoach/internal/errors"
	"github.com/okorolev/fitcoach/internal/program"
)

type setLogRequest struct {
	Reps     int     `json:"reps"`
	WeightKg float64 `json:"weight_kg"`
	Notes    string  `json:"notes,omitempty"`
}

// setLogPOST appends a performed set to the training diary. A five-rep set on
// an anchored exercise also updates the stored five-rep max when it is a new
// high.
func (app *application) setLogPOST(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := app.parseIDParam(w, r, "sessionID")
	if !ok {
		return
	}
	exerciseID, ok := app.parseIDParam(w, r, "exerciseID")
	if !ok {
		return
	}
	setNumber, ok := app.parseIDParam(w, r, "setNumber")
	if !ok {
		return
	}

	var req setLogRequest
	if !app.decodeJSON(w, r, &req) {
		return
	}

	err := app.programService.LogSet(r.Context(), sessionID, exerciseID, int(setNumber), req.Reps, req.WeightKg, req.Notes)
	switch {
	case errors.Is(err, program.ErrInvalidLog):
		app.clientError(w, r, http.StatusUnprocessableEntity, "invalid set")
	case errors.Is(err, program.ErrNotFound):
		app.notFound(w, r)
	case err != nil:
		app.serverError(w, r, err)
	default:
		app.writeJSON(w, r, http.StatusCreated, map[string]string{"status": "logged"})
	}
}

// testMaxesGET returns the user's current five-rep maxes by anchor.
func (app *application) testMaxesGET(w http.ResponseWriter, r *http.Request) {
	maxes, err := app.programService.TestMaxes(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	out := make(map[string]float64, len(maxes))
	for anchor, weightKg := range maxes {
		out[string(anchor)] = weightKg
	}
	app.writeJSON(w, r, http.StatusOK, out)
}
