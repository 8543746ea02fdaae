package main

import (
	"net/http"
	"time"

	"github.com/okorolev/fitcoach/internal/errors"
	"github.com/okorolev/fitcoach/internal/program"
)

type generateRequest struct {
	StartDate string `json:"start_date,omitempty"`
}

type regenerateRequest struct {
	StartDate string `json:"start_date,omitempty"`
	Split     string `json:"split,omitempty"`
}

type generateResponse struct {
	ProgramID int64 `json:"program_id"`
}

// parseStartDate resolves the optional start date of a generation request,
// defaulting to today.
func parseStartDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	date, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "parse start date")
	}
	return date, nil
}

// programGeneratePOST generates a fresh 12-week program for the user.
func (app *application) programGeneratePOST(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if r.ContentLength > 0 && !app.decodeJSON(w, r, &req) {
		return
	}

	startDate, err := parseStartDate(req.StartDate)
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid start_date")
		return
	}

	programID, err := app.programService.Generate(r.Context(), startDate)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusCreated, generateResponse{ProgramID: programID})
}

// programRegeneratePOST retires the current program and generates a new one,
// optionally on a different split.
func (app *application) programRegeneratePOST(w http.ResponseWriter, r *http.Request) {
	var req regenerateRequest
	if r.ContentLength > 0 && !app.decodeJSON(w, r, &req) {
		return
	}

	startDate, err := parseStartDate(req.StartDate)
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid start_date")
		return
	}

	var splitOverride *program.Split
	if req.Split != "" {
		split, parseErr := program.ParseSplit(req.Split)
		if parseErr != nil {
			app.clientError(w, r, http.StatusBadRequest, "unknown split")
			return
		}
		splitOverride = &split
	}

	programID, err := app.programService.Regenerate(r.Context(), startDate, splitOverride)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusCreated, generateResponse{ProgramID: programID})
}

// programCurrentGET returns the user's most recent program with its schedule.
func (app *application) programCurrentGET(w http.ResponseWriter, r *http.Request) {
	current, err := app.programService.CurrentProgram(r.Context())
	if errors.Is(err, program.ErrNotFound) {
		app.notFound(w, r)
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, toProgramJSON(current))
}
