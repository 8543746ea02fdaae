package main

import (
	"bytes"
	"net/http"

	"github.com/okorolev/fitcoach/internal/errors"
	"github.com/okorolev/fitcoach/internal/program"
	"github.com/yuin/goldmark"
)

// exercisesGET returns the whole exercise catalog.
func (app *application) exercisesGET(w http.ResponseWriter, r *http.Request) {
	exercises, err := app.programService.ListExercises(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	out := make([]exerciseJSON, 0, len(exercises))
	for _, exercise := range exercises {
		out = append(out, toExerciseJSON(exercise))
	}
	app.writeJSON(w, r, http.StatusOK, out)
}

// exerciseInfoGET renders the exercise's markdown description to HTML.
func (app *application) exerciseInfoGET(w http.ResponseWriter, r *http.Request) {
	exerciseID, ok := app.parseIDParam(w, r, "exerciseID")
	if !ok {
		return
	}

	exercise, err := app.programService.GetExercise(r.Context(), exerciseID)
	if errors.Is(err, program.ErrNotFound) {
		app.notFound(w, r)
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	var rendered bytes.Buffer
	if err = goldmark.Convert([]byte(exercise.DescriptionMarkdown), &rendered); err != nil {
		app.serverError(w, r, errors.Wrap(err, "render exercise markdown"))
		return
	}

	app.writeJSON(w, r, http.StatusOK, map[string]string{
		"name":        exercise.Name,
		"description": rendered.String(),
	})
}
