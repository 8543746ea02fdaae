package main

import (
	"net/http"

	"github.com/okorolev/fitcoach/internal/errors"
	"github.com/okorolev/fitcoach/internal/program"
)

// questionnaireGET returns the user's questionnaire answers.
func (app *application) questionnaireGET(w http.ResponseWriter, r *http.Request) {
	questionnaire, err := app.programService.GetQuestionnaire(r.Context())
	if errors.Is(err, program.ErrNotFound) {
		app.notFound(w, r)
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, questionnaireJSON{
		Goal:        questionnaire.Goal,
		Level:       questionnaire.Level,
		AgeRange:    questionnaire.AgeRange,
		Equipment:   questionnaire.Equipment,
		BodyType:    questionnaire.BodyType,
		Limitations: questionnaire.Limitations,
	})
}

// questionnairePUT upserts the user's questionnaire answers.
func (app *application) questionnairePUT(w http.ResponseWriter, r *http.Request) {
	var req questionnaireJSON
	if !app.decodeJSON(w, r, &req) {
		return
	}

	err := app.programService.SaveQuestionnaire(r.Context(), program.Questionnaire{
		Goal:        req.Goal,
		Level:       req.Level,
		AgeRange:    req.AgeRange,
		Equipment:   req.Equipment,
		BodyType:    req.BodyType,
		Limitations: req.Limitations,
	})
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, map[string]string{"status": "saved"})
}
