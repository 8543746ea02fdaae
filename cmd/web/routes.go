package main

import (
	"net/http"
)

func (app *application) routes() *http.ServeMux {
	mux := http.NewServeMux()

	var (
		shared = func(next http.Handler) http.Handler {
			return app.recoverPanic(app.logAndTraceRequest(secureHeaders(
				commonContext(app.authenticate(app.timeout(next))))))
		}
		mustAuth = func(next http.Handler) http.Handler {
			return shared(app.mustAuthenticate(next))
		}
	)

	mux.Handle("POST /api/programs/generate", mustAuth(http.HandlerFunc(app.programGeneratePOST)))
	mux.Handle("POST /api/programs/regenerate", mustAuth(http.HandlerFunc(app.programRegeneratePOST)))
	mux.Handle("GET /api/programs/current", mustAuth(http.HandlerFunc(app.programCurrentGET)))

	mux.Handle("GET /api/sessions/{sessionID}", mustAuth(http.HandlerFunc(app.sessionGET)))
	mux.Handle("POST /api/sessions/{sessionID}/complete", mustAuth(http.HandlerFunc(app.sessionCompletePOST)))
	mux.Handle("POST /api/sessions/{sessionID}/exercises/{exerciseID}/sets/{setNumber}/log",
		mustAuth(http.HandlerFunc(app.setLogPOST)))

	mux.Handle("GET /api/questionnaire", mustAuth(http.HandlerFunc(app.questionnaireGET)))
	mux.Handle("PUT /api/questionnaire", mustAuth(http.HandlerFunc(app.questionnairePUT)))

	mux.Handle("GET /api/test-maxes", mustAuth(http.HandlerFunc(app.testMaxesGET)))

	mux.Handle("GET /api/exercises", shared(http.HandlerFunc(app.exercisesGET)))
	mux.Handle("GET /api/exercises/{exerciseID}/info", shared(http.HandlerFunc(app.exerciseInfoGET)))

	mux.Handle("GET /api/healthy", shared(http.HandlerFunc(app.healthy)))

	return mux
}
