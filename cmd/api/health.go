package main

import "net/http"

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	app.successResponse(w, http.StatusOK, envelope{
		"status":      "available",
		"environment": app.cfg.env,
		"version":     app.cfg.version,
	})
}
