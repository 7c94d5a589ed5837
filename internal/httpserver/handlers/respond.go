package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/grimwiz/karakeep/internal/errs"
	"github.com/grimwiz/karakeep/internal/httpserver/deps"
	"github.com/grimwiz/karakeep/internal/logger"
)

type errorBody struct {
	Error errs.Normalized `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError normalizes err and writes it as {"error": {...}} with a
// matching status code. The response shape is identical for every
// failure class so clients parse one thing.
func writeError(w http.ResponseWriter, r *http.Request, d deps.Deps, err error) {
	norm := errs.Normalize(err)
	if norm.Status >= http.StatusInternalServerError {
		d.Logger.Error("request failed",
			logger.String("path", r.URL.Path),
			logger.Error(err))
	} else {
		d.Logger.Debug("request rejected",
			logger.String("path", r.URL.Path),
			logger.String("reason", norm.Message))
	}
	writeJSON(w, norm.Status, errorBody{Error: norm})
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errs.Validationf("invalid request body: %v", err)
	}
	return nil
}
