package api

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"lightnovel-reader/downloader/lightnovelpub"
	"lightnovel-reader/extractor"
)

type dataEnvelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Debug("failed to write response")
	}
}

func ok(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, dataEnvelope{Data: data})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: msg, Code: "bad_request"})
}

func notFound(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusNotFound, errorEnvelope{Error: msg, Code: "not_found"})
}

// writeError maps source failures to 502 so clients can tell upstream
// problems from their own mistakes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var fetchErr *lightnovelpub.FetchError
	var extractErr *extractor.ExtractionError
	switch {
	case errors.As(err, &fetchErr):
		writeJSON(w, http.StatusBadGateway, errorEnvelope{Error: err.Error(), Code: "fetch_failed", Retryable: fetchErr.Retryable()})
	case errors.As(err, &extractErr):
		writeJSON(w, http.StatusBadGateway, errorEnvelope{Error: err.Error(), Code: "extraction_failed"})
	default:
		log.WithFields(log.Fields{"path": r.URL.Path, "error": err}).Error("Request failed")
		writeJSON(w, http.StatusInternalServerError, errorEnvelope{Error: "internal error", Code: "internal"})
	}
}
