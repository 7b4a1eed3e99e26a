package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gaurav-prasanna/proofpipe/core"
	"github.com/gaurav-prasanna/proofpipe/core/output"
	"github.com/gaurav-prasanna/proofpipe/internal/log"
)

// errBadRequest marks a request body that could not be decoded.
var errBadRequest = errors.New("malformed request body")

// APIError is one error in a JSON error response.
type APIError struct {
	Status string `json:"status"`
	Code   string `json:"code"`
	Title  string `json:"title"`
	ID     string `json:"id,omitempty"`
}

// APIErrorResponse wraps the errors of a failed request.
type APIErrorResponse struct {
	Errors []APIError `json:"errors"`
}

var errorKinds = []struct {
	err    error
	status int
	code   string
}{
	{errBadRequest, http.StatusBadRequest, "bad_request"},
	{core.ErrEmptyInput, http.StatusBadRequest, "empty_input"},
	{core.ErrUntrustedSource, http.StatusBadRequest, "untrusted_source"},
	{core.ErrDownload, http.StatusBadGateway, "download_failed"},
	{core.ErrExtraction, http.StatusUnprocessableEntity, "extraction_failed"},
	{core.ErrTemplateMissing, http.StatusInternalServerError, "template_missing"},
	{core.ErrUpstream, http.StatusBadGateway, "upstream_error"},
	{core.ErrNonCompliantResponse, http.StatusUnprocessableEntity, string(core.ReasonNonCompliant)},
	{core.ErrTruncatedResponse, http.StatusUnprocessableEntity, string(core.ReasonTruncated)},
	{core.ErrMalformedMarkup, http.StatusUnprocessableEntity, string(core.ReasonMalformed)},
	{core.ErrPersistence, http.StatusInternalServerError, "persistence_failed"},
	{output.ErrNoArtifact, http.StatusNotFound, "no_output"},
}

// classify maps err to an HTTP status and a stable code.
func classify(err error) (int, string) {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.status, k.code
		}
	}
	return http.StatusInternalServerError, "internal_error"
}

// message returns the user-visible text for err.
func message(err error) string {
	switch {
	case errors.Is(err, errBadRequest):
		return "The request body is not valid JSON."
	case errors.Is(err, output.ErrNoArtifact):
		return "Nothing has been proofread yet."
	default:
		return core.Message(err)
	}
}

// WriteError writes a JSON error response. Internal detail goes to the log,
// never to the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status, code := classify(err)

	if logger != nil {
		level := slog.LevelWarn
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(r.Context(), level, "request error",
			"status", status,
			"code", code,
			"error", err.Error(),
			"path", r.URL.Path,
		)
	}

	WriteJSON(w, status, APIErrorResponse{
		Errors: []APIError{{
			Status: http.StatusText(status),
			Code:   code,
			Title:  message(err),
			ID:     log.CorrelationID(r.Context()),
		}},
	})
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
