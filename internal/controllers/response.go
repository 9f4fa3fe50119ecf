package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"nutriscan/internal/analysis"
	"nutriscan/internal/models"
	"nutriscan/internal/services"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
)

const maxRequestBodySize = 1 << 20 // 1 MB

var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrLocked):
		return http.StatusPaymentRequired
	case errors.Is(err, services.ErrCaptureInFlight):
		return http.StatusConflict
	case errors.Is(err, services.ErrCaptureAbandoned):
		return http.StatusGone
	case errors.Is(err, services.ErrNoDraft):
		return http.StatusNotFound
	case errors.Is(err, analysis.ErrIncompleteData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, analysis.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, analysis.ErrUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, errBadRequest),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, models.ErrInvalidGoal),
		errors.Is(err, models.ErrInvalidWeight),
		errors.Is(err, models.ErrItemNotFound),
		errors.Is(err, models.ErrInvalidSubscription):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal Server Error"
	}
	writeJSON(w, status, errorResponse{
		Error:     msg,
		Retryable: status == http.StatusGatewayTimeout || status == http.StatusBadGateway,
	})
}

// decodeBody reads a JSON body into dst and runs its validate tags.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errBadRequest
	}
	v := validate.Struct(dst)
	if !v.Validate() {
		return fmt.Errorf("%w: %s", errBadRequest, v.Errors.One())
	}
	return nil
}
