package handlers

import (
	"errors"
	"log"
	"net/http"

	"treasurehunt/internal/judge"
	"treasurehunt/internal/service"
	"treasurehunt/internal/validation"
)

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondJSON(w, status, errorResponse{Error: userMsg})
}

// respondServiceError maps the error taxonomy to HTTP statuses: bad
// identifiers are 404, bad input is 400, judge outages are retryable 503/504,
// anything else is an internal error. Malformed verdicts never reach here;
// the pipeline resolves them to a rejected outcome.
func respondServiceError(w http.ResponseWriter, err error) {
	var vErr *validation.Error
	switch {
	case errors.Is(err, service.ErrChildNotFound):
		respondWithError(w, http.StatusNotFound, "Child not found", "", nil)
	case errors.Is(err, service.ErrActivityNotFound):
		respondWithError(w, http.StatusNotFound, "Activity not found", "", nil)
	case errors.Is(err, service.ErrPhotoRequired):
		respondWithError(w, http.StatusBadRequest, "Photo is required", "", nil)
	case errors.As(err, &vErr):
		respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
	case errors.Is(err, judge.ErrTimeout):
		respondWithError(w, http.StatusGatewayTimeout, "Validation timed out, please try again later", "Judge timeout", err)
	case errors.Is(err, judge.ErrUnavailable):
		respondWithError(w, http.StatusServiceUnavailable, "Validation is temporarily unavailable, please try again later", "Judge unavailable", err)
	case errors.Is(err, service.ErrNoActivitiesGenerated):
		respondWithError(w, http.StatusBadGateway, "Could not generate activities, please try again", "Generation produced no activities", err)
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Unhandled service error", err)
	}
}
