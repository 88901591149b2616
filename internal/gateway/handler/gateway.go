package handler

import (
	"net/http"

	"shareit/pkg/client"
	apperrors "shareit/pkg/errors"
	shareithttp "shareit/pkg/http"
	"shareit/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// The gateway validates request shape and identity, then forwards to the
// backend and relays its answer byte for byte. Business rules live behind it.

var validate = validator.New(validator.WithRequiredStructEnabled())

func relay(w http.ResponseWriter, log *logger.Logger, resp *client.Response, err error) {
	if err != nil {
		log.Error("backend request failed", "error", err)
		shareithttp.WriteError(w, apperrors.Internal("backend unavailable", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(resp.Body)
}

// checkPage rejects malformed pagination before the request leaves the
// gateway.
func checkPage(from, size *int) error {
	if (from == nil) != (size == nil) {
		return apperrors.Validation("from and size must be provided together")
	}
	if from != nil && *from < 0 {
		return apperrors.Validation("from must not be negative")
	}
	if size != nil && *size <= 0 {
		return apperrors.Validation("size must be positive")
	}
	return nil
}
