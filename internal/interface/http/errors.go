package handlers

import (
	"errors"
	"net/http"

	"github.com/danuartha/go-commerce-ddd/internal/domain/entity"
)

// statusFromErr maps domain error kinds onto HTTP status codes.
func statusFromErr(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, entity.ErrInvalidStateTransition):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
