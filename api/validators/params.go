package validators

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	pkgerrors "github.com/grocerly/grocerly-backend/pkg/errors"
)

// ParseUUIDString parses a uuid carried in a request body field.
func ParseUUIDString(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "field must be a uuid").
			WithDetails(map[string]any{"field": field})
	}
	return id, nil
}

// ParseUUIDParam reads a uuid path parameter from the chi route context.
func ParseUUIDParam(r *http.Request, key string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be a uuid").
			WithDetails(map[string]any{"field": key})
	}
	return id, nil
}
