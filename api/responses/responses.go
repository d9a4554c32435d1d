package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/grocerly/grocerly-backend/pkg/errors"
	"github.com/grocerly/grocerly-backend/pkg/logger"
)

// MessageBody is the mutation acknowledgement shape: a human message, the
// server timestamp, and optionally the id of the affected product.
type MessageBody struct {
	Message string `json:"message"`
	Date    string `json:"date"`
	ID      string `json:"id,omitempty"`
}

// ErrorBody is the error shape. Code and details appear only for errors
// whose metadata allows surfacing them, such as confirmation requests.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// WriteSuccess writes data as-is with a 200.
func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

// WriteSuccessStatus writes data as-is with the given status.
func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, data)
}

// WriteMessage acknowledges a mutation.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageBody{
		Message: message,
		Date:    time.Now().UTC().Format(time.RFC3339),
	})
}

// WriteMessageWithID acknowledges a mutation that produced a product id.
func WriteMessageWithID(w http.ResponseWriter, status int, message string, id uuid.UUID) {
	writeJSON(w, status, MessageBody{
		Message: message,
		Date:    time.Now().UTC().Format(time.RFC3339),
		ID:      id.String(),
	})
}

// WriteError maps a coded error onto its HTTP status and logs the chain.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	switch typed.Code() {
	case pkgerrors.CodeValidation,
		pkgerrors.CodeNotFound,
		pkgerrors.CodeConflict,
		pkgerrors.CodeConfirmation,
		pkgerrors.CodeIdempotency:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	payload := ErrorBody{Message: msg}
	if meta.DetailsAllowed {
		payload.Code = string(typed.Code())
		if details := typed.Details(); details != nil {
			payload.Details = details
		}
	}

	if logg != nil {
		dump := pkgerrors.Dump(err)

		fields := map[string]any{
			"error":         dump.TopMessage,
			"error_code":    dump.Code,
			"error_chain":   dump.Chain,
			"pg_code":       dump.PGCode,
			"pg_detail":     dump.PGDetail,
			"pg_message":    dump.PGMessage,
			"pg_table":      dump.PGTable,
			"pg_column":     dump.PGColumn,
			"pg_constraint": dump.PGConstraint,
		}

		ctx = logg.WithFields(ctx, fields)
		logg.Error(ctx, "request.error", err)
	}

	writeJSON(w, meta.HTTPStatus, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
