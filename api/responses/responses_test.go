package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/grocerly/grocerly-backend/pkg/errors"
)

func TestWriteSuccessPassesPayloadThrough(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, map[string]string{"hello": "world"})

	if got := w.Code; got != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", got)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if body["hello"] != "world" {
		t.Fatalf("unexpected payload %v", body)
	}
}

func TestWriteMessageWithIDCarriesTimestampAndID(t *testing.T) {
	w := httptest.NewRecorder()
	id := uuid.New()
	WriteMessageWithID(w, http.StatusCreated, "Milk added successfully", id)

	if got := w.Code; got != http.StatusCreated {
		t.Fatalf("expected status 201 but got %d", got)
	}

	var body MessageBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode message body: %v", err)
	}
	if body.Message != "Milk added successfully" {
		t.Fatalf("unexpected message %q", body.Message)
	}
	if body.ID != id.String() {
		t.Fatalf("unexpected id %q", body.ID)
	}
	if _, err := time.Parse(time.RFC3339, body.Date); err != nil {
		t.Fatalf("expected RFC3339 date, got %q: %v", body.Date, err)
	}
}

func TestWriteErrorMapsTypedError(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "number of items cannot be 0").
		WithDetails(map[string]string{"field": "quantity"})
	WriteError(context.Background(), nil, w, err)

	if got := w.Code; got != http.StatusBadRequest {
		t.Fatalf("expected status 400 but got %d", got)
	}

	var body ErrorBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body.Message != "number of items cannot be 0" {
		t.Fatalf("unexpected message %q", body.Message)
	}
	if body.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected code %s", body.Code)
	}
	if body.Details == nil {
		t.Fatal("expected details in public payload")
	}
}

func TestWriteErrorConfirmationKeepsDetails(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeConfirmation, "removing the last unit empties this cart line").
		WithDetails(map[string]any{"productName": "Milk"})
	WriteError(context.Background(), nil, w, err)

	if got := w.Code; got != http.StatusConflict {
		t.Fatalf("expected status 409 but got %d", got)
	}

	var body ErrorBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body.Code != string(pkgerrors.CodeConfirmation) {
		t.Fatalf("unexpected code %s", body.Code)
	}
	details, ok := body.Details.(map[string]any)
	if !ok || details["productName"] != "Milk" {
		t.Fatalf("expected product in details, got %v", body.Details)
	}
}

func TestWriteErrorDefaultsToInternalForUntrustedErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, errors.New("boom"))

	if got := w.Code; got != http.StatusInternalServerError {
		t.Fatalf("expected status 500 but got %d", got)
	}

	var body ErrorBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body.Message != "internal server error" {
		t.Fatalf("expected generic message, got %q", body.Message)
	}
	if body.Details != nil {
		t.Fatal("details should be omitted for internal errors")
	}
}
