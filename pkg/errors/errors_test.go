package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewCarriesCodeAndMessage(t *testing.T) {
	err := New(CodeValidation, "price is malformed")

	if err.Code() != CodeValidation {
		t.Fatalf("unexpected code: %s", err.Code())
	}
	if err.Message() != "price is malformed" {
		t.Fatalf("unexpected message: %s", err.Message())
	}
	if err.Error() != "VALIDATION_ERROR: price is malformed" {
		t.Fatalf("unexpected error string: %s", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeDependency, cause, "db: list products")

	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if err.Unwrap() != cause {
		t.Fatal("expected Unwrap to return the cause")
	}
}

func TestAsFindsTypedErrorInChain(t *testing.T) {
	typed := New(CodeNotFound, "product not found")
	wrapped := fmt.Errorf("handling request: %w", typed)

	found := As(wrapped)
	if found == nil {
		t.Fatal("expected typed error in chain")
	}
	if found.Code() != CodeNotFound {
		t.Fatalf("unexpected code: %s", found.Code())
	}

	if As(errors.New("plain")) != nil {
		t.Fatal("expected nil for untyped error")
	}
}

func TestMetadataForKnownAndUnknownCodes(t *testing.T) {
	if got := MetadataFor(CodeValidation).HTTPStatus; got != http.StatusBadRequest {
		t.Fatalf("validation status = %d", got)
	}
	if got := MetadataFor(CodeConfirmation).HTTPStatus; got != http.StatusConflict {
		t.Fatalf("confirmation status = %d", got)
	}
	if got := MetadataFor(Code("BOGUS")).HTTPStatus; got != http.StatusInternalServerError {
		t.Fatalf("unknown code status = %d", got)
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeConfirmation, "quantity reduced to 0").
		WithDetails(map[string]any{"productName": "Milk"})

	details, ok := err.Details().(map[string]any)
	if !ok {
		t.Fatalf("unexpected details type: %T", err.Details())
	}
	if details["productName"] != "Milk" {
		t.Fatalf("unexpected details: %v", details)
	}
}

func TestDumpCollectsChain(t *testing.T) {
	cause := errors.New("timeout")
	err := Wrap(CodeDependency, cause, "db: update product")

	dump := Dump(err)
	if dump.Code != CodeDependency {
		t.Fatalf("unexpected code: %s", dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected 2 chain entries, got %d", len(dump.Chain))
	}
}
