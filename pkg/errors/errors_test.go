package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:       http.StatusBadRequest,
		CodeUnauthorized:     http.StatusUnauthorized,
		CodeDuplicateContent: http.StatusConflict,
		CodePayloadTooLarge:  http.StatusRequestEntityTooLarge,
		CodeDependency:       http.StatusServiceUnavailable,
	}
	for code, status := range cases {
		if got := MetadataFor(code).HTTPStatus; got != status {
			t.Fatalf("code %s: expected status %d, got %d", code, status, got)
		}
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	if got := MetadataFor(Code("NOPE")).HTTPStatus; got != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", got)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("disk full")
	err := Wrap(CodeDependency, cause, "blob write")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be found with errors.Is")
	}
	wrapped := fmt.Errorf("submit: %w", err)
	if !HasCode(wrapped, CodeDependency) {
		t.Fatal("expected HasCode to find the code through the chain")
	}
	if HasCode(wrapped, CodeDuplicateContent) {
		t.Fatal("HasCode matched the wrong code")
	}
}
