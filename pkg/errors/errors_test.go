package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataFor_KnownCodes(t *testing.T) {
	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodePrecondition, http.StatusUnprocessableEntity},
		{CodeInternal, http.StatusInternalServerError},
		{CodeDependency, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Fatalf("code %s: expected status %d, got %d", tc.code, tc.status, got)
		}
	}
}

func TestMetadataFor_UnknownFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("NOPE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal metadata, got status %d", meta.HTTPStatus)
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Wrap(CodeDependency, cause, "tariff call failed")
	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to survive errors.Is")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("expected %s, got %s", CodeDependency, err.Code())
	}
}

func TestAs_FindsTypedError(t *testing.T) {
	inner := New(CodeValidation, "nit inválido")
	wrapped := fmt.Errorf("handler: %w", inner)
	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Message() != "nit inválido" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestDump_CollectsChain(t *testing.T) {
	err := Wrap(CodeInternal, fmt.Errorf("low"), "high")
	d := Dump(err)
	if d.Code != CodeInternal {
		t.Fatalf("expected code %s, got %s", CodeInternal, d.Code)
	}
	if len(d.Chain) < 2 {
		t.Fatalf("expected chain of at least 2, got %d", len(d.Chain))
	}
}
