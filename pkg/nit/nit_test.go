package nit

import (
	"testing"

	pkgerrors "github.com/tiendasport/storefront-api/pkg/errors"
)

func TestIsValid(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"CF", true},
		{"cf", true},
		{" cf ", true},
		{"", false},
		{"   ", false},
		{"1234567", true},
		{"1234567-8", true},
		{"1234567-K", true},
		{"1234567-k", true},
		{"abc", false},
		{"1234567-", false},
		{"1234567-KK", false},
		{"-8", false},
		{"12 34567", false},
	}

	for _, tc := range cases {
		if got := IsValid(tc.input); got != tc.want {
			t.Fatalf("IsValid(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestValidate_EmptyMessage(t *testing.T) {
	err := Validate("")
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %T", err)
	}
	if typed.Message() != "nit requerido (o CF)" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestValidate_MalformedCarriesExamples(t *testing.T) {
	err := Validate("abc")
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %T", err)
	}
	if typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %s", typed.Code())
	}
	details, ok := typed.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected details map, got %T", typed.Details())
	}
	if _, ok := details["examples"]; !ok {
		t.Fatal("expected example formats in details")
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{" cf ", "CF"},
		{"CF", "CF"},
		{"1234567-k", "1234567-K"},
		{"1234567", "1234567"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.input); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
