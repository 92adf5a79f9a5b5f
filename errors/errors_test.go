package errors

import (
	"fmt"
	"testing"
)

func TestLokiError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeRefInvalid, "bad reference")
	if err.Code != ErrCodeRefInvalid {
		t.Errorf("expected code %s, got %s", ErrCodeRefInvalid, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeConfigInvalid, "parse failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeConfigInvalid) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeRefInvalid) {
		t.Error("Is should return false for non-matching code")
	}

	// Test WithDetail
	detailed := err.WithDetail("ref", "#/components/schemas/Contract").WithDetail("line", 12)
	if detailed.Details["ref"] != "#/components/schemas/Contract" {
		t.Error("WithDetail should add details")
	}
}

func TestErrorConstructors(t *testing.T) {
	// Test ConfigNotFound
	err := ConfigNotFound("/tmp/.pre-commit-config.yaml")
	if err.Code != ErrCodeConfigNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeConfigNotFound, err.Code)
	}
	if err.Details["path"] != "/tmp/.pre-commit-config.yaml" {
		t.Error("ConfigNotFound should include path detail")
	}

	// Test SchemaKeyNotFound
	err = SchemaKeyNotFound("components", "specs/contract.json")
	if err.Code != ErrCodeSchemaKeyNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeSchemaKeyNotFound, err.Code)
	}
	if err.Details["key"] != "components" {
		t.Error("SchemaKeyNotFound should include key detail")
	}

	// Test ResolveCycle
	err = ResolveCycle([]string{"a.json", "b.json"})
	if err.Code != ErrCodeResolveCycle {
		t.Errorf("expected code %s, got %s", ErrCodeResolveCycle, err.Code)
	}
}

func TestGetCode(t *testing.T) {
	if GetCode(nil) != "" {
		t.Error("GetCode of nil should be empty")
	}
	if GetCode(fmt.Errorf("plain")) != "" {
		t.Error("GetCode of plain error should be empty")
	}
	wrapped := fmt.Errorf("outer: %w", TargetInvalid("/nope", "not a directory"))
	if GetCode(wrapped) != ErrCodeTargetInvalid {
		t.Errorf("GetCode should unwrap, got %s", GetCode(wrapped))
	}
}
