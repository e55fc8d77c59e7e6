package errors

import (
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("correctIndex", "must index an existing choice", 7)

	if err.Field != "correctIndex" {
		t.Errorf("Expected field to be 'correctIndex', got '%s'", err.Field)
	}

	if err.Message != "must index an existing choice" {
		t.Errorf("Expected message to be 'must index an existing choice', got '%s'", err.Message)
	}

	if err.Value != 7 {
		t.Errorf("Expected value to be 7, got '%v'", err.Value)
	}

	expected := "validation error on field 'correctIndex': must index an existing choice"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	errs = append(errs, *NewValidationError("label", "is required", nil))
	expected := "validation failed: label is required"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	errs = append(errs, *NewValidationError("choices", "must contain at least 2 entries", nil))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}
