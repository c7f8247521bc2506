package pdfcheck

import (
	"bytes"
	"strings"
	"testing"
)

func TestValidateBytesTooLarge(t *testing.T) {
	limits := Limits{MaxFileSizeMB: 1, MaxPages: 30}
	content := bytes.Repeat([]byte("a"), 2*1024*1024)

	result, err := ValidateBytes(content, limits)
	if err != nil {
		t.Fatalf("ValidateBytes failed: %v", err)
	}
	if result.Valid {
		t.Error("oversized file must be rejected")
	}
	if !strings.Contains(result.Error, "exceeds maximum allowed size") {
		t.Errorf("unexpected error message: %q", result.Error)
	}
}

func TestValidateBytesMissingHeader(t *testing.T) {
	result, err := ValidateBytes([]byte("this is not a pdf"), RubricLimits)
	if err != nil {
		t.Fatalf("ValidateBytes failed: %v", err)
	}
	if result.Valid {
		t.Error("non-PDF content must be rejected")
	}
	if !strings.Contains(result.Error, "missing PDF header") {
		t.Errorf("unexpected error message: %q", result.Error)
	}
}

func TestValidateBytesTruncated(t *testing.T) {
	// Correct header but no body; the reader must fail cleanly rather than
	// report the file as valid.
	result, err := ValidateBytes([]byte("%PDF-1.4"), RubricLimits)
	if err != nil {
		t.Fatalf("ValidateBytes failed: %v", err)
	}
	if result.Valid {
		t.Error("truncated PDF must be rejected")
	}
	if result.Error == "" {
		t.Error("expected a validation error message")
	}
}
