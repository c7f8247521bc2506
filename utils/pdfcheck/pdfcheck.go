package pdfcheck

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Limits defines the validation limits for uploaded rubric PDFs.
type Limits struct {
	MaxFileSizeMB int
	MaxPages      int
}

// RubricLimits bounds the documents accepted by the rubric generator. Rubric
// sheets are short; anything larger is almost certainly the wrong upload.
var RubricLimits = Limits{
	MaxFileSizeMB: 20,
	MaxPages:      30,
}

// Result contains the outcome of a PDF validation.
type Result struct {
	Valid     bool
	PageCount int
	FileSize  int64
	Error     string
}

// ValidateBytes validates PDF content against the given limits. A structural
// problem with the upload is reported in Result.Error; err is reserved for
// unexpected failures.
func ValidateBytes(content []byte, limits Limits) (*Result, error) {
	result := &Result{
		FileSize: int64(len(content)),
	}

	maxSize := int64(limits.MaxFileSizeMB) * 1024 * 1024
	if result.FileSize > maxSize {
		result.Error = fmt.Sprintf("File size exceeds maximum allowed size of %dMB", limits.MaxFileSizeMB)
		return result, nil
	}

	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		result.Error = "Invalid PDF file: missing PDF header"
		return result, nil
	}

	pageCount, err := pageCount(content)
	if err != nil {
		result.Error = fmt.Sprintf("Failed to read PDF: %v", err)
		return result, nil
	}

	result.PageCount = pageCount

	if pageCount > limits.MaxPages {
		result.Error = fmt.Sprintf("PDF has %d pages, which exceeds the maximum of %d pages", pageCount, limits.MaxPages)
		return result, nil
	}

	if pageCount == 0 {
		result.Error = "PDF has no pages"
		return result, nil
	}

	result.Valid = true
	return result, nil
}

func pageCount(content []byte) (int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return 0, err
	}
	return reader.NumPage(), nil
}
