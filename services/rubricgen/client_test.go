package rubricgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"acadmin/model"
)

func TestGenerateFromPDF(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/generate" {
			t.Errorf("path = %s, want /generate", r.URL.Path)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		defer file.Close()
		if header.Filename != "rubric-source.pdf" {
			t.Errorf("filename = %s, want rubric-source.pdf", header.Filename)
		}

		json.NewEncoder(w).Encode(GenerateResponse{
			Name: "Trabajo Práctico 1",
			Criteria: []model.RubricCriterion{
				{
					Name:   "Correctness",
					Weight: 60,
					Levels: []model.RubricLevel{
						{Name: "Excellent", Score: 10, Description: "All cases handled"},
						{Name: "Poor", Score: 2, Description: "Mostly broken"},
					},
				},
				{Name: "Style", Weight: 40},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	result, err := client.GenerateFromPDF(context.Background(), []byte("%PDF-1.4 fake"), "rubric-source.pdf")
	if err != nil {
		t.Fatalf("GenerateFromPDF failed: %v", err)
	}

	if result.Name != "Trabajo Práctico 1" {
		t.Errorf("Name = %q, want Trabajo Práctico 1", result.Name)
	}
	if len(result.Criteria) != 2 {
		t.Fatalf("len(Criteria) = %d, want 2", len(result.Criteria))
	}
	if result.Criteria[0].Weight != 60 {
		t.Errorf("Weight = %v, want 60", result.Criteria[0].Weight)
	}
	if len(result.Criteria[0].Levels) != 2 {
		t.Errorf("len(Levels) = %d, want 2", len(result.Criteria[0].Levels))
	}
}

func TestGenerateFromPDFServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.GenerateFromPDF(context.Background(), []byte("%PDF-1.4"), "doc.pdf")
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error should carry the upstream status, got %v", err)
	}
}

func TestGenerateFromPDFEmptyCriteria(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(GenerateResponse{Name: "Empty"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.GenerateFromPDF(context.Background(), []byte("%PDF-1.4"), "doc.pdf")
	if err == nil {
		t.Fatal("expected error when the service returns no criteria")
	}
}

func TestGenerateFromPDFUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")

	_, err := client.GenerateFromPDF(context.Background(), []byte("%PDF-1.4"), "doc.pdf")
	if err == nil {
		t.Fatal("expected error for unreachable service")
	}
}
