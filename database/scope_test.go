package database

import (
	"testing"
)

func queryFrom(params map[string]string) QueryGetter {
	return func(key string, defaultValue ...string) string {
		if v, ok := params[key]; ok {
			return v
		}
		if len(defaultValue) > 0 {
			return defaultValue[0]
		}
		return ""
	}
}

func TestParseFilter(t *testing.T) {
	filter, err := ParseFilter(queryFrom(map[string]string{
		"university_id": "utn",
		"faculty_id":    "frm",
		"career_id":     "isi",
		"course_id":     "programacion-1",
		"year":          "2025",
	}))
	if err != nil {
		t.Fatalf("ParseFilter failed: %v", err)
	}

	if filter.University != "utn" {
		t.Errorf("University = %q, want utn", filter.University)
	}
	if filter.Faculty != "frm" {
		t.Errorf("Faculty = %q, want frm", filter.Faculty)
	}
	if filter.Career != "isi" {
		t.Errorf("Career = %q, want isi", filter.Career)
	}
	if filter.Course != "programacion-1" {
		t.Errorf("Course = %q, want programacion-1", filter.Course)
	}
	if !filter.HasYear || filter.Year != 2025 {
		t.Errorf("Year = %d (has=%v), want 2025", filter.Year, filter.HasYear)
	}
	if filter.IncludeDeleted {
		t.Error("IncludeDeleted should default to false")
	}
	if filter.Distinct {
		t.Error("Distinct should default to false")
	}
}

func TestParseFilterEmpty(t *testing.T) {
	filter, err := ParseFilter(queryFrom(nil))
	if err != nil {
		t.Fatalf("ParseFilter failed: %v", err)
	}

	if filter.University != "" || filter.Faculty != "" || filter.Career != "" ||
		filter.Course != "" || filter.Commission != "" {
		t.Error("absent parameters must stay empty")
	}
	if filter.HasYear {
		t.Error("absent year must not set HasYear")
	}
}

func TestParseFilterRejectsNonNumericYear(t *testing.T) {
	for _, raw := range []string{"abc", "20x5", "2025.5", " 2025"} {
		if _, err := ParseFilter(queryFrom(map[string]string{"year": raw})); err == nil {
			t.Errorf("year %q: expected error, got none", raw)
		}
	}
}

func TestParseFilterFlags(t *testing.T) {
	filter, err := ParseFilter(queryFrom(map[string]string{
		"include_deleted": "true",
		"distinct":        "true",
	}))
	if err != nil {
		t.Fatalf("ParseFilter failed: %v", err)
	}
	if !filter.IncludeDeleted {
		t.Error("include_deleted=true should set IncludeDeleted")
	}
	if !filter.Distinct {
		t.Error("distinct=true should set Distinct")
	}

	// Anything other than the literal "true" is off.
	filter, err = ParseFilter(queryFrom(map[string]string{
		"include_deleted": "1",
		"distinct":        "yes",
	}))
	if err != nil {
		t.Fatalf("ParseFilter failed: %v", err)
	}
	if filter.IncludeDeleted || filter.Distinct {
		t.Error("non-\"true\" values must not enable flags")
	}
}

func TestDedupByKey(t *testing.T) {
	type row struct {
		Code string
		Name string
	}

	rows := []row{
		{"programacion-1", "from frm"},
		{"analisis-matematico-1", "from frm"},
		{"programacion-1", "from frba"},
	}

	out := DedupByKey(rows, func(r row) string { return r.Code })

	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if out[0].Code != "programacion-1" || out[0].Name != "from frm" {
		t.Errorf("first match should win, got %+v", out[0])
	}
	if out[1].Code != "analisis-matematico-1" {
		t.Errorf("order must be preserved, got %+v", out[1])
	}
}

func TestDedupByKeyEmpty(t *testing.T) {
	out := DedupByKey(nil, func(s string) string { return s })
	if len(out) != 0 {
		t.Errorf("len(out) = %d, want 0", len(out))
	}
}
