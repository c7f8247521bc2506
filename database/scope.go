package database

import (
	"fmt"
	"strconv"

	"gorm.io/gorm"
)

// Filter carries the optional ancestor-scope parameters of a list request.
// Absent parameters stay empty and impose no constraint: an unscoped listing
// returns active records across every tenant, which is the documented
// under-scoping risk of the API.
type Filter struct {
	University string
	Faculty    string
	Career     string
	Course     string
	Commission string

	Year    int
	HasYear bool

	// IncludeDeleted widens the query to soft-deleted rows. It must be
	// requested explicitly; no query is filtered behind the caller's back.
	IncludeDeleted bool

	// Distinct collapses scope-ambiguous matches down to one representative
	// row per natural key. First match in display order wins, so the result
	// is not authoritative for scope-specific consumers.
	Distinct bool
}

// Columns maps filter dimensions to the column names of one entity's table.
// An empty column name means the dimension does not apply to that entity and
// the corresponding parameter is ignored.
type Columns struct {
	University string
	Faculty    string
	Career     string
	Course     string
	Commission string
	Year       string
}

// QueryGetter matches fiber.Ctx.Query so filters can be parsed straight from
// a request without coupling this package to the HTTP layer.
type QueryGetter func(key string, defaultValue ...string) string

// ParseFilter builds a Filter from query parameters. A non-numeric year is an
// error, never a silent passthrough.
func ParseFilter(query QueryGetter) (Filter, error) {
	f := Filter{
		University: query("university_id"),
		Faculty:    query("faculty_id"),
		Career:     query("career_id"),
		Course:     query("course_id"),
		Commission: query("commission_id"),
	}

	if raw := query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid year %q: must be numeric", raw)
		}
		f.Year = year
		f.HasYear = true
	}

	f.IncludeDeleted = query("include_deleted") == "true"
	f.Distinct = query("distinct") == "true"

	return f, nil
}

// Apply composes the conjunctive predicate: every present scope parameter is
// ANDed verbatim, and deleted rows are excluded unless explicitly requested.
func (f Filter) Apply(q *gorm.DB, cols Columns) *gorm.DB {
	if !f.IncludeDeleted {
		q = q.Where("deleted = ?", false)
	}

	if f.University != "" && cols.University != "" {
		q = q.Where(cols.University+" = ?", f.University)
	}
	if f.Faculty != "" && cols.Faculty != "" {
		q = q.Where(cols.Faculty+" = ?", f.Faculty)
	}
	if f.Career != "" && cols.Career != "" {
		q = q.Where(cols.Career+" = ?", f.Career)
	}
	if f.Course != "" && cols.Course != "" {
		q = q.Where(cols.Course+" = ?", f.Course)
	}
	if f.Commission != "" && cols.Commission != "" {
		q = q.Where(cols.Commission+" = ?", f.Commission)
	}
	if f.HasYear && cols.Year != "" {
		q = q.Where(cols.Year+" = ?", f.Year)
	}

	return q
}

// DedupByKey keeps the first row per natural key, preserving input order.
func DedupByKey[T any](rows []T, key func(T) string) []T {
	seen := make(map[string]bool, len(rows))
	out := rows[:0:0]
	for _, row := range rows {
		k := key(row)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, row)
	}
	return out
}
