package database

import (
	"errors"
	"testing"

	"acadmin/model"
)

// The already-deleted and not-deleted paths short-circuit before any query
// runs, so they are testable without a database connection.

func TestSoftDeleteAlreadyDeleted(t *testing.T) {
	course := &model.Course{}
	course.SetDeleted(true)

	if err := SoftDelete(nil, course); !errors.Is(err, ErrAlreadyDeleted) {
		t.Errorf("expected ErrAlreadyDeleted, got %v", err)
	}
	if !course.IsDeleted() {
		t.Error("record must stay deleted after a rejected double delete")
	}
}

func TestRestoreNotDeleted(t *testing.T) {
	course := &model.Course{}

	if err := Restore(nil, course); !errors.Is(err, ErrNotDeleted) {
		t.Errorf("expected ErrNotDeleted, got %v", err)
	}
	if course.IsDeleted() {
		t.Error("record must stay active after a rejected restore")
	}
}
