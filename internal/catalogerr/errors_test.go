package catalogerr

import (
	"errors"
	"testing"
)

func TestDomainError(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		err := New(CodeNotFound, "definition not found")
		if err.Error() != "[NOT_FOUND] definition not found" {
			t.Errorf("unexpected message: %s", err.Error())
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		original := errors.New("eof")
		err := Wrap(original, CodeCorruptContainer, "read block header")
		want := "[CORRUPT_CONTAINER] read block header: eof"
		if err.Error() != want {
			t.Errorf("expected %s, got %s", want, err.Error())
		}
	})

	t.Run("IsCode", func(t *testing.T) {
		err := New(CodeInvalidQuery, "empty query")
		if !IsCode(err, CodeInvalidQuery) {
			t.Error("expected IsCode true for CodeInvalidQuery")
		}
		if IsCode(err, CodeNotFound) {
			t.Error("expected IsCode false for CodeNotFound")
		}
	})

	t.Run("IsCodeWithWrapped", func(t *testing.T) {
		original := errors.New("boom")
		err := Wrap(original, CodeInternal, "unexpected failure")
		if !IsCode(err, CodeInternal) {
			t.Error("expected IsCode true for wrapped CodeInternal")
		}
	})

	t.Run("WithContext", func(t *testing.T) {
		err := New(CodeNotFound, "no such member").(*DomainError).WithContext(CtxName, "ВыполнитьЗапрос")
		if err.Context[CtxName] != "ВыполнитьЗапрос" {
			t.Errorf("expected context to carry name, got %v", err.Context)
		}
	})

	t.Run("AddContext", func(t *testing.T) {
		err := AddContext(New(CodeMalformedToc, "unbalanced brackets"), CtxPath, "objects/Global context")
		var de *DomainError
		if !errors.As(err, &de) {
			t.Fatal("expected AddContext to return a *DomainError")
		}
		if de.Context[CtxPath] != "objects/Global context" {
			t.Errorf("expected context path set, got %v", de.Context)
		}
	})

	t.Run("Aborted", func(t *testing.T) {
		cause := New(CodeCorruptContainer, "bad magic")
		err := Aborted(cause)
		if !IsCode(err, CodeIngestionAborted) {
			t.Error("expected Aborted to carry CodeIngestionAborted")
		}
		if !errors.Is(err, cause) {
			t.Error("expected errors.Is to unwrap to the original cause")
		}
	})
}
