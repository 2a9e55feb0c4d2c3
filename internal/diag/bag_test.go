package diag

import (
	"testing"

	"zephyr/internal/source"
)

func TestBagCapAndMerge(t *testing.T) {
	b := NewBag(2)
	sp := source.Span{File: 0, Start: 1, End: 2}
	if !b.Add(NewError(SemaUndefinedName, sp, "a")) || !b.Add(NewError(SemaUndefinedName, sp, "b")) {
		t.Fatalf("expected first two adds to succeed")
	}
	if b.Add(NewError(SemaUndefinedName, sp, "c")) {
		t.Fatalf("expected add past cap to fail")
	}
	if !b.Full() {
		t.Fatalf("bag should be full")
	}

	other := NewBag(0)
	other.Add(New(SevWarning, SemaDuplicateImport, sp, "w"))
	other.Add(New(SevError, SemaImportError, sp, "e"))
	b.Merge(other)
	if b.Len() != 4 {
		t.Fatalf("merge must keep every diagnostic, got %d", b.Len())
	}
	if b.ErrorCount() != 3 {
		t.Fatalf("ErrorCount = %d, want 3", b.ErrorCount())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	late := source.Span{File: 0, Start: 10, End: 12}
	early := source.Span{File: 0, Start: 2, End: 4}
	b.Add(New(SevWarning, SemaRedundantTypeCheck, early, "warn"))
	b.Add(NewError(SemaCannotConvert, late, "late"))
	b.Add(NewError(SemaUndefinedType, early, "early"))
	b.Add(NewError(SemaUndefinedType, early, "early again"))

	b.Sort()
	items := b.Items()
	if items[0].Code != SemaUndefinedType || items[2].Code != SemaRedundantTypeCheck || items[3].Code != SemaCannotConvert {
		t.Fatalf("unexpected order: %v %v %v %v", items[0].Code, items[1].Code, items[2].Code, items[3].Code)
	}

	b.Dedup()
	if b.Len() != 3 {
		t.Fatalf("Dedup kept %d items, want 3", b.Len())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	rep := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 3, End: 5}

	b := ReportError(rep, SemaUndefinedName, sp, "undefined name 'x'").WithNote(sp, "declared later")
	b.Emit()
	b.Emit()
	ReportError(rep, SemaUndefinedName, sp, "undefined name 'x'").Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
	if got := bag.Items()[0]; len(got.Notes) != 1 || got.Code.ID() != "SEM3101" {
		t.Fatalf("unexpected diagnostic %+v", got)
	}
}
