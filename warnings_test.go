package kestrel

import "testing"

func TestWarningListCoalescesAdjacentExtendable(t *testing.T) {
	// Testable property 8: consecutive same-kind extendable warnings whose
	// spans abut merge into a single entry.
	var l WarningList
	l.Add(WarnUnnecessarySemicolon, Span{Start: 0, End: 1})
	l.Add(WarnUnnecessarySemicolon, Span{Start: 1, End: 2})
	l.Add(WarnUnnecessarySemicolon, Span{Start: 2, End: 3})

	all := l.All()
	if len(all) != 1 {
		t.Fatalf("len(All()) = %d; want 1 (coalesced)", len(all))
	}
	if all[0].Span != (Span{Start: 0, End: 3}) {
		t.Fatalf("coalesced span = %+v; want {0,3}", all[0].Span)
	}
}

func TestWarningListDoesNotCoalesceNonAdjacent(t *testing.T) {
	var l WarningList
	l.Add(WarnUnnecessarySemicolon, Span{Start: 0, End: 1})
	l.Add(WarnUnnecessarySemicolon, Span{Start: 5, End: 6})

	if len(l.All()) != 2 {
		t.Fatalf("len(All()) = %d; want 2 (gap between spans)", len(l.All()))
	}
}

func TestWarningListDoesNotCoalesceDifferentKinds(t *testing.T) {
	var l WarningList
	l.Add(WarnUnnecessarySemicolon, Span{Start: 0, End: 1})
	l.Add(WarnUnnecessaryComma, Span{Start: 1, End: 2})

	if len(l.All()) != 2 {
		t.Fatalf("len(All()) = %d; want 2 (different kinds never coalesce)", len(l.All()))
	}
}

func TestWarningKindStrings(t *testing.T) {
	if WarnUnnecessarySemicolon.String() != "unnecessary semicolon" {
		t.Fatalf("String() = %q", WarnUnnecessarySemicolon.String())
	}
	if WarnUnnecessaryComma.String() != "unnecessary comma" {
		t.Fatalf("String() = %q", WarnUnnecessaryComma.String())
	}
}
