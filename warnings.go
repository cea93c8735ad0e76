package kestrel

// WarningKind enumerates the stylistic issues the parser flags without
// aborting (§3.6).
type WarningKind uint8

const (
	WarnUnnecessarySemicolon WarningKind = iota
	WarnUnnecessaryComma
)

func (k WarningKind) String() string {
	switch k {
	case WarnUnnecessarySemicolon:
		return "unnecessary semicolon"
	case WarnUnnecessaryComma:
		return "unnecessary comma"
	default:
		return "warning"
	}
}

// extendable reports whether consecutive emissions of this kind should be
// coalesced when their spans abut (§3.6). Both warnings currently defined
// are extendable; a future non-extendable kind would return false here.
func (k WarningKind) extendable() bool {
	switch k {
	case WarnUnnecessarySemicolon, WarnUnnecessaryComma:
		return true
	default:
		return false
	}
}

// WarningSpan is one recorded warning together with the source range it
// concerns.
type WarningSpan struct {
	Kind WarningKind
	Span Span
}

// WarningList accumulates parser warnings, coalescing consecutive
// same-kind extendable warnings whose ranges abut into a single span
// (testable property 8 in §8).
type WarningList struct {
	warnings []WarningSpan
}

// Add records a warning, merging it into the previous entry if both are
// the same extendable kind and the spans are adjacent (prev.End ==
// next.Start).
func (l *WarningList) Add(kind WarningKind, span Span) {
	if kind.extendable() && len(l.warnings) > 0 {
		last := &l.warnings[len(l.warnings)-1]
		if last.Kind == kind && last.Span.End == span.Start {
			last.Span.End = span.End
			return
		}
	}
	l.warnings = append(l.warnings, WarningSpan{Kind: kind, Span: span})
}

// All returns the accumulated warnings in emission order.
func (l *WarningList) All() []WarningSpan { return l.warnings }
