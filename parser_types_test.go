package kestrel

import "testing"

func parseOneType(t *testing.T, src string) *Type {
	t.Helper()
	content, _ := parseOK(t, "type T = "+src)
	return content.Items[0].Statement.AliasedType
}

func TestParseNeverType(t *testing.T) {
	ty := parseOneType(t, "!")
	if ty.Kind != TypeNever {
		t.Fatalf("ty = %+v; want TypeNever", ty)
	}
}

func TestParseSimpleItemType(t *testing.T) {
	ty := parseOneType(t, "int")
	if ty.Kind != TypeUnion || len(ty.Members) != 1 {
		t.Fatalf("ty = %+v; want a single-member union", ty)
	}
	if ty.Members[0].Kind != RawTypeItem || ty.Members[0].Path.Name != "int" {
		t.Fatalf("member = %+v; want item reference \"int\"", ty.Members[0])
	}
}

func TestParseNonFirstUnionArmIsAnError(t *testing.T) {
	// Open Question (d): a second union arm is reserved syntax, not a
	// multi-member union.
	err := parseErr(t, "type T = int | string")
	if err.Code != ErrNonFirstUnionArmUnsupported {
		t.Fatalf("error code = %v; want ErrNonFirstUnionArmUnsupported", err.Code)
	}
}

func TestParseGenericItemType(t *testing.T) {
	ty := parseOneType(t, "List<int>")
	member := ty.Members[0]
	if member.Path.Name != "List" || len(member.TypeArgs) != 1 {
		t.Fatalf("member = %+v; want List<int>", member)
	}
	if member.TypeArgs[0].Members[0].Path.Name != "int" {
		t.Fatalf("type arg = %+v; want \"int\"", member.TypeArgs[0])
	}
}

func TestParseNestedGenericType(t *testing.T) {
	ty := parseOneType(t, "Map<string, List<int>>")
	member := ty.Members[0]
	if member.Path.Name != "Map" || len(member.TypeArgs) != 2 {
		t.Fatalf("member = %+v; want Map<string, List<int>>", member)
	}
}

func TestParseFunctionSignatureType(t *testing.T) {
	ty := parseOneType(t, "(x: int) -> bool")
	member := ty.Members[0]
	if member.Kind != RawTypeFunction || member.Signature == nil {
		t.Fatalf("member = %+v; want a function signature type", member)
	}
	if len(member.Signature.Parameters) != 1 || member.Signature.ReturnType == nil {
		t.Fatalf("signature = %+v; want 1 parameter and a return type", member.Signature)
	}
}

func TestParseDottedPathType(t *testing.T) {
	ty := parseOneType(t, "std.io.Reader")
	member := ty.Members[0]
	if member.Path.Name != "Reader" || len(member.Path.Parents) != 2 {
		t.Fatalf("path = %+v; want std.io.Reader", member.Path)
	}
}

func TestParseGenericTrailingCommaWarns(t *testing.T) {
	_, warnings := parseOK(t, "type T = List<int,>")
	found := false
	for _, w := range warnings {
		if w.Kind == WarnUnnecessaryComma {
			found = true
		}
	}
	if !found {
		t.Fatalf("warnings = %+v; want a trailing-comma warning", warnings)
	}
}
