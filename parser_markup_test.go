package kestrel

import "testing"

func TestParseMarkupSelfClosing(t *testing.T) {
	expr := parseOneExpr(t, "<br/>")
	if expr.Kind != ExprMarkup || expr.Markup.TagName != "br" {
		t.Fatalf("expr = %+v; want a self-closing <br/>", expr)
	}
	if len(expr.Markup.Children) != 0 {
		t.Fatalf("Children = %+v; want none", expr.Markup.Children)
	}
}

func TestParseMarkupWithStringAttributeAndTextChild(t *testing.T) {
	expr := parseOneExpr(t, `<a href="x">click</a>`)
	el := expr.Markup
	if len(el.Attributes) != 1 || el.Attributes[0].Name != "href" {
		t.Fatalf("attributes = %+v; want 1 attribute \"href\"", el.Attributes)
	}
	if el.Attributes[0].Value.Kind != ExprString || el.Attributes[0].Value.String != "x" {
		t.Fatalf("attribute value = %+v; want String(\"x\")", el.Attributes[0].Value)
	}
	if len(el.Children) != 1 || el.Children[0].Text != "click" {
		t.Fatalf("children = %+v; want 1 text child \"click\"", el.Children)
	}
}

func TestParseMarkupAttributeExpressionValue(t *testing.T) {
	expr := parseOneExpr(t, "<a x={1 + 2}>t</a>")
	attr := expr.Markup.Attributes[0]
	if attr.Value.Kind != ExprBinary || attr.Value.Operator != SymPlus {
		t.Fatalf("attribute value = %+v; want a binary '+' expression", attr.Value)
	}
}

func TestParseMarkupNestedElementChild(t *testing.T) {
	expr := parseOneExpr(t, "<p><b/></p>")
	children := expr.Markup.Children
	if len(children) != 1 || children[0].Element == nil || children[0].Element.TagName != "b" {
		t.Fatalf("children = %+v; want a nested <b/> element", children)
	}
}

func TestParseMarkupInsertChild(t *testing.T) {
	expr := parseOneExpr(t, "<p>{x}</p>")
	children := expr.Markup.Children
	if len(children) != 1 || children[0].Insert == nil || children[0].Insert.Kind != ExprIdentifier {
		t.Fatalf("children = %+v; want a single insert child", children)
	}
}

func TestParseMarkupTagNameMismatchIsAnError(t *testing.T) {
	err := parseErr(t, "let x = <a>text</b>")
	if err.Code != ErrMarkupTagNameMismatch {
		t.Fatalf("error code = %v; want ErrMarkupTagNameMismatch", err.Code)
	}
}

func TestParseMarkupDeeplyNestedAttributeInsert(t *testing.T) {
	// Testable property 9's example, parsed end to end rather than just
	// lexed: a nested self-closing element inside an attribute insert.
	expr := parseOneExpr(t, "<a x={<b/>}>text</a>")
	if expr.Markup.TagName != "a" {
		t.Fatalf("outer tag = %q; want \"a\"", expr.Markup.TagName)
	}
	attr := expr.Markup.Attributes[0]
	if attr.Value.Kind != ExprMarkup || attr.Value.Markup.TagName != "b" {
		t.Fatalf("attribute value = %+v; want a nested <b/> markup expression", attr.Value)
	}
	if len(expr.Markup.Children) != 1 || expr.Markup.Children[0].Text != "text" {
		t.Fatalf("children = %+v; want 1 text child \"text\"", expr.Markup.Children)
	}
}
