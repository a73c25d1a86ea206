package canonical

import (
	"testing"

	"github.com/zero-day-ai/schemaid/document"
)

func mustParse(t *testing.T, src string) *document.Value {
	t.Helper()
	v, err := document.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse %s: %v", src, err)
	}
	return v
}

func normalized(t *testing.T, src string, p Policy) string {
	t.Helper()
	v := mustParse(t, src)
	Normalize(v, p)
	return string(document.Marshal(v, false))
}

func TestDropDescriptions(t *testing.T) {
	got := normalized(t,
		`{"description":"top","properties":{"a":{"type":"string","description":"inner"}}}`,
		Policy{DropDescriptions: true})
	want := `{"properties":{"a":{"type":"string"}}}`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestDropDescriptionsKeepsNonString(t *testing.T) {
	// Only string-valued descriptions are documentation; an object under the
	// same key is schema structure and stays.
	got := normalized(t,
		`{"properties":{"description":{"type":"string"}}}`,
		Policy{DropDescriptions: true})
	want := `{"properties":{"description":{"type":"string"}}}`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestDescriptionsKeptWhenTracked(t *testing.T) {
	src := `{"description":"top","type":"object"}`
	if got := normalized(t, src, Policy{}); got != src {
		t.Errorf("expected %s, got %s", src, got)
	}
}

func TestSortRequired(t *testing.T) {
	got := normalized(t,
		`{"required":["zeta","alpha","mu"]}`,
		Policy{SortRequired: true})
	want := `{"required":["alpha","mu","zeta"]}`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestSortRequiredFirstElementGuard(t *testing.T) {
	// A `required` list that does not start with a string is not a field
	// list and keeps its order.
	src := `{"required":[3,1,2]}`
	if got := normalized(t, src, Policy{SortRequired: true}); got != src {
		t.Errorf("expected %s, got %s", src, got)
	}
}

func TestSortRequiredPreservedWhenTracked(t *testing.T) {
	src := `{"required":["zeta","alpha"]}`
	if got := normalized(t, src, Policy{}); got != src {
		t.Errorf("expected %s, got %s", src, got)
	}
}

func TestSortListsCollapses(t *testing.T) {
	got := normalized(t,
		`{"enum":["pro",null,"free",2]}`,
		Policy{SortLists: true})
	want := `{"enum":["2","free","null","pro"]}`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestSortListsNormalizesElementsFirst(t *testing.T) {
	// Object elements are normalized before coercion, so two anyOf branches
	// differing only in description collapse to the same string.
	got := normalized(t,
		`{"anyOf":[{"type":"string","description":"b"},{"description":"a","type":"string"}]}`,
		Policy{SortLists: true, DropDescriptions: true})
	want := `{"anyOf":["{\"type\":\"string\"}","{\"type\":\"string\"}"]}`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestSortListsSkipsDefault(t *testing.T) {
	got := normalized(t,
		`{"default":[3,1,2],"enum":[3,1,2]}`,
		Policy{SortLists: true})
	want := `{"default":[3,1,2],"enum":["1","2","3"]}`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestDefaultSubtreeUntouched(t *testing.T) {
	// Nothing inside a default is rewritten, however deep.
	src := `{"default":{"description":"keep","required":["z","a"],"tags":[2,1]}}`
	if got := normalized(t, src, Policy{SortRequired: true, DropDescriptions: true, SortLists: true}); got != src {
		t.Errorf("expected %s, got %s", src, got)
	}
}

func TestNormalizeLeavesScalarsAlone(t *testing.T) {
	v := document.String("s")
	Normalize(v, Policy{SortRequired: true, DropDescriptions: true, SortLists: true})
	if v.Str != "s" {
		t.Errorf("scalar was modified: %v", v)
	}
	Normalize(nil, Policy{})
}

func TestStringify(t *testing.T) {
	cases := []struct {
		in   *document.Value
		want string
	}{
		{document.String("plain"), "plain"},
		{document.Int(7), "7"},
		{document.Null(), "null"},
		{document.Object().Set("b", document.Int(1)).Set("a", document.Int(2)), `{"b":1,"a":2}`},
	}
	for _, c := range cases {
		if got := Stringify(c.in); got != c.want {
			t.Errorf("expected %q, got %q", c.want, got)
		}
	}
}
