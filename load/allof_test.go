package load

import "testing"

func TestFlattenAllOf(t *testing.T) {
	doc := mustParse(t, `{
		"allOf": [
			{"properties": {"a": {"type": "string"}}, "required": ["a"]},
			{"properties": {"b": {"type": "number"}}}
		],
		"title": "Combined"
	}`)
	if err := FlattenAllOf(doc); err != nil {
		t.Fatal(err)
	}
	if doc.Has("allOf") {
		t.Error("allOf left in place")
	}
	props := doc.Get("properties")
	if props.Get("a") == nil || props.Get("b") == nil {
		t.Fatalf("merged properties incomplete: %v", props.Keys)
	}
	if got := doc.Get("title").StringVal(); got != "Combined" {
		t.Errorf("carrier field lost: title %q", got)
	}
}

func TestFlattenAllOfCarrierWins(t *testing.T) {
	doc := mustParse(t, `{
		"allOf": [{"title": "FromMember", "type": "string"}],
		"title": "FromCarrier"
	}`)
	if err := FlattenAllOf(doc); err != nil {
		t.Fatal(err)
	}
	if got := doc.Get("title").StringVal(); got != "FromCarrier" {
		t.Errorf("carrier should win: got %q", got)
	}
	if got := doc.Get("type").StringVal(); got != "string" {
		t.Errorf("member field lost: got %q", got)
	}
}

func TestFlattenAllOfLaterMemberWins(t *testing.T) {
	doc := mustParse(t, `{"allOf": [
		{"description": "first"},
		{"description": "second"}
	]}`)
	if err := FlattenAllOf(doc); err != nil {
		t.Fatal(err)
	}
	if got := doc.Get("description").StringVal(); got != "second" {
		t.Errorf("got %q, want second", got)
	}
}

func TestFlattenAllOfNested(t *testing.T) {
	doc := mustParse(t, `{"definitions": {"inner": {
		"allOf": [{"type": "object"}, {"title": "Inner"}]
	}}}`)
	if err := FlattenAllOf(doc); err != nil {
		t.Fatal(err)
	}
	inner := doc.Get("definitions").Get("inner")
	if inner.Has("allOf") {
		t.Error("nested allOf left in place")
	}
	if got := inner.Get("title").StringVal(); got != "Inner" {
		t.Errorf("got %q", got)
	}
}

func TestFlattenAllOfDeterministicOrder(t *testing.T) {
	const src = `{
		"allOf": [
			{"x": 1, "y": {"b": 1, "a": 2}},
			{"z": 3, "y": {"c": 4}}
		],
		"w": 5
	}`
	var first []string
	for i := 0; i < 8; i++ {
		doc := mustParse(t, src)
		if err := FlattenAllOf(doc); err != nil {
			t.Fatal(err)
		}
		d, err := doc.MarshalJSON()
		if err != nil {
			t.Fatal(err)
		}
		if first == nil {
			first = []string{string(d)}
			continue
		}
		if string(d) != first[0] {
			t.Fatalf("run %d differs:\n%s\n%s", i, first[0], d)
		}
	}
	doc := mustParse(t, src)
	if err := FlattenAllOf(doc); err != nil {
		t.Fatal(err)
	}
	wantKeys := []string{"x", "y", "z", "w"}
	for i, k := range wantKeys {
		if doc.Keys[i] != k {
			t.Fatalf("key order %v, want %v", doc.Keys, wantKeys)
		}
	}
}

func TestFlattenAllOfBadMember(t *testing.T) {
	doc := mustParse(t, `{"allOf": [42]}`)
	if err := FlattenAllOf(doc); err == nil {
		t.Error("expected error for non-object member")
	}
}
