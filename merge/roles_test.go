package merge

import "testing"

func TestLGRoleDefaultsToString(t *testing.T) {
	reg := NewRegistry()
	reg.Put("Widget", mustParse(t, `{
		"properties": {"greeting": {"$role": "lg"}}
	}`))

	diags := NewDiags()
	CheckLGRoles(reg, diags)

	if diags.Failed() {
		t.Fatalf("unexpected diagnostics: %v", diags.All())
	}
	doc, _ := reg.Get("Widget")
	if got := doc.Get("properties").Get("greeting").Get("type").StringVal(); got != "string" {
		t.Errorf("type %q, want string", got)
	}
}

func TestLGRoleWrongType(t *testing.T) {
	reg := NewRegistry()
	reg.Put("Widget", mustParse(t, `{
		"properties": {"greeting": {"$role": "lg", "type": "number"}}
	}`))

	diags := NewDiags()
	CheckLGRoles(reg, diags)

	all := diags.All()
	if len(all) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(all), all)
	}
	if all[0].Kind != BadRoleType || all[0].Subject != "greeting" {
		t.Errorf("unexpected diagnostic: %v", all[0])
	}
}

func TestLGRoleStringAccepted(t *testing.T) {
	reg := NewRegistry()
	reg.Put("Widget", mustParse(t, `{
		"properties": {"greeting": {"$role": "lg", "type": "string"}}
	}`))

	diags := NewDiags()
	CheckLGRoles(reg, diags)

	if diags.Failed() {
		t.Errorf("unexpected diagnostics: %v", diags.All())
	}
}

func TestOtherRolesIgnored(t *testing.T) {
	reg := NewRegistry()
	reg.Put("Widget", mustParse(t, `{
		"properties": {"p": {"$role": "somethingElse", "type": "number"}}
	}`))

	diags := NewDiags()
	CheckLGRoles(reg, diags)

	if diags.Failed() {
		t.Errorf("unexpected diagnostics: %v", diags.All())
	}
}
