package merge

import "testing"

func TestDiagsDedupe(t *testing.T) {
	ds := NewDiags()
	ds.Add(MissingType, "Nonexistent", "")
	ds.Add(MissingType, "Nonexistent", "")
	ds.Add(MissingType, "Other", "")
	ds.Add(BadUnion, "Nonexistent", "detail")

	if ds.Len() != 3 {
		t.Errorf("len %d, want 3", ds.Len())
	}
	if !ds.Failed() {
		t.Error("non-empty collector should mark the run failed")
	}
}

func TestDiagsEmpty(t *testing.T) {
	ds := NewDiags()
	if ds.Failed() {
		t.Error("empty collector marked failed")
	}
}

func TestDiagsReport(t *testing.T) {
	ds := NewDiags()
	var got []Diag
	ds.Report = func(d Diag) { got = append(got, d) }

	ds.Add(MissingType, "X", "")
	ds.Add(MissingType, "X", "") // duplicate, not reported again
	ds.Add(BadRoleType, "prop", "must be a string")

	if len(got) != 2 {
		t.Fatalf("reported %d, want 2", len(got))
	}
	if got[0].Subject != "X" || got[1].Kind != BadRoleType {
		t.Errorf("unexpected reports: %v", got)
	}
}

func TestDiagString(t *testing.T) {
	d := Diag{Kind: MissingType, Subject: "Shape"}
	if d.String() != "missing type: Shape" {
		t.Errorf("got %q", d.String())
	}
	d = Diag{Kind: BadUnion, Subject: "Shape", Detail: "not a union"}
	if d.String() != "bad union: Shape: not a union" {
		t.Errorf("got %q", d.String())
	}
}
