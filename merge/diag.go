package merge

import "fmt"

// Kind classifies a diagnostic raised during a merge run.
type Kind int

const (
	MissingType Kind = iota
	BadUnion
	SchemaValidation
	ParseFailure
	BadRoleType
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		MissingType:      "missing type",
		BadUnion:         "bad union",
		SchemaValidation: "schema validation",
		ParseFailure:     "parse failure",
		BadRoleType:      "bad role type",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

// Diag is one reported problem. Subject names what the problem is
// about: a type name, file path or property key depending on Kind.
type Diag struct {
	Kind    Kind
	Subject string
	Detail  string
}

func (d Diag) String() string {
	if d.Detail == "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Subject)
	}
	return fmt.Sprintf("%s: %s: %s", d.Kind, d.Subject, d.Detail)
}

// Diags accumulates the diagnostics of a run, deduplicating repeats so
// that, for example, a missing type name is reported once no matter how
// many nodes reference it. A run has failed exactly when the collector
// is non-empty.
type Diags struct {
	// Report, when set, is invoked for each retained diagnostic as
	// it occurs.
	Report func(Diag)

	seen map[string]bool
	all  []Diag
}

func NewDiags() *Diags {
	return &Diags{seen: map[string]bool{}}
}

func (ds *Diags) Add(kind Kind, subject, detail string) {
	key := fmt.Sprintf("%d\x00%s\x00%s", kind, subject, detail)
	if ds.seen[key] {
		return
	}
	ds.seen[key] = true
	d := Diag{Kind: kind, Subject: subject, Detail: detail}
	ds.all = append(ds.all, d)
	if ds.Report != nil {
		ds.Report(d)
	}
}

func (ds *Diags) Failed() bool {
	return len(ds.all) > 0
}

func (ds *Diags) Len() int {
	return len(ds.all)
}

func (ds *Diags) All() []Diag {
	res := make([]Diag, len(ds.all))
	copy(res, ds.all)
	return res
}
