// Package issue defines the core domain types for driftwood.
package issue

// Kind identifies the category of a reported issue.
type Kind string

const (
	KindUnusedFile        Kind = "unused-file"
	KindUnusedDependency  Kind = "unused-dependency"
	KindUnlistedDep       Kind = "unlisted-dependency"
	KindUnlistedBinary    Kind = "unlisted-binary"
	KindUnresolvedImport  Kind = "unresolved-import"
	KindUnusedExport      Kind = "unused-export"
	KindUnusedClassMember Kind = "unused-class-member"
	KindUnusedEnumMember  Kind = "unused-enum-member"
)

// AllKinds lists every issue kind in report order.
var AllKinds = []Kind{
	KindUnusedFile,
	KindUnusedDependency,
	KindUnlistedDep,
	KindUnlistedBinary,
	KindUnresolvedImport,
	KindUnusedExport,
	KindUnusedClassMember,
	KindUnusedEnumMember,
}

// Severity ranks how actionable an issue is.
type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warn"
)

// Issue represents a single reported artifact.
type Issue struct {
	Workspace string   // Workspace name the issue is attributed to.
	File      string   // Repo-relative file path (empty for dependency issues).
	Symbol    string   // Export, member, package, or binary name (optional).
	Line      int      // 1-based line of the symbol (0 if not applicable).
	Kind      Kind     // Issue category.
	Severity  Severity // error or warn.
}

// Diagnostic records a demoted error attached to the report. Demoted errors
// are never swallowed: parse failures and I/O misses on non-entry files all
// end up here.
type Diagnostic struct {
	File    string // Repo-relative file the diagnostic concerns (may be empty).
	Line    uint32 // 1-based line (0 when the diagnostic is file-wide).
	Message string
}

// Report is the aggregate output of one analysis pass.
type Report struct {
	Root        string       // Absolute analysis root.
	Issues      []Issue      // All issues, deterministically ordered.
	Diagnostics []Diagnostic // Demoted errors.
	Summary     map[Kind]int // Count per kind, zero-count kinds omitted.
}

// NewReport builds a Report from issues, computing the summary. Callers are
// expected to hand in issues already in deterministic order.
func NewReport(root string, issues []Issue, diags []Diagnostic) *Report {
	summary := make(map[Kind]int)
	for _, is := range issues {
		summary[is.Kind]++
	}
	return &Report{
		Root:        root,
		Issues:      issues,
		Diagnostics: diags,
		Summary:     summary,
	}
}

// Count returns the number of issues of the given kind.
func (r *Report) Count(kind Kind) int { return r.Summary[kind] }

// Total returns the total issue count.
func (r *Report) Total() int { return len(r.Issues) }
