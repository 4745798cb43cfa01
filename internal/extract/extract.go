// Copyright 2026 The Driftwood Authors
// SPDX-License-Identifier: MIT

// Package extract walks one parsed file and yields its import edges, exports,
// and reference edges as an immutable record the traversal engine applies to
// the shared graph.
package extract

import (
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/driftwood-dev/driftwood/internal/parse"
)

// ExportKind classifies an exported symbol.
type ExportKind int

const (
	Value ExportKind = iota
	Type
	Default
	Namespace
	Enum
	EnumMember
	ClassMember
	ReExport
)

// String returns the report-facing kind name.
func (k ExportKind) String() string {
	switch k {
	case Value:
		return "value"
	case Type:
		return "type"
	case Default:
		return "default"
	case Namespace:
		return "namespace"
	case Enum:
		return "enum"
	case EnumMember:
		return "enum-member"
	case ClassMember:
		return "class-member"
	case ReExport:
		return "re-export"
	}
	return "unknown"
}

// Export is one exported symbol. Members carry their parent symbol name so
// the classifier can report them as Parent.Name.
type Export struct {
	Name     string
	Parent   string
	Kind     ExportKind
	Line     uint32
	TypeOnly bool
	SelfUsed bool     // The name is referenced again inside its own file.
	Tags     []string // JSDoc tags of the preceding doc block, without @.
}

// HasTag reports whether the export's doc block carries the tag.
func (e Export) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Import is one import edge leaving the file.
type Import struct {
	Spec     string
	Line     uint32
	TypeOnly bool // The edge only matters in the type channel.
	ReExport bool // export ... from.
	Dynamic  bool // import(), require(), or new URL.
}

// Ref marks export Name of the module named by Spec as referenced. Name "*"
// references every export of the target.
type Ref struct {
	Spec     string
	Name     string
	TypeOnly bool
}

// Result is the per-file edge record. It is immutable once returned.
type Result struct {
	Imports []Import
	Exports []Export
	Refs    []Ref

	// MemberUses lists property names accessed anywhere in the file. The
	// class and enum member reports treat a member as used when any file
	// accesses a property of that name.
	MemberUses []string

	// DynamicUnresolvable lists lines of import() calls whose specifier is
	// not a string literal. They never suppress unused-file reports.
	DynamicUnresolvable []uint32
}

// Options gate the sub-symbol extraction modes.
type Options struct {
	ClassMembers bool
	EnumMembers  bool
}

// nsBinding tracks one namespace import binding by its local name.
type nsBinding struct {
	spec     string
	typeOnly bool
}

type extractor struct {
	file *parse.File
	opts Options

	res        Result
	refSeen    map[string]bool
	ns         map[string]nsBinding
	memberUses map[string]bool
	identCount map[string]int
}

// File extracts the edge record of a parsed file. Broken files yield an
// empty record.
func File(f *parse.File, opts Options) *Result {
	ex := &extractor{
		file:       f,
		opts:       opts,
		refSeen:    make(map[string]bool),
		ns:         make(map[string]nsBinding),
		memberUses: make(map[string]bool),
		identCount: make(map[string]int),
	}
	if f.Tree == nil || f.Broken {
		return &ex.res
	}

	root := f.Tree.RootNode()
	for i := 0; i < int(root.ChildCount()); i++ {
		ex.statement(root.Child(i))
	}
	ex.deepScan(root)
	ex.namespaceUses(root)

	for name := range ex.memberUses {
		ex.res.MemberUses = append(ex.res.MemberUses, name)
	}
	sort.Strings(ex.res.MemberUses)
	for i := range ex.res.Exports {
		e := &ex.res.Exports[i]
		if e.Parent == "" && ex.identCount[e.Name] >= 2 {
			e.SelfUsed = true
		}
	}
	return &ex.res
}

func (ex *extractor) text(n *sitter.Node) string {
	return n.Content(ex.file.Source)
}

func line(n *sitter.Node) uint32 { return n.StartPoint().Row + 1 }

// stringLiteral unquotes a string node. Returns "" for non-string nodes.
func (ex *extractor) stringLiteral(n *sitter.Node) string {
	if n == nil || n.Type() != "string" {
		return ""
	}
	s := ex.text(n)
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return ""
}

func (ex *extractor) addRef(spec, name string, typeOnly bool) {
	key := spec + "\x00" + name
	if typeOnly {
		key += "\x00t"
	}
	if ex.refSeen[key] {
		return
	}
	ex.refSeen[key] = true
	ex.res.Refs = append(ex.res.Refs, Ref{Spec: spec, Name: name, TypeOnly: typeOnly})
}

// statement dispatches one top-level statement.
func (ex *extractor) statement(n *sitter.Node) {
	switch n.Type() {
	case "import_statement":
		ex.importStatement(n)
	case "export_statement":
		ex.exportStatement(n)
	case "lexical_declaration", "variable_declaration":
		// Only scanned for require bindings here; plain declarations are
		// not exports.
		ex.requireDeclaration(n)
	case "expression_statement":
		ex.commonJSExport(n)
	}
}

// importStatement handles static imports: default, namespace, and named
// clauses, including type-only forms.
func (ex *extractor) importStatement(n *sitter.Node) {
	var spec string
	var clause *sitter.Node
	typeOnly := false

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "type":
			typeOnly = true
		case "import_clause":
			clause = child
		case "string":
			spec = ex.stringLiteral(child)
		}
	}
	if spec == "" {
		return
	}

	allType := true
	if clause != nil {
		allType = ex.importClause(clause, spec, typeOnly)
	}
	ex.res.Imports = append(ex.res.Imports, Import{
		Spec:     spec,
		Line:     line(n),
		TypeOnly: typeOnly || (clause != nil && allType),
	})
}

// importClause records bindings and their references. It reports whether
// every binding in the clause is type-only.
func (ex *extractor) importClause(clause *sitter.Node, spec string, clauseType bool) bool {
	allType := true
	for i := 0; i < int(clause.ChildCount()); i++ {
		child := clause.Child(i)
		switch child.Type() {
		case "identifier":
			// Default import binding.
			ex.addRef(spec, "default", clauseType)
			if !clauseType {
				allType = false
			}
		case "namespace_import":
			for j := 0; j < int(child.ChildCount()); j++ {
				gc := child.Child(j)
				if gc.Type() == "identifier" {
					ex.ns[ex.text(gc)] = nsBinding{spec: spec, typeOnly: clauseType}
				}
			}
			if !clauseType {
				allType = false
			}
		case "named_imports":
			for j := 0; j < int(child.ChildCount()); j++ {
				gc := child.Child(j)
				if gc.Type() != "import_specifier" {
					continue
				}
				name, inlineType := ex.importSpecifier(gc)
				if name == "" {
					continue
				}
				ex.addRef(spec, name, clauseType || inlineType)
				if !clauseType && !inlineType {
					allType = false
				}
			}
		}
	}
	return allType
}

// importSpecifier returns the imported (source-side) name of one specifier
// and whether it is an inline type import.
func (ex *extractor) importSpecifier(n *sitter.Node) (string, bool) {
	var name string
	typeOnly := false
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "type":
			typeOnly = true
		case "identifier", "string":
			// The first name is the source-side one; an alias follows "as".
			if name == "" {
				if child.Type() == "string" {
					name = ex.stringLiteral(child)
				} else {
					name = ex.text(child)
				}
			}
		}
	}
	return name, typeOnly
}

// exportStatement handles every export form: declarations, default exports,
// export clauses, and re-exports.
func (ex *extractor) exportStatement(n *sitter.Node) {
	var spec string
	var clause, nsExport, decl *sitter.Node
	isDefault := false
	typeOnly := false
	star := false

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "default":
			isDefault = true
		case "type":
			typeOnly = true
		case "*":
			star = true
		case "string":
			spec = ex.stringLiteral(child)
		case "export_clause":
			clause = child
		case "namespace_export":
			nsExport = child
		case "export", "from", ",", ";", "decorator":
		default:
			decl = child
		}
	}

	tags := ex.tagsFor(n)

	switch {
	case spec != "" && nsExport != nil:
		// export * as ns from "x"
		ex.res.Imports = append(ex.res.Imports, Import{Spec: spec, Line: line(n), TypeOnly: typeOnly, ReExport: true})
		for j := 0; j < int(nsExport.ChildCount()); j++ {
			gc := nsExport.Child(j)
			if gc.Type() == "identifier" || gc.Type() == "string" {
				name := ex.text(gc)
				if gc.Type() == "string" {
					name = ex.stringLiteral(gc)
				}
				ex.res.Exports = append(ex.res.Exports, Export{Name: name, Kind: Namespace, Line: line(n), TypeOnly: typeOnly, Tags: tags})
			}
		}
		ex.addRef(spec, "*", typeOnly)

	case spec != "" && star:
		// export * from "x": forwarded names stay live on the source module.
		ex.res.Imports = append(ex.res.Imports, Import{Spec: spec, Line: line(n), TypeOnly: typeOnly, ReExport: true})
		ex.addRef(spec, "*", typeOnly)

	case spec != "" && clause != nil:
		// export { a, b as c } from "x"
		ex.res.Imports = append(ex.res.Imports, Import{Spec: spec, Line: line(n), TypeOnly: typeOnly, ReExport: true})
		for _, es := range ex.exportSpecifiers(clause) {
			ex.addRef(spec, es.source, typeOnly || es.typeOnly)
			kind := ReExport
			if es.exported == "default" {
				kind = Default
			}
			ex.res.Exports = append(ex.res.Exports, Export{Name: es.exported, Kind: kind, Line: line(n), TypeOnly: typeOnly || es.typeOnly, Tags: tags})
		}

	case clause != nil:
		// export { a, b as c }
		for _, es := range ex.exportSpecifiers(clause) {
			kind := Value
			if typeOnly || es.typeOnly {
				kind = Type
			}
			if es.exported == "default" {
				kind = Default
			}
			ex.res.Exports = append(ex.res.Exports, Export{Name: es.exported, Kind: kind, Line: line(n), TypeOnly: typeOnly || es.typeOnly, Tags: tags})
		}

	case isDefault:
		ex.res.Exports = append(ex.res.Exports, Export{Name: "default", Kind: Default, Line: line(n), Tags: tags})
		if decl != nil {
			ex.declarationMembers(decl, "default", tags)
		}

	case decl != nil:
		ex.declaration(decl, tags)
	}
}

type exportSpec struct {
	source   string // Name on the source-module side.
	exported string // Name visible to importers.
	typeOnly bool
}

func (ex *extractor) exportSpecifiers(clause *sitter.Node) []exportSpec {
	var out []exportSpec
	for i := 0; i < int(clause.ChildCount()); i++ {
		child := clause.Child(i)
		if child.Type() != "export_specifier" {
			continue
		}
		es := exportSpec{}
		for j := 0; j < int(child.ChildCount()); j++ {
			gc := child.Child(j)
			switch gc.Type() {
			case "type":
				es.typeOnly = true
			case "identifier", "string":
				name := ex.text(gc)
				if gc.Type() == "string" {
					name = ex.stringLiteral(gc)
				}
				if es.source == "" {
					es.source = name
					es.exported = name
				} else {
					es.exported = name
				}
			}
		}
		if es.source != "" {
			out = append(out, es)
		}
	}
	return out
}

// declaration records the exports of a declaration node under an export
// statement.
func (ex *extractor) declaration(n *sitter.Node, tags []string) {
	ln := line(n)
	switch n.Type() {
	case "function_declaration", "generator_function_declaration":
		if name := ex.declName(n); name != "" {
			ex.res.Exports = append(ex.res.Exports, Export{Name: name, Kind: Value, Line: ln, Tags: tags})
		}
	case "class_declaration", "abstract_class_declaration":
		name := ex.declName(n)
		if name == "" {
			return
		}
		ex.res.Exports = append(ex.res.Exports, Export{Name: name, Kind: Value, Line: ln, Tags: tags})
		ex.declarationMembers(n, name, tags)
	case "enum_declaration":
		name := ex.declName(n)
		if name == "" {
			return
		}
		ex.res.Exports = append(ex.res.Exports, Export{Name: name, Kind: Enum, Line: ln, Tags: tags})
		if ex.opts.EnumMembers {
			ex.enumMembers(n, name)
		}
	case "interface_declaration", "type_alias_declaration":
		if name := ex.declName(n); name != "" {
			ex.res.Exports = append(ex.res.Exports, Export{Name: name, Kind: Type, Line: ln, TypeOnly: true, Tags: tags})
		}
	case "lexical_declaration", "variable_declaration":
		for i := 0; i < int(n.ChildCount()); i++ {
			child := n.Child(i)
			if child.Type() != "variable_declarator" {
				continue
			}
			if name := child.ChildByFieldName("name"); name != nil {
				ex.patternNames(name, tags, line(child))
			}
		}
	case "internal_module", "module":
		if name := ex.declName(n); name != "" {
			ex.res.Exports = append(ex.res.Exports, Export{Name: name, Kind: Namespace, Line: ln, Tags: tags})
		}
	}
}

// declarationMembers extracts class members when the mode is enabled.
func (ex *extractor) declarationMembers(n *sitter.Node, parent string, tags []string) {
	if !ex.opts.ClassMembers {
		return
	}
	if n.Type() != "class_declaration" && n.Type() != "abstract_class_declaration" {
		return
	}
	body := n.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.ChildCount()); i++ {
		m := body.Child(i)
		switch m.Type() {
		case "method_definition", "public_field_definition", "abstract_method_signature":
		default:
			continue
		}
		if ex.isPrivateMember(m) {
			continue
		}
		name := m.ChildByFieldName("name")
		if name == nil || name.Type() == "private_property_identifier" {
			continue
		}
		text := ex.text(name)
		if text == "constructor" {
			continue
		}
		ex.res.Exports = append(ex.res.Exports, Export{
			Name:   text,
			Parent: parent,
			Kind:   ClassMember,
			Line:   line(m),
			Tags:   ex.tagsFor(m),
		})
	}
	_ = tags
}

func (ex *extractor) isPrivateMember(m *sitter.Node) bool {
	for i := 0; i < int(m.ChildCount()); i++ {
		child := m.Child(i)
		if child.Type() == "accessibility_modifier" && ex.text(child) == "private" {
			return true
		}
	}
	return false
}

// enumMembers extracts the member names of an enum body.
func (ex *extractor) enumMembers(n *sitter.Node, parent string) {
	body := n.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.ChildCount()); i++ {
		m := body.Child(i)
		var name *sitter.Node
		switch m.Type() {
		case "enum_assignment":
			name = m.ChildByFieldName("name")
		case "property_identifier", "string":
			name = m
		default:
			continue
		}
		if name == nil {
			continue
		}
		text := ex.text(name)
		if name.Type() == "string" {
			text = ex.stringLiteral(name)
		}
		ex.res.Exports = append(ex.res.Exports, Export{
			Name:   text,
			Parent: parent,
			Kind:   EnumMember,
			Line:   line(m),
		})
	}
}

// patternNames flattens a declarator name node into exported names. Handles
// plain identifiers and destructuring patterns.
func (ex *extractor) patternNames(n *sitter.Node, tags []string, ln uint32) {
	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		ex.res.Exports = append(ex.res.Exports, Export{Name: ex.text(n), Kind: Value, Line: ln, Tags: tags})
	case "object_pattern", "array_pattern", "pair_pattern", "rest_pattern":
		for i := 0; i < int(n.ChildCount()); i++ {
			ex.patternNames(n.Child(i), tags, ln)
		}
	}
}

func (ex *extractor) declName(n *sitter.Node) string {
	if name := n.ChildByFieldName("name"); name != nil {
		return ex.text(name)
	}
	return ""
}

// requireDeclaration picks up const x = require("y") bindings, including
// namespace-style use of the bound name.
func (ex *extractor) requireDeclaration(n *sitter.Node) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.Type() != "variable_declarator" {
			continue
		}
		value := child.ChildByFieldName("value")
		if value == nil || value.Type() != "call_expression" {
			continue
		}
		spec := ex.requireSpec(value)
		if spec == "" {
			continue
		}
		name := child.ChildByFieldName("name")
		if name == nil {
			continue
		}
		switch name.Type() {
		case "identifier":
			// A whole-module binding behaves like a namespace import.
			ex.ns[ex.text(name)] = nsBinding{spec: spec}
		case "object_pattern":
			for _, dn := range ex.destructuredNames(name) {
				ex.addRef(spec, dn, false)
			}
		}
	}
}

func (ex *extractor) requireSpec(call *sitter.Node) string {
	fn := call.ChildByFieldName("function")
	if fn == nil || fn.Type() != "identifier" || ex.text(fn) != "require" {
		return ""
	}
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return ""
	}
	for i := 0; i < int(args.ChildCount()); i++ {
		if s := ex.stringLiteral(args.Child(i)); s != "" {
			return s
		}
	}
	return ""
}

// commonJSExport handles module.exports and exports.name assignments.
func (ex *extractor) commonJSExport(n *sitter.Node) {
	expr := n.Child(0)
	if expr == nil || expr.Type() != "assignment_expression" {
		return
	}
	left := expr.ChildByFieldName("left")
	if left == nil || left.Type() != "member_expression" {
		return
	}
	text := ex.text(left)
	switch {
	case text == "module.exports":
		ex.res.Exports = append(ex.res.Exports, Export{Name: "default", Kind: Default, Line: line(n), Tags: ex.tagsFor(n)})
	case strings.HasPrefix(text, "module.exports."):
		ex.res.Exports = append(ex.res.Exports, Export{Name: strings.TrimPrefix(text, "module.exports."), Kind: Value, Line: line(n), Tags: ex.tagsFor(n)})
	case strings.HasPrefix(text, "exports."):
		ex.res.Exports = append(ex.res.Exports, Export{Name: strings.TrimPrefix(text, "exports."), Kind: Value, Line: line(n), Tags: ex.tagsFor(n)})
	}
}

// deepScan walks the whole tree for constructs that can appear at any depth:
// dynamic import(), require() outside top-level declarations, new URL(spec,
// import.meta.url), property accesses, and identifier occurrences.
func (ex *extractor) deepScan(n *sitter.Node) {
	switch n.Type() {
	case "call_expression":
		ex.callEdge(n)
	case "new_expression":
		ex.newURLEdge(n)
	case "member_expression":
		if prop := n.ChildByFieldName("property"); prop != nil && prop.Type() == "property_identifier" {
			ex.memberUses[ex.text(prop)] = true
		}
	case "identifier", "type_identifier":
		ex.identCount[ex.text(n)]++
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		ex.deepScan(n.Child(i))
	}
}

func (ex *extractor) callEdge(call *sitter.Node) {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return
	}
	args := call.ChildByFieldName("arguments")

	switch fn.Type() {
	case "import":
		if args == nil {
			return
		}
		for i := 0; i < int(args.ChildCount()); i++ {
			arg := args.Child(i)
			switch arg.Type() {
			case "(", ")", ",":
				continue
			case "string":
				ex.res.Imports = append(ex.res.Imports, Import{Spec: ex.stringLiteral(arg), Line: line(call), Dynamic: true})
			default:
				// A computed specifier cannot seed reachability.
				ex.res.DynamicUnresolvable = append(ex.res.DynamicUnresolvable, line(call))
			}
			return
		}
	case "identifier":
		if ex.text(fn) != "require" {
			return
		}
		if spec := ex.requireSpec(call); spec != "" {
			ex.res.Imports = append(ex.res.Imports, Import{Spec: spec, Line: line(call), Dynamic: true})
		}
	}
}

// newURLEdge recognizes new URL("./asset", import.meta.url), which Node and
// bundlers treat as a file reference.
func (ex *extractor) newURLEdge(n *sitter.Node) {
	ctor := n.ChildByFieldName("constructor")
	if ctor == nil || ctor.Type() != "identifier" || ex.text(ctor) != "URL" {
		return
	}
	args := n.ChildByFieldName("arguments")
	if args == nil {
		return
	}
	var spec string
	sawMetaURL := false
	for i := 0; i < int(args.ChildCount()); i++ {
		arg := args.Child(i)
		switch arg.Type() {
		case "string":
			if spec == "" {
				spec = ex.stringLiteral(arg)
			}
		case "member_expression":
			if ex.text(arg) == "import.meta.url" {
				sawMetaURL = true
			}
		}
	}
	if spec != "" && sawMetaURL {
		ex.res.Imports = append(ex.res.Imports, Import{Spec: spec, Line: line(n), Dynamic: true})
	}
}

// namespaceUses classifies every use of a namespace binding. Member access
// and literal subscripts reference one name, destructuring references the
// destructured names, and anything else conservatively references all
// exports of the source module.
func (ex *extractor) namespaceUses(n *sitter.Node) {
	if len(ex.ns) == 0 {
		return
	}
	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node.Type() == "import_statement" {
			return
		}
		if node.Type() == "identifier" {
			if b, ok := ex.ns[ex.text(node)]; ok {
				ex.classifyNamespaceUse(node, b)
			}
		}
		for i := 0; i < int(node.ChildCount()); i++ {
			walk(node.Child(i))
		}
	}
	walk(n)
}

func (ex *extractor) classifyNamespaceUse(id *sitter.Node, b nsBinding) {
	parent := id.Parent()
	if parent == nil {
		return
	}
	switch parent.Type() {
	case "variable_declarator":
		if value := parent.ChildByFieldName("value"); value == id {
			if name := parent.ChildByFieldName("name"); name != nil && name.Type() == "object_pattern" {
				for _, dn := range ex.destructuredNames(name) {
					ex.addRef(b.spec, dn, b.typeOnly)
				}
				return
			}
		} else {
			// The binding is being declared, not used.
			return
		}
	case "member_expression":
		if parent.ChildByFieldName("object") == id {
			if prop := parent.ChildByFieldName("property"); prop != nil && prop.Type() == "property_identifier" {
				ex.addRef(b.spec, ex.text(prop), b.typeOnly)
				return
			}
		} else {
			// ns appearing as a property name is unrelated.
			return
		}
	case "subscript_expression":
		if parent.ChildByFieldName("object") == id {
			if idx := parent.ChildByFieldName("index"); idx != nil && idx.Type() == "string" {
				ex.addRef(b.spec, ex.stringLiteral(idx), b.typeOnly)
				return
			}
		} else {
			return
		}
	case "nested_type_identifier", "qualified_name":
		// ns.Foo in type position.
		for i := 0; i < int(parent.ChildCount()); i++ {
			child := parent.Child(i)
			if child != id && (child.Type() == "type_identifier" || child.Type() == "identifier") {
				ex.addRef(b.spec, ex.text(child), true)
				return
			}
		}
	}
	// Spread, iteration, argument passing, re-assignment: every export of
	// the source module must be considered live.
	ex.addRef(b.spec, "*", b.typeOnly)
}

// destructuredNames lists the property names pulled out of an object pattern.
func (ex *extractor) destructuredNames(pattern *sitter.Node) []string {
	var out []string
	for i := 0; i < int(pattern.ChildCount()); i++ {
		child := pattern.Child(i)
		switch child.Type() {
		case "shorthand_property_identifier_pattern":
			out = append(out, ex.text(child))
		case "pair_pattern":
			if key := child.ChildByFieldName("key"); key != nil {
				if key.Type() == "string" {
					out = append(out, ex.stringLiteral(key))
				} else {
					out = append(out, ex.text(key))
				}
			}
		case "object_assignment_pattern":
			if left := child.ChildByFieldName("left"); left != nil && left.Type() == "shorthand_property_identifier_pattern" {
				out = append(out, ex.text(left))
			}
		}
	}
	return out
}

// tagsFor finds the JSDoc block immediately preceding the node and returns
// its tag names without the leading @.
func (ex *extractor) tagsFor(n *sitter.Node) []string {
	start := n.StartByte()
	var best *parse.Comment
	for i := range ex.file.Comments {
		c := &ex.file.Comments[i]
		if c.End > start || !c.IsJSDoc() {
			continue
		}
		if best == nil || c.End > best.End {
			// Only whitespace may separate the block from the node.
			gap := ex.file.Source[c.End:start]
			if len(strings.TrimSpace(string(gap))) == 0 {
				best = c
			}
		}
	}
	if best == nil {
		return nil
	}
	return parseTags(best.Text)
}

// parseTags scans a JSDoc block for @tag tokens.
func parseTags(text string) []string {
	var out []string
	for i := 0; i < len(text); i++ {
		if text[i] != '@' {
			continue
		}
		j := i + 1
		for j < len(text) && (isTagByte(text[j]) || text[j] == '-') {
			j++
		}
		if j > i+1 {
			out = append(out, text[i+1:j])
		}
		i = j
	}
	return out
}

func isTagByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
