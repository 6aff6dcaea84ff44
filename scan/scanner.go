// Package scan walks Go syntax trees and collects identifiers tagged for
// optics generation.
//
// Two rules are always on: struct fields whose tag carries the optic key,
// and const specs (enum variants) marked with the //optic directive. Two
// more are installed at construction when the configuration asks for them:
// structx composite-literal sugar and //named_args functions. A file that
// does not parse is skipped; a tag applied in a way the scanner cannot
// interpret aborts the run.
package scan

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strconv"
	"strings"

	"github.com/lens-go/opticgen/logger"
)

// Directive comments recognized in scanned source
const (
	opticDirective     = "//optic"
	namedArgsDirective = "//named_args"
)

// The struct tag key marking a field for optics generation
const opticTagKey = "optic"

// UsageError reports a tagging construct the scanner cannot interpret.
// These are fatal: silently ignoring a misapplied tag would produce an
// incomplete, surprising optics set.
type UsageError struct {
	Pos    token.Position
	Reason string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Reason)
}

// Scanner collects tagged names from source files. Optional rules are
// selected once, at construction, not re-decided per node.
type Scanner struct {
	structx   bool
	namedArgs bool
}

// Option configures a Scanner
type Option func(*Scanner)

// WithStructx enables the structx/Structx literal rule
func WithStructx() Option {
	return func(s *Scanner) { s.structx = true }
}

// WithNamedArgs enables the named_args function rule
func WithNamedArgs() Option {
	return func(s *Scanner) { s.namedArgs = true }
}

// New returns a Scanner with the given optional rules installed
func New(opts ...Option) *Scanner {
	s := &Scanner{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanFile parses src and inserts every tagged name into names.
//
// A file that fails to parse is skipped without error: workspaces may
// legitimately contain files using syntax this scanner's toolchain does not
// understand, and those must not abort the run. The only error returned is
// *UsageError, which the caller must treat as fatal.
func (s *Scanner) ScanFile(path, src string, names NameSet) error {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		logger.Debugw("skipping unparseable file",
			logger.FieldFile, path,
			logger.FieldError, err)
		return nil
	}

	var usageErr *UsageError
	ast.Inspect(file, func(n ast.Node) bool {
		if usageErr != nil {
			return false
		}
		switch node := n.(type) {
		case *ast.GenDecl:
			if node.Tok == token.CONST {
				s.collectConstVariants(node, names)
			}
		case *ast.StructType:
			s.collectTaggedFields(node, names)
		case *ast.CompositeLit:
			if s.structx {
				usageErr = s.collectStructxLiteral(fset, node, names)
			}
		case *ast.FuncDecl:
			if s.namedArgs {
				usageErr = s.collectNamedArgs(fset, node, names)
			}
		}
		return true
	})

	if usageErr != nil {
		return usageErr
	}
	return nil
}

// collectConstVariants applies the enum-variant rule: every name in a const
// spec carrying the //optic directive is tagged. Go spells enums as typed
// const blocks, so the directive sits on the spec, not on a variant keyword.
//
// For an unparenthesized const the parser hangs the doc comment on the
// declaration rather than its single spec, so the declaration doc counts as
// tagging that spec. A doc comment above a parenthesized block marks the
// whole group, not a variant, and stays inert.
func (s *Scanner) collectConstVariants(decl *ast.GenDecl, names NameSet) {
	declTagged := decl.Lparen == token.NoPos && hasDirective(decl.Doc, opticDirective)

	for _, spec := range decl.Specs {
		valueSpec, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		if !declTagged && !hasDirective(valueSpec.Doc, opticDirective) && !hasDirective(valueSpec.Comment, opticDirective) {
			continue
		}
		for _, name := range valueSpec.Names {
			names.Insert(name.Name)
		}
	}
}

// collectTaggedFields applies the struct-field rule: named fields whose
// struct tag contains the optic key are tagged. Embedded fields have no
// field name and are ignored.
func (s *Scanner) collectTaggedFields(structType *ast.StructType, names NameSet) {
	for _, field := range structType.Fields.List {
		if field.Tag == nil || len(field.Names) == 0 {
			continue
		}
		tag, err := strconv.Unquote(field.Tag.Value)
		if err != nil {
			continue
		}
		if _, ok := reflect.StructTag(tag).Lookup(opticTagKey); !ok {
			continue
		}
		for _, name := range field.Names {
			names.Insert(name.Name)
		}
	}
}

// collectStructxLiteral applies the structx rule: an unqualified composite
// literal named structx or Structx declares an implicit field set. Every
// element must be a name: value pair; anything else is a usage error.
func (s *Scanner) collectStructxLiteral(fset *token.FileSet, lit *ast.CompositeLit, names NameSet) *UsageError {
	ident, ok := lit.Type.(*ast.Ident)
	if !ok || (ident.Name != "structx" && ident.Name != "Structx") {
		return nil
	}

	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			return &UsageError{
				Pos:    fset.Position(elt.Pos()),
				Reason: fmt.Sprintf("%s literal elements must be named fields", ident.Name),
			}
		}
		key, ok := kv.Key.(*ast.Ident)
		if !ok {
			return &UsageError{
				Pos:    fset.Position(kv.Key.Pos()),
				Reason: fmt.Sprintf("%s field keys must be plain identifiers", ident.Name),
			}
		}
		names.Insert(key.Name)
	}
	return nil
}

// collectNamedArgs applies the named_args rule: every parameter of a
// directive-marked function contributes its name. The receiver is excluded;
// an unnamed or blank parameter is a usage error because it carries no name
// an optic could be generated for.
func (s *Scanner) collectNamedArgs(fset *token.FileSet, fn *ast.FuncDecl, names NameSet) *UsageError {
	if !hasDirective(fn.Doc, namedArgsDirective) {
		return nil
	}

	if fn.Type.Params == nil {
		return nil
	}
	for _, param := range fn.Type.Params.List {
		if len(param.Names) == 0 {
			return &UsageError{
				Pos:    fset.Position(param.Pos()),
				Reason: fmt.Sprintf("named_args function %s has an unnamed parameter", fn.Name.Name),
			}
		}
		for _, name := range param.Names {
			if name.Name == "_" {
				return &UsageError{
					Pos:    fset.Position(name.Pos()),
					Reason: fmt.Sprintf("named_args function %s has a blank parameter", fn.Name.Name),
				}
			}
			names.Insert(name.Name)
		}
	}
	return nil
}

// hasDirective reports whether the comment group contains the directive as
// a whole comment line. Directive comments have no space after the slashes,
// matching the go toolchain's directive convention.
func hasDirective(group *ast.CommentGroup, directive string) bool {
	if group == nil {
		return false
	}
	for _, comment := range group.List {
		if strings.TrimRight(comment.Text, " \t") == directive {
			return true
		}
	}
	return false
}
