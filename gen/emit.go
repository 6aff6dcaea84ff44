// Package gen turns a set of tagged names into the persisted generated file
// and decides whether downstream rebuilds can be suppressed.
//
// Rendering is a pure function of the canonical name sequence: identical
// input yields byte-identical output on every platform. The incremental
// engine depends on that to compare runs byte-for-byte.
package gen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lens-go/opticgen/scan"
)

// reserved names never generate declarations. The consumer optics library
// declares these intrinsically for built-in sum and tuple shapes; a user
// tag with the same name would collide with those declarations.
var reserved = map[string]struct{}{
	"Some": {}, "None": {},
	"Ok": {}, "Err": {},
	"_0": {}, "_1": {}, "_2": {}, "_3": {}, "_4": {}, "_5": {},
	"_6": {}, "_7": {}, "_8": {}, "_9": {}, "_10": {}, "_11": {},
	"_12": {}, "_13": {}, "_14": {}, "_15": {}, "_16": {},
}

// Reserved reports whether name is excluded from generation
func Reserved(name string) bool {
	_, ok := reserved[name]
	return ok
}

// Canonicalize filters reserved names out of the set and returns the
// remainder sorted ascending by raw byte order. No locale, no case folding:
// the ordering must be identical everywhere.
func Canonicalize(names scan.NameSet) []string {
	out := make([]string, 0, names.Len())
	for _, name := range names.Names() {
		if Reserved(name) {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Render produces the generated file for the canonical name sequence: a
// fixed header, then one wrapper declaration per name, each preceded by a
// blank line. The nolint directive admits names that break Go naming
// conventions (lower-case field names, underscore-led variants).
func Render(pkg string, names []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "// Code generated by opticgen. DO NOT EDIT.\n\npackage %s\n", pkg)
	for _, name := range names {
		fmt.Fprintf(&b, "\n//nolint:revive,stylecheck\ntype %s[Optics any] struct{ Optics Optics }\n", name)
	}

	return b.String()
}
