// Package casing implements the naming transformer: pure rewrites of
// wire names into binding names, plus identifier normalization.
package casing

import (
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"

	"github.com/abdullah-albanna/json-to-struct/internal/models"
)

// Apply rewrites a wire name into the binding name for the given mode.
// It is a pure function with no failure mode: the result is always a
// valid identifier, and applying the same mode twice yields the same
// result as applying it once. The wire name itself is never modified
// by the pipeline; only the returned binding is recased.
func Apply(wire string, mode models.CasingMode) string {
	switch mode {
	case models.CasingSnake:
		return strcase.ToSnake(Identifier(wire))
	case models.CasingCamel:
		return strcase.ToLowerCamel(Identifier(wire))
	case models.CasingPascal:
		return strcase.ToCamel(Identifier(wire))
	default:
		return Identifier(wire)
	}
}

// Identifier normalizes a string into a valid identifier: disallowed
// characters become underscores and a leading digit is prefixed. An
// unconvertible key (for example "$$$") falls back to "field".
func Identifier(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "field"
	}
	if unicode.IsDigit(rune(out[0])) {
		out = "_" + out
	}
	return out
}

// TypeName converts a key into a type-identifier convention name:
// first letter capitalized, non-alphanumeric stripped.
func TypeName(name string) string {
	pascal := strcase.ToCamel(Identifier(name))
	if pascal == "" {
		return "Field"
	}
	return pascal
}

// Exported returns the exported form of a binding name, used where the
// target language requires a capitalized identifier.
func Exported(binding string) string {
	name := strcase.ToCamel(binding)
	if name == "" {
		return "Field"
	}
	return name
}

// ConstantName derives the upper-snake name of the stored-literal
// constant for a root type name.
func ConstantName(rootName string) string {
	return strcase.ToScreamingSnake(rootName) + "_JSON_VALUE"
}
