// Package assemble merges a schema tree with the flag set into the
// final ordered emission list: type definitions with their derive
// lists and serialization metadata, plus the optional stored-literal
// constant.
package assemble

import (
	json "github.com/goccy/go-json"

	"github.com/abdullah-albanna/json-to-struct/internal/casing"
	"github.com/abdullah-albanna/json-to-struct/internal/models"
)

// Item is one emitted output item: either a type definition with its
// attached metadata, or a constant holding the canonical serialized
// literal.
type Item struct {
	Type     *models.TypeDef
	Rename   models.CasingMode // serialization rename policy for all fields of Type
	Alias    bool              // fields keep their original-key alias on decode
	Constant *Constant
}

// Constant is the stored-literal output item: the canonical JSON form
// of the original root value, with object keys sorted
// lexicographically for deterministic byte output.
type Constant struct {
	Name string
	JSON string
}

// Assemble produces the ordered output items for one invocation. Types
// come out in the schema's dependency order, so every definition
// appears before the definitions that reference it and the result
// compiles without forward references. Assembly itself cannot fail;
// all validation happens during flag parsing and inference.
func Assemble(schema *models.Schema, root models.Value, flags models.FlagSet) []Item {
	items := make([]Item, 0, len(schema.Defs)+1)

	if flags.StoreJSON {
		items = append(items, Item{Constant: &Constant{
			Name: casing.ConstantName(schema.RootName),
			JSON: CanonicalJSON(root),
		}})
	}

	derives := deriveList(flags)
	for _, def := range schema.Defs {
		def.Derives = derives
		items = append(items, Item{
			Type:   def,
			Rename: flags.Casing,
			Alias:  !flags.NoAlias,
		})
	}
	return items
}

// deriveList builds the derive list: the fixed base set, Debug when
// requested, then the extras in first-seen order with duplicates
// dropped.
func deriveList(flags models.FlagSet) []string {
	derives := []string{"Clone", "Deserialize", "Serialize"}
	if flags.Debug {
		derives = append(derives, "Debug")
	}
	seen := make(map[string]struct{}, len(derives))
	for _, d := range derives {
		seen[d] = struct{}{}
	}
	for _, d := range flags.ExtraDerives {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		derives = append(derives, d)
	}
	return derives
}

// CanonicalJSON serializes a value tree deterministically: object keys
// are re-sorted lexicographically, independent of the insertion order
// used for field declaration.
func CanonicalJSON(v models.Value) string {
	b, err := json.Marshal(toAny(v))
	if err != nil {
		return ""
	}
	return string(b)
}

// toAny lowers the value tree to plain Go values; the codec sorts map
// keys on marshal, which gives the lexicographic ordering.
func toAny(v models.Value) any {
	switch v.Kind {
	case models.Bool:
		return v.Bool
	case models.Number:
		return v.Num
	case models.String:
		return v.Str
	case models.Array:
		out := make([]any, len(v.Items))
		for i, item := range v.Items {
			out[i] = toAny(item)
		}
		return out
	case models.Object:
		out := make(map[string]any, len(v.Members))
		for _, m := range v.Members {
			out[m.Key] = toAny(m.Value)
		}
		return out
	default:
		return nil
	}
}
