// Package models holds the data types shared by every stage of the
// pipeline: the parsed value tree, the flag set, and the inferred
// schema definitions.
package models

// ValueKind identifies the variant held by a Value.
type ValueKind int

const (
	Null ValueKind = iota
	Bool
	Number
	String
	Array
	Object
)

var valueKindNames = map[ValueKind]string{
	Null:   "null",
	Bool:   "bool",
	Number: "number",
	String: "string",
	Array:  "array",
	Object: "object",
}

func (k ValueKind) String() string {
	if name, ok := valueKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Value is the parsed representation of a JSON-like literal. It is a
// closed tagged union: Kind selects which of the payload fields is
// meaningful. Object members keep their source order, which determines
// field declaration order in the output.
type Value struct {
	Kind    ValueKind
	Bool    bool
	Num     float64
	Str     string
	Items   []Value  // Array elements
	Members []Member // Object members, insertion order
}

// Member is a single key/value pair of an object literal.
type Member struct {
	Key   string
	Value Value
}

// NullValue returns the null variant.
func NullValue() Value { return Value{Kind: Null} }

// BoolValue returns a boolean variant.
func BoolValue(b bool) Value { return Value{Kind: Bool, Bool: b} }

// NumberValue returns a numeric variant. All numbers share the
// double-precision model; integers and floats are not distinguished.
func NumberValue(f float64) Value { return Value{Kind: Number, Num: f} }

// StringValue returns a string variant.
func StringValue(s string) Value { return Value{Kind: String, Str: s} }

// ArrayValue returns an array variant.
func ArrayValue(items ...Value) Value { return Value{Kind: Array, Items: items} }

// ObjectValue returns an object variant with members in the given order.
func ObjectValue(members ...Member) Value { return Value{Kind: Object, Members: members} }

// CasingMode is the field-naming convention applied uniformly to a
// type's binding identifiers. The wire name is never affected.
type CasingMode int

const (
	CasingNone CasingMode = iota
	CasingSnake
	CasingCamel
	CasingPascal
)

// String returns the serialization-policy name for the mode, matching
// the convention used in rename-all metadata. CasingNone yields "".
func (m CasingMode) String() string {
	switch m {
	case CasingSnake:
		return "snake_case"
	case CasingCamel:
		return "camelCase"
	case CasingPascal:
		return "PascalCase"
	default:
		return ""
	}
}

// FlagSet is the validated directive list of one invocation. At most
// one casing flag may be active; the parser rejects conflicts.
type FlagSet struct {
	Debug        bool
	Casing       CasingMode
	ExtraDerives []string // first-seen order, deduplicated
	StoreJSON    bool
	NoAlias      bool
}

// Invocation is one parsed macro use: a root type name, its flags, and
// the object literal to infer from.
type Invocation struct {
	Name  string
	Flags FlagSet
	Root  Value
}

// TypeKind identifies the variant held by a FieldType.
type TypeKind int

const (
	// UnknownType is a placeholder produced by empty arrays and null
	// values. It must be resolved (or reported) before a schema leaves
	// the inference engine; it never appears in a final schema tree.
	UnknownType TypeKind = iota
	ScalarType
	OptionalType
	CollectionType
	ReferenceType
)

// ScalarKind is the closed set of scalar field types.
type ScalarKind int

const (
	ScalarBool ScalarKind = iota
	ScalarNumber
	ScalarText
)

func (k ScalarKind) String() string {
	switch k {
	case ScalarBool:
		return "bool"
	case ScalarNumber:
		return "number"
	default:
		return "text"
	}
}

// FieldType is the inferred type of a field: a scalar, an optional
// wrapper, a homogeneous collection, or a reference to a nested
// TypeDef by name.
type FieldType struct {
	Kind   TypeKind
	Scalar ScalarKind // ScalarType only
	Elem   *FieldType // OptionalType and CollectionType
	Ref    string     // ReferenceType only
}

// Unknown returns the unresolved placeholder type.
func Unknown() FieldType { return FieldType{Kind: UnknownType} }

// Scalar returns a scalar field type.
func Scalar(k ScalarKind) FieldType { return FieldType{Kind: ScalarType, Scalar: k} }

// Optional wraps t. Wrapping an already-optional type is a no-op.
func Optional(t FieldType) FieldType {
	if t.Kind == OptionalType {
		return t
	}
	return FieldType{Kind: OptionalType, Elem: &t}
}

// Collection returns a homogeneous array of t.
func Collection(t FieldType) FieldType {
	return FieldType{Kind: CollectionType, Elem: &t}
}

// Reference returns a reference to the named TypeDef.
func Reference(name string) FieldType { return FieldType{Kind: ReferenceType, Ref: name} }

// Equal reports whether two field types are structurally identical.
func (t FieldType) Equal(other FieldType) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case ScalarType:
		return t.Scalar == other.Scalar
	case OptionalType, CollectionType:
		return t.Elem.Equal(*other.Elem)
	case ReferenceType:
		return t.Ref == other.Ref
	default:
		return true
	}
}

// String renders the type for error messages and debug output.
func (t FieldType) String() string {
	switch t.Kind {
	case ScalarType:
		return t.Scalar.String()
	case OptionalType:
		return "optional<" + t.Elem.String() + ">"
	case CollectionType:
		return "collection<" + t.Elem.String() + ">"
	case ReferenceType:
		return t.Ref
	default:
		return "unknown"
	}
}

// Field is a named, typed member of a TypeDef. Wire is the untouched
// original JSON key, used as the serialization alias; Binding is the
// key after the casing policy has been applied. Fields are created
// once during inference and never mutated.
type Field struct {
	Wire    string
	Binding string
	Type    FieldType
}

// TypeDef is a named structured type with an ordered field list.
// Derives is attached by the assembler; the field list is final at
// creation time.
type TypeDef struct {
	Name    string
	Fields  []Field
	Derives []string
}

// Equivalent reports whether two defs have the same shape: same field
// count and, per wire key, the same binding and structurally equal
// type. Field order is not significant for equivalence.
func (d *TypeDef) Equivalent(other *TypeDef) bool {
	if d == nil || other == nil {
		return d == other
	}
	if len(d.Fields) != len(other.Fields) {
		return false
	}
	byWire := make(map[string]Field, len(d.Fields))
	for _, f := range d.Fields {
		byWire[f.Wire] = f
	}
	for _, f := range other.Fields {
		have, ok := byWire[f.Wire]
		if !ok {
			return false
		}
		if have.Binding != f.Binding || !have.Type.Equal(f.Type) {
			return false
		}
	}
	return true
}

// Schema is the forest of TypeDefs inferred from one value tree. Defs
// is in dependency order: every def appears after the defs it
// references, so the root def is last. The schema exclusively owns its
// defs; later stages read them without mutating the field lists.
type Schema struct {
	RootName string
	Defs     []*TypeDef
}

// Root returns the root TypeDef.
func (s *Schema) Root() *TypeDef { return s.Lookup(s.RootName) }

// Lookup returns the def with the given name, or nil.
func (s *Schema) Lookup(name string) *TypeDef {
	for _, d := range s.Defs {
		if d.Name == name {
			return d
		}
	}
	return nil
}
