// Package infer implements the type inference engine: it walks a value
// tree and produces a schema tree of named type definitions, unifying
// per-key types across repeated objects and naming nested types
// deterministically.
package infer

import (
	"fmt"

	"github.com/abdullah-albanna/json-to-struct/internal/casing"
	"github.com/abdullah-albanna/json-to-struct/internal/config"
	"github.com/abdullah-albanna/json-to-struct/internal/errors"
	"github.com/abdullah-albanna/json-to-struct/internal/models"
)

// Inferrer walks one value tree and owns the registry of definitions
// created along the way. Registration is post-order, so the Defs list
// of the resulting schema is already in dependency order: nested types
// first, root type last.
type Inferrer struct {
	flags  models.FlagSet
	cfg    *config.Config
	defs   []*models.TypeDef
	byName map[string]*models.TypeDef
}

// NewInferrer creates an Inferrer with default configuration.
func NewInferrer(flags models.FlagSet) *Inferrer {
	return NewInferrerWithConfig(flags, config.NewConfig())
}

// NewInferrerWithConfig creates an Inferrer with custom configuration.
func NewInferrerWithConfig(flags models.FlagSet, cfg *config.Config) *Inferrer {
	return &Inferrer{
		flags:  flags,
		cfg:    cfg,
		byName: make(map[string]*models.TypeDef),
	}
}

// Infer runs inference over one invocation with default configuration.
func Infer(rootName string, root models.Value, flags models.FlagSet) (*models.Schema, error) {
	return NewInferrer(flags).Infer(rootName, root)
}

// Infer produces the schema tree for a root value. The root must be an
// object. Given the same value tree and flags the result is identical
// across runs: object members are walked in source order and nothing
// depends on map iteration.
func (in *Inferrer) Infer(rootName string, root models.Value) (*models.Schema, error) {
	if root.Kind != models.Object {
		return nil, errors.NewInferenceError(
			fmt.Sprintf("root value must be an object, got %s", root.Kind),
			errors.ErrRootType,
		)
	}

	name, err := in.inferObjectGroup(casing.TypeName(rootName), []models.Value{root}, "", 0)
	if err != nil {
		return nil, err
	}
	return &models.Schema{RootName: name, Defs: in.defs}, nil
}

// inferObjectGroup infers one type definition from one or more object
// occurrences. A single occurrence is the plain object case; multiple
// occurrences come from array elements and are unified field by field:
// a key missing from some occurrences becomes optional, a key with
// incompatible types is a unification error.
func (in *Inferrer) inferObjectGroup(name string, objs []models.Value, path string, depth int) (string, error) {
	if depth > in.cfg.RecursionLimit {
		return "", errors.NewInferenceError(
			fmt.Sprintf("nesting depth exceeds limit %d at '%s'", in.cfg.RecursionLimit, path),
			errors.ErrRecursionLimit,
		)
	}

	// Walk keys in first-appearance order across all occurrences.
	type occurrence struct {
		values    []models.Value
		presentIn int
	}
	var order []string
	occ := make(map[string]*occurrence)
	for _, obj := range objs {
		seen := make(map[string]bool)
		for _, m := range obj.Members {
			o, ok := occ[m.Key]
			if !ok {
				o = &occurrence{}
				occ[m.Key] = o
				order = append(order, m.Key)
			}
			o.values = append(o.values, m.Value)
			if !seen[m.Key] {
				o.presentIn++
				seen[m.Key] = true
			}
		}
	}

	fields := make([]models.Field, 0, len(order))
	for _, key := range order {
		o := occ[key]
		fieldPath := childPath(path, key)

		ft, err := in.inferKey(key, o.values, fieldPath, depth)
		if err != nil {
			return "", err
		}
		if o.presentIn < len(objs) {
			ft = models.Optional(ft)
		}
		ft, err = in.resolveUnknown(ft, fieldPath)
		if err != nil {
			return "", err
		}

		fields = append(fields, models.Field{
			Wire:    key,
			Binding: casing.Apply(key, in.flags.Casing),
			Type:    ft,
		})
	}

	return in.register(&models.TypeDef{Name: name, Fields: fields}, path)
}

// inferKey unifies every occurrence of one key into a single field
// type. Object occurrences are merged into one shared definition;
// nulls introduce optionality without fixing the element kind.
func (in *Inferrer) inferKey(key string, values []models.Value, path string, depth int) (models.FieldType, error) {
	var objVals []models.Value
	var others []models.Value
	sawNull := false
	for _, v := range values {
		switch v.Kind {
		case models.Object:
			objVals = append(objVals, v)
		case models.Null:
			sawNull = true
		default:
			others = append(others, v)
		}
	}

	var ft models.FieldType
	switch {
	case len(objVals) > 0 && len(others) > 0:
		return models.FieldType{}, errors.NewInferenceError(
			fmt.Sprintf("cannot unify object with %s at '%s'", others[0].Kind, path),
			errors.ErrTypeUnification,
		)
	case len(objVals) > 0:
		nested, err := in.inferObjectGroup(casing.TypeName(key), objVals, path, depth+1)
		if err != nil {
			return models.FieldType{}, err
		}
		ft = models.Reference(nested)
	case len(others) == 0:
		// Only nulls: the element kind is unknown (or text under the
		// eager policy) and the field is optional either way.
		ft = models.Optional(in.nullElem())
	default:
		var err error
		ft, err = in.inferValue(others[0], key, path, depth)
		if err != nil {
			return models.FieldType{}, err
		}
		for _, v := range others[1:] {
			next, err := in.inferValue(v, key, path, depth)
			if err != nil {
				return models.FieldType{}, err
			}
			ft, err = in.unify(ft, next, path)
			if err != nil {
				return models.FieldType{}, err
			}
		}
	}

	if sawNull {
		// Under the eager policy a null sighting is already typed as
		// text, so it must agree with every other sighting.
		if in.cfg.NullPolicy == config.NullPolicyText && (len(objVals) > 0 || len(others) > 0) {
			unified, err := in.unify(ft, models.Scalar(models.ScalarText), path)
			if err != nil {
				return models.FieldType{}, err
			}
			ft = unified
		}
		ft = models.Optional(ft)
	}
	return ft, nil
}

func (in *Inferrer) inferValue(v models.Value, key, path string, depth int) (models.FieldType, error) {
	if depth > in.cfg.RecursionLimit {
		return models.FieldType{}, errors.NewInferenceError(
			fmt.Sprintf("nesting depth exceeds limit %d at '%s'", in.cfg.RecursionLimit, path),
			errors.ErrRecursionLimit,
		)
	}

	switch v.Kind {
	case models.Null:
		return models.Optional(in.nullElem()), nil
	case models.Bool:
		return models.Scalar(models.ScalarBool), nil
	case models.Number:
		return models.Scalar(models.ScalarNumber), nil
	case models.String:
		return models.Scalar(models.ScalarText), nil
	case models.Object:
		nested, err := in.inferObjectGroup(casing.TypeName(key), []models.Value{v}, path, depth+1)
		if err != nil {
			return models.FieldType{}, err
		}
		return models.Reference(nested), nil
	case models.Array:
		return in.inferArray(v.Items, key, path, depth)
	default:
		return models.FieldType{}, errors.NewInferenceError(
			fmt.Sprintf("unexpected value kind at '%s'", path), nil,
		)
	}
}

// inferArray determines the element type of an array. Elements must
// all be objects, all arrays, or all scalars of one kind; anything
// mixed is a heterogeneous-array error. An empty array produces an
// unresolved collection, reported later unless unification against a
// sibling occurrence reveals the element type.
func (in *Inferrer) inferArray(items []models.Value, key, path string, depth int) (models.FieldType, error) {
	if len(items) == 0 {
		return models.Collection(models.Unknown()), nil
	}
	elemPath := path + "[]"

	var objVals, arrVals, scalarVals []models.Value
	sawNull := false
	for _, item := range items {
		switch item.Kind {
		case models.Object:
			objVals = append(objVals, item)
		case models.Array:
			arrVals = append(arrVals, item)
		case models.Null:
			sawNull = true
		default:
			scalarVals = append(scalarVals, item)
		}
	}

	categories := 0
	for _, n := range []int{len(objVals), len(arrVals), len(scalarVals)} {
		if n > 0 {
			categories++
		}
	}
	if categories > 1 {
		return models.FieldType{}, errors.NewInferenceError(
			fmt.Sprintf("array mixes scalar, object, or array elements at '%s'", elemPath),
			errors.ErrHeterogeneousArray,
		)
	}

	var elem models.FieldType
	switch {
	case len(objVals) > 0:
		name := casing.TypeName(in.singularize(key))
		nested, err := in.inferObjectGroup(name, objVals, elemPath, depth+1)
		if err != nil {
			return models.FieldType{}, err
		}
		elem = models.Reference(nested)
	case len(arrVals) > 0:
		for i, sub := range arrVals {
			t, err := in.inferArray(sub.Items, key, elemPath, depth+1)
			if err != nil {
				return models.FieldType{}, err
			}
			if i == 0 {
				elem = t
				continue
			}
			unified, err := in.unify(elem, t, elemPath)
			if err != nil {
				return models.FieldType{}, errors.NewInferenceError(
					fmt.Sprintf("array elements have incompatible types at '%s'", elemPath),
					errors.ErrHeterogeneousArray,
				)
			}
			elem = unified
		}
	case len(scalarVals) > 0:
		for i, sv := range scalarVals {
			t, err := in.inferValue(sv, key, elemPath, depth)
			if err != nil {
				return models.FieldType{}, err
			}
			if i == 0 {
				elem = t
				continue
			}
			if !elem.Equal(t) {
				return models.FieldType{}, errors.NewInferenceError(
					fmt.Sprintf("array mixes %s and %s elements at '%s'", elem, t, elemPath),
					errors.ErrHeterogeneousArray,
				)
			}
		}
	default:
		// Only nulls.
		elem = in.nullElem()
		sawNull = true
	}

	if sawNull {
		elem = models.Optional(elem)
	}
	return models.Collection(elem), nil
}

// unify merges two types observed for the same key. Unknown gives way
// to anything; optionality is contagious; everything else must match
// structurally, since the output has to stay statically typed.
func (in *Inferrer) unify(a, b models.FieldType, path string) (models.FieldType, error) {
	if a.Kind == models.UnknownType {
		return b, nil
	}
	if b.Kind == models.UnknownType {
		return a, nil
	}
	if a.Kind == models.OptionalType || b.Kind == models.OptionalType {
		inner, err := in.unify(deopt(a), deopt(b), path)
		if err != nil {
			return models.FieldType{}, err
		}
		return models.Optional(inner), nil
	}
	if a.Kind != b.Kind {
		return models.FieldType{}, unificationErr(a, b, path)
	}

	switch a.Kind {
	case models.ScalarType:
		if a.Scalar != b.Scalar {
			return models.FieldType{}, unificationErr(a, b, path)
		}
		return a, nil
	case models.CollectionType:
		inner, err := in.unify(*a.Elem, *b.Elem, path)
		if err != nil {
			return models.FieldType{}, err
		}
		return models.Collection(inner), nil
	case models.ReferenceType:
		if a.Ref != b.Ref {
			return models.FieldType{}, unificationErr(a, b, path)
		}
		return a, nil
	default:
		return models.FieldType{}, unificationErr(a, b, path)
	}
}

// resolveUnknown eliminates placeholder types once a field is final.
// An optional whose kind never surfaced defaults to text; a collection
// whose element type never surfaced has no valid static type at all.
func (in *Inferrer) resolveUnknown(t models.FieldType, path string) (models.FieldType, error) {
	switch t.Kind {
	case models.OptionalType:
		if t.Elem.Kind == models.UnknownType {
			return models.Optional(models.Scalar(models.ScalarText)), nil
		}
		inner, err := in.resolveUnknown(*t.Elem, path)
		if err != nil {
			return models.FieldType{}, err
		}
		return models.Optional(inner), nil
	case models.CollectionType:
		if t.Elem.Kind == models.UnknownType {
			return models.FieldType{}, errors.NewInferenceError(
				fmt.Sprintf("empty array at '%s' never resolves to an element type", path),
				errors.ErrAmbiguousEmptyArray,
			)
		}
		inner, err := in.resolveUnknown(*t.Elem, path)
		if err != nil {
			return models.FieldType{}, err
		}
		return models.Collection(inner), nil
	case models.UnknownType:
		return models.Scalar(models.ScalarText), nil
	default:
		return t, nil
	}
}

// register adds a finished definition to the registry. A same-name
// definition with the same shape is reused; a same-name definition
// with a different shape is a collision, never an overwrite.
func (in *Inferrer) register(def *models.TypeDef, path string) (string, error) {
	if existing, ok := in.byName[def.Name]; ok {
		if existing.Equivalent(def) {
			return existing.Name, nil
		}
		return "", errors.NewInferenceError(
			fmt.Sprintf("type name %s at '%s' is already taken by a differently shaped type", def.Name, displayPath(path)),
			errors.ErrNameCollision,
		)
	}
	in.byName[def.Name] = def
	in.defs = append(in.defs, def)
	return def.Name, nil
}

func (in *Inferrer) nullElem() models.FieldType {
	if in.cfg.NullPolicy == config.NullPolicyText {
		return models.Scalar(models.ScalarText)
	}
	return models.Unknown()
}

func deopt(t models.FieldType) models.FieldType {
	if t.Kind == models.OptionalType {
		return *t.Elem
	}
	return t
}

func unificationErr(a, b models.FieldType, path string) error {
	return errors.NewInferenceError(
		fmt.Sprintf("cannot unify %s with %s at '%s'", a, b, path),
		errors.ErrTypeUnification,
	)
}

func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func displayPath(path string) string {
	if path == "" {
		return "root"
	}
	return path
}
