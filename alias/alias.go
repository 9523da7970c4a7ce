// Package alias decodes JSON into generated structs while honoring the
// alias struct tag: when a field's json key is absent from the input,
// its alias key (the original wire name) is accepted instead. This
// keeps decoding working for both the recased keys a casing policy
// produces and the untouched keys of the original data.
package alias

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strings"

	json "github.com/goccy/go-json"
)

// Unmarshal decodes data into v like json.Unmarshal, additionally
// accepting each struct field's alias key when its json key is not
// present. v must be a non-nil pointer.
func Unmarshal(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New("alias: target must be a non-nil pointer")
	}
	return decodeValue(data, rv.Elem())
}

func decodeValue(data []byte, rv reflect.Value) error {
	if isNullToken(data) {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}

	switch rv.Kind() {
	case reflect.Pointer:
		elem := reflect.New(rv.Type().Elem())
		if err := decodeValue(data, elem.Elem()); err != nil {
			return err
		}
		rv.Set(elem)
		return nil
	case reflect.Struct:
		return decodeStruct(data, rv)
	case reflect.Slice:
		return decodeSlice(data, rv)
	default:
		return json.Unmarshal(data, rv.Addr().Interface())
	}
}

func decodeStruct(data []byte, rv reflect.Value) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		key := jsonKey(field)
		if key == "-" {
			continue
		}

		payload, ok := raw[key]
		if !ok {
			if a := field.Tag.Get("alias"); a != "" {
				payload, ok = raw[a]
			}
		}
		if !ok {
			continue
		}
		if err := decodeValue(payload, rv.Field(i)); err != nil {
			return fmt.Errorf("alias: field %s: %w", field.Name, err)
		}
	}
	return nil
}

func decodeSlice(data []byte, rv reflect.Value) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := reflect.MakeSlice(rv.Type(), len(raw), len(raw))
	for i, item := range raw {
		if err := decodeValue(item, out.Index(i)); err != nil {
			return fmt.Errorf("alias: index %d: %w", i, err)
		}
	}
	rv.Set(out)
	return nil
}

func jsonKey(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name
	}
	return name
}

func isNullToken(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
