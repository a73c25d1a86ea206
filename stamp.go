package schemaid

import "reflect"

// Stamped can be embedded in a struct so each instance carries its type's
// schema hash alongside the data, e.g. when persisting densely nested
// records:
//
//	type Record struct {
//		schemaid.Stamped
//		Payload Payload `json:"payload"`
//	}
//
//	rec := Record{Payload: p}
//	if _, err := registry.Stamp(&rec); err != nil { ... }
type Stamped struct {
	// SchemaHash is the type's identity hash. Filled by Stamp when empty.
	SchemaHash string `json:"schema_hash,omitempty"`
}

var stampedType = reflect.TypeOf(Stamped{})

// Stamp computes (or fetches) the identity hash for v's type and, when v is
// a pointer to a struct embedding Stamped, writes the hash into the
// embedded SchemaHash field unless it is already set. The hash is returned
// either way.
func (r *Registry) Stamp(v any) (string, error) {
	hash, err := r.GetOrCreate(v)
	if err != nil {
		return "", err
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return hash, nil
	}
	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		return hash, nil
	}
	field := elem.FieldByName("Stamped")
	if !field.IsValid() || field.Type() != stampedType || !field.CanAddr() {
		return hash, nil
	}
	stamped := field.Addr().Interface().(*Stamped)
	if stamped.SchemaHash == "" {
		stamped.SchemaHash = hash
	}
	return hash, nil
}
