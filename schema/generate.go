package schema

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/zero-day-ai/schemaid/document"
)

// Mode selects which side of a type's lifecycle the schema describes.
type Mode string

const (
	// ModeSerialization describes the shape a value takes when emitted.
	ModeSerialization Mode = "serialization"

	// ModeValidation describes the shape accepted as input.
	ModeValidation Mode = "validation"
)

// Aliasing selects which name identifies a field in the schema.
type Aliasing string

const (
	// ByAlias uses the field's json tag name.
	ByAlias Aliasing = "by_alias"

	// ByName uses the Go field name.
	ByName Aliasing = "by_name"
)

// Generator produces JSON Schema documents from Go types using reflection.
// It is the default schema provider for identity hashing.
//
// Supported struct tags:
//   - `json:"name"` — field alias; "-" skips the field; ",omitempty" marks
//     the field optional in every mode
//   - `description:"..."` — documentation string for the field
//   - `default:"..."` — default value, parsed as JSON with a plain-string
//     fallback; fields with defaults are optional input in validation mode
//   - `enum:"a,b,c"` — enumerated values, each parsed as JSON with a
//     plain-string fallback
//   - `oneof:"integer,null,string"` — replaces the field schema with an
//     anyOf over the named schema types
//
// Generation is deterministic: object member order mirrors field
// declaration order, and every schema key is inserted in a fixed sequence.
type Generator struct{}

// NewGenerator returns a Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate produces the schema document for t in the given mode and
// aliasing. It fails only for a nil type or unrecognized mode/aliasing;
// unsupported field types degrade to the empty (accept-anything) schema the
// same way encoding/json degrades unknown values.
func (g *Generator) Generate(t reflect.Type, mode Mode, aliasing Aliasing) (*document.Value, error) {
	if t == nil {
		return nil, fmt.Errorf("schema: nil type")
	}
	switch mode {
	case ModeSerialization, ModeValidation:
	default:
		return nil, fmt.Errorf("schema: unknown mode %q", mode)
	}
	switch aliasing {
	case ByAlias, ByName:
	default:
		return nil, fmt.Errorf("schema: unknown aliasing %q", aliasing)
	}

	w := &walker{mode: mode, aliasing: aliasing, seen: make(map[reflect.Type]bool)}
	return w.typeSchema(t), nil
}

type walker struct {
	mode     Mode
	aliasing Aliasing
	seen     map[reflect.Type]bool
}

var (
	timeType            = reflect.TypeOf(time.Time{})
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

func (w *walker) typeSchema(t reflect.Type) *document.Value {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == timeType {
		return document.Object().
			Set("type", document.String("string")).
			Set("format", document.String("date-time"))
	}

	// Text-marshaling types serialize as strings; text-unmarshaling types
	// additionally accept strings as input. This is where the two modes
	// describe genuinely different shapes.
	switch w.mode {
	case ModeSerialization:
		if implementsEither(t, textMarshalerType) {
			return typeOnly("string")
		}
	case ModeValidation:
		if implementsEither(t, textUnmarshalerType) {
			base := w.kindSchema(t)
			if bt, ok := base.Member("type"); ok && bt.Str == "string" {
				return base
			}
			return document.Object().
				Set("anyOf", document.Array(base, typeOnly("string")))
		}
	}

	return w.kindSchema(t)
}

func (w *walker) kindSchema(t reflect.Type) *document.Value {
	switch t.Kind() {
	case reflect.Struct:
		return w.structSchema(t)
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			// Mirrors encoding/json, which emits []byte as a base64 string.
			return document.Object().
				Set("type", document.String("string")).
				Set("format", document.String("byte"))
		}
		return document.Object().
			Set("type", document.String("array")).
			Set("items", w.typeSchema(t.Elem()))
	case reflect.Map:
		return document.Object().
			Set("type", document.String("object")).
			Set("additionalProperties", w.typeSchema(t.Elem()))
	case reflect.String:
		return typeOnly("string")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return typeOnly("integer")
	case reflect.Float32, reflect.Float64:
		return typeOnly("number")
	case reflect.Bool:
		return typeOnly("boolean")
	default:
		// interface{} and anything unrepresentable: accept any.
		return document.Object()
	}
}

func (w *walker) structSchema(t reflect.Type) *document.Value {
	if w.seen[t] {
		return document.Object().Set("$ref", document.String("#/"+t.Name()))
	}
	w.seen[t] = true
	defer delete(w.seen, t)

	props := document.Object()
	var required []string
	w.structFields(t, props, &required)

	obj := document.Object().
		Set("type", document.String("object")).
		Set("properties", props)
	if len(required) > 0 {
		req := document.Array()
		for _, name := range required {
			req.Append(document.String(name))
		}
		obj.Set("required", req)
	}
	return obj
}

func (w *walker) structFields(t reflect.Type, props *document.Value, required *[]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)

		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		alias, omitempty := parseJSONTag(tag)

		// Untagged embedded structs flatten into the parent, matching
		// encoding/json. This must precede the exported check: an embedded
		// struct whose type is unexported still promotes its exported fields.
		if f.Anonymous && alias == "" {
			ft := f.Type
			for ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				w.structFields(ft, props, required)
				continue
			}
		}

		if !f.IsExported() {
			continue
		}

		if alias == "" {
			alias = f.Name
		}
		key := alias
		if w.aliasing == ByName {
			key = f.Name
		}

		var fs *document.Value
		if oneof := f.Tag.Get("oneof"); oneof != "" {
			fs = anyOfSchema(oneof)
		} else {
			fs = w.typeSchema(f.Type)
		}
		if desc := f.Tag.Get("description"); desc != "" {
			fs.Set("description", document.String(desc))
		}
		if enum := f.Tag.Get("enum"); enum != "" {
			fs.Set("enum", literalList(enum))
		}
		def, hasDefault := f.Tag.Lookup("default")
		if hasDefault {
			fs.Set("default", parseLiteral(def))
		}

		props.Set(key, fs)

		switch {
		case omitempty:
			// Optional in every mode.
		case w.mode == ModeValidation && hasDefault:
			// Defaulted fields may be omitted on input.
		default:
			*required = append(*required, key)
		}
	}
}

func typeOnly(name string) *document.Value {
	return document.Object().Set("type", document.String(name))
}

func anyOfSchema(spec string) *document.Value {
	variants := document.Array()
	for _, name := range strings.Split(spec, ",") {
		variants.Append(typeOnly(strings.TrimSpace(name)))
	}
	return document.Object().Set("anyOf", variants)
}

func literalList(spec string) *document.Value {
	list := document.Array()
	for _, item := range strings.Split(spec, ",") {
		list.Append(parseLiteral(strings.TrimSpace(item)))
	}
	return list
}

// parseLiteral reads a tag value as a JSON literal, falling back to a plain
// string so `default:"red"` works without inner quoting.
func parseLiteral(s string) *document.Value {
	if v, err := document.Parse([]byte(s)); err == nil {
		return v
	}
	return document.String(s)
}

func parseJSONTag(tag string) (name string, omitempty bool) {
	if tag == "" {
		return "", false
	}
	parts := strings.Split(tag, ",")
	for _, p := range parts[1:] {
		if p == "omitempty" {
			omitempty = true
		}
	}
	return parts[0], omitempty
}

func implementsEither(t reflect.Type, iface reflect.Type) bool {
	return t.Implements(iface) || reflect.PointerTo(t).Implements(iface)
}
