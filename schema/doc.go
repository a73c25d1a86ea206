// Package schema generates JSON Schema documents from Go types using
// reflection. It is the default schema provider for identity hashing.
//
// # Modes
//
// A type's schema differs depending on which direction data flows.
// ModeSerialization describes the emitted shape: text-marshaling types
// render as strings and every serialized field is present. ModeValidation
// describes the accepted input shape: text-unmarshaling types additionally
// accept strings, and fields with declared defaults may be omitted.
//
// # Aliasing
//
// ByAlias names fields by their json tag; ByName uses the Go field name.
// Generating both captures renames on either side.
//
// # Example
//
//	type User struct {
//		Name  string `json:"name" description:"Display name"`
//		Email string `json:"email,omitempty"`
//		Plan  string `json:"plan" enum:"free,pro" default:"free"`
//	}
//
//	gen := schema.NewGenerator()
//	doc, err := gen.Generate(reflect.TypeOf(User{}), schema.ModeSerialization, schema.ByAlias)
//
// Documents come out as document.Value trees with properties in field
// declaration order.
package schema
