// Package schemaid produces short, deterministic fingerprints for the
// structural schema of Go types.
//
// The identity hash captures a type's field shape, validation rules, and
// optionally its documentation, so systems that persist or transmit densely
// nested records can later answer "was this record produced by a schema
// identical to the one I have now?" with a cheap string comparison instead
// of retaining and diffing full schemas.
//
// # Basic Usage
//
// Hash a type through the default registry:
//
//	type Event struct {
//		ID      string    `json:"id"`
//		At      time.Time `json:"at"`
//		Payload []byte    `json:"payload,omitempty"`
//	}
//
//	hash, err := schemaid.GetOrCreate(Event{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	// hash is a short stable string like "3f2c9a1d0b4e"
//
// The hash is computed once per type and cached by type identity for the
// process lifetime. Nested types are captured recursively, so hashing a
// root type covers its full schema.
//
// # Configuration
//
// Tracking behavior is configured per type at registration time:
//
//	err := schemaid.Register(Event{},
//		schemaid.WithTrackDescriptions(true),
//		schemaid.WithTrackFieldOrder(true),
//		schemaid.WithHashLimit(schemaid.Unbounded),
//	)
//
// By default the hash ignores documentation, field order, and ordering
// inside type annotations; it tracks the validation-mode schema, keeps 12
// digest characters, and qualifies the type name with the last two package
// path segments.
//
// # Registries
//
// Independent registries can carry their own defaults, provider, logger,
// and telemetry:
//
//	reg := schemaid.New(
//		schemaid.WithLogger(logger),
//		schemaid.WithTracer(tracer),
//		schemaid.WithDefaultSettings(schemaid.WithTrackDescriptions(true)),
//	)
//	hash, err := reg.GetOrCreate(Event{})
//
// # Reports and Debugging
//
// Report returns a snapshot of the name, hash, and settings a hash was
// created under; HashInput returns the exact bytes that were hashed,
// decodable as a JSON envelope:
//
//	rep, _ := schemaid.ReportFor(Event{})
//	raw, _ := schemaid.HashInput(Event{})
//
// Rebuild evicts and recomputes exactly one type's cache entries, which is
// only needed after mutating a type's registered settings at runtime.
package schemaid
