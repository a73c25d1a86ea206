package schemaid

import (
	"fmt"
	"reflect"

	"github.com/zero-day-ai/schemaid/canonical"
	"github.com/zero-day-ai/schemaid/schema"
)

// Settings holds the per-type configuration that shapes a type's identity
// hash. Settings are resolved once, when the type is registered: options are
// merged field-by-field onto the registry defaults and the result is
// attached to the type identity. Hash-time lookup is a single map read,
// never a walk of any type hierarchy.
//
// Never mutate a type's settings after its hash has been computed; the hash
// is cached and will not reflect the change until Rebuild.
type Settings struct {
	// TrackDescriptions includes documentation strings (description struct
	// tags) in the hash. Disable to track only runtime shape; enable to
	// also track documentation changes.
	TrackDescriptions bool

	// TrackFieldOrder makes field declaration order affect the hash.
	TrackFieldOrder bool

	// TrackTypeOrder makes ordering within enums, anyOf variants, and any
	// other lists found in type annotations affect the hash.
	TrackTypeOrder bool

	// TrackedExtraData is arbitrary JSON-serializable data folded into the
	// hash: configs, prompts, or other static data known at startup.
	TrackedExtraData any

	// HashLimitLength is the number of characters kept from the start of
	// the digest. Unbounded keeps the full digest; 12 offers plenty of
	// collision resistance.
	HashLimitLength int

	// TrackedFilepathParts is how many trailing package path segments the
	// qualified type name carries. With 2 parts, renaming either of the
	// last two segments changes the hash.
	TrackedFilepathParts int

	// HashFunction computes the digest. Defaults to MD5Hex.
	HashFunction HashFunc

	// TrackValidationMode includes the validation-mode schema document in
	// addition to the always-tracked serialization-mode documents. Disable
	// only if hash generation shows up in profiles.
	TrackValidationMode bool

	// ModeOverride pins the schema provider to a single mode regardless of
	// the mode requested. Incompatible with TrackValidationMode.
	ModeOverride schema.Mode

	// fullname, when set, replaces the resolved qualified name. Useful when
	// two differently-named types must hash as the same logical schema.
	fullname string
}

// DefaultSettings returns the settings a type gets when no options are
// applied.
func DefaultSettings() Settings {
	return Settings{
		HashLimitLength:      12,
		TrackedFilepathParts: 2,
		HashFunction:         MD5Hex,
		TrackValidationMode:  true,
	}
}

// Option adjusts one setting.
type Option func(*Settings)

// WithTrackDescriptions controls whether documentation strings are hashed.
func WithTrackDescriptions(track bool) Option {
	return func(s *Settings) {
		s.TrackDescriptions = track
	}
}

// WithTrackFieldOrder controls whether field declaration order is hashed.
func WithTrackFieldOrder(track bool) Option {
	return func(s *Settings) {
		s.TrackFieldOrder = track
	}
}

// WithTrackTypeOrder controls whether ordering inside type annotations
// (enums, anyOf variants, nested lists) is hashed.
func WithTrackTypeOrder(track bool) Option {
	return func(s *Settings) {
		s.TrackTypeOrder = track
	}
}

// WithExtraData folds arbitrary JSON-serializable data into the hash.
func WithExtraData(data any) Option {
	return func(s *Settings) {
		s.TrackedExtraData = data
	}
}

// WithHashLimit truncates the digest to n characters. Pass Unbounded to
// keep the full digest.
func WithHashLimit(n int) Option {
	return func(s *Settings) {
		s.HashLimitLength = n
	}
}

// WithFilepathParts sets how many trailing package path segments the
// qualified name carries.
func WithFilepathParts(n int) Option {
	return func(s *Settings) {
		s.TrackedFilepathParts = n
	}
}

// WithHashFunction replaces the digest function.
func WithHashFunction(fn HashFunc) Option {
	return func(s *Settings) {
		s.HashFunction = fn
	}
}

// WithTrackValidationMode controls whether the validation-mode schema is
// included alongside the serialization-mode schemas.
func WithTrackValidationMode(track bool) Option {
	return func(s *Settings) {
		s.TrackValidationMode = track
	}
}

// WithModeOverride pins the schema provider to a single mode. Setting an
// override while validation mode tracking is enabled fails validation at
// hash time.
func WithModeOverride(mode schema.Mode) Option {
	return func(s *Settings) {
		s.ModeOverride = mode
	}
}

// WithFullname overrides the resolved qualified name for the type.
func WithFullname(name string) Option {
	return func(s *Settings) {
		s.fullname = name
	}
}

// Validate rejects incompatible settings. It runs before any schema
// generation or hashing work, so a failing configuration caches nothing.
func (s Settings) Validate() error {
	if s.ModeOverride != "" && s.TrackValidationMode {
		return fmt.Errorf("mode override %q is set: %w", s.ModeOverride, ErrConfigConflict)
	}
	return nil
}

// Policy derives the canonicalization policy: whatever is not tracked must
// be normalized away.
func (s Settings) Policy() canonical.Policy {
	return canonical.Policy{
		SortRequired:     !s.TrackFieldOrder,
		DropDescriptions: !s.TrackDescriptions,
		SortLists:        !s.TrackTypeOrder,
	}
}

// Fullname resolves the qualified name for t under these settings.
func (s Settings) Fullname(t reflect.Type) string {
	if s.fullname != "" {
		return s.fullname
	}
	return TypeFullname(t, s.TrackedFilepathParts)
}

func (s Settings) hashSettings() HashSettings {
	return HashSettings{
		TrackDescriptions:    s.TrackDescriptions,
		TrackFieldOrder:      s.TrackFieldOrder,
		TrackTypeOrder:       s.TrackTypeOrder,
		TrackedFilepathParts: s.TrackedFilepathParts,
		TrackValidationMode:  s.TrackValidationMode,
	}
}
