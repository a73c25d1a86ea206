package schemaid

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/schemaid/canonical"
	"github.com/zero-day-ai/schemaid/document"
	"github.com/zero-day-ai/schemaid/schema"
)

// Provider produces a schema document for a type in a requested mode and
// aliasing combination. The registry always requests (serialization,
// by_alias) and (serialization, by_name); it additionally requests
// (validation, by_alias) when validation mode tracking is enabled.
type Provider interface {
	Generate(t reflect.Type, mode schema.Mode, aliasing schema.Aliasing) (*document.Value, error)
}

// Registry memoizes identity hashes and reports per type identity.
//
// The cache key is the type's runtime identity (reflect.Type), never its
// name: two types with identical fields but distinct identities never share
// an entry, and a type embedding another never inherits the embedded type's
// entry even when that entry was computed first.
//
// Thread-safety: all methods are safe for concurrent use. First access to a
// type computes its hash at most once; failures leave the cache exactly as
// it was.
type Registry struct {
	id       string
	provider Provider
	defaults Settings
	logger   *slog.Logger
	tracer   trace.Tracer
	computes metric.Int64Counter

	// mu serializes computations and writes. Reads go through the sync.Maps
	// without locking.
	mu       sync.Mutex
	settings sync.Map // map[reflect.Type]Settings
	hashes   sync.Map // map[reflect.Type]string
	reports  sync.Map // map[reflect.Type]Report
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithProvider replaces the default reflection-based schema provider.
func WithProvider(p Provider) RegistryOption {
	return func(r *Registry) {
		if p != nil {
			r.provider = p
		}
	}
}

// WithLogger sets a custom logger. If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTracer sets an OpenTelemetry tracer. Each hash computation is
// recorded as a span carrying the type's qualified name.
func WithTracer(tracer trace.Tracer) RegistryOption {
	return func(r *Registry) {
		r.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter. Hash computations are counted
// under "schemaid.computations".
func WithMeter(meter metric.Meter) RegistryOption {
	return func(r *Registry) {
		counter, err := meter.Int64Counter("schemaid.computations",
			metric.WithDescription("Number of schema identity hash computations."))
		if err != nil {
			r.logger.Warn("failed to create computation counter", "error", err)
			return
		}
		r.computes = counter
	}
}

// WithDefaultSettings adjusts the settings types get when registered
// without options, or not registered at all.
func WithDefaultSettings(opts ...Option) RegistryOption {
	return func(r *Registry) {
		for _, opt := range opts {
			opt(&r.defaults)
		}
	}
}

// New creates a Registry backed by the reflection schema provider.
func New(opts ...RegistryOption) *Registry {
	r := &Registry{
		id:       uuid.NewString(),
		provider: schema.NewGenerator(),
		defaults: DefaultSettings(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register attaches per-type settings, merged option-by-option onto the
// registry defaults. Registering again replaces the previous settings; the
// cached hash, if any, is not evicted (use Rebuild for that).
func (r *Registry) Register(v any, opts ...Option) error {
	t, err := typeOf(v)
	if err != nil {
		return err
	}
	s := r.defaults
	for _, opt := range opts {
		opt(&s)
	}
	r.settings.Store(t, s)
	return nil
}

// GetOrCreate returns the identity hash for v's type, computing and caching
// it on first access. Repeated calls under unchanged configuration return
// the same string without recomputation.
func (r *Registry) GetOrCreate(v any) (string, error) {
	t, err := typeOf(v)
	if err != nil {
		return "", err
	}
	if h, ok := r.hashes.Load(t); ok {
		return h.(string), nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another goroutine may have computed while we waited for the lock.
	if h, ok := r.hashes.Load(t); ok {
		return h.(string), nil
	}
	return r.createLocked("Registry.GetOrCreate", t)
}

// Rebuild evicts the cached hash and report for exactly v's type, then
// recomputes. Entries for other types, including types embedding or
// embedded by this one, are untouched. Only useful after mutating a type's
// registered settings at runtime.
func (r *Registry) Rebuild(v any) (string, error) {
	t, err := typeOf(v)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.hashes.Delete(t)
	r.reports.Delete(t)
	return r.createLocked("Registry.Rebuild", t)
}

// Report returns identifying information about v's type: qualified name,
// process start instant, hash, and the tracking settings active at hash
// creation. Computed lazily and cached with the hash.
func (r *Registry) Report(v any) (Report, error) {
	t, err := typeOf(v)
	if err != nil {
		return Report{}, err
	}
	if rep, ok := r.reports.Load(t); ok {
		return rep.(Report), nil
	}
	if _, err := r.GetOrCreate(t); err != nil {
		return Report{}, err
	}
	rep, _ := r.reports.Load(t)
	return rep.(Report), nil
}

// HashInput returns the exact bytes passed to the hash function for v's
// type. Useful for debugging: the bytes decode as a JSON envelope of the
// form {"name": ..., "schemas": ..., "extra_data": ...}. The result is
// recomputed on every call and never cached.
func (r *Registry) HashInput(v any) ([]byte, error) {
	t, err := typeOf(v)
	if err != nil {
		return nil, err
	}
	return r.envelope("Registry.HashInput", t, r.settingsFor(t))
}

// Fullname returns the qualified name of v's type under its settings.
func (r *Registry) Fullname(v any) (string, error) {
	t, err := typeOf(v)
	if err != nil {
		return "", err
	}
	return r.settingsFor(t).Fullname(t), nil
}

// createLocked computes and stores hash and report for t. Caller holds mu.
// On error nothing is stored: the cache stays exactly as it was.
func (r *Registry) createLocked(op string, t reflect.Type) (string, error) {
	s := r.settingsFor(t)
	fullname := s.Fullname(t)

	ctx := context.Background()
	if r.tracer != nil {
		var span trace.Span
		ctx, span = r.tracer.Start(ctx, "schemaid.compute",
			trace.WithAttributes(
				attribute.String("schemaid.registry", r.id),
				attribute.String("schemaid.type", fullname)))
		defer span.End()
	}

	data, err := r.envelope(op, t, s)
	if err != nil {
		return "", err
	}
	hash := ComputeHash(data, s.HashFunction, s.HashLimitLength)

	r.hashes.Store(t, hash)
	r.reports.Store(t, Report{
		Fullname:     fullname,
		Date:         processStart,
		Hash:         hash,
		HashSettings: s.hashSettings(),
	})

	if r.computes != nil {
		r.computes.Add(ctx, 1)
	}
	r.logger.Debug("computed schema identity hash",
		"registry", r.id,
		"type", fullname,
		"hash", hash)
	return hash, nil
}

// envelope validates the settings and builds the serialized hash input:
// the qualified name, the canonicalized schema documents, and any tracked
// extra data.
func (r *Registry) envelope(op string, t reflect.Type, s Settings) ([]byte, error) {
	fullname := s.Fullname(t)

	if err := s.Validate(); err != nil {
		return nil, NewConfigurationError(op, fullname, err)
	}

	policy := s.Policy()
	generate := func(mode schema.Mode, aliasing schema.Aliasing) (*document.Value, error) {
		if s.ModeOverride != "" {
			mode = s.ModeOverride
		}
		doc, err := r.provider.Generate(t, mode, aliasing)
		if err != nil {
			return nil, NewConfigurationError(op, fullname, err)
		}
		canonical.Normalize(doc, policy)
		return doc, nil
	}

	serByAlias, err := generate(schema.ModeSerialization, schema.ByAlias)
	if err != nil {
		return nil, err
	}
	serByName, err := generate(schema.ModeSerialization, schema.ByName)
	if err != nil {
		return nil, err
	}
	schemas := document.Object().
		Set("ser_by_alias", serByAlias).
		Set("ser_by_name", serByName)
	if s.TrackValidationMode {
		valByAlias, err := generate(schema.ModeValidation, schema.ByAlias)
		if err != nil {
			return nil, err
		}
		schemas.Set("val_by_alias", valByAlias)
	}

	extra, err := document.FromAny(s.TrackedExtraData)
	if err != nil {
		return nil, NewSerializationError(op, fullname, fmt.Errorf("%w: %w", ErrSerialization, err))
	}

	env := document.Object().
		Set("name", document.String(fullname)).
		Set("schemas", schemas).
		Set("extra_data", extra)
	return document.Marshal(env, !s.TrackFieldOrder), nil
}

func (r *Registry) settingsFor(t reflect.Type) Settings {
	if s, ok := r.settings.Load(t); ok {
		return s.(Settings)
	}
	return r.defaults
}

// typeOf resolves the cache key: the pointer-dereferenced runtime type of
// v. A reflect.Type is accepted directly.
func typeOf(v any) (reflect.Type, error) {
	var t reflect.Type
	switch x := v.(type) {
	case nil:
		return nil, fmt.Errorf("schemaid: %w", ErrNilType)
	case reflect.Type:
		t = x
	default:
		t = reflect.TypeOf(v)
	}
	if t == nil {
		return nil, fmt.Errorf("schemaid: %w", ErrNilType)
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t, nil
}
