package schemaid

// defaultRegistry backs the package-level convenience functions. Most
// programs need exactly one registry.
var defaultRegistry = New()

// Default returns the package-level registry.
func Default() *Registry {
	return defaultRegistry
}

// Register attaches per-type settings on the default registry.
func Register(v any, opts ...Option) error {
	return defaultRegistry.Register(v, opts...)
}

// GetOrCreate returns the identity hash for v's type from the default
// registry.
func GetOrCreate(v any) (string, error) {
	return defaultRegistry.GetOrCreate(v)
}

// Rebuild evicts and recomputes v's type on the default registry.
func Rebuild(v any) (string, error) {
	return defaultRegistry.Rebuild(v)
}

// ReportFor returns the identity report for v's type from the default
// registry.
func ReportFor(v any) (Report, error) {
	return defaultRegistry.Report(v)
}

// HashInput returns the raw hash input bytes for v's type from the default
// registry.
func HashInput(v any) ([]byte, error) {
	return defaultRegistry.HashInput(v)
}

// Stamp fills the embedded Stamped field of v, if any, using the default
// registry.
func Stamp(v any) (string, error) {
	return defaultRegistry.Stamp(v)
}
