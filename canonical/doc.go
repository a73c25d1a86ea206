// Package canonical normalizes schema documents before hashing, removing
// the variation the configured tracking settings declare irrelevant:
// documentation strings, required-list order, and element order inside type
// annotations. Values under a `default` key are left untouched at any depth.
package canonical
