package schemaid

import (
	"reflect"
	"strings"
)

// TypeFullname returns t's bare name joined with up to keepPathParts
// trailing segments of its package import path, dot-joined. The import path
// plays the role of a declaring location: tracking 2 parts means the
// fingerprint changes when either of the last two path segments is renamed.
//
// keepPathParts <= 0 yields the bare name; a value exceeding the actual
// path depth yields all available segments with no error. Unnamed types
// fall back to their type string.
func TypeFullname(t reflect.Type, keepPathParts int) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	name := t.Name()
	if name == "" {
		name = t.String()
	}
	if keepPathParts <= 0 {
		return name
	}

	pkg := t.PkgPath()
	if pkg == "" {
		return name
	}
	segs := strings.Split(pkg, "/")
	if keepPathParts < len(segs) {
		segs = segs[len(segs)-keepPathParts:]
	}
	return strings.Join(append(segs, name), ".")
}
