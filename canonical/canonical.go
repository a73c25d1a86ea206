package canonical

import (
	"sort"

	"github.com/zero-day-ai/schemaid/document"
)

// Policy controls which schema variations Normalize removes. Each flag is
// the inverse of a tracking setting: variation that is not tracked must be
// normalized away so it cannot influence the hash.
type Policy struct {
	// SortRequired sorts `required` field lists, removing declaration-order
	// variation between otherwise identical schemas.
	SortRequired bool

	// DropDescriptions removes string-valued `description` entries.
	DropDescriptions bool

	// SortLists collapses every other order-insensitive list into a sorted
	// multiset of string-coerced elements.
	SortLists bool
}

// Normalize rewrites the document in place under the policy. The transform
// is total over well-formed document trees and keeps node kinds intact,
// except for the deliberate collapse of sorted lists into string elements.
//
// The walk descends through object members only; array elements are touched
// exclusively by the SortLists branch. Values stored under a `default` key
// are never altered at any depth: defaults are data, not shape, and their
// element order is always significant.
func Normalize(v *document.Value, p Policy) {
	if v == nil || v.Kind != document.KindObject {
		return
	}

	kept := v.Members[:0]
	for _, m := range v.Members {
		if p.DropDescriptions && m.Key == "description" && m.Value.Kind == document.KindString {
			continue
		}

		if m.Value.Kind == document.KindArray && len(m.Value.Elems) > 0 {
			switch {
			case p.SortRequired && m.Key == "required" && m.Value.Elems[0].Kind == document.KindString:
				// The first-element guard keeps unrelated lists that merely
				// share the `required` name out of this branch.
				sortElems(m.Value)
			case p.SortLists && m.Key != "default":
				// Elements are normalized first, then the list is replaced
				// by its sorted string coercions. The collapse is lossy on
				// purpose: order-insensitive comparison is all the hash
				// needs. SortRequired does not reapply inside this pass.
				nested := p
				nested.SortRequired = false
				for _, e := range m.Value.Elems {
					Normalize(e, nested)
				}
				collapseSorted(m.Value)
			}
		}

		if m.Key != "default" {
			Normalize(m.Value, p)
		}
		kept = append(kept, m)
	}
	v.Members = kept
}

// Stringify coerces a document value to its comparison string: bare text for
// strings, compact insertion-ordered JSON for everything else. Deterministic
// over any document tree.
func Stringify(v *document.Value) string {
	if v != nil && v.Kind == document.KindString {
		return v.Str
	}
	return string(document.Marshal(v, false))
}

func sortElems(v *document.Value) {
	sort.SliceStable(v.Elems, func(i, j int) bool {
		return Stringify(v.Elems[i]) < Stringify(v.Elems[j])
	})
}

func collapseSorted(v *document.Value) {
	coerced := make([]string, len(v.Elems))
	for i, e := range v.Elems {
		coerced[i] = Stringify(e)
	}
	sort.Strings(coerced)

	elems := make([]*document.Value, len(coerced))
	for i, s := range coerced {
		elems[i] = document.String(s)
	}
	v.Elems = elems
}
