package document

import (
	"sort"
	"unicode/utf8"
)

// Marshal encodes the value as compact JSON. When sortKeys is true, object
// keys are emitted in lexicographic order at every level, producing
// byte-identical output for logically identical documents regardless of
// construction order. When sortKeys is false, keys are emitted in insertion
// order.
//
// The encoding is total: number literals are emitted verbatim and every
// other kind has a representation, so Marshal never fails. Values that
// cannot be represented (non-finite floats, non-JSON Go values) are rejected
// earlier, at construction time.
func Marshal(v *Value, sortKeys bool) []byte {
	return appendValue(make([]byte, 0, 256), v, sortKeys)
}

func appendValue(dst []byte, v *Value, sortKeys bool) []byte {
	if v == nil {
		return append(dst, "null"...)
	}
	switch v.Kind {
	case KindNull:
		return append(dst, "null"...)
	case KindBool:
		if v.Bool {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case KindNumber:
		return append(dst, v.Num...)
	case KindString:
		return appendString(dst, v.Str)
	case KindArray:
		dst = append(dst, '[')
		for i, e := range v.Elems {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendValue(dst, e, sortKeys)
		}
		return append(dst, ']')
	case KindObject:
		members := v.Members
		if sortKeys {
			members = append([]Member(nil), v.Members...)
			sort.SliceStable(members, func(i, j int) bool {
				return members[i].Key < members[j].Key
			})
		}
		dst = append(dst, '{')
		for i, m := range members {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendString(dst, m.Key)
			dst = append(dst, ':')
			dst = appendValue(dst, m.Value, sortKeys)
		}
		return append(dst, '}')
	default:
		return append(dst, "null"...)
	}
}

const hexDigits = "0123456789abcdef"

// appendString writes s as a quoted JSON string, escaping the characters
// JSON requires and replacing invalid UTF-8 with U+FFFD.
func appendString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c >= 0x20 && c < utf8.RuneSelf {
			if c == '"' || c == '\\' {
				dst = append(dst, '\\', c)
			} else {
				dst = append(dst, c)
			}
			i++
			continue
		}
		if c < 0x20 {
			switch c {
			case '\n':
				dst = append(dst, '\\', 'n')
			case '\r':
				dst = append(dst, '\\', 'r')
			case '\t':
				dst = append(dst, '\\', 't')
			default:
				dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xF])
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			dst = append(dst, "�"...)
			i++
			continue
		}
		dst = append(dst, s[i:i+size]...)
		i += size
	}
	return append(dst, '"')
}
