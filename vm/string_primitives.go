package vm

import (
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// String Primitives
// ---------------------------------------------------------------------------
//
// String carriers hold their text in literal form: the escape sequences
// \' \n and \\ stay undecoded until print. Equality and concatenation work
// on the stored form.

func (ct *ClassTable) registerStringPrimitives() {
	c := ct.classes[ClassString]

	c.addNative0("print", func(in *Interp, recv *Object) (*Object, error) {
		if err := in.write(decodeEscapes(recv.Str())); err != nil {
			return nil, err
		}
		return recv, nil
	})

	c.addNative0("asString", func(_ *Interp, recv *Object) (*Object, error) {
		return recv, nil
	})

	// asInteger parses the text as a decimal integer, tolerating
	// surrounding whitespace and a sign. Unparsable text answers nil.
	c.addNative0("asInteger", func(_ *Interp, recv *Object) (*Object, error) {
		n, err := strconv.ParseInt(strings.TrimSpace(recv.Str()), 10, 64)
		if err != nil {
			return Nil, nil
		}
		return NewInteger(n), nil
	})

	// concatenateWith: answers nil for a non-string argument instead of
	// failing.
	c.addNative1("concatenateWith:", func(_ *Interp, recv, arg *Object) (*Object, error) {
		if arg.Kind() != KindString {
			return Nil, nil
		}
		return NewString(recv.Str() + arg.Str()), nil
	})

	// startsWith:endsBefore: takes 1-based code point indices and answers
	// the substring [s, e). Non-integer or non-positive indices answer
	// nil; an end at or before the start answers the empty string; an end
	// past the text is clamped.
	c.addNative2("startsWith:endsBefore:", func(_ *Interp, recv, from, before *Object) (*Object, error) {
		if from.Kind() != KindInteger || before.Kind() != KindInteger {
			return Nil, nil
		}
		s, e := from.Int(), before.Int()
		if s <= 0 || e <= 0 {
			return Nil, nil
		}
		runes := []rune(recv.Str())
		start, end := s-1, e-1
		if end <= start || start >= int64(len(runes)) {
			return NewString(""), nil
		}
		if end > int64(len(runes)) {
			end = int64(len(runes))
		}
		return NewString(string(runes[start:end])), nil
	})

	c.addNative1("equalTo:", func(_ *Interp, recv, arg *Object) (*Object, error) {
		if arg.Kind() != KindString {
			return False, nil
		}
		return FromBool(recv.Str() == arg.Str()), nil
	})

	c.addNative0("isString", func(_ *Interp, recv *Object) (*Object, error) {
		return True, nil
	})
}

// decodeEscapes rewrites the literal escape sequences \' \n and \\ into
// their characters. A backslash starting any other sequence, or ending the
// text, passes through unchanged.
func decodeEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' || i+1 == len(s) {
			b.WriteByte(ch)
			continue
		}
		switch s[i+1] {
		case 'n':
			b.WriteByte('\n')
			i++
		case '\'':
			b.WriteByte('\'')
			i++
		case '\\':
			b.WriteByte('\\')
			i++
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}
