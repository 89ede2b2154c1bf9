// Package canon produces the canonical text form of records that is fed into
// the block hash. The form must stay byte for byte stable since every block
// hash on a chain depends on it: records print as {'key': value, ...}, lists
// print as [item, item], strings are quoted and escaped, integers are base 10.
package canon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field is a single key/value pair inside a record.
type Field struct {
	Key   string
	Value any
}

// Record is an ordered mapping. Field order is preserved in both the text
// form and the JSON form, unlike a Go map.
type Record []Field

// Get returns the value stored for the specified key.
func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// String implements the fmt.Stringer interface and returns the canonical
// text form of the record.
func (r Record) String() string {
	var b strings.Builder
	r.write(&b)
	return b.String()
}

// MarshalJSON implements the json.Marshaler interface keeping field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal field %q: %w", f.Key, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func (r Record) write(b *strings.Builder) {
	b.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(Quote(f.Key))
		b.WriteString(": ")
		b.WriteString(Value(f.Value))
	}
	b.WriteByte('}')
}

// =============================================================================

// List returns the canonical text form of a sequence of records. An empty
// or nil sequence prints as [].
func List(records []Record) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, r := range records {
		if i > 0 {
			b.WriteString(", ")
		}
		r.write(&b)
	}
	b.WriteByte(']')

	return b.String()
}

// Value returns the canonical text form for a single value.
func Value(v any) string {
	switch v := v.(type) {
	case nil:
		return "None"
	case string:
		return Quote(v)
	case bool:
		if v {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case Record:
		return v.String()
	case []Record:
		return List(v)
	case fmt.Stringer:
		return Quote(v.String())
	}

	return Quote(fmt.Sprint(v))
}

// Quote returns s wrapped in single quotes. Double quotes are used instead
// when s contains a single quote but no double quote. Backslashes, the active
// quote character and control characters are escaped.
func Quote(s string) string {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteRune(quote)

	for _, r := range s {
		switch {
		case r == quote || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r < ' ' || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r < utf8.RuneSelf:
			b.WriteRune(r)
		case unicode.IsPrint(r):
			b.WriteRune(r)
		case r <= 0xff:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r <= 0xffff:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}

	b.WriteRune(quote)
	return b.String()
}
