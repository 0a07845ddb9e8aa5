// Package record implements the Field-Spec DSL and Record Codec (spec.md
// §4.3): a declarative list of (name, byte-offset, byte-length, encoding)
// rows applied to a fixed-length record buffer, producing either a simple
// shape (blank and malformed numeric/date fields both collapse to "no
// value") or a rich shape (blank is a distinct Missing case from a
// malformed value), plus the record-kind dispatcher and code tables of
// spec.md §4.3 and the per-kind parsers of §6.2.
package record

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cariandrum22/Xanthos-sub000/pkg/textcodec"
)

// Encoding names one of the field encodings spec.md §4.3 defines.
type Encoding int

const (
	// Text decodes Shift-JIS, normalises width, then trims. An
	// empty-after-trim result is Missing.
	Text Encoding = iota
	// TextRaw decodes Shift-JIS and trims, without width normalisation. An
	// empty-after-trim result is Missing.
	TextRaw
	// Integer decodes, trims, and parses a signed base-10 integer. A
	// blank field is Missing.
	Integer
	// Decimal parses an integer then divides by 10^Precision. A blank
	// field is Missing.
	Decimal
	// DateField parses under invariant culture with the given layout. A
	// blank or all-zeros field is Missing.
	DateField
	// Flag maps "1" to true, anything else to false.
	Flag
	// Code keeps the raw string for later code-table lookup. An
	// empty-after-trim result is Missing.
	Code
	// Bytes keeps the raw byte slice untouched.
	Bytes
)

// FieldSpec declares one field of a fixed-length record: where it lives in
// the buffer and how its bytes are interpreted.
type FieldSpec struct {
	Name      string
	Offset    int
	Length    int
	Encoding  Encoding
	Precision int    // meaningful for Decimal
	Layout    string // meaningful for DateField, e.g. "20060102" (yyyyMMdd)
}

// Missing is a sentinel meaning "this field was present but blank" — the
// rich shape's way of distinguishing an unreported value from a decoded
// zero (spec.md §4.3, §6.3). A numeric/date FieldValue with Missing set
// carries no meaningful Int/Decimal/Time value.
type Missing struct{}

// FieldValue is the rich-shape result of decoding one field: it can hold
// text, an integer, a fixed-point decimal (as raw integer units plus
// precision), a date, a bool, raw bytes, or be Missing.
type FieldValue struct {
	Text      string
	Int       int64
	Decimal   int64 // raw integer units; divide by 10^Precision for the value
	Precision int
	Time      time.Time
	Flag      bool
	Raw       []byte
	IsMissing bool
}

// DecimalValue returns the field's decimal value as a float64.
func (v FieldValue) DecimalValue() float64 {
	if v.Precision == 0 {
		return float64(v.Decimal)
	}
	scale := 1.0
	for i := 0; i < v.Precision; i++ {
		scale *= 10
	}
	return float64(v.Decimal) / scale
}

// RecordTooShort is returned when a field spec's byte range exceeds the
// buffer's length.
type RecordTooShort struct {
	Field    string
	Expected int
	Actual   int
}

func (e *RecordTooShort) Error() string {
	return fmt.Sprintf("field %q needs bytes up to offset %d but buffer is only %d bytes", e.Field, e.Expected, e.Actual)
}

// InvalidFieldValue is returned when a non-blank field fails to parse
// under its declared encoding (e.g. a numeric field containing letters).
type InvalidFieldValue struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidFieldValue) Error() string {
	return fmt.Sprintf("field %q value %q is invalid: %s", e.Field, e.Value, e.Reason)
}

// MissingRequiredField is returned when a record-specific Build function
// finds that one of its kind's required fields decoded to Missing or was
// never supplied.
type MissingRequiredField struct {
	Kind  string
	Field string
}

func (e *MissingRequiredField) Error() string {
	return fmt.Sprintf("%s record missing required field %q", e.Kind, e.Field)
}

// ParseFieldsRich applies specs to buf and returns the rich shape: a map
// from field name to FieldValue, in which blank numeric/date fields are
// distinguishable (IsMissing) from malformed ones (an error).
func ParseFieldsRich(buf []byte, specs []FieldSpec) (map[string]FieldValue, error) {
	out := make(map[string]FieldValue, len(specs))
	for _, spec := range specs {
		end := spec.Offset + spec.Length
		if end > len(buf) {
			return nil, &RecordTooShort{Field: spec.Name, Expected: end, Actual: len(buf)}
		}
		raw := buf[spec.Offset:end]
		val, err := decodeField(spec, raw)
		if err != nil {
			return nil, err
		}
		out[spec.Name] = val
	}
	return out, nil
}

// SimpleValue is the simple shape for one field: Ok is false when the
// field is blank or malformed, without distinguishing the two (spec.md
// §4.3 "two value shapes").
type SimpleValue struct {
	Text    string
	Int     int64
	Decimal float64
	Time    time.Time
	Flag    bool
	Raw     []byte
	Ok      bool
}

// ParseFieldsSimple applies specs to buf and returns the simple shape, in
// which a blank field and a malformed field are both reported as "no
// value" (Ok == false) rather than distinct errors — suitable for callers
// that don't need to tell "not reported" apart from "couldn't parse".
func ParseFieldsSimple(buf []byte, specs []FieldSpec) (map[string]SimpleValue, error) {
	out := make(map[string]SimpleValue, len(specs))
	for _, spec := range specs {
		end := spec.Offset + spec.Length
		if end > len(buf) {
			return nil, &RecordTooShort{Field: spec.Name, Expected: end, Actual: len(buf)}
		}
		raw := buf[spec.Offset:end]
		val, err := decodeField(spec, raw)
		if err != nil {
			// Malformed: the simple shape reports no value instead of
			// failing the whole record (only RecordTooShort is fatal
			// here; callers who need to hear about malformed-vs-missing
			// should use ParseFieldsRich instead).
			out[spec.Name] = SimpleValue{Ok: false}
			continue
		}
		out[spec.Name] = simplify(val)
	}
	return out, nil
}

func simplify(v FieldValue) SimpleValue {
	return SimpleValue{
		Text:    v.Text,
		Int:     v.Int,
		Decimal: v.DecimalValue(),
		Time:    v.Time,
		Flag:    v.Flag,
		Raw:     v.Raw,
		Ok:      !v.IsMissing,
	}
}

func decodeField(spec FieldSpec, raw []byte) (FieldValue, error) {
	switch spec.Encoding {
	case Text:
		decoded := textcodec.Normalize(textcodec.Decode(raw))
		trimmed := strings.TrimSpace(decoded)
		return FieldValue{Text: trimmed, IsMissing: trimmed == ""}, nil
	case TextRaw:
		decoded := textcodec.Decode(raw)
		trimmed := strings.TrimSpace(decoded)
		return FieldValue{Text: trimmed, IsMissing: trimmed == ""}, nil
	case Bytes:
		cp := make([]byte, len(raw))
		copy(cp, raw)
		return FieldValue{Raw: cp}, nil
	case Flag:
		decoded := strings.TrimSpace(textcodec.Decode(raw))
		return FieldValue{Flag: decoded == "1"}, nil
	case Code:
		decoded := strings.TrimSpace(textcodec.Decode(raw))
		return FieldValue{Text: decoded, IsMissing: decoded == ""}, nil
	case Integer:
		return decodeInteger(spec, raw)
	case Decimal:
		return decodeDecimal(spec, raw)
	case DateField:
		return decodeDate(spec, raw)
	default:
		return FieldValue{}, &InvalidFieldValue{Field: spec.Name, Value: string(raw), Reason: "unknown encoding"}
	}
}

func decodeInteger(spec FieldSpec, raw []byte) (FieldValue, error) {
	trimmed := strings.TrimSpace(textcodec.Decode(raw))
	if trimmed == "" {
		return FieldValue{IsMissing: true}, nil
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return FieldValue{}, &InvalidFieldValue{Field: spec.Name, Value: trimmed, Reason: "not a base-10 integer"}
	}
	return FieldValue{Int: n}, nil
}

func decodeDecimal(spec FieldSpec, raw []byte) (FieldValue, error) {
	trimmed := strings.TrimSpace(textcodec.Decode(raw))
	if trimmed == "" {
		return FieldValue{IsMissing: true, Precision: spec.Precision}, nil
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return FieldValue{}, &InvalidFieldValue{Field: spec.Name, Value: trimmed, Reason: "not a base-10 integer"}
	}
	return FieldValue{Decimal: n, Precision: spec.Precision}, nil
}

func decodeDate(spec FieldSpec, raw []byte) (FieldValue, error) {
	trimmed := strings.TrimSpace(textcodec.Decode(raw))
	if isBlankNumeric(trimmed) {
		return FieldValue{IsMissing: true}, nil
	}
	layout := spec.Layout
	if layout == "" {
		layout = "20060102"
	}
	t, err := time.ParseInLocation(layout, trimmed, time.UTC)
	if err != nil {
		return FieldValue{}, &InvalidFieldValue{Field: spec.Name, Value: trimmed, Reason: "not a valid " + layout + " date"}
	}
	return FieldValue{Time: t}, nil
}

// isBlankNumeric reports whether a trimmed date field should be treated as
// Missing: empty, or entirely zeros (JV-Link blank-fills an unknown date
// with zeros rather than spaces). Integer and Decimal fields do not use
// this: an all-zeros integer is a genuine reported value of 0, distinct
// from "not reported" — only an empty slice is Missing for those.
func isBlankNumeric(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r != '0' {
			return false
		}
	}
	return true
}
