package record

import "fmt"

// Record is the sum type every decoded line belongs to (spec.md §4.3's
// Record Kind Dispatch table). A type switch over the concrete structs
// below (or a check for Unrecognised) is the idiomatic way to consume a
// parsed stream.
type Record interface {
	// RecordKind returns the two-character type ID the record was parsed
	// from (e.g. "RA", "SE", "UM").
	RecordKind() string
}

// Unrecognised is returned for any two-character kind this module does
// not implement a parser for. Its Raw field retains the full record so a
// caller can still inspect it by hand.
type Unrecognised struct {
	Kind string
	Raw  []byte
}

// RecordKind implements Record.
func (u Unrecognised) RecordKind() string { return u.Kind }

// recordSpec binds one record kind's field list, required-field set, and
// Build function together so ParseRecord can dispatch on the two-byte
// kind prefix without a 34-armed switch.
type recordSpec struct {
	kind     string
	fields   []FieldSpec
	required []string
	build    func(fields map[string]FieldValue) (Record, error)
}

var registry = map[string]recordSpec{}

func register(spec recordSpec) {
	registry[spec.kind] = spec
}

// kindOf reads the two-character record type ID every JV-Data line opens
// with (spec.md §4.3).
func kindOf(buf []byte) string {
	if len(buf) < 2 {
		return ""
	}
	return string(buf[:2])
}

// ParseRecord dispatches buf to the parser registered for its two-byte
// kind prefix, or returns Unrecognised if no parser is registered.
func ParseRecord(buf []byte) (Record, error) {
	kind := kindOf(buf)
	spec, ok := registry[kind]
	if !ok {
		cp := make([]byte, len(buf))
		copy(cp, buf)
		return Unrecognised{Kind: kind, Raw: cp}, nil
	}
	fields, err := ParseFieldsRich(buf, spec.fields)
	if err != nil {
		return nil, err
	}
	for _, name := range spec.required {
		v, present := fields[name]
		if !present || v.IsMissing {
			return nil, &MissingRequiredField{Kind: spec.kind, Field: name}
		}
	}
	return spec.build(fields)
}

// BatchPolicy selects ParseBatch's failure policy: FailFast stops and
// returns the first error, CollectErrors
// parses every record it can and returns the accumulated errors alongside
// the records that did decode.
type BatchPolicy int

const (
	// FailFast aborts the batch on the first parse error.
	FailFast BatchPolicy = iota
	// CollectErrors keeps parsing past individual record failures and
	// reports every failure once the batch completes.
	CollectErrors
)

// BatchError collects the errors CollectErrors accumulated. Records that
// failed to parse are simply absent from ParseBatch's result slice; Index
// ties each error back to its position in the input.
type BatchError struct {
	Errors []IndexedError
	Total  int // number of records in the batch Errors was drawn from
}

// IndexedError pairs a parse error with its position in the input batch.
type IndexedError struct {
	Index int
	Err   error
}

func (e *BatchError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Err.Error()
	}
	return fmt.Sprintf("%d of %d records failed to parse", len(e.Errors), e.Total)
}

// ParseBatch applies ParseRecord to each entry of bufs under the given
// policy.
func ParseBatch(bufs [][]byte, policy BatchPolicy) ([]Record, error) {
	out := make([]Record, 0, len(bufs))
	var batchErr BatchError
	for i, buf := range bufs {
		rec, err := ParseRecord(buf)
		if err != nil {
			if policy == FailFast {
				return out, err
			}
			batchErr.Errors = append(batchErr.Errors, IndexedError{Index: i, Err: err})
			continue
		}
		out = append(out, rec)
	}
	if len(batchErr.Errors) > 0 {
		batchErr.Total = len(bufs)
		return out, &batchErr
	}
	return out, nil
}
