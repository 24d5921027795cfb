package kv

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind distinguishes persisted files from synthesized directories.
type Kind string

const (
	// KindFile is the only kind ever persisted.
	KindFile Kind = "file"

	// KindDirectory exists only in query-time views; a directory record is
	// never written to the store.
	KindDirectory Kind = "directory"
)

// Record is the single persisted entity: a file keyed by its full virtual
// path. Payload is immutable once written; overwriting a path replaces the
// whole record.
type Record struct {
	// Name is the full virtual path, e.g. "a/b/c.txt". Unique per store.
	Name string `json:"name"`

	// Kind is always KindFile for persisted records.
	Kind Kind `json:"kind"`

	// Payload holds the file bytes.
	Payload []byte `json:"payload"`

	// Size caches len(Payload) for metadata queries.
	Size int64 `json:"size"`

	// ModifiedAt is set at write time.
	ModifiedAt time.Time `json:"modified_at"`
}

// StripPayload returns a copy of the record without its payload, for
// metadata queries that must never expose file content.
func (r *Record) StripPayload() *Record {
	clone := *r
	clone.Payload = nil
	return &clone
}

// ============================================================================
// JSON Encoding/Decoding
// ============================================================================
//
// Values are stored as JSON. The payload field has accumulated three wire
// forms over time:
//
//   - base64 string: the native encoding/json form of []byte (current)
//   - plain JSON string: payloads written as joined character strings (legacy)
//   - JSON array of numbers: payloads written as arrays of byte values (legacy)
//
// DecodeRecord accepts all three and yields identical bytes.

// EncodeRecord serializes a record to its stored JSON form.
func EncodeRecord(rec *Record) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return data, nil
}

// DecodeRecord deserializes a record from its stored JSON form, tolerating
// the legacy payload representations.
func DecodeRecord(data []byte) (*Record, error) {
	var raw struct {
		Name       string          `json:"name"`
		Kind       Kind            `json:"kind"`
		Payload    json.RawMessage `json:"payload"`
		Size       int64           `json:"size"`
		ModifiedAt time.Time       `json:"modified_at"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}

	payload, err := decodePayload(raw.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode payload for %q: %w", raw.Name, err)
	}

	return &Record{
		Name:       raw.Name,
		Kind:       raw.Kind,
		Payload:    payload,
		Size:       raw.Size,
		ModifiedAt: raw.ModifiedAt,
	}, nil
}

// decodePayload decodes the payload field from any of its wire forms.
func decodePayload(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	switch raw[0] {
	case '"':
		// Base64 is the native form; legacy writers stored the bytes as a
		// plain joined string, which generally is not valid base64.
		var b []byte
		if err := json.Unmarshal(raw, &b); err == nil {
			return b, nil
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return []byte(s), nil
	case '[':
		var codes []uint16
		if err := json.Unmarshal(raw, &codes); err != nil {
			return nil, err
		}
		b := make([]byte, len(codes))
		for i, c := range codes {
			if c > 0xff {
				return nil, fmt.Errorf("payload byte %d out of range: %d", i, c)
			}
			b[i] = byte(c)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported payload encoding: %s", raw)
	}
}
