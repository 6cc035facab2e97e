package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// JSON is portable but lossy for some key types: integer keys decoded into
// an interface value come back as float64. Prefer a concrete key type
// (Codebook[string], Codebook[int64]) when persisting with JSON.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used when none is configured.
//
// Persisted codebooks are self-describing, so changing Default never breaks
// reading existing data.
var Default Codec = Msgpack{}
