package trace

import (
	"encoding/json"
	"io"
)

// JSONLSink writes one JSON object per record. The first write error is kept
// and every later record is dropped; callers check Err once the search ends.
type JSONLSink struct {
	enc *json.Encoder
	err error
}

// NewJSONLSink creates a JSONLSink writing to w.
func NewJSONLSink(w io.Writer) *JSONLSink {
	return &JSONLSink{enc: json.NewEncoder(w)}
}

func (s *JSONLSink) Record(r Record) {
	if s.err != nil {
		return
	}
	s.err = s.enc.Encode(r)
}

// Err returns the first write error, if any.
func (s *JSONLSink) Err() error {
	return s.err
}
