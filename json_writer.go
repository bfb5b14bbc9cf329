package finmgr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// jsonObjectWriter builds a flat JSON object with its fields in the order they
// are written. Its zero value is ready to use, and the first error sticks.
type jsonObjectWriter struct {
	bytes.Buffer
	err error
}

// EmbedFrom marshals v, which must encode as a JSON object, and writes its
// fields into the object being built.
func (w *jsonObjectWriter) EmbedFrom(v any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	raw, err := json.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("cannot embed %T: %w", v, err)
		return w
	}
	fields := bytes.TrimSpace(raw)
	fields = bytes.TrimPrefix(fields, []byte("{"))
	fields = bytes.TrimSuffix(fields, []byte("}"))
	if len(fields) > 0 {
		w.Write(fields)
		w.WriteByte(',')
	}
	return w
}

// Append writes key with its JSON encoded value.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	raw, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("cannot encode %q: %w", key, err)
		return w
	}
	w.WriteString(strconv.Quote(key))
	w.WriteByte(':')
	w.Write(raw)
	w.WriteByte(',')
	return w
}

// Optional is like Append but skips zero values.
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

// Amount writes the bare decimal of a present amount. The currency is written
// once per object, not per amount.
func (w *jsonObjectWriter) Amount(key string, value Optional[Money]) *jsonObjectWriter {
	if m, ok := value.Get(); ok {
		return w.Append(key, m.value)
	}
	return w
}

// MarshalJSON implements the json.Marshaler interface.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	fields := bytes.TrimSuffix(w.Bytes(), []byte(","))
	object := make([]byte, 0, len(fields)+2)
	object = append(object, '{')
	object = append(object, fields...)
	return append(object, '}'), nil
}
