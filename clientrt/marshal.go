package clientrt

import "encoding/json"

// Marshaller converts payloads to and from transport bytes.
type Marshaller interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	ContentType() string
}

// JSON is the default Marshaller.
type JSON struct{}

// Marshal implements Marshaller.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal implements Marshaller.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// ContentType implements Marshaller.
func (JSON) ContentType() string { return "application/json" }

var _ Marshaller = JSON{}
