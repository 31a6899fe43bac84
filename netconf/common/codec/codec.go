package codec

import (
	"encoding/xml"
	"io"

	"github.com/damianoneill/ncclient/netconf/rfc6242"
)

// Decoder delivers complete netconf messages from a transport, using the
// RFC6242-compliant decoder for message framing.
type Decoder struct {
	ncDecoder *rfc6242.Decoder
}

// Encoder writes complete netconf messages to a transport, using the
// RFC6242-compliant encoder for message framing.
type Encoder struct {
	ncEncoder *rfc6242.Encoder
}

// NewDecoder delivers a new decoder.
func NewDecoder(t io.Reader, options ...rfc6242.DecoderOption) *Decoder {
	return &Decoder{ncDecoder: rfc6242.NewDecoder(t, options...)}
}

// NewEncoder delivers a new encoder.
func NewEncoder(t io.Writer, options ...rfc6242.EncoderOption) *Encoder {
	return &Encoder{ncEncoder: rfc6242.NewEncoder(t, options...)}
}

// Decode blocks until the next message has been received and returns it without framing.
func (d *Decoder) Decode() (string, error) {
	b, err := d.ncDecoder.ReadMessage()
	return string(b), err
}

// DecodeValue decodes the next message into v, returning the raw message as well.
func (d *Decoder) DecodeValue(v interface{}) (string, error) {
	msg, err := d.Decode()
	if err != nil {
		return msg, err
	}
	return msg, xml.Unmarshal([]byte(msg), v)
}

// Encode writes msg as one framed netconf message.
func (e *Encoder) Encode(msg string) error {
	return e.ncEncoder.WriteMessage([]byte(msg))
}

// EncodeValue marshals v and writes it as one framed netconf message.
func (e *Encoder) EncodeValue(v interface{}) error {
	b, err := xml.Marshal(v)
	if err != nil {
		return err
	}
	return e.ncEncoder.WriteMessage(b)
}

// EnableChunkedFraming enables chunked framing on the specified decoder and encoder.
func EnableChunkedFraming(d *Decoder, e *Encoder) {
	rfc6242.SetChunkedFraming(d.ncDecoder, e.ncEncoder)
}
