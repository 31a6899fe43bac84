// Copyright 2018 Andrew Fort
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package rfc6242

// Framing selects how messages are delimited on the wire.
type Framing int

const (
	// EndOfMessageFraming terminates each message with the ]]>]]> marker (base:1.0).
	EndOfMessageFraming Framing = iota
	// ChunkedFraming splits each message into length prefixed chunks (base:1.1).
	ChunkedFraming
)

// SetFraming switches the decoder and encoder to the framing; either may be nil.
// The switch applies from the next message read or written.
func SetFraming(f Framing, d *Decoder, e *Encoder) {
	if d != nil {
		if f == ChunkedFraming {
			d.framer = decoderChunked
		} else {
			d.framer = decoderEndOfMessage
		}
	}
	if e != nil {
		e.ChunkedFraming = f == ChunkedFraming
	}
}

// SetChunkedFraming switches the decoder and encoder, either of which may be nil, to chunked framing.
func SetChunkedFraming(d *Decoder, e *Encoder) {
	SetFraming(ChunkedFraming, d, e)
}
