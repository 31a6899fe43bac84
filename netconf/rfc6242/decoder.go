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

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Framing errors
var (
	ErrInvalidChunkHeader = errors.New("invalid chunk header")
	ErrChunkSizeTooLarge  = errors.New("chunk size larger than maximum")
	ErrNoValidChunkSize   = errors.New("no valid chunk-size detected")
)

var (
	tokenEOM         = []byte("]]>]]>")
	tokenEndOfChunks = []byte("\n##\n")
)

const (
	// RFC6242 section 4.2 defines the "maximum allowed chunk-size".
	rfc6242maximumAllowedChunkSize = 4294967295
	// the length of `rfc6242maximumAllowedChunkSize` in bytes on the wire.
	rfc6242maximumAllowedChunkSizeLength = 10
	// defaultReaderBufferSize is the default read buffer capacity size.
	defaultReaderBufferSize = 4096
	// defaultMaximumMessageSize bounds the size of a single decoded message.
	defaultMaximumMessageSize = 64 * 1024 * 1024
	// maxPartialReport bounds the partial message quoted by an incomplete message error.
	maxPartialReport = 512
)

// FramerFn is the input tokenization function used by a Decoder.
// It delivers one complete message per token, stripped of framing.
type FramerFn func(d *Decoder, data []byte, atEOF bool) (advance int, token []byte, err error)

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithFramer sets the initial framer of the Decoder.
func WithFramer(fn FramerFn) DecoderOption {
	return func(d *Decoder) {
		d.framer = fn
	}
}

// WithScannerBufferSize sets the size of the buffer used for each read from the input.
func WithScannerBufferSize(size int) DecoderOption {
	return func(d *Decoder) {
		d.bufSize = size
	}
}

// WithMaximumMessageSize bounds the size of a decoded message.
func WithMaximumMessageSize(size int) DecoderOption {
	return func(d *Decoder) {
		if size > 0 {
			d.maxSize = size
		}
	}
}

// Decoder is an RFC6242 transport framing decoder.
//
// Each call to ReadMessage blocks until a complete message has been read from
// the input, and delivers it with all framing removed.
//
// Decoder is not safe for concurrent use.
type Decoder struct {
	// Input is the input source for the Decoder. The input stream
	// must consist of RFC6242 encoded data according to the current
	// Framer.
	Input io.Reader

	framer  FramerFn
	s       *bufio.Scanner
	bufSize int
	maxSize int
}

// NewDecoder creates a new RFC6242 transport framing decoder reading from
// input, configured with any options provided.
func NewDecoder(input io.Reader, options ...DecoderOption) *Decoder {
	d := &Decoder{
		Input:   input,
		framer:  decoderEndOfMessage,
		bufSize: defaultReaderBufferSize,
		maxSize: defaultMaximumMessageSize,
	}
	for _, option := range options {
		option(d)
	}
	if d.bufSize > d.maxSize {
		d.bufSize = d.maxSize
	}
	d.s = bufio.NewScanner(input)
	d.s.Buffer(make([]byte, d.bufSize), d.maxSize)
	d.s.Split(d.split)
	return d
}

// ReadMessage reads the next message from the input.
// It returns io.EOF if the input ends cleanly between messages, and an error
// wrapping io.ErrUnexpectedEOF if it ends part way through a message.
func (d *Decoder) ReadMessage() ([]byte, error) {
	if d.s.Scan() {
		token := d.s.Bytes()
		msg := make([]byte, len(token))
		copy(msg, token)
		return msg, nil
	}
	if err := d.s.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func (d *Decoder) split(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(bytes.TrimSpace(data)) == 0 {
		// Nothing but whitespace was left on the stream.
		return len(data), nil, nil
	}
	return d.framer(d, data, atEOF)
}

func decoderEndOfMessage(d *Decoder, data []byte, atEOF bool) (int, []byte, error) {
	if idx := bytes.Index(data, tokenEOM); idx >= 0 {
		return idx + len(tokenEOM), data[:idx], nil
	}
	if atEOF {
		return 0, nil, incompleteMessage(data)
	}
	return 0, nil, nil
}

func decoderChunked(d *Decoder, data []byte, atEOF bool) (int, []byte, error) {
	pos := skipInterMessageSpace(data)
	var msg []byte
	for {
		rest := data[pos:]
		if len(rest) == 0 {
			break
		}
		if rest[0] != '\n' {
			return 0, nil, ErrInvalidChunkHeader
		}
		if len(rest) < 2 {
			break
		}
		if rest[1] != '#' {
			return 0, nil, ErrInvalidChunkHeader
		}
		if len(rest) < 3 {
			break
		}
		if rest[2] == '#' {
			// end-of-chunks
			if len(rest) < 4 {
				break
			}
			if rest[3] != '\n' {
				return 0, nil, ErrInvalidChunkHeader
			}
			if msg == nil {
				msg = []byte{}
			}
			return pos + len(tokenEndOfChunks), msg, nil
		}

		size, headerLen, err := d.chunkHeader(rest)
		if err != nil {
			return 0, nil, err
		}
		if headerLen == 0 || len(rest) < headerLen+size {
			break
		}
		msg = append(msg, rest[headerLen:headerLen+size]...)
		pos += headerLen + size
	}

	if atEOF {
		return 0, nil, incompleteMessage(data)
	}
	return 0, nil, nil
}

// chunkHeader parses "\n#<chunk-size>\n" at the start of b, delivering the chunk size and the
// length of the header, or a zero header length if more data is needed.
func (d *Decoder) chunkHeader(b []byte) (size, headerLen int, err error) {
	i := 2
	for i < len(b) && i-2 < rfc6242maximumAllowedChunkSizeLength && isDigit(b[i]) {
		i++
	}
	if i == len(b) {
		return 0, 0, nil
	}
	if i-2 == rfc6242maximumAllowedChunkSizeLength && isDigit(b[i]) {
		return 0, 0, ErrNoValidChunkSize
	}
	if i == 2 || b[i] != '\n' || b[2] == '0' {
		return 0, 0, ErrInvalidChunkHeader
	}

	chunkSize, err := strconv.ParseUint(string(b[2:i]), 10, 64)
	if err != nil {
		return 0, 0, errors.Wrap(ErrInvalidChunkHeader, err.Error())
	}
	if chunkSize > rfc6242maximumAllowedChunkSize {
		return 0, 0, ErrChunkSizeTooLarge
	}
	if chunkSize > uint64(d.maxSize) {
		return 0, 0, errors.Wrapf(bufio.ErrTooLong, "chunk of %d bytes", chunkSize)
	}
	return int(chunkSize), i + 1, nil
}

// skipInterMessageSpace skips whitespace some servers emit between messages, stopping at
// the newline that starts a chunk header.
func skipInterMessageSpace(data []byte) int {
	pos := 0
	for pos < len(data) && isSpace(data[pos]) {
		if data[pos] == '\n' && (pos+1 == len(data) || data[pos+1] == '#') {
			break
		}
		pos++
	}
	return pos
}

func incompleteMessage(data []byte) error {
	partial := data
	if len(partial) > maxPartialReport {
		partial = partial[:maxPartialReport]
	}
	return errors.Wrapf(io.ErrUnexpectedEOF, "incomplete message, data read before end of stream %q", partial)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}
