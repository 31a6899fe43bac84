package ops

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/damianoneill/ncclient/netconf/common"
	"github.com/pkg/errors"
)

var (
	// ErrMalformedReply is returned when a reply cannot be parsed or lacks the mandatory content.
	ErrMalformedReply = errors.New("malformed reply")
	// ErrNoData is returned when the data of an error reply is requested.
	ErrNoData = errors.New("reply carries no data")
)

type rpcReply struct {
	XMLName   xml.Name          `xml:"rpc-reply"`
	MessageID string            `xml:"message-id,attr"`
	Xmlns     string            `xml:"xmlns,attr"`
	Ok        *struct{}         `xml:"ok"`
	Data      *struct{}         `xml:"data"`
	Errors    []common.RPCError `xml:"rpc-error"`
}

// OkResponse is the reply to operations that answer <ok/> on success.
type OkResponse struct {
	common.RPCReply
}

// DataResponse is the reply to get and get-config.
type DataResponse struct {
	common.RPCReply
	data string
}

// Data delivers the <data> element of the reply, verbatim.
func (r *DataResponse) Data() (string, error) {
	if !r.Succeeded() {
		return "", errors.Wrapf(ErrNoData, "%s", r.Errors[0].Error())
	}
	return r.data, nil
}

// ParseReply decodes the envelope of an rpc-reply, reporting whether a <data> element is present.
func ParseReply(raw string) (*common.RPCReply, bool, error) {
	var wire rpcReply
	if err := xml.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, false, errors.Wrapf(ErrMalformedReply, "%v", err)
	}

	reply := &common.RPCReply{
		MessageID: strings.TrimSpace(wire.MessageID),
		Xmlns:     wire.Xmlns,
		Ok:        wire.Ok != nil,
		Errors:    wire.Errors,
	}
	for i := range reply.Errors {
		re := &reply.Errors[i]
		re.Normalise()
		if !re.Type.Valid() {
			return nil, false, errors.Wrapf(ErrMalformedReply, "unknown error-type %q", re.Type)
		}
		if !re.Severity.Valid() {
			return nil, false, errors.Wrapf(ErrMalformedReply, "unknown error-severity %q", re.Severity)
		}
	}
	return reply, wire.Data != nil, nil
}

func parseOkReply(raw string) (*OkResponse, error) {
	reply, _, err := ParseReply(raw)
	if err != nil {
		return nil, err
	}
	if !reply.Ok && len(reply.Errors) == 0 {
		return nil, errors.Wrap(ErrMalformedReply, "reply has neither <ok/> nor <rpc-error>")
	}
	return &OkResponse{RPCReply: *reply}, nil
}

func parseDataReply(raw string) (*DataResponse, error) {
	reply, hasData, err := ParseReply(raw)
	if err != nil {
		return nil, err
	}
	if !hasData && !reply.Ok && len(reply.Errors) == 0 {
		return nil, errors.Wrap(ErrMalformedReply, "reply has neither <data> nor <ok/> nor <rpc-error>")
	}
	resp := &DataResponse{RPCReply: *reply}
	if hasData {
		if resp.data, err = extractData(raw); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// extractData returns the <data> child of the rpc-reply as an unparsed slice of raw.
func extractData(raw string) (string, error) {
	d := xml.NewDecoder(strings.NewReader(raw))
	depth, start := 0, -1
	for {
		offset := d.InputOffset()
		tok, err := d.RawToken()
		if err == io.EOF {
			return "", errors.Wrap(ErrMalformedReply, "unterminated <data> element")
		}
		if err != nil {
			return "", errors.Wrapf(ErrMalformedReply, "%v", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 2 && start < 0 && t.Name.Local == "data" {
				start = int(offset)
			}
		case xml.EndElement:
			if depth == 2 && start >= 0 && t.Name.Local == "data" {
				return raw[start:d.InputOffset()], nil
			}
			depth--
		}
	}
}
