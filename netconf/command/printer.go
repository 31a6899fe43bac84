package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/damianoneill/ncclient/netconf/common"
	"github.com/damianoneill/ncclient/netconf/ops"
	"github.com/fatih/color"
	"github.com/pkg/errors"
)

// DumpFormat selects how the xml exchanged by a command is printed.
type DumpFormat string

const (
	DumpNone   DumpFormat = "none"
	DumpRaw    DumpFormat = "raw"
	DumpPretty DumpFormat = "pretty"
)

// ParseDumpFormat maps a name onto a DumpFormat; the empty name is DumpNone.
func ParseDumpFormat(name string) (DumpFormat, error) {
	switch DumpFormat(strings.ToLower(strings.TrimSpace(name))) {
	case "", DumpNone:
		return DumpNone, nil
	case DumpRaw:
		return DumpRaw, nil
	case DumpPretty:
		return DumpPretty, nil
	}
	return "", errors.Errorf("unknown dump format %q, expecting none, raw or pretty", name)
}

// Printer renders command results for a console.
type Printer struct {
	out  io.Writer
	dump DumpFormat

	heading *color.Color
	ok      *color.Color
	fail    *color.Color
	warn    *color.Color
}

// NewPrinter delivers a printer writing to out.
func NewPrinter(out io.Writer, dump DumpFormat) *Printer {
	return &Printer{
		out:     out,
		dump:    dump,
		heading: color.New(color.FgCyan, color.Bold),
		ok:      color.New(color.FgGreen),
		fail:    color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow),
	}
}

// Print writes the dumps of the result, if enabled, followed by its outcome.
func (p *Printer) Print(res *Result) {
	if p.dump != DumpNone {
		p.printDump("request", res.RequestXML)
		p.printDump("reply", res.ReplyXML)
	}

	switch typed := res.Typed.(type) {
	case *ops.HelloResponse:
		p.ok.Fprintf(p.out, "%s: session-id %d\n", res.Command, typed.SessionID)
		for _, c := range typed.Capabilities {
			fmt.Fprintf(p.out, "  %s\n", c.URN())
		}
		return
	case *ops.DataResponse:
		if typed.Succeeded() {
			data, _ := typed.Data()
			p.ok.Fprintf(p.out, "%s: ok\n", res.Command)
			fmt.Fprintln(p.out, p.format(data))
			return
		}
		p.printErrors(res.Command, &typed.RPCReply)
	case *ops.OkResponse:
		if typed.Succeeded() {
			p.ok.Fprintf(p.out, "%s: ok\n", res.Command)
			return
		}
		p.printErrors(res.Command, &typed.RPCReply)
	}
}

func (p *Printer) printErrors(cmd string, reply *common.RPCReply) {
	if reply.Err() != nil {
		p.fail.Fprintf(p.out, "%s: rpc-error\n", cmd)
	} else {
		p.warn.Fprintf(p.out, "%s: completed with warnings\n", cmd)
	}
	for i := range reply.Errors {
		re := &reply.Errors[i]
		c := p.warn
		if re.Severity == common.SeverityError {
			c = p.fail
		}
		c.Fprintf(p.out, "  [%s] %s %s", re.Severity, re.Type, re.Tag)
		if re.Message != "" {
			fmt.Fprintf(p.out, ": %s", re.Message)
		}
		fmt.Fprintln(p.out)
		if re.Path != "" {
			fmt.Fprintf(p.out, "    path: %s\n", re.Path)
		}
		if re.AppTag != "" {
			fmt.Fprintf(p.out, "    app-tag: %s\n", re.AppTag)
		}
		if re.Info != nil && strings.TrimSpace(re.Info.Content) != "" {
			fmt.Fprintf(p.out, "    info: %s\n", strings.TrimSpace(re.Info.Content))
		}
	}
}

func (p *Printer) printDump(label, xml string) {
	if xml == "" {
		return
	}
	p.heading.Fprintf(p.out, "%s:\n", label)
	fmt.Fprintln(p.out, p.format(xml))
}

// format pretty prints xml when requested, falling back to the raw text when it cannot be parsed.
func (p *Printer) format(xml string) string {
	if p.dump != DumpPretty {
		return xml
	}
	pretty, err := ops.PrettyXML(xml)
	if err != nil {
		return xml
	}
	return pretty
}
