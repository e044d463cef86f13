// Package transport carries serialized commands to a physical printer.
// Every channel exposes the same capability set; the serializer never
// knows which one it is driving, and adding a channel means writing one
// raw writer, not re-encoding every operation.
package transport

import (
	"fmt"
	"io"

	"github.com/hnimtadd/escpos/logger"
	"github.com/hnimtadd/escpos/printer/command"
	"github.com/hnimtadd/escpos/printer/style"
)

// Transport is the uniform capability set the serializer drives.
//
// There is deliberately no italic operation: the target hardware has
// none, so an italic run cannot leak onto the wire through some other
// field's command.
type Transport interface {
	Initialize() error
	Write(p []byte) error
	Feed(lines int) error
	Cut(mode CutMode) error
	SetJustify(j style.Justify) error
	SetTextSize(s style.TextSize) error
	SetBold(on bool) error
	SetUnderline(m style.UnderlineMode) error
	Close() error
}

type CutMode int

const (
	CutFull CutMode = iota
	CutPartial
	CutNone
)

// conn encodes every logical operation into its ESC/POS bytes and
// funnels them through one raw writer. The hardware transports embed it
// so the operation-to-bytes mapping lives in exactly one place.
type conn struct {
	w   io.Writer
	log logger.Logger
}

func newConn(w io.Writer, log logger.Logger) conn {
	if log == nil {
		log = logger.Nop()
	}
	return conn{w: w, log: log}
}

func (c conn) send(seq []byte) error {
	if _, err := c.w.Write(seq); err != nil {
		return fmt.Errorf("transport: send %s: %w", command.Name(seq), err)
	}
	c.log.Debug("sent command", "name", command.Name(seq))
	return nil
}

func (c conn) Initialize() error {
	if err := c.send(command.Initialize()); err != nil {
		return err
	}
	return c.send(command.SelectCodePage(command.PagePC437))
}

func (c conn) Write(p []byte) error {
	if _, err := c.w.Write(p); err != nil {
		return fmt.Errorf("transport: write text: %w", err)
	}
	return nil
}

func (c conn) Feed(lines int) error {
	return c.send(command.Feed(lines))
}

func (c conn) Cut(mode CutMode) error {
	if mode == CutNone {
		return nil
	}
	return c.send(command.Cut(mode == CutPartial))
}

func (c conn) SetJustify(j style.Justify) error {
	return c.send(command.Justify(j))
}

func (c conn) SetTextSize(s style.TextSize) error {
	return c.send(command.Size(s))
}

func (c conn) SetBold(on bool) error {
	return c.send(command.Bold(on))
}

func (c conn) SetUnderline(m style.UnderlineMode) error {
	return c.send(command.Underline(m))
}
