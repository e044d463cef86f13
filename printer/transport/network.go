package transport

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/hnimtadd/escpos/logger"
)

// DefaultPort is the raw-printing port most network thermal printers
// listen on.
const DefaultPort = 9100

type NetworkOptions struct {
	Host string
	// Port defaults to DefaultPort.
	Port int
	// DialTimeout bounds the connect; zero means 5s.
	DialTimeout time.Duration
	// WriteTimeout arms a deadline before every write so a stalled
	// printer fails the print instead of hanging it. Zero means 10s.
	WriteTimeout time.Duration
	Logger       logger.Logger
}

// Network drives a printer over a raw TCP socket. It performs no retry
// and no reconnection; a failed write stays failed until the caller
// dials a fresh transport.
type Network struct {
	conn
	sock net.Conn
}

func Dial(opts NetworkOptions) (*Network, error) {
	if opts.Port == 0 {
		opts.Port = DefaultPort
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	addr := net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port))
	sock, err := net.DialTimeout("tcp", addr, opts.DialTimeout)
	if err != nil {
		return nil, fmt.Errorf("transport: dial %s: %w", addr, err)
	}
	n := &Network{sock: sock}
	n.conn = newConn(deadlineWriter{sock: sock, timeout: opts.WriteTimeout}, opts.Logger)
	return n, nil
}

func (n *Network) Close() error {
	return n.sock.Close()
}

type deadlineWriter struct {
	sock    net.Conn
	timeout time.Duration
}

func (d deadlineWriter) Write(p []byte) (int, error) {
	if d.timeout > 0 {
		if err := d.sock.SetWriteDeadline(time.Now().Add(d.timeout)); err != nil {
			return 0, err
		}
	}
	return d.sock.Write(p)
}
