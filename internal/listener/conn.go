package listener

import (
	"bytes"
	"io"
)

// lineConn presents a remote terminal to the console as \n-terminated
// lines. Telnet clients send \r\n and ssh clients without a pty send a bare
// \r; both arrive as \n, even when a \r\n pair straddles two reads. Outgoing
// \n is sent as \r\n.
type lineConn struct {
	rw     io.ReadWriter
	lastCR bool
}

func newLineConn(rw io.ReadWriter) *lineConn {
	return &lineConn{rw: rw}
}

func (c *lineConn) Read(p []byte) (int, error) {
	for {
		n, err := c.rw.Read(p)

		// out shares p and never grows past the bytes already read
		out := p[:0]
		for _, b := range p[:n] {
			switch {
			case b == '\r':
				out = append(out, '\n')
				c.lastCR = true
				continue
			case b == '\n' && c.lastCR:
			default:
				out = append(out, b)
			}
			c.lastCR = false
		}

		// A read holding only the \n of a split pair yields nothing; read again
		// rather than report zero bytes with no error.
		if len(out) > 0 || err != nil || n == 0 {
			return len(out), err
		}
	}
}

func (c *lineConn) Write(p []byte) (int, error) {
	if _, err := c.rw.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
