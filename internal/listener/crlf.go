package listener

import (
	"bytes"
	"io"
)

var (
	lf   = []byte("\n")
	crlf = []byte("\r\n")
)

// lineEndings translates between the network's line endings and the bare
// newlines the player loop reads and writes. Incoming \r\n and lone \r
// both become \n; outgoing \n becomes \r\n.
type lineEndings struct {
	rw io.ReadWriter
	// afterCR is set when the last byte read was a \r, so a \n opening
	// the next read belongs to the same line ending.
	afterCR bool
}

func newCRLFReadWriter(rw io.ReadWriter) io.ReadWriter {
	return &lineEndings{rw: rw}
}

func (l *lineEndings) Read(p []byte) (int, error) {
	for {
		n, err := l.rw.Read(p)
		out := 0
		for _, b := range p[:n] {
			switch {
			case b == '\r':
				p[out] = '\n'
				out++
				l.afterCR = true
				continue
			case b == '\n' && l.afterCR:
			default:
				p[out] = b
				out++
			}
			l.afterCR = false
		}
		// A read that was only the tail of a \r\n has nothing to hand back.
		if out > 0 || n == 0 || err != nil {
			return out, err
		}
	}
}

func (l *lineEndings) Write(p []byte) (int, error) {
	if _, err := l.rw.Write(bytes.ReplaceAll(p, lf, crlf)); err != nil {
		return 0, err
	}
	return len(p), nil
}
