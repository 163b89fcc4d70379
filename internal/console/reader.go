// Package console feeds operator input lines to the game loop.
package console

import (
	"bufio"
	"context"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Reader scans lines from an io.Reader in its own goroutine and hands them to
// the game loop over Lines. The game loop never blocks on it.
type Reader struct {
	src   io.Reader
	Lines chan string // game loop reads lines from here
	log   *zap.Logger
}

func NewReader(src io.Reader, queue int, log *zap.Logger) *Reader {
	return &Reader{
		src:   src,
		Lines: make(chan string, queue),
		log:   log,
	}
}

// Run reads until EOF, a read error or ctx is done, then closes Lines.
// Blank lines are dropped. When the source is an io.Closer it is closed as
// soon as ctx is done, which unblocks a read in progress.
func (r *Reader) Run(ctx context.Context) error {
	defer close(r.Lines)

	if c, ok := r.src.(io.Closer); ok {
		stop := context.AfterFunc(ctx, func() { c.Close() })
		defer stop()
	}

	sc := bufio.NewScanner(r.src)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		select {
		case r.Lines <- line:
		case <-ctx.Done():
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		r.log.Warn("console read failed", zap.Error(err))
		return err
	}
	r.log.Debug("console input closed")
	return nil
}

// Drain returns every line currently queued without blocking. ok is false
// once the reader has finished and the queue is empty.
func (r *Reader) Drain(max int) (lines []string, ok bool) {
	for len(lines) < max {
		select {
		case line, open := <-r.Lines:
			if !open {
				return lines, false
			}
			lines = append(lines, line)
		default:
			return lines, true
		}
	}
	return lines, true
}

// Pipe relays src into a pipe and returns its read end for NewReader.
// Closing the read end lets Run stop without waiting on src; the relay
// goroutine itself ends at src's next read.
func Pipe(src io.Reader) io.ReadCloser {
	pr, pw := io.Pipe()
	go func() {
		_, err := io.Copy(pw, src)
		pw.CloseWithError(err)
	}()
	return pr
}
