package core

import (
	"errors"
	"io"

	"dumpsock/internal/metrics"
)

// drain reads r until the peer closes, appending every chunk to buf in
// arrival order.  Each iteration makes exactly one Read of at most
// chunkSize bytes.  io.EOF ends the loop successfully; any other error
// ends it immediately, with the bytes read so far still in the returned
// buffer.  Nothing is retried.
//
// Every chunk is also written to tee when it is non-nil.
func drain(r io.Reader, buf []byte, chunkSize int, tee io.Writer, m *metrics.Collector) ([]byte, error) {
	chunk := make([]byte, chunkSize)
	for {
		n, err := r.Read(chunk)
		m.Read(n)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			if tee != nil {
				tee.Write(chunk[:n]) //nolint:errcheck // hash.Hash never fails
			}
		}
		if errors.Is(err, io.EOF) {
			return buf, nil
		}
		if err != nil {
			return buf, err
		}
	}
}

// emit writes buf to w in full.  A short write counts as a failure.
func emit(w io.Writer, buf []byte) (int, error) {
	n, err := w.Write(buf)
	if err == nil && n < len(buf) {
		err = io.ErrShortWrite
	}
	return n, err
}
