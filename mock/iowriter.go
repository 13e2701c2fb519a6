package mock

import (
	"sync"
)

// IOWriter is a concurrency safe io.Writer which accumulates everything written to it
// so tests can assert against log output.
type IOWriter struct {
	mu   sync.Mutex
	line []byte
}

func (t *IOWriter) Reset() {
	t.mu.Lock()
	t.line = t.line[:0]
	t.mu.Unlock()
}

func (t *IOWriter) Write(b []byte) (int, error) {
	t.mu.Lock()
	t.line = append(t.line, b...)
	t.mu.Unlock()

	return len(b), nil
}

func (t *IOWriter) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return string(t.line)
}

func (t *IOWriter) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.line)
}
