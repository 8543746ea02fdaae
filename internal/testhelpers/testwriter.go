package testhelpers

import (
	"io"
	"strings"
	"testing"
)

// Writer routes server log output to t.Log so it only surfaces for failed
// tests. It panics on writes after the test finished, which catches servers
// that were not shut down in cleanup.
type Writer struct {
	t        *testing.T
	testDone chan struct{}
}

// NewWriter creates a Writer bound to the test's lifetime.
func NewWriter(t *testing.T) io.Writer {
	w := &Writer{
		t:        t,
		testDone: make(chan struct{}),
	}
	t.Cleanup(func() {
		close(w.testDone)
	})
	return w
}

func (w *Writer) Write(p []byte) (int, error) {
	select {
	case <-w.testDone:
		panic("testwriter: write after test completion. Did you forget t.Cleanup(server.Shutdown)?")
	default:
		// Trailing newlines would double-space the t.Log output.
		output := strings.TrimSuffix(string(p), "\n")
		if output != "" {
			w.t.Log(output)
		}
		return len(p), nil
	}
}
