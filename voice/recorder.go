package voice

import (
	"context"
	"sync"
)

// BufferRecorder is the adapter-fed Recorder: the client device streams
// captured chunks up and the pipeline reads them back on stop.
type BufferRecorder struct {
	mu     sync.Mutex
	buf    []byte
	active bool
}

func NewBufferRecorder() *BufferRecorder {
	return &BufferRecorder{}
}

func (r *BufferRecorder) Start(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf = nil
	r.active = true
	return nil
}

// Append adds a chunk uploaded by the device. Chunks arriving outside a
// recording are dropped.
func (r *BufferRecorder) Append(chunk []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active {
		return
	}
	r.buf = append(r.buf, chunk...)
}

func (r *BufferRecorder) Stop() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = false
	return r.buf, nil
}
