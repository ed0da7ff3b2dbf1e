package telemetry

import (
	"context"
	"io"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"

	"go.trai.ch/godev/internal/core/ports"
)

// Recorder implements ports.Telemetry using progrock vertices.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a Recorder with a default tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a Recorder emitting to the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts recording a new vertex named after the unit of work.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	v := r.rec.Vertex(digest.FromString(name), name)
	return ctx, &vertex{vertex: v}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// vertex wraps *progrock.VertexRecorder.
type vertex struct {
	vertex *progrock.VertexRecorder
}

func (v *vertex) Stdout() io.Writer { return v.vertex.Stdout() }
func (v *vertex) Stderr() io.Writer { return v.vertex.Stderr() }

func (v *vertex) Complete(err error) {
	v.vertex.Done(err)
}

func (v *vertex) Cached() {
	v.vertex.Cached()
}
