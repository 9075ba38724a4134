package sink

import (
	"context"
	"sync"

	"github.com/matzehuels/oncogrid/pkg/grid"
)

// Recorder is a [grid.Surface] that renders every committed frame into
// artifacts. Hosts pass it as the grid surface and read the artifacts after
// each render.
type Recorder struct {
	opts Options

	mu        sync.Mutex
	frame     *grid.Frame
	artifacts map[string][]byte
	draws     int
}

// NewRecorder returns a recorder producing opts.Formats, SVG when empty.
func NewRecorder(opts Options) *Recorder {
	if len(opts.Formats) == 0 {
		opts.Formats = []string{FormatSVG}
	}
	return &Recorder{opts: opts}
}

// Draw implements [grid.Surface].
func (r *Recorder) Draw(ctx context.Context, f *grid.Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	artifacts, err := Render(f, r.opts)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frame = f
	r.artifacts = artifacts
	r.draws++
	return nil
}

// Clear implements [grid.Clearer].
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frame = nil
	r.artifacts = nil
}

// Frame returns the last drawn frame, nil after Clear.
func (r *Recorder) Frame() *grid.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame
}

// Artifacts returns the output of the last draw keyed by format.
func (r *Recorder) Artifacts() map[string][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.artifacts
}

// Draws counts frames drawn so far.
func (r *Recorder) Draws() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draws
}

var (
	_ grid.Surface = (*Recorder)(nil)
	_ grid.Clearer = (*Recorder)(nil)
)
