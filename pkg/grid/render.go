package grid

import (
	"context"
	"time"
)

// Pending is a prepared render waiting for the host to commit it.
type Pending struct {
	g     *Grid
	start time.Time
	done  bool
}

// Prepare starts a render and emits render:all:start. The render completes
// when the host calls [Pending.Commit].
func (g *Grid) Prepare() *Pending {
	g.emit(EventRenderAllStart)
	return &Pending{g: g, start: time.Now()}
}

// Commit resolves the frame, draws it on s and emits render:all:end. A nil
// surface only resolves the frame. Commit runs at most once; later calls
// return nil.
func (p *Pending) Commit(ctx context.Context, s Surface) error {
	if p.done {
		return nil
	}
	p.done = true
	g := p.g

	g.donorTracks.MarkRendered()
	g.geneTracks.MarkRendered()
	g.rendered = true
	g.destroyed = false

	f := g.buildFrame(g.emit)
	var err error
	if s != nil {
		err = s.Draw(ctx, f)
	}
	g.log.Debug("render committed", "cells", len(f.Cells), "width", f.Width, "height", f.Height, "elapsed", time.Since(p.start))
	g.emit(EventRenderAllEnd)
	return err
}

// Render prepares and immediately commits to the configured surface.
func (g *Grid) Render(ctx context.Context) error {
	return g.Prepare().Commit(ctx, g.params.Surface)
}

// Reload discards all state, rebuilds the grid from the parameters it was
// constructed with and renders it again. Subscriptions are kept.
func (g *Grid) Reload(ctx context.Context) error {
	start := time.Now()
	g.Destroy()
	g.init()
	err := g.Render(ctx)
	g.done(EventReload, start)
	return err
}
