// Package grid implements the oncogrid engine: a donor × gene mutation matrix
// with scoring, ordering, layout and interaction.
//
// # Overview
//
// A [Grid] owns deep copies of its donors, genes and observations. At
// construction it indexes observations, scores both axes and sorts them so
// that frequently mutated genes sit at the top and donors cluster towards the
// top-left corner. Every public operation mutates that state synchronously and
// leaves the layout consistent, ready to be snapshotted as a [Frame].
//
// # Scoring
//
// Gene score and count are the total observation count of a gene. A donor's
// score weighs each gene it has a mutation in by 2^(G+1-j), where j is the
// gene's current row, so donor order follows their presence pattern across the
// top genes. Donor scores therefore depend on gene order and are recomputed
// whenever genes are reordered before donors are sorted.
//
// Ties are broken by ascending id so ordering is deterministic.
//
// # Rendering
//
// Rendering is split in two so the host controls when drawing happens:
//
//	pending := g.Prepare()      // emits render:all:start
//	// ... host schedules the draw ...
//	err := pending.Commit(ctx, surface)
//
// Commit resolves a [Frame] (every cell, bar, label and track cell in pixel
// coordinates) and hands it to a [Surface]. Section start and end events are
// emitted around each part of the frame.
//
// # Events
//
// Observers register with [Grid.Subscribe] for one [EventKind], or with
// [Grid.SubscribeAll]. Both return an unsubscribe function. Subscriptions
// survive [Grid.Reload].
//
// # Concurrency
//
// A Grid is not safe for concurrent use. All operations run to completion on
// the calling goroutine.
package grid
