package grid

import "slices"

// EventKind identifies a grid lifecycle event.
type EventKind int

const (
	EventRenderAllStart EventKind = iota
	EventRenderAllEnd
	EventRenderMainGridStart
	EventRenderMainGridEnd
	EventRenderDonorHistogramStart
	EventRenderDonorHistogramEnd
	EventRenderDonorTrackStart
	EventRenderDonorTrackEnd
	EventRenderGeneHistogramStart
	EventRenderGeneHistogramEnd
	EventRenderGeneTrackStart
	EventRenderGeneTrackEnd
	EventUpdate
	EventResize
	EventCluster
	EventRemoveDonors
	EventRemoveGenes
	EventSortDonors
	EventSortGenes
	EventToggleHeatmap
	EventToggleGridLines
	EventToggleCrosshair
	EventDestroy
	EventReload

	numEventKinds
)

var eventNames = [numEventKinds]string{
	EventRenderAllStart:            "render:all:start",
	EventRenderAllEnd:              "render:all:end",
	EventRenderMainGridStart:       "render:mainGrid:start",
	EventRenderMainGridEnd:         "render:mainGrid:end",
	EventRenderDonorHistogramStart: "render:donorHistogram:start",
	EventRenderDonorHistogramEnd:   "render:donorHistogram:end",
	EventRenderDonorTrackStart:     "render:donorTrack:start",
	EventRenderDonorTrackEnd:       "render:donorTrack:end",
	EventRenderGeneHistogramStart:  "render:geneHistogram:start",
	EventRenderGeneHistogramEnd:    "render:geneHistogram:end",
	EventRenderGeneTrackStart:      "render:geneTrack:start",
	EventRenderGeneTrackEnd:        "render:geneTrack:end",
	EventUpdate:                    "update",
	EventResize:                    "resize",
	EventCluster:                   "cluster",
	EventRemoveDonors:              "removeDonors",
	EventRemoveGenes:               "removeGenes",
	EventSortDonors:                "sortDonors",
	EventSortGenes:                 "sortGenes",
	EventToggleHeatmap:             "toggleHeatmap",
	EventToggleGridLines:           "toggleGridLines",
	EventToggleCrosshair:           "toggleCrosshair",
	EventDestroy:                   "destroy",
	EventReload:                    "reload",
}

// String returns the event name, e.g. "render:mainGrid:start".
func (k EventKind) String() string {
	if k < 0 || k >= numEventKinds {
		return "unknown"
	}
	return eventNames[k]
}

// EventKinds returns every event kind in declaration order.
func EventKinds() []EventKind {
	out := make([]EventKind, numEventKinds)
	for i := range out {
		out[i] = EventKind(i)
	}
	return out
}

// Event is delivered to listeners.
type Event struct {
	Kind   EventKind
	Donors int
	Genes  int
}

// Listener receives events.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// emitter dispatches events synchronously in subscription order.
type emitter struct {
	next  int
	byKey map[EventKind][]subscription
	all   []subscription
}

func (e *emitter) subscribe(kind EventKind, all bool, fn Listener) func() {
	e.next++
	s := subscription{id: e.next, fn: fn}
	if all {
		e.all = append(e.all, s)
	} else {
		if e.byKey == nil {
			e.byKey = make(map[EventKind][]subscription)
		}
		e.byKey[kind] = append(e.byKey[kind], s)
	}

	return func() {
		drop := func(x subscription) bool { return x.id == s.id }
		if all {
			e.all = slices.DeleteFunc(e.all, drop)
		} else {
			e.byKey[kind] = slices.DeleteFunc(e.byKey[kind], drop)
		}
	}
}

func (e *emitter) emit(ev Event) {
	// Listeners may unsubscribe while being called.
	for _, s := range slices.Clone(e.byKey[ev.Kind]) {
		s.fn(ev)
	}
	for _, s := range slices.Clone(e.all) {
		s.fn(ev)
	}
}
