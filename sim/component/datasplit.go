package component

import (
	"github.com/celskeggs/uartsim/sim/model"
)

type teeSinkHelper struct {
	sink    model.DataSinkBytes
	pending []byte
}

type teeDataSinks struct {
	*EventDispatcher
	sinks []*teeSinkHelper
}

// TeeDataSinks duplicates every written byte to each of the given sinks. It only reports itself
// writable when none of the sinks are still catching up on earlier data.
func TeeDataSinks(ctx model.SimContext, sinks ...model.DataSinkBytes) model.DataSinkBytes {
	tds := &teeDataSinks{
		EventDispatcher: MakeEventDispatcher(ctx, "sim.component.TeeDataSinks"),
		sinks:           make([]*teeSinkHelper, len(sinks)),
	}
	for i, sink := range sinks {
		tds.sinks[i] = &teeSinkHelper{
			sink:    sink,
			pending: nil,
		}
		i := i
		sink.Subscribe(func() {
			tds.onEvent(i)
		})
	}
	return tds
}

func (t *teeDataSinks) areAllReady() bool {
	for _, ts := range t.sinks {
		if len(ts.pending) > 0 {
			return false
		}
	}
	return true
}

func (t *teeDataSinks) TryWrite(from []byte) int {
	if !t.areAllReady() {
		return 0
	}
	for _, ts := range t.sinks {
		if len(ts.pending) > 0 {
			panic("not consistent with areAllReady check")
		}
		count := ts.sink.TryWrite(from)
		if count < len(from) {
			ts.pending = append([]byte{}, from[count:]...)
		}
	}
	return len(from)
}

func (t *teeDataSinks) onEvent(i int) {
	ts := t.sinks[i]
	if len(ts.pending) > 0 {
		count := ts.sink.TryWrite(ts.pending)
		ts.pending = ts.pending[count:]
		if len(ts.pending) == 0 && t.areAllReady() {
			t.DispatchLater()
		}
	}
}
