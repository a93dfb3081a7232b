package uart

import (
	"fmt"
	"time"

	"github.com/celskeggs/uartsim/sim/component"
	"github.com/celskeggs/uartsim/sim/model"
)

// LineFunc samples the receive line level at the current tick.
type LineFunc func() bool

// Link drives a Transceiver from the timer-driven simulation kernel, one timer event per
// reference clock tick. It adapts the tick-level valid/ready handshakes to Try-style byte
// streams: one byte at a time is pulled from the source and held stable until the
// transceiver accepts it, and each latched receive result is offered to the sink, with
// consumer-ready derived from a successful write.
type Link struct {
	ctx    model.SimContext
	core   *Transceiver
	source model.DataSourceBytes
	sink   model.DataSinkBytes
	line   LineFunc
	trace  *component.TraceRecorder

	tickPeriod   time.Duration
	pending      byte
	pendingValid bool
	consumed     bool
	txLine       bool
	resetPending bool
}

func makeLink(ctx model.SimContext, cfg Config, source model.DataSourceBytes, sink model.DataSinkBytes, trace *component.TraceRecorder) (*Link, error) {
	core, err := MakeTransceiver(cfg)
	if err != nil {
		return nil, err
	}
	period := time.Second / time.Duration(cfg.ClockHz)
	if uint64(period.Nanoseconds())*cfg.ClockHz != uint64(time.Second.Nanoseconds()) {
		return nil, fmt.Errorf("reference clock %d Hz does not divide one second into whole ticks", cfg.ClockHz)
	}
	if trace == nil {
		trace = component.MakeNullTraceRecorder()
	}
	return &Link{
		ctx:        ctx,
		core:       core,
		source:     source,
		sink:       sink,
		trace:      trace,
		tickPeriod: period,
		txLine:     true,
	}, nil
}

// AttachLoopback wires a single transceiver's transmit line straight back into its own
// receiver: every byte written to source eventually comes back out through sink.
func AttachLoopback(ctx model.SimContext, cfg Config, source model.DataSourceBytes, sink model.DataSinkBytes, trace *component.TraceRecorder) (*Link, error) {
	l, err := makeLink(ctx, cfg, source, sink, trace)
	if err != nil {
		return nil, err
	}
	l.line = l.TxLine
	l.start()
	return l, nil
}

// AttachPair cross-wires two transceivers into a full-duplex point-to-point line. Line
// levels propagate at tick granularity.
func AttachPair(ctx model.SimContext, cfg Config,
	leftSource model.DataSourceBytes, leftSink model.DataSinkBytes,
	rightSource model.DataSourceBytes, rightSink model.DataSinkBytes,
	trace *component.TraceRecorder) (*Link, *Link, error) {
	left, err := makeLink(ctx, cfg, leftSource, leftSink, trace)
	if err != nil {
		return nil, nil, err
	}
	right, err := makeLink(ctx, cfg, rightSource, rightSink, component.MakeNullTraceRecorder())
	if err != nil {
		return nil, nil, err
	}
	left.line = right.TxLine
	right.line = left.TxLine
	left.start()
	right.start()
	return left, right, nil
}

func (l *Link) start() {
	l.ctx.Later("sim.uart.Link/Tick", l.tick)
}

// TxLine is the current transmit line level, for wiring into a peer.
func (l *Link) TxLine() bool {
	return l.txLine
}

// RequestReset asserts the synchronous reset input for the next tick.
func (l *Link) RequestReset() {
	l.resetPending = true
}

func (l *Link) tick() {
	l.ctx.SetTimer(l.ctx.Now().Add(l.tickPeriod), "sim.uart.Link/Tick", l.tick)

	if !l.pendingValid {
		var buf [1]byte
		if l.source.TryRead(buf[:]) == 1 {
			l.pending = buf[0]
			l.pendingValid = true
		}
	}

	in := TickInput{
		Reset:   l.resetPending,
		TxData:  l.pending,
		TxValid: l.pendingValid,
		RxLine:  l.line(),
		RxReady: l.consumed,
	}
	l.resetPending = false
	l.consumed = false

	out := l.core.Step(in)

	// a pending byte survives reset: the adapter is the producer, and a producer holds
	// its data stable until acceptance
	if out.TxAccepted {
		l.pendingValid = false
		l.trace.RecordBytes("tx/accept", []byte{in.TxData})
	}
	if out.TxLine != l.txLine {
		if out.TxLine {
			l.trace.Record("tx/line", "1")
		} else {
			l.trace.Record("tx/line", "0")
		}
		l.txLine = out.TxLine
	}
	if out.RxCompleted {
		l.trace.RecordBytes("rx/frame", []byte{out.Rx.Data})
		if out.Rx.FrameError {
			l.trace.Record("rx/frame_error", "1")
		}
		if out.Rx.ParityError {
			l.trace.Record("rx/parity_error", "1")
		}
	}
	if out.Rx.Valid {
		var buf [1]byte
		buf[0] = out.Rx.Data
		if l.sink.TryWrite(buf[:]) == 1 {
			// consumption is observed by the core on the next tick
			l.consumed = true
		}
	}
}
