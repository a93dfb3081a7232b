package uart

// ReceiveResult is the single latched slot for the most recently completed frame. The error
// flags are meaningful only while Valid holds. If a new frame completes before the previous
// result is consumed, the slot is silently overwritten; there is no queue or overflow flag.
type ReceiveResult struct {
	Data        byte
	Valid       bool
	FrameError  bool
	ParityError bool
}

type rxState uint8

const (
	rxIdle rxState = iota
	rxCapturing
)

// RxCoordinator owns the receive half of the transceiver: the start-edge detector, the
// deserializer, the receive symbol-rate source, and the one-slot result latch.
type RxCoordinator struct {
	cfg      Config
	gen      *BaudGen
	des      ShiftIn
	state    rxState
	prevLine bool

	result    ReceiveResult
	completed bool
}

func MakeRxCoordinator(cfg Config) *RxCoordinator {
	return &RxCoordinator{
		cfg:      cfg,
		gen:      MakeBaudGen(cfg.TicksPerSymbol()),
		state:    rxIdle,
		prevLine: true,
	}
}

// Step advances one tick. Consumption is observed first, so a completion on the same tick
// leaves the fresh result latched rather than an empty slot. Capture is processed before
// edge detection so that a frame completing this tick re-arms the detector in time to catch
// a start edge on this very tick.
func (rx *RxCoordinator) Step(line bool, consumerReady bool) {
	rx.completed = false
	if consumerReady && rx.result.Valid {
		rx.result = ReceiveResult{}
	}

	if rx.state == rxCapturing && rx.gen.Step() {
		rx.sample(line)
	}

	if rx.state == rxIdle && rx.prevLine && !line {
		// start edge: re-phase the receive symbol-rate source to the edge rather than
		// letting it free-run, and stop watching for edges until the frame completes
		rx.state = rxCapturing
		rx.des.Clear()
		offset := rx.cfg.sampleOffset()
		if offset == 0 {
			// a one-tick symbol period samples the start bit at the edge itself
			rx.gen.Restart(rx.cfg.TicksPerSymbol())
			rx.sample(line)
		} else {
			rx.gen.Restart(offset)
		}
	}

	rx.prevLine = line
}

func (rx *RxCoordinator) sample(line bool) {
	rx.des.Shift(line)
	if uint(rx.des.BitsDone()) == rx.cfg.FrameBits() {
		data, frameErr, parityErr := DecodeFrame(rx.des.Bits(), rx.cfg)
		rx.result = ReceiveResult{
			Data:        data,
			Valid:       true,
			FrameError:  frameErr,
			ParityError: parityErr,
		}
		// re-armed the same tick, so the next start edge is caught without delay
		rx.state = rxIdle
		rx.completed = true
	}
}

func (rx *RxCoordinator) Result() ReceiveResult {
	return rx.result
}

// Completed reports whether a frame finished capture on the most recent tick.
func (rx *RxCoordinator) Completed() bool {
	return rx.completed
}

func (rx *RxCoordinator) Reset() {
	rx.state = rxIdle
	rx.prevLine = true
	rx.des.Clear()
	rx.gen.Restart(0)
	rx.result = ReceiveResult{}
	rx.completed = false
}
