package uart

// TickInput carries everything the outside world presents to the transceiver on one tick of
// the reference clock.
type TickInput struct {
	Reset   bool
	TxData  byte
	TxValid bool
	RxLine  bool
	RxReady bool
}

// TickOutput carries everything the transceiver presents back on the same tick.
type TickOutput struct {
	TxReady     bool
	TxAccepted  bool
	TxLine      bool
	Rx          ReceiveResult
	RxCompleted bool
}

// Transceiver is the full-duplex core: one transmit coordinator and one receive coordinator
// advancing in lock-step on a shared reference clock, each owning disjoint state. The only
// coupling between directions is whatever line wiring the caller provides.
type Transceiver struct {
	cfg Config
	tx  *TxCoordinator
	rx  *RxCoordinator
}

func MakeTransceiver(cfg Config) (*Transceiver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Transceiver{
		cfg: cfg,
		tx:  MakeTxCoordinator(cfg),
		rx:  MakeRxCoordinator(cfg),
	}, nil
}

func (tr *Transceiver) Config() Config {
	return tr.cfg
}

// Step advances the whole transceiver by one tick. Reset applies atomically before any
// other update in the tick; while it is held, input-ready is deasserted and the line idles
// high.
func (tr *Transceiver) Step(in TickInput) TickOutput {
	if in.Reset {
		tr.tx.Reset()
		tr.rx.Reset()
		return TickOutput{
			TxReady: false,
			TxLine:  true,
		}
	}

	accepted := tr.tx.Step(in.TxData, in.TxValid)
	tr.rx.Step(in.RxLine, in.RxReady)

	return TickOutput{
		TxReady:     tr.tx.Ready(),
		TxAccepted:  accepted,
		TxLine:      tr.tx.Line(),
		Rx:          tr.rx.Result(),
		RxCompleted: tr.rx.Completed(),
	}
}
