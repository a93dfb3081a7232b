package uart

// TxCoordinator owns the transmit half of the transceiver: the serializer and the transmit
// symbol-rate source. Its contract with producers is the valid/ready handshake: a byte is
// accepted exactly on a tick where both hold, and acceptance loads the serializer in the
// same tick, so transmission is gap-free when bytes are offered back-to-back.
type TxCoordinator struct {
	cfg   Config
	gen   *BaudGen
	ser   ShiftOut
	ready bool
}

func MakeTxCoordinator(cfg Config) *TxCoordinator {
	return &TxCoordinator{
		cfg:   cfg,
		gen:   MakeBaudGen(cfg.TicksPerSymbol()),
		ready: true,
	}
}

// Step advances one tick. Enable pulses are applied to the serializer before readiness is
// evaluated, so readiness reflects the counter value at the tick boundary; the load then
// takes effect atomically within the same tick. That ordering is what lets a new frame
// begin the tick the previous frame's last bit completes, with zero idle ticks.
func (tx *TxCoordinator) Step(data byte, valid bool) (accepted bool) {
	if tx.gen.Step() && tx.ser.BitsRemaining() > 0 {
		tx.ser.Shift()
	}
	tx.ready = tx.ser.BitsRemaining() == 0
	if tx.ready && valid {
		tx.ser.Load(EncodeFrame(data, tx.cfg))
		tx.gen.Restart(tx.cfg.TicksPerSymbol() + tx.cfg.TxDelay)
		accepted = true
	}
	return accepted
}

// Ready reports the input-ready flag as evaluated on the most recent tick. It stays
// asserted indefinitely while idle; a stalled producer is not an error.
func (tx *TxCoordinator) Ready() bool {
	return tx.ready
}

// Line is the transmit line level: the serializer's current bit, or high when idle.
func (tx *TxCoordinator) Line() bool {
	return tx.ser.Bit()
}

func (tx *TxCoordinator) Reset() {
	tx.ser.Reset()
	tx.gen.Restart(0)
	tx.ready = true
}
