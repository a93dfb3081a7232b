package uart

// BaudGen is the symbol-rate enable source for one direction of the line: it emits a
// one-tick pulse once per symbol period. A fresh generator is in immediate-first-pulse
// mode (the very first Step pulses); Restart re-phases it, which is how the receiver
// aligns sampling to a start edge. Each direction owns an independent instance, so
// restarting one never disturbs the other.
type BaudGen struct {
	interval uint64
	count    uint64
}

func MakeBaudGen(interval uint64) *BaudGen {
	if interval == 0 {
		panic("symbol period must be at least one tick")
	}
	return &BaudGen{
		interval: interval,
		count:    0,
	}
}

// Restart clears the generator and schedules the next pulse firstAfter ticks from now,
// free-running at the symbol period from then on. Restart(0) pulses on the next Step.
func (g *BaudGen) Restart(firstAfter uint64) {
	g.count = firstAfter
}

// Step advances one reference clock tick and reports whether the enable pulses this tick.
func (g *BaudGen) Step() bool {
	if g.count > 0 {
		g.count -= 1
	}
	if g.count == 0 {
		g.count = g.interval
		return true
	}
	return false
}
