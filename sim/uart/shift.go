package uart

// SequencerCapacity is the widest frame either bit sequencer can hold.
const SequencerCapacity = 16

// ShiftOut is the serializer: a parallel-load shift register that presents one bit of a
// loaded pattern at a time, advancing under control of the transmit enable pulses. When no
// pattern is in flight it presents the reset pattern, which is all-high (the idle line).
type ShiftOut struct {
	bits   [SequencerCapacity]bool
	length int
	pos    int
}

func (s *ShiftOut) Load(pattern []bool) {
	if len(pattern) > SequencerCapacity {
		panic("pattern exceeds sequencer capacity")
	}
	if s.pos < s.length {
		panic("load while bits remain in flight")
	}
	copy(s.bits[:], pattern)
	s.length = len(pattern)
	s.pos = 0
}

// Shift advances to the next bit of the pattern; one call per enable pulse.
func (s *ShiftOut) Shift() {
	if s.pos >= s.length {
		panic("shift with no bits remaining")
	}
	s.pos += 1
}

// Bit is the level currently presented on the line.
func (s *ShiftOut) Bit() bool {
	if s.pos >= s.length {
		return true
	}
	return s.bits[s.pos]
}

func (s *ShiftOut) BitsRemaining() int {
	return s.length - s.pos
}

func (s *ShiftOut) Reset() {
	s.length = 0
	s.pos = 0
}

// ShiftIn is the deserializer: it accumulates one sampled bit per receive enable pulse into
// a parallel register, reporting how many bits of the current frame have been captured.
type ShiftIn struct {
	bits  [SequencerCapacity]bool
	count int
}

func (s *ShiftIn) Shift(sample bool) {
	if s.count >= SequencerCapacity {
		panic("shift past sequencer capacity")
	}
	s.bits[s.count] = sample
	s.count += 1
}

func (s *ShiftIn) BitsDone() int {
	return s.count
}

func (s *ShiftIn) Bits() []bool {
	return s.bits[:s.count]
}

func (s *ShiftIn) Clear() {
	s.count = 0
}
