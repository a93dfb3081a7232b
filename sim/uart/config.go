package uart

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

type Parity uint8

const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
	ParityMark
	ParitySpace
)

func (p Parity) String() string {
	switch p {
	case ParityNone:
		return "None"
	case ParityOdd:
		return "Odd"
	case ParityEven:
		return "Even"
	case ParityMark:
		return "Mark"
	case ParitySpace:
		return "Space"
	default:
		panic(fmt.Sprintf("invalid parity mode: %d", uint8(p)))
	}
}

// ParseParity converts a config-file or flag spelling into a parity mode.
func ParseParity(name string) (Parity, error) {
	switch name {
	case "none":
		return ParityNone, nil
	case "odd":
		return ParityOdd, nil
	case "even":
		return ParityEven, nil
	case "mark":
		return ParityMark, nil
	case "space":
		return ParitySpace, nil
	default:
		return ParityNone, fmt.Errorf("unknown parity mode: %q", name)
	}
}

// Config is the construction-time description of one transceiver. It is immutable after
// construction; both directions of the transceiver read it and nothing writes it.
type Config struct {
	ClockHz  uint64 // reference clock rate; one simulation tick per cycle
	BaudRate uint64 // symbol rate on the line
	DataBits uint   // 1 through 8
	Parity   Parity
	StopBits uint   // at least 1
	RxDelay  uint64 // extra ticks past the bit-cell midpoint before each receive sample
	TxDelay  uint64 // extra ticks before the first transmitted bit of each frame
}

// FrameBits is the total length of one serial frame: start bit, data bits, optional parity
// bit, and stop bits.
func (c Config) FrameBits() uint {
	bits := 1 + c.DataBits + c.StopBits
	if c.Parity != ParityNone {
		bits += 1
	}
	return bits
}

// TicksPerSymbol is the (truncated) number of reference clock ticks per line symbol.
func (c Config) TicksPerSymbol() uint64 {
	if c.BaudRate == 0 {
		panic("symbol rate not configured")
	}
	return c.ClockHz / c.BaudRate
}

// sampleOffset is the number of ticks after a start edge at which the receiver takes its
// first sample: the midpoint of the start bit cell, plus the configured skew.
func (c Config) sampleOffset() uint64 {
	return c.TicksPerSymbol()/2 + c.RxDelay
}

// Validate rejects any configuration the sequencers cannot honor. All violations are
// reported together, not just the first.
func (c Config) Validate() (err error) {
	if c.ClockHz == 0 {
		err = multierror.Append(err, fmt.Errorf("reference clock rate must be nonzero"))
	}
	if c.BaudRate == 0 {
		err = multierror.Append(err, fmt.Errorf("symbol rate must be nonzero"))
	} else if c.BaudRate > c.ClockHz {
		err = multierror.Append(err, fmt.Errorf("symbol rate %d exceeds reference clock %d", c.BaudRate, c.ClockHz))
	}
	if c.DataBits < 1 || c.DataBits > 8 {
		err = multierror.Append(err, fmt.Errorf("data bit count %d outside range [1,8]", c.DataBits))
	}
	if c.StopBits < 1 {
		err = multierror.Append(err, fmt.Errorf("at least one stop bit is required"))
	}
	if c.FrameBits() > SequencerCapacity {
		err = multierror.Append(err, fmt.Errorf("frame length %d exceeds sequencer capacity %d", c.FrameBits(), SequencerCapacity))
	}
	if c.ClockHz != 0 && c.BaudRate != 0 && c.BaudRate <= c.ClockHz {
		interval := c.TicksPerSymbol()
		if c.sampleOffset() >= interval {
			err = multierror.Append(err, fmt.Errorf("receive phase delay %d pushes the sample point out of the bit cell", c.RxDelay))
		}
	}
	return err
}
