package uart

import (
	"github.com/celskeggs/uartsim/sim/util"
)

// parityBit computes the parity bit that accompanies the given data bits.
func parityBit(mode Parity, dataBits []bool) bool {
	switch mode {
	case ParityOdd:
		return util.OnesCount(dataBits)%2 == 0
	case ParityEven:
		return util.OnesCount(dataBits)%2 == 1
	case ParityMark:
		return true
	case ParitySpace:
		return false
	default:
		panic("no parity bit for parity mode None")
	}
}

// EncodeFrame lays out one serial frame for a data byte: a low start bit, the low DataBits
// bits of data least-significant-first, the parity bit if one is configured, and StopBits
// high stop bits. The config must already have been validated; EncodeFrame never fails.
func EncodeFrame(data byte, cfg Config) []bool {
	bits := make([]bool, 0, cfg.FrameBits())
	bits = append(bits, false)

	dataBits := make([]bool, cfg.DataBits)
	util.ByteToBits(data, dataBits)
	bits = append(bits, dataBits...)

	if cfg.Parity != ParityNone {
		bits = append(bits, parityBit(cfg.Parity, dataBits))
	}
	for i := uint(0); i < cfg.StopBits; i++ {
		bits = append(bits, true)
	}
	return bits
}

// DecodeFrame extracts the data byte and error flags from a complete sampled frame.
// frameErr reports a low sample in the first stop bit position; parityErr reports a received
// parity bit that disagrees with the recomputed one. Both flags are advisory: the data byte
// is returned regardless.
func DecodeFrame(bits []bool, cfg Config) (data byte, frameErr bool, parityErr bool) {
	if uint(len(bits)) != cfg.FrameBits() {
		panic("sampled frame length does not match configuration")
	}
	dataBits := bits[1 : 1+cfg.DataBits]
	data = util.BitsToByte(dataBits)

	stopIndex := 1 + cfg.DataBits
	if cfg.Parity != ParityNone {
		parityErr = bits[stopIndex] != parityBit(cfg.Parity, dataBits)
		stopIndex += 1
	}
	frameErr = !bits[stopIndex]
	return data, frameErr, parityErr
}
