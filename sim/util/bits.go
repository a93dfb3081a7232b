package util

import "strings"

const BitsPerByte = 8

// BitsToByte packs up to eight bits, least significant first, into a byte.
func BitsToByte(bits []bool) byte {
	if len(bits) > BitsPerByte {
		panic("invalid # of bits")
	}
	var output byte
	for i, bit := range bits {
		if bit {
			output |= 1 << i
		}
	}
	return output
}

// ByteToBits unpacks the low len(into) bits of a byte, least significant first.
func ByteToBits(b byte, into []bool) {
	if len(into) > BitsPerByte {
		panic("invalid # of bits")
	}
	for i := range into {
		into[i] = (b & (1 << i)) != 0
	}
}

func BytesToBits(bytes []byte) []bool {
	output := make([]bool, len(bytes)*BitsPerByte)
	for i, b := range bytes {
		ByteToBits(b, output[i*BitsPerByte:(i+1)*BitsPerByte])
	}
	return output
}

// OnesCount reports the number of true bits, for parity computation.
func OnesCount(bits []bool) int {
	count := 0
	for _, bit := range bits {
		if bit {
			count++
		}
	}
	return count
}

func StringBits(data []bool) string {
	var midbits []string
	for _, bit := range data {
		if bit {
			midbits = append(midbits, "1")
		} else {
			midbits = append(midbits, "0")
		}
	}
	return strings.Join(midbits, "")
}
