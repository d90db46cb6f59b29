package structfile

import "math"

// Compact-float parameter defaults. mantissaBits is the number of the
// byte's bits holding the mantissa (the rest hold the exponent); zeroExp
// is the zero point of the exponent.
const (
	DefaultMantissaBits = 5
	DefaultZeroExp      = 2
)

// FloatToByte compresses a float32 into one byte by truncating the IEEE
// mantissa to mantissaBits and re-biasing the exponent around zeroExp.
// The compression is lossy, but any byte it produces decodes back to a
// value that re-encodes to the same byte.
//
// Out-of-range inputs saturate instead of wrapping: negative values and
// zero encode as 0x00, positive underflow as 0x01 (the smallest non-zero
// encoding), overflow as 0xFF.
func FloatToByte(v float32, mantissaBits, zeroExp int) byte {
	fzero := int32(63-zeroExp) << mantissaBits
	bits := int32(math.Float32bits(v))
	small := bits >> (24 - mantissaBits)

	if small < fzero {
		if bits <= 0 {
			return 0
		}
		return 1
	}
	if small >= fzero+0x100 {
		return 0xFF
	}
	return byte(small - fzero)
}

// ByteToFloat expands a byte written by FloatToByte back into a float32.
// It must be called with the same parameters the encoder used; they are
// not stored in the file.
func ByteToFloat(b byte, mantissaBits, zeroExp int) float32 {
	if b == 0 {
		return 0
	}
	bits := int32(b) << (24 - mantissaBits)
	bits += int32(63-zeroExp) << 24
	return math.Float32frombits(uint32(bits))
}
