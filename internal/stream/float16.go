package stream

import "math"

// EncodeFloat16 converts float32 values into IEEE 754-2008 binary16 bits
// stored in dst. dst must be at least len(src).
func EncodeFloat16(dst []uint16, src []float32) {
	for i, v := range src {
		dst[i] = float32ToFloat16Bits(v)
	}
}

// DecodeFloat16 expands binary16 data into float32 values.
// dst must be at least len(src).
func DecodeFloat16(dst []float32, src []uint16) {
	for i, v := range src {
		dst[i] = float16BitsToFloat32(v)
	}
}

func float32ToFloat16Bits(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16((bits >> 16) & 0x8000)
	exp := int((bits >> 23) & 0xff)
	mant := bits & 0x7fffff

	switch exp {
	case 0xff:
		if mant == 0 {
			return sign | 0x7c00
		}
		// keep NaN a NaN
		mant >>= 13
		if mant == 0 {
			mant = 1
		}
		return sign | 0x7c00 | uint16(mant)
	case 0:
		if mant == 0 {
			return sign
		}
	}

	half := exp - 127 + 15
	if half >= 0x1f {
		return sign | 0x7c00
	}
	if half <= 0 {
		if half < -10 {
			return sign
		}
		mant |= 0x800000
		mant >>= uint(1 - half)
		mant += 0x1000
		return sign | uint16(mant>>13)
	}

	mant += 0x1000
	if mant&0x800000 != 0 {
		mant = 0
		half++
		if half >= 0x1f {
			return sign | 0x7c00
		}
	}
	return sign | uint16(half<<10) | uint16(mant>>13)
}

func float16BitsToFloat32(h uint16) float32 {
	sign := uint32(h>>15) << 31
	exp := int((h >> 10) & 0x1f)
	mant := uint32(h & 0x3ff)

	switch exp {
	case 0:
		if mant == 0 {
			return math.Float32frombits(sign)
		}
		exp = -14
		for mant&0x400 == 0 {
			mant <<= 1
			exp--
		}
		mant &= 0x3ff
		return math.Float32frombits(sign | uint32((exp+127)<<23) | (mant << 13))
	case 0x1f:
		bits := sign | 0x7f800000 | (mant << 13)
		if mant != 0 {
			bits |= 1
		}
		return math.Float32frombits(bits)
	default:
		return math.Float32frombits(sign | uint32((exp-15+127)<<23) | (mant << 13))
	}
}
