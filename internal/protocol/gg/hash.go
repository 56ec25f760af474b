package gg

import "math/bits"

// LoginHash computes the seed-keyed credential hash carried by Login60.
//
// The server announces a random seed in Welcome; the client mixes the
// password bytes with it and sends the result. The server recomputes
// the hash from the stored password and compares. All arithmetic wraps
// around uint32.
func LoginHash(password string, seed uint32) uint32 {
	x, y := uint32(0), seed
	for i := 0; i < len(password); i++ {
		x = (x & 0xFFFFFF00) | uint32(password[i])
		y ^= x
		y += x
		x <<= 8
		y ^= x
		x <<= 8
		y -= x
		x <<= 8
		y ^= x
		y = bits.RotateLeft32(y, int(y&0x1F))
	}
	return y
}
