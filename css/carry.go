//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package css

// AddCarry is the combining rule. The outgoing carry depends on x and y
// only, never on the incoming carry.
func AddCarry(x, y byte, c bool) (out byte, carry bool) {
	out = x + y + b2u(c)
	carry = uint(x)+uint(y) > 0xff

	return
}

// SubBorrow computes a - b - c, with the borrow set if a < b, or if a == b
// and c is set.
func SubBorrow(a, b byte, c bool) (y byte, borrow bool) {
	y = a - b - b2u(c)
	borrow = a < b || (a == b && c)

	return
}

// Unadd undoes AddCarry: given the output, x and the incoming carry, it
// returns y and the carry AddCarry produced.
//
// The borrow of SubBorrow is not always that carry. When x+y == 0xff and c
// is set the sum wraps to zero without AddCarry raising its carry.
func Unadd(out, x byte, c bool) (y byte, carry bool) {
	y, _ = SubBorrow(out, x, c)
	carry = uint(x)+uint(y) > 0xff

	return
}

func b2u(b bool) byte {
	if b {
		return 1
	}

	return 0
}
