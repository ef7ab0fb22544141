// Package arith holds the number theory shared by every topic engine.
package arith

import "fmt"

// GCD returns the greatest common divisor of |a| and |b|.
// GCD(0, 0) is 0; engines never call it with both zero.
func GCD(a, b int) int {
	a, b = Abs(a), Abs(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of a and b.
func LCM(a, b int) int {
	return Abs(a*b) / GCD(a, b)
}

// Abs returns the absolute value of n.
func Abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Fraction is a numerator/denominator pair. D is never zero.
type Fraction struct {
	N int `json:"n"`
	D int `json:"d"`
}

// Simplify divides n and d by their greatest common divisor.
// d must be non-zero.
func Simplify(n, d int) Fraction {
	g := GCD(n, d)
	return Fraction{N: n / g, D: d / g}
}

// Simplify returns f in lowest terms.
func (f Fraction) Simplify() Fraction {
	return Simplify(f.N, f.D)
}

// IsReduced reports whether numerator and denominator share no factor above 1.
func (f Fraction) IsReduced() bool {
	return GCD(f.N, f.D) == 1
}

// Value returns the fraction as a float.
func (f Fraction) Value() float64 {
	return float64(f.N) / float64(f.D)
}

// Scale multiplies numerator and denominator by k.
func (f Fraction) Scale(k int) Fraction {
	return Fraction{N: f.N * k, D: f.D * k}
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.N, f.D)
}
