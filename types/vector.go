package types

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/math/f64"
)

// Vec3 holds a color or position triple. Values are kept in double precision
// so that they are written back exactly as they were configured.
type Vec3 f64.Vec3

// Define a 3 component vector.
func XYZ(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Multiply a 3 component vector with a scalar.
func (v Vec3) Mul(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Format the vector as space separated numbers, e.g. "1.0 0.5 0.0".
func (v Vec3) String() string {
	return strings.Join([]string{FormatFloat(v[0]), FormatFloat(v[1]), FormatFloat(v[2])}, " ")
}

// FormatFloat renders a number using the shortest representation that
// round-trips. Integral values keep a trailing ".0" and very large or very
// small magnitudes switch to exponent notation.
func FormatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	out := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(out, '.') {
		out += ".0"
	}
	return out
}
