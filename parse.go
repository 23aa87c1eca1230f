package mandel

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrParse = errors.New("parse error")

// ParsePair parses s of the form <left><sep><right>, like "400x600" or "1.0,0.5".
// Both halves must parse completely.
func ParsePair[T int | float64](s string, sep byte) (T, T, error) {
	i := strings.IndexByte(s, sep)
	if i < 0 {
		return 0, 0, fmt.Errorf("%w: %q has no %q separator", ErrParse, s, sep)
	}
	l, err := parseNumber[T](s[:i])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: left of %q: %v", ErrParse, s, err)
	}
	r, err := parseNumber[T](s[i+1:])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: right of %q: %v", ErrParse, s, err)
	}
	return l, r, nil
}

func parseNumber[T int | float64](s string) (T, error) {
	var zero T
	switch any(zero).(type) {
	case int:
		n, err := strconv.Atoi(s)
		return T(n), err
	default:
		f, err := strconv.ParseFloat(s, 64)
		return T(f), err
	}
}

// ParseComplex parses "re,im" as a finite complex number
func ParseComplex(s string) (complex128, error) {
	re, im, err := ParsePair[float64](s, ',')
	if err != nil {
		return 0, err
	}
	if math.IsInf(re, 0) || math.IsNaN(re) || math.IsInf(im, 0) || math.IsNaN(im) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrParse, s)
	}
	return complex(re, im), nil
}

// ParseBounds parses "WIDTHxHEIGHT" with both sizes positive
func ParseBounds(s string) (Bounds, error) {
	w, h, err := ParsePair[int](s, 'x')
	if err != nil {
		return Bounds{}, err
	}
	b := Bounds{Width: w, Height: h}
	if !b.Valid() {
		return Bounds{}, fmt.Errorf("%w: image size %s must be positive", ErrParse, b)
	}
	return b, nil
}
