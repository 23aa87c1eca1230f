package mandel

import (
	"image"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-12

func closeTo(a, b complex128) bool {
	return scalar.EqualWithinAbsOrRel(real(a), real(b), tol, tol) &&
		scalar.EqualWithinAbsOrRel(imag(a), imag(b), tol, tol)
}

func TestPixelToPoint(t *testing.T) {
	got := PixelToPoint(
		Bounds{100, 100},
		image.Pt(25, 75),
		Viewport{UpperLeft: complex(-1.0, 1.0), LowerRight: complex(1.0, -1.0)},
	)
	if want := complex(-0.5, -0.5); got != want {
		t.Errorf("PixelToPoint = %v, want %v", got, want)
	}
}

func TestPixelToPointCorners(t *testing.T) {
	bounds := []Bounds{{1, 1}, {100, 100}, {1500, 1125}, {7, 3}, {1, 640}}
	viewports := []Viewport{
		DefaultViewport,
		FullSet,
		SpiralMinibrot,
		{UpperLeft: complex(-1, 1), LowerRight: complex(1, -1)},
		{UpperLeft: complex(0.25, 1e-9), LowerRight: complex(0.25+3e-9, -2e-9)},
	}

	for _, b := range bounds {
		for _, v := range viewports {
			if got := PixelToPoint(b, image.Pt(0, 0), v); got != v.UpperLeft {
				t.Errorf("%s %s: (0,0) maps to %v, want %v", b, v, got, v.UpperLeft)
			}
			if got := PixelToPoint(b, image.Pt(b.Width, b.Height), v); !closeTo(got, v.LowerRight) {
				t.Errorf("%s %s: (w,h) maps to %v, want %v", b, v, got, v.LowerRight)
			}
		}
	}
}

func TestPixelToPointOrientation(t *testing.T) {
	b := Bounds{10, 10}
	v := Viewport{UpperLeft: complex(-1, 1), LowerRight: complex(1, -1)}

	top := PixelToPoint(b, image.Pt(5, 0), v)
	bottom := PixelToPoint(b, image.Pt(5, 9), v)
	if imag(top) <= imag(bottom) {
		t.Errorf("imaginary part must decrease downwards, top %v bottom %v", top, bottom)
	}

	left := PixelToPoint(b, image.Pt(0, 5), v)
	right := PixelToPoint(b, image.Pt(9, 5), v)
	if real(left) >= real(right) {
		t.Errorf("real part must increase rightwards, left %v right %v", left, right)
	}
}

func TestRectToViewportFullFrame(t *testing.T) {
	b := Bounds{300, 200}
	for name, v := range Regions {
		got := RectToViewport(b, b.Rect(), v)
		if !closeTo(got.UpperLeft, v.UpperLeft) || !closeTo(got.LowerRight, v.LowerRight) {
			t.Errorf("%s: full frame viewport %s, want %s", name, got, v)
		}
	}
}

func TestViewportValid(t *testing.T) {
	tests := []struct {
		v    Viewport
		want bool
	}{
		{DefaultViewport, true},
		{Viewport{complex(1, 1), complex(-1, -1)}, false},
		{Viewport{complex(-1, -1), complex(1, 1)}, false},
		{Viewport{complex(0, 1), complex(0, -1)}, false},
		{Viewport{complex(-1, 0), complex(1, 0)}, false},
	}
	for _, tc := range tests {
		if got := tc.v.Valid(); got != tc.want {
			t.Errorf("%s Valid() = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestRegionsValid(t *testing.T) {
	for _, name := range RegionNames() {
		if !Regions[name].Valid() {
			t.Errorf("region %q is not a valid viewport: %s", name, Regions[name])
		}
	}
}
