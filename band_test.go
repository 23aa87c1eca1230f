package mandel

import (
	"errors"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestRowsPerBand(t *testing.T) {
	tests := []struct {
		height, workers, want int
	}{
		{10, 1, 10},
		{10, 2, 5},
		{10, 3, 4},
		{10, 4, 3},
		{10, 10, 1},
		{10, 16, 1},
		{1125, 8, 141},
		{1, 0, 1},
	}
	for _, tc := range tests {
		if got := RowsPerBand(tc.height, tc.workers); got != tc.want {
			t.Errorf("RowsPerBand(%d, %d) = %d, want %d", tc.height, tc.workers, got, tc.want)
		}
	}
}

func TestPartitionExact(t *testing.T) {
	for _, b := range []Bounds{{1, 1}, {3, 1}, {1, 7}, {64, 48}, {100, 100}, {1500, 1125}, {5, 97}} {
		for workers := 1; workers <= 33; workers++ {
			bands, err := Partition(b, DefaultViewport, workers)
			if err != nil {
				t.Fatalf("Partition(%s, %d): %v", b, workers, err)
			}
			if len(bands) > workers {
				t.Errorf("Partition(%s, %d) made %d bands", b, workers, len(bands))
			}

			owner := make([]int, b.Height)
			for i := range owner {
				owner[i] = -1
			}
			for _, band := range bands {
				for row := band.Top; row < band.Top+band.Height; row++ {
					if owner[row] != -1 {
						t.Fatalf("Partition(%s, %d): row %d in bands %d and %d", b, workers, row, owner[row], band.Index)
					}
					owner[row] = band.Index
				}
			}
			for row, o := range owner {
				if o == -1 {
					t.Fatalf("Partition(%s, %d): row %d not covered", b, workers, row)
				}
			}
		}
	}
}

func TestPartitionLayout(t *testing.T) {
	b := Bounds{4, 10}
	v := Viewport{UpperLeft: complex(-1, 1), LowerRight: complex(1, -1)}

	bands, err := Partition(b, v, 4)
	if err != nil {
		t.Fatal(err)
	}

	want := []Band{
		{Index: 0, Top: 0, Height: 3, Offset: 0, Len: 12},
		{Index: 1, Top: 3, Height: 3, Offset: 12, Len: 12},
		{Index: 2, Top: 6, Height: 3, Offset: 24, Len: 12},
		{Index: 3, Top: 9, Height: 1, Offset: 36, Len: 4},
	}
	if diff := cmp.Diff(want, bands, cmpopts.IgnoreFields(Band{}, "Viewport")); diff != "" {
		t.Errorf("Partition mismatch (-want +got):\n%s", diff)
	}

	for _, band := range bands {
		ul := PixelToPoint(b, image.Pt(0, band.Top), v)
		lr := PixelToPoint(b, image.Pt(b.Width, band.Top+band.Height), v)
		if band.Viewport.UpperLeft != ul || band.Viewport.LowerRight != lr {
			t.Errorf("%s covers %s, want %v %v", band, band.Viewport, ul, lr)
		}
	}
	if bands[0].Viewport.UpperLeft != v.UpperLeft {
		t.Errorf("first band starts at %v, want %v", bands[0].Viewport.UpperLeft, v.UpperLeft)
	}
	if last := bands[len(bands)-1].Viewport.LowerRight; !closeTo(last, v.LowerRight) {
		t.Errorf("last band ends at %v, want %v", last, v.LowerRight)
	}
}

func TestCheckPartition(t *testing.T) {
	b := Bounds{2, 6}
	tests := []struct {
		name  string
		bands []Band
		ok    bool
	}{
		{"exact", []Band{{Top: 0, Height: 3, Offset: 0, Len: 6}, {Top: 3, Height: 3, Offset: 6, Len: 6}}, true},
		{"gap", []Band{{Top: 0, Height: 2, Offset: 0, Len: 4}, {Top: 3, Height: 3, Offset: 6, Len: 6}}, false},
		{"overlap", []Band{{Top: 0, Height: 4, Offset: 0, Len: 8}, {Top: 3, Height: 3, Offset: 6, Len: 6}}, false},
		{"short", []Band{{Top: 0, Height: 5, Offset: 0, Len: 10}}, false},
		{"empty band", []Band{{Top: 0, Height: 6, Offset: 0, Len: 12}, {Top: 6, Height: 0, Offset: 12}}, false},
		{"bad offset", []Band{{Top: 0, Height: 3, Offset: 0, Len: 6}, {Top: 3, Height: 3, Offset: 5, Len: 6}}, false},
	}
	for _, tc := range tests {
		err := checkPartition(b, tc.bands)
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, ErrBadPartition) {
			t.Errorf("%s: got %v, want ErrBadPartition", tc.name, err)
		}
	}
}
