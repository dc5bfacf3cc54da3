package math

import "testing"

func TestExtentsFromPositions(t *testing.T) {
	tcs := []struct {
		name      string
		positions []float32
		want      Extents3D
		empty     bool
	}{
		{name: "nil", positions: nil, empty: true},
		{name: "partial triple", positions: []float32{1, 2}, empty: true},
		{
			name:      "single point",
			positions: []float32{1, 2, 3},
			want:      Extents3D{Min: NewVec3(1, 2, 3), Max: NewVec3(1, 2, 3)},
		},
		{
			name:      "trailing partial ignored",
			positions: []float32{0, 0, 0, -1, 5, 2, 100, 100},
			want:      Extents3D{Min: NewVec3(-1, 0, 0), Max: NewVec3(0, 5, 2)},
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtentsFromPositions(tc.positions)
			if tc.empty {
				if !got.IsEmpty() {
					t.Fatalf("extents=%+v; want empty", got)
				}
				return
			}
			if got != tc.want {
				t.Fatalf("extents=%+v; want %+v", got, tc.want)
			}
		})
	}
}

func TestExtentsUnion(t *testing.T) {
	a := Extents3D{Min: NewVec3(0, 0, 0), Max: NewVec3(1, 1, 1)}
	b := Extents3D{Min: NewVec3(-2, 0.5, 0), Max: NewVec3(0, 3, 0.5)}

	got := ExtentsUnion(a, NewEmptyExtents(), b)
	want := Extents3D{Min: NewVec3(-2, 0, 0), Max: NewVec3(1, 3, 1)}
	if got != want {
		t.Fatalf("union=%+v; want %+v", got, want)
	}
	if !ExtentsUnion().IsEmpty() {
		t.Fatal("union of nothing is not empty")
	}
	if r := got.Range(); r != NewVec3(3, 3, 1) {
		t.Fatalf("range=%+v", r)
	}
	if c := got.Center(); c != NewVec3(-0.5, 1.5, 0.5) {
		t.Fatalf("center=%+v", c)
	}
}
