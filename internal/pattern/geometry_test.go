package pattern

import "testing"

func TestDensityForTable(t *testing.T) {
	want := map[[2]int]Density{
		{1, 0}: {2, 3}, {1, 1}: {6, 6}, {1, 2}: {2, 3},
		{2, 0}: {6, 6}, {2, 1}: {2, 2}, {2, 2}: {6, 6},
		{3, 0}: {2, 3}, {3, 1}: {6, 6}, {3, 2}: {2, 3},
		{4, 0}: {6, 6}, {4, 1}: {2, 2}, {4, 2}: {6, 6},
		{5, 0}: {2, 3}, {5, 1}: {6, 6}, {5, 2}: {2, 3},
	}
	if len(want) != Rows*Cols {
		t.Fatalf("table has %d entries, want %d", len(want), Rows*Cols)
	}
	for row := 1; row <= Rows; row++ {
		for col := 0; col < Cols; col++ {
			got := DensityFor(row, col)
			if got != want[[2]int{row, col}] {
				t.Errorf("DensityFor(%d,%d) = %+v, want %+v", row, col, got, want[[2]int{row, col}])
			}
		}
	}
}

func TestDensityForMatchesParityRule(t *testing.T) {
	for row := 1; row <= Rows; row++ {
		for col := 0; col < Cols; col++ {
			var want Density
			switch {
			case row%2 == 1 && col != 1:
				want = Density{GX: 2, GY: 3}
			case row%2 == 1:
				want = Density{GX: 6, GY: 6}
			case col == 1:
				want = Density{GX: 2, GY: 2}
			default:
				want = Density{GX: 6, GY: 6}
			}
			if got := DensityFor(row, col); got != want {
				t.Errorf("DensityFor(%d,%d) = %+v, want %+v", row, col, got, want)
			}
		}
	}
}

func TestDensityForKnownCells(t *testing.T) {
	if got := DensityFor(1, 0); got != (Density{GX: 2, GY: 3}) {
		t.Errorf("DensityFor(1,0) = %+v", got)
	}
	if got := DensityFor(2, 1); got != (Density{GX: 2, GY: 2}) {
		t.Errorf("DensityFor(2,1) = %+v", got)
	}
	if got := DensityFor(2, 0); got != (Density{GX: 6, GY: 6}) {
		t.Errorf("DensityFor(2,0) = %+v", got)
	}
}

func TestDensityForOutOfRangePanics(t *testing.T) {
	for _, addr := range [][2]int{{0, 0}, {6, 0}, {1, -1}, {1, 3}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("DensityFor(%d,%d) did not panic", addr[0], addr[1])
				}
			}()
			DensityFor(addr[0], addr[1])
		}()
	}
}
