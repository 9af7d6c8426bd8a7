package pattern

import "fmt"

// Logical grid of the pattern.
const (
	Cols = 3
	Rows = 5
)

// Density is the sub-grid resolution of one logical cell.
type Density struct {
	GX int // sub-columns
	GY int // sub-rows
}

var (
	sparse = Density{GX: 2, GY: 3}
	dense  = Density{GX: 6, GY: 6}
	square = Density{GX: 2, GY: 2}
)

// densityTable is indexed by [row-1][col].
// Odd rows: sparse, dense, sparse. Even rows: dense, square, dense.
var densityTable = [Rows][Cols]Density{
	{sparse, dense, sparse},
	{dense, square, dense},
	{sparse, dense, sparse},
	{dense, square, dense},
	{sparse, dense, sparse},
}

// DensityFor returns the sub-grid of the cell at 1-based row and 0-based
// column. It panics if the address lies outside the grid.
func DensityFor(row1Based, col0Based int) Density {
	if row1Based < 1 || row1Based > Rows || col0Based < 0 || col0Based >= Cols {
		panic(fmt.Sprintf("pattern: cell (%d,%d) outside %dx%d grid", row1Based, col0Based, Rows, Cols))
	}
	return densityTable[row1Based-1][col0Based]
}
