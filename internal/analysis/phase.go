package analysis

import (
	"math"
	"strings"
)

// PhaseToASCII renders an x–v phase portrait as ASCII art. The bounds are
// taken from the data; degenerate (constant) series collapse to a point at
// the center.
func PhaseToASCII(xs, vs []float64, width, height int) string {
	n := len(xs)
	if n == 0 || len(vs) != n || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := xs[0], xs[0]
	minV, maxV := vs[0], vs[0]
	for i := 1; i < n; i++ {
		minX = math.Min(minX, xs[i])
		maxX = math.Max(maxX, xs[i])
		minV = math.Min(minV, vs[i])
		maxV = math.Max(maxV, vs[i])
	}

	spanX := maxX - minX
	spanV := maxV - minV

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	for i := 0; i < n; i++ {
		col := width / 2
		row := height / 2
		if spanX > 0 {
			col = int((xs[i] - minX) / spanX * float64(width-1))
		}
		if spanV > 0 {
			row = int((maxV - vs[i]) / spanV * float64(height-1))
		}
		grid[row][col] = '*'
	}

	// Mark the start point so orbit direction is readable.
	startCol := width / 2
	startRow := height / 2
	if spanX > 0 {
		startCol = int((xs[0] - minX) / spanX * float64(width-1))
	}
	if spanV > 0 {
		startRow = int((maxV - vs[0]) / spanV * float64(height-1))
	}
	grid[startRow][startCol] = 'S'

	var b strings.Builder
	for _, row := range grid {
		b.WriteString(string(row))
		b.WriteString("\n")
	}
	return b.String()
}
