// Package march implements the two marching-squares stages of the contour
// pipeline: sampling a working image into a binary occupancy grid, and
// stamping one of sixteen contour tiles into every grid cell.
//
// Both stages operate on caller-supplied row ranges so that several workers
// can share one image and one grid. A stage writes only inside its range;
// reading cells owned by another range is safe only after every writer of
// the previous stage has finished.
//
// # Configuration index
//
// Every cell (i, j) has four corners. Read clockwise from the top-left,
// their grid values form a 4-bit index:
//
//	k = 8*g[i][j] + 4*g[i][j+1] + 2*g[i+1][j+1] + 1*g[i+1][j]
//
// Index 0 means no corner is foreground and 15 means all are.
package march
