// Package contour extracts iso-intensity contours from a raster image with
// the marching-squares algorithm and renders them by stamping pre-rendered
// tiles onto the image.
//
// # Overview
//
// The pipeline has three stages, run by a fixed cohort of N goroutines:
//
//  1. Rescale: when the source exceeds the target resolution in either
//     dimension, a bicubic rescale produces a target-sized working image.
//     Otherwise the source itself is the working image.
//  2. Sample: every Step pixels the working image is thresholded against
//     Sigma into a binary grid.
//  3. March: each grid cell's four corners select one of sixteen tiles,
//     which is copied into the working image over the cell.
//
// Each worker owns a disjoint band of rows in every stage. Workers meet at a
// barrier after every stage, so a stage never reads data that the previous
// stage is still writing.
//
// # Quick Start
//
//	src, _ := contour.LoadImage("in.ppm")
//	tiles, _ := contour.LoadTiles("contours", ".ppm")
//
//	res, err := contour.Run(src, tiles, contour.NewConfig(contour.WithWorkers(4)))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = contour.SaveImage(res.Image, "out.ppm")
//
// # Coordinate System
//
// Images are row-major. Row 0 is the top, column 0 the left. Grid cell
// (i, j) covers pixels [i*Step, (i+1)*Step) x [j*Step, (j+1)*Step).
package contour
