// Package render rasterizes derived outlines into alpha masks for
// previews and thumbnails.
//
// The input is the output of the build step: a slice of contours in
// font units, y up. Mask scan-converts them with a CPU rasterizer
// under the non-zero winding rule, so stroke rings with reversed
// inner contours produce holes. Fit computes the affine transform
// that maps font units onto a target image, flipping y so ascenders
// come out on top.
//
//	outline := ed.Outline()
//	m := render.Fit(outline, 256, 256, 16)
//	mask := render.Mask(outline, 256, 256, m)
package render
