// Package cube reads and writes the text ".cube" LUT format used by DaVinci
// Resolve and described by the Adobe Cube LUT Specification 1.0.
//
// A file holds up to one 1D LUT and one 3D LUT, both with three float32
// channels. When both are present the 1D LUT is a shaper applied before the 3D
// LUT, and its data comes first. In a 3D LUT red varies fastest.
package cube
