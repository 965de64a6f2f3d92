// Package distance provides the Euclidean distance primitive shared by the
// clustering engine.
//
// Every function checks that both points have the same dimensionality and
// returns *ErrDimensionMismatch otherwise. No value is produced for
// mismatched inputs.
//
// # Usage
//
//	d, err := distance.Euclidean(a, b)
//	sq, err := distance.SquaredEuclidean(a, b)
package distance
