// Package analysis measures rendered attractors.
//
//   - [BoxDimension]: box-counting dimension of the visited cells
//   - [MoranDimension]: similarity dimension bound from the map contractions
//   - [Coverage]: share of the canvas the attractor touches
//
// A rendered attractor's box dimension never exceeds 2 and is usually below
// the Moran bound of its IFS, which assumes non-overlapping maps:
//
//	d, _ := analysis.BoxDimension(acc)
//	bound := analysis.MoranDimension(sys.Contractions())
package analysis
