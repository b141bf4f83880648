// Package render realizes an IFS as a pixel buffer with the chaos game.
//
// A [Renderer] splits the requested points into fixed-size chunks. Every
// chunk owns an RNG substream derived from one seed drawn from the caller's
// generator, starts its orbit at the origin and discards a short burn-in.
// Rendering takes two passes over the same chunk streams: the first computes
// the bounding box of the recorded points, the second projects every point
// into a per-worker [Accumulator]. Partial accumulators hold integer sums, so
// the final reduction is exact and its order does not matter. A render with
// one worker and a render with many produce identical buffers.
package render
