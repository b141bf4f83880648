// Package ifs builds affine Iterated Function Systems.
//
// A [SigmaFactorIFS] is an ordered, immutable list of maps, each an affine
// transform with a selection weight and a color. [Generate] draws one at
// random with the sigma-factor construction: the singular values of every
// map are sampled so that their weighted sum equals a target factor alpha,
// then each matrix is rescaled if needed so its contraction lies inside
// [Options.MinContraction, Options.MaxContraction].
//
// Generation only consumes the [Source] it is given, so the same source state
// always yields the same system.
package ifs
