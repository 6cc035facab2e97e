// Package matcher provides crossmatch primitives.
//
// A Matcher finds where the elements of a query array x appear in a
// reference array y. Elements of x may repeat, elements of y must be
// unique, and the arrays may only partially overlap. The result is a pair
// of parallel index arrays (inds1, inds2) with x[inds1[k]] == y[inds2[k]]
// for every k, covering every equality pair.
//
// # Matchers
//
//   - Lookup: roaring-bitmap index over y - min(y). Requires the reference
//     span to fit in 32 bits and validates uniqueness unless bounds checking
//     is skipped. Output is in query order.
//   - SortMerge: sort both sides and merge. No domain restriction and no
//     validation. Output is in ascending key order.
//
// Matchers that can reuse a reference index across queries implement
// Preparer; both built-in matchers do.
package matcher
