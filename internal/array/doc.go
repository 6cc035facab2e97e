// Package array provides index-array primitives over slices: stable
// argsort, gather (Take) and batch scatter (Put).
//
// Index arrays are plain []int. Gather and scatter validate every index and
// report the first offending position instead of panicking.
package array
