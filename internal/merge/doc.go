// Package merge merges a source file into a destination file without
// destroying what the destination already holds.
//
// A Merger backs the destination up, then asks a Resolver for the ordered
// list of strategies that apply to it. A git three-way merge is tried first
// when the destination is tracked; the unique-line append strategy is the
// last resort and also decides when a binary file must be skipped.
package merge
