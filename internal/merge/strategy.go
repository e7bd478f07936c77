package merge

import (
	"context"
)

// Request names the two files a strategy works on
type Request struct {
	Source string
	Dest   string
}

// Result is what a strategy did to the destination
type Result struct {
	Outcome  Outcome
	Appended int
	Detail   error
}

// Strategy merges Request.Source into Request.Dest.
//
// A strategy that cannot run should return an error wrapping
// errors.ErrVersionControlUnavailable before touching the destination; the
// Merger then moves on to the next strategy. Any other error is fatal.
type Strategy interface {
	Name() string
	Apply(ctx context.Context, req Request) (Result, error)
}

// Resolver decides which strategies apply to a destination, in the order
// they should be tried.
type Resolver interface {
	Resolve(ctx context.Context, dest string) []Strategy
}

// ResolverFunc adapts a function to the Resolver interface
type ResolverFunc func(ctx context.Context, dest string) []Strategy

// Resolve calls f(ctx, dest)
func (f ResolverFunc) Resolve(ctx context.Context, dest string) []Strategy {
	return f(ctx, dest)
}
