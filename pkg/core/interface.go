package core

import "context"

// Builder produces a library from bundled source for a target triple
type Builder interface {
	Build(ctx context.Context, target string) (Location, error)
}

// Expander runs the C preprocessor over a source file
type Expander interface {
	Expand(ctx context.Context, source []byte, includeDirs []string) ([]byte, error)
}

// Querier asks an installed package system where a library lives.
// ok is false when the system does not know the library.
type Querier interface {
	Name() string
	Query(ctx context.Context, name string) (loc Location, ok bool, err error)
}
