//go:build !ossl111b

package ossl

// Releases before 1.1.1b cannot skip their atexit handler
const noAtExit uint64 = 0
