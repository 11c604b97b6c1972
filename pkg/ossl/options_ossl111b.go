//go:build ossl111b

package ossl

// Keep OpenSSL from tearing itself down in an atexit handler while other
// threads may still be using it.
const noAtExit = InitNoAtExit
