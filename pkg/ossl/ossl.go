// Package ossl performs the process-wide OpenSSL initialisation that must
// happen exactly once before any other call into the library.
package ossl

import (
	"fmt"
	"sync"
)

// OPENSSL_init_ssl option bits
const (
	InitLoadCryptoStrings uint64 = 0x00000002
	InitNoAtExit          uint64 = 0x00080000
	InitLoadSSLStrings    uint64 = 0x00200000
)

// initFunc calls OPENSSL_init_ssl and returns its result (1 on success)
type initFunc func(opts uint64) int32

var (
	once    sync.Once
	initErr error

	// load resolves OPENSSL_init_ssl; replaced in tests
	load = loadInit
)

// Init initialises OpenSSL. The first caller runs the initialisation; any
// concurrent caller blocks until it has finished. Every call returns the
// outcome of that single run.
func Init() error {
	once.Do(func() {
		initErr = run()
	})
	return initErr
}

// Options returns the flags passed to OPENSSL_init_ssl
func Options() uint64 {
	return InitLoadSSLStrings | noAtExit
}

func run() error {
	fn, err := load()
	if err != nil {
		return fmt.Errorf("loading OpenSSL: %w", err)
	}
	if rc := fn(Options()); rc != 1 {
		return fmt.Errorf("OPENSSL_init_ssl failed with %d", rc)
	}
	return nil
}
