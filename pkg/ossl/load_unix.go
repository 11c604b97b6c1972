//go:build (darwin || freebsd || linux) && !android

package ossl

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/ebitengine/purego"
)

// LibraryEnv names a shared library to load instead of the defaults
const LibraryEnv = "OSSLPROBE_LIBSSL"

func candidates() []string {
	if path := os.Getenv(LibraryEnv); path != "" {
		return []string{path}
	}
	if runtime.GOOS == "darwin" {
		return []string{"libssl.3.dylib", "libssl.1.1.dylib", "libssl.dylib"}
	}
	return []string{"libssl.so.3", "libssl.so.1.1", "libssl.so"}
}

func loadInit() (initFunc, error) {
	var errs []error
	for _, name := range candidates() {
		handle, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		// RegisterLibFunc panics on a missing symbol; a libssl 1.0.x has none
		sym, err := purego.Dlsym(handle, "OPENSSL_init_ssl")
		if err != nil {
			purego.Dlclose(handle)
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		var initSSL func(opts uint64, settings uintptr) int32
		purego.RegisterFunc(&initSSL, sym)
		return func(opts uint64) int32 {
			return initSSL(opts, 0)
		}, nil
	}
	return nil, fmt.Errorf("no usable libssl: %w", errors.Join(errs...))
}
