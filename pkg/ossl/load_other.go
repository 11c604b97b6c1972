//go:build !(darwin || freebsd || linux) || android

package ossl

import (
	"fmt"
	"runtime"
)

func loadInit() (initFunc, error) {
	return nil, fmt.Errorf("loading libssl at runtime is not supported on %s", runtime.GOOS)
}
