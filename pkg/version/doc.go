// Package version decodes the version OpenSSL reports about itself and
// decides whether the bindings support it.
//
// Releases before 3.0 publish OPENSSL_VERSION_NUMBER as a hex literal laid
// out as 0xMNNFFPPS (major, minor, fix, patch letter, status). 3.0 and later
// publish separate major/minor/patch macros instead. Both decode into a
// Number with the same bit layout, so a larger Number is always a newer or
// equal release whichever format it came from.
package version
