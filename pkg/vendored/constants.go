package vendored

const (
	// DefaultRepository is cloned when OPENSSL_SRC is not set
	DefaultRepository = "https://github.com/openssl/openssl.git"

	// DefaultRef is the tag built when OPENSSL_SRC_REF is not set
	DefaultRef = "openssl-3.0.13"
)
