package env

// Variables consulted by the pipeline
const (
	OpenSSLDir        = "OPENSSL_DIR"
	OpenSSLLibDir     = "OPENSSL_LIB_DIR"
	OpenSSLIncludeDir = "OPENSSL_INCLUDE_DIR"
	OpenSSLNoVendor   = "OPENSSL_NO_VENDOR"
	OpenSSLSrc        = "OPENSSL_SRC"
	OpenSSLSrcRef     = "OPENSSL_SRC_REF"
	OpenSSLStatic     = "OPENSSL_STATIC"
	OpenSSLLibs       = "OPENSSL_LIBS"

	PkgConfig           = "PKG_CONFIG"
	PkgConfigAllowCross = "PKG_CONFIG_ALLOW_CROSS"
	VcpkgRoot           = "VCPKG_ROOT"
	NixCFlagsCompile    = "NIX_CFLAGS_COMPILE"
	NixLDFlags          = "NIX_LDFLAGS"

	CC     = "CC"
	CFlags = "CFLAGS"
)
