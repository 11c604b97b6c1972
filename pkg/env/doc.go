package env

/*
Package env reads the build inputs osslprobe takes from the environment.

Every variable is looked up twice: first under the target triple prefix,
then under its bare name. A cross-compiling build can therefore set
AARCH64_UNKNOWN_LINUX_GNU_OPENSSL_DIR without disturbing OPENSSL_DIR for
the host.

Basic Usage:

    e := env.New("aarch64-unknown-linux-gnu", os.LookupEnv, logger)

    if dir, ok := e.Get(env.OpenSSLDir); ok {
        fmt.Println(dir)
    }

    // Every name consulted, prefixed and bare, in lookup order
    for _, name := range e.Seen() {
        fmt.Println(name)
    }
*/
