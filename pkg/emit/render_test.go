package emit

import (
	"bytes"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/osslprobe/pkg/core"
	"github.com/arc-language/osslprobe/pkg/linkmode"
	"github.com/arc-language/osslprobe/pkg/version"
)

func TestRenderCgo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderCgo(&buf, "openssl", linuxFacts()))
	src := buf.String()

	_, err := parser.ParseFile(token.NewFileSet(), "openssl_cgo.go", src, parser.ParseComments)
	require.NoError(t, err)

	assert.Contains(t, src, "// Code generated by osslprobe. DO NOT EDIT.")
	assert.Contains(t, src, "package openssl\n")
	assert.Contains(t, src, "#cgo CFLAGS: -I/usr/include\n")
	assert.Contains(t, src, "#cgo LDFLAGS: -L/usr/lib/x86_64-linux-gnu -lssl -lcrypto\n")
	assert.Contains(t, src, "const VersionNumber = 0x1010103f\n")
	assert.Contains(t, src, `const VersionLine = "111"`)
	assert.Contains(t, src, `"osslconf_OPENSSL_NO_ENGINE"`)
	assert.Contains(t, src, `var ConfigFlags = []string{"OPENSSL_NO_ENGINE", "OPENSSL_NO_IDEA"}`)
}

func TestRenderCgoWithoutFlags(t *testing.T) {
	f := linuxFacts()
	f.Flags = nil

	var buf bytes.Buffer
	require.NoError(t, RenderCgo(&buf, "openssl", f))
	assert.Contains(t, buf.String(), "var ConfigFlags = []string{}")
}

func TestLDFlagsStaticUsesArchives(t *testing.T) {
	f := Facts{
		Location: core.Location{LibDir: "/opt/ssl/lib", IncludeDir: "/opt/ssl/include"},
		Plan: linkmode.Plan{
			Kind:      linkmode.Static,
			Libs:      []string{"ssl", "crypto"},
			Artifacts: []string{"/opt/ssl/lib/libssl.a", "/opt/ssl/lib/libcrypto.a"},
		},
		Version: 0x30000020,
		Line:    version.Line300,
	}
	assert.Equal(t, "-L/opt/ssl/lib /opt/ssl/lib/libssl.a /opt/ssl/lib/libcrypto.a", LDFlags(f))

	// forced static without artifacts on disk falls back to -l
	f.Plan.Artifacts = nil
	f.Plan.SystemLibs = []string{"ws2_32"}
	assert.Equal(t, "-L/opt/ssl/lib -lssl -lcrypto -lws2_32", LDFlags(f))
}

func TestRenderEnv(t *testing.T) {
	f := linuxFacts()
	f.Location.IncludeDir = "/home/o'brien/include"

	var buf bytes.Buffer
	require.NoError(t, RenderEnv(&buf, f))
	assert.Equal(t,
		"export CGO_CFLAGS='-I/home/o'\\''brien/include'\n"+
			"export CGO_LDFLAGS='-L/usr/lib/x86_64-linux-gnu -lssl -lcrypto'\n"+
			"export OSSLPROBE_TAGS='osslconf_OPENSSL_NO_ENGINE,osslconf_OPENSSL_NO_IDEA,ossl111c,ossl111b,ossl111'\n",
		buf.String())
}

func TestRenderCgoQuotesPathsWithSpaces(t *testing.T) {
	f := linuxFacts()
	f.Location = core.Location{
		LibDir:     "C:/Program Files/OpenSSL-Win64/lib",
		IncludeDir: "C:/Program Files/OpenSSL-Win64/include",
	}

	var buf bytes.Buffer
	require.NoError(t, RenderCgo(&buf, "openssl", f))
	src := buf.String()

	assert.Contains(t, src, "#cgo CFLAGS: '-IC:/Program Files/OpenSSL-Win64/include'\n")
	assert.Contains(t, src, "#cgo LDFLAGS: '-LC:/Program Files/OpenSSL-Win64/lib' -lssl -lcrypto\n")

	// shell exports keep their own quoting
	buf.Reset()
	require.NoError(t, RenderEnv(&buf, f))
	assert.Contains(t, buf.String(), "export CGO_CFLAGS='-IC:/Program Files/OpenSSL-Win64/include'\n")
}

func TestCgoQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"-lssl", "-lssl"},
		{"-I/opt/my ssl/include", `'-I/opt/my ssl/include'`},
		{`-IC:\OpenSSL\include`, `'-IC:\\OpenSSL\\include'`},
		{"-I/o'brien", `'-I/o\'brien'`},
		{"", "''"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cgoQuote(tt.in), tt.in)
	}
}
