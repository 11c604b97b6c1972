package emit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/osslprobe/pkg/core"
	"github.com/arc-language/osslprobe/pkg/linkmode"
	"github.com/arc-language/osslprobe/pkg/version"
)

func linuxFacts() Facts {
	n := version.Number(0x1010103f)
	return Facts{
		Location: core.Location{LibDir: "/usr/lib/x86_64-linux-gnu", IncludeDir: "/usr/include"},
		Plan:     linkmode.Plan{Kind: linkmode.Dylib, Libs: []string{"ssl", "crypto"}},
		Flags:    []string{"OPENSSL_NO_ENGINE", "OPENSSL_NO_IDEA"},
		Version:  n,
		Line:     version.Line111,
		Tiers:    version.TierNames(n),
		EnvNames: []string{"X86_64_UNKNOWN_LINUX_GNU_OPENSSL_DIR", "OPENSSL_DIR"},
	}
}

func TestEmitOrder(t *testing.T) {
	var lines []string
	for _, d := range Emit(linuxFacts()) {
		lines = append(lines, d.String())
	}

	assert.Equal(t, []string{
		"osslprobe:link-search=native=/usr/lib/x86_64-linux-gnu",
		"osslprobe:include=/usr/include",
		"osslprobe:link-lib=dylib=ssl",
		"osslprobe:link-lib=dylib=crypto",
		"osslprobe:tag=osslconf_OPENSSL_NO_ENGINE",
		"osslprobe:tag=osslconf_OPENSSL_NO_IDEA",
		"osslprobe:conf=OPENSSL_NO_ENGINE,OPENSSL_NO_IDEA",
		"osslprobe:tag=ossl111c",
		"osslprobe:tag=ossl111b",
		"osslprobe:tag=ossl111",
		"osslprobe:version_number=1010103f",
		"osslprobe:version=111",
		"osslprobe:rerun-if-env-changed=X86_64_UNKNOWN_LINUX_GNU_OPENSSL_DIR",
		"osslprobe:rerun-if-env-changed=OPENSSL_DIR",
	}, lines)
}

func TestEmitWindowsStatic(t *testing.T) {
	f := Facts{
		Location: core.Location{LibDir: `C:\ssl\lib`, IncludeDir: `C:\ssl\include`},
		Plan: linkmode.Plan{
			Kind:       linkmode.Static,
			Libs:       []string{"libssl", "libcrypto"},
			SystemLibs: []string{"gdi32", "user32", "crypt32", "ws2_32", "advapi32"},
		},
		Version: 0x30000020,
		Line:    version.Line300,
		Tiers:   version.TierNames(0x30000020),
	}

	assert.Equal(t, []string{
		"static=libssl", "static=libcrypto",
		"dylib=gdi32", "dylib=user32", "dylib=crypt32", "dylib=ws2_32", "dylib=advapi32",
	}, Values(Emit(f), KeyLinkLib))

	conf, ok := Value(Emit(f), KeyConf)
	assert.True(t, ok)
	assert.Empty(t, conf)
	assert.Equal(t, []string{"ossl300", "ossl111c", "ossl111b", "ossl111"}, Tags(Emit(f)))
}

func TestEmitIsPure(t *testing.T) {
	f := linuxFacts()
	assert.Equal(t, Emit(f), Emit(f))
}

func TestStreamRoundTrip(t *testing.T) {
	ds := Emit(linuxFacts())

	var buf bytes.Buffer
	require.NoError(t, WriteStream(&buf, ds))
	assert.Equal(t, len(ds), strings.Count(buf.String(), "\n"))

	back, err := ParseStream(strings.NewReader("noise from make\n" + buf.String()))
	require.NoError(t, err)
	assert.Equal(t, ds, back)
}

func TestParseStreamMalformed(t *testing.T) {
	_, err := ParseStream(strings.NewReader("osslprobe:missing-separator\n"))
	assert.Error(t, err)

	_, err = ParseStream(strings.NewReader("osslprobe:=value\n"))
	assert.Error(t, err)
}

func TestDownstreamTags(t *testing.T) {
	tags, err := DownstreamTags("OPENSSL_NO_ENGINE,OPENSSL_NO_IDEA", "1010103f")
	require.NoError(t, err)
	assert.Equal(t, []string{"osslconf_OPENSSL_NO_ENGINE", "osslconf_OPENSSL_NO_IDEA", "ossl111"}, tags)

	tags, err = DownstreamTags("", "30000020")
	require.NoError(t, err)
	assert.Equal(t, []string{"ossl111", "ossl300"}, tags)

	tags, err = DownstreamTags("", "1000215f")
	require.NoError(t, err)
	assert.Empty(t, tags)

	_, err = DownstreamTags("", "not-hex")
	assert.ErrorIs(t, err, core.ErrMalformedVersion)
}

func TestDownstreamTagsFrom(t *testing.T) {
	tags, err := DownstreamTagsFrom(Emit(linuxFacts()))
	require.NoError(t, err)
	assert.Equal(t, []string{"osslconf_OPENSSL_NO_ENGINE", "osslconf_OPENSSL_NO_IDEA", "ossl111"}, tags)
}
