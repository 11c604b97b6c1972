package probe

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/osslprobe/pkg/core"
	"github.com/arc-language/osslprobe/pkg/version"
)

func TestExtractLegacy(t *testing.T) {
	expanded := []byte(`# 1 "expando.c"
# 1 "/usr/include/openssl/opensslconf.h" 1 3 4

   OSSLPROBE_VERSION_OPENSSL_0x1010107fL

OSSLPROBE_CONF_OPENSSL_NO_SSL3_METHOD
OSSLPROBE_CONF_OPENSSL_NO_ENGINE
int unrelated;
OSSLPROBE_CONF_OPENSSL_NO_SSL3_METHOD
`)

	out, err := Extract(expanded)
	require.NoError(t, err)
	assert.Equal(t, version.Raw{Format: version.FormatLegacy, Text: "0x1010107fL"}, out.Version)
	assert.Equal(t, []string{"OPENSSL_NO_SSL3_METHOD", "OPENSSL_NO_ENGINE"}, out.Flags.Names())

	n, err := out.Version.Decode()
	require.NoError(t, err)
	assert.Equal(t, version.Number(0x1010107f), n)
}

func TestExtractModern(t *testing.T) {
	out, err := Extract([]byte("OSSLPROBE_VERSION_NEW_OPENSSL_3_0_2\r\nOSSLPROBE_CONF_OPENSSL_NO_IDEA\r\n"))
	require.NoError(t, err)
	assert.Equal(t, version.Raw{Format: version.FormatModern, Text: "3_0_2"}, out.Version)
	assert.True(t, out.Flags.Has("OPENSSL_NO_IDEA"))
}

func TestExtractWithoutVersion(t *testing.T) {
	_, err := Extract([]byte("OSSLPROBE_CONF_OPENSSL_NO_IDEA\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrMalformedVersion))
}

func TestExtractPassesMalformedTextThrough(t *testing.T) {
	// decoding, not extraction, rejects the text
	out, err := Extract([]byte("OSSLPROBE_VERSION_NEW_OPENSSL_1_1_1c\n"))
	require.NoError(t, err)

	_, err = out.Version.Decode()
	assert.ErrorIs(t, err, core.ErrMalformedVersion)
}

func TestSourceMentionsEveryFormat(t *testing.T) {
	src := string(Source())
	assert.Contains(t, src, "#include <openssl/opensslv.h>")
	assert.Contains(t, src, "OSSLPROBE_VERSION_NEW_OPENSSL_")
	assert.Contains(t, src, "OSSLPROBE_CONF_OPENSSL_NO_DEPRECATED_3_0")
}

func TestExtractIgnoresSentinelOrder(t *testing.T) {
	for _, expanded := range []string{
		"OSSLPROBE_CONF_OPENSSL_NO_IDEA\nOSSLPROBE_VERSION_NEW_OPENSSL_3_1_4\n",
		"OSSLPROBE_VERSION_NEW_OPENSSL_3_1_4\nOSSLPROBE_CONF_OPENSSL_NO_IDEA\n",
	} {
		out, err := Extract([]byte(expanded))
		require.NoError(t, err)
		assert.Equal(t, version.Raw{Format: version.FormatModern, Text: "3_1_4"}, out.Version)
		assert.Equal(t, []string{"OPENSSL_NO_IDEA"}, out.Flags.Names())
	}

	// neither version prefix matches the other
	assert.False(t, strings.HasPrefix(ModernPrefix, LegacyPrefix))
	assert.False(t, strings.HasPrefix(LegacyPrefix, ModernPrefix))
}
