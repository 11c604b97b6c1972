package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/osslprobe/pkg/core"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		n       Number
		want    Line
		wantErr bool
	}{
		{"1.0.2u too old", 0x1000215f, "", true},
		{"1.1.0l too old", 0x101000cf, "", true},
		{"just below 1.1.1", MinSupported - 1, "", true},
		{"exactly 1.1.1 threshold", MinSupported, Line111, false},
		{"1.1.1w", 0x1010117f, Line111, false},
		{"exactly 3.0.0", Line3Start, Line300, false},
		{"3.2.1", Pack(3, 2, 1), Line300, false},
		{"just below 4.0", TooNew - 1, Line300, false},
		{"exactly 4.0.0", TooNew, "", true},
		{"5.0.0", Pack(5, 0, 0), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.n)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, core.ErrUnsupportedVersion)
				assert.Contains(t, err.Error(), "OpenSSL 1.1.1 or OpenSSL 3.x")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTierNames(t *testing.T) {
	assert.Empty(t, TierNames(0x101000cf))
	assert.Equal(t, []string{"ossl111"}, TierNames(0x1010100f))
	assert.Equal(t, []string{"ossl111b", "ossl111"}, TierNames(0x1010102f))
	assert.Equal(t, []string{"ossl111c", "ossl111b", "ossl111"}, TierNames(0x1010103f))
	assert.Equal(t, []string{"ossl300", "ossl111c", "ossl111b", "ossl111"}, TierNames(0x30000000))
}

func TestTiersAreMonotonic(t *testing.T) {
	versions := []Number{0x1010100f, 0x1010102f, 0x1010103f, 0x1010117f, 0x30000000, 0x30200010}
	for i := 1; i < len(versions); i++ {
		older := TierNames(versions[i-1])
		newer := TierNames(versions[i])
		assert.Subset(t, newer, older, "%s should enable everything %s does", versions[i], versions[i-1])
	}
}
