package vendored

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"

	"github.com/arc-language/osslprobe/pkg/core"
	"github.com/arc-language/osslprobe/pkg/env"
)

func discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestConfigureTarget(t *testing.T) {
	got, ok := ConfigureTarget("x86_64-unknown-linux-gnu")
	require.True(t, ok)
	assert.Equal(t, "linux-x86_64", got)

	got, ok = ConfigureTarget("x86_64-pc-windows-msvc")
	require.True(t, ok)
	assert.Equal(t, "VC-WIN64A", got)

	_, ok = ConfigureTarget("wasm32-unknown-unknown")
	assert.False(t, ok)
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		value, ref string
		want       Source
	}{
		{"", "", Source{Kind: SourceGit, Location: DefaultRepository, Ref: DefaultRef}},
		{"", "openssl-3.2.1", Source{Kind: SourceGit, Location: DefaultRepository, Ref: "openssl-3.2.1"}},
		{"https://github.com/me/openssl.git", "", Source{Kind: SourceGit, Location: "https://github.com/me/openssl.git", Ref: DefaultRef}},
		{"git@example.com:ssl", "master", Source{Kind: SourceGit, Location: "git@example.com:ssl", Ref: "master"}},
		{"https://www.openssl.org/source/openssl-3.0.13.tar.gz", "", Source{Kind: SourceRemoteArchive, Location: "https://www.openssl.org/source/openssl-3.0.13.tar.gz"}},
		{"/tmp/openssl-3.0.13.tar.xz", "", Source{Kind: SourceArchive, Location: "/tmp/openssl-3.0.13.tar.xz"}},
		{"/tmp/src.nar", "", Source{Kind: SourceArchive, Location: "/tmp/src.nar"}},
		{"/src/openssl", "", Source{Kind: SourceDir, Location: "/src/openssl"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseSource(tt.value, tt.ref), tt.value)
	}
}

func TestRefNames(t *testing.T) {
	assert.Equal(t, []string{"refs/tags/openssl-3.0.13", "refs/heads/openssl-3.0.13"}, refStrings(refNames("openssl-3.0.13")))
	assert.Equal(t, []string{"refs/heads/master"}, refStrings(refNames("refs/heads/master")))
}

func refStrings[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, r := range in {
		out[i] = string(r)
	}
	return out
}

func tarball(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "openssl-3.0.13/", Typeflag: tar.TypeDir, Mode: 0o755}))
	for name, body := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Typeflag: tar.TypeReg,
			Mode:     0o755,
			Size:     int64(len(body)),
		}))
		_, err := tw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	return buf.Bytes()
}

func compress(t *testing.T, suffix string, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	switch suffix {
	case ".tar.gz", ".tgz":
		w := gzip.NewWriter(&buf)
		_, err := w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case ".tar.xz":
		w, err := xz.NewWriter(&buf)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case ".tar.zst":
		w, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	default:
		buf.Write(data)
	}
	return buf.Bytes()
}

func TestExtractFormats(t *testing.T) {
	files := map[string]string{
		"openssl-3.0.13/Configure":             "#!/usr/bin/env perl\n",
		"openssl-3.0.13/include/openssl/ssl.h": "/* ssl */\n",
	}

	for _, suffix := range []string{".tar.gz", ".tgz", ".tar.xz", ".tar.zst", ".tar"} {
		t.Run(suffix, func(t *testing.T) {
			dir := t.TempDir()
			archive := filepath.Join(dir, "openssl"+suffix)
			require.NoError(t, os.WriteFile(archive, compress(t, suffix, tarball(t, files)), 0o644))

			dest := filepath.Join(dir, "out")
			require.NoError(t, os.MkdirAll(dest, 0o755))
			require.NoError(t, extract(archive, dest, discard()))

			body, err := os.ReadFile(filepath.Join(dest, "openssl-3.0.13", "include", "openssl", "ssl.h"))
			require.NoError(t, err)
			assert.Equal(t, "/* ssl */\n", string(body))

			root, err := sourceRoot(dest)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dest, "openssl-3.0.13"), root)
		})
	}
}

func TestExtractRejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.tar")
	require.NoError(t, os.WriteFile(archive, tarball(t, map[string]string{"../evil": "x"}), 0o644))

	err := extract(archive, filepath.Join(dir, "out"), discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes")
}

func TestExtractUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openssl.zip")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	assert.Error(t, extract(path, t.TempDir(), discard()))
}

func TestWithin(t *testing.T) {
	p, ok, err := within("/dest", "./a/b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, filepath.Join("/dest", "a", "b"), p)

	_, ok, err = within("/dest", "./")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = within("/dest", "/etc/passwd")
	assert.Error(t, err)
}

type recorded struct {
	dir  string
	args string
}

func fakeBuilder(t *testing.T, vars map[string]string) (*Builder, *[]recorded) {
	t.Helper()
	e := env.New("x86_64-unknown-linux-gnu", env.MapLookup(vars), nil)
	b := NewBuilder(t.TempDir(), e, discard())

	var calls []recorded
	b.run = func(_ context.Context, dir, name string, args ...string) error {
		calls = append(calls, recorded{dir: dir, args: strings.TrimSpace(name + " " + strings.Join(args, " "))})
		if len(args) == 1 && args[0] == "install_sw" {
			install := filepath.Join(filepath.Dir(dir), "install")
			require.NoError(t, os.MkdirAll(filepath.Join(install, "include", "openssl"), 0o755))
			require.NoError(t, os.MkdirAll(filepath.Join(install, "lib"), 0o755))
			require.NoError(t, os.WriteFile(filepath.Join(install, "include", "openssl", "opensslv.h"), nil, 0o644))
		}
		return nil
	}
	b.clone = func(context.Context, string, string, string) error {
		t.Fatal("unexpected clone")
		return nil
	}
	return b, &calls
}

func TestBuildFromDirectory(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "Configure"), nil, 0o755))

	b, calls := fakeBuilder(t, map[string]string{"OPENSSL_SRC": src})
	loc, err := b.Build(context.Background(), "x86_64-unknown-linux-gnu")
	require.NoError(t, err)

	install := filepath.Join(b.Dir, "x86_64-unknown-linux-gnu", "install")
	assert.Equal(t, core.Location{
		LibDir:     filepath.Join(install, "lib"),
		IncludeDir: filepath.Join(install, "include"),
		Source:     "vendored",
	}, loc)
	require.NoError(t, loc.Check())

	require.Len(t, *calls, 3)
	configure := (*calls)[0].args
	assert.True(t, strings.HasPrefix(configure, "perl "+filepath.Join(src, "Configure")+" linux-x86_64 no-shared no-tests"))
	assert.Contains(t, configure, "--prefix="+install)
	assert.Equal(t, "make", (*calls)[1].args)
	assert.Equal(t, "make install_sw", (*calls)[2].args)
	assert.Equal(t, filepath.Join(b.Dir, "x86_64-unknown-linux-gnu", "build"), (*calls)[0].dir)

	// second build reuses the install
	_, err = b.Build(context.Background(), "x86_64-unknown-linux-gnu")
	require.NoError(t, err)
	assert.Len(t, *calls, 3)
}

func TestBuildFromGit(t *testing.T) {
	b, _ := fakeBuilder(t, map[string]string{"OPENSSL_SRC_REF": "openssl-3.2.1"})

	var cloned []string
	b.clone = func(_ context.Context, url, ref, dest string) error {
		cloned = append(cloned, url, ref)
		require.NoError(t, os.MkdirAll(dest, 0o755))
		return os.WriteFile(filepath.Join(dest, "Configure"), nil, 0o755)
	}

	_, err := b.Build(context.Background(), "aarch64-unknown-linux-gnu")
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultRepository, "openssl-3.2.1"}, cloned)
}

func TestBuildFromArchive(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "openssl-3.0.13.tar.gz")
	require.NoError(t, os.WriteFile(archive, compress(t, ".tar.gz", tarball(t, map[string]string{
		"openssl-3.0.13/Configure": "#!perl\n",
	})), 0o644))

	b, calls := fakeBuilder(t, map[string]string{"OPENSSL_SRC": archive})
	_, err := b.Build(context.Background(), "x86_64-unknown-linux-gnu")
	require.NoError(t, err)

	want := filepath.Join(b.Dir, "x86_64-unknown-linux-gnu", "src", "openssl-3.0.13", "Configure")
	assert.Contains(t, (*calls)[0].args, want)
}

func TestBuildMSVCUsesNmake(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "Configure"), nil, 0o755))

	b, calls := fakeBuilder(t, map[string]string{"OPENSSL_SRC": src})
	_, err := b.Build(context.Background(), "x86_64-pc-windows-msvc")
	require.NoError(t, err)
	assert.Contains(t, (*calls)[0].args, "VC-WIN64A")
	assert.Equal(t, "nmake install_sw", (*calls)[2].args)
}

func TestBuildUnsupportedTarget(t *testing.T) {
	b, calls := fakeBuilder(t, nil)
	_, err := b.Build(context.Background(), "wasm32-unknown-unknown")
	assert.ErrorIs(t, err, core.ErrVendorUnsupported)
	assert.Empty(t, *calls)
}

func TestBuildMissingConfigure(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "empty.tar")
	require.NoError(t, os.WriteFile(archive, tarball(t, map[string]string{"openssl-3.0.13/README": "hi"}), 0o644))

	b, _ := fakeBuilder(t, map[string]string{"OPENSSL_SRC": archive})
	_, err := b.Build(context.Background(), "x86_64-unknown-linux-gnu")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Configure script")
}
