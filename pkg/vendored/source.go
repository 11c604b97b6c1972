package vendored

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// SourceKind says how OPENSSL_SRC is obtained
type SourceKind int

const (
	SourceDir SourceKind = iota + 1
	SourceArchive
	SourceRemoteArchive
	SourceGit
)

// Source is a parsed OPENSSL_SRC value
type Source struct {
	Kind     SourceKind
	Location string
	Ref      string // git only
}

// ParseSource classifies an OPENSSL_SRC value. Empty means the upstream
// repository at ref.
func ParseSource(value, ref string) Source {
	if ref == "" {
		ref = DefaultRef
	}
	remote := strings.HasPrefix(value, "https://") || strings.HasPrefix(value, "http://")

	switch {
	case value == "":
		return Source{Kind: SourceGit, Location: DefaultRepository, Ref: ref}
	case remote && isArchive(value):
		return Source{Kind: SourceRemoteArchive, Location: value}
	case remote, strings.HasPrefix(value, "git@"), strings.HasSuffix(value, ".git"):
		return Source{Kind: SourceGit, Location: value, Ref: ref}
	case isArchive(value):
		return Source{Kind: SourceArchive, Location: value}
	default:
		return Source{Kind: SourceDir, Location: value}
	}
}

// fetch makes the source tree available under work and returns its root
func (b *Builder) fetch(ctx context.Context, src Source, work string) (string, error) {
	switch src.Kind {
	case SourceDir:
		return src.Location, nil

	case SourceArchive:
		dest := filepath.Join(work, "src")
		if err := b.unpack(src.Location, dest); err != nil {
			return "", err
		}
		return sourceRoot(dest)

	case SourceRemoteArchive:
		archive := filepath.Join(work, filepath.Base(src.Location))
		b.Logger.Printf("Downloading %s", src.Location)
		if err := b.download(ctx, src.Location, archive); err != nil {
			return "", err
		}
		dest := filepath.Join(work, "src")
		if err := b.unpack(archive, dest); err != nil {
			return "", err
		}
		return sourceRoot(dest)

	case SourceGit:
		dest := filepath.Join(work, "src")
		if fileExists(filepath.Join(dest, "Configure")) {
			b.Logger.Printf("Reusing checkout %s", dest)
			return dest, nil
		}
		if err := b.clone(ctx, src.Location, src.Ref, dest); err != nil {
			return "", err
		}
		return dest, nil

	default:
		return "", fmt.Errorf("unknown source kind %d", src.Kind)
	}
}

func (b *Builder) unpack(archive, dest string) error {
	if err := os.RemoveAll(dest); err != nil {
		return fmt.Errorf("cleaning %s: %w", dest, err)
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	return extract(archive, dest, b.Logger)
}

// gitClone shallow-clones a single tag or branch
func (b *Builder) gitClone(ctx context.Context, url, ref, dest string) error {
	b.Logger.Printf("Cloning %s at %s", url, ref)

	var lastErr error
	for _, name := range refNames(ref) {
		os.RemoveAll(dest)
		_, err := git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{
			URL:           url,
			ReferenceName: name,
			SingleBranch:  true,
			Depth:         1,
			Progress:      b.Logger.Writer(),
		})
		if err == nil {
			return nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return fmt.Errorf("cloning %s at %s: %w", url, ref, lastErr)
}

// refNames lists what ref may name: a full reference, else a tag then a branch
func refNames(ref string) []plumbing.ReferenceName {
	if strings.HasPrefix(ref, "refs/") {
		return []plumbing.ReferenceName{plumbing.ReferenceName(ref)}
	}
	return []plumbing.ReferenceName{
		plumbing.NewTagReferenceName(ref),
		plumbing.NewBranchReferenceName(ref),
	}
}

// sourceRoot finds the directory holding Configure: dir itself or its
// single top-level directory, as release tarballs have.
func sourceRoot(dir string) (string, error) {
	if fileExists(filepath.Join(dir, "Configure")) {
		return dir, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() && fileExists(filepath.Join(dir, e.Name(), "Configure")) {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", errors.New("no Configure script in " + dir)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
