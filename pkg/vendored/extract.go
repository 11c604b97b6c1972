package vendored

import (
	"archive/tar"
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"zombiezen.com/go/nix/nar"
)

var archiveSuffixes = []string{".tar.gz", ".tgz", ".tar.xz", ".tar.zst", ".tar", ".nar.xz", ".nar"}

// isArchive reports whether name has a suffix extract understands
func isArchive(name string) bool {
	for _, s := range archiveSuffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// extract unpacks a source archive into dest
func extract(path, dest string, logger *log.Logger) error {
	logger.Printf("Extracting %s -> %s", path, dest)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()
	r := bufio.NewReader(f)

	switch {
	case strings.HasSuffix(path, ".tar.gz"), strings.HasSuffix(path, ".tgz"):
		gzReader, err := gzip.NewReader(r)
		if err != nil {
			return fmt.Errorf("creating gzip reader: %w", err)
		}
		defer gzReader.Close()
		return extractTar(gzReader, dest, logger)

	case strings.HasSuffix(path, ".tar.xz"):
		xzReader, err := xz.NewReader(r)
		if err != nil {
			return fmt.Errorf("creating xz reader: %w", err)
		}
		return extractTar(xzReader, dest, logger)

	case strings.HasSuffix(path, ".tar.zst"):
		zstReader, err := zstd.NewReader(r)
		if err != nil {
			return fmt.Errorf("creating zstd reader: %w", err)
		}
		defer zstReader.Close()
		return extractTar(zstReader, dest, logger)

	case strings.HasSuffix(path, ".tar"):
		return extractTar(r, dest, logger)

	case strings.HasSuffix(path, ".nar.xz"):
		xzReader, err := xz.NewReader(r)
		if err != nil {
			return fmt.Errorf("creating xz reader: %w", err)
		}
		return extractNAR(xzReader, dest, logger)

	case strings.HasSuffix(path, ".nar"):
		return extractNAR(r, dest, logger)

	default:
		return fmt.Errorf("unsupported archive format: %s", filepath.Base(path))
	}
}

func extractTar(r io.Reader, dest string, logger *log.Logger) error {
	tarReader := tar.NewReader(r)
	fileCount := 0

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading tar entry: %w", err)
		}

		targetPath, ok, err := within(dest, header.Name)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(targetPath, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", targetPath, err)
			}

		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
				return fmt.Errorf("creating parent directory for symlink: %w", err)
			}
			os.Remove(targetPath)
			if err := os.Symlink(header.Linkname, targetPath); err != nil {
				return fmt.Errorf("creating symlink %s -> %s: %w", targetPath, header.Linkname, err)
			}

		case tar.TypeReg:
			if err := writeFile(targetPath, tarReader, os.FileMode(header.Mode).Perm(), header.Size); err != nil {
				return err
			}
			fileCount++

		default:
			// pax headers, hard links and devices never matter for a source tree
		}
	}

	logger.Printf("Extracted %d files", fileCount)
	return nil
}

func extractNAR(r io.Reader, dest string, logger *log.Logger) error {
	narReader := nar.NewReader(r)
	fileCount := 0

	for {
		hdr, err := narReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading NAR entry: %w", err)
		}

		targetPath, ok, err := within(dest, strings.TrimPrefix(hdr.Path, "/"))
		if err != nil {
			return err
		}
		if !ok {
			targetPath = dest
		}

		switch hdr.Mode.Type() {
		case os.ModeDir:
			if err := os.MkdirAll(targetPath, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", targetPath, err)
			}
		case os.ModeSymlink:
			if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
				return fmt.Errorf("creating parent directory: %w", err)
			}
			if err := os.Symlink(hdr.LinkTarget, targetPath); err != nil {
				return fmt.Errorf("creating symlink: %w", err)
			}
		case 0:
			perm := os.FileMode(0o644)
			if hdr.Mode&0o111 != 0 {
				perm = 0o755
			}
			if err := writeFile(targetPath, narReader, perm, hdr.Size); err != nil {
				return err
			}
			fileCount++
		}
	}

	logger.Printf("Extracted %d files", fileCount)
	return nil
}

// within joins name onto dest, refusing entries that escape it.
// ok is false for the archive root itself.
func within(dest, name string) (string, bool, error) {
	clean := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(name, "./")))
	if clean == "." || clean == "" || clean == string(filepath.Separator) {
		return "", false, nil
	}
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", false, fmt.Errorf("archive entry %q escapes the destination", name)
	}
	return filepath.Join(dest, clean), true, nil
}

func writeFile(path string, r io.Reader, perm os.FileMode, size int64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	written, err := io.Copy(out, r)
	out.Close()
	if err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	if written != size {
		return fmt.Errorf("file size mismatch for %s: expected %d, got %d", path, size, written)
	}
	return nil
}
