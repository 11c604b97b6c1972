package linkmode

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/blakesmith/ar"
)

// Artifact is one linkable file found for a library
type Artifact struct {
	Lib     string
	Kind    Kind
	Path    string
	Size    int64
	Members int // object files in a static archive; 0 for dylibs
}

// Inspect lists every artifact of libs in dir, reading static archives to
// count their object members.
func (r *Resolver) Inspect(dir string, libs []string) ([]Artifact, error) {
	var out []Artifact
	for _, lib := range libs {
		for _, kind := range []Kind{Static, Dylib} {
			names := r.Table.DynamicNames(lib)
			if kind == Static {
				names = r.Table.StaticNames(lib)
			}
			for _, name := range names {
				path := filepath.Join(dir, name)
				info, err := os.Stat(path)
				if err != nil || info.IsDir() {
					continue
				}

				a := Artifact{Lib: lib, Kind: kind, Path: path, Size: info.Size()}
				if kind == Static {
					n, err := countMembers(path)
					if err != nil {
						return nil, err
					}
					a.Members = n
				}
				out = append(out, a)
			}
		}
	}
	return out, nil
}

// countMembers walks an ar archive, skipping the symbol and name tables
func countMembers(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	reader := ar.NewReader(f)
	count := 0
	for {
		header, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("reading archive %s: %w", path, err)
		}
		if isIndexMember(header.Name) {
			continue
		}
		count++
	}
	return count, nil
}

func isIndexMember(name string) bool {
	name = strings.TrimSpace(name)
	return name == "/" || name == "//" || name == "/SYM64/" || strings.HasPrefix(name, "__.SYMDEF")
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
