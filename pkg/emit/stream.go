package emit

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteStream writes one directive per line
func WriteStream(w io.Writer, ds []Directive) error {
	bw := bufio.NewWriter(w)
	for _, d := range ds {
		if _, err := fmt.Fprintln(bw, d.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ParseStream reads directives back; lines without the prefix are skipped
func ParseStream(r io.Reader) ([]Directive, error) {
	var ds []Directive
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		rest, ok := strings.CutPrefix(line, StreamPrefix)
		if !ok {
			continue
		}
		key, value, ok := strings.Cut(rest, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("line %d: malformed directive %q", n, line)
		}
		ds = append(ds, Directive{Key: key, Value: value})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading directives: %w", err)
	}
	return ds, nil
}
