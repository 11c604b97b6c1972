package env

import (
	"io"
	"log"
	"strings"
)

// LookupFunc has the signature of os.LookupEnv
type LookupFunc func(key string) (string, bool)

// Env resolves target-prefixed variables and remembers what it consulted
type Env struct {
	prefix string
	lookup LookupFunc
	logger *log.Logger
	seen   []string
	marked map[string]bool
}

// New creates an Env for target. A nil logger discards output.
func New(target string, lookup LookupFunc, logger *log.Logger) *Env {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Env{
		prefix: Prefix(target),
		lookup: lookup,
		logger: logger,
		marked: make(map[string]bool),
	}
}

// Prefix converts a target triple into its variable prefix
// (x86_64-unknown-linux-gnu -> X86_64_UNKNOWN_LINUX_GNU).
func Prefix(target string) string {
	return strings.ToUpper(strings.ReplaceAll(target, "-", "_"))
}

// Get returns the value of <PREFIX>_<name>, falling back to name
func (e *Env) Get(name string) (string, bool) {
	if e.prefix != "" {
		if v, ok := e.get(e.prefix + "_" + name); ok {
			return v, true
		}
	}
	return e.get(name)
}

// Value is Get without the presence flag
func (e *Env) Value(name string) string {
	v, _ := e.Get(name)
	return v
}

// Lookup reads name as is, without prefixing or recording it
func (e *Env) Lookup(name string) (string, bool) {
	return e.lookup(name)
}

// Seen returns every variable name consulted so far, in lookup order
func (e *Env) Seen() []string {
	out := make([]string, len(e.seen))
	copy(out, e.seen)
	return out
}

func (e *Env) get(key string) (string, bool) {
	if !e.marked[key] {
		e.marked[key] = true
		e.seen = append(e.seen, key)
	}

	v, ok := e.lookup(key)
	if ok {
		e.logger.Printf("%s = %s", key, v)
	} else {
		e.logger.Printf("%s unset", key)
	}
	return v, ok
}

// MapLookup adapts a map to a LookupFunc
func MapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}
