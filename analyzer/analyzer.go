package analyzer

import (
	"errors"
	"fmt"
	"sort"

	"cxd/analyzer/pe"
	"cxd/analyzer/stringscan"
	"cxd/common/colorrange"
	C "cxd/common/constant"
	"cxd/common/safemap"
)

var (
	ErrUnknownAnalyzer = errors.New("unknown analyzer")
	ErrCheckFailed     = errors.New("analyzer cannot handle input")
)

// Analyzer produces labeled ranges for one input file.
//
// Check reports whether the input can be handled and caches its answer.
// Parse must only be called after Check returned true; repeated calls return
// the ranges computed by the first one.
type Analyzer interface {
	Check() bool
	Parse() []colorrange.Range
}

// Constructor builds an analyzer for the file at path. Colors are handed out
// to the produced ranges in turn.
type Constructor func(path string, colors []C.Color) Analyzer

// analyzers maps a format name to its constructor.
var analyzers = safemap.NewSafeMap[string, Constructor]()

func init() {
	Register("pe", func(path string, colors []C.Color) Analyzer { return pe.New(path, colors) })
	Register("strings", func(path string, colors []C.Color) Analyzer { return stringscan.New(path, colors) })
}

// Register makes an analyzer available under name, replacing any previous one.
func Register(name string, ctor Constructor) {
	analyzers.Set(name, ctor)
}

// Names returns the registered analyzer names in sorted order.
func Names() []string {
	names := analyzers.Keys()
	sort.Strings(names)
	return names
}

// New builds the analyzer registered under name. Nil or empty colors mean constant.AnalyzerColors.
func New(name, path string, colors []C.Color) (Analyzer, error) {
	ctor, ok := analyzers.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s. Options are: %v", ErrUnknownAnalyzer, name, Names())
	}
	if len(colors) == 0 {
		colors = C.AnalyzerColors
	}
	return ctor(path, colors), nil
}

// Run checks and parses in one go.
func Run(name, path string) ([]colorrange.Range, error) {
	a, err := New(name, path, nil)
	if err != nil {
		return nil, err
	}
	if !a.Check() {
		return nil, fmt.Errorf("%s on %s: %w", name, path, ErrCheckFailed)
	}
	return a.Parse(), nil
}
