package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/stackb/konan-interop/pkg/declfile"
	"github.com/stackb/konan-interop/pkg/manifest"
	"github.com/stackb/konan-interop/pkg/symbol"
)

const (
	// ManifestFilename is the property file every library directory holds.
	ManifestFilename = "manifest"
	// DeclarationsFilename is the optional declaration file of a library.
	DeclarationsFilename = "declarations.star"
)

// Library is a library read from disk.
type Library struct {
	// Name is the library name, the base name of its directory.
	Name string
	// Dir is the library directory.
	Dir string
	// Properties is the content of the manifest.
	Properties manifest.Properties
	// Fragments are the package contributions of the library.
	Fragments []*symbol.PackageFragment
}

// SymbolFragments returns the fragments as symbol.Fragment values.
func (l *Library) SymbolFragments() []symbol.Fragment {
	fragments := make([]symbol.Fragment, len(l.Fragments))
	for i, f := range l.Fragments {
		fragments[i] = f
	}
	return fragments
}

// Reader reads library directories.
type Reader struct {
	logger zerolog.Logger
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader) *Reader

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) ReaderOption {
	return func(r *Reader) *Reader {
		r.logger = logger
		return r
	}
}

// NewReader constructs a Reader.
func NewReader(options ...ReaderOption) *Reader {
	r := &Reader{logger: zerolog.Nop()}
	for _, opt := range options {
		r = opt(r)
	}
	return r
}

// Read loads the library in dir.  The manifest is required; a missing
// declaration file means the library contributes no declarations.
func (r *Reader) Read(dir string) (*Library, error) {
	name := filepath.Base(dir)
	props, err := manifest.ReadPropertiesFile(filepath.Join(dir, ManifestFilename))
	if err != nil {
		return nil, fmt.Errorf("library %s: %w", name, err)
	}

	lib := &Library{
		Name:       name,
		Dir:        dir,
		Properties: props,
	}

	declarations := filepath.Join(dir, DeclarationsFilename)
	fragments, err := declfile.NewLoader(name, declfile.WithLogger(r.logger)).LoadFile(declarations)
	switch {
	case err == nil:
		lib.Fragments = fragments
	case errors.Is(err, fs.ErrNotExist):
		r.logger.Debug().Str("library", name).Msg("no declaration file")
	default:
		return nil, fmt.Errorf("library %s: %w", name, err)
	}

	r.logger.Debug().
		Str("library", name).
		Int("fragments", len(lib.Fragments)).
		Msg("read library")

	return lib, nil
}

// ReadAll reads each directory in order.
func (r *Reader) ReadAll(dirs []string) ([]*Library, error) {
	libs := make([]*Library, 0, len(dirs))
	for _, dir := range dirs {
		lib, err := r.Read(dir)
		if err != nil {
			return nil, err
		}
		libs = append(libs, lib)
	}
	return libs, nil
}

// Discover returns the sorted directories under root that hold a manifest
// and match the doublestar pattern, such as "**" or "platform/*".
func Discover(root, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "**"
	}
	matches, err := doublestar.Glob(os.DirFS(root), path.Join(pattern, ManifestFilename))
	if err != nil {
		return nil, fmt.Errorf("discover libraries in %s: %w", root, err)
	}
	dirs := make([]string, 0, len(matches))
	for _, match := range matches {
		dirs = append(dirs, filepath.Join(root, filepath.FromSlash(path.Dir(match))))
	}
	sort.Strings(dirs)
	return dirs, nil
}
