package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pcj/mobyprogress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackb/konan-interop/pkg/builtins"
	"github.com/stackb/konan-interop/pkg/fqname"
	"github.com/stackb/konan-interop/pkg/library"
	"github.com/stackb/konan-interop/pkg/manifest"
	"github.com/stackb/konan-interop/pkg/symbol"
	"github.com/stackb/konan-interop/pkg/testutil"
)

type progressCapturer struct {
	mu  sync.Mutex
	Got []mobyprogress.Progress
}

func (c *progressCapturer) WriteProgress(p mobyprogress.Progress) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Got = append(c.Got, p)
	return nil
}

func builtinsSpace() *symbol.TrieSpace {
	return symbol.NewTrieSpace(builtins.ExpectedDeclarations("builtins")...)
}

func posixLibrary() *library.Library {
	return &library.Library{
		Name: "posix",
		Properties: manifest.Properties{
			"interop":                   "true",
			"package":                   "platform.posix",
			"exportForwardDeclarations": "cnames.structs.stat",
		},
		Fragments: []*symbol.PackageFragment{
			symbol.NewPackageFragment("platform.posix", "posix",
				symbol.NewClass("platform.posix.FILE", "posix"),
				symbol.NewClass("platform.posix.stat", "posix"),
			),
		},
	}
}

func stdlibLibrary() *library.Library {
	return &library.Library{
		Name:       "stdlib",
		Properties: manifest.Properties{"unique_name": "stdlib"},
		Fragments: []*symbol.PackageFragment{
			symbol.NewPackageFragment("kotlin", "stdlib", symbol.NewClass("kotlin.Any", "stdlib")),
		},
	}
}

func TestNew(t *testing.T) {
	s, err := New(builtinsSpace(), WithLogger(testutil.NewTestLogger(t)), WithModuleName("app"))
	require.NoError(t, err)
	assert.NotNil(t, s.Builtins().Get(builtins.GetPointerSize))
	assert.Equal(t, "app", s.Module().Name())
	assert.Empty(t, s.Module().Fragments())
}

func TestNewBuiltinsFailure(t *testing.T) {
	_, err := New(symbol.NewTrieSpace())
	require.Error(t, err)
	var ice *symbol.InternalConsistencyError
	require.True(t, errors.As(err, &ice))
	assert.ErrorIs(t, err, symbol.ErrSymbolNotFound)
}

func TestAddLibraries(t *testing.T) {
	progress := &progressCapturer{}
	s, err := New(builtinsSpace(),
		WithLogger(testutil.NewTestLogger(t)),
		WithParallelism(2),
		WithProgress(progress),
	)
	require.NoError(t, err)

	require.NoError(t, s.AddLibraries(stdlibLibrary(), posixLibrary()))

	loaded := s.Libraries()
	require.Len(t, loaded, 2)
	assert.Equal(t, "stdlib", loaded[0].Library.Name)
	assert.Nil(t, loaded[0].Interop)
	assert.Nil(t, loaded[0].Synthetic)
	assert.Equal(t, "posix", loaded[1].Library.Name)
	require.NotNil(t, loaded[1].Interop)
	assert.Equal(t, fqname.Name("platform.posix"), loaded[1].Interop.Package())

	var packages []fqname.Name
	for _, f := range s.Module().Fragments() {
		packages = append(packages, f.Package())
	}
	if diff := cmp.Diff([]fqname.Name{
		"kotlin",
		"platform.posix",
		"cnames.structs",
		"objcnames.classes",
		"objcnames.protocols",
		"platform.posix",
	}, packages); diff != "" {
		t.Errorf("packages (-want +got):\n%s", diff)
	}

	for name, tc := range map[string]struct {
		lookup fqname.Name
		want   fqname.Name
	}{
		"direct":   {lookup: "kotlin.Any", want: "kotlin.Any"},
		"alias":    {lookup: "cnames.structs.FILE", want: "platform.posix.FILE"},
		"declared": {lookup: "platform.posix.stat", want: "platform.posix.stat"},
		"missing":  {lookup: "cnames.structs.DIR"},
	} {
		t.Run(name, func(t *testing.T) {
			got, ok := s.Module().FindClassifier(tc.lookup)
			assert.Equal(t, tc.want != "", ok)
			if ok {
				assert.Equal(t, tc.want, got.Name)
			}
		})
	}

	require.Len(t, progress.Got, 2)
	assert.Equal(t, int64(2), progress.Got[1].Current)
	assert.Equal(t, int64(2), progress.Got[1].Total)
	assert.True(t, progress.Got[1].LastUpdate)
}

func TestAddLibrariesInconsistentManifest(t *testing.T) {
	s, err := New(builtinsSpace())
	require.NoError(t, err)

	broken := &library.Library{
		Name:       "broken",
		Properties: manifest.Properties{"interop": "true"},
	}
	err = s.AddLibraries(stdlibLibrary(), broken)
	require.Error(t, err)

	var cfgErr *manifest.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "broken", cfgErr.Library)
	assert.Equal(t, manifest.PackageProperty, cfgErr.Property)

	assert.Empty(t, s.Libraries())
	assert.Empty(t, s.Module().Fragments())
}

func TestAddLibrariesSkipsLoaded(t *testing.T) {
	s, err := New(builtinsSpace())
	require.NoError(t, err)

	require.NoError(t, s.AddLibraries(posixLibrary()))
	before := len(s.Module().Fragments())

	require.NoError(t, s.AddLibraries(posixLibrary(), posixLibrary()))
	assert.Len(t, s.Module().Fragments(), before)
	assert.Len(t, s.Libraries(), 1)
}

func TestAddLibrariesDeterministic(t *testing.T) {
	describe := func(parallelism int) []string {
		s, err := New(builtinsSpace(), WithParallelism(parallelism))
		require.NoError(t, err)
		libs := []*library.Library{stdlibLibrary(), posixLibrary()}
		for i := 0; i < 8; i++ {
			libs = append(libs, &library.Library{
				Name:       string(rune('a' + i)),
				Properties: manifest.Properties{"interop": "true", "package": "pkg"},
			})
		}
		require.NoError(t, s.AddLibraries(libs...))
		var out []string
		for _, f := range s.Module().Fragments() {
			out = append(out, string(f.Package()))
		}
		return out
	}
	if diff := cmp.Diff(describe(1), describe(8)); diff != "" {
		t.Errorf("(-sequential +concurrent):\n%s", diff)
	}
}
