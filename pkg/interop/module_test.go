package interop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackb/konan-interop/pkg/fqname"
	"github.com/stackb/konan-interop/pkg/manifest"
	"github.com/stackb/konan-interop/pkg/symbol"
)

// loadInterop builds a module holding the library fragments and the
// synthetic packages of the library.
func loadInterop(name string, d *manifest.Descriptor, fragments ...symbol.Fragment) *Module {
	module := NewModule(name, fragments...)
	lib := NewLibrary(d)
	module.AddFragments(lib.CreateSyntheticPackages(module, fragments).Fragments()...)
	return module
}

func TestFindClassifierThroughAliases(t *testing.T) {
	file := symbol.NewClass("platform.posix.FILE", "posix")
	nsObject := symbol.NewClass("platform.posix.NSObject", "posix")
	own := symbol.NewPackageFragment("platform.posix", "posix", file, nsObject)
	module := loadInterop("posix", &manifest.Descriptor{
		Library:   "posix",
		IsInterop: true,
		Package:   "platform.posix",
	}, own)

	for name, tc := range map[string]struct {
		lookup fqname.Name
		want   *symbol.Symbol
	}{
		"direct":                {lookup: "platform.posix.FILE", want: file},
		"struct tag":            {lookup: "cnames.structs.FILE", want: file},
		"objc class":            {lookup: "objcnames.classes.NSObject", want: nsObject},
		"objc protocol":         {lookup: "objcnames.protocols.NSObject", want: nsObject},
		"unknown tag":           {lookup: "cnames.structs.DIR"},
		"not a forward package": {lookup: "cnames.FILE"},
	} {
		t.Run(name, func(t *testing.T) {
			got, ok := module.FindClassifier(tc.lookup)
			assert.Equal(t, tc.want != nil, ok)
			assert.Same(t, tc.want, got)
		})
	}
}

func TestFindClassifierAliasesOnlyOwnPackage(t *testing.T) {
	own := symbol.NewPackageFragment("platform.posix", "posix", symbol.NewClass("platform.posix.FILE", "posix"))
	other := symbol.NewPackageFragment("platform.linux", "posix", symbol.NewClass("platform.linux.epoll_event", "posix"))
	module := loadInterop("posix", &manifest.Descriptor{
		Library:   "posix",
		IsInterop: true,
		Package:   "platform.posix",
	}, own, other)

	_, ok := module.FindClassifier("cnames.structs.epoll_event")
	assert.False(t, ok)
	_, ok = module.FindClassifier("platform.linux.epoll_event")
	assert.True(t, ok)
}

func TestFindClassifierExportedToConsumer(t *testing.T) {
	stat := symbol.NewClass("platform.posix.stat", "posix")
	posix := loadInterop("posix", &manifest.Descriptor{
		Library:                   "posix",
		IsInterop:                 true,
		Package:                   "platform.posix",
		ExportForwardDeclarations: []fqname.Name{"cnames.structs.stat", "cnames.structs.undefined"},
	}, symbol.NewPackageFragment("platform.posix", "posix", stat))

	consumer := NewModule("app")
	consumer.AddDependency(posix)

	got, ok := consumer.FindClassifier("platform.posix.stat")
	require.True(t, ok)
	assert.Same(t, stat, got)

	got, ok = consumer.FindClassifier("cnames.structs.stat")
	require.True(t, ok)
	assert.Same(t, stat, got)

	// exported without a definition: accepted, but never resolves
	_, ok = consumer.FindClassifier("platform.posix.undefined")
	assert.False(t, ok)
}

func TestFindClassifierExportedFromDependency(t *testing.T) {
	// darwin re-exports a forward declaration that only posix defines.
	stat := symbol.NewClass("platform.posix.stat", "posix")
	posix := loadInterop("posix", &manifest.Descriptor{
		Library:   "posix",
		IsInterop: true,
		Package:   "platform.posix",
	}, symbol.NewPackageFragment("platform.posix", "posix", stat))

	darwin := loadInterop("darwin", &manifest.Descriptor{
		Library:                   "darwin",
		IsInterop:                 true,
		Package:                   "platform.darwin",
		ExportForwardDeclarations: []fqname.Name{"cnames.structs.stat"},
	}, symbol.NewPackageFragment("platform.darwin", "darwin", symbol.NewClass("platform.darwin.NSObject", "darwin")))
	darwin.AddDependency(posix)

	got, ok := darwin.FindClassifier("platform.darwin.stat")
	require.True(t, ok)
	assert.Same(t, stat, got)
}

func TestFindClassifierSelfExportTerminates(t *testing.T) {
	file := symbol.NewClass("platform.posix.FILE", "posix")
	module := loadInterop("posix", &manifest.Descriptor{
		Library:                   "posix",
		IsInterop:                 true,
		Package:                   "platform.posix",
		ExportForwardDeclarations: []fqname.Name{"platform.posix.FILE", "platform.posix.DIR"},
	}, symbol.NewPackageFragment("platform.posix", "posix", file))

	got, ok := module.FindClassifier("platform.posix.FILE")
	require.True(t, ok)
	assert.Same(t, file, got)

	_, ok = module.FindClassifier("platform.posix.DIR")
	assert.False(t, ok)
}

func TestFindClassifierMutualExportsTerminate(t *testing.T) {
	a := NewModule("a")
	b := NewModule("b")
	a.AddFragments(NewExportedForwardDeclarationsFragment(a, "pkg.a", []fqname.Name{"pkg.b.X"}))
	b.AddFragments(NewExportedForwardDeclarationsFragment(b, "pkg.b", []fqname.Name{"pkg.a.X"}))
	a.AddDependency(b)
	b.AddDependency(a)

	_, ok := a.FindClassifier("pkg.a.X")
	assert.False(t, ok)
}

func TestModuleFragmentsAppendOnly(t *testing.T) {
	f1 := symbol.NewPackageFragment("a", "test")
	f2 := symbol.NewPackageFragment("b", "test")
	module := NewModule("main", f1)
	snapshot := module.Fragments()
	module.AddFragments(f2)

	assert.Len(t, snapshot, 1)
	assert.Equal(t, []symbol.Fragment{f1, f2}, module.Fragments())
	assert.Equal(t, []symbol.Fragment{f2}, module.PackageFragments("b"))
	assert.Equal(t, "main", module.Name())
}
