// Package workspace discovers the members of a Go workspace and snapshots
// their source text for scanning.
//
// A member is one module: its go.mod path doubles as the rebuild-trigger key
// handed to the build orchestration, and its source files are the scan input.
// Discovery itself is pluggable behind the Provider interface; the default
// implementation rides golang.org/x/tools/go/packages so module boundaries,
// build constraints and go.work composition match what the go toolchain sees.
package workspace

import (
	"os"
	"sort"
	"unicode/utf8"

	"golang.org/x/tools/go/packages"

	"github.com/lens-go/opticgen/errors"
	"github.com/lens-go/opticgen/logger"
)

// Member is one buildable unit of the scanned workspace
type Member struct {
	// ManifestPath is the filesystem location of the member's go.mod.
	// Used only as a rebuild-trigger key.
	ManifestPath string

	// SourceFiles lists the member's Go source files. Nil when the
	// discovery request did not ask for them.
	SourceFiles []string
}

// Request carries the discovery options. The generator always issues the
// same request: manifests and sources are not watched (the incremental
// engine owns rebuild decisions), and source file paths are always dumped.
type Request struct {
	WatchManifest    bool
	WatchSourceFiles bool
	DumpSourceFiles  bool

	// Patterns are package patterns in the go toolchain's syntax
	Patterns []string
}

// Provider enumerates workspace members. Implementations are queried exactly
// once per generator run.
type Provider interface {
	Discover(req Request) ([]Member, error)
}

// SourceText is one source file's path and full content
type SourceText struct {
	Path string
	Text string
}

// Aggregate queries the provider once and reads every discovered source
// file. Any unreadable or non-UTF-8 file aborts the run: a partial source
// snapshot would silently produce an incomplete optics set.
func Aggregate(provider Provider, patterns []string) (manifests []string, sources []SourceText, err error) {
	members, err := provider.Discover(Request{
		WatchManifest:    false,
		WatchSourceFiles: false,
		DumpSourceFiles:  true,
		Patterns:         patterns,
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "workspace discovery failed")
	}

	for _, member := range members {
		manifests = append(manifests, member.ManifestPath)

		for _, path := range member.SourceFiles {
			data, readErr := os.ReadFile(path)
			if readErr != nil {
				return nil, nil, errors.Wrapf(errors.ErrSourceRead, "%s: %v", path, readErr)
			}
			if !utf8.Valid(data) {
				return nil, nil, errors.Wrapf(errors.ErrSourceRead, "%s: not valid UTF-8", path)
			}
			sources = append(sources, SourceText{Path: path, Text: string(data)})
		}

		logger.Debugw("aggregated member",
			logger.FieldManifest, member.ManifestPath,
			logger.FieldFileCount, len(member.SourceFiles))
	}

	return manifests, sources, nil
}

// GoPackagesProvider discovers members through the go toolchain's package
// loader. Packages are grouped by owning module; packages outside any module
// (stdlib, cached deps) are ignored.
type GoPackagesProvider struct {
	// Dir is the directory discovery runs from; "" means the working
	// directory.
	Dir string
}

func (p *GoPackagesProvider) Discover(req Request) ([]Member, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedModule,
		Dir:  p.Dir,
	}

	patterns := req.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load workspace packages")
	}

	byManifest := make(map[string][]string)
	for _, pkg := range pkgs {
		if pkg.Module == nil || pkg.Module.GoMod == "" {
			continue
		}
		manifest := pkg.Module.GoMod
		if _, seen := byManifest[manifest]; !seen {
			byManifest[manifest] = nil
		}
		if req.DumpSourceFiles {
			byManifest[manifest] = append(byManifest[manifest], pkg.GoFiles...)
		}
	}

	members := make([]Member, 0, len(byManifest))
	for manifest, files := range byManifest {
		members = append(members, Member{
			ManifestPath: manifest,
			SourceFiles:  dedupe(files),
		})
	}

	// Map iteration order is random; keep member order stable for logs and
	// watch registration. Downstream results do not depend on it.
	sort.Slice(members, func(i, j int) bool {
		return members[i].ManifestPath < members[j].ManifestPath
	})

	return members, nil
}

func dedupe(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(paths))
	out := paths[:0]
	for _, p := range paths {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
