package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"tracehook.dev/pkg/tracehook/internal/adapter"
	m "tracehook.dev/pkg/tracehook/internal/model"
	"tracehook.dev/pkg/tracehook/internal/module"
)

// DefaultModulePatterns selects the archive entries parsed as modules.
var DefaultModulePatterns = []string{"assemblies/*.dll"}

const (
	stagingSuffix = ".tracehook"
	artifactDir   = "instrumented"
	reportsDir    = "reports"
	reportFile    = "last-run.yaml"
)

// PackageModel opens package archives and builds their read-only module tree.
type PackageModel interface {
	// Open opens the archive at path and removes stale staging artifacts
	// left by a previous session.
	Open(path m.Path) (*Package, error)

	// Parse decodes every module entry in parallel.
	Parse(ctx context.Context, pkg *Package) error
}

// ModelOptions configures a PackageModel.
type ModelOptions struct {
	// Patterns are path.Match globs selecting module entries.
	Patterns []string
	// Threads bounds parallel module decoding. Zero means unbounded.
	Threads int
}

type packageModel struct {
	archive adapter.ArchiveAdapter
	fs      adapter.StagingFSAdapter
	opts    ModelOptions
}

// NewPackageModel constructs a PackageModel.
func NewPackageModel(archive adapter.ArchiveAdapter, fs adapter.StagingFSAdapter, opts ModelOptions) PackageModel {
	if len(opts.Patterns) == 0 {
		opts.Patterns = DefaultModulePatterns
	}

	return &packageModel{archive: archive, fs: fs, opts: opts}
}

// Package is an opened package archive. After Parse its module tree is
// immutable and safe for concurrent readers.
type Package struct {
	path    m.Path
	root    m.Path
	reader  adapter.ArchiveReader
	entries []string

	mu      sync.RWMutex
	parsed  bool
	modules []*m.Module
	methods map[m.MethodIdentity]m.MethodDefinition
}

func (pm *packageModel) Open(p m.Path) (*Package, error) {
	reader, err := pm.archive.Open(p)
	if err != nil {
		slog.Error("Failed to open package", "path", p, "error", err)

		if errors.Is(err, adapter.ErrMalformedArchive) {
			return nil, fmt.Errorf("%w: %w", ErrMalformedPackage, err)
		}

		return nil, fmt.Errorf("failed to open package %s: %w", p, err)
	}

	pkg := &Package{
		path:   p,
		root:   StagingRoot(p),
		reader: reader,
	}

	for _, e := range reader.Entries() {
		if matchAny(pm.opts.Patterns, e.Name) {
			pkg.entries = append(pkg.entries, e.Name)
		}
	}

	if err := pm.fs.RemoveAll(pkg.ArtifactDir()); err != nil {
		_ = reader.Close()
		return nil, fmt.Errorf("failed to remove stale artifacts: %w", err)
	}

	slog.Debug("opened package", "path", p, "modules", len(pkg.entries))

	return pkg, nil
}

func (pm *packageModel) Parse(ctx context.Context, pkg *Package) error {
	modules := make([]*m.Module, len(pkg.entries))

	group, gctx := errgroup.WithContext(ctx)
	if pm.opts.Threads > 0 {
		group.SetLimit(pm.opts.Threads)
	}

	for i, entry := range pkg.entries {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			data, err := pkg.reader.Read(entry)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrCorruptModule, entry, err)
			}

			mod, err := module.Decode(data)
			if err != nil {
				slog.Error("Failed to decode module", "entry", entry, "error", err)
				return fmt.Errorf("%w: %s: %w", ErrCorruptModule, entry, err)
			}

			modules[i] = buildModule(entry, int64(len(data)), mod)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	methods := make(map[m.MethodIdentity]m.MethodDefinition)

	for _, mod := range modules {
		for _, t := range mod.Types {
			for _, md := range allMethods(t) {
				methods[md.Identity] = md
			}
		}
	}

	pkg.mu.Lock()
	pkg.modules = modules
	pkg.methods = methods
	pkg.parsed = true
	pkg.mu.Unlock()

	return nil
}

// StagingRoot returns "<dir>/<stem>.tracehook" for a package path.
func StagingRoot(p m.Path) m.Path {
	base := filepath.Base(string(p))
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	return m.Path(filepath.Join(filepath.Dir(string(p)), stem+stagingSuffix))
}

// ReportPath returns where the last run report of the package at p is stored.
func ReportPath(p m.Path) m.Path {
	return m.Path(filepath.Join(string(StagingRoot(p)), reportsDir, reportFile))
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, err := path.Match(p, name); err == nil && ok {
			return true
		}
	}

	return false
}

// Path returns the archive location.
func (p *Package) Path() m.Path { return p.path }

// Root returns the staging root owned by this package.
func (p *Package) Root() m.Path { return p.root }

// ArtifactDir returns the directory holding the staged package.
func (p *Package) ArtifactDir() m.Path {
	return m.Path(filepath.Join(string(p.root), artifactDir))
}

// Artifact returns the deterministic staging artifact path.
func (p *Package) Artifact() m.Path {
	return m.Path(filepath.Join(string(p.ArtifactDir()), filepath.Base(string(p.path))))
}

// ReportPath returns where the last run report is stored.
func (p *Package) ReportPath() m.Path {
	return ReportPath(p.path)
}

// Entries returns the module entry names in archive order.
func (p *Package) Entries() []string {
	return append([]string(nil), p.entries...)
}

// Archive returns the open archive reader.
func (p *Package) Archive() adapter.ArchiveReader { return p.reader }

// ReadModule returns a fresh, mutable decode of a module entry.
func (p *Package) ReadModule(entry string) (*module.Module, error) {
	data, err := p.reader.Read(entry)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptModule, entry, err)
	}

	mod, err := module.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptModule, entry, err)
	}

	return mod, nil
}

// Parsed reports whether Parse completed.
func (p *Package) Parsed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.parsed
}

// Modules returns the parsed modules in archive order.
func (p *Package) Modules() []*m.Module {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return append([]*m.Module(nil), p.modules...)
}

// Module returns the parsed module for an entry name.
func (p *Package) Module(entry string) (*m.Module, error) {
	for _, mod := range p.Modules() {
		if mod.Entry == entry {
			return mod, nil
		}
	}

	return nil, fmt.Errorf("module %q: %w", entry, ErrNotFound)
}

// Types returns the user-visible types of mod in declaration order.
func (p *Package) Types(mod *m.Module) []*m.TypeDefinition {
	var out []*m.TypeDefinition

	for _, t := range mod.Types {
		if t.UserVisible {
			out = append(out, t)
		}
	}

	return out
}

// ListMembers returns constructors, then properties, then plain methods,
// each in declaration order. Enum types list their fields.
func (p *Package) ListMembers(t *m.TypeDefinition) []m.Member {
	return append([]m.Member(nil), t.Members...)
}

// Methods returns every eligible method of every user-visible type.
func (p *Package) Methods() []m.MethodDefinition {
	var out []m.MethodDefinition

	for _, mod := range p.Modules() {
		for _, t := range p.Types(mod) {
			for _, member := range t.Members {
				switch x := member.(type) {
				case m.Constructor:
					if x.Method.Eligible() {
						out = append(out, x.Method)
					}
				case m.Method:
					if x.Method.Eligible() {
						out = append(out, x.Method)
					}
				case m.Property, m.EnumField:
				}
			}
		}
	}

	return out
}

// EnumerateCandidates pairs every eligible method with its display key.
func (p *Package) EnumerateCandidates() []m.Candidate {
	methods := p.Methods()
	out := make([]m.Candidate, len(methods))

	for i, md := range methods {
		out[i] = m.Candidate{DisplayKey: md.Identity.String(), Identity: md.Identity}
	}

	return out
}

// Method returns the definition of a method by identity, including
// accessors and methods of hidden types.
func (p *Package) Method(id m.MethodIdentity) (m.MethodDefinition, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	md, ok := p.methods[id]
	if !ok {
		return m.MethodDefinition{}, fmt.Errorf("method %s: %w", id, ErrNotFound)
	}

	return md, nil
}

// Resolve maps a display key back to an eligible method identity.
func (p *Package) Resolve(key string) (m.MethodIdentity, error) {
	key = strings.TrimSpace(key)

	if i := strings.LastIndex(key, " ["); i > 0 && strings.HasSuffix(key, "]") {
		key = key[:i]
	}

	for _, c := range p.EnumerateCandidates() {
		if c.DisplayKey == key {
			return c.Identity, nil
		}
	}

	return m.MethodIdentity{}, fmt.Errorf("candidate %q: %w", key, ErrNotFound)
}

// Close releases the archive.
func (p *Package) Close() error {
	return p.reader.Close()
}

func allMethods(t *m.TypeDefinition) []m.MethodDefinition {
	var out []m.MethodDefinition

	for _, member := range t.Members {
		switch x := member.(type) {
		case m.Constructor:
			out = append(out, x.Method)
		case m.Method:
			out = append(out, x.Method)
		case m.Property:
			if x.Getter != nil {
				out = append(out, *x.Getter)
			}

			if x.Setter != nil {
				out = append(out, *x.Setter)
			}
		case m.EnumField:
		}
	}

	return out
}

func buildModule(entry string, size int64, mod *module.Module) *m.Module {
	out := &m.Module{Entry: entry, Name: mod.Name, Size: size}
	row := 0

	for _, t := range mod.Types {
		td := &m.TypeDefinition{
			Module:      entry,
			Namespace:   mod.String(t.Namespace),
			Name:        mod.String(t.Name),
			Base:        mod.TypeName(t.Base),
			Kind:        typeKind(t.Kind),
			UserVisible: !mod.IsSynthesized(t),
		}

		first := row + 1
		row += len(t.Methods)
		td.Members = buildMembers(entry, mod, t, td.FullName(), first)
		out.Types = append(out.Types, td)
	}

	return out
}

func typeKind(k module.TypeKind) m.TypeKind {
	switch k {
	case module.KindInterface:
		return m.KindInterface
	case module.KindEnum:
		return m.KindEnum
	default:
		return m.KindClass
	}
}

func buildMembers(entry string, mod *module.Module, t *module.TypeDef, typeName string, firstRow int) []m.Member {
	if t.Kind == module.KindEnum {
		var fields []m.Member

		for _, f := range t.Fields {
			if f.Flags&module.FieldLiteral != 0 {
				fields = append(fields, m.EnumField{Name: mod.String(f.Name), Value: f.Constant})
			}
		}

		return fields
	}

	defs := make([]m.MethodDefinition, len(t.Methods))
	accessor := make(map[int]bool)

	for i, md := range t.Methods {
		defs[i] = methodDefinition(entry, mod, md, typeName, firstRow+i)
	}

	var ctors, props, methods []m.Member

	for _, prop := range t.Properties {
		p := m.Property{Name: mod.String(prop.Name), Type: prop.Type.Format(mod)}

		if i := prop.Getter - firstRow; prop.Getter > 0 && i >= 0 && i < len(defs) {
			defs[i].IsGetter = true
			getter := defs[i]
			p.Getter = &getter
			accessor[i] = true
		}

		if i := prop.Setter - firstRow; prop.Setter > 0 && i >= 0 && i < len(defs) {
			defs[i].IsSetter = true
			setter := defs[i]
			p.Setter = &setter
			accessor[i] = true
		}

		props = append(props, p)
	}

	for i, md := range defs {
		switch {
		case accessor[i]:
		case md.IsConstructor:
			ctors = append(ctors, m.Constructor{Method: md})
		default:
			methods = append(methods, m.Method{Method: md})
		}
	}

	members := make([]m.Member, 0, len(ctors)+len(props)+len(methods))
	members = append(members, ctors...)
	members = append(members, props...)

	return append(members, methods...)
}

func methodDefinition(entry string, mod *module.Module, md *module.MethodDef, typeName string, row int) m.MethodDefinition {
	name := mod.String(md.Name)

	def := m.MethodDefinition{
		Identity:      identityOf(entry, mod, typeName, md),
		Row:           row,
		ReturnType:    md.Sig.Return.Format(mod),
		IsGetter:      md.Flags&module.MethodGetter != 0,
		IsSetter:      md.Flags&module.MethodSetter != 0,
		IsConstructor: md.Flags&module.MethodSpecialName != 0 && (name == ".ctor" || name == ".cctor"),
		IsStatic:      md.Flags&module.MethodStatic != 0,
		HasBody:       md.Body != nil && len(md.Body.Code) > 0,
	}

	for _, idx := range md.ParamNames {
		def.ParamNames = append(def.ParamNames, mod.String(idx))
	}

	return def
}

// identityOf omits the return type, and a nested type carries no enclosing
// type in its name. MethodDefs differing only in those share one identity,
// so a hook on it rewrites each of them.
func identityOf(entry string, mod *module.Module, typeName string, md *module.MethodDef) m.MethodIdentity {
	return m.MethodIdentity{
		Module:    entry,
		Type:      typeName,
		Name:      mod.String(md.Name),
		Signature: md.Sig.ParamList(mod),
	}
}
