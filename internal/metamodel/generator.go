package metamodel

import (
	"errors"
	"fmt"
	"io"
	"log"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"pii-metamodel/internal/analyze"
	"pii-metamodel/internal/common"
	"pii-metamodel/internal/diagnostic"
	"pii-metamodel/internal/match"
)

// DefaultCacheSize is the number of field lists the collector memoises.
const DefaultCacheSize = 1024

// Option configures a Generator.
type Option func(*Generator)

// WithIgnore sets the ignore list: exact qualified type names, "pkg.*"
// package wildcards and "pkg/..." package-tree wildcards.
func WithIgnore(entries []string) Option {
	return func(g *Generator) {
		g.ignoreEntries = slices.Clone(entries)
	}
}

// WithContainers registers generic types ("pkg.Name") that are walked as
// containers of their type arguments.
func WithContainers(names []string) Option {
	return func(g *Generator) {
		g.containers = slices.Clone(names)
	}
}

// WithLogger sets the logger for progress messages. Nil discards them.
func WithLogger(logger *log.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithCacheSize sets how many field lists are memoised. Zero disables it.
func WithCacheSize(size int) Option {
	return func(g *Generator) {
		g.cacheSize = size
	}
}

// WithMarkerKey sets the struct tag key markers are read from.
func WithMarkerKey(key string) Option {
	return func(g *Generator) {
		g.markerKey = key
	}
}

// WithConcurrency bounds the number of types GenerateAll works on at once.
// Values below one keep the default of GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.concurrency = n
		}
	}
}

// Generator builds DataProtectionConfig values from holder types. Its
// configuration is fixed at construction, so a Generator may be shared by
// concurrent callers.
type Generator struct {
	ignoreEntries []string
	containers    []string
	cacheSize     int
	markerKey     string
	concurrency   int
	logger        *log.Logger

	ignore     *IgnoreMatcher
	classifier *Classifier
	collector  *FieldCollector
}

// NewGenerator creates a Generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		cacheSize:   DefaultCacheSize,
		markerKey:   analyze.DefaultMarkerKey,
		concurrency: runtime.GOMAXPROCS(0),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.logger == nil {
		g.logger = log.New(io.Discard, "", 0)
	}

	if g.markerKey == "" {
		g.markerKey = analyze.DefaultMarkerKey
	}

	g.ignore = NewIgnoreMatcher(g.ignoreEntries)
	g.classifier = NewClassifier(g.containers)
	g.collector = NewFieldCollector(g.cacheSize)

	return g
}

// Generate builds the metamodel of a single holder type.
func (g *Generator) Generate(root *analyze.TypeInfo) (DataProtectionConfig, error) {
	cfg, _, err := g.GenerateWithDiagnostics(root)
	return cfg, err
}

// GenerateWithDiagnostics is Generate that also reports the warnings and
// notes collected on the way.
func (g *Generator) GenerateWithDiagnostics(root *analyze.TypeInfo) (DataProtectionConfig, *diagnostic.Diagnostics, error) {
	diags := &diagnostic.Diagnostics{}

	root = root.Deref()
	if root == nil {
		return DataProtectionConfig{}, diags, &GenerationError{Err: ErrNoDataHolder, Type: analyze.TypeString(nil)}
	}

	w := &walk{g: g, root: analyze.TypeString(root), diags: diags}

	if !root.Markers.Holder {
		return DataProtectionConfig{}, diags, &GenerationError{Err: ErrNoDataHolder, Type: w.root}
	}

	fields := g.collector.Collect(root)

	subjectPath, err := w.subjectID(fields)
	if err != nil {
		return DataProtectionConfig{}, diags, err
	}

	sensitive, err := w.extract(fields, Root, []*analyze.TypeInfo{root})
	if err != nil {
		return DataProtectionConfig{}, diags, err
	}

	if sensitive == nil {
		sensitive = []SensitiveDataConfig{}
	}

	g.logger.Printf("%s: subject id %s, %d sensitive path(s)", w.root, subjectPath, len(sensitive))

	return DataProtectionConfig{
		Type:          w.root,
		Revision:      root.Markers.Revision,
		SubjectID:     SubjectIDConfig{Path: subjectPath},
		SensitiveData: sensitive,
	}, diags, nil
}

// GenerateAll builds the metamodel of every holder type of the given
// packages, in package order and then declaration order. A nil package list
// means every package of the graph in load order. Generation stops at the
// first failing type.
func (g *Generator) GenerateAll(
	graph *analyze.TypeGraph,
	packages []string,
) (DataProtectionConfigList, *diagnostic.Diagnostics, error) {
	diags := &diagnostic.Diagnostics{}

	if graph == nil {
		return DataProtectionConfigList{}, diags, errors.New("type graph is nil")
	}

	if packages == nil {
		packages = graph.PackageOrder
	}

	var roots []*analyze.TypeInfo

	for _, pkg := range packages {
		if _, ok := graph.Packages[pkg]; !ok {
			return DataProtectionConfigList{}, diags, fmt.Errorf("package %s is not loaded", pkg)
		}

		holders := graph.HolderTypes(pkg)
		g.logger.Printf("%s: %d holder type(s)", pkg, len(holders))
		roots = append(roots, holders...)
	}

	type result struct {
		cfg   DataProtectionConfig
		diags *diagnostic.Diagnostics
		err   error
	}

	results := make([]result, len(roots))

	var group errgroup.Group
	group.SetLimit(g.concurrency)

	for i, root := range roots {
		group.Go(func() error {
			cfg, d, err := g.GenerateWithDiagnostics(root)
			results[i] = result{cfg: cfg, diags: d, err: err}
			return nil
		})
	}

	_ = group.Wait()

	list := NewDataProtectionConfigList()

	for i, r := range results {
		diags.Merge(*r.diags)

		if r.err != nil {
			return DataProtectionConfigList{}, diags, fmt.Errorf("package %s: %w", roots[i].ID.PkgPath, r.err)
		}

		list.Config = append(list.Config, r.cfg)
	}

	return list, diags, nil
}

// walk holds the state of one Generate call.
type walk struct {
	g     *Generator
	root  string
	diags *diagnostic.Diagnostics
}

// subjectID returns the path of the first subject id field. Only the fields
// of the root type and its ancestors are considered.
func (w *walk) subjectID(fields []analyze.FieldInfo) (string, error) {
	var subjects []analyze.FieldInfo

	for _, f := range fields {
		if f.Markers(w.g.markerKey).SubjectID {
			subjects = append(subjects, f)
		}
	}

	subject, ok := common.First(subjects)
	if !ok {
		return "", &GenerationError{Err: ErrNoSubjectID, Type: w.root}
	}

	path := Extend(Root, subject.JSONName())

	if common.IsMultiple(subjects) {
		names := make([]string, 0, len(subjects))
		for _, f := range subjects {
			names = append(names, f.JSONName())
		}

		w.diags.AddWarning(diagnostic.CodeMultipleSubjectIDs,
			fmt.Sprintf("several subject id fields (%s), using the first", strings.Join(names, ", ")),
			w.root, path)
	}

	return path, nil
}

// extract returns the sensitive entries reachable from fields. Sensitive
// fields of this level come first, then the entries found by descending
// into each field in order.
func (w *walk) extract(fields []analyze.FieldInfo, path string, stack []*analyze.TypeInfo) ([]SensitiveDataConfig, error) {
	var out []SensitiveDataConfig

	markers := make([]analyze.FieldMarkers, len(fields))

	for i, f := range fields {
		m := f.Markers(w.g.markerKey)
		markers[i] = m

		fieldPath := Extend(path, f.JSONName())
		w.checkMarkers(m, path, fieldPath)

		if m.SubjectID || !m.Sensitive {
			continue
		}

		out = append(out, SensitiveDataConfig{
			Path:             fieldPath,
			ReplacementValue: m.Replacement,
		})
	}

	for i, f := range fields {
		if markers[i].SubjectID {
			continue
		}

		nested, err := w.descend(f.Type, Extend(path, f.JSONName()), stack)
		if err != nil {
			return nil, err
		}

		out = append(out, nested...)
	}

	return out, nil
}

// descend walks into a value of type t found at path.
func (w *walk) descend(t *analyze.TypeInfo, path string, stack []*analyze.TypeInfo) ([]SensitiveDataConfig, error) {
	t = t.Deref()
	if t == nil {
		return nil, nil
	}

	if w.g.ignore.ShouldIgnore(t) {
		w.diags.AddInfo(diagnostic.CodeIgnoredType,
			fmt.Sprintf("%s is ignored, its fields are not inspected", analyze.TypeString(t)),
			w.root, path)
		return nil, nil
	}

	if w.g.classifier.IsLeaf(t) {
		return nil, nil
	}

	switch w.g.classifier.Classify(t) {
	case CategoryArray, CategoryContainer:
		return w.descendElements(t, CollectionMarker(path), stack)

	case CategoryMap:
		return w.descendElements(t, MapMarker(path), stack)

	default:
		if i := slices.Index(stack, t); i >= 0 {
			return nil, w.recursionError(stack[i:], t)
		}

		next := append(stack[:len(stack):len(stack)], t)

		return w.extract(w.g.collector.Collect(t), path, next)
	}
}

func (w *walk) descendElements(t *analyze.TypeInfo, path string, stack []*analyze.TypeInfo) ([]SensitiveDataConfig, error) {
	var out []SensitiveDataConfig

	for _, elem := range w.g.classifier.Elements(t) {
		nested, err := w.descend(elem, path, stack)
		if err != nil {
			return nil, err
		}

		out = append(out, nested...)
	}

	return out, nil
}

func (w *walk) checkMarkers(m analyze.FieldMarkers, path, fieldPath string) {
	for _, opt := range m.Unknown {
		name, _, _ := strings.Cut(opt, "=")

		w.diags.AddWarningWithSuggestions(diagnostic.CodeUnknownMarkerOption,
			fmt.Sprintf("unknown %s tag option %q", w.g.markerKey, opt),
			w.root, fieldPath,
			match.Suggest(name, analyze.KnownFieldOptions, match.DefaultSuggestionScore))
	}

	if !m.SubjectID {
		return
	}

	if m.Sensitive {
		w.diags.AddWarning(diagnostic.CodeSubjectIDSensitive,
			"field is marked both subject id and sensitive, treated as subject id only",
			w.root, fieldPath)
	}

	if path != Root {
		w.diags.AddWarning(diagnostic.CodeNestedSubjectID,
			"subject id marker on a nested field has no effect",
			w.root, fieldPath)
	}
}

func (w *walk) recursionError(cycle []*analyze.TypeInfo, t *analyze.TypeInfo) error {
	chain := make([]string, 0, len(cycle)+1)
	for _, c := range cycle {
		chain = append(chain, analyze.TypeString(c))
	}

	chain = append(chain, analyze.TypeString(t))

	return &GenerationError{Err: ErrRecursiveType, Type: w.root, Chain: chain}
}
