// Package units provides a registry of physical units, Unit, Quantity and
// Measurement values bound to a registry, and conversion of any compatible
// value into the molecular-dynamics unit system (nanometer, unified atomic
// mass unit, picosecond, kelvin, mole, elementary charge per picosecond).
//
// Values remember the registry that created them. Mixing values from two
// registries is an error; use Default for the process-wide registry and
// NewRegistry for isolated ones.
package units

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/mdunits/internal/adapters/definitions" //nolint:depguard // Default loader for library registries
	"go.trai.ch/mdunits/internal/adapters/logger"      //nolint:depguard // Default logger for library registries
	"go.trai.ch/mdunits/internal/core/domain"
	"go.trai.ch/mdunits/internal/core/ports"
	"go.trai.ch/zerr"
)

// unitDef is a fully resolved unit: one of it equals factor root units
// (plus offset for offset units such as degC).
type unitDef struct {
	name   string
	factor float64
	offset float64
	root   domain.UnitsContainer
	dims   domain.Dimensionality
}

type prefixDef struct {
	name   string
	factor float64
}

// prefixKey is one spelling of a prefix; symbol spellings combine only with
// unit symbols, name spellings only with unit names and aliases.
type prefixKey struct {
	key    string
	prefix *prefixDef
	symbol bool
}

// nameRef identifies a canonical unit name, possibly prefixed.
type nameRef struct {
	canonical string
	base      string
	prefix    float64
}

// Registry defines units, parses unit expressions and converts between them.
// A Registry is immutable after construction and safe for concurrent use.
type Registry struct {
	fingerprint string
	logger      ports.Logger

	raw        map[string]domain.UnitDefinition
	defs       map[string]*unitDef
	names      map[string]string // unit name or alias -> unit name
	symbols    map[string]string // unit symbol -> unit name
	prefixKeys []prefixKey
	baseDims   map[domain.Dimension]string // base dimension -> base unit
	derived    map[domain.Dimension]string // derived dimension -> definition
	dimCache   map[domain.Dimension]domain.Dimensionality

	mu    sync.RWMutex
	cache map[string]nameRef

	md *Table
}

// NewRegistry builds a registry from the embedded defaults unless options
// say otherwise. Malformed definitions fail construction entirely.
func NewRegistry(opts ...Option) (*Registry, error) {
	return NewRegistryContext(context.Background(), opts...)
}

// NewRegistryContext is NewRegistry with a context for reading definition files.
func NewRegistryContext(ctx context.Context, opts ...Option) (*Registry, error) {
	o := options{logger: logger.Nop{}}
	for _, opt := range opts {
		opt(&o)
	}

	bundle := o.bundle
	if bundle == nil {
		loader := o.loader
		if loader == nil {
			loader = definitions.NewLoader(o.logger)
		}
		var err error
		bundle, err = loader.Load(ctx, o.defaultsPath, o.extra...)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to load unit definitions")
		}
	}
	return build(bundle, o.logger)
}

func build(bundle *domain.DefinitionBundle, log ports.Logger) (*Registry, error) {
	r := &Registry{
		fingerprint: bundle.Fingerprint,
		logger:      log,
		raw:         make(map[string]domain.UnitDefinition),
		defs:        make(map[string]*unitDef),
		names:       make(map[string]string),
		symbols:     make(map[string]string),
		baseDims:    make(map[domain.Dimension]string),
		derived:     make(map[domain.Dimension]string),
		dimCache:    make(map[domain.Dimension]domain.Dimensionality),
		cache:       make(map[string]nameRef),
	}

	prefixes := make(map[string]*prefixDef)
	for _, set := range bundle.Sets {
		for _, p := range set.Prefixes {
			if err := r.addPrefix(prefixes, p, set.Source); err != nil {
				return nil, err
			}
		}
		for _, u := range set.Units {
			if err := r.addUnit(u, set.Source); err != nil {
				return nil, err
			}
		}
		for _, d := range set.Dimensions {
			if _, ok := r.derived[d.Name]; ok {
				return nil, definitionConflict("dimension", string(d.Name), set.Source)
			}
			r.derived[d.Name] = d.Definition
		}
	}
	for dim := range r.derived {
		if _, ok := r.baseDims[dim]; ok {
			return nil, definitionConflict("dimension", string(dim), "")
		}
	}
	// Longest spelling first so "da" wins over "d".
	slices.SortStableFunc(r.prefixKeys, func(a, b prefixKey) int {
		return cmp.Compare(len(b.key), len(a.key))
	})

	visiting := make(map[string]bool)
	names := make([]string, 0, len(r.raw))
	for name := range r.raw {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if _, err := r.resolveDefinition(name, visiting); err != nil {
			return nil, err
		}
	}

	dimNames := make([]domain.Dimension, 0, len(r.derived))
	for dim := range r.derived {
		dimNames = append(dimNames, dim)
	}
	slices.Sort(dimNames)
	dimVisiting := make(map[domain.Dimension]bool)
	for _, dim := range dimNames {
		if _, err := r.resolveDimension(dim, dimVisiting); err != nil {
			return nil, err
		}
	}

	md, err := NewTable(r, MDUnitExpressions)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build molecular-dynamics unit table")
	}
	r.md = md

	r.logger.Debug("unit registry ready", "units", len(r.defs), "fingerprint", r.fingerprint)
	return r, nil
}

func (r *Registry) addPrefix(prefixes map[string]*prefixDef, p domain.PrefixDefinition, src string) error {
	if _, ok := prefixes[p.Name]; ok {
		return definitionConflict("prefix", p.Name, src)
	}
	def := &prefixDef{name: p.Name, factor: p.Factor}
	prefixes[p.Name] = def
	r.prefixKeys = append(r.prefixKeys, prefixKey{key: p.Name, prefix: def})
	for _, alias := range p.Aliases {
		// Single-letter aliases such as "u" for micro are symbol spellings.
		r.prefixKeys = append(r.prefixKeys, prefixKey{key: alias, prefix: def, symbol: utf8Len(alias) <= 2})
	}
	if p.Symbol != "" {
		r.prefixKeys = append(r.prefixKeys, prefixKey{key: p.Symbol, prefix: def, symbol: true})
	}
	return nil
}

func (r *Registry) addUnit(u domain.UnitDefinition, src string) error {
	if u.Name == domain.DimensionlessName {
		return definitionConflict("unit", u.Name, src)
	}
	if _, ok := r.raw[u.Name]; ok {
		return definitionConflict("unit", u.Name, src)
	}
	if other, ok := r.names[u.Name]; ok {
		return zerr.With(definitionConflict("unit", u.Name, src), "alias_of", other)
	}
	r.raw[u.Name] = u
	r.names[u.Name] = u.Name
	for _, alias := range u.Aliases {
		if _, ok := r.names[alias]; ok {
			return definitionConflict("alias", alias, src)
		}
		r.names[alias] = u.Name
	}
	if u.Symbol != "" {
		if _, ok := r.symbols[u.Symbol]; ok {
			return definitionConflict("symbol", u.Symbol, src)
		}
		r.symbols[u.Symbol] = u.Name
	}
	if u.IsBase() {
		if other, ok := r.baseDims[u.Dimension]; ok {
			return zerr.With(definitionConflict("dimension", string(u.Dimension), src), "base_unit", other)
		}
		r.baseDims[u.Dimension] = u.Name
	}
	return nil
}

// resolveDefinition computes the root factor and dimensionality of a
// declared unit, resolving the units its definition refers to first.
func (r *Registry) resolveDefinition(name string, visiting map[string]bool) (*unitDef, error) {
	if def, ok := r.defs[name]; ok {
		return def, nil
	}
	raw := r.raw[name]
	if raw.IsBase() {
		def := &unitDef{
			name:   name,
			factor: 1,
			root:   domain.Single(domain.UnitName(name), domain.Int(1)),
			dims:   domain.Single(raw.Dimension, domain.Int(1)),
		}
		r.defs[name] = def
		return def, nil
	}
	if visiting[name] {
		return nil, zerr.With(zerr.Wrap(domain.ErrDefinitionCycle, "unit definition refers to itself"), "unit", name)
	}
	visiting[name] = true
	defer delete(visiting, name)

	p, err := parseExpression(raw.Definition)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse unit definition"), "unit", name)
	}
	def := &unitDef{
		name:   name,
		factor: p.factor,
		offset: raw.Offset,
		root:   domain.UnitsContainer{},
		dims:   domain.Dimensionality{},
	}
	for _, it := range p.names.Items() {
		if it.Key == domain.DimensionlessName {
			continue
		}
		ref, ok := r.parseName(it.Key)
		if !ok {
			return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrUndefinedUnit, "unit definition refers to an unknown unit"), "unit", name), "reference", it.Key)
		}
		base, err := r.resolveDefinition(ref.base, visiting)
		if err != nil {
			return nil, err
		}
		if base.offset != 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrOffsetUnitCalculus, "unit definition refers to an offset unit"), "unit", name)
		}
		def.factor *= it.Exponent.Pow(base.factor * ref.prefix)
		def.root = def.root.Mul(base.root.Pow(it.Exponent))
		def.dims = def.dims.Mul(base.dims.Pow(it.Exponent))
	}
	r.defs[name] = def
	return def, nil
}

func (r *Registry) resolveDimension(dim domain.Dimension, visiting map[domain.Dimension]bool) (domain.Dimensionality, error) {
	if _, ok := r.baseDims[dim]; ok {
		return domain.Single(dim, domain.Int(1)), nil
	}
	if d, ok := r.dimCache[dim]; ok {
		return d, nil
	}
	expr, ok := r.derived[dim]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrMalformedDefinitions, "dimension definition refers to an unknown dimension"), "dimension", string(dim))
	}
	if visiting[dim] {
		return nil, zerr.With(zerr.Wrap(domain.ErrDefinitionCycle, "dimension definition refers to itself"), "dimension", string(dim))
	}
	visiting[dim] = true
	defer delete(visiting, dim)

	p, err := parseExpression(expr)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse dimension definition"), "dimension", string(dim))
	}
	out := domain.Dimensionality{}
	for _, it := range p.names.Items() {
		sub, err := r.resolveDimension(domain.Dimension(it.Key), visiting)
		if err != nil {
			return nil, err
		}
		out = out.Mul(sub.Pow(it.Exponent))
	}
	r.dimCache[dim] = out
	return out, nil
}

// parseName maps a spelling ("nm", "nanometers", "Å") to a canonical unit name.
func (r *Registry) parseName(s string) (nameRef, bool) {
	if ref, ok := r.matchName(s, true); ok {
		return ref, true
	}
	if trimmed, ok := strings.CutSuffix(s, "s"); ok && trimmed != "" {
		return r.matchName(trimmed, false)
	}
	return nameRef{}, false
}

func (r *Registry) matchName(s string, symbols bool) (nameRef, bool) {
	if name, ok := r.names[s]; ok {
		return nameRef{canonical: name, base: name, prefix: 1}, true
	}
	if symbols {
		if name, ok := r.symbols[s]; ok {
			return nameRef{canonical: name, base: name, prefix: 1}, true
		}
	}
	for _, pk := range r.prefixKeys {
		if pk.symbol && !symbols {
			continue
		}
		rest, ok := strings.CutPrefix(s, pk.key)
		if !ok || rest == "" {
			continue
		}
		var name string
		if pk.symbol {
			name, ok = r.symbols[rest]
		} else {
			name, ok = r.names[rest]
		}
		if !ok || r.raw[name].Offset != 0 {
			continue
		}
		return nameRef{canonical: pk.prefix.name + name, base: name, prefix: pk.prefix.factor}, true
	}
	return nameRef{}, false
}

// lookup is parseName with a cache; it is safe for concurrent use.
func (r *Registry) lookup(s string) (nameRef, error) {
	r.mu.RLock()
	ref, ok := r.cache[s]
	r.mu.RUnlock()
	if ok {
		return ref, nil
	}
	ref, ok = r.parseName(s)
	if !ok {
		return nameRef{}, zerr.With(zerr.Wrap(domain.ErrUndefinedUnit, "unit is not defined in the registry"), "unit", s)
	}
	r.mu.Lock()
	r.cache[s] = ref
	r.mu.Unlock()
	return ref, nil
}

// definition returns the resolved definition of a canonical or raw unit name.
func (r *Registry) definition(s string) (unitDef, error) {
	ref, err := r.lookup(s)
	if err != nil {
		return unitDef{}, err
	}
	base := r.defs[ref.base]
	return unitDef{
		name:   ref.canonical,
		factor: base.factor * ref.prefix,
		offset: base.offset,
		root:   base.root,
		dims:   base.dims,
	}, nil
}

// evaluation is the root factor and dimensionality of a units container.
type evaluation struct {
	factor float64
	dims   domain.Dimensionality
	root   domain.UnitsContainer
	// offset is set only when the container is a single offset unit to the first power.
	offset    float64
	hasOffset bool
}

func (r *Registry) evaluate(c domain.UnitsContainer) (evaluation, error) {
	ev := evaluation{factor: 1, dims: domain.Dimensionality{}, root: domain.UnitsContainer{}}
	for _, it := range c.Items() {
		def, err := r.definition(string(it.Key))
		if err != nil {
			return evaluation{}, err
		}
		if def.offset != 0 {
			if len(c) != 1 || it.Exponent != domain.Int(1) {
				return evaluation{}, zerr.With(zerr.Wrap(domain.ErrOffsetUnitCalculus, "offset unit used in a compound unit"), "unit", c.Format(domain.DimensionlessName))
			}
			ev.offset = def.offset
			ev.hasOffset = true
		}
		ev.factor *= it.Exponent.Pow(def.factor)
		ev.dims = ev.dims.Mul(def.dims.Pow(it.Exponent))
		ev.root = ev.root.Mul(def.root.Pow(it.Exponent))
	}
	return ev, nil
}

// containerOf resolves raw expression names into canonical unit names.
func (r *Registry) containerOf(p parsed) (domain.UnitsContainer, error) {
	out := domain.UnitsContainer{}
	for _, it := range p.names.Items() {
		if it.Key == domain.DimensionlessName {
			continue
		}
		ref, err := r.lookup(it.Key)
		if err != nil {
			return nil, err
		}
		out = out.Mul(domain.Single(domain.UnitName(ref.canonical), it.Exponent))
	}
	return out, nil
}

// newUnit binds a container of canonical names to the registry.
func (r *Registry) newUnit(c domain.UnitsContainer) (Unit, error) {
	dims := domain.Dimensionality{}
	for _, it := range c.Items() {
		def, err := r.definition(string(it.Key))
		if err != nil {
			return Unit{}, err
		}
		dims = dims.Mul(def.dims.Pow(it.Exponent))
	}
	return Unit{reg: r, units: c, dims: dims}, nil
}

// ParseUnit parses a unit expression such as "kJ / mol" or "nm**2".
// Expressions with a numeric scale other than 1 are rejected.
func (r *Registry) ParseUnit(expr string) (Unit, error) {
	p, err := parseExpression(expr)
	if err != nil {
		return Unit{}, err
	}
	if p.factor != 1 {
		return Unit{}, zerr.With(zerr.Wrap(domain.ErrInvalidExpression, "unit expression has a numeric factor"), "expression", expr)
	}
	c, err := r.containerOf(p)
	if err != nil {
		return Unit{}, err
	}
	return r.newUnit(c)
}

// MustUnit is like ParseUnit but panics on error.
func (r *Registry) MustUnit(expr string) Unit {
	u, err := r.ParseUnit(expr)
	if err != nil {
		panic(err)
	}
	return u
}

// Dimensionless returns the registry's identity unit.
func (r *Registry) Dimensionless() Unit {
	return Unit{reg: r, units: domain.UnitsContainer{}, dims: domain.Dimensionality{}}
}

// Quantity returns magnitude expressed in the unit given by expr.
func (r *Registry) Quantity(magnitude float64, expr string) (Quantity, error) {
	u, err := r.ParseUnit(expr)
	if err != nil {
		return Quantity{}, err
	}
	return NewQuantity(magnitude, u), nil
}

// MustQuantity is like Quantity but panics on error.
func (r *Registry) MustQuantity(magnitude float64, expr string) Quantity {
	q, err := r.Quantity(magnitude, expr)
	if err != nil {
		panic(err)
	}
	return q
}

// ParseQuantity parses an expression such as "1.5 nm" or "300 K"; numeric
// factors are folded into the magnitude.
func (r *Registry) ParseQuantity(expr string) (Quantity, error) {
	p, err := parseExpression(expr)
	if err != nil {
		return Quantity{}, err
	}
	c, err := r.containerOf(p)
	if err != nil {
		return Quantity{}, err
	}
	u, err := r.newUnit(c)
	if err != nil {
		return Quantity{}, err
	}
	return NewQuantity(p.factor, u), nil
}

// Measurement returns value ± uncertainty expressed in the unit given by expr.
func (r *Registry) Measurement(value, uncertainty float64, expr string) (Measurement, error) {
	u, err := r.ParseUnit(expr)
	if err != nil {
		return Measurement{}, err
	}
	return NewMeasurement(value, uncertainty, u), nil
}

// ParseDimensionality parses a dimension expression such as
// "[length] / [time]" or "[energy]" into base dimensions.
func (r *Registry) ParseDimensionality(expr string) (Dimensionality, error) {
	p, err := parseExpression(expr)
	if err != nil {
		return nil, err
	}
	if p.factor != 1 {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidExpression, "dimension expression has a numeric factor"), "expression", expr)
	}
	out := domain.Dimensionality{}
	for _, it := range p.names.Items() {
		dim := domain.Dimension(it.Key)
		if !dim.Valid() {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidExpression, "not a dimension"), "dimension", it.Key)
		}
		d, ok := r.dimCache[dim]
		if !ok {
			// Unknown base dimensions pass through; a unit table rejects them on resolve.
			d = domain.Single(dim, domain.Int(1))
		}
		out = out.Mul(d.Pow(it.Exponent))
	}
	return out, nil
}

// BaseDimensions returns the base dimensions of the registry, sorted.
func (r *Registry) BaseDimensions() []Dimension {
	dims := make([]Dimension, 0, len(r.baseDims))
	for d := range r.baseDims {
		dims = append(dims, d)
	}
	slices.Sort(dims)
	return dims
}

// Defined reports whether expr names a unit known to the registry.
func (r *Registry) Defined(name string) bool {
	_, err := r.lookup(name)
	return err == nil
}

// Fingerprint identifies the definitions the registry was built from.
// Recipes carry it so they are only rebuilt against a matching registry.
func (r *Registry) Fingerprint() string { return r.fingerprint }

// MDTable returns the canonical molecular-dynamics unit table.
func (r *Registry) MDTable() *Table { return r.md }

// Logger returns the logger the registry reports diagnostics to.
func (r *Registry) Logger() ports.Logger { return r.logger }

func definitionConflict(kind, name, src string) error {
	err := zerr.With(zerr.Wrap(domain.ErrDuplicateDefinition, kind+" is already defined"), kind, name)
	if src != "" {
		err = zerr.With(err, "source", src)
	}
	return err
}

func utf8Len(s string) int { return len([]rune(s)) }
