// Package definitions loads unit definition files for the unit registry.
package definitions

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/mdunits/internal/core/domain"
	"go.trai.ch/mdunits/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only definitions file version understood by Parse.
const SupportedVersion = "1"

// EmbeddedSource names the built-in defaults in errors and bundles.
const EmbeddedSource = "embedded:defaults.yaml"

//go:embed defaults.yaml
var defaults []byte

var _ ports.DefinitionLoader = (*Loader)(nil)

// Defaults returns a copy of the embedded default definitions.
func Defaults() []byte {
	return bytes.Clone(defaults)
}

// Loader implements ports.DefinitionLoader for YAML files on disk.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

type source struct {
	name string
	data []byte
}

// Load reads the defaults (embedded when defaultsPath is empty) and every
// extra file. Files are read concurrently but parsed and returned in
// argument order.
func (l *Loader) Load(ctx context.Context, defaultsPath string, extra ...string) (*domain.DefinitionBundle, error) {
	paths := make([]string, 0, len(extra)+1)
	paths = append(paths, defaultsPath)
	paths = append(paths, extra...)

	sources := make([]source, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		if i == 0 && p == "" {
			sources[0] = source{name: EmbeddedSource, data: defaults}
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Clean(p)) //nolint:gosec // path is provided by user
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to read definitions file"), "path", p)
			}
			sources[i] = source{name: p, data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bundle := &domain.DefinitionBundle{Sets: make([]domain.DefinitionSet, 0, len(sources))}
	blobs := make([][]byte, 0, len(sources))
	for _, src := range sources {
		set, err := Parse(src.data, src.name)
		if err != nil {
			return nil, err
		}
		bundle.Sets = append(bundle.Sets, *set)
		blobs = append(blobs, src.data)
		if l.logger != nil {
			l.logger.Debug("loaded unit definitions", "source", src.name,
				"prefixes", len(set.Prefixes), "units", len(set.Units))
		}
	}
	bundle.Fingerprint = Fingerprint(blobs...)
	return bundle, nil
}

// LoadEmbedded parses only the embedded defaults.
func LoadEmbedded() (*domain.DefinitionBundle, error) {
	set, err := Parse(defaults, EmbeddedSource)
	if err != nil {
		return nil, err
	}
	return &domain.DefinitionBundle{
		Sets:        []domain.DefinitionSet{*set},
		Fingerprint: Fingerprint(defaults),
	}, nil
}

// Fingerprint computes a stable XXHash over the given definition sources.
func Fingerprint(blobs ...[]byte) string {
	hasher := xxhash.New()
	for _, b := range blobs {
		_, _ = hasher.Write(b)
		_, _ = hasher.Write([]byte{0}) // Separator
	}
	return fmt.Sprintf("%016x", hasher.Sum64())
}

// Parse decodes a definitions file into a domain.DefinitionSet.
func Parse(data []byte, sourceName string) (*domain.DefinitionSet, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, malformed("definitions file is empty", sourceName)
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrMalformedDefinitions, err.Error()), "source", sourceName)
	}

	if file.Version != SupportedVersion {
		return nil, zerr.With(malformed("unsupported definitions version", sourceName), "version", file.Version)
	}

	set := &domain.DefinitionSet{Source: sourceName}
	seen := make(map[string]bool)

	for _, p := range file.Prefixes {
		if p.Name == "" {
			return nil, malformed("prefix without a name", sourceName)
		}
		if p.Factor <= 0 {
			return nil, zerr.With(malformed("prefix factor must be positive", sourceName), "prefix", p.Name)
		}
		if seen["prefix:"+p.Name] {
			return nil, duplicate("prefix", p.Name, sourceName)
		}
		seen["prefix:"+p.Name] = true
		set.Prefixes = append(set.Prefixes, domain.PrefixDefinition{
			Name:    p.Name,
			Symbol:  p.Symbol,
			Aliases: p.Aliases,
			Factor:  p.Factor,
		})
	}

	for _, d := range file.Dimensions {
		dim := domain.Dimension(d.Name)
		if !dim.Valid() || d.Definition == "" {
			return nil, zerr.With(malformed("invalid dimension definition", sourceName), "dimension", d.Name)
		}
		if seen["dimension:"+d.Name] {
			return nil, duplicate("dimension", d.Name, sourceName)
		}
		seen["dimension:"+d.Name] = true
		set.Dimensions = append(set.Dimensions, domain.DimensionDefinition{Name: dim, Definition: d.Definition})
	}

	for _, u := range file.Units {
		def, err := toUnitDefinition(u, sourceName)
		if err != nil {
			return nil, err
		}
		if seen["unit:"+u.Name] {
			return nil, duplicate("unit", u.Name, sourceName)
		}
		seen["unit:"+u.Name] = true
		set.Units = append(set.Units, def)
	}

	return set, nil
}

func toUnitDefinition(u UnitDTO, sourceName string) (domain.UnitDefinition, error) {
	if u.Name == "" {
		return domain.UnitDefinition{}, malformed("unit without a name", sourceName)
	}
	switch {
	case u.Dimension != "" && u.Definition != "":
		return domain.UnitDefinition{}, zerr.With(malformed("unit has both a dimension and a definition", sourceName), "unit", u.Name)
	case u.Dimension == "" && u.Definition == "":
		return domain.UnitDefinition{}, zerr.With(malformed("unit has neither a dimension nor a definition", sourceName), "unit", u.Name)
	}
	dim := domain.Dimension(u.Dimension)
	if u.Dimension != "" && !dim.Valid() {
		return domain.UnitDefinition{}, zerr.With(malformed("invalid base dimension", sourceName), "unit", u.Name)
	}
	if u.Dimension != "" && u.Offset != 0 {
		return domain.UnitDefinition{}, zerr.With(malformed("base unit cannot have an offset", sourceName), "unit", u.Name)
	}
	return domain.UnitDefinition{
		Name:       u.Name,
		Symbol:     u.Symbol,
		Aliases:    u.Aliases,
		Dimension:  dim,
		Definition: u.Definition,
		Offset:     u.Offset,
	}, nil
}

func malformed(msg, sourceName string) error {
	return zerr.With(zerr.Wrap(domain.ErrMalformedDefinitions, msg), "source", sourceName)
}

func duplicate(kind, name, sourceName string) error {
	return zerr.With(zerr.With(zerr.Wrap(domain.ErrDuplicateDefinition, "duplicate "+kind), kind, name), "source", sourceName)
}
