// Package app implements the application layer for mdunits.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	gonumunit "gonum.org/v1/gonum/unit"

	"go.trai.ch/mdunits/internal/adapters/gonum"  //nolint:depguard // Wired in app layer
	"go.trai.ch/mdunits/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/mdunits/internal/core/domain"
	"go.trai.ch/mdunits/internal/core/ports"
	"go.trai.ch/mdunits/units"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	definitions  ports.DefinitionLoader
	logger       ports.Logger

	cfg    *domain.Config
	reg    *units.Registry
	bridge *gonum.Bridge
}

// InitOptions controls App.Init.
type InitOptions struct {
	ConfigPath string
	Verbose    bool
}

// DimensionReport describes the dimensionality of an expression and its
// molecular-dynamics unit, if one exists.
type DimensionReport struct {
	Dimensionality units.Dimensionality
	MDUnits        units.Unit
	Supported      bool
}

// TableEntry is one row of the canonical unit table.
type TableEntry struct {
	Dimension units.Dimension
	Unit      units.Unit
}

// New creates a new App instance.
func New(cfgLoader ports.ConfigLoader, defLoader ports.DefinitionLoader, log ports.Logger) *App {
	return &App{
		configLoader: cfgLoader,
		definitions:  defLoader,
		logger:       log,
	}
}

// Init loads the configuration and builds the unit registry. The registry
// becomes the process default unless one is already in use.
func (a *App) Init(ctx context.Context, opts InitOptions) error {
	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}
	if err := a.applyLogLevel(cfg.LogLevel); err != nil {
		return err
	}

	reg, err := units.NewRegistryContext(ctx,
		units.WithDefinitionLoader(a.definitions),
		units.WithDefinitionsFile(cfg.DefaultsPath),
		units.WithExtraDefinitions(cfg.ExtraDefinitions...),
		units.WithLogger(a.logger),
	)
	if err != nil {
		return zerr.Wrap(err, "failed to build unit registry")
	}

	bridge, err := gonum.NewBridge(reg)
	if err != nil {
		return zerr.Wrap(err, "failed to build SI bridge")
	}

	if !units.SetDefault(reg) {
		a.logger.Debug("default registry already in use", "fingerprint", units.Default().Fingerprint())
	}
	a.logger.Debug("registry ready", "fingerprint", reg.Fingerprint(), "dimensions", len(reg.BaseDimensions()))

	a.cfg = cfg
	a.reg = reg
	a.bridge = bridge
	return nil
}

func (a *App) applyLogLevel(name string) error {
	level, err := logger.ParseLevel(name)
	if err != nil {
		return err
	}
	if l, ok := a.logger.(interface{ SetLevel(slog.Level) }); ok {
		l.SetLevel(level)
	}
	return nil
}

// Registry returns the registry built by Init.
func (a *App) Registry() *units.Registry { return a.reg }

// Config returns the configuration loaded by Init.
func (a *App) Config() *domain.Config { return a.cfg }

// Precision returns the number of significant digits for output, -1 for the shortest form.
func (a *App) Precision() int {
	if a.cfg == nil || a.cfg.Precision == 0 {
		return -1
	}
	return a.cfg.Precision
}

func (a *App) ready() error {
	if a.reg == nil {
		return domain.ErrNotInitialized
	}
	return nil
}

// Convert parses a quantity expression and converts it to target, or to
// molecular-dynamics units when target is empty.
func (a *App) Convert(expr, target string) (units.Quantity, error) {
	if err := a.ready(); err != nil {
		return units.Quantity{}, err
	}
	q, err := a.reg.ParseQuantity(expr)
	if err != nil {
		return units.Quantity{}, err
	}
	if target == "" {
		return q.ToMDUnits()
	}
	return q.ToExpr(target)
}

// Dimensions reports the dimensionality of a unit or dimension expression.
// Expressions starting with "[" are read as dimensions.
func (a *App) Dimensions(expr string) (DimensionReport, error) {
	if err := a.ready(); err != nil {
		return DimensionReport{}, err
	}
	var dims units.Dimensionality
	if strings.HasPrefix(strings.TrimSpace(expr), "[") {
		d, err := a.reg.ParseDimensionality(expr)
		if err != nil {
			return DimensionReport{}, err
		}
		dims = d
	} else {
		q, err := a.reg.ParseQuantity(expr)
		if err != nil {
			return DimensionReport{}, err
		}
		dims = q.Dimensionality()
	}

	report := DimensionReport{Dimensionality: dims}
	md, err := a.reg.MDTable().Resolve(dims)
	switch {
	case err == nil:
		report.MDUnits = md
		report.Supported = true
	case errors.Is(err, domain.ErrUnsupportedDimension):
		a.logger.Debug("no molecular-dynamics unit", "expression", expr)
	default:
		return DimensionReport{}, err
	}
	return report, nil
}

// Table returns the canonical unit table, ordered by dimension.
func (a *App) Table() ([]TableEntry, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	table := a.reg.MDTable()
	entries := make([]TableEntry, 0, len(table.Dimensions()))
	for _, d := range table.Dimensions() {
		u, _ := table.Lookup(d)
		entries = append(entries, TableEntry{Dimension: d, Unit: u})
	}
	return entries, nil
}

// ToSI parses a quantity expression and converts it to a gonum SI value.
func (a *App) ToSI(expr string) (*gonumunit.Unit, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	q, err := a.reg.ParseQuantity(expr)
	if err != nil {
		return nil, err
	}
	return a.bridge.ToGonum(q)
}

// Recipe encodes the reconstruction recipe of a quantity expression, or of
// a measurement when uncertainty is non-zero. format is "json" or "yaml".
func (a *App) Recipe(expr string, uncertainty float64, format string) ([]byte, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	q, err := a.reg.ParseQuantity(expr)
	if err != nil {
		return nil, err
	}
	rc := q.Recipe()
	if uncertainty != 0 {
		rc = units.NewMeasurement(q.Magnitude(), uncertainty, q.Units()).Recipe()
	}

	switch format {
	case "", "json":
		data, err := json.Marshal(rc)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to encode recipe")
		}
		return data, nil
	case "yaml":
		data, err := yaml.Marshal(rc)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to encode recipe")
		}
		return data, nil
	default:
		return nil, zerr.With(zerr.New("unknown recipe format"), "format", format)
	}
}

// Rebuild decodes a JSON or YAML recipe and reconstructs the value it
// describes against the application registry.
func (a *App) Rebuild(data []byte) (fmt.Stringer, error) {
	if err := a.ready(); err != nil {
		return nil, err
	}
	var rc units.Recipe
	// JSON is a subset of YAML, so one decoder covers both encodings.
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidRecipe, "failed to decode recipe"), "cause", err.Error())
	}
	v, err := units.Rebuild(a.reg, rc)
	if err != nil {
		return nil, err
	}
	s, ok := v.(fmt.Stringer)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidRecipe, "recipe rebuilt to an unprintable value"), "kind", string(rc.Kind))
	}
	return s, nil
}
