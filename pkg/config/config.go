// Package config loads railsheet's TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/railsheet/config.toml (falling back to
// ~/.config/railsheet/config.toml) unless a path is given explicitly. A
// missing file is not an error: [Load] returns [Default] in that case.
//
// Example file:
//
//	[import]
//	line_color   = "#E3002B"
//	line_path    = "diagonal"
//	line_style   = "single-color"
//	station_type = "shmetro-basic"
//	id_length    = 10
//	zoom         = 100
//
//	[server]
//	addr          = "localhost:8080"
//	max_body_size = 33554432
//
// Values are checked with go-playground/validator; enum fields must name a
// known catalog entry.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/railsheet/pkg/errors"
	"github.com/matzehuels/railsheet/pkg/importer"
	"github.com/matzehuels/railsheet/pkg/network"
)

const (
	appName  = "railsheet"
	fileName = "config.toml"

	// DefaultAddr is the listen address of `railsheet serve`.
	DefaultAddr = "localhost:8080"

	// DefaultMaxBodySize caps request bodies accepted by the server (32 MiB).
	DefaultMaxBodySize = 32 << 20
)

// Config is the complete configuration.
type Config struct {
	Import ImportConfig `toml:"import"`
	Server ServerConfig `toml:"server"`
}

// ImportConfig holds defaults applied while building a graph from a workbook.
type ImportConfig struct {
	LineColor   string  `toml:"line_color" validate:"required,linecolor"`
	LinePath    string  `toml:"line_path" validate:"required,linepath"`
	LineStyle   string  `toml:"line_style" validate:"required,linestyle"`
	StationType string  `toml:"station_type" validate:"required,stationtype"`
	IDLength    int     `toml:"id_length" validate:"gte=4,lte=32"`
	Zoom        float64 `toml:"zoom" validate:"gt=0"`
	MinX        float64 `toml:"min_x"`
	MinY        float64 `toml:"min_y"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr        string `toml:"addr" validate:"required,hostname_port"`
	MaxBodySize int64  `toml:"max_body_size" validate:"gt=0"`
}

// Default returns the built-in configuration.
func Default() Config {
	view := network.DefaultViewMeta()
	return Config{
		Import: ImportConfig{
			LineColor:   network.DefaultLineColor,
			LinePath:    string(network.DefaultPathType),
			LineStyle:   string(network.DefaultStyleType),
			StationType: string(network.DefaultStationType),
			IDLength:    importer.DefaultIDLength,
			Zoom:        view.Zoom,
			MinX:        view.MinX,
			MinY:        view.MinY,
		},
		Server: ServerConfig{
			Addr:        DefaultAddr,
			MaxBodySize: DefaultMaxBodySize,
		},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the file at path on top of [Default] and validates the result.
// An empty path selects [Path]. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cannot parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config %s", path)
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// =============================================================================
// Validation
// =============================================================================

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	enum := func(ok func(string) bool) validator.Func {
		return func(fl validator.FieldLevel) bool { return ok(fl.Field().String()) }
	}
	must(v.RegisterValidation("linecolor", enum(func(s string) bool {
		_, ok := network.ParseColor(s)
		return ok
	})))
	must(v.RegisterValidation("linepath", enum(func(s string) bool {
		_, ok := network.ParsePathType(s)
		return ok
	})))
	must(v.RegisterValidation("linestyle", enum(func(s string) bool {
		_, ok := network.ParseStyleType(s)
		return ok
	})))
	must(v.RegisterValidation("stationtype", enum(func(s string) bool {
		_, ok := network.ParseStationType(s)
		return ok
	})))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	return validate.Struct(c)
}

// ImportOptions converts the import section into importer options.
// Enum values are parsed the same way workbook cells are, so a value that
// passed Validate is used verbatim.
func (c Config) ImportOptions(logger *log.Logger) importer.Options {
	path, _ := network.ParsePathType(c.Import.LinePath)
	style, _ := network.ParseStyleType(c.Import.LineStyle)
	stationType, _ := network.ParseStationType(c.Import.StationType)
	return importer.Options{
		Logger:             logger,
		DefaultColor:       c.Import.LineColor,
		DefaultPath:        path,
		DefaultStyle:       style,
		DefaultStationType: stationType,
		DefaultView:        network.ViewMeta{Zoom: c.Import.Zoom, MinX: c.Import.MinX, MinY: c.Import.MinY},
		NewID:              importer.NanoID(c.Import.IDLength),
	}
}
