// Package config loads gosketch settings from TOML files.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/philipparndt/gosketch/internal/eraser"
	"github.com/philipparndt/gosketch/internal/session"
	"github.com/philipparndt/gosketch/internal/state"
	"github.com/philipparndt/gosketch/internal/surface"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is the file representation of the settings
type Config struct {
	Style   Style   `toml:"style"`
	Surface Surface `toml:"surface"`
	Eraser  Eraser  `toml:"eraser"`
	Overlay Overlay `toml:"overlay"`
}

// Style holds the initial drawing style and the palette offered by hosts
type Style struct {
	Color       string   `toml:"color"`
	PencilWidth float64  `toml:"pencil_width"`
	EraserWidth float64  `toml:"eraser_width"`
	Palette     []string `toml:"palette"`
}

// Surface holds the 3D projection constants
type Surface struct {
	NormalOffset         float64 `toml:"normal_offset"`
	MinSpacing           float64 `toml:"min_spacing"`
	DepthBias            float64 `toml:"depth_bias"`
	PencilIndicatorScale float64 `toml:"pencil_indicator_scale"`
	EraserIndicatorScale float64 `toml:"eraser_indicator_scale"`
}

// Eraser holds the 3D eraser constants
type Eraser struct {
	RadiusScale float64 `toml:"radius_scale"`
}

// Overlay holds the size of the headless drawing surface
type Overlay struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Default returns the built-in settings
func Default() Config {
	sc := surface.DefaultConfig()
	return Config{
		Style: Style{
			Color:       FormatColor(state.DefaultStyle().Color),
			PencilWidth: state.DefaultStyle().PencilWidth,
			EraserWidth: state.DefaultStyle().EraserWidth,
			Palette:     []string{"#ef4444", "#22c55e", "#3b82f6", "#eab308", "#a855f7", "#ffffff"},
		},
		Surface: Surface{
			NormalOffset:         sc.NormalOffset,
			MinSpacing:           sc.MinSpacing,
			DepthBias:            sc.DepthBias,
			PencilIndicatorScale: sc.PencilIndicatorScale,
			EraserIndicatorScale: sc.EraserIndicatorScale,
		},
		Eraser:  Eraser{RadiusScale: eraser.DefaultConfig().RadiusScale},
		Overlay: Overlay{Width: 1280, Height: 720},
	}
}

// Load reads a TOML file over the defaults. An empty path yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := finish(cfg, md); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := finish(cfg, md); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func finish(cfg Config, md toml.MetaData) error {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	return cfg.Validate()
}

// Validate checks ranges and colors
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	if _, err := ParseColor(c.Style.Color); err != nil {
		errs = append(errs, err)
	}
	for _, p := range c.Style.Palette {
		if _, err := ParseColor(p); err != nil {
			errs = append(errs, err)
		}
	}
	check(c.Style.PencilWidth >= state.MinPencilWidth && c.Style.PencilWidth <= state.MaxPencilWidth,
		"style.pencil_width %v outside %d-%d", c.Style.PencilWidth, state.MinPencilWidth, state.MaxPencilWidth)
	check(c.Style.EraserWidth >= state.MinEraserWidth && c.Style.EraserWidth <= state.MaxEraserWidth,
		"style.eraser_width %v outside %d-%d", c.Style.EraserWidth, state.MinEraserWidth, state.MaxEraserWidth)
	check(c.Surface.NormalOffset > 0, "surface.normal_offset must be positive")
	check(c.Surface.MinSpacing >= 0, "surface.min_spacing must not be negative")
	check(c.Surface.DepthBias >= 0, "surface.depth_bias must not be negative")
	check(c.Surface.PencilIndicatorScale > 0, "surface.pencil_indicator_scale must be positive")
	check(c.Surface.EraserIndicatorScale > 0, "surface.eraser_indicator_scale must be positive")
	check(c.Eraser.RadiusScale > 0, "eraser.radius_scale must be positive")
	check(c.Overlay.Width > 0 && c.Overlay.Height > 0, "overlay size %dx%d must be positive", c.Overlay.Width, c.Overlay.Height)

	return errors.Join(errs...)
}

// Session converts the settings into engine configuration
func (c Config) Session() (session.Config, error) {
	col, err := ParseColor(c.Style.Color)
	if err != nil {
		return session.Config{}, err
	}
	return session.Config{
		Style: state.Style{
			Color:       col,
			PencilWidth: c.Style.PencilWidth,
			EraserWidth: c.Style.EraserWidth,
		},
		Surface: surface.Config{
			NormalOffset:         c.Surface.NormalOffset,
			MinSpacing:           c.Surface.MinSpacing,
			DepthBias:            c.Surface.DepthBias,
			PencilIndicatorScale: c.Surface.PencilIndicatorScale,
			EraserIndicatorScale: c.Surface.EraserIndicatorScale,
		},
		Eraser:        eraser.Config{RadiusScale: c.Eraser.RadiusScale},
		OverlayWidth:  c.Overlay.Width,
		OverlayHeight: c.Overlay.Height,
	}, nil
}

// Palette returns the parsed palette colors
func (c Config) Palette() ([]color.NRGBA, error) {
	out := make([]color.NRGBA, 0, len(c.Style.Palette))
	for _, p := range c.Style.Palette {
		col, err := ParseColor(p)
		if err != nil {
			return nil, err
		}
		out = append(out, col)
	}
	return out, nil
}

// ParseColor parses a #rgb or #rrggbb color into an opaque color
func ParseColor(s string) (color.NRGBA, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: color %q: %v", ErrInvalid, s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// FormatColor renders c as #rrggbb, ignoring alpha
func FormatColor(c color.NRGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}
