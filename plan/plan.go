// Package plan composes the pure crop geometry into per-display wallpaper
// plans and renders them for consumption by platform tooling.
package plan

import (
	"fmt"

	"go.uber.org/multierr"

	"wpc/config"
	"wpc/crop"
	"wpc/display"
)

// Plan is the computed crop geometry for one wallpaper on one display.
type Plan struct {
	Display         string     `yaml:"display"`
	Surface         crop.Size  `yaml:"surface_size"`
	Screen          crop.Size  `yaml:"screen_size"`
	Zoom            float64    `yaml:"zoom"`
	Visible         crop.Rect  `yaml:"visible_rect"`
	Crop            crop.Rect  `yaml:"crop_rect"`
	Rest            crop.Point `yaml:"rest_point"`
	Fitted          crop.Rect  `yaml:"fitted_rect"`
	MaxSurfaceScale float64    `yaml:"max_surface_scale"`
}

// Document bundles every display plan for a single wallpaper.
type Document struct {
	Source string    `yaml:"source"`
	Format string    `yaml:"format,omitempty"`
	Raw    crop.Size `yaml:"raw_size"`
	Plans  []Plan    `yaml:"plans"`
}

// BuildPlan computes the crop geometry for one wallpaper on one display.
//
// The wallpaper is zoomed just enough to cover the parallax surface, the
// visible window inside it is resolved into a crop rectangle in raw pixel
// coordinates, and the rest position of the screen window inside the surface
// is derived from the configured alignment. When output fitting is enabled
// the crop is additionally rescaled to the configured box.
func BuildPlan(raw crop.Size, prof display.Profile, cfg *config.CropperConfig) (Plan, error) {
	if raw.Width <= 0 || raw.Height <= 0 {
		return Plan{}, fmt.Errorf("invalid wallpaper size %s", raw)
	}

	minDim, maxDim := prof.Dimensions()
	if minDim <= 0 || maxDim <= 0 {
		return Plan{}, fmt.Errorf("display %q has no usable dimensions", prof.Name)
	}

	rtl := cfg.Direction.IsRTL()

	surface := crop.IdealSurfaceSize(minDim, maxDim, prof.IsLarge(cfg.LargeWidthDp))
	if surface.Width <= 0 {
		// Travel ratio is negative for aspect ratios beyond roughly 5.5.
		return Plan{}, fmt.Errorf("display %q has no usable parallax surface", prof.Name)
	}
	screen := prof.Screen()

	zoom := crop.MinZoom(raw, surface)
	visible := crop.VisibleRect(raw, surface)
	cropRect := crop.Resolve(raw, visible, zoom, screen, surface, rtl)

	rest, err := crop.CenterPosition(surface, screen, cfg.Alignment.IsStart(), rtl)
	if err != nil {
		return Plan{}, fmt.Errorf("display %q: %w", prof.Name, err)
	}

	fitted := cropRect
	if cfg.Fit.Enabled() {
		fitted = crop.FitToSize(cropRect, cfg.Fit.Width, cfg.Fit.Height)
	}

	return Plan{
		Display:         prof.Name,
		Surface:         surface,
		Screen:          screen,
		Zoom:            zoom,
		Visible:         visible,
		Crop:            cropRect,
		Rest:            rest,
		Fitted:          fitted,
		MaxSurfaceScale: cfg.MaxSurfaceScale,
	}, nil
}

// Build computes plans for every configured display. Failures are collected
// per display; when any display fails the returned error is non-nil and the
// document contains only the plans that could be built.
func Build(source, format string, raw crop.Size, cfg *config.CropperConfig) (*Document, error) {
	doc := &Document{
		Source: source,
		Format: format,
		Raw:    raw,
		Plans:  make([]Plan, 0, len(cfg.Displays)),
	}

	var errs error
	for _, prof := range cfg.Displays {
		p, err := BuildPlan(raw, prof, cfg)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		doc.Plans = append(doc.Plans, p)
	}
	return doc, errs
}
