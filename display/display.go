// Package display describes the screens wallpapers are planned for.
package display

import (
	"errors"
	"fmt"

	"wpc/crop"
)

// DefaultLargeWidthDp is the smallest width class, in dp, at which a
// screen gets the tablet style parallax surface.
const DefaultLargeWidthDp = 720

// Profile is a single target screen. Geometry comes from configuration
// rather than a live display query: Real is the full panel resolution
// when known, RangeMin and RangeMax are the size extremes the platform
// reports across orientations and are used only as a fallback.
type Profile struct {
	Name            string    `yaml:"name" validate:"required"`
	Real            crop.Size `yaml:"real_size"`
	RangeMin        crop.Size `yaml:"min_size"`
	RangeMax        crop.Size `yaml:"max_size"`
	SmallestWidthDp int       `yaml:"smallest_width_dp" validate:"gte=0"`
}

// HasReal reports whether the full panel resolution is known.
func (p Profile) HasReal() bool {
	return p.Real.Width > 0 && p.Real.Height > 0
}

// Dimensions returns the short and long screen dimensions used for crop
// surface sizing. With a real size the pair is its min and max component.
// The range fallback takes the larger component of BOTH pairs, including
// the minimum one; launchers size their crop surfaces this way and plans
// have to agree with them pixel for pixel.
func (p Profile) Dimensions() (minDim, maxDim int) {
	maxDim = max(p.RangeMax.Width, p.RangeMax.Height)
	minDim = max(p.RangeMin.Width, p.RangeMin.Height)
	if p.HasReal() {
		maxDim = max(p.Real.Width, p.Real.Height)
		minDim = min(p.Real.Width, p.Real.Height)
	}
	return minDim, maxDim
}

// IsLarge reports whether the screen falls into the large width class for
// the given threshold in dp.
func (p Profile) IsLarge(thresholdDp int) bool {
	return p.SmallestWidthDp >= thresholdDp
}

// Screen returns the viewport size crops are resolved against.
func (p Profile) Screen() crop.Size {
	if p.HasReal() {
		return p.Real
	}
	return p.RangeMax
}

// Validate checks that the profile carries usable geometry, naming the
// first offending field.
func (p Profile) Validate() error {
	if len(p.Name) == 0 {
		return errors.New("display profile has no name")
	}
	if p.Real.Width < 0 || p.Real.Height < 0 {
		return fmt.Errorf("display %q: real_size cannot be negative, got %s", p.Name, p.Real)
	}
	if p.HasReal() {
		return nil
	}
	if p.RangeMin.Width <= 0 || p.RangeMin.Height <= 0 {
		return fmt.Errorf("display %q: min_size must be positive when real_size is not set, got %s", p.Name, p.RangeMin)
	}
	if p.RangeMax.Width <= 0 || p.RangeMax.Height <= 0 {
		return fmt.Errorf("display %q: max_size must be positive when real_size is not set, got %s", p.Name, p.RangeMax)
	}
	return nil
}
