package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"wpc/common"
	"wpc/crop"
	"wpc/display"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	// FitConfig bounds the final crop rectangle: when both dimensions are
	// set every plan gets a fitted variant rescaled into this box.
	FitConfig struct {
		Width  int `yaml:"width" validate:"gte=0"`
		Height int `yaml:"height" validate:"gte=0"`
	}

	CropperConfig struct {
		Direction       common.Direction  `yaml:"direction" validate:"gte=0"`
		Alignment       common.Alignment  `yaml:"alignment" validate:"gte=0"`
		LargeWidthDp    int               `yaml:"large_screen_width_dp" validate:"gt=0"`
		MaxSurfaceScale float64           `yaml:"max_surface_scale" validate:"gte=1.0"`
		Fit             FitConfig         `yaml:"fit"`
		Displays        []display.Profile `yaml:"displays" validate:"min=1,dive"`
	}

	PlanConfig struct {
		Format                common.PlanFormat `yaml:"format" validate:"gte=0"`
		OutputNameTemplate    string            `yaml:"output_name_template"`
		FileNameTransliterate bool              `yaml:"file_name_transliterate"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Cropper   CropperConfig  `yaml:"cropper"`
		Plan      PlanConfig     `yaml:"plan"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

func (f FitConfig) Enabled() bool {
	return f.Width > 0 && f.Height > 0
}

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

// additionalChecks covers relations the tag language cannot express:
// display profiles need either a real size or a full size range, every
// display must keep a parallax surface with positive width (travel ratio
// goes negative for very wide large screens) and the fit box is set either
// in both dimensions or none.
func additionalChecks(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)

	for i, d := range cfg.Cropper.Displays {
		if err := d.Validate(); err != nil {
			sl.ReportError(cfg.Cropper.Displays, fmt.Sprintf("displays[%d]", i), "Displays", "display_geometry", err.Error())
			continue
		}
		minDim, maxDim := d.Dimensions()
		if s := crop.IdealSurfaceSize(minDim, maxDim, d.IsLarge(cfg.Cropper.LargeWidthDp)); s.Width <= 0 {
			sl.ReportError(cfg.Cropper.Displays, fmt.Sprintf("displays[%d]", i), "Displays", "display_surface", s.String())
		}
	}
	if (cfg.Cropper.Fit.Width == 0) != (cfg.Cropper.Fit.Height == 0) {
		sl.ReportError(cfg.Cropper.Fit, "fit", "Fit", "fit_both_dimensions", "")
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(additionalChecks)); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
