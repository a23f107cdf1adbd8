package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
	"go.uber.org/zap"

	"mqc/breakpoints"
	"mqc/common"
	"mqc/mixin"
	"mqc/mq"
	"mqc/units"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	BreakpointsConfig struct {
		// replaces built-in breakpoints when set
		File string `yaml:"file,omitempty" sanitize:"assure_file_access"`
	}

	TweakpointsConfig struct {
		File      string     `yaml:"file,omitempty" sanitize:"assure_file_access"`
		Scope     TweakScope `yaml:"scope" validate:"gte=0"`
		Overwrite bool       `yaml:"overwrite"`
	}

	MediaQueryConfig struct {
		BaseFontSize     string `yaml:"base_font_size" validate:"required"`
		Epsilon          string `yaml:"epsilon" validate:"required"`
		DefaultMediaType string `yaml:"default_media_type" validate:"required"`
		SuppressWarnings bool   `yaml:"suppress_warnings"`
	}

	OutputConfig struct {
		Style                common.OutputStyle `yaml:"style" validate:"gte=0"`
		ExportSelector       string             `yaml:"export_selector" validate:"required"`
		ActivePropertyPrefix string             `yaml:"active_property_prefix" validate:"required"`
	}

	Config struct {
		Version     int               `yaml:"version" validate:"eq=1"`
		Breakpoints BreakpointsConfig `yaml:"breakpoints"`
		Tweakpoints TweakpointsConfig `yaml:"tweakpoints"`
		MediaQuery  MediaQueryConfig  `yaml:"media_query"`
		Output      OutputConfig      `yaml:"output"`
		Logging     LoggingConfig     `yaml:"logging"`
		Reporting   ReporterConfig    `yaml:"reporting"`
	}
)

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
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
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
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

// Registry builds breakpoint registry: built-in or loaded from file, extended
// with tweakpoints if requested.
func (conf *Config) Registry(log *zap.Logger) (*breakpoints.Registry, error) {
	var (
		reg *breakpoints.Registry
		err error
	)
	if len(conf.Breakpoints.File) > 0 {
		if reg, err = breakpoints.LoadFile(log, conf.Breakpoints.File); err != nil {
			return nil, err
		}
	} else {
		reg = breakpoints.Default(log)
	}

	if len(conf.Tweakpoints.File) == 0 {
		return reg, nil
	}
	tw, err := breakpoints.LoadFile(log, conf.Tweakpoints.File)
	if err != nil {
		return nil, fmt.Errorf("unable to load tweakpoints: %w", err)
	}
	switch conf.Tweakpoints.Scope {
	case TweakScopeLengths:
		return reg.ExtendLengths(tw, conf.Tweakpoints.Overwrite), nil
	case TweakScopeFeatures:
		return reg.ExtendFeatures(tw, conf.Tweakpoints.Overwrite), nil
	default:
		return reg.Extend(tw, conf.Tweakpoints.Overwrite), nil
	}
}

// Options converts configured values to composer options.
func (conf *MediaQueryConfig) Options() (mq.Options, error) {
	base, err := units.Parse(conf.BaseFontSize)
	if err != nil {
		return mq.Options{}, fmt.Errorf("bad base_font_size: %w", err)
	}
	epsilon, err := units.Parse(conf.Epsilon)
	if err != nil {
		return mq.Options{}, fmt.Errorf("bad epsilon: %w", err)
	}
	return mq.Options{
		BaseFontSize:     base,
		Epsilon:          epsilon,
		DefaultMediaType: conf.DefaultMediaType,
		SuppressWarnings: conf.SuppressWarnings,
	}, nil
}

// MixinOptions returns options for stylesheet generation.
func (conf *OutputConfig) MixinOptions() mixin.Options {
	return mixin.Options{
		ExportSelector:       conf.ExportSelector,
		ActivePropertyPrefix: conf.ActivePropertyPrefix,
	}
}
