package exposure

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"

	yml "gopkg.in/yaml.v2"

	"github.com/skywatch-obs/camkit/imgdata"
)

// fileSettings is the on-disk shape of Settings.  Exposure bounds are
// written as go duration strings so config files read naturally
// ("100ms", "2m30s").
type fileSettings struct {
	Percentile     float64 `koanf:"percentile" yaml:"percentile"`
	Target         float64 `koanf:"target" yaml:"target"`
	Uncertainty    float64 `koanf:"uncertainty" yaml:"uncertainty"`
	MinExposure    string  `koanf:"minExposure" yaml:"minExposure"`
	MaxExposure    string  `koanf:"maxExposure" yaml:"maxExposure"`
	MaxBin         int     `koanf:"maxBin" yaml:"maxBin"`
	PixelExclusion int     `koanf:"pixelExclusion" yaml:"pixelExclusion"`
}

func defaultFileSettings() fileSettings {
	return fileSettings{
		Percentile:     99.7,
		Target:         0.8,
		Uncertainty:    0.05,
		MinExposure:    "1ms",
		MaxExposure:    "10s",
		MaxBin:         4,
		PixelExclusion: 100,
	}
}

// LoadSettings reads optimizer settings from a yaml file, layered over the
// defaults, and validates the result.  A missing file yields the defaults.
func LoadSettings(path string) (Settings, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultFileSettings(), "koanf"), nil); err != nil {
		return Settings{}, err
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		// file missing means run on defaults
		if !strings.Contains(err.Error(), "no such") {
			return Settings{}, fmt.Errorf("%w: loading %s: %v", imgdata.ErrIO, path, err)
		}
	}
	var fs fileSettings
	if err := k.Unmarshal("", &fs); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", imgdata.ErrInvalidValue, err)
	}
	return fs.toSettings()
}

func (fs fileSettings) toSettings() (Settings, error) {
	minExp, err := time.ParseDuration(fs.MinExposure)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: minExposure: %v", imgdata.ErrInvalidValue, err)
	}
	maxExp, err := time.ParseDuration(fs.MaxExposure)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: maxExposure: %v", imgdata.ErrInvalidValue, err)
	}
	return NewSettings(fs.Percentile, fs.Target, fs.Uncertainty, minExp, maxExp, fs.MaxBin, fs.PixelExclusion)
}

// WriteDefaultConfig writes the default settings to path as yaml, as a
// starting point for hand editing.
func WriteDefaultConfig(path string) error {
	buf, err := yml.Marshal(defaultFileSettings())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("%w: %v", imgdata.ErrIO, err)
	}
	return nil
}
