package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/scan-io-git/apiprops/pkg/shared/files"
)

// DefaultConfigFile is loaded from the working directory when no --config is given.
const DefaultConfigFile = "apiprops.yml"

type Config struct {
	Logger Logger `yaml:"logger"`
	API    API    `yaml:"api"`
	Report Report `yaml:"report"`
}

type Logger struct {
	Level           string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error TRACE DEBUG INFO WARN ERROR"`
	DisableTime     *bool  `yaml:"disable_time"`
	JSONFormat      *bool  `yaml:"json_format"`
	IncludeLocation *bool  `yaml:"include_location"`
}

// API tunes which types are analysed and how.
type API struct {
	IgnoredPackages []string `yaml:"ignored_packages" validate:"dive,required"`
	IgnoredTypes    []string `yaml:"ignored_types" validate:"dive,required"`
	CallbackTypes   []string `yaml:"callback_types" validate:"dive,required"`
	LazyTypes       []string `yaml:"lazy_types" validate:"dive,required"`
	Baseline        []string `yaml:"baseline" validate:"dive,required"`
}

type Report struct {
	Format string `yaml:"format" validate:"omitempty,oneof=markdown sarif json"`
	Output string `yaml:"output"`
}

func LoadYAML(configPath string, data interface{}) error {
	if err := files.ValidatePath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	d.SetStrict(true)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// NewConfig loads and validates the configuration at configPath. An empty
// path falls back to DefaultConfigFile, and to an empty configuration when
// that file does not exist either.
func NewConfig(configPath string) (*Config, error) {
	config := &Config{}

	if configPath == "" {
		if _, err := os.Stat(DefaultConfigFile); os.IsNotExist(err) {
			return config, nil
		}
		configPath = DefaultConfigFile
	}

	if err := LoadYAML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", configPath, err)
	}
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}
