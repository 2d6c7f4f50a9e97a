package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the clickguard subcommands.
type Config struct {
	// LogLevel is the minimum level of log entries.
	LogLevel string `yaml:"log_level"`
	// GuardLogLevel sets a separate level for guard traces when not empty.
	GuardLogLevel string `yaml:"guard_log_level,omitempty"`
	// WatchPeriod is the default watch period of every group.
	WatchPeriod time.Duration `yaml:"watch_period"`
	// Groups lists the elements guarded together.
	Groups []Group `yaml:"groups"`
	// Script is the click sequence replayed by the simulator.
	Script []Step `yaml:"script,omitempty"`
}

// Group is a set of elements sharing a single guard.
type Group struct {
	// Name identifies the group.
	Name string `yaml:"name"`
	// WatchPeriod overrides the default watch period when positive.
	WatchPeriod time.Duration `yaml:"watch_period,omitempty"`
	// Elements are the names of the elements in the group.
	Elements []string `yaml:"elements"`
}

// Step is one entry of a click script.
type Step struct {
	// At is the offset from the start of the script.
	At time.Duration `yaml:"at"`
	// Click is the name of the clicked element.
	Click string `yaml:"click"`
	// Repeat is how many times the element is clicked at once.
	Repeat int `yaml:"repeat,omitempty"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "clickguard.yaml"

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultWatchPeriod is used when no watch period is configured.
	DefaultWatchPeriod = time.Second

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNoGroups is returned when no guard group is configured.
	errNoGroups = errors.New("at least one group must be configured")
	// errEmptyName is returned for groups or elements without a name.
	errEmptyName = errors.New("name must not be empty")
	// errDuplicateName is returned when a group or element name is used twice.
	errDuplicateName = errors.New("duplicate name")
	// errNegativeDuration is returned for negative watch periods or offsets.
	errNegativeDuration = errors.New("duration must not be negative")
	// errUnknownElement is returned when the script clicks an element no group defines.
	errUnknownElement = errors.New("unknown element")
)

// Default returns a configuration with a single group of two elements.
func Default() *Config {
	return &Config{
		LogLevel:    DefaultLogLevel,
		WatchPeriod: DefaultWatchPeriod,
		Groups: []Group{
			{
				Name:     "checkout",
				Elements: []string{"pay", "confirm"},
			},
		},
		Script: []Step{
			{At: 0, Click: "pay", Repeat: 5},
			{At: 500 * time.Millisecond, Click: "confirm", Repeat: 1},
			{At: DefaultWatchPeriod, Click: "confirm", Repeat: 1},
		},
	}
}

// Load reads configuration from the provided path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes cfg to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks names and durations and fills in defaults.
//
//nolint:cyclop // A flat list of checks reads better than nested helpers.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if cfg.WatchPeriod < 0 {
		return fmt.Errorf("watch_period: %w", errNegativeDuration)
	}

	// Set default watch period if not specified
	if cfg.WatchPeriod == 0 {
		cfg.WatchPeriod = DefaultWatchPeriod
	}

	if len(cfg.Groups) == 0 {
		return errNoGroups
	}

	var (
		groups   = make(map[string]struct{}, len(cfg.Groups))
		elements = make(map[string]struct{})
	)

	for i := range cfg.Groups {
		group := &cfg.Groups[i]
		if group.Name == "" {
			return fmt.Errorf("group #%d: %w", i+1, errEmptyName)
		}

		if _, ok := groups[group.Name]; ok {
			return fmt.Errorf("group %q: %w", group.Name, errDuplicateName)
		}

		groups[group.Name] = struct{}{}

		if group.WatchPeriod < 0 {
			return fmt.Errorf("group %q watch_period: %w", group.Name, errNegativeDuration)
		}

		for _, element := range group.Elements {
			if element == "" {
				return fmt.Errorf("group %q element: %w", group.Name, errEmptyName)
			}

			if _, ok := elements[element]; ok {
				return fmt.Errorf("element %q: %w", element, errDuplicateName)
			}

			elements[element] = struct{}{}
		}
	}

	for i := range cfg.Script {
		step := &cfg.Script[i]
		if step.At < 0 {
			return fmt.Errorf("script step #%d: %w", i+1, errNegativeDuration)
		}

		if _, ok := elements[step.Click]; !ok {
			return fmt.Errorf("script step #%d %q: %w", i+1, step.Click, errUnknownElement)
		}

		if step.Repeat <= 0 {
			step.Repeat = 1
		}
	}

	return nil
}

// PeriodOf returns the effective watch period of group.
func (cfg *Config) PeriodOf(group *Group) time.Duration {
	if group.WatchPeriod > 0 {
		return group.WatchPeriod
	}

	return cfg.WatchPeriod
}
