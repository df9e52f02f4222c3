// Package config manages YAML-based configuration, environment overrides, CLI flags, and asset locations.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultLocation is the location used when a request does not name one.
const DefaultLocation = "files"

// Location maps a logical name to a directory root
type Location struct {
	Name   string `yaml:"name" json:"name"`
	Path   string `yaml:"path" json:"-"`
	GitRef string `yaml:"git_ref,omitempty" json:"git_ref,omitempty"`
}

// Thumbnails configures the URLs produced for image descriptors
type Thumbnails struct {
	// Base is the URL prefix thumbnails are served under.
	Base string `yaml:"base"`
	// Preset is the size/fit segment used for the full image URL, e.g. "1000×1000×max".
	Preset string `yaml:"preset"`
}

// CSRF configures request token validation
type CSRF struct {
	Secret string `yaml:"secret"`
}

// Auth configures bearer tokens and the permissions they grant.
// An empty token map disables authorization checks.
type Auth struct {
	Tokens map[string][]string `yaml:"tokens,omitempty"`
}

// Config holds all configuration options for the asset indexer
type Config struct {
	Locations []Location `yaml:"locations,omitempty" json:"locations"`

	Port     int  `yaml:"port"`
	Watch    bool `yaml:"watch"`
	Open     bool `yaml:"open"`
	MaxDepth int  `yaml:"max_depth"`

	FileTypes  []string `yaml:"file_types"`
	ImageTypes []string `yaml:"image_types"`
	Exclude    []string `yaml:"exclude"`

	Thumbnails Thumbnails `yaml:"thumbnails"`
	CSRF       CSRF       `yaml:"csrf"`
	Auth       Auth       `yaml:"auth"`

	// Internal: path to config file for saving
	configPath string
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Locations: []Location{{Name: DefaultLocation, Path: filepath.Join("public", "files")}},
		Port:      8080,
		Watch:     true,
		Open:      false,
		MaxDepth:  3,
		FileTypes: []string{
			"twig", "html", "js", "css", "scss", "gif", "jpg", "jpeg", "png", "ico", "zip", "tgz", "txt", "md",
			"doc", "docx", "pdf", "epub", "xls", "xlsx", "ppt", "pptx", "mp3", "ogg", "wav", "m4a", "mp4",
			"m4v", "ogv", "wmv", "avi", "webm", "svg", "webp", "avif",
		},
		ImageTypes: []string{"gif", "png", "jpg", "jpeg", "svg", "avif", "webp"},
		Exclude:    []string{"node_modules"},
		Thumbnails: Thumbnails{
			Base:   "/thumbs",
			Preset: "1000×1000×max",
		},
	}
}

// GetConfigDir returns the config directory path
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/assetindex"
	}
	return filepath.Join(home, ".config", "assetindex")
}

// GetConfigPath returns the full path to the config file
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// Load loads configuration from file, environment and command line flags
func Load() (*Config, error) {
	return LoadArgs(flag.CommandLine, os.Args[1:])
}

// LoadArgs is Load with an explicit flag set and argument list.
func LoadArgs(fset *flag.FlagSet, args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	// Define command line flags with sentinel values to detect if set
	filesPath := fset.String("path", "", "Root directory of the \"files\" location")
	port := fset.Int("port", 0, "HTTP server port")
	watch := fset.Bool("watch", true, "Push asset changes to connected pickers")
	open := fset.Bool("open", false, "Open browser on startup")
	configFile := fset.String("config", "", "Configuration file path")
	save := fset.Bool("save", false, "Write the resulting configuration back to the config file")

	fset.StringVar(filesPath, "p", "", "Root directory of the \"files\" location (shorthand)")

	if err := fset.Parse(args); err != nil {
		return nil, err
	}

	// Determine config file path
	var cfgPath string
	if *configFile != "" {
		cfgPath = *configFile
	} else {
		// Try ~/.config/assetindex/config.yaml first
		globalConfig := GetConfigPath()
		if _, err := os.Stat(globalConfig); err == nil {
			cfgPath = globalConfig
		} else if _, err := os.Stat("assetindex.yaml"); err == nil {
			cfgPath = "assetindex.yaml"
		}
	}

	if cfgPath != "" {
		if err := cfg.loadFromFile(cfgPath); err != nil && *configFile != "" {
			// Only return error if user explicitly specified config file
			return nil, err
		}
		cfg.configPath = cfgPath
	} else {
		cfg.configPath = GetConfigPath()
	}

	cfg.applyEnv()

	// Command line flags override config file and environment (only if explicitly set)
	if *filesPath != "" {
		cfg.SetLocation(DefaultLocation, *filesPath)
	}
	if *port != 0 {
		cfg.Port = *port
	}
	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "watch":
			cfg.Watch = *watch
		case "open":
			cfg.Open = *open
		}
	})

	cfg.normalize()

	if *save {
		if err := cfg.Save(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// applyEnv applies ASSETINDEX_* environment overrides (including values from a .env file)
func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("ASSETINDEX_PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := strings.TrimSpace(os.Getenv("ASSETINDEX_CSRF_SECRET")); v != "" {
		c.CSRF.Secret = v
	}
	if v := strings.TrimSpace(os.Getenv("ASSETINDEX_FILES_PATH")); v != "" {
		c.SetLocation(DefaultLocation, v)
	}
}

// normalize resolves location paths to absolute and fills defaults for zero values
func (c *Config) normalize() {
	for i := range c.Locations {
		absPath, err := filepath.Abs(c.Locations[i].Path)
		if err == nil {
			c.Locations[i].Path = absPath
		}
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultConfig().MaxDepth
	}
	if c.Thumbnails.Base == "" {
		c.Thumbnails.Base = DefaultConfig().Thumbnails.Base
	}
	c.Thumbnails.Base = strings.TrimSuffix(c.Thumbnails.Base, "/")
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Save saves the current configuration to the config file
func (c *Config) Save() error {
	configDir := filepath.Dir(c.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(c.configPath, data, 0600)
}

// SetLocation adds the named location or replaces its path
func (c *Config) SetLocation(name, path string) {
	for i := range c.Locations {
		if c.Locations[i].Name == name {
			c.Locations[i].Path = path
			c.Locations[i].GitRef = ""
			return
		}
	}
	c.Locations = append(c.Locations, Location{Name: name, Path: path})
}

// GetPath looks up a location by its logical name
func (c *Config) GetPath(name string) (Location, bool) {
	for _, l := range c.Locations {
		if l.Name == name {
			return l, true
		}
	}
	return Location{}, false
}

// LocationNames returns the configured location names in configuration order
func (c *Config) LocationNames() []string {
	names := make([]string, len(c.Locations))
	for i, l := range c.Locations {
		names[i] = l.Name
	}
	return names
}

// GetFileTypes returns the accepted extensions for generic file listings
func (c *Config) GetFileTypes() []string {
	return c.FileTypes
}

// GetImageTypes returns the accepted extensions for image listings
func (c *Config) GetImageTypes() []string {
	return c.ImageTypes
}

// ThumbnailURLPrefix returns the prefix image URLs are built from, e.g. "/thumbs/1000×1000×max"
func (c *Config) ThumbnailURLPrefix() string {
	if c.Thumbnails.Preset == "" {
		return c.Thumbnails.Base
	}
	return c.Thumbnails.Base + "/" + strings.Trim(c.Thumbnails.Preset, "/")
}

// GetConfigFilePath returns the path to the config file
func (c *Config) GetConfigFilePath() string {
	return c.configPath
}

// IsExcluded checks if a path should be excluded
func (c *Config) IsExcluded(path string) bool {
	return MatchesExclude(c.Exclude, path)
}

// MatchesExclude reports whether the base name of path matches any of the glob patterns.
func MatchesExclude(patterns []string, path string) bool {
	base := filepath.Base(path)
	for _, exclude := range patterns {
		if matched, _ := filepath.Match(exclude, base); matched {
			return true
		}
	}
	return false
}
