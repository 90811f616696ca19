// Package config defines the configuration types of gotexml.
// These are plain data structures; loading and merging live in
// internal/configloader.
package config

// Default values.
const (
	DefaultMaxPasses = 64
	DefaultMaxDepth  = 128
	DefaultExtension = ".xml"
)

// FlagsConfig overrides how math elements are classified by the layout
// engine. Keys of Roles are element roles ("open", "fence", "bigop" ...);
// keys of Symbols are element texts ("|", "\\vert", "\\int" ...). Values are
// flag names ("left", "middle", "right", "big", "binary", "relation",
// "dummy", "none").
type FlagsConfig struct {
	Roles   map[string]string `mapstructure:"roles" yaml:"roles,omitempty"`
	Symbols map[string]string `mapstructure:"symbols" yaml:"symbols,omitempty"`
}

// LayoutConfig tunes the layout engine.
type LayoutConfig struct {
	// MaxPasses bounds the number of rewrite passes per list.
	MaxPasses int `mapstructure:"max_passes" yaml:"max_passes"`

	// MaxDepth bounds the nesting depth accepted by the formula parser.
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`
}

// OutputConfig controls the XML written for each source.
type OutputConfig struct {
	// Dir is the directory translations are written to. Empty writes next
	// to each source.
	Dir string `mapstructure:"dir" yaml:"dir,omitempty"`

	// Extension replaces the source extension in output file names.
	Extension string `mapstructure:"extension" yaml:"extension"`

	// Display renders every formula in display style.
	Display bool `mapstructure:"display" yaml:"display"`

	// AltText adds the TeX form of each formula as an alttext attribute.
	AltText bool `mapstructure:"alttext" yaml:"alttext"`
}

// OutputFormat specifies the format of the run report.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// Config is the root configuration structure.
type Config struct {
	Flags  FlagsConfig  `mapstructure:"flags" yaml:"flags"`
	Layout LayoutConfig `mapstructure:"layout" yaml:"layout"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// Kind forces the source kind ("tex" or "markdown") instead of
	// detecting it per file.
	Kind string `mapstructure:"kind" yaml:"kind,omitempty"`

	// Extensions lists the file extensions picked up when a directory is
	// translated. Empty means the detector's defaults.
	Extensions []string `mapstructure:"extensions" yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// FollowSymlinks makes discovery descend into symlinked directories.
	FollowSymlinks bool `mapstructure:"follow_symlinks" yaml:"follow_symlinks"`

	// CLI-level options (not persisted to config files).

	// Format specifies the report format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// Stdout writes translations to standard output instead of files.
	Stdout bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with the defaults.
func NewConfig() *Config {
	return &Config{
		Flags: FlagsConfig{
			Roles:   make(map[string]string),
			Symbols: make(map[string]string),
		},
		Layout: LayoutConfig{
			MaxPasses: DefaultMaxPasses,
			MaxDepth:  DefaultMaxDepth,
		},
		Output: OutputConfig{
			Extension: DefaultExtension,
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}
