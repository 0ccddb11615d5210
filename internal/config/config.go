// Package config loads linediff's configuration from a cascade of sources. Later sources override earlier ones:
//  1. Built-in defaults (Default).
//  2. The user config file: $LINEDIFF_CONFIG if set, otherwise ~/.config/linediff/config.toml.
//  3. The nearest .linediff.toml, searching from the working directory up to the filesystem root.
//  4. LINEDIFF_* environment variables.
//
// Command-line flags are applied on top by the caller. Files are TOML; unknown keys are an error.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/codalotl/linediff/internal/linediff"
	"github.com/mitchellh/go-homedir"
)

// ProjectFileName is the per-directory config file name.
const ProjectFileName = ".linediff.toml"

// DefaultUserFile is the user config path used when LINEDIFF_CONFIG is unset.
const DefaultUserFile = "~/.config/linediff/config.toml"

// Output formats.
const (
	FormatReport  = "report"
	FormatUnified = "unified"
	FormatSummary = "summary"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is linediff's effective configuration.
type Config struct {
	Algorithm string `toml:"algorithm"`
	Format    string `toml:"format"`
	Color     string `toml:"color"`

	// Context is the number of unchanged lines around each hunk in unified output.
	Context int `toml:"context"`

	// MaxLines limits len(old)+len(new) for the quadratic engines. 0 means no limit.
	MaxLines int `toml:"max_lines"`

	// TabWidth expands tabs in rendered output. 0 leaves tabs as-is.
	TabWidth int `toml:"tab_width"`

	// Sources lists the files that contributed, in load order.
	Sources []string `toml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Algorithm: linediff.AlgorithmMyers,
		Format:    FormatReport,
		Color:     ColorAuto,
		Context:   3,
		TabWidth:  4,
	}
}

// Load builds the configuration for a process whose working directory is dir. The result is validated.
func Load(dir string) (Config, error) {
	cfg := Default()

	userFile, err := UserFile()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.mergeFile(userFile, true); err != nil {
		return Config{}, err
	}

	if project := FindProjectFile(dir); project != "" {
		if err := cfg.mergeFile(project, false); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// UserFile returns the expanded path of the user config file. The file need not exist.
func UserFile() (string, error) {
	p := os.Getenv("LINEDIFF_CONFIG")
	if p == "" {
		p = DefaultUserFile
	}
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("config: expand %s: %w", p, err)
	}
	return expanded, nil
}

// FindProjectFile returns the path of the nearest ProjectFileName in dir or one of its ancestors, or "" if there is none.
func FindProjectFile(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(abs, ProjectFileName)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return ""
		}
		abs = parent
	}
}

// mergeFile decodes path over c. Keys absent from the file keep their current values. If optional, a missing file is skipped.
func (c *Config) mergeFile(path string, optional bool) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	c.Sources = append(c.Sources, path)
	return nil
}

// ApplyEnv overrides fields from LINEDIFF_ALGORITHM, LINEDIFF_FORMAT, LINEDIFF_COLOR, LINEDIFF_CONTEXT, LINEDIFF_MAX_LINES, and LINEDIFF_TAB_WIDTH.
// Empty variables are ignored. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	strs := []struct {
		key string
		dst *string
	}{
		{"LINEDIFF_ALGORITHM", &c.Algorithm},
		{"LINEDIFF_FORMAT", &c.Format},
		{"LINEDIFF_COLOR", &c.Color},
	}
	for _, s := range strs {
		if v := strings.TrimSpace(getenv(s.key)); v != "" {
			*s.dst = v
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"LINEDIFF_CONTEXT", &c.Context},
		{"LINEDIFF_MAX_LINES", &c.MaxLines},
		{"LINEDIFF_TAB_WIDTH", &c.TabWidth},
	}
	for _, s := range ints {
		v := strings.TrimSpace(getenv(s.key))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %q is not an integer", s.key, v)
		}
		*s.dst = n
	}
	return nil
}

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Message)
}

// Validate reports the first invalid field as a ValidationError. Algorithm must name a known algorithm; reserved ones are accepted here and
// rejected when run.
func (c Config) Validate() error {
	var names []string
	for _, a := range linediff.Algorithms() {
		names = append(names, a.Name)
	}
	if !slices.Contains(names, strings.ToLower(strings.TrimSpace(c.Algorithm))) {
		return ValidationError{Field: "algorithm", Message: fmt.Sprintf("must be one of %s (got %q)", strings.Join(names, ", "), c.Algorithm)}
	}

	switch c.Format {
	case FormatReport, FormatUnified, FormatSummary:
	default:
		return ValidationError{Field: "format", Message: fmt.Sprintf("must be report, unified, or summary (got %q)", c.Format)}
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return ValidationError{Field: "color", Message: fmt.Sprintf("must be auto, always, or never (got %q)", c.Color)}
	}

	if c.Context < 0 {
		return ValidationError{Field: "context", Message: fmt.Sprintf("must be >= 0 (got %d)", c.Context)}
	}
	if c.MaxLines < 0 {
		return ValidationError{Field: "max_lines", Message: fmt.Sprintf("must be >= 0 (got %d)", c.MaxLines)}
	}
	if c.TabWidth < 0 {
		return ValidationError{Field: "tab_width", Message: fmt.Sprintf("must be >= 0 (got %d)", c.TabWidth)}
	}
	return nil
}

// WriteTOML writes c as TOML, preceded by a comment naming each contributing file.
func (c Config) WriteTOML(w io.Writer) error {
	for _, s := range c.Sources {
		if _, err := fmt.Fprintf(w, "# from %s\n", s); err != nil {
			return err
		}
	}
	return toml.NewEncoder(w).Encode(c)
}
