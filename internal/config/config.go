// Package config holds the user-editable settings for the color matcher
// and their on-disk persistence.
//
// Settings are a plain value handed to the CLI and the batch engine at
// construction time; nothing in the processing core reads them from
// disk. Load and Save are invoked only at process start and end.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ironsheep/color-match/internal/imaging"
)

const defaultConfigDir = ".config/color-match"

// Settings holds mask configuration and last-used locations.
type Settings struct {
	// MaskColor is the background color excluded from reference
	// averages. Each component must be in [0,255].
	MaskColor [3]int `json:"mask_color"`

	// MaskTolerance is the per-channel distance from MaskColor within
	// which a pixel counts as background. Must be >= 0; 0 excludes only
	// exact matches.
	MaskTolerance int `json:"mask_tolerance"`

	// Last-used directories, remembered across runs for convenience.
	LastRefDir    string `json:"last_ref_dir"`
	LastTargetDir string `json:"last_tgt_dir"`
	LastOutDir    string `json:"last_out_dir"`
}

// Default returns the settings used when no config file exists:
// pure black mask with zero tolerance.
func Default() Settings {
	return Settings{MaskColor: [3]int{0, 0, 0}, MaskTolerance: 0}
}

// ValidationError describes a rejected settings field. It is returned
// before any batch validation begins; a run never starts with invalid
// configuration.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks channel ranges and tolerance sign.
func (s Settings) Validate() error {
	for i, v := range s.MaskColor {
		if v < 0 || v > 255 {
			return &ValidationError{
				Field:  "mask color",
				Reason: fmt.Sprintf("channel %d is %d, must be in 0-255", i, v),
			}
		}
	}
	if s.MaskTolerance < 0 {
		return &ValidationError{
			Field:  "mask tolerance",
			Reason: fmt.Sprintf("%d is negative", s.MaskTolerance),
		}
	}
	return nil
}

// Mask converts the settings into the averaging mask. Validate must
// have passed first; out-of-range channels would be truncated here.
func (s Settings) Mask() *imaging.Mask {
	return &imaging.Mask{
		Color: imaging.RGBColor{
			R: uint8(s.MaskColor[0]),
			G: uint8(s.MaskColor[1]),
			B: uint8(s.MaskColor[2]),
		},
		Tolerance: s.MaskTolerance,
	}
}

// ParseMaskColor parses a "R,G,B" string as entered on the command
// line. Whitespace around components is ignored. Wrong arity,
// non-numeric components, and out-of-range values are all rejected.
func ParseMaskColor(s string) ([3]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return [3]int{}, &ValidationError{
			Field:  "mask color",
			Reason: fmt.Sprintf("expected three comma-separated integers, got %d values", len(parts)),
		}
	}
	var out [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return [3]int{}, &ValidationError{
				Field:  "mask color",
				Reason: fmt.Sprintf("component %q is not an integer", strings.TrimSpace(p)),
			}
		}
		if v < 0 || v > 255 {
			return [3]int{}, &ValidationError{
				Field:  "mask color",
				Reason: fmt.Sprintf("component %d is out of range 0-255", v),
			}
		}
		out[i] = v
	}
	return out, nil
}

// DefaultPath returns the config file location,
// ~/.config/color-match/config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, defaultConfigDir, "config.json"), nil
}

// Load reads settings from path. A missing file yields defaults rather
// than an error; a present but malformed file is an error.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read config: %w", err)
	}

	s := Default()
	if err := json.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return s, nil
}

// Save writes settings to path, creating parent directories as needed.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
