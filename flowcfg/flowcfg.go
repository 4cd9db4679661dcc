// Package flowcfg is the engine's configuration surface: a fluent,
// value-receiver builder plus an optional on-disk YAML override file. Flag
// parsing and a CLI proper are out of scope; this is ambient configuration,
// not a command-line interface.
package flowcfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls how a graph.Composite executes once prepared.
type Config struct {
	// Multiprocess selects the process-per-block driver when true, and the
	// cooperative single-task driver when false. Defaults to true.
	Multiprocess bool `yaml:"multiprocess"`
	// Debug toggles flowlog's Topology/Lifecycle output.
	Debug bool `yaml:"debug"`
	// BufferDepth sizes each pipe's buffer in elements, not vectors:
	// driver.NewSession resizes every pipe's underlying OS buffer to
	// BufferDepth times the byte size of one element of its resolved type. Zero means "let the OS pipe's own buffer size govern
	// it" (no extra bound imposed by the engine).
	BufferDepth int `yaml:"buffer_depth"`
}

// Default returns the engine's out-of-the-box configuration.
func Default() Config {
	return Config{
		Multiprocess: true,
		Debug:        false,
		BufferDepth:  0,
	}
}

// Builder constructs a Config through chained With* calls. Like the
// teacher's core.Builder, it is used by value so each With* call returns an
// independent copy rather than mutating shared state.
type Builder struct {
	cfg Config
}

// NewBuilder starts from Default().
func NewBuilder() Builder {
	return Builder{cfg: Default()}
}

func (b Builder) WithMultiprocess(on bool) Builder {
	b.cfg.Multiprocess = on
	return b
}

func (b Builder) WithDebug(on bool) Builder {
	b.cfg.Debug = on
	return b
}

func (b Builder) WithBufferDepth(n int) Builder {
	b.cfg.BufferDepth = n
	return b
}

// Build finalizes the configuration.
func (b Builder) Build() Config {
	return b.cfg
}

// Load reads an optional YAML override file and applies it on top of
// Default(). A missing file is not an error — it simply means "use
// defaults" — but a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("flowcfg: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("flowcfg: parsing %s: %w", path, err)
	}
	return cfg, nil
}
