package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

type Config struct {
	Log    LogConfig    `koanf:"log"`
	Input  InputConfig  `koanf:"input"`
	Output OutputConfig `koanf:"output"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

type InputConfig struct {
	// Path to a JSONL file of stored records; "-" reads stdin.
	Path string `koanf:"path"`
}

type OutputConfig struct {
	// Path to write mapped JSON lines to; "-" writes stdout.
	Path string `koanf:"path"`
	// Pretty indents each emitted object.
	Pretty bool `koanf:"pretty"`
	// PreviewOnly emits only id, model, type, and the bounded preview.
	PreviewOnly bool `koanf:"preview_only"`
}

const (
	DefaultLogLevel   = "info"
	DefaultInputPath  = "-"
	DefaultOutputPath = "-"
)

// Load layers configuration the usual way: defaults, then an optional yaml
// file, then KIROKU_-prefixed environment variables, then CLI flags.
func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"log.level":           DefaultLogLevel,
		"input.path":          DefaultInputPath,
		"output.path":         DefaultOutputPath,
		"output.pretty":       false,
		"output.preview_only": false,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	configPath := ""
	if cmd != nil {
		if flag := cmd.Flags().Lookup("config"); flag != nil {
			configPath = strings.TrimSpace(flag.Value.String())
		}
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, err
		}
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			globalPath := filepath.Join(home, ".kiroku", "config.yaml")
			if err := k.Load(file.Provider(globalPath), yaml.Parser()); err != nil {
				slog.Debug("Global config not found or invalid", "path", globalPath, "error", err)
			}
		}
	}

	k.Load(env.Provider("KIROKU_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "KIROKU_")), "_", ".", -1)
	}), nil)

	if cmd != nil {
		k.Load(posflag.Provider(cmd.Flags(), ".", k), nil)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
