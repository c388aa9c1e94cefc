package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/Simplici0/printgenie/internal/pricing"
)

func newFlagSet(name string, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false
	return fs
}

// parse maps flag errors to errUsage; --help is not an error.
func parse(fs *pflag.FlagSet, args []string) (bool, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", errUsage, err)
	}
	return true, nil
}

// loadConfig merges the partial configuration at path over the defaults and
// validates the result. An empty path yields the defaults.
func loadConfig(path string) (pricing.Config, error) {
	if path == "" {
		return pricing.Defaults(), nil
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		return pricing.Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg pricing.Config
	if isYAML(path) {
		var partial pricing.PartialConfig
		if err := yaml.Unmarshal(blob, &partial); err != nil {
			return pricing.Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
		cfg = pricing.MergeConfig(partial, pricing.Defaults())
	} else {
		cfg, err = pricing.MergeJSON(blob, pricing.Defaults())
		if err != nil {
			return pricing.Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return pricing.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// writeFormatted renders v as JSON or YAML. YAML keys follow the JSON field
// names so the output can be fed back as a configuration file.
func writeFormatted(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		blob, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var doc any
		if err := json.Unmarshal(blob, &doc); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: unknown format %q", errUsage, format)
}
