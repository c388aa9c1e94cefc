package main

import (
	"fmt"
	"io"

	"github.com/Simplici0/printgenie/internal/pricing"
)

func configDefaults(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("config defaults", stderr)
	format := fs.StringP("output", "o", "yaml", "output format: json or yaml")
	if ok, err := parse(fs, args); !ok {
		return err
	}
	return writeFormatted(stdout, *format, pricing.Defaults())
}

func configValidate(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("config validate", stderr)
	show := fs.Bool("show", false, "print the merged configuration")
	format := fs.StringP("output", "o", "yaml", "output format for --show: json or yaml")
	if ok, err := parse(fs, args); !ok {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: config validate takes exactly one file", errUsage)
	}

	cfg, err := loadConfig(fs.Arg(0))
	if err != nil {
		return err
	}
	if *show {
		return writeFormatted(stdout, *format, cfg)
	}
	_, err = fmt.Fprintf(stdout, "%s: ok (%d materials, %d discount tiers)\n", fs.Arg(0), len(cfg.Materials), len(cfg.VolumeDiscounts))
	return err
}
