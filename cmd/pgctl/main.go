// Command pgctl prices print jobs, builds and reads SKUs and checks pricing
// configuration files without a running server.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const usage = `Usage: pgctl <command> [flags]

Commands:
  sku encode      build a SKU from segment codes
  sku decode      explain a SKU
  quote           price a print job
  table           compare retail and wholesale prices across quantities
  config defaults print the built-in pricing configuration
  config validate check a partial configuration file (YAML or JSON)

Run "pgctl <command> --help" for the flags of a command.
`

// errUsage reports a command line that could not be understood. It maps to
// exit status 2.
var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	err := dispatch(args, stdout, stderr)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "%v\n\n%s", err, usage)
		return 2
	default:
		fmt.Fprintf(stderr, "pgctl: %v\n", err)
		return 1
	}
}

func dispatch(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}

	switch args[0] {
	case "sku":
		if len(args) < 2 {
			return fmt.Errorf("%w: sku needs encode or decode", errUsage)
		}
		switch args[1] {
		case "encode":
			return skuEncode(args[2:], stdout, stderr)
		case "decode":
			return skuDecode(args[2:], stdout, stderr)
		}
		return fmt.Errorf("%w: unknown sku command %q", errUsage, args[1])
	case "quote":
		return quote(args[1:], stdout, stderr)
	case "table":
		return table(args[1:], stdout, stderr)
	case "config":
		if len(args) < 2 {
			return fmt.Errorf("%w: config needs defaults or validate", errUsage)
		}
		switch args[1] {
		case "defaults":
			return configDefaults(args[2:], stdout, stderr)
		case "validate":
			return configValidate(args[2:], stdout, stderr)
		}
		return fmt.Errorf("%w: unknown config command %q", errUsage, args[1])
	case "help", "-h", "--help":
		_, err := io.WriteString(stdout, usage)
		return err
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
}
