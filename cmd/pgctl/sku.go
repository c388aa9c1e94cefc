package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Simplici0/printgenie/internal/refdata"
	"github.com/Simplici0/printgenie/internal/sku"
)

func skuEncode(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("sku encode", stderr)
	subcategory := fs.StringP("subcategory", "c", "", "subcategory code, e.g. CP01")
	material := fs.StringP("material", "m", "", "material code, e.g. PLA")
	color := fs.String("color", "", "color code, e.g. BLK")
	size := fs.StringP("size", "s", "", "size code, e.g. M")
	sequence := fs.IntP("sequence", "n", 1, "sequence number")
	if ok, err := parse(fs, args); !ok {
		return err
	}

	for name, value := range map[string]string{
		"subcategory": *subcategory, "material": *material, "color": *color, "size": *size,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: --%s is required", errUsage, name)
		}
	}
	if *sequence < 1 {
		return fmt.Errorf("%w: --sequence must be at least 1", errUsage)
	}

	_, err := fmt.Fprintln(stdout, sku.Encode(*subcategory, *material, *color, *size, *sequence))
	return err
}

func skuDecode(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("sku decode", stderr)
	format := fs.StringP("output", "o", "text", "output format: text, json or yaml")
	if ok, err := parse(fs, args); !ok {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: sku decode takes exactly one SKU", errUsage)
	}

	decoded, err := sku.Decode(fs.Arg(0), refdata.Builtin())
	if err != nil {
		return err
	}
	if *format != "text" {
		return writeFormatted(stdout, *format, decoded)
	}

	fmt.Fprintf(stdout, "SKU:         %s\n", decoded.SKU)
	fmt.Fprintf(stdout, "Brand:       %s\n", decoded.Brand)
	for _, line := range []struct {
		label string
		seg   sku.Segment
	}{
		{"Category:", decoded.Subcategory},
		{"Material:", decoded.Material},
		{"Color:", decoded.Color},
		{"Size:", decoded.Size},
	} {
		fmt.Fprintf(stdout, "%-12s %s (%s)\n", line.label, line.seg.Name, line.seg.Code)
	}
	fmt.Fprintf(stdout, "Sequence:    %s\n", decoded.Sequence)
	if unresolved := decoded.Unresolved(); len(unresolved) > 0 {
		fmt.Fprintf(stdout, "Unresolved:  %s\n", strings.Join(unresolved, ", "))
	}
	return nil
}
