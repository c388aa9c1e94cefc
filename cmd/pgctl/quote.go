package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/Simplici0/printgenie/internal/pricing"
	"github.com/Simplici0/printgenie/internal/share"
)

func quote(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("quote", stderr)
	weight := fs.Float64P("weight", "w", 0, "part weight in grams")
	hours := fs.Float64P("hours", "t", 0, "print time in hours")
	material := fs.StringP("material", "m", pricing.DefaultMaterial, "material key")
	complexity := fs.StringP("complexity", "x", pricing.DefaultComplexity, "complexity tier")
	quantity := fs.IntP("quantity", "q", 1, "number of units")
	policy := fs.StringP("policy", "p", string(pricing.PolicyRetail), "retail or wholesale")
	rush := fs.StringP("rush", "r", pricing.DefaultRush, "rush option")
	post := fs.StringSlice("post", nil, "post-processing options, comma separated")
	strict := fs.Bool("strict", false, "reject unknown material, complexity, rush and post-processing keys")
	configPath := fs.StringP("config", "f", "", "partial pricing configuration (YAML or JSON)")
	customer := fs.String("customer", "", "customer name for the text output")
	item := fs.String("item", "", "item name for the text output")
	format := fs.StringP("output", "o", "text", "output format: text, json or yaml")
	if ok, err := parse(fs, args); !ok {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	q, err := pricing.NewEngine(cfg).Quote(pricing.Request{
		WeightGrams:    *weight,
		PrintTimeHours: *hours,
		Material:       *material,
		Complexity:     *complexity,
		Quantity:       *quantity,
		Policy:         pricing.Policy(*policy),
		Rush:           *rush,
		PostProcessing: *post,
		Strict:         *strict,
	})
	if err != nil {
		return err
	}

	for _, w := range q.Warnings {
		fmt.Fprintf(stderr, "warning: %s\n", w)
	}
	if *format != "text" {
		return writeFormatted(stdout, *format, q)
	}
	_, err = io.WriteString(stdout, share.PlainText(q, share.Options{
		ItemName: *item,
		Customer: *customer,
		Date:     q.Meta.CalculatedAt,
	}))
	return err
}

func table(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("table", stderr)
	weight := fs.Float64P("weight", "w", 0, "part weight in grams")
	hours := fs.Float64P("hours", "t", 0, "print time in hours")
	material := fs.StringP("material", "m", pricing.DefaultMaterial, "material key")
	configPath := fs.StringP("config", "f", "", "partial pricing configuration (YAML or JSON)")
	format := fs.StringP("output", "o", "text", "output format: text, json or yaml")
	if ok, err := parse(fs, args); !ok {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	rows, err := pricing.NewEngine(cfg).PriceTable(*weight, *hours, *material)
	if err != nil {
		return err
	}

	if *format != "text" {
		return writeFormatted(stdout, *format, rows)
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Qty\tRetail unit\tRetail total\tWholesale unit\tWholesale total\tSavings\tSavings %\t")
	for _, row := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			row.Quantity,
			share.FormatINR(row.RetailUnit),
			share.FormatINR(row.RetailTotal),
			share.FormatINR(row.WholesaleUnit),
			share.FormatINR(row.WholesaleTotal),
			share.FormatINR(row.Savings),
			strconv.FormatFloat(row.SavingsPercent, 'f', 1, 64),
		)
	}
	return tw.Flush()
}
