package pricing

// TableQuantities are the order sizes compared by PriceTable.
var TableQuantities = []int{1, 3, 5, 10, 25, 50, 100}

// TableRow compares buying qty units at retail against a wholesale order.
type TableRow struct {
	Quantity       int     `json:"quantity"`
	RetailUnit     float64 `json:"retailUnit"`
	RetailTotal    float64 `json:"retailTotal"`
	WholesaleUnit  float64 `json:"wholesaleUnit"`
	WholesaleTotal float64 `json:"wholesaleTotal"`
	Savings        float64 `json:"savings"`
	SavingsPercent float64 `json:"savingsPercent"`
}

// PriceTable builds the retail versus wholesale comparison for one item at
// the default complexity and standard delivery.
func (e *Engine) PriceTable(weightGrams, printTimeHours float64, material string) ([]TableRow, error) {
	retail, err := e.Quote(Request{
		WeightGrams:    weightGrams,
		PrintTimeHours: printTimeHours,
		Material:       material,
		Complexity:     DefaultComplexity,
		Quantity:       1,
		Policy:         PolicyRetail,
		Rush:           DefaultRush,
	})
	if err != nil {
		return nil, err
	}

	rows := make([]TableRow, 0, len(TableQuantities))
	for _, qty := range TableQuantities {
		wholesale, err := e.Quote(Request{
			WeightGrams:    weightGrams,
			PrintTimeHours: printTimeHours,
			Material:       material,
			Complexity:     DefaultComplexity,
			Quantity:       qty,
			Policy:         PolicyWholesale,
			Rush:           DefaultRush,
		})
		if err != nil {
			return nil, err
		}

		retailTotal := retail.Pricing.UnitPrice * float64(qty)
		savings := retailTotal - wholesale.Pricing.FinalTotal
		var savingsPercent float64
		if retailTotal > 0 {
			savingsPercent = Round2(savings / retailTotal * 100)
		}

		rows = append(rows, TableRow{
			Quantity:       qty,
			RetailUnit:     retail.Pricing.UnitPrice,
			RetailTotal:    retailTotal,
			WholesaleUnit:  wholesale.Pricing.UnitPrice,
			WholesaleTotal: wholesale.Pricing.FinalTotal,
			Savings:        savings,
			SavingsPercent: savingsPercent,
		})
	}
	return rows, nil
}
