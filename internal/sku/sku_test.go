package sku_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/printgenie/internal/refdata"
	"github.com/Simplici0/printgenie/internal/sku"
)

func TestEncode(t *testing.T) {
	assert.Equal(t, "PG-CP01-PLA-BLK-M-0001", sku.Encode("CP01", "PLA", "BLK", "M", 1))
	assert.Equal(t, "PG-PDHL02-PET-WHT-XL-0042", sku.Encode("pdhl02", "pet", "wht", "xl", 42))
	assert.Equal(t, "PG-CP01-PLA-BLK-M-12345", sku.Encode("CP01", "PLA", "BLK", "M", 12345))
}

func TestEncodeDoesNotValidateCodes(t *testing.T) {
	assert.Equal(t, "PG-NOPE-XXX-YYY-ZZZ-0007", sku.Encode("nope", "xxx", "yyy", "zzz", 7))
}

func TestDecodeKnownSKU(t *testing.T) {
	d, err := sku.Decode("PG-CP01-PLA-BLK-M-0001", refdata.Builtin())
	require.NoError(t, err)

	assert.Equal(t, "PG", d.Brand)
	assert.Equal(t, "Custom Prints > Functional Parts", d.Subcategory.Name)
	assert.Equal(t, "PLA", d.Material.Name)
	assert.Equal(t, "Black", d.Color.Name)
	assert.Equal(t, "Medium", d.Size.Name)
	assert.True(t, d.Sequence.Numeric)
	assert.Equal(t, 1, d.Sequence.Number)
	assert.Equal(t, "0001 (#1)", d.Sequence.String())
	assert.Empty(t, d.Unresolved())
}

func TestDecodeNormalizesInput(t *testing.T) {
	d, err := sku.Decode("  pg-cp01-pla-gld-g500-0010 ", refdata.Builtin())
	require.NoError(t, err)

	assert.Equal(t, "PG-CP01-PLA-GLD-G500-0010", d.SKU)
	assert.Equal(t, "Gold", d.Color.Name)
	assert.Equal(t, "500g", d.Size.Name)
}

func TestDecodeMalformed(t *testing.T) {
	for _, raw := range []string{
		"BAD-SKU",
		"",
		"PG-CP01-PLA-BLK-M",
		"PG-CP01-PLA-BLK-M-0001-EXTRA",
		"XX-CP01-PLA-BLK-M-0001",
	} {
		_, err := sku.Decode(raw, refdata.Builtin())
		var malformed *sku.MalformedError
		require.Truef(t, errors.As(err, &malformed), "expected MalformedError for %q, got %v", raw, err)
		assert.Equal(t, raw, malformed.Input)
	}
}

func TestDecodeMarksUnknownSegments(t *testing.T) {
	d, err := sku.Decode("PG-ZZ99-PLA-QQQ-M-ABCD", refdata.Builtin())
	require.NoError(t, err)

	assert.Equal(t, sku.Unknown, d.Subcategory.Name)
	assert.Equal(t, "ZZ99", d.Subcategory.Code)
	assert.Equal(t, "PLA", d.Material.Name)
	assert.Equal(t, sku.Unknown, d.Color.Name)
	assert.Equal(t, "Medium", d.Size.Name)
	assert.False(t, d.Sequence.Numeric)
	assert.Equal(t, "ABCD", d.Sequence.String())
	assert.Equal(t, []string{"category", "color"}, d.Unresolved())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	dict := refdata.Builtin()

	for _, cat := range dict.Categories() {
		for _, sub := range cat.Subcategories {
			code := sku.Encode(sub.Code, "PET", "GLD", "XXL", 99)

			d, err := sku.Decode(code, dict)
			require.NoError(t, err)
			require.Empty(t, d.Unresolved(), "sku %s", code)
			assert.Equal(t, cat.Name+" > "+sub.Name, d.Subcategory.Name)
			assert.Equal(t, 99, d.Sequence.Number)
		}
	}
}

func TestDecodeIsDeterministic(t *testing.T) {
	dict := refdata.Builtin()

	first, err := sku.Decode("PG-PS04-CFB-MIX-SET-0420", dict)
	require.NoError(t, err)
	second, err := sku.Decode("PG-PS04-CFB-MIX-SET-0420", dict)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDecodeUsesOverlay(t *testing.T) {
	dict := refdata.Builtin().WithOverlay(refdata.Overlay{
		Categories: []refdata.Category{
			{Name: "Garden", Code: "GDN", Subcategories: []refdata.Subcategory{{Name: "Planters", Code: "GDN01"}}},
		},
	})

	d, err := sku.Decode(sku.Encode("GDN01", "PLA", "GRN", "L", 3), dict)
	require.NoError(t, err)
	assert.Equal(t, "Garden > Planters", d.Subcategory.Name)
}
