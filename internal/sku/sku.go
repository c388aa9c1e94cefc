// Package sku builds and parses product identifiers of the form
// PG-SUBCATEGORY-MATERIAL-COLOR-SIZE-NNNN.
//
// Encoding trusts its inputs; decoding checks the structure strictly but
// resolves each code leniently, marking codes it cannot find as Unknown.
package sku

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	Brand     = "PG"
	Separator = "-"
	Unknown   = "Unknown"

	segmentCount = 6
)

// Resolver maps segment codes to display names.
type Resolver interface {
	Subcategory(code string) (category, subcategory string, ok bool)
	MaterialName(code string) (string, bool)
	ColorName(code string) (string, bool)
	SizeName(code string) (string, bool)
}

// Encode joins the brand, the uppercased codes and the zero-padded sequence.
// Codes are not checked against any dictionary.
func Encode(subcategory, material, color, size string, sequence int) string {
	return strings.Join([]string{
		Brand,
		strings.ToUpper(subcategory),
		strings.ToUpper(material),
		strings.ToUpper(color),
		strings.ToUpper(size),
		FormatSequence(sequence),
	}, Separator)
}

// FormatSequence pads n to at least four digits.
func FormatSequence(n int) string {
	return fmt.Sprintf("%04d", n)
}

// MalformedError reports a string that does not have the SKU structure.
type MalformedError struct {
	Input  string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed sku %q: %s; expected %s-[SUBCAT]-[MAT]-[COL]-[SIZE]-[SEQ]", e.Input, e.Reason, Brand)
}

// Segment is one decoded code and its display name.
type Segment struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Resolved bool   `json:"resolved"`
}

// Sequence is the decoded counter segment. Number is only meaningful when
// Numeric is true; otherwise Raw is shown as is.
type Sequence struct {
	Raw     string `json:"raw"`
	Number  int    `json:"number"`
	Numeric bool   `json:"numeric"`
}

func (s Sequence) String() string {
	if !s.Numeric {
		return s.Raw
	}
	return fmt.Sprintf("%s (#%d)", s.Raw, s.Number)
}

type Decoded struct {
	SKU         string   `json:"sku"`
	Brand       string   `json:"brand"`
	Subcategory Segment  `json:"category"`
	Material    Segment  `json:"material"`
	Color       Segment  `json:"color"`
	Size        Segment  `json:"size"`
	Sequence    Sequence `json:"sequence"`
}

// Unresolved names the segments whose code was not found.
func (d Decoded) Unresolved() []string {
	var out []string
	for _, s := range []struct {
		name string
		seg  Segment
	}{
		{"category", d.Subcategory},
		{"material", d.Material},
		{"color", d.Color},
		{"size", d.Size},
	} {
		if !s.seg.Resolved {
			out = append(out, s.name)
		}
	}
	return out
}

// Decode validates the structure of raw and resolves every segment through r.
func Decode(raw string, r Resolver) (Decoded, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	parts := strings.Split(normalized, Separator)
	if len(parts) != segmentCount {
		return Decoded{}, &MalformedError{Input: raw, Reason: fmt.Sprintf("has %d segments, want %d", len(parts), segmentCount)}
	}
	if parts[0] != Brand {
		return Decoded{}, &MalformedError{Input: raw, Reason: fmt.Sprintf("brand %q, want %q", parts[0], Brand)}
	}

	return Decoded{
		SKU:         normalized,
		Brand:       parts[0],
		Subcategory: resolveSubcategory(parts[1], r),
		Material:    resolve(parts[2], r.MaterialName),
		Color:       resolve(parts[3], r.ColorName),
		Size:        resolve(parts[4], r.SizeName),
		Sequence:    parseSequence(parts[5]),
	}, nil
}

func resolveSubcategory(code string, r Resolver) Segment {
	category, sub, ok := r.Subcategory(code)
	if !ok {
		return Segment{Code: code, Name: Unknown}
	}
	return Segment{Code: code, Name: category + " > " + sub, Resolved: true}
}

func resolve(code string, lookup func(string) (string, bool)) Segment {
	name, ok := lookup(code)
	if !ok {
		return Segment{Code: code, Name: Unknown}
	}
	return Segment{Code: code, Name: name, Resolved: true}
}

func parseSequence(raw string) Sequence {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return Sequence{Raw: raw}
	}
	return Sequence{Raw: raw, Number: n, Numeric: true}
}
