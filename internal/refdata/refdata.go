// Package refdata holds the category, material, color and size dictionaries
// that SKU segments refer to. Lookups check the built-in tables first and a
// user overlay second, so built-in codes cannot be shadowed.
package refdata

import "strings"

type Subcategory struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type Category struct {
	Name          string        `json:"name"`
	Code          string        `json:"code"`
	Subcategories []Subcategory `json:"subcategories"`
}

// Entry is one material, color or size code.
type Entry struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Hex         string `json:"hex,omitempty"`
}

// Overlay carries user-defined additions to the built-in dictionaries.
type Overlay struct {
	Categories []Category
	Materials  []Entry
	Colors     []Entry
	Sizes      []Entry
}

type subcategoryRef struct {
	category string
	name     string
}

type layer struct {
	categories    []Category
	subcategories map[string]subcategoryRef
	materials     map[string]Entry
	colors        []map[string]Entry
	sizes         []map[string]Entry
}

// Dictionaries is an immutable two-layer view of the reference data.
type Dictionaries struct {
	builtin *layer
	overlay *layer
}

var builtin = newLayer(
	builtinCategories,
	builtinMaterials,
	[][]Entry{builtinColors, builtinSpecialColors},
	[][]Entry{builtinSizes, builtinSpecialSizes},
)

// Builtin returns the dictionaries with no user overlay.
func Builtin() *Dictionaries {
	return &Dictionaries{builtin: builtin}
}

// WithOverlay returns a copy of d whose overlay layer is o.
func (d *Dictionaries) WithOverlay(o Overlay) *Dictionaries {
	return &Dictionaries{
		builtin: d.builtin,
		overlay: newLayer(o.Categories, o.Materials, [][]Entry{o.Colors}, [][]Entry{o.Sizes}),
	}
}

func newLayer(categories []Category, materials []Entry, colors, sizes [][]Entry) *layer {
	l := &layer{
		categories:    categories,
		subcategories: make(map[string]subcategoryRef),
		materials:     index(materials),
	}
	for _, c := range categories {
		for _, s := range c.Subcategories {
			code := normalize(s.Code)
			if _, dup := l.subcategories[code]; !dup {
				l.subcategories[code] = subcategoryRef{category: c.Name, name: s.Name}
			}
		}
	}
	for _, group := range colors {
		l.colors = append(l.colors, index(group))
	}
	for _, group := range sizes {
		l.sizes = append(l.sizes, index(group))
	}
	return l
}

func index(entries []Entry) map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		code := normalize(e.Code)
		if _, dup := m[code]; !dup {
			m[code] = e
		}
	}
	return m
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (d *Dictionaries) layers() []*layer {
	if d.overlay == nil {
		return []*layer{d.builtin}
	}
	return []*layer{d.builtin, d.overlay}
}

// Subcategory resolves a subcategory code to its category and subcategory
// names.
func (d *Dictionaries) Subcategory(code string) (category, subcategory string, ok bool) {
	code = normalize(code)
	for _, l := range d.layers() {
		if ref, found := l.subcategories[code]; found {
			return ref.category, ref.name, true
		}
	}
	return "", "", false
}

func (d *Dictionaries) Material(code string) (Entry, bool) {
	code = normalize(code)
	for _, l := range d.layers() {
		if e, ok := l.materials[code]; ok {
			return e, true
		}
	}
	return Entry{}, false
}

// Color checks standard colors, then special colors, then the overlay.
func (d *Dictionaries) Color(code string) (Entry, bool) {
	code = normalize(code)
	for _, l := range d.layers() {
		if e, ok := first(l.colors, code); ok {
			return e, true
		}
	}
	return Entry{}, false
}

// Size checks standard sizes, then special sizes, then the overlay.
func (d *Dictionaries) Size(code string) (Entry, bool) {
	code = normalize(code)
	for _, l := range d.layers() {
		if e, ok := first(l.sizes, code); ok {
			return e, true
		}
	}
	return Entry{}, false
}

func first(groups []map[string]Entry, code string) (Entry, bool) {
	for _, g := range groups {
		if e, ok := g[code]; ok {
			return e, true
		}
	}
	return Entry{}, false
}

// MaterialName, ColorName and SizeName adapt the lookups to sku.Resolver.
func (d *Dictionaries) MaterialName(code string) (string, bool) {
	e, ok := d.Material(code)
	return e.Name, ok
}

func (d *Dictionaries) ColorName(code string) (string, bool) {
	e, ok := d.Color(code)
	return e.Name, ok
}

func (d *Dictionaries) SizeName(code string) (string, bool) {
	e, ok := d.Size(code)
	return e.Name, ok
}

// Categories lists built-in categories followed by overlay additions.
// Overlay subcategories for an existing category name are appended to it.
func (d *Dictionaries) Categories() []Category {
	out := make([]Category, 0, len(d.builtin.categories))
	pos := make(map[string]int)
	for _, l := range d.layers() {
		for _, c := range l.categories {
			if i, ok := pos[c.Name]; ok {
				out[i].Subcategories = append(out[i].Subcategories, c.Subcategories...)
				continue
			}
			c.Subcategories = append([]Subcategory(nil), c.Subcategories...)
			pos[c.Name] = len(out)
			out = append(out, c)
		}
	}
	return out
}
