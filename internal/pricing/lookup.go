package pricing

import "sort"

// Lookup is the outcome of resolving a configuration key. Fallback is set
// when the requested key was absent and Key names the default used instead.
type Lookup[T any] struct {
	Requested string
	Key       string
	Value     T
	Fallback  bool
}

func lookup[T any](table map[string]T, key, fallbackKey string) (Lookup[T], bool) {
	if v, ok := table[key]; ok {
		return Lookup[T]{Requested: key, Key: key, Value: v}, true
	}
	if v, ok := table[fallbackKey]; ok {
		return Lookup[T]{Requested: key, Key: fallbackKey, Value: v, Fallback: true}, true
	}
	// The default key itself was removed from the table; take the first key
	// in sorted order so the result stays deterministic.
	keys := sortedKeys(table)
	if len(keys) == 0 {
		return Lookup[T]{Requested: key}, false
	}
	return Lookup[T]{Requested: key, Key: keys[0], Value: table[keys[0]], Fallback: true}, true
}

// LookupMaterial resolves key against the configured materials, falling back
// to DefaultMaterial.
func (c Config) LookupMaterial(key string) (Lookup[Material], bool) {
	return lookup(c.Materials, key, DefaultMaterial)
}

// LookupComplexity resolves key against the complexity tiers, falling back to
// DefaultComplexity.
func (c Config) LookupComplexity(key string) (Lookup[ComplexityTier], bool) {
	return lookup(c.Complexity, key, DefaultComplexity)
}

// LookupRush resolves key against the rush premiums, falling back to
// DefaultRush.
func (c Config) LookupRush(key string) (Lookup[RushPremium], bool) {
	return lookup(c.RushPremiums, key, DefaultRush)
}

// MaterialKeys lists the configured material keys in sorted order.
func (c Config) MaterialKeys() []string {
	return sortedKeys(c.Materials)
}

// ComplexityKeys lists tier keys ordered by ascending multiplier.
func (c Config) ComplexityKeys() []string {
	keys := sortedKeys(c.Complexity)
	sort.SliceStable(keys, func(i, j int) bool {
		return c.Complexity[keys[i]].Multiplier < c.Complexity[keys[j]].Multiplier
	})
	return keys
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
