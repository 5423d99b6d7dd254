package fetch

// ProviderMap is a Registry backed by a plain field-name map. Callers build
// it explicitly at construction time; nothing in this package registers
// providers through package state.
type ProviderMap map[string]IDProvider

// ProviderFor returns the provider bound to field, if any.
func (m ProviderMap) ProviderFor(field string) (IDProvider, bool) {
	p, ok := m[field]
	return p, ok
}

// Fields returns the field names that currently resolve to a provider.
func (m ProviderMap) Fields() []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
