package catalog

// AliasTable mapea un nombre canónico normalizado a formas almacenadas
// adicionales que también cuentan como match. Es unidireccional:
// cricket -> crickets no implica crickets -> cricket.
type AliasTable map[string][]string

// DefaultAliases son las excepciones conocidas del catálogo.
func DefaultAliases() AliasTable {
	return NewAliasTable(map[string][]string{
		"cricket": {"crickets"},
	})
}

// NewAliasTable normaliza ambos lados de cada regla.
func NewAliasTable(rules map[string][]string) AliasTable {
	t := make(AliasTable, len(rules))
	for canonical, stored := range rules {
		c := Normalize(canonical)
		if c == "" {
			continue
		}
		for _, s := range stored {
			if n := Normalize(s); n != "" && n != c {
				t[c] = append(t[c], n)
			}
		}
	}
	return t
}

// Matches dice si storedNorm es alias de canonicalNorm. Ambos ya normalizados.
func (t AliasTable) Matches(canonicalNorm, storedNorm string) bool {
	for _, a := range t[canonicalNorm] {
		if a == storedNorm {
			return true
		}
	}
	return false
}
