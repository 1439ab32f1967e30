package animals

import "time"

// Category define las categorías soportadas por el catálogo.
// @Enum wild, farm, birds, insects
type Category string

const (
	CategoryWild    Category = "wild"
	CategoryFarm    Category = "farm"
	CategoryBirds   Category = "birds"
	CategoryInsects Category = "insects"
)

// DefaultCategory se usa cuando el caller no envía categoría.
const DefaultCategory = CategoryWild

// ParseCategory valida la categoría; debe coincidir exacto ("Birds" no vale).
// Vacío => DefaultCategory.
func ParseCategory(s string) (Category, bool) {
	switch c := Category(s); c {
	case "":
		return DefaultCategory, true
	case CategoryWild, CategoryFarm, CategoryBirds, CategoryInsects:
		return c, true
	default:
		return "", false
	}
}

// Media es la referencia a un asset alojado en el media host.
// AssetID permite gestionarlo luego (p.ej. borrarlo); vacío si el URL vino literal.
type Media struct {
	URL     string
	AssetID string
}

func (m Media) IsZero() bool {
	return m.URL == "" && m.AssetID == ""
}

// Animal representa un registro del catálogo.
//
// Key es el identificador estable (no cambia nunca) y Name es la etiqueta visible.
// Todas las búsquedas por identidad usan Key.
type Animal struct {
	ID  string
	Key string

	Name        string
	Category    Category
	Habitat     string
	Facts       string
	Description string

	Image Media
	Audio Media

	CreatedAt time.Time
	UpdatedAt time.Time
}
