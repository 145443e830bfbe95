package catalog

import "github.com/Martinez-Cris/mueblefact-pro/internal/models"

// Catalog is the product list an exporter or pricing call works against.
// References into it are soft: Find reports absence instead of failing,
// and every caller must handle the absent case.
type Catalog []models.Product

// Find looks up a product by id.
func (c Catalog) Find(id string) (models.Product, bool) {
	if id == "" {
		return models.Product{}, false
	}
	for _, p := range c {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Seed returns the default catalog used when no persisted state exists.
func Seed() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Mesa Comedor", Category: "Mesa", Sizes: []string{"120x80", "140x90", "160x100"}, Colors: []string{"Nogal", "Roble", "Blanco", "Negro"}},
		{ID: "2", Name: "Silla Moderna", Category: "Silla", Sizes: []string{"Estándar"}, Colors: []string{"Nogal", "Roble", "Blanco", "Negro", "Gris"}},
		{ID: "3", Name: "Puff Redondo", Category: "Puff", Sizes: []string{"40cm", "50cm", "60cm"}, Colors: []string{"Beige", "Gris", "Azul", "Verde"}},
		{ID: "4", Name: "Sofá Modular", Category: "Sofá", Sizes: []string{"2 Puestos", "3 Puestos", "L-Shape"}, Colors: []string{"Beige", "Gris", "Azul Marino"}},
		{ID: "5", Name: "Butaco Bar", Category: "Butaco", Sizes: []string{"Alto", "Medio"}, Colors: []string{"Negro", "Blanco", "Cromado"}},
	}
}
