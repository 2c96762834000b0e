package reservation

import (
	"slices"

	"upc-cli/storage"
)

// Catalog holds the option lists offered by the reservation form.
type Catalog struct {
	Campuses []string
	Spaces   map[storage.Category][]string
}

// Entry is one of the fixed reservation entry points on the dashboard.
type Entry struct {
	Category    storage.Category `json:"category"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
}

func DefaultCatalog() Catalog {
	return Catalog{
		Campuses: []string{"Monterrico", "San Isidro", "San Miguel", "Villa"},
		Spaces: map[storage.Category][]string{
			storage.CategorySports: {
				"Espacio deportivos/Gimnasios",
				"Espacio deportivos/Losa 1",
				"Espacio deportivos/Losa 2",
			},
			storage.CategoryLaboratory: {
				"Laboratorio de Computación",
				"Laboratorio de Física",
				"Laboratorio de Química",
				"Laboratorio de Ingeniería",
				"Laboratorio de Diseño",
			},
		},
	}
}

// WithOverrides replaces each list that is non-empty.
func (c Catalog) WithOverrides(campuses, sports, laboratory []string) Catalog {
	out := Catalog{
		Campuses: slices.Clone(c.Campuses),
		Spaces:   map[storage.Category][]string{},
	}
	for category, spaces := range c.Spaces {
		out.Spaces[category] = slices.Clone(spaces)
	}
	if len(campuses) > 0 {
		out.Campuses = slices.Clone(campuses)
	}
	if len(sports) > 0 {
		out.Spaces[storage.CategorySports] = slices.Clone(sports)
	}
	if len(laboratory) > 0 {
		out.Spaces[storage.CategoryLaboratory] = slices.Clone(laboratory)
	}
	return out
}

func (c Catalog) SpaceOptions(category storage.Category) []string {
	return c.Spaces[category]
}

// Title is the heading of the reservation form for category.
func Title(category storage.Category) string {
	if category == storage.CategorySports {
		return "RESERVAR UN ESPACIO DEPORTIVO"
	}
	return "RESERVAR DE LABORATORIO"
}

func spaceNoun(category storage.Category) string {
	if category == storage.CategorySports {
		return "espacio deportivo"
	}
	return "laboratorio"
}

func Entries() []Entry {
	return []Entry{
		{Category: storage.CategorySports, Title: "Espacios deportivos", Description: "Canchas, Gimnasio, Piscina"},
		{Category: storage.CategoryLaboratory, Title: "Laboratorios", Description: "Cómputo, ingeniería, diseño"},
	}
}
