package entity

import "time"

// Category categoría de insumos, con nombre bilingüe (inglés/árabe) y orden manual.
// No se puede eliminar mientras algún item la referencie.
type Category struct {
	ID        string
	TeamID    string
	CreatedBy string
	Name      string
	NameAr    string
	SortOrder int
	Archived  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
