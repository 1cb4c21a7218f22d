package entity

import "time"

// Unit unidad de medida de un item (caja, gramo, disco...), bilingüe.
// No se puede eliminar mientras algún item la referencie.
type Unit struct {
	ID             string
	TeamID         string
	CreatedBy      string
	Name           string
	NameAr         string
	Abbreviation   string
	AbbreviationAr string
	SortOrder      int
	Archived       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
