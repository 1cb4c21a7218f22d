package dto

import "time"

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name      string `json:"name"`
	NameAr    string `json:"name_ar,omitempty"`
	SortOrder *int   `json:"sort_order,omitempty"`
}

// UpdateCategoryRequest body para PUT /api/categories/:id.
type UpdateCategoryRequest struct {
	Name      *string `json:"name,omitempty"`
	NameAr    *string `json:"name_ar,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
}

// CategoryResponse representación HTTP de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"team_id"`
	Name      string    `json:"name"`
	NameAr    string    `json:"name_ar,omitempty"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUnitRequest body para POST /api/units.
type CreateUnitRequest struct {
	Name           string `json:"name"`
	NameAr         string `json:"name_ar,omitempty"`
	Abbreviation   string `json:"abbreviation"`
	AbbreviationAr string `json:"abbreviation_ar,omitempty"`
	SortOrder      *int   `json:"sort_order,omitempty"`
}

// UpdateUnitRequest body para PUT /api/units/:id.
type UpdateUnitRequest struct {
	Name           *string `json:"name,omitempty"`
	NameAr         *string `json:"name_ar,omitempty"`
	Abbreviation   *string `json:"abbreviation,omitempty"`
	AbbreviationAr *string `json:"abbreviation_ar,omitempty"`
	SortOrder      *int    `json:"sort_order,omitempty"`
}

// UnitResponse representación HTTP de una unidad de medida.
type UnitResponse struct {
	ID             string    `json:"id"`
	TeamID         string    `json:"team_id"`
	Name           string    `json:"name"`
	NameAr         string    `json:"name_ar,omitempty"`
	Abbreviation   string    `json:"abbreviation"`
	AbbreviationAr string    `json:"abbreviation_ar,omitempty"`
	SortOrder      int       `json:"sort_order"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
