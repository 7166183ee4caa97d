package models

type SortOrder string

const (
	SortPriceAsc     SortOrder = "price-asc"
	SortPriceDesc    SortOrder = "price-desc"
	SortAlphabetical SortOrder = "alphabetical"
	SortBestselling  SortOrder = "bestselling"
	SortNewest       SortOrder = "newest"
)

// QueryRequest describes one catalog view. A nil MaxPrice means "whole catalog".
type QueryRequest struct {
	Category   string    `json:"category,omitempty"`
	MaxPrice   *float64  `json:"maxPrice,omitempty"`
	SearchText string    `json:"searchText,omitempty"`
	Sort       SortOrder `json:"sort,omitempty"`
	Page       int       `json:"page,omitempty"`
}

type Page struct {
	Items      []Item   `json:"items"`
	Page       int      `json:"page"`
	PageSize   int      `json:"pageSize"`
	TotalPages int      `json:"totalPages"`
	TotalItems int      `json:"totalItems"`
	MaxPrice   float64  `json:"maxPrice"`
	Categories []string `json:"categories"`
}
