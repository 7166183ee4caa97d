package models

import "time"

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 1000
	MaxCategoryLength    = 100
	MaxPrice             = 100000.0
)

// Item is a catalog entry. Price is always in decimal currency units.
type Item struct {
	ID          string    `json:"_id" bson:"-"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	Category    string    `json:"category" bson:"category"`
	Image       string    `json:"image" bson:"image"`
	InStock     bool      `json:"inStock" bson:"inStock"`
	Sold        int       `json:"sold" bson:"sold"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	IsNew       bool      `json:"isNew" bson:"isNew"`
	OnSale      bool      `json:"onSale" bson:"onSale"`
	// VariantID is only set for items synthesized from the external catalog.
	VariantID *int64 `json:"variant_id,omitempty" bson:"-"`
}

// NewItem returns an item carrying the documented defaults.
func NewItem(now time.Time) Item {
	return Item{InStock: true, CreatedAt: now}
}

// ItemPatch carries the mutable attributes of an Item. A nil field is left untouched.
type ItemPatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Image       *string  `json:"image,omitempty"`
	InStock     *bool    `json:"inStock,omitempty"`
	Sold        *int     `json:"sold,omitempty"`
	IsNew       *bool    `json:"isNew,omitempty"`
	OnSale      *bool    `json:"onSale,omitempty"`
}

func (p ItemPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.Category == nil &&
		p.Image == nil && p.InStock == nil && p.Sold == nil && p.IsNew == nil && p.OnSale == nil
}

// Apply copies every set field of p onto item.
func (p ItemPatch) Apply(item *Item) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Image != nil {
		item.Image = *p.Image
	}
	if p.InStock != nil {
		item.InStock = *p.InStock
	}
	if p.Sold != nil {
		item.Sold = *p.Sold
	}
	if p.IsNew != nil {
		item.IsNew = *p.IsNew
	}
	if p.OnSale != nil {
		item.OnSale = *p.OnSale
	}
}
