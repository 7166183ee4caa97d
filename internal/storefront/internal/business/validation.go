package business

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/xeipuuv/gojsonschema"

	"storefront_api/internal/storefront/internal/models"
	"storefront_api/pkg/business/service"
)

const itemProperties = `{
    "name":        { "type": "string" },
    "description": { "type": "string" },
    "price":       { "type": "number", "minimum": 0, "maximum": 100000 },
    "category":    { "type": "string" },
    "image":       { "type": "string" },
    "inStock":     { "type": "boolean" },
    "sold":        { "type": "integer", "minimum": 0 },
    "isNew":       { "type": "boolean" },
    "onSale":      { "type": "boolean" }
  }`

const schemaItemCreate = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "price"],
  "properties": ` + itemProperties + `
}`

const schemaItemUpdate = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": ` + itemProperties + `
}`

var (
	itemCreateSchema = mustSchema(schemaItemCreate)
	itemUpdateSchema = mustSchema(schemaItemUpdate)
	text             = service.NewTextService()
)

func mustSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("invalid item schema: %v", err))
	}
	return schema
}

// DecodeItemPayload checks the wire shape of an admin item payload and decodes it.
// create requires name and price.
func DecodeItemPayload(body []byte, create bool) (models.ItemPatch, error) {
	schema := itemUpdateSchema
	if create {
		schema = itemCreateSchema
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return models.ItemPatch{}, invalid("body", "malformed JSON")
	}
	if !result.Valid() {
		verr := &ValidationError{}
		for _, e := range result.Errors() {
			param := e.Field()
			if e.Type() == "required" {
				if p, ok := e.Details()["property"].(string); ok {
					param = p
				}
			}
			if param == "(root)" {
				param = "body"
			}
			verr.add(param, e.Description())
		}
		return models.ItemPatch{}, verr
	}

	var patch models.ItemPatch
	if err := json.Unmarshal(body, &patch); err != nil {
		return models.ItemPatch{}, invalid("body", "malformed JSON")
	}
	return patch, nil
}

// NormalizeItemPatch trims and HTML-escapes text fields and enforces the item constraints.
// The same image policy applies to create and update: a non-empty image must be an
// absolute http(s) URL.
func NormalizeItemPatch(p models.ItemPatch, create bool) (models.ItemPatch, error) {
	verr := &ValidationError{}

	if p.Name == nil && create {
		verr.add("name", "name is required")
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		switch {
		case name == "":
			verr.add("name", "name is required")
		case utf8.RuneCountInString(name) > models.MaxNameLength:
			verr.add("name", fmt.Sprintf("name must be at most %d characters", models.MaxNameLength))
		}
		p.Name = ptr(text.Sanitize(name))
	}

	if p.Description != nil {
		desc := strings.TrimSpace(*p.Description)
		if utf8.RuneCountInString(desc) > models.MaxDescriptionLength {
			verr.add("description", fmt.Sprintf("description must be at most %d characters", models.MaxDescriptionLength))
		}
		p.Description = ptr(text.Sanitize(desc))
	}

	if p.Category != nil {
		category := strings.TrimSpace(*p.Category)
		if utf8.RuneCountInString(category) > models.MaxCategoryLength {
			verr.add("category", fmt.Sprintf("category must be at most %d characters", models.MaxCategoryLength))
		}
		p.Category = ptr(text.Sanitize(category))
	}

	if p.Price == nil && create {
		verr.add("price", "price is required")
	}
	if p.Price != nil {
		price := *p.Price
		if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 || price > models.MaxPrice {
			verr.add("price", fmt.Sprintf("price must be between 0 and %.0f", models.MaxPrice))
		}
	}

	if p.Image != nil {
		image := strings.TrimSpace(*p.Image)
		if image != "" && !IsAbsoluteHTTPURL(image) {
			verr.add("image", "image must be an absolute URL including http(s)://")
		}
		p.Image = &image
	}

	if p.Sold != nil && *p.Sold < 0 {
		verr.add("sold", "sold must not be negative")
	}

	if err := verr.orNil(); err != nil {
		return models.ItemPatch{}, err
	}
	return p, nil
}

func IsAbsoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func ptr[T any](v T) *T {
	return &v
}
