package mongostore

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront_api/internal/storefront/internal/models"
)

const (
	itemsCollection  = "items"
	logsCollection   = "logs"
	adminsCollection = "admins"
)

type itemDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	models.Item `bson:",inline"`
}

func (d itemDocument) toModel() models.Item {
	item := d.Item
	item.ID = d.ID.Hex()
	return item
}

type logDocument struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	models.AuditLogEntry `bson:",inline"`
}

func (d logDocument) toModel() models.AuditLogEntry {
	entry := d.AuditLogEntry
	entry.ID = d.ID.Hex()
	return entry
}

// patchSet builds the $set document for the fields present in p.
func patchSet(p models.ItemPatch) bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.Image != nil {
		set["image"] = *p.Image
	}
	if p.InStock != nil {
		set["inStock"] = *p.InStock
	}
	if p.Sold != nil {
		set["sold"] = *p.Sold
	}
	if p.IsNew != nil {
		set["isNew"] = *p.IsNew
	}
	if p.OnSale != nil {
		set["onSale"] = *p.OnSale
	}
	return set
}
