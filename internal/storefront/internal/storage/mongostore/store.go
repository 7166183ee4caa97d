// Package mongostore keeps items, the audit log and admin accounts in MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront_api/internal/storefront/internal/business"
	"storefront_api/internal/storefront/internal/models"
)

type ItemStore struct {
	coll *mongo.Collection
}

func NewItemStore(db *mongo.Database) *ItemStore {
	return &ItemStore{coll: db.Collection(itemsCollection)}
}

func (s *ItemStore) ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

func (s *ItemStore) List(ctx context.Context) ([]models.Item, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find items: %w", err)
	}
	defer cur.Close(ctx)

	items := make([]models.Item, 0)
	for cur.Next(ctx) {
		var doc itemDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode item: %w", err)
		}
		items = append(items, doc.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("error occurred during cursor iteration: %w", err)
	}
	return items, nil
}

func (s *ItemStore) Create(ctx context.Context, item models.Item) (models.Item, error) {
	doc := itemDocument{ID: primitive.NewObjectID(), Item: item}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return models.Item{}, fmt.Errorf("failed to insert item: %w", err)
	}
	return doc.toModel(), nil
}

func (s *ItemStore) Update(ctx context.Context, id string, patch models.ItemPatch) (models.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Item{}, business.ErrNotFound
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc itemDocument
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": patchSet(patch)}, opts).Decode(&doc)
	if err != nil {
		return models.Item{}, notFound("update item", err)
	}
	return doc.toModel(), nil
}

func (s *ItemStore) Delete(ctx context.Context, id string) (models.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Item{}, business.ErrNotFound
	}
	var doc itemDocument
	if err := s.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return models.Item{}, notFound("delete item", err)
	}
	return doc.toModel(), nil
}

type AuditStore struct {
	coll *mongo.Collection
}

func NewAuditStore(db *mongo.Database) *AuditStore {
	return &AuditStore{coll: db.Collection(logsCollection)}
}

func (s *AuditStore) Append(ctx context.Context, entry models.AuditLogEntry) (models.AuditLogEntry, error) {
	doc := logDocument{ID: primitive.NewObjectID(), AuditLogEntry: entry}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return models.AuditLogEntry{}, fmt.Errorf("failed to append audit entry: %w", err)
	}
	return doc.toModel(), nil
}

func (s *AuditStore) List(ctx context.Context, limit int) ([]models.AuditLogEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find audit entries: %w", err)
	}
	defer cur.Close(ctx)

	var docs []logDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode audit entries: %w", err)
	}
	entries := make([]models.AuditLogEntry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, d.toModel())
	}
	return entries, nil
}

type AdminStore struct {
	coll *mongo.Collection
}

func NewAdminStore(db *mongo.Database) *AdminStore {
	return &AdminStore{coll: db.Collection(adminsCollection)}
}

func (s *AdminStore) FindByUsername(ctx context.Context, username string) (models.AdminAccount, error) {
	var acc models.AdminAccount
	if err := s.coll.FindOne(ctx, bson.M{"username": username}).Decode(&acc); err != nil {
		return models.AdminAccount{}, notFound("find admin", err)
	}
	return acc, nil
}

func (s *AdminStore) Create(ctx context.Context, account models.AdminAccount) error {
	opts := options.Update().SetUpsert(true)
	_, err := s.coll.UpdateOne(ctx, bson.M{"username": account.Username}, bson.M{"$setOnInsert": account}, opts)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes the queries above rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(adminsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create admins index: %w", err)
	}
	_, err = db.Collection(logsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "timestamp", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create logs index: %w", err)
	}
	return nil
}

func notFound(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return business.ErrNotFound
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
