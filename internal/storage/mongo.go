package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"telegram-budget-bot/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const snapshotID = "ledger"

// snapshot is the single MongoDB document holding the serialized ledger.
// The payload uses the same JSON encoding as the file store so both
// backends are interchangeable.
type snapshot struct {
	ID        string `bson:"_id"`
	Payload   []byte `bson:"payload"`
	UpdatedAt int64  `bson:"updatedAt"`
}

// MongoStore keeps the ledger as one snapshot document in a collection,
// replaced wholesale on every save.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, uri, dbName, collName string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Println("Successfully connected to MongoDB")
	return &MongoStore{
		client:     client,
		collection: client.Database(dbName).Collection(collName),
	}, nil
}

// Close closes the database connection.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Load fetches the snapshot document. No snapshot or a malformed payload
// yields a fresh empty document.
func (s *MongoStore) Load(ctx context.Context) (*models.LedgerDocument, error) {
	var snap snapshot
	err := s.collection.FindOne(ctx, bson.M{"_id": snapshotID}).Decode(&snap)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.NewLedgerDocument(), nil
		}
		return nil, fmt.Errorf("failed to load ledger snapshot: %w", err)
	}

	doc := models.NewLedgerDocument()
	if err := json.Unmarshal(snap.Payload, doc); err != nil {
		log.Printf("Ledger snapshot is malformed, starting fresh: %v", err)
		return models.NewLedgerDocument(), nil
	}
	if doc.Users == nil {
		doc.Users = make(map[string]*models.UserAccount)
	}
	return doc, nil
}

// Save replaces the snapshot document (upsert on first save).
func (s *MongoStore) Save(ctx context.Context, doc *models.LedgerDocument) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	snap := snapshot{
		ID:        snapshotID,
		Payload:   payload,
		UpdatedAt: time.Now().Unix(),
	}

	opts := options.Replace().SetUpsert(true)
	_, err = s.collection.ReplaceOne(ctx, bson.M{"_id": snapshotID}, snap, opts)
	if err != nil {
		return fmt.Errorf("failed to save ledger snapshot: %w", err)
	}
	return nil
}
