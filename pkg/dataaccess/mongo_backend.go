package dataaccess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/bazaar/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/bazaar/pkg/logging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// mongoDatabase is the database the documents are kept in.
	mongoDatabase = "bazaar"

	// mongoCollection is the collection the documents are kept in.
	mongoCollection = "documents"
)

// mongoDocument is a single stored document. The payload is the same JSON the file backend writes.
type mongoDocument struct {
	Name      string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoBackend stores each document as one Mongo document.
type MongoBackend struct {
	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client
}

// NewMongoBackend creates a new Mongo backend.
func NewMongoBackend(l *slog.Logger, client *mongo.Client) *MongoBackend {
	l = l.With(slog.String(logging.KeyDal, BackendMongo))

	if client == nil {
		l.Warn("MongoDB is nil, this can cause a panic. Proceeding...")
	}

	return &MongoBackend{
		l:      l,
		client: client,
	}
}

func (m *MongoBackend) Name() string {
	return BackendMongo
}

func (m *MongoBackend) collection() *mongo.Collection {
	return m.client.Database(mongoDatabase).Collection(mongoCollection)
}

func (m *MongoBackend) Load(ctx context.Context, name string) ([]byte, error) {
	defer monitoring.Observe(BackendMongo, "load", name)()

	doc := new(mongoDocument)
	err := m.collection().FindOne(ctx, bson.M{"_id": name}).Decode(doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotExist
	} else if err != nil {
		return nil, fmt.Errorf("error getting document %s: %w", name, err)
	}
	return []byte(doc.Payload), nil
}

func (m *MongoBackend) Save(ctx context.Context, name string, data []byte) error {
	defer monitoring.Observe(BackendMongo, "save", name)()

	opts := options.Update().SetUpsert(true)
	_, err := m.collection().UpdateOne(ctx, bson.M{"_id": name}, bson.M{"$set": bson.M{
		"payload":    string(data),
		"updated_at": time.Now().UTC(),
	}}, opts)
	if err != nil {
		return fmt.Errorf("error updating document %s: %w", name, err)
	}
	return nil
}

func (m *MongoBackend) Ping(ctx context.Context) error {
	defer monitoring.Observe(BackendMongo, "ping", "-")()

	if err := m.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return nil
}
