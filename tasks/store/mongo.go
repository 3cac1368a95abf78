package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/errors"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/tasks"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	taskCollection = "tasks"
	connectTimeout = 5 * time.Second
)

// Compile-time check to ensure MongoTaskStore implements TaskStore interface
var _ TaskStore = (*MongoTaskStore)(nil)

// MongoTaskStore persists tasks in a MongoDB collection. The connection is
// established lazily on first use and held for the lifetime of the process.
// A failed connection attempt is surfaced to the caller but never cached:
// every operation dials again until one succeeds.
type MongoTaskStore struct {
	uri    string
	dbName string

	mu     sync.Mutex
	client *mongo.Client
	col    *mongo.Collection
}

// NewMongoTaskStore creates a store for the given connection string and
// database name. No I/O happens here; the first operation connects.
func NewMongoTaskStore(uri, dbName string) *MongoTaskStore {
	return &MongoTaskStore{
		uri:    uri,
		dbName: dbName,
	}
}

// collection returns the tasks collection, connecting on first use.
func (s *MongoTaskStore) collection(ctx context.Context) (*mongo.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.col != nil {
		return s.col, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(s.uri).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout)

	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		return nil, errors.NewUnavailableError("failed to connect to mongo", map[string]any{
			"error": err.Error(),
		})
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.NewUnavailableError("mongo is unreachable", map[string]any{
			"error": err.Error(),
		})
	}

	s.client = client
	s.col = client.Database(s.dbName).Collection(taskCollection)

	// Best-effort timestamp indexes. Failure must not take the store down.
	s.ensureIndexes(ctx)

	return s.col, nil
}

func (s *MongoTaskStore) ensureIndexes(ctx context.Context) {
	idxCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	_, _ = s.col.Indexes().CreateMany(idxCtx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "updated_at", Value: 1}}},
	})
}

// Create inserts one document. The adapter generates the UUID itself so the
// task ID is a plain string regardless of Mongo's native ObjectID type.
func (s *MongoTaskStore) Create(ctx context.Context, title, description string, completed bool) (*tasks.Task, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	col, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	now := timestamp()
	task := &tasks.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Completed:   completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := col.InsertOne(ctx, task); err != nil {
		return nil, errors.NewUnavailableError("failed to insert task", map[string]any{
			"error": err.Error(),
		})
	}

	return task, nil
}

// List returns all documents in the collection's natural order.
func (s *MongoTaskStore) List(ctx context.Context) ([]*tasks.Task, error) {
	col, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := col.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.NewUnavailableError("failed to list tasks", map[string]any{
			"error": err.Error(),
		})
	}
	defer cursor.Close(ctx)

	out := make([]*tasks.Task, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.NewUnavailableError("failed to decode tasks", map[string]any{
			"error": err.Error(),
		})
	}
	return out, nil
}

// Get fetches one document by ID, translating "no document" into not found.
func (s *MongoTaskStore) Get(ctx context.Context, id string) (*tasks.Task, error) {
	col, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	var task tasks.Task
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&task); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NewNotFoundError("task not found")
		}
		return nil, errors.NewUnavailableError("failed to fetch task", map[string]any{
			"error": err.Error(),
		})
	}
	return &task, nil
}

// Update applies a $set containing only the supplied fields plus updated_at
// and returns the post-update document. "No document matched" is not found.
func (s *MongoTaskStore) Update(ctx context.Context, id string, patch tasks.TaskPatch) (*tasks.Task, error) {
	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return nil, err
		}
	}

	col, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": timestamp()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Completed != nil {
		set["completed"] = *patch.Completed
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var task tasks.Task
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NewNotFoundError("task not found")
		}
		return nil, errors.NewUnavailableError("failed to update task", map[string]any{
			"error": err.Error(),
		})
	}
	return &task, nil
}

// Delete removes one document. "Nothing removed" is not found, so a second
// delete of the same ID fails the same way the in-memory store does.
func (s *MongoTaskStore) Delete(ctx context.Context, id string) error {
	col, err := s.collection(ctx)
	if err != nil {
		return err
	}

	result, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.NewUnavailableError("failed to delete task", map[string]any{
			"error": err.Error(),
		})
	}
	if result.DeletedCount == 0 {
		return errors.NewNotFoundError("task not found")
	}
	return nil
}

// Ping reports whether Mongo is reachable, connecting first if needed.
func (s *MongoTaskStore) Ping(ctx context.Context) error {
	if _, err := s.collection(ctx); err != nil {
		return err
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := s.client.Ping(pingCtx, readpref.Primary()); err != nil {
		return errors.NewUnavailableError("mongo is unreachable", map[string]any{
			"error": err.Error(),
		})
	}
	return nil
}

// Close disconnects the client if a connection was ever established.
func (s *MongoTaskStore) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return nil
	}

	err := s.client.Disconnect(ctx)
	s.client = nil
	s.col = nil
	return err
}
