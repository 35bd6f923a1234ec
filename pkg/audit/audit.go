// Package audit records every artifact the engine produces.
//
// Entries go to the log by default ([LogRecorder]) or to a MongoDB
// collection ([MongoRecorder]) when a database is configured. Recording is
// best effort: a failed write is logged by the caller and never fails the
// render it describes.
package audit

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
)

// DefaultCollection holds audit entries when MongoDB is used.
const DefaultCollection = "nametag_renders"

// Entry describes one produced artifact.
type Entry struct {
	ID        string    `json:"id" bson:"_id"`
	CardID    string    `json:"card_id" bson:"card_id"`
	Format    string    `json:"format" bson:"format"`
	Mode      string    `json:"mode" bson:"mode"`
	Bytes     int       `json:"bytes" bson:"bytes"`
	Width     float64   `json:"width" bson:"width"`
	Height    float64   `json:"height" bson:"height"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NewEntry creates an entry with the given render ID, or a fresh one when
// id is empty.
func NewEntry(id, cardID, format, mode string, size int, width, height float64) Entry {
	if id == "" {
		id = uuid.NewString()
	}
	return Entry{
		ID:        id,
		CardID:    cardID,
		Format:    format,
		Mode:      mode,
		Bytes:     size,
		Width:     width,
		Height:    height,
		CreatedAt: time.Now().UTC(),
	}
}

// Recorder stores audit entries. Implementations are safe for concurrent use.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
	Close() error
}

// NopRecorder discards entries.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Entry) error { return nil }
func (NopRecorder) Close() error                        { return nil }

// LogRecorder writes entries as structured log lines.
type LogRecorder struct {
	logger *log.Logger
}

// NewLogRecorder creates a LogRecorder. A nil logger uses the default logger.
func NewLogRecorder(logger *log.Logger) *LogRecorder {
	if logger == nil {
		logger = log.Default()
	}
	return &LogRecorder{logger: logger}
}

// Record implements Recorder.
func (r *LogRecorder) Record(_ context.Context, e Entry) error {
	r.logger.Info("artifact produced",
		"render_id", e.ID,
		"card_id", e.CardID,
		"format", e.Format,
		"mode", e.Mode,
		"bytes", e.Bytes,
		"width", e.Width,
		"height", e.Height)
	return nil
}

// Close implements Recorder.
func (r *LogRecorder) Close() error { return nil }

// MongoRecorder inserts entries into a collection.
type MongoRecorder struct {
	client *mongo.Client
	coll   *mongo.Collection
	owned  bool
}

// NewMongoRecorder writes to collection in database using an existing
// client. Close does not disconnect a client it did not create.
func NewMongoRecorder(client *mongo.Client, database, collection string) *MongoRecorder {
	if collection == "" {
		collection = DefaultCollection
	}
	return &MongoRecorder{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}
}

// DialMongoRecorder connects to uri and returns a recorder owning the
// connection.
func DialMongoRecorder(ctx context.Context, uri, database, collection string) (*MongoRecorder, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "connect audit database")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "ping audit database")
	}
	r := NewMongoRecorder(client, database, collection)
	r.owned = true
	return r, nil
}

// Record implements Recorder.
func (r *MongoRecorder) Record(ctx context.Context, e Entry) error {
	if _, err := r.coll.InsertOne(ctx, e); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "insert audit entry %s", e.ID)
	}
	return nil
}

// Recent returns the newest entries for cardID, newest first.
func (r *MongoRecorder) Recent(ctx context.Context, cardID string, limit int64) ([]Entry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cur, err := r.coll.Find(ctx, bson.M{"card_id": cardID}, opts)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "find audit entries")
	}
	var out []Entry
	if err := cur.All(ctx, &out); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "decode audit entries")
	}
	return out, nil
}

// Close implements Recorder.
func (r *MongoRecorder) Close() error {
	if !r.owned {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}

var (
	_ Recorder = NopRecorder{}
	_ Recorder = (*LogRecorder)(nil)
	_ Recorder = (*MongoRecorder)(nil)
)
