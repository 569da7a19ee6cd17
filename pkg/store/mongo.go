// Package store persists crawl snapshots to MongoDB.
//
// The directory of JSON files is the canonical output; the store is an
// optional secondary sink for querying crawl history. It is only active
// when a Mongo URI is configured, and its failures never fail a crawl.
package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agentdex/agentdex/pkg/agent"
	"github.com/agentdex/agentdex/pkg/crawl"
)

const connectTimeout = 10 * time.Second

// Mongo writes agents and run documents to a MongoDB database.
type Mongo struct {
	client *mongo.Client
	db     string
}

// NewMongo connects to uri and verifies the connection with a ping.
func NewMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Mongo{client: client, db: database}, nil
}

// SaveRun upserts every agent by slug and records the run summary.
func (s *Mongo) SaveRun(ctx context.Context, summary crawl.Summary, agents []agent.Agent) error {
	if len(agents) > 0 {
		models := make([]mongo.WriteModel, 0, len(agents))
		for _, a := range agents {
			models = append(models, mongo.NewReplaceOneModel().
				SetFilter(bson.M{"slug": a.Slug}).
				SetReplacement(a).
				SetUpsert(true))
		}
		if _, err := s.collection("agents").BulkWrite(ctx, models); err != nil {
			return fmt.Errorf("upsert agents: %w", err)
		}
	}

	run := bson.M{
		"runId":      summary.RunID,
		"startedAt":  summary.StartedAt,
		"durationMs": summary.Duration.Milliseconds(),
		"perSource":  summary.PerSource,
		"discovered": summary.Discovered,
		"merged":     summary.Merged,
		"kept":       summary.Kept,
		"written":    summary.Written,
		"removed":    summary.Removed,
	}
	if _, err := s.collection("runs").InsertOne(ctx, run); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Close disconnects from the database.
func (s *Mongo) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Mongo) collection(name string) *mongo.Collection {
	return s.client.Database(s.db).Collection(name)
}
