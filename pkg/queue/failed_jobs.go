package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lspratas/atelier/pkg/logger"
)

// failedCol is the optional Mongo backend for failed jobs. Nil means the
// in-memory slice is the only record.
var failedCol *mongo.Collection

// UseMongo persists exhausted jobs to the `failed_jobs` collection so they
// survive a restart and can be inspected or replayed by hand.
func UseMongo(db *mongo.Database) {
	failedCol = db.Collection("failed_jobs")
}

// failedJobDoc is the shape written to Mongo.
type failedJobDoc struct {
	JobType  string    `bson:"jobType"`
	Payload  string    `bson:"payload"`
	Error    string    `bson:"error"`
	Attempts int       `bson:"attempts"`
	FailedAt time.Time `bson:"failedAt"`
}

func (m *Manager) persistFailed(job Job, typeName string, lastErr error, attempts int) {
	m.mu.Lock()
	m.failed = append(m.failed, FailedJob{
		Job: job, Err: lastErr, FailedAt: time.Now().UTC(), Attempts: attempts,
	})
	m.mu.Unlock()

	if failedCol == nil {
		return
	}

	payload, err := json.Marshal(job)
	if err != nil {
		payload = []byte(fmt.Sprintf(`{"error": %q}`, err.Error()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	doc := failedJobDoc{
		JobType:  typeName,
		Payload:  string(payload),
		Error:    lastErr.Error(),
		Attempts: attempts,
		FailedAt: time.Now().UTC(),
	}
	if _, err := failedCol.InsertOne(ctx, doc); err != nil {
		// Non-fatal, the in-memory slice still has it.
		logger.Error("queue: persist failed job", "type", typeName, "error", err)
	}
}
