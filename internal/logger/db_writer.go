package logger

import (
	"context"
	"fmt"
	"time"

	"go-cra/internal/config"
	"go-cra/internal/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zapcore"
)

// LogEntry holds the data passed from Zap to the worker
type LogEntry struct {
	Level     zapcore.Level
	Message   string
	RequestID string
	ActorID   string
	Caller    string // Function name
}

type storedLog struct {
	Message      string    `bson:"message"`
	Level        string    `bson:"level"`
	RequestID    string    `bson:"request_id,omitempty"`
	ActorID      string    `bson:"actor_id,omitempty"`
	Caller       string    `bson:"caller,omitempty"`
	AppID        string    `bson:"app_id"`
	CreatedOnUtc time.Time `bson:"created_on_utc"`
}

// DBLogWriter drains log entries to Mongo on a background worker so request
// handling never blocks on log persistence.
type DBLogWriter struct {
	db      *mongo.Database
	logChan chan LogEntry
	appId   string
}

// NewDBLogWriter initializes the worker
func NewDBLogWriter(mongodb *database.MongodbDB, cfg *config.Config) *DBLogWriter {
	writer := &DBLogWriter{
		db:      mongodb.DB,
		logChan: make(chan LogEntry, 1000),
		appId:   cfg.AppId,
	}

	go writer.processLogs()

	return writer
}

// AddLog is called by the Zap hook
func (w *DBLogWriter) AddLog(entry LogEntry) {
	select {
	case w.logChan <- entry:
	default:
		// Channel full: drop rather than block the API
		fmt.Println("DB Log Channel Full! Dropping log:", entry.Message)
	}
}

func (w *DBLogWriter) processLogs() {
	for entry := range w.logChan {
		record := storedLog{
			Message:      entry.Message,
			Level:        entry.Level.String(),
			RequestID:    entry.RequestID,
			ActorID:      entry.ActorID,
			Caller:       entry.Caller,
			AppID:        w.appId,
			CreatedOnUtc: time.Now().UTC(),
		}

		// Errors are ignored on purpose: logging must not take the app down
		w.db.Collection("app_logs").InsertOne(context.Background(), record)
	}
}
