package email

import (
	"context"
	"time"

	"go-cra/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EmailRepository struct {
	Collection *mongo.Collection
}

func NewEmailRepository(mongodb *database.MongodbDB) *EmailRepository {
	return &EmailRepository{
		Collection: mongodb.DB.Collection("emails"),
	}
}

func (r *EmailRepository) Create(ctx context.Context, email *Email) error {
	email.SentAt = time.Now()
	_, err := r.Collection.InsertOne(ctx, email)
	return err
}

func (r *EmailRepository) UpdateStatus(ctx context.Context, id interface{}, status EmailStatus, errMsg string) error {
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "error": errMsg},
	})
	return err
}

func (r *EmailRepository) List(ctx context.Context, limit int64) ([]Email, error) {
	opts := options.Find().SetSort(bson.M{"sent_at": -1}).SetLimit(limit)
	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var emails []Email
	if err = cursor.All(ctx, &emails); err != nil {
		return nil, err
	}
	return emails, nil
}
