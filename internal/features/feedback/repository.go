package feedback

import (
	"context"
	"time"

	"go-cra/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FeedbackRepository interface {
	Create(ctx context.Context, fb *Feedback) error
	GetByID(ctx context.Context, id string) (*Feedback, error)
	List(ctx context.Context, filter bson.M) ([]Feedback, error)
	Update(ctx context.Context, id string, update bson.M) error
}

type FeedbackRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewFeedbackRepository(mongodb *database.MongodbDB) FeedbackRepository {
	return &FeedbackRepositoryImpl{
		Collection: mongodb.DB.Collection("feedback"),
	}
}

func (r *FeedbackRepositoryImpl) Create(ctx context.Context, fb *Feedback) error {
	if fb.ID.IsZero() {
		fb.ID = primitive.NewObjectID()
	}
	now := time.Now()
	fb.CreatedAt = now
	fb.UpdatedAt = now
	_, err := r.Collection.InsertOne(ctx, fb)
	return err
}

func (r *FeedbackRepositoryImpl) GetByID(ctx context.Context, id string) (*Feedback, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var fb Feedback
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&fb)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &fb, nil
}

func (r *FeedbackRepositoryImpl) List(ctx context.Context, filter bson.M) ([]Feedback, error) {
	if filter == nil {
		filter = bson.M{}
	}
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []Feedback
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *FeedbackRepositoryImpl) Update(ctx context.Context, id string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	update["updated_at"] = time.Now()
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": update})
	return err
}
