package request

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-cra/internal/database"
	"go-cra/internal/workflow"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("request not found")

type RequestRepository interface {
	Create(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, id string) (*Request, error)
	List(ctx context.Context, filter bson.M) ([]Request, error)
	UpdateContent(ctx context.Context, id string, update bson.M) error
	Delete(ctx context.Context, id string) error
	CommitTransition(ctx context.Context, id string, status workflow.Status, fields map[string]any, event workflow.TransitionEvent) error
	NextRequestNo(ctx context.Context) (string, error)
}

type RequestRepositoryImpl struct {
	Collection *mongo.Collection
	Counters   *mongo.Collection
}

func NewRequestRepository(mongodb *database.MongodbDB) RequestRepository {
	return &RequestRepositoryImpl{
		Collection: mongodb.DB.Collection("requests"),
		Counters:   mongodb.DB.Collection("counters"),
	}
}

func (r *RequestRepositoryImpl) Create(ctx context.Context, req *Request) error {
	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	if req.History == nil {
		req.History = []workflow.TransitionEvent{}
	}
	_, err := r.Collection.InsertOne(ctx, req)
	return err
}

func (r *RequestRepositoryImpl) GetByID(ctx context.Context, id string) (*Request, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var req Request
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepositoryImpl) List(ctx context.Context, filter bson.M) ([]Request, error) {
	if filter == nil {
		filter = bson.M{}
	}
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []Request
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *RequestRepositoryImpl) UpdateContent(ctx context.Context, id string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	update["updated_at"] = time.Now()
	res, err := r.Collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CommitTransition applies a status change, its auxiliary field updates and
// the history entry in one UpdateOne, so either everything lands or nothing
// does.
func (r *RequestRepositoryImpl) CommitTransition(ctx context.Context, id string, status workflow.Status, fields map[string]any, event workflow.TransitionEvent) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	set := bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}
	for k, v := range fields {
		set[k] = v
	}

	res, err := r.Collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set":  set,
		"$push": bson.M{"history": event},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// NextRequestNo hands out sequential request numbers (CRA-000123) from an
// atomic counter document.
func (r *RequestRepositoryImpl) NextRequestNo(ctx context.Context) (string, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.Counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "requests"},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CRA-%06d", counter.Seq), nil
}
