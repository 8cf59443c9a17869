package submission

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStore implements Store on a MongoDB collection.
//
// The stored document is the payload itself with the meta sub-record merged
// in under MetaKey, mirroring what the HTTP listing returns. Status updates
// filter on the current status so the forward-only state machine holds even
// under concurrent writers, while re-writing the same terminal status stays
// a no-op match.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore creates a submission store on the named collection.
func NewMongoStore(db *mongo.Database, collection string) *MongoStore {
	return &MongoStore{collection: db.Collection(collection)}
}

func (s *MongoStore) Insert(ctx context.Context, payload map[string]any, meta Meta) (string, error) {
	doc := make(bson.M, len(payload)+1)
	for k, v := range payload {
		doc[k] = v
	}
	doc[MetaKey] = meta

	result, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInsertFailed, err)
	}

	oid, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("%w: unexpected inserted id type %T", ErrInsertFailed, result.InsertedID)
	}
	return oid.Hex(), nil
}

func (s *MongoStore) SetStatus(ctx context.Context, id string, status Status, errMsg string) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	// Restrict the match to states that may legally move to the target
	// status. A second identical write still matches; a conflicting one
	// matches nothing.
	allowedFrom := bson.A{status}
	for from, targets := range transitions {
		for _, target := range targets {
			if target == status {
				allowedFrom = append(allowedFrom, from)
			}
		}
	}

	set := bson.M{MetaKey + ".status": status}
	if errMsg != "" {
		set[MetaKey+".error"] = errMsg
	}

	result, err := s.collection.UpdateOne(ctx,
		bson.M{
			"_id":              oid,
			MetaKey + ".status": bson.M{"$in": allowedFrom},
		},
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: id %s to status %q", ErrStatusNotUpdated, id, status)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context, limit int64) ([]map[string]any, error) {
	cursor, err := s.collection.Find(ctx,
		bson.M{},
		options.Find().
			SetProjection(bson.M{"_id": 0}).
			SetSort(bson.D{{Key: MetaKey + ".received_at", Value: -1}}).
			SetLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}

	var docs []map[string]any
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	if docs == nil {
		docs = []map[string]any{}
	}
	return docs, nil
}
