package trial

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// mongoStore persists trials in MongoDB, one document per user with the
// user ID as _id. The _id index gives the same once-per-user guarantee
// the Postgres unique constraint does: a duplicate insert fails and the
// ledger falls back to a re-read.
type mongoStore struct {
	coll *mongo.Collection
}

type trialDoc struct {
	UserID   string    `bson:"_id"`
	StartsAt time.Time `bson:"starts_at"`
	EndsAt   time.Time `bson:"ends_at"`
	Active   bool      `bson:"is_active"`
}

// NewMongoStore returns a Store backed by the "trials" collection of db.
func NewMongoStore(db *mongo.Database) Store {
	if db == nil {
		panic("trial: mongo database is required")
	}
	return &mongoStore{coll: db.Collection("trials")}
}

func (s *mongoStore) Get(ctx context.Context, userID uuid.UUID) (*Trial, error) {
	var doc trialDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": userID.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTrialNotFound
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	id, err := uuid.Parse(doc.UserID)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	return &Trial{
		UserID:   id,
		StartsAt: doc.StartsAt.UTC(),
		EndsAt:   doc.EndsAt.UTC(),
		Active:   doc.Active,
	}, nil
}

func (s *mongoStore) Create(ctx context.Context, t *Trial) error {
	doc := trialDoc{
		UserID:   t.UserID.String(),
		StartsAt: t.StartsAt,
		EndsAt:   t.EndsAt,
		Active:   t.Active,
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrTrialExists
		}
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *mongoStore) Deactivate(ctx context.Context, userID uuid.UUID) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": userID.String()},
		bson.M{"$set": bson.M{"is_active": false}},
	)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return ErrTrialNotFound
	}
	return nil
}
