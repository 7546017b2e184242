package registration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// MongoStorage stores one document per record, keyed by the record id.
type MongoStorage struct {
	coll *mongo.Collection
}

func NewMongoStorage(coll *mongo.Collection) *MongoStorage {
	return &MongoStorage{coll: coll}
}

type mongoRecord struct {
	ID           string    `bson:"_id"`
	FullName     string    `bson:"full_name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	PhoneNumber  string    `bson:"phone_number"`
	Age          float64   `bson:"age"`
	Country      string    `bson:"country"`
	CreatedAt    time.Time `bson:"created_at"`
}

func toMongo(rec Record) mongoRecord {
	return mongoRecord{
		ID:           rec.ID.String(),
		FullName:     rec.FullName,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		PhoneNumber:  rec.PhoneNumber,
		Age:          rec.Age,
		Country:      rec.Country,
		CreatedAt:    rec.CreatedAt,
	}
}

func (m mongoRecord) record() (Record, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return Record{}, fmt.Errorf("decode registration id %q: %w", m.ID, err)
	}
	return Record{
		ID:           id,
		FullName:     m.FullName,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		PhoneNumber:  m.PhoneNumber,
		Age:          m.Age,
		Country:      m.Country,
		CreatedAt:    m.CreatedAt.UTC(),
	}, nil
}

func (s *MongoStorage) Save(ctx context.Context, rec Record) error {
	_, err := s.coll.InsertOne(ctx, toMongo(rec))
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s", ErrDuplicateRecord, rec.ID)
	}
	if err != nil {
		return errors.Join(ErrFailedToSave, err)
	}
	return nil
}

func (s *MongoStorage) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	var doc mongoRecord
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	if err != nil {
		return Record{}, errors.Join(ErrStorageUnavailable, err)
	}
	return doc.record()
}

func (s *MongoStorage) Ping(ctx context.Context) error {
	if err := s.coll.Database().Client().Ping(ctx, nil); err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	return nil
}
