package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookworks/book-app/internal/core/domain"
)

const (
	authorsCollection = "authors"
	readersCollection = "readers"
	adminsCollection  = "admins"
)

// PrincipalStore persists principals with one collection per kind. Usernames
// are unique within a collection (see EnsureIndexes), not across collections.
type PrincipalStore struct {
	colls map[domain.Role]*mongo.Collection
}

func NewPrincipalStore(db *mongo.Database) *PrincipalStore {
	return &PrincipalStore{
		colls: map[domain.Role]*mongo.Collection{
			domain.RoleAuthor: db.Collection(authorsCollection),
			domain.RoleReader: db.Collection(readersCollection),
			domain.RoleAdmin:  db.Collection(adminsCollection),
		},
	}
}

type principalDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name,omitempty"`
	Surname      string             `bson:"surname,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (s *PrincipalStore) collection(kind domain.Role) (*mongo.Collection, error) {
	coll, ok := s.colls[kind]
	if !ok {
		return nil, fmt.Errorf("unknown principal kind %q", kind)
	}
	return coll, nil
}

func (s *PrincipalStore) Create(ctx context.Context, p *domain.Principal) (*domain.Principal, error) {
	coll, err := s.collection(p.Role)
	if err != nil {
		return nil, err
	}

	doc := principalDoc{
		Name:         p.Name,
		Surname:      p.Surname,
		Username:     p.Username,
		PasswordHash: p.PasswordHash,
		Role:         string(p.Role),
		CreatedAt:    p.CreatedAt.Unix(),
		UpdatedAt:    p.UpdatedAt.Unix(),
	}

	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert principal: %w", err)
	}

	created := *p
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (s *PrincipalStore) FindByUsername(ctx context.Context, kind domain.Role, username string) (*domain.Principal, error) {
	coll, err := s.collection(kind)
	if err != nil {
		return nil, err
	}

	var doc principalDoc
	if err := coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("find principal: %w", err)
	}
	return docToPrincipal(doc), nil
}

func (s *PrincipalStore) FindByID(ctx context.Context, kind domain.Role, id string) (*domain.Principal, error) {
	coll, err := s.collection(kind)
	if err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPrincipalNotFound
	}

	var doc principalDoc
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("find principal by id: %w", err)
	}
	return docToPrincipal(doc), nil
}

func (s *PrincipalStore) DeleteByID(ctx context.Context, kind domain.Role, id string) error {
	coll, err := s.collection(kind)
	if err != nil {
		return err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPrincipalNotFound
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete principal: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPrincipalNotFound
	}
	return nil
}

func docToPrincipal(doc principalDoc) *domain.Principal {
	return &domain.Principal{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		Surname:      doc.Surname,
		Username:     doc.Username,
		PasswordHash: doc.PasswordHash,
		Role:         domain.Role(doc.Role),
		CreatedAt:    unixToTime(doc.CreatedAt),
		UpdatedAt:    unixToTime(doc.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
