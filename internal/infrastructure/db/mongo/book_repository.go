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

const booksCollection = "books"

type BookRepository struct {
	coll *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{coll: db.Collection(booksCollection)}
}

type bookDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Genre       string             `bson:"genre,omitempty"`
	Description string             `bson:"description,omitempty"`
	AuthorID    string             `bson:"author_id"`
	CreatedAt   int64              `bson:"created_at"`
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	doc := bookDoc{
		Title:       book.Title,
		Genre:       book.Genre,
		Description: book.Description,
		AuthorID:    book.AuthorID,
		CreatedAt:   book.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}

	created := *book
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *BookRepository) FindByID(ctx context.Context, id string) (*domain.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookNotFound
	}

	var doc bookDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return docToBook(doc), nil
}

func (r *BookRepository) FindByAuthor(ctx context.Context, authorID string) ([]domain.Book, error) {
	return r.find(ctx, bson.M{"author_id": authorID})
}

func (r *BookRepository) FindAll(ctx context.Context) ([]domain.Book, error) {
	return r.find(ctx, bson.M{})
}

func (r *BookRepository) find(ctx context.Context, filter bson.M) ([]domain.Book, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	defer cursor.Close(ctx)

	var books []domain.Book
	for cursor.Next(ctx) {
		var doc bookDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode book: %w", err)
		}
		books = append(books, *docToBook(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

func (r *BookRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBookNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

func docToBook(doc bookDoc) *domain.Book {
	return &domain.Book{
		ID:          doc.ID.Hex(),
		Title:       doc.Title,
		Genre:       doc.Genre,
		Description: doc.Description,
		AuthorID:    doc.AuthorID,
		CreatedAt:   time.Unix(doc.CreatedAt, 0).UTC(),
	}
}
