package book

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Repository defines the contract for book data storage.
type Repository interface {
	Find(ctx context.Context, filter bson.D, opts FindOptions) ([]Book, error)
	GetByTitle(ctx context.Context, title string) (Book, error)
	FindListings(ctx context.Context, filter bson.D) ([]Listing, error)
	UpdatePrice(ctx context.Context, title string, price float64) (UpdateResult, error)
	DeleteByTitle(ctx context.Context, title string) (DeleteResult, error)
	AvgPriceByGenre(ctx context.Context) ([]GenrePrice, error)
	TopAuthors(ctx context.Context, n int) ([]AuthorCount, error)
	CountByDecade(ctx context.Context) ([]DecadeCount, error)
	CreateIndex(ctx context.Context, spec IndexSpec) (string, error)
	ExplainFind(ctx context.Context, filter bson.D) (ExecutionStats, error)
	InsertMany(ctx context.Context, books []Book) (int, error)
	Count(ctx context.Context) (int64, error)
}
