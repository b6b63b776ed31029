package book

import (
	"context"
	"fmt"
)

// Service provides the catalog queries, mutations, aggregations and index
// management on top of a Repository.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ByGenre returns every book of the genre.
func (s *Service) ByGenre(ctx context.Context, genre string) ([]Book, error) {
	return s.repo.Find(ctx, ByGenre(genre), FindOptions{})
}

// PublishedAfter returns books published strictly after year.
func (s *Service) PublishedAfter(ctx context.Context, year int) ([]Book, error) {
	return s.repo.Find(ctx, PublishedAfter(year), FindOptions{})
}

// ByAuthor returns every book by the author.
func (s *Service) ByAuthor(ctx context.Context, author string) ([]Book, error) {
	return s.repo.Find(ctx, ByAuthor(author), FindOptions{})
}

// InStockPublishedAfter returns books in stock and published strictly after year.
func (s *Service) InStockPublishedAfter(ctx context.Context, year int) ([]Book, error) {
	return s.repo.Find(ctx, InStockPublishedAfter(year), FindOptions{})
}

// Listings returns title, author and price of every book.
func (s *Service) Listings(ctx context.Context) ([]Listing, error) {
	return s.repo.FindListings(ctx, All())
}

// SortedByPrice returns every book ordered by price.
func (s *Service) SortedByPrice(ctx context.Context, desc bool) ([]Book, error) {
	return s.repo.Find(ctx, All(), FindOptions{Sort: SortByPrice(desc)})
}

// Page returns one page of the catalog in PageSort order.
func (s *Service) Page(ctx context.Context, p Page) ([]Book, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: size %d", err, p.Size)
	}
	return s.repo.Find(ctx, All(), p.FindOptions())
}

// GetByTitle returns the first book with the title.
func (s *Service) GetByTitle(ctx context.Context, title string) (Book, error) {
	return s.repo.GetByTitle(ctx, title)
}

// Reprice sets the price of the first book with the title. No match is not an error.
func (s *Service) Reprice(ctx context.Context, title string, price float64) (UpdateResult, error) {
	if price < 0 {
		return UpdateResult{}, fmt.Errorf("reprice %q: negative price %.2f", title, price)
	}
	return s.repo.UpdatePrice(ctx, title, price)
}

// Remove deletes the first book with the title. No match is not an error.
func (s *Service) Remove(ctx context.Context, title string) (DeleteResult, error) {
	return s.repo.DeleteByTitle(ctx, title)
}

func (s *Service) AvgPriceByGenre(ctx context.Context) ([]GenrePrice, error) {
	return s.repo.AvgPriceByGenre(ctx)
}

func (s *Service) TopAuthors(ctx context.Context, n int) ([]AuthorCount, error) {
	return s.repo.TopAuthors(ctx, n)
}

func (s *Service) CountByDecade(ctx context.Context) ([]DecadeCount, error) {
	return s.repo.CountByDecade(ctx)
}

// CreateIndex creates the index if it does not exist yet.
func (s *Service) CreateIndex(ctx context.Context, spec IndexSpec) (Index, error) {
	name, err := s.repo.CreateIndex(ctx, spec)
	if err != nil {
		return Index{}, fmt.Errorf("create index %s: %w", spec.Name(), err)
	}
	return Index{Name: name, Spec: spec}, nil
}

// ExplainByTitle returns execution statistics of a title lookup.
func (s *Service) ExplainByTitle(ctx context.Context, title string) (ExecutionStats, error) {
	return s.repo.ExplainFind(ctx, ByTitle(title))
}

// Seed inserts books and returns how many were written.
func (s *Service) Seed(ctx context.Context, books []Book) (int, error) {
	n, err := s.repo.InsertMany(ctx, books)
	if err != nil {
		return n, fmt.Errorf("seed books: %w", err)
	}
	return n, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
