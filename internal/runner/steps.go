package runner

import (
	"context"
	"fmt"

	"bookcatalog/internal/book"
)

// Catalog is the set of catalog operations the batch runs. *book.Service implements it.
type Catalog interface {
	ByGenre(ctx context.Context, genre string) ([]book.Book, error)
	PublishedAfter(ctx context.Context, year int) ([]book.Book, error)
	ByAuthor(ctx context.Context, author string) ([]book.Book, error)
	InStockPublishedAfter(ctx context.Context, year int) ([]book.Book, error)
	Listings(ctx context.Context) ([]book.Listing, error)
	SortedByPrice(ctx context.Context, desc bool) ([]book.Book, error)
	Page(ctx context.Context, p book.Page) ([]book.Book, error)
	Reprice(ctx context.Context, title string, price float64) (book.UpdateResult, error)
	Remove(ctx context.Context, title string) (book.DeleteResult, error)
	AvgPriceByGenre(ctx context.Context) ([]book.GenrePrice, error)
	TopAuthors(ctx context.Context, n int) ([]book.AuthorCount, error)
	CountByDecade(ctx context.Context) ([]book.DecadeCount, error)
	CreateIndex(ctx context.Context, spec book.IndexSpec) (book.Index, error)
	ExplainByTitle(ctx context.Context, title string) (book.ExecutionStats, error)
}

// Step is one operation of the batch.
type Step struct {
	Name  string
	Title string
	Do    func(ctx context.Context, c Catalog) (any, error)
}

// Batch holds the arguments of the fixed batch.
type Batch struct {
	Genre        string
	After        int
	Author       string
	RepriceTitle string
	NewPrice     float64
	RemoveTitle  string
	InStockAfter int
	PageSize     int
	TopAuthors   int
	ExplainTitle string
}

func DefaultBatch() Batch {
	return Batch{
		Genre:        "Fiction",
		After:        1950,
		Author:       "George Orwell",
		RepriceTitle: "1984",
		NewPrice:     12.99,
		RemoveTitle:  "Moby Dick",
		InStockAfter: 2010,
		PageSize:     5,
		TopAuthors:   1,
		ExplainTitle: "1984",
	}
}

// Steps returns the batch in execution order: reads, mutations, the remaining
// reads, aggregations, indexes and finally the explain.
func Steps(b Batch) []Step {
	return []Step{
		{
			Name:  "genre",
			Title: fmt.Sprintf("Books in %s genre", b.Genre),
			Do: func(ctx context.Context, c Catalog) (any, error) {
				return c.ByGenre(ctx, b.Genre)
			},
		},
		{
			Name:  "published-after",
			Title: fmt.Sprintf("Books published after %d", b.After),
			Do: func(ctx context.Context, c Catalog) (any, error) {
				return c.PublishedAfter(ctx, b.After)
			},
		},
		{
			Name:  "author",
			Title: fmt.Sprintf("Books by %s", b.Author),
			Do: func(ctx context.Context, c Catalog) (any, error) {
				return c.ByAuthor(ctx, b.Author)
			},
		},
		{
			Name:  "reprice",
			Title: fmt.Sprintf("price of '%s'", b.RepriceTitle),
			Do: func(ctx context.Context, c Catalog) (any, error) {
				return c.Reprice(ctx, b.RepriceTitle, b.NewPrice)
			},
		},
		{
			Name:  "remove",
			Title: fmt.Sprintf("'%s'", b.RemoveTitle),
			Do: func(ctx context.Context, c Catalog) (any, error) {
				return c.Remove(ctx, b.RemoveTitle)
			},
		},
		{
			Name:  "in-stock-after",
			Title: fmt.Sprintf("Books in stock published after %d", b.InStockAfter),
			Do: func(ctx context.Context, c Catalog) (any, error) {
				return c.InStockPublishedAfter(ctx, b.InStockAfter)
			},
		},
		{
			Name:  "projection",
			Title: "Books with projection (title, author, price)",
			Do: func(ctx context.Context, c Catalog) (any, error) {
				return c.Listings(ctx)
			},
		},
		{
			Name:  "price-asc",
			Title: "Books sorted by price (ascending)",
			Do: func(ctx context.Context, c Catalog) (any, error) {
				return c.SortedByPrice(ctx, false)
			},
		},
		{
			Name:  "price-desc",
			Title: "Books sorted by price (descending)",
			Do: func(ctx context.Context, c Catalog) (any, error) {
				return c.SortedByPrice(ctx, true)
			},
		},
		{
			Name:  "page-1",
			Title: fmt.Sprintf("Page 1 (%d books)", b.PageSize),
			Do: func(ctx context.Context, c Catalog) (any, error) {
				return c.Page(ctx, book.Page{Number: 1, Size: b.PageSize})
			},
		},
		{
			Name:  "page-2",
			Title: fmt.Sprintf("Page 2 (next %d books)", b.PageSize),
			Do: func(ctx context.Context, c Catalog) (any, error) {
				return c.Page(ctx, book.Page{Number: 2, Size: b.PageSize})
			},
		},
		{
			Name:  "avg-price-by-genre",
			Title: "Average price by genre",
			Do: func(ctx context.Context, c Catalog) (any, error) {
				return c.AvgPriceByGenre(ctx)
			},
		},
		{
			Name:  "top-author",
			Title: "Author with most books",
			Do: func(ctx context.Context, c Catalog) (any, error) {
				return c.TopAuthors(ctx, b.TopAuthors)
			},
		},
		{
			Name:  "by-decade",
			Title: "Books grouped by publication decade",
			Do: func(ctx context.Context, c Catalog) (any, error) {
				return c.CountByDecade(ctx)
			},
		},
		{
			Name:  "title-index",
			Title: "index on 'title'",
			Do: func(ctx context.Context, c Catalog) (any, error) {
				return c.CreateIndex(ctx, book.TitleIndex())
			},
		},
		{
			Name:  "author-year-index",
			Title: "compound index on 'author' and 'published_year'",
			Do: func(ctx context.Context, c Catalog) (any, error) {
				return c.CreateIndex(ctx, book.AuthorYearIndex())
			},
		},
		{
			Name:  "explain-title",
			Title: fmt.Sprintf("Explain query on title '%s'", b.ExplainTitle),
			Do: func(ctx context.Context, c Catalog) (any, error) {
				return c.ExplainByTitle(ctx, b.ExplainTitle)
			},
		},
	}
}
