package book_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/platform/mongodb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) *book.MongoRepo {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	cfg := mongodb.Config{
		URI:        uri,
		Database:   "bookcatalog_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
		Collection: "books",
		Timeout:    2 * time.Second,
	}

	client, err := mongodb.Connect(context.Background(), cfg)
	if err != nil {
		t.Skipf("Skipping test: cannot connect to test database: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Database(cfg.Database).Drop(context.Background())
		_ = mongodb.Disconnect(client, cfg.Timeout)
	})
	return book.NewMongoRepo(mongodb.Collection(client, cfg), 5*time.Second)
}

func seedClassics(t *testing.T, repo *book.MongoRepo) {
	t.Helper()
	n, err := repo.InsertMany(context.Background(), book.Classics())
	require.NoError(t, err)
	require.Equal(t, len(book.Classics()), n)
}

func TestMongoRepo_Filters(t *testing.T) {
	repo := setupTestRepo(t)
	seedClassics(t, repo)
	ctx := context.Background()

	t.Run("genre filter is exact", func(t *testing.T) {
		got, err := repo.Find(ctx, book.ByGenre("Fiction"), book.FindOptions{})
		require.NoError(t, err)

		want := 0
		for _, b := range book.Classics() {
			if b.Genre == "Fiction" {
				want++
			}
		}
		assert.Len(t, got, want)
		for _, b := range got {
			assert.Equal(t, "Fiction", b.Genre)
			assert.False(t, b.ID.IsZero())
		}
	})

	t.Run("published after is strict", func(t *testing.T) {
		got, err := repo.Find(ctx, book.PublishedAfter(1951), book.FindOptions{})
		require.NoError(t, err)
		for _, b := range got {
			assert.Greater(t, b.PublishedYear, 1951)
		}
		titles := map[string]bool{}
		for _, b := range got {
			titles[b.Title] = true
		}
		assert.False(t, titles["The Catcher in the Rye"], "1951 is not after 1951")
		assert.True(t, titles["The Lord of the Rings"])
	})

	t.Run("projection drops other fields", func(t *testing.T) {
		got, err := repo.FindListings(ctx, book.All())
		require.NoError(t, err)
		assert.Len(t, got, len(book.Classics()))
		for _, l := range got {
			assert.NotEmpty(t, l.Title)
			assert.NotEmpty(t, l.Author)
		}
	})

	t.Run("price sort ascending", func(t *testing.T) {
		got, err := repo.Find(ctx, book.All(), book.FindOptions{Sort: book.SortByPrice(false)})
		require.NoError(t, err)
		for i := 1; i < len(got); i++ {
			assert.LessOrEqual(t, got[i-1].Price, got[i].Price)
		}
	})
}

func TestMongoRepo_Pagination(t *testing.T) {
	repo := setupTestRepo(t)
	seedClassics(t, repo)
	ctx := context.Background()

	page1, err := repo.Find(ctx, book.All(), book.Page{Number: 1, Size: 5}.FindOptions())
	require.NoError(t, err)
	page2, err := repo.Find(ctx, book.All(), book.Page{Number: 2, Size: 5}.FindOptions())
	require.NoError(t, err)
	first10, err := repo.Find(ctx, book.All(), book.FindOptions{Sort: book.PageSort(), Limit: 10})
	require.NoError(t, err)

	assert.Len(t, page1, 5)
	assert.Len(t, page2, 5)
	assert.Equal(t, first10, append(page1, page2...))
}

func TestMongoRepo_UpdateAndDelete(t *testing.T) {
	repo := setupTestRepo(t)
	seedClassics(t, repo)
	ctx := context.Background()

	res, err := repo.UpdatePrice(ctx, "1984", 12.99)
	require.NoError(t, err)
	assert.Equal(t, book.UpdateResult{Matched: 1, Modified: 1}, res)

	res, err = repo.UpdatePrice(ctx, "1984", 12.99)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Modified, "second update changes nothing")

	b, err := repo.GetByTitle(ctx, "1984")
	require.NoError(t, err)
	assert.Equal(t, 12.99, b.Price)

	del, err := repo.DeleteByTitle(ctx, "Moby Dick")
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.Deleted)

	del, err = repo.DeleteByTitle(ctx, "Moby Dick")
	require.NoError(t, err)
	assert.Equal(t, int64(0), del.Deleted)

	_, err = repo.GetByTitle(ctx, "Moby Dick")
	assert.ErrorIs(t, err, book.ErrNotFound)

	none, err := repo.UpdatePrice(ctx, "No Such Book", 1)
	require.NoError(t, err)
	assert.Equal(t, book.UpdateResult{}, none)
}

func TestMongoRepo_Aggregations(t *testing.T) {
	repo := setupTestRepo(t)
	seedClassics(t, repo)
	ctx := context.Background()

	t.Run("average price by genre", func(t *testing.T) {
		got, err := repo.AvgPriceByGenre(ctx)
		require.NoError(t, err)

		sums := map[string]float64{}
		counts := map[string]int{}
		for _, b := range book.Classics() {
			sums[b.Genre] += b.Price
			counts[b.Genre]++
		}
		assert.Len(t, got, len(sums))
		for i, row := range got {
			assert.InDelta(t, sums[row.Genre]/float64(counts[row.Genre]), row.AvgPrice, 1e-9)
			if i > 0 {
				assert.GreaterOrEqual(t, got[i-1].AvgPrice, row.AvgPrice)
			}
		}
	})

	t.Run("top author breaks ties by name", func(t *testing.T) {
		got, err := repo.TopAuthors(ctx, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		// George Orwell and J.R.R. Tolkien both have two books.
		assert.Equal(t, book.AuthorCount{Author: "George Orwell", Count: 2}, got[0])
	})

	t.Run("decades sort numerically", func(t *testing.T) {
		got, err := repo.CountByDecade(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, got)
		assert.Equal(t, "1810s", got[0].Label())
		total := 0
		for i, d := range got {
			total += d.Count
			if i > 0 {
				assert.Less(t, got[i-1].Decade, d.Decade)
			}
			if d.Decade == 1950 {
				assert.Equal(t, 2, d.Count)
			}
		}
		assert.Equal(t, len(book.Classics()), total)
	})
}

func TestMongoRepo_IndexesAndExplain(t *testing.T) {
	repo := setupTestRepo(t)
	seedClassics(t, repo)
	ctx := context.Background()

	before, err := repo.ExplainFind(ctx, book.ByTitle("1984"))
	require.NoError(t, err)
	assert.False(t, before.UsedIndex())

	name, err := repo.CreateIndex(ctx, book.TitleIndex())
	require.NoError(t, err)
	assert.Equal(t, "title_1", name)

	name, err = repo.CreateIndex(ctx, book.AuthorYearIndex())
	require.NoError(t, err)
	assert.Equal(t, "author_1_published_year_-1", name)

	after, err := repo.ExplainFind(ctx, book.ByTitle("1984"))
	require.NoError(t, err)
	assert.True(t, after.Success)
	assert.True(t, after.UsedIndex())
	assert.Equal(t, "title_1", after.IndexName)
	assert.Equal(t, int64(1), after.Returned)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(book.Classics())), count)
}
