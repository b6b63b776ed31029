package book

import (
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Field names of the books collection.
const (
	FieldID            = "_id"
	FieldTitle         = "title"
	FieldAuthor        = "author"
	FieldGenre         = "genre"
	FieldPublishedYear = "published_year"
	FieldPrice         = "price"
	FieldInStock       = "in_stock"
)

// All matches every document.
func All() bson.D {
	return bson.D{}
}

func ByGenre(genre string) bson.D {
	return bson.D{{Key: FieldGenre, Value: genre}}
}

func ByAuthor(author string) bson.D {
	return bson.D{{Key: FieldAuthor, Value: author}}
}

func ByTitle(title string) bson.D {
	return bson.D{{Key: FieldTitle, Value: title}}
}

// PublishedAfter matches books with published_year strictly greater than year.
func PublishedAfter(year int) bson.D {
	return bson.D{{Key: FieldPublishedYear, Value: bson.D{{Key: "$gt", Value: year}}}}
}

// InStockPublishedAfter matches books in stock and published strictly after year.
func InStockPublishedAfter(year int) bson.D {
	return bson.D{
		{Key: FieldInStock, Value: true},
		{Key: FieldPublishedYear, Value: bson.D{{Key: "$gt", Value: year}}},
	}
}

// SortByPrice orders by price, breaking ties on _id so repeated reads agree.
func SortByPrice(desc bool) bson.D {
	dir := 1
	if desc {
		dir = -1
	}
	return bson.D{{Key: FieldPrice, Value: dir}, {Key: FieldID, Value: 1}}
}

// PageSort is the order pages are cut from. Skip/limit without a total
// order may repeat or drop documents between pages.
func PageSort() bson.D {
	return bson.D{{Key: FieldTitle, Value: 1}, {Key: FieldID, Value: 1}}
}

// ListingProjection keeps title, author and price and drops _id.
func ListingProjection() bson.D {
	return bson.D{
		{Key: FieldTitle, Value: 1},
		{Key: FieldAuthor, Value: 1},
		{Key: FieldPrice, Value: 1},
		{Key: FieldID, Value: 0},
	}
}

// FindOptions narrows a Find call. Zero values mean no sort, skip or limit.
type FindOptions struct {
	Sort  bson.D
	Skip  int64
	Limit int64
}

// Page is a 1-based page of Size books.
type Page struct {
	Number int
	Size   int
}

func (p Page) Validate() error {
	if p.Size < 1 {
		return ErrInvalidPage
	}
	return nil
}

func (p Page) Skip() int64 {
	n := p.Number
	if n < 1 {
		n = 1
	}
	return int64((n - 1) * p.Size)
}

func (p Page) Limit() int64 {
	return int64(p.Size)
}

// FindOptions returns the skip/limit window of the page over PageSort.
func (p Page) FindOptions() FindOptions {
	return FindOptions{Sort: PageSort(), Skip: p.Skip(), Limit: p.Limit()}
}

// IndexKey is one key of an index, ascending unless Desc.
type IndexKey struct {
	Field string
	Desc  bool
}

// IndexSpec is an ordered list of index keys.
type IndexSpec []IndexKey

// Keys returns the index keys document.
func (s IndexSpec) Keys() bson.D {
	keys := make(bson.D, 0, len(s))
	for _, k := range s {
		dir := 1
		if k.Desc {
			dir = -1
		}
		keys = append(keys, bson.E{Key: k.Field, Value: dir})
	}
	return keys
}

// Name returns the name the server would generate, e.g. "author_1_published_year_-1".
func (s IndexSpec) Name() string {
	parts := make([]string, 0, len(s)*2)
	for _, k := range s {
		dir := "1"
		if k.Desc {
			dir = "-1"
		}
		parts = append(parts, k.Field, dir)
	}
	return strings.Join(parts, "_")
}

// TitleIndex is a single-field ascending index on title.
func TitleIndex() IndexSpec {
	return IndexSpec{{Field: FieldTitle}}
}

// AuthorYearIndex is the compound index author asc, published_year desc.
func AuthorYearIndex() IndexSpec {
	return IndexSpec{{Field: FieldAuthor}, {Field: FieldPublishedYear, Desc: true}}
}

// AvgPriceByGenrePipeline averages price per genre, highest average first.
func AvgPriceByGenrePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + FieldGenre},
			{Key: "avgPrice", Value: bson.D{{Key: "$avg", Value: "$" + FieldPrice}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "avgPrice", Value: -1}, {Key: "_id", Value: 1}}}},
	}
}

// TopAuthorsPipeline counts books per author and keeps the first n.
// Equal counts are ordered by author name.
func TopAuthorsPipeline(n int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + FieldAuthor},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: n}},
	}
}

// BooksByDecadePipeline counts books per decade of published_year.
// Groups are keyed and sorted by the numeric decade; labels are formatted
// by DecadeCount.Label.
func BooksByDecadePipeline() mongo.Pipeline {
	year := "$" + FieldPublishedYear
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: FieldPublishedYear, Value: bson.D{{Key: "$type", Value: "number"}}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$subtract", Value: bson.A{
				year,
				bson.D{{Key: "$mod", Value: bson.A{year, 10}}},
			}}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}

// Decade returns the decade a year falls in, matching the aggregation.
func Decade(year int) int {
	return year - year%10
}
