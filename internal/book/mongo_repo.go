package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MongoRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMongoRepo(coll *mongo.Collection, timeout time.Duration) *MongoRepo {
	return &MongoRepo{coll: coll, timeout: timeout}
}

func (r *MongoRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *MongoRepo) Find(ctx context.Context, filter bson.D, opts FindOptions) ([]Book, error) {
	findOpts := options.Find()
	if len(opts.Sort) > 0 {
		findOpts.SetSort(opts.Sort)
	}
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	cur, err := r.coll.Find(timeoutCtx, filter, findOpts)
	if err != nil {
		return nil, err
	}

	out := []Book{}
	if err := cur.All(timeoutCtx, &out); err != nil {
		return nil, err
	}
	for _, b := range out {
		if err := b.Validate(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *MongoRepo) FindListings(ctx context.Context, filter bson.D) ([]Listing, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	cur, err := r.coll.Find(timeoutCtx, filter, options.Find().SetProjection(ListingProjection()))
	if err != nil {
		return nil, err
	}

	out := []Listing{}
	if err := cur.All(timeoutCtx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepo) UpdatePrice(ctx context.Context, title string, price float64) (UpdateResult, error) {
	update := bson.D{{Key: "$set", Value: bson.D{{Key: FieldPrice, Value: price}}}}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.coll.UpdateOne(timeoutCtx, ByTitle(title), update)
	if err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

func (r *MongoRepo) DeleteByTitle(ctx context.Context, title string) (DeleteResult, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.coll.DeleteOne(timeoutCtx, ByTitle(title))
	if err != nil {
		return DeleteResult{}, err
	}
	return DeleteResult{Deleted: res.DeletedCount}, nil
}

func (r *MongoRepo) AvgPriceByGenre(ctx context.Context) ([]GenrePrice, error) {
	out := []GenrePrice{}
	if err := r.aggregate(ctx, AvgPriceByGenrePipeline(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepo) TopAuthors(ctx context.Context, n int) ([]AuthorCount, error) {
	if n < 1 {
		return nil, fmt.Errorf("top authors: limit must be positive, got %d", n)
	}
	out := []AuthorCount{}
	if err := r.aggregate(ctx, TopAuthorsPipeline(n), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepo) CountByDecade(ctx context.Context) ([]DecadeCount, error) {
	out := []DecadeCount{}
	if err := r.aggregate(ctx, BooksByDecadePipeline(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepo) aggregate(ctx context.Context, pipeline mongo.Pipeline, results any) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	cur, err := r.coll.Aggregate(timeoutCtx, pipeline)
	if err != nil {
		return err
	}
	return cur.All(timeoutCtx, results)
}

func (r *MongoRepo) CreateIndex(ctx context.Context, spec IndexSpec) (string, error) {
	if len(spec) == 0 {
		return "", errors.New("create index: no keys")
	}
	model := mongo.IndexModel{
		Keys:    spec.Keys(),
		Options: options.Index().SetName(spec.Name()),
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.coll.Indexes().CreateOne(timeoutCtx, model)
}

type explainStage struct {
	Stage      string        `bson:"stage"`
	IndexName  string        `bson:"indexName"`
	InputStage *explainStage `bson:"inputStage"`
}

type explainReply struct {
	ExecutionStats struct {
		ExecutionSuccess    bool         `bson:"executionSuccess"`
		NReturned           int64        `bson:"nReturned"`
		ExecutionTimeMillis int64        `bson:"executionTimeMillis"`
		TotalKeysExamined   int64        `bson:"totalKeysExamined"`
		TotalDocsExamined   int64        `bson:"totalDocsExamined"`
		ExecutionStages     explainStage `bson:"executionStages"`
	} `bson:"executionStats"`
}

func (r *MongoRepo) ExplainFind(ctx context.Context, filter bson.D) (ExecutionStats, error) {
	cmd := bson.D{
		{Key: "explain", Value: bson.D{
			{Key: "find", Value: r.coll.Name()},
			{Key: "filter", Value: filter},
		}},
		{Key: "verbosity", Value: "executionStats"},
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var reply explainReply
	if err := r.coll.Database().RunCommand(timeoutCtx, cmd).Decode(&reply); err != nil {
		return ExecutionStats{}, err
	}

	es := reply.ExecutionStats
	stats := ExecutionStats{
		Success:      es.ExecutionSuccess,
		Returned:     es.NReturned,
		TimeMillis:   es.ExecutionTimeMillis,
		KeysExamined: es.TotalKeysExamined,
		DocsExamined: es.TotalDocsExamined,
	}
	for st := &es.ExecutionStages; st != nil; st = st.InputStage {
		if st.Stage != "" {
			stats.Stages = append(stats.Stages, st.Stage)
		}
		if st.IndexName != "" && stats.IndexName == "" {
			stats.IndexName = st.IndexName
		}
	}
	return stats, nil
}

func (r *MongoRepo) InsertMany(ctx context.Context, books []Book) (int, error) {
	if len(books) == 0 {
		return 0, nil
	}
	for _, b := range books {
		if err := b.Validate(); err != nil {
			return 0, err
		}
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.coll.InsertMany(timeoutCtx, books)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

func (r *MongoRepo) Count(ctx context.Context) (int64, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.coll.CountDocuments(timeoutCtx, All())
}

// GetByTitle returns the first book with the given title.
func (r *MongoRepo) GetByTitle(ctx context.Context, title string) (Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var b Book
	err := r.coll.FindOne(timeoutCtx, ByTitle(title)).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	if err := b.Validate(); err != nil {
		return Book{}, err
	}
	return b, nil
}
