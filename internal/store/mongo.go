package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/pageza/recipebox/backend/internal/filter"
	"github.com/pageza/recipebox/backend/internal/model"
)

type recipeDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Instructions string             `bson:"instructions"`
	IsVegetarian bool               `bson:"isVegetarian"`
	Servings     int                `bson:"servings"`
	Ingredients  []string           `bson:"ingredients"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func newDocument(r *model.Recipe) recipeDocument {
	ingredients := []string(r.Ingredients)
	if ingredients == nil {
		ingredients = []string{}
	}
	return recipeDocument{
		Name:         r.Name,
		Instructions: r.Instructions,
		IsVegetarian: r.IsVegetarian,
		Servings:     r.Servings,
		Ingredients:  ingredients,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (d recipeDocument) toModel() model.Recipe {
	return model.Recipe{
		ID:           d.ID.Hex(),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
		Name:         d.Name,
		Instructions: d.Instructions,
		IsVegetarian: d.IsVegetarian,
		Servings:     d.Servings,
		Ingredients:  model.StringList(d.Ingredients),
	}
}

// nameCollation compares strings ignoring case and diacritics
var nameCollation = &options.Collation{Locale: "en", Strength: 2}

// MongoStore keeps recipes in a MongoDB collection
type MongoStore struct {
	coll *mongo.Collection
	opts Options
}

// NewMongoStore creates a store over the recipes collection of db
func NewMongoStore(db *mongo.Database, opts Options) *MongoStore {
	return &MongoStore{
		coll: db.Collection(CollectionName),
		opts: opts,
	}
}

// EnsureIndexes creates the name index. With unique set, the index rejects
// duplicate names and Save/Replace report ErrDuplicate.
func (s *MongoStore) EnsureIndexes(ctx context.Context, unique bool) error {
	idx := options.Index().SetName("name_idx")
	if unique {
		idx.SetName("name_unique_idx").SetUnique(true)
	}
	if s.opts.CaseInsensitiveNames {
		idx.SetCollation(nameCollation)
	}

	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: idx,
	})
	if err != nil {
		return fmt.Errorf("failed to create recipe name index: %w", err)
	}
	return nil
}

func (s *MongoStore) Save(ctx context.Context, r *model.Recipe) error {
	now := time.Now().UTC()
	r.CreatedAt, r.UpdatedAt = now, now

	res, err := s.coll.InsertOne(ctx, newDocument(r))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	r.ID = oid.Hex()
	return nil
}

func (s *MongoStore) Replace(ctx context.Context, r *model.Recipe) error {
	oid, err := primitive.ObjectIDFromHex(r.ID)
	if err != nil {
		return ErrNotFound
	}
	r.UpdatedAt = time.Now().UTC()

	doc := newDocument(r)
	doc.ID = oid
	res, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: oid}}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (*model.Recipe, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (s *MongoStore) FindByName(ctx context.Context, name string) (*model.Recipe, error) {
	opts := options.FindOne()
	if s.opts.CaseInsensitiveNames {
		opts.SetCollation(nameCollation)
	}
	return s.findOne(ctx, bson.D{{Key: "name", Value: name}}, opts)
}

func (s *MongoStore) findOne(ctx context.Context, query bson.D, opts ...*options.FindOneOptions) (*model.Recipe, error) {
	var doc recipeDocument
	if err := s.coll.FindOne(ctx, query, opts...).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	r := doc.toModel()
	return &r, nil
}

func (s *MongoStore) FindAll(ctx context.Context) ([]model.Recipe, error) {
	return s.find(ctx, bson.D{})
}

func (s *MongoStore) Find(ctx context.Context, clauses []filter.Clause) ([]model.Recipe, error) {
	query, err := FilterDocument(clauses)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, query)
}

func (s *MongoStore) find(ctx context.Context, query bson.D) ([]model.Recipe, error) {
	cur, err := s.coll.Find(ctx, query)
	if err != nil {
		return nil, err
	}

	var docs []recipeDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	recipes := make([]model.Recipe, len(docs))
	for i := range docs {
		recipes[i] = docs[i].toModel()
	}
	return recipes, nil
}

// Delete removes the recipe with id. Unknown or malformed ids are a no-op.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	_, err = s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	return err
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, readpref.Primary())
}

// FilterDocument translates clauses to a Mongo query document. Several
// clauses are wrapped in $and so two conditions on the same key both apply.
func FilterDocument(clauses []filter.Clause) (bson.D, error) {
	conds := make(bson.A, 0, len(clauses))
	for _, cl := range clauses {
		cond, err := clauseDocument(cl)
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)
	}

	switch len(conds) {
	case 0:
		return bson.D{}, nil
	case 1:
		return conds[0].(bson.D), nil
	default:
		return bson.D{{Key: "$and", Value: conds}}, nil
	}
}

func clauseDocument(cl filter.Clause) (bson.D, error) {
	key := string(cl.Field)
	switch cl.Op {
	case filter.Eq:
		return bson.D{{Key: key, Value: cl.Value}}, nil
	case filter.Contains:
		return bson.D{{Key: key, Value: bson.D{{Key: "$in", Value: bson.A{cl.Value}}}}}, nil
	case filter.NotContains:
		return bson.D{{Key: key, Value: bson.D{{Key: "$not", Value: bson.D{{Key: "$in", Value: bson.A{cl.Value}}}}}}}, nil
	case filter.Matches:
		pattern, ok := cl.Value.(string)
		if !ok {
			return nil, fmt.Errorf("mongo: %s pattern must be a string, got %T", cl.Field, cl.Value)
		}
		return bson.D{{Key: key, Value: primitive.Regex{Pattern: pattern}}}, nil
	default:
		return nil, fmt.Errorf("mongo: unsupported clause %s on %s", cl.Op, cl.Field)
	}
}
