package repository

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"framer-go/core/geometry"
	"framer-go/domain/dataset"
	"framer-go/domain/region"
)

// DefaultDatasetCollection is the collection holding image entries.
const DefaultDatasetCollection = "images"

// imageDocument is the MongoDB document structure for one image entry.
type imageDocument struct {
	ID      string           `bson:"_id"`
	Dataset string           `bson:"dataset"`
	Image   string           `bson:"image"`
	Order   int              `bson:"order"`
	Regions []regionDocument `bson:"regions"`
}

// regionDocument is the MongoDB document structure for a normalized region.
type regionDocument struct {
	X      float64 `bson:"x"`
	Y      float64 `bson:"y"`
	Width  float64 `bson:"width"`
	Height float64 `bson:"height"`
	Label  string  `bson:"label"`
}

// MongoDatasetRepository implements dataset.Repository using MongoDB.
// Each image entry is a document; several named datasets can share a collection.
type MongoDatasetRepository struct {
	db         *MongoDB
	collection *mongo.Collection
	dataset    string
	logger     *slog.Logger
}

// NewMongoDatasetRepository creates a repository for the named dataset.
// An empty collection name selects DefaultDatasetCollection.
func NewMongoDatasetRepository(db *MongoDB, collection, name string, logger *slog.Logger) *MongoDatasetRepository {
	if logger == nil {
		logger = slog.Default()
	}
	if collection == "" {
		collection = DefaultDatasetCollection
	}
	return &MongoDatasetRepository{
		db:         db,
		collection: db.Collection(collection),
		dataset:    name,
		logger:     logger.With("component", "repository", "dataset", name),
	}
}

// datasetIndexes returns the indexes Load and Save query through: entries are
// read back per dataset in visitation order, and an image appears once per dataset.
func datasetIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "dataset", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index().SetName("dataset_order"),
		},
		{
			Keys:    bson.D{{Key: "dataset", Value: 1}, {Key: "image", Value: 1}},
			Options: options.Index().SetName("dataset_image").SetUnique(true),
		},
	}
}

// EnsureIndexes creates the collection indexes the dataset queries use.
func (r *MongoDatasetRepository) EnsureIndexes(ctx context.Context) error {
	return r.db.EnsureIndexes(ctx, r.collection.Name(), datasetIndexes())
}

// Location describes the collection and dataset name.
func (r *MongoDatasetRepository) Location() string {
	return fmt.Sprintf("mongodb:%s/%s", r.collection.Name(), r.dataset)
}

// Load retrieves all image entries of the dataset in visitation order.
// A dataset without documents loads as an empty record, which is what an
// empty save leaves behind.
func (r *MongoDatasetRepository) Load(ctx context.Context) (*dataset.Record, error) {
	filter := bson.M{"dataset": r.dataset}
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find images: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []imageDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode images: %w", err)
	}

	return documentsToRecord(docs), nil
}

// Save replaces the dataset's documents with the record's entries.
func (r *MongoDatasetRepository) Save(ctx context.Context, rec *dataset.Record) error {
	models := saveModels(r.dataset, rec)

	result, err := r.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
	if err != nil {
		return fmt.Errorf("failed to save dataset: %w", err)
	}

	r.logger.Info("Dataset saved",
		"images", rec.Len(),
		"upserted", result.UpsertedCount,
		"modified", result.ModifiedCount,
		"removed", result.DeletedCount,
	)
	return nil
}

// saveModels builds the ordered bulk write for rec: documents of images no
// longer in the record are deleted first, then every entry is upserted by ID.
// An empty record deletes the whole dataset.
func saveModels(name string, rec *dataset.Record) []mongo.WriteModel {
	docs := recordToDocuments(name, rec)

	models := make([]mongo.WriteModel, 0, len(docs)+1)
	models = append(models, mongo.NewDeleteManyModel().
		SetFilter(bson.M{"dataset": name, "image": bson.M{"$nin": rec.Images()}}))
	for _, doc := range docs {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": doc.ID}).
			SetReplacement(doc).
			SetUpsert(true))
	}
	return models
}

// documentID keys an image entry uniquely across datasets.
func documentID(name, image string) string {
	return name + "/" + image
}

// recordToDocuments converts a domain Record to MongoDB documents.
func recordToDocuments(name string, rec *dataset.Record) []imageDocument {
	images := rec.Images()
	docs := make([]imageDocument, 0, len(images))
	for i, image := range images {
		regions, _ := rec.Get(image)
		regionDocs := make([]regionDocument, len(regions))
		for j, n := range regions {
			regionDocs[j] = regionDocument{
				X:      n.X,
				Y:      n.Y,
				Width:  n.Width,
				Height: n.Height,
				Label:  n.Label,
			}
		}
		docs = append(docs, imageDocument{
			ID:      documentID(name, image),
			Dataset: name,
			Image:   image,
			Order:   i,
			Regions: regionDocs,
		})
	}
	return docs
}

// documentsToRecord converts MongoDB documents, already sorted, to a domain Record.
func documentsToRecord(docs []imageDocument) *dataset.Record {
	rec := dataset.NewRecord()
	for _, doc := range docs {
		regions := make([]region.Normalized, len(doc.Regions))
		for i, rd := range doc.Regions {
			regions[i] = region.Normalized{
				UnitRect: geometry.UnitRect{X: rd.X, Y: rd.Y, Width: rd.Width, Height: rd.Height},
				Label:    rd.Label,
			}
		}
		rec.Put(doc.Image, regions)
	}
	return rec
}
