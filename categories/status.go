package categories

import (
	"context"
	"errors"

	"trippens/db"
	"trippens/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrCategoryNotFound = errors.New("category not found")

// StatusStore is the slice of the document store the propagation step
// needs: one category update and one bulk mirror update.
type StatusStore interface {
	UpdateCategoryActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.Category, error)
	PropagateToTours(ctx context.Context, categoryID primitive.ObjectID, active bool) (int64, error)
}

// SetCategoryActive flips the category flag, then copies it onto the
// categoryStatus mirror of every tour in the category. The two writes
// are sequential and untransacted; a failure between them leaves the
// mirrors stale until the next toggle.
func SetCategoryActive(ctx context.Context, store StatusStore, id primitive.ObjectID, active bool) (*models.Category, int64, error) {
	category, err := store.UpdateCategoryActive(ctx, id, active)
	if err != nil {
		return nil, 0, err
	}

	updated, err := store.PropagateToTours(ctx, id, active)
	if err != nil {
		return category, 0, err
	}
	return category, updated, nil
}

type mongoStatusStore struct{}

func (mongoStatusStore) UpdateCategoryActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.Category, error) {
	var category models.Category
	err := db.CategoriesCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"activeStatus": active}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (mongoStatusStore) PropagateToTours(ctx context.Context, categoryID primitive.ObjectID, active bool) (int64, error) {
	res, err := db.ToursCollection.UpdateMany(
		ctx,
		bson.M{"category": categoryID},
		bson.M{"$set": bson.M{"categoryStatus": active}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
