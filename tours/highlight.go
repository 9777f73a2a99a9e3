package tours

import (
	"context"
	"errors"
	"fmt"

	"trippens/db"
	"trippens/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HighlightCap is the most tours one category may promote at a time.
const HighlightCap = 3

var ErrTourNotFound = errors.New("tour not found")

// CapError reports a full highlight roster so the back office can show
// which tours occupy the slots.
type CapError struct {
	Highlighted []models.TourRef
}

func (e *CapError) Error() string {
	return fmt.Sprintf("category already has %d highlighted tours", len(e.Highlighted))
}

// HighlightStore is the slice of the document store the cap check needs.
type HighlightStore interface {
	FindTour(ctx context.Context, id primitive.ObjectID) (*models.Tour, error)
	HighlightedInCategory(ctx context.Context, categoryID, exclude primitive.ObjectID) ([]models.TourRef, error)
	SetHighlight(ctx context.Context, id primitive.ObjectID, on bool) error
}

// SetTourHighlight clears a highlight unconditionally, or sets one if
// fewer than HighlightCap other tours in the category are highlighted.
// On a full roster it returns a *CapError and writes nothing.
//
// The count and the write are two separate store calls; concurrent
// enables can both pass the check and briefly overfill a category.
// That window is inherited behavior, kept rather than locked away.
func SetTourHighlight(ctx context.Context, store HighlightStore, id primitive.ObjectID, highlight bool) error {
	if !highlight {
		return store.SetHighlight(ctx, id, false)
	}

	tour, err := store.FindTour(ctx, id)
	if err != nil {
		return err
	}

	highlighted, err := store.HighlightedInCategory(ctx, tour.CategoryID, id)
	if err != nil {
		return err
	}
	if len(highlighted) >= HighlightCap {
		return &CapError{Highlighted: highlighted}
	}

	return store.SetHighlight(ctx, id, true)
}

type mongoHighlightStore struct{}

func (mongoHighlightStore) FindTour(ctx context.Context, id primitive.ObjectID) (*models.Tour, error) {
	var tour models.Tour
	err := db.ToursCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&tour)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrTourNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tour, nil
}

func (mongoHighlightStore) HighlightedInCategory(ctx context.Context, categoryID, exclude primitive.ObjectID) ([]models.TourRef, error) {
	cursor, err := db.ToursCollection.Find(ctx, bson.M{
		"_id":             bson.M{"$ne": exclude},
		"category":        categoryID,
		"highlightStatus": true,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var refs []models.TourRef
	if err := cursor.All(ctx, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

func (mongoHighlightStore) SetHighlight(ctx context.Context, id primitive.ObjectID, on bool) error {
	res, err := db.ToursCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"highlightStatus": on}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrTourNotFound
	}
	return nil
}
