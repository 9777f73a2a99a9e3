package categories

import (
	"context"
	"errors"
	"testing"

	"trippens/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeStatusStore struct {
	categories map[primitive.ObjectID]*models.Category
	tours      []*models.Tour

	propagateErr error
}

func newFakeStatusStore() *fakeStatusStore {
	return &fakeStatusStore{categories: make(map[primitive.ObjectID]*models.Category)}
}

func (s *fakeStatusStore) addCategory(name string, active bool) primitive.ObjectID {
	id := primitive.NewObjectID()
	s.categories[id] = &models.Category{ID: id, Name: name, ActiveStatus: active}
	return id
}

func (s *fakeStatusStore) addTour(categoryID primitive.ObjectID, mirror bool) *models.Tour {
	tour := &models.Tour{ID: primitive.NewObjectID(), CategoryID: categoryID, CategoryStatus: mirror}
	s.tours = append(s.tours, tour)
	return tour
}

func (s *fakeStatusStore) UpdateCategoryActive(_ context.Context, id primitive.ObjectID, active bool) (*models.Category, error) {
	category, ok := s.categories[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	category.ActiveStatus = active
	copied := *category
	return &copied, nil
}

func (s *fakeStatusStore) PropagateToTours(_ context.Context, categoryID primitive.ObjectID, active bool) (int64, error) {
	if s.propagateErr != nil {
		return 0, s.propagateErr
	}
	var n int64
	for _, tour := range s.tours {
		if tour.CategoryID == categoryID && tour.CategoryStatus != active {
			tour.CategoryStatus = active
			n++
		}
	}
	return n, nil
}

func TestSetCategoryActivePropagates(t *testing.T) {
	store := newFakeStatusStore()
	domestic := store.addCategory("Domestic", true)
	other := store.addCategory("International", true)
	store.addTour(domestic, true)
	store.addTour(domestic, true)
	untouched := store.addTour(other, true)

	category, updated, err := SetCategoryActive(context.Background(), store, domestic, false)
	if err != nil {
		t.Fatalf("SetCategoryActive: %v", err)
	}
	if category.ActiveStatus {
		t.Fatal("category flag not flipped")
	}
	if updated != 2 {
		t.Fatalf("updated = %d, want 2", updated)
	}
	for _, tour := range store.tours {
		if tour.CategoryID == domestic && tour.CategoryStatus {
			t.Fatal("tour mirror not propagated")
		}
	}
	if !untouched.CategoryStatus {
		t.Fatal("tour in another category must keep its mirror")
	}

	// Re-enable reverts the mirrors.
	if _, _, err := SetCategoryActive(context.Background(), store, domestic, true); err != nil {
		t.Fatalf("re-enable: %v", err)
	}
	for _, tour := range store.tours {
		if !tour.CategoryStatus {
			t.Fatal("mirror not restored")
		}
	}
}

func TestSetCategoryActiveNotFound(t *testing.T) {
	store := newFakeStatusStore()
	store.addTour(primitive.NewObjectID(), true)

	_, _, err := SetCategoryActive(context.Background(), store, primitive.NewObjectID(), false)
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("error = %v, want ErrCategoryNotFound", err)
	}
	for _, tour := range store.tours {
		if !tour.CategoryStatus {
			t.Fatal("no tour write may happen when the category is missing")
		}
	}
}

// A failed bulk write leaves the category flag already flipped; the
// mirrors stay stale until the next toggle.
func TestSetCategoryActivePartialFailure(t *testing.T) {
	store := newFakeStatusStore()
	domestic := store.addCategory("Domestic", true)
	tour := store.addTour(domestic, true)
	store.propagateErr = errors.New("bulk write failed")

	_, _, err := SetCategoryActive(context.Background(), store, domestic, false)
	if err == nil {
		t.Fatal("expected propagation error")
	}
	if store.categories[domestic].ActiveStatus {
		t.Fatal("category write happens before the bulk write")
	}
	if !tour.CategoryStatus {
		t.Fatal("mirror must be untouched when the bulk write fails")
	}
}
