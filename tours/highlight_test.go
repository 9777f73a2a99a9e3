package tours

import (
	"context"
	"errors"
	"testing"

	"trippens/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeHighlightStore keeps tours in a map so the cap logic can be
// exercised without a database.
type fakeHighlightStore struct {
	tours map[primitive.ObjectID]*models.Tour
}

func newFakeHighlightStore() *fakeHighlightStore {
	return &fakeHighlightStore{tours: make(map[primitive.ObjectID]*models.Tour)}
}

func (s *fakeHighlightStore) addTour(name string, categoryID primitive.ObjectID, highlighted bool) primitive.ObjectID {
	id := primitive.NewObjectID()
	s.tours[id] = &models.Tour{
		ID:              id,
		CategoryID:      categoryID,
		TourName:        name,
		HighlightStatus: highlighted,
	}
	return id
}

func (s *fakeHighlightStore) FindTour(_ context.Context, id primitive.ObjectID) (*models.Tour, error) {
	tour, ok := s.tours[id]
	if !ok {
		return nil, ErrTourNotFound
	}
	copied := *tour
	return &copied, nil
}

func (s *fakeHighlightStore) HighlightedInCategory(_ context.Context, categoryID, exclude primitive.ObjectID) ([]models.TourRef, error) {
	var refs []models.TourRef
	for id, tour := range s.tours {
		if id == exclude || tour.CategoryID != categoryID || !tour.HighlightStatus {
			continue
		}
		refs = append(refs, models.TourRef{ID: id, TourName: tour.TourName})
	}
	return refs, nil
}

func (s *fakeHighlightStore) SetHighlight(_ context.Context, id primitive.ObjectID, on bool) error {
	tour, ok := s.tours[id]
	if !ok {
		return ErrTourNotFound
	}
	tour.HighlightStatus = on
	return nil
}

func (s *fakeHighlightStore) highlightedCount(categoryID primitive.ObjectID) int {
	n := 0
	for _, tour := range s.tours {
		if tour.CategoryID == categoryID && tour.HighlightStatus {
			n++
		}
	}
	return n
}

func TestSetTourHighlightUnderCap(t *testing.T) {
	store := newFakeHighlightStore()
	category := primitive.NewObjectID()
	store.addTour("T1", category, true)
	store.addTour("T2", category, true)
	target := store.addTour("T3", category, false)

	if err := SetTourHighlight(context.Background(), store, target, true); err != nil {
		t.Fatalf("SetTourHighlight: %v", err)
	}
	if !store.tours[target].HighlightStatus {
		t.Fatal("tour was not highlighted")
	}
	if got := store.highlightedCount(category); got != 3 {
		t.Fatalf("highlighted count = %d, want 3", got)
	}
}

func TestSetTourHighlightCapRejection(t *testing.T) {
	store := newFakeHighlightStore()
	category := primitive.NewObjectID()
	t1 := store.addTour("T1", category, true)
	t2 := store.addTour("T2", category, true)
	t3 := store.addTour("T3", category, true)
	t4 := store.addTour("T4", category, false)

	err := SetTourHighlight(context.Background(), store, t4, true)

	var capErr *CapError
	if !errors.As(err, &capErr) {
		t.Fatalf("error = %v, want *CapError", err)
	}
	if len(capErr.Highlighted) != 3 {
		t.Fatalf("conflict payload has %d tours, want 3", len(capErr.Highlighted))
	}
	want := map[primitive.ObjectID]string{t1: "T1", t2: "T2", t3: "T3"}
	for _, ref := range capErr.Highlighted {
		if want[ref.ID] != ref.TourName {
			t.Errorf("unexpected entry %s/%s in conflict payload", ref.ID.Hex(), ref.TourName)
		}
		delete(want, ref.ID)
	}
	if len(want) != 0 {
		t.Errorf("conflict payload missing tours: %v", want)
	}
	if store.tours[t4].HighlightStatus {
		t.Fatal("rejected tour must stay unhighlighted")
	}
}

func TestSetTourHighlightOffIsUnconditional(t *testing.T) {
	store := newFakeHighlightStore()
	category := primitive.NewObjectID()
	t1 := store.addTour("T1", category, true)
	store.addTour("T2", category, true)
	store.addTour("T3", category, true)

	if err := SetTourHighlight(context.Background(), store, t1, false); err != nil {
		t.Fatalf("unhighlight at full cap: %v", err)
	}
	if store.tours[t1].HighlightStatus {
		t.Fatal("tour still highlighted")
	}
}

func TestSetTourHighlightOtherCategoryUnaffected(t *testing.T) {
	store := newFakeHighlightStore()
	domestic := primitive.NewObjectID()
	international := primitive.NewObjectID()
	store.addTour("D1", domestic, true)
	store.addTour("D2", domestic, true)
	store.addTour("D3", domestic, true)
	target := store.addTour("I1", international, false)

	if err := SetTourHighlight(context.Background(), store, target, true); err != nil {
		t.Fatalf("highlight in other category: %v", err)
	}
}

func TestSetTourHighlightNotFound(t *testing.T) {
	store := newFakeHighlightStore()

	err := SetTourHighlight(context.Background(), store, primitive.NewObjectID(), true)
	if !errors.Is(err, ErrTourNotFound) {
		t.Fatalf("error = %v, want ErrTourNotFound", err)
	}
}

// Category "Domestic" has T1-T3 highlighted. Highlighting T4 is
// rejected with the full roster; freeing a slot lets it through.
func TestHighlightSlotTurnover(t *testing.T) {
	store := newFakeHighlightStore()
	domestic := primitive.NewObjectID()
	t1 := store.addTour("T1", domestic, true)
	t2 := store.addTour("T2", domestic, true)
	t3 := store.addTour("T3", domestic, true)
	t4 := store.addTour("T4", domestic, false)

	ctx := context.Background()

	var capErr *CapError
	if err := SetTourHighlight(ctx, store, t4, true); !errors.As(err, &capErr) {
		t.Fatalf("error = %v, want *CapError", err)
	}

	if err := SetTourHighlight(ctx, store, t1, false); err != nil {
		t.Fatalf("unhighlight T1: %v", err)
	}
	if err := SetTourHighlight(ctx, store, t4, true); err != nil {
		t.Fatalf("highlight T4 after freeing a slot: %v", err)
	}

	for id, wantOn := range map[primitive.ObjectID]bool{t1: false, t2: true, t3: true, t4: true} {
		if store.tours[id].HighlightStatus != wantOn {
			t.Errorf("tour %s highlight = %v, want %v", store.tours[id].TourName, store.tours[id].HighlightStatus, wantOn)
		}
	}
	if got := store.highlightedCount(domestic); got != 3 {
		t.Fatalf("highlighted count = %d, want 3", got)
	}
}
