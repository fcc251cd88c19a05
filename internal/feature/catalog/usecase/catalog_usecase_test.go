package usecase

import (
	"context"
	"errors"
	"testing"

	"lifetrack_backend/internal/feature/catalog/domain/entity"
)

// mockCatalogRepository is an in-memory implementation of CatalogRepository.
// It enforces the same per-user name uniqueness the real store does.
type mockCatalogRepository struct {
	nextID     uint
	categories map[uint]*entity.Category
	metrics    map[uint]*entity.Metric
}

func newMockCatalogRepository() *mockCatalogRepository {
	return &mockCatalogRepository{
		nextID:     1,
		categories: map[uint]*entity.Category{},
		metrics:    map[uint]*entity.Metric{},
	}
}

func (m *mockCatalogRepository) CreateCategory(ctx context.Context, category *entity.Category) error {
	for _, c := range m.categories {
		if c.UserID == category.UserID && c.Name == category.Name {
			return ErrDuplicateName
		}
	}
	category.ID = m.nextID
	m.nextID++
	copied := *category
	m.categories[category.ID] = &copied
	return nil
}

func (m *mockCatalogRepository) FindCategoryByID(ctx context.Context, userID, id uint) (*entity.Category, error) {
	c, ok := m.categories[id]
	if !ok || c.UserID != userID {
		return nil, ErrCategoryNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *mockCatalogRepository) FindCategoryByName(ctx context.Context, userID uint, name string) (*entity.Category, error) {
	for _, c := range m.categories {
		if c.UserID == userID && c.Name == name {
			copied := *c
			return &copied, nil
		}
	}
	return nil, ErrCategoryNotFound
}

func (m *mockCatalogRepository) DeleteCategoryByID(ctx context.Context, userID, id uint) error {
	delete(m.categories, id)
	return nil
}

func (m *mockCatalogRepository) CreateMetric(ctx context.Context, metric *entity.Metric) error {
	for _, mm := range m.metrics {
		if mm.UserID == metric.UserID && mm.Name == metric.Name {
			return ErrDuplicateName
		}
	}
	metric.ID = m.nextID
	m.nextID++
	copied := *metric
	m.metrics[metric.ID] = &copied
	return nil
}

func (m *mockCatalogRepository) FindMetricByName(ctx context.Context, userID uint, name string) (*entity.Metric, error) {
	for _, mm := range m.metrics {
		if mm.UserID == userID && mm.Name == name {
			copied := *mm
			return &copied, nil
		}
	}
	return nil, ErrMetricNotFound
}

func (m *mockCatalogRepository) SaveMetric(ctx context.Context, metric *entity.Metric) error {
	copied := *metric
	m.metrics[metric.ID] = &copied
	return nil
}

func (m *mockCatalogRepository) DeleteMetricByID(ctx context.Context, userID, id uint) error {
	delete(m.metrics, id)
	return nil
}

func (m *mockCatalogRepository) ListMetricsByCategoryID(ctx context.Context, userID, categoryID uint) ([]entity.Metric, error) {
	var out []entity.Metric
	for _, mm := range m.metrics {
		if mm.UserID == userID && mm.CategoryID == categoryID {
			out = append(out, *mm)
		}
	}
	return out, nil
}

func (m *mockCatalogRepository) ListCatalog(ctx context.Context, userID uint) ([]entity.CatalogItem, error) {
	var out []entity.CatalogItem
	for _, mm := range m.metrics {
		if mm.UserID != userID {
			continue
		}
		c := m.categories[mm.CategoryID]
		out = append(out, entity.CatalogItem{Category: c.Name, Metric: *mm})
	}
	return out, nil
}

// mockEntryRemover records cascade deletions.
type mockEntryRemover struct {
	deleted []uint

	DeleteByMetricIDFunc func(ctx context.Context, userID, metricID uint) error
}

func (m *mockEntryRemover) DeleteByMetricID(ctx context.Context, userID, metricID uint) error {
	if m.DeleteByMetricIDFunc != nil {
		return m.DeleteByMetricIDFunc(ctx, userID, metricID)
	}
	m.deleted = append(m.deleted, metricID)
	return nil
}

func ptrF(v float64) *float64 { return &v }
func ptrS(v string) *string   { return &v }

func seedCategory(t *testing.T, uc *catalogUsecase, userID uint, name string) uint {
	t.Helper()
	id, err := uc.CreateCategory(context.Background(), userID, name)
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	return id
}

func quantDef(name string) MetricDefinition {
	return MetricDefinition{
		Name:        name,
		Kind:        entity.KindQuantitative,
		MinValue:    0,
		MaxValue:    ptrF(100),
		Description: "a test metric",
		Example:     ptrS("an example"),
	}
}

func TestCatalogUsecase_CreateCategory(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		uc := NewCatalogUsecase(newMockCatalogRepository(), &mockEntryRemover{})

		id, err := uc.CreateCategory(context.Background(), 1, "Health")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id == 0 {
			t.Error("expected non-zero category id")
		}
	})

	t.Run("duplicate name for same user", func(t *testing.T) {
		uc := NewCatalogUsecase(newMockCatalogRepository(), &mockEntryRemover{})
		seedCategory(t, uc, 1, "Health")

		_, err := uc.CreateCategory(context.Background(), 1, "Health")

		if !errors.Is(err, ErrDuplicateName) {
			t.Errorf("expected ErrDuplicateName, got: %v", err)
		}
	})

	t.Run("same name for different users succeeds", func(t *testing.T) {
		uc := NewCatalogUsecase(newMockCatalogRepository(), &mockEntryRemover{})
		seedCategory(t, uc, 1, "Health")

		if _, err := uc.CreateCategory(context.Background(), 2, "Health"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("empty name is invalid", func(t *testing.T) {
		uc := NewCatalogUsecase(newMockCatalogRepository(), &mockEntryRemover{})

		_, err := uc.CreateCategory(context.Background(), 1, "   ")

		if !errors.Is(err, ErrInvalidDefinition) {
			t.Errorf("expected ErrInvalidDefinition, got: %v", err)
		}
	})
}

func TestCatalogUsecase_CreateMetric(t *testing.T) {
	t.Run("min greater than max fails", func(t *testing.T) {
		uc := NewCatalogUsecase(newMockCatalogRepository(), &mockEntryRemover{})
		catID := seedCategory(t, uc, 1, "Health")

		def := quantDef("Backwards")
		def.MinValue = 10
		def.MaxValue = ptrF(1)

		_, err := uc.CreateMetric(context.Background(), 1, catID, def)

		if !errors.Is(err, ErrInvalidDefinition) {
			t.Errorf("expected ErrInvalidDefinition, got: %v", err)
		}
	})

	t.Run("nil max means unbounded above", func(t *testing.T) {
		uc := NewCatalogUsecase(newMockCatalogRepository(), &mockEntryRemover{})
		catID := seedCategory(t, uc, 1, "Wealth")

		def := quantDef("Spending")
		def.MinValue = 0
		def.MaxValue = nil

		if _, err := uc.CreateMetric(context.Background(), 1, catID, def); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("qualitative requires both endpoint examples", func(t *testing.T) {
		uc := NewCatalogUsecase(newMockCatalogRepository(), &mockEntryRemover{})
		catID := seedCategory(t, uc, 1, "Health")

		def := MetricDefinition{
			Name:       "Mood",
			Kind:       entity.KindQualitative,
			MinValue:   1,
			MaxValue:   ptrF(10),
			ExampleLow: ptrS("1 = gloomy"),
			// ExampleHigh missing
		}

		_, err := uc.CreateMetric(context.Background(), 1, catID, def)

		if !errors.Is(err, ErrInvalidDefinition) {
			t.Errorf("expected ErrInvalidDefinition, got: %v", err)
		}
	})

	t.Run("qualitative forces example to nil", func(t *testing.T) {
		repo := newMockCatalogRepository()
		uc := NewCatalogUsecase(repo, &mockEntryRemover{})
		catID := seedCategory(t, uc, 1, "Health")

		def := MetricDefinition{
			Name:        "Mood",
			Kind:        entity.KindQualitative,
			MinValue:    1,
			MaxValue:    ptrF(10),
			Example:     ptrS("should be dropped"),
			ExampleLow:  ptrS("1 = gloomy"),
			ExampleHigh: ptrS("10 = euphoric"),
		}

		id, err := uc.CreateMetric(context.Background(), 1, catID, def)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stored := repo.metrics[id]
		if stored.Example != nil {
			t.Error("expected example to be forced nil for qualitative metrics")
		}
		if stored.ExampleLow == nil || stored.ExampleHigh == nil {
			t.Error("expected endpoint examples to be stored")
		}
	})

	t.Run("quantitative forces endpoint examples to nil", func(t *testing.T) {
		repo := newMockCatalogRepository()
		uc := NewCatalogUsecase(repo, &mockEntryRemover{})
		catID := seedCategory(t, uc, 1, "Health")

		def := quantDef("Steps")
		def.ExampleLow = ptrS("should be dropped")
		def.ExampleHigh = ptrS("should be dropped")

		id, err := uc.CreateMetric(context.Background(), 1, catID, def)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stored := repo.metrics[id]
		if stored.ExampleLow != nil || stored.ExampleHigh != nil {
			t.Error("expected endpoint examples to be forced nil for quantitative metrics")
		}
	})

	t.Run("unknown kind fails", func(t *testing.T) {
		uc := NewCatalogUsecase(newMockCatalogRepository(), &mockEntryRemover{})
		catID := seedCategory(t, uc, 1, "Health")

		def := quantDef("Strange")
		def.Kind = "vibes"

		_, err := uc.CreateMetric(context.Background(), 1, catID, def)

		if !errors.Is(err, ErrInvalidDefinition) {
			t.Errorf("expected ErrInvalidDefinition, got: %v", err)
		}
	})

	t.Run("duplicate name for same user fails, different user succeeds", func(t *testing.T) {
		uc := NewCatalogUsecase(newMockCatalogRepository(), &mockEntryRemover{})
		cat1 := seedCategory(t, uc, 1, "Health")
		cat2 := seedCategory(t, uc, 2, "Health")

		if _, err := uc.CreateMetric(context.Background(), 1, cat1, quantDef("Steps")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := uc.CreateMetric(context.Background(), 1, cat1, quantDef("Steps"))
		if !errors.Is(err, ErrDuplicateName) {
			t.Errorf("expected ErrDuplicateName for same user, got: %v", err)
		}

		if _, err := uc.CreateMetric(context.Background(), 2, cat2, quantDef("Steps")); err != nil {
			t.Errorf("unexpected error for different user: %v", err)
		}
	})

	t.Run("category owned by another user is not visible", func(t *testing.T) {
		uc := NewCatalogUsecase(newMockCatalogRepository(), &mockEntryRemover{})
		otherCat := seedCategory(t, uc, 2, "Health")

		_, err := uc.CreateMetric(context.Background(), 1, otherCat, quantDef("Steps"))

		if !errors.Is(err, ErrCategoryNotFound) {
			t.Errorf("expected ErrCategoryNotFound, got: %v", err)
		}
	})
}

func TestCatalogUsecase_UpdateMetric(t *testing.T) {
	setup := func(t *testing.T) (*catalogUsecase, *mockCatalogRepository, uint) {
		repo := newMockCatalogRepository()
		uc := NewCatalogUsecase(repo, &mockEntryRemover{})
		catID := seedCategory(t, uc, 1, "Health")
		id, err := uc.CreateMetric(context.Background(), 1, catID, quantDef("Steps"))
		if err != nil {
			t.Fatalf("failed to create metric: %v", err)
		}
		return uc, repo, id
	}

	t.Run("empty update is a no-op", func(t *testing.T) {
		uc, repo, id := setup(t)
		before := *repo.metrics[id]

		if err := uc.UpdateMetric(context.Background(), 1, "Steps", MetricUpdate{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		after := *repo.metrics[id]
		if before != after {
			t.Errorf("expected stored metric unchanged, before=%+v after=%+v", before, after)
		}
	})

	t.Run("partial update keeps unspecified fields", func(t *testing.T) {
		uc, repo, id := setup(t)

		update := MetricUpdate{
			MaxValue:    ptrF(50000),
			Description: ptrS("updated description"),
		}
		if err := uc.UpdateMetric(context.Background(), 1, "Steps", update); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stored := repo.metrics[id]
		if *stored.MaxValue != 50000 {
			t.Errorf("expected max 50000, got %g", *stored.MaxValue)
		}
		if stored.Description != "updated description" {
			t.Errorf("expected updated description, got %q", stored.Description)
		}
		if stored.MinValue != 0 {
			t.Errorf("expected min unchanged, got %g", stored.MinValue)
		}
		if stored.Example == nil || *stored.Example != "an example" {
			t.Error("expected example unchanged")
		}
	})

	t.Run("missing metric", func(t *testing.T) {
		uc, _, _ := setup(t)

		err := uc.UpdateMetric(context.Background(), 1, "No Such Metric", MetricUpdate{})

		if !errors.Is(err, ErrMetricNotFound) {
			t.Errorf("expected ErrMetricNotFound, got: %v", err)
		}
	})
}

func TestCatalogUsecase_DeleteMetric(t *testing.T) {
	t.Run("deletes entries before the metric", func(t *testing.T) {
		repo := newMockCatalogRepository()
		remover := &mockEntryRemover{}
		uc := NewCatalogUsecase(repo, remover)
		catID := seedCategory(t, uc, 1, "Health")
		id, _ := uc.CreateMetric(context.Background(), 1, catID, quantDef("Steps"))

		if err := uc.DeleteMetric(context.Background(), 1, "Steps"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(remover.deleted) != 1 || remover.deleted[0] != id {
			t.Errorf("expected entry cascade for metric %d, got %v", id, remover.deleted)
		}
		if _, ok := repo.metrics[id]; ok {
			t.Error("expected metric to be deleted")
		}
	})

	t.Run("metric survives if entry cascade fails", func(t *testing.T) {
		repo := newMockCatalogRepository()
		remover := &mockEntryRemover{
			DeleteByMetricIDFunc: func(ctx context.Context, userID, metricID uint) error {
				return errors.New("store unavailable")
			},
		}
		uc := NewCatalogUsecase(repo, remover)
		catID := seedCategory(t, uc, 1, "Health")
		id, _ := uc.CreateMetric(context.Background(), 1, catID, quantDef("Steps"))

		if err := uc.DeleteMetric(context.Background(), 1, "Steps"); err == nil {
			t.Fatal("expected error")
		}

		if _, ok := repo.metrics[id]; !ok {
			t.Error("expected metric to survive a failed cascade")
		}
	})

	t.Run("missing metric", func(t *testing.T) {
		uc := NewCatalogUsecase(newMockCatalogRepository(), &mockEntryRemover{})

		err := uc.DeleteMetric(context.Background(), 1, "No Such Metric")

		if !errors.Is(err, ErrMetricNotFound) {
			t.Errorf("expected ErrMetricNotFound, got: %v", err)
		}
	})
}

func TestCatalogUsecase_DeleteCategory(t *testing.T) {
	repo := newMockCatalogRepository()
	remover := &mockEntryRemover{}
	uc := NewCatalogUsecase(repo, remover)
	catID := seedCategory(t, uc, 1, "Health")
	m1, _ := uc.CreateMetric(context.Background(), 1, catID, quantDef("Steps"))
	m2, _ := uc.CreateMetric(context.Background(), 1, catID, quantDef("Hours of Sleep"))

	if err := uc.DeleteCategory(context.Background(), 1, "Health"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(remover.deleted) != 2 {
		t.Errorf("expected entry cascade for 2 metrics, got %v", remover.deleted)
	}
	if _, ok := repo.metrics[m1]; ok {
		t.Error("expected first metric to be deleted")
	}
	if _, ok := repo.metrics[m2]; ok {
		t.Error("expected second metric to be deleted")
	}
	if _, ok := repo.categories[catID]; ok {
		t.Error("expected category to be deleted")
	}
}

func TestCatalogUsecase_SeedDefaultCatalog(t *testing.T) {
	t.Run("creates three categories and seven metrics", func(t *testing.T) {
		repo := newMockCatalogRepository()
		uc := NewCatalogUsecase(repo, &mockEntryRemover{})

		if err := uc.SeedDefaultCatalog(context.Background(), 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(repo.categories) != 3 {
			t.Errorf("expected 3 categories, got %d", len(repo.categories))
		}
		if len(repo.metrics) != 7 {
			t.Errorf("expected 7 metrics, got %d", len(repo.metrics))
		}

		// Spot-check the unbounded default
		spending, err := repo.FindMetricByName(context.Background(), 1, "Discretionary Spending")
		if err != nil {
			t.Fatalf("expected Discretionary Spending to be seeded: %v", err)
		}
		if spending.MaxValue != nil {
			t.Error("expected Discretionary Spending to be unbounded above")
		}

		sleep, err := repo.FindMetricByName(context.Background(), 1, "Sleep Quality")
		if err != nil {
			t.Fatalf("expected Sleep Quality to be seeded: %v", err)
		}
		if sleep.Kind != entity.KindQualitative || sleep.ExampleLow == nil || sleep.ExampleHigh == nil {
			t.Error("expected Sleep Quality to be qualitative with endpoint examples")
		}
	})

	t.Run("second call fails with duplicate name", func(t *testing.T) {
		uc := NewCatalogUsecase(newMockCatalogRepository(), &mockEntryRemover{})
		if err := uc.SeedDefaultCatalog(context.Background(), 1); err != nil {
			t.Fatalf("first seed failed: %v", err)
		}

		err := uc.SeedDefaultCatalog(context.Background(), 1)

		if !errors.Is(err, ErrDuplicateName) {
			t.Errorf("expected ErrDuplicateName on the second call, got: %v", err)
		}
	})
}
