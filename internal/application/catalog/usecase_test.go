package catalog_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyrivelus/stockpro/internal/application/catalog"
	"github.com/Cyrivelus/stockpro/internal/domain"
	"github.com/Cyrivelus/stockpro/internal/domain/entity"
	"github.com/Cyrivelus/stockpro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dépôt en mémoire. Reproduit les contraintes et la sémantique du schéma :
// code unique (ErrDuplicate), clé étrangère des mouvements (ErrConflict à la
// suppression d'un article référencé), et Update qui n'écrit jamais la colonne
// quantity. GetByID peut servir un instantané périmé (lecture hors
// transaction) quand stale est armé ; GetForUpdate lit toujours l'état vivant.
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	mu         sync.Mutex
	items      map[string]*entity.Item
	referenced map[string]bool // articles pointés par au moins un mouvement
	stale      *entity.Item    // instantané périmé servi par GetByID
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{
		items:      make(map[string]*entity.Item),
		referenced: make(map[string]bool),
	}
}

func (r *fakeItemRepo) Create(item *entity.Item) error {
	for _, it := range r.items {
		if it.Code == item.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.Item, error) {
	if r.stale != nil && r.stale.ID == id {
		cp := *r.stale
		return &cp, nil
	}
	return r.GetForUpdate(id)
}

func (r *fakeItemRepo) GetByCode(code string) (*entity.Item, error) {
	for _, it := range r.items {
		if it.Code == code {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) UpdateStock(id string, quantity int, totalValue decimal.Decimal, updatedAt time.Time) error {
	it, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	it.TotalValue = totalValue
	it.UpdatedAt = updatedAt
	return nil
}

// Update écrit les champs descriptifs, le prix et total_value ; jamais
// quantity, comme l'adaptateur SQL.
func (r *fakeItemRepo) Update(item *entity.Item) error {
	cur, ok := r.items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *item
	cp.Quantity = cur.Quantity
	cp.CreatedAt = cur.CreatedAt
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) Delete(id string) error {
	if r.referenced[id] {
		return domain.ErrConflict
	}
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) List(filter repository.ItemFilter, limit, offset int) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range r.items {
		if filter.CategoryID != "" && it.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Status != "" && it.Status != filter.Status {
			continue
		}
		if filter.LowStockOnly && !it.IsLowStock() {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeItemRepo) ListAll() ([]*entity.Item, error) {
	return r.List(repository.ItemFilter{}, 0, 0)
}

// fakeTxRunner sérialise les callbacks sous le verrou du dépôt, comme le
// verrou de ligne en production.
type fakeTxRunner struct{ repo *fakeItemRepo }

func (r *fakeTxRunner) RunItems(ctx context.Context, fn func(itemRepo repository.ItemRepository) error) error {
	r.repo.mu.Lock()
	defer r.repo.mu.Unlock()
	return fn(r.repo)
}

var testClock = func() time.Time { return time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC) }

func newUseCase(repo *fakeItemRepo) *catalog.ItemUseCase {
	return catalog.NewItemUseCase(repo, &fakeTxRunner{repo: repo}, testClock)
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func decPtr(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ArticleNaitAQuantiteZero(t *testing.T) {
	repo := newFakeItemRepo()
	uc := newUseCase(repo)

	item, err := uc.Create(context.Background(), catalog.CreateItemInput{
		Code:      "ORD-HP-001",
		Name:      "Ordinateur portable HP",
		Brand:     "HP",
		MinStock:  2,
		UnitPrice: decimal.NewFromInt(350000),
		UserID:    "user-1",
	})
	require.NoError(t, err)
	require.NotNil(t, item)

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, 0, item.Quantity, "le stock initial s'enregistre par une entrée")
	assert.True(t, item.TotalValue.Equal(decimal.Zero))
	assert.Equal(t, entity.ItemStatusDisponible, item.Status, "statut par défaut")
	assert.Equal(t, entity.ConditionNeuf, item.Condition, "état par défaut")
	assert.Equal(t, testClock(), item.CreatedAt)
}

func TestCreate_CodeDuplique(t *testing.T) {
	uc := newUseCase(newFakeItemRepo())
	ctx := context.Background()

	_, err := uc.Create(ctx, catalog.CreateItemInput{
		Code: "ORD-HP-001", Name: "Ordinateur", UnitPrice: decimal.NewFromInt(350000), UserID: "u",
	})
	require.NoError(t, err)

	_, err = uc.Create(ctx, catalog.CreateItemInput{
		Code: "ORD-HP-001", Name: "Autre ordinateur", UnitPrice: decimal.NewFromInt(100), UserID: "u",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_EntreesInvalides(t *testing.T) {
	uc := newUseCase(newFakeItemRepo())
	ctx := context.Background()

	_, err := uc.Create(ctx, catalog.CreateItemInput{Name: "Sans code", UserID: "u"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, catalog.CreateItemInput{Code: "A", Name: "Prix négatif", UnitPrice: decimal.NewFromInt(-1), UserID: "u"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, catalog.CreateItemInput{Code: "A", Name: "Statut inconnu", Status: "perdu", UserID: "u"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_QuantiteImmuable(t *testing.T) {
	repo := newFakeItemRepo()
	uc := newUseCase(repo)
	ctx := context.Background()

	item, err := uc.Create(ctx, catalog.CreateItemInput{
		Code: "ART-001", Name: "Article", UnitPrice: decimal.NewFromInt(1000), UserID: "u",
	})
	require.NoError(t, err)

	_, err = uc.Update(ctx, item.ID, catalog.UpdateItemInput{Quantity: intPtr(5)})
	assert.ErrorIs(t, err, domain.ErrQuantityImmutable)

	// renvoyer la quantité courante inchangée n'est pas une modification
	_, err = uc.Update(ctx, item.ID, catalog.UpdateItemInput{
		Quantity: intPtr(0),
		Name:     strPtr("Article renommé"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Article renommé", repo.items[item.ID].Name)
}

func TestUpdate_ChangementDePrixRecalculeLaValeur(t *testing.T) {
	repo := newFakeItemRepo()
	uc := newUseCase(repo)
	ctx := context.Background()

	item, err := uc.Create(ctx, catalog.CreateItemInput{
		Code: "ART-001", Name: "Article", UnitPrice: decimal.NewFromInt(1000), UserID: "u",
	})
	require.NoError(t, err)
	repo.items[item.ID].Quantity = 5 // stock constitué par mouvements

	updated, err := uc.Update(ctx, item.ID, catalog.UpdateItemInput{UnitPrice: decPtr(2000)})
	require.NoError(t, err)
	assert.True(t, updated.TotalValue.Equal(decimal.NewFromInt(10000)))
}

func TestUpdate_RelitLaQuantiteSousVerrou(t *testing.T) {
	// un mouvement commite entre une lecture hors transaction et la mise à
	// jour : le recalcul de total_value doit partir de la quantité de la
	// ligne verrouillée, pas de l'instantané périmé
	repo := newFakeItemRepo()
	uc := newUseCase(repo)
	ctx := context.Background()

	item, err := uc.Create(ctx, catalog.CreateItemInput{
		Code: "ART-001", Name: "Article", UnitPrice: decimal.NewFromInt(1000), UserID: "u",
	})
	require.NoError(t, err)

	// instantané à quantité 5, puis une sortie commite 5 → 2
	repo.items[item.ID].Quantity = 5
	snap := *repo.items[item.ID]
	repo.stale = &snap
	repo.items[item.ID].Quantity = 2

	updated, err := uc.Update(ctx, item.ID, catalog.UpdateItemInput{UnitPrice: decPtr(2000)})
	require.NoError(t, err)

	stored := repo.items[item.ID]
	assert.Equal(t, 2, stored.Quantity)
	assert.True(t, stored.TotalValue.Equal(decimal.NewFromInt(4000)),
		"total_value = quantity × unit_price sur l'état commité")
	assert.True(t, updated.TotalValue.Equal(stored.TotalValue))
}

func TestUpdate_ArticleInconnuEtChampsInvalides(t *testing.T) {
	repo := newFakeItemRepo()
	uc := newUseCase(repo)
	ctx := context.Background()

	_, err := uc.Update(ctx, "absent", catalog.UpdateItemInput{Name: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	item, err := uc.Create(ctx, catalog.CreateItemInput{
		Code: "ART-001", Name: "Article", UnitPrice: decimal.NewFromInt(1000), UserID: "u",
	})
	require.NoError(t, err)

	_, err = uc.Update(ctx, item.ID, catalog.UpdateItemInput{MinStock: intPtr(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Update(ctx, item.ID, catalog.UpdateItemInput{Status: strPtr("perdu")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Get / List / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByCode(t *testing.T) {
	repo := newFakeItemRepo()
	uc := newUseCase(repo)
	ctx := context.Background()

	created, err := uc.Create(ctx, catalog.CreateItemInput{
		Code: "CHA-001", Name: "Chaise", UnitPrice: decimal.NewFromInt(25000), UserID: "u",
	})
	require.NoError(t, err)

	found, err := uc.GetByCode(ctx, "CHA-001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = uc.GetByCode(ctx, "ABSENT")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_ArticleReferenceParLeLivre(t *testing.T) {
	repo := newFakeItemRepo()
	uc := newUseCase(repo)
	ctx := context.Background()

	item, err := uc.Create(ctx, catalog.CreateItemInput{
		Code: "ART-001", Name: "Article", UnitPrice: decimal.NewFromInt(1000), UserID: "u",
	})
	require.NoError(t, err)
	repo.referenced[item.ID] = true

	err = uc.Delete(ctx, item.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "le livre des mouvements protège l'article")

	err = uc.Delete(ctx, "absent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_FiltreStockBas(t *testing.T) {
	repo := newFakeItemRepo()
	uc := newUseCase(repo)
	ctx := context.Background()

	low, err := uc.Create(ctx, catalog.CreateItemInput{
		Code: "BAS-001", Name: "Stock bas", MinStock: 5, UnitPrice: decimal.NewFromInt(100), UserID: "u",
	})
	require.NoError(t, err)
	ok, err := uc.Create(ctx, catalog.CreateItemInput{
		Code: "OK-001", Name: "Stock sain", MinStock: 1, UnitPrice: decimal.NewFromInt(100), UserID: "u",
	})
	require.NoError(t, err)
	repo.items[low.ID].Quantity = 2
	repo.items[ok.ID].Quantity = 10

	items, err := uc.List(ctx, repository.ItemFilter{LowStockOnly: true}, 20, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "BAS-001", items[0].Code)
}
