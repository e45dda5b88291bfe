package reconciliation_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyrivelus/stockpro/internal/application/reconciliation"
	"github.com/Cyrivelus/stockpro/internal/domain"
	"github.com/Cyrivelus/stockpro/internal/domain/entity"
	"github.com/Cyrivelus/stockpro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dépôts en mémoire : le runner sérialise les callbacks sous un verrou global,
// comme le verrou de ligne sur la session en production.
// ──────────────────────────────────────────────────────────────────────────────

type lineKey struct{ inventoryID, itemID string }

type fakeStore struct {
	mu          sync.Mutex
	items       map[string]*entity.Item
	inventories map[string]*entity.Inventory
	lines       map[lineKey]*entity.InventoryItem

	dupListAll bool // fait renvoyer chaque article deux fois par ListAll
}

func newFakeStore(items ...*entity.Item) *fakeStore {
	s := &fakeStore{
		items:       make(map[string]*entity.Item),
		inventories: make(map[string]*entity.Inventory),
		lines:       make(map[lineKey]*entity.InventoryItem),
	}
	for _, it := range items {
		cp := *it
		s.items[it.ID] = &cp
	}
	return s
}

type fakeTxRunner struct{ store *fakeStore }

func (r *fakeTxRunner) RunInventory(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	itemRepo repository.ItemRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(&fakeInventoryRepo{store: r.store}, &fakeItemRepo{store: r.store})
}

type fakeInventoryRepo struct{ store *fakeStore }

func (r *fakeInventoryRepo) Create(inv *entity.Inventory) error {
	cp := *inv
	r.store.inventories[inv.ID] = &cp
	return nil
}

func (r *fakeInventoryRepo) GetByID(id string) (*entity.Inventory, error) {
	inv, ok := r.store.inventories[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInventoryRepo) GetForUpdate(id string) (*entity.Inventory, error) {
	return r.GetByID(id)
}

func (r *fakeInventoryRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	inv, ok := r.store.inventories[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = status
	inv.UpdatedAt = updatedAt
	return nil
}

func (r *fakeInventoryRepo) UpdateTotals(id string, totalItems int, totalValue decimal.Decimal, status string, updatedAt time.Time) error {
	inv, ok := r.store.inventories[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.TotalItems = totalItems
	inv.TotalValue = totalValue
	inv.Status = status
	inv.UpdatedAt = updatedAt
	return nil
}

func (r *fakeInventoryRepo) List(limit, offset int) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	for _, inv := range r.store.inventories {
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeInventoryRepo) CreateLine(line *entity.InventoryItem) error {
	k := lineKey{line.InventoryID, line.ItemID}
	if _, ok := r.store.lines[k]; ok {
		return domain.ErrDuplicate
	}
	cp := *line
	r.store.lines[k] = &cp
	return nil
}

func (r *fakeInventoryRepo) GetLine(inventoryID, itemID string) (*entity.InventoryItem, error) {
	line, ok := r.store.lines[lineKey{inventoryID, itemID}]
	if !ok {
		return nil, nil
	}
	cp := *line
	return &cp, nil
}

func (r *fakeInventoryRepo) UpdateLine(line *entity.InventoryItem) error {
	k := lineKey{line.InventoryID, line.ItemID}
	if _, ok := r.store.lines[k]; !ok {
		return domain.ErrNotFound
	}
	cp := *line
	r.store.lines[k] = &cp
	return nil
}

func (r *fakeInventoryRepo) ListLines(inventoryID string) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for k, line := range r.store.lines {
		if k.inventoryID == inventoryID {
			cp := *line
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeItemRepo : seul ListAll est exercé par le moteur de rapprochement, le
// reste satisfait le port.
type fakeItemRepo struct{ store *fakeStore }

func (r *fakeItemRepo) Create(item *entity.Item) error { return nil }

func (r *fakeItemRepo) GetByID(id string) (*entity.Item, error) {
	it, ok := r.store.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) GetByCode(code string) (*entity.Item, error) { return nil, nil }

func (r *fakeItemRepo) GetForUpdate(id string) (*entity.Item, error) { return r.GetByID(id) }

func (r *fakeItemRepo) UpdateStock(id string, quantity int, totalValue decimal.Decimal, updatedAt time.Time) error {
	it, ok := r.store.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	it.TotalValue = totalValue
	return nil
}

func (r *fakeItemRepo) Update(item *entity.Item) error { return nil }

func (r *fakeItemRepo) Delete(id string) error { return nil }

func (r *fakeItemRepo) List(filter repository.ItemFilter, limit, offset int) ([]*entity.Item, error) {
	return r.ListAll()
}

func (r *fakeItemRepo) ListAll() ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range r.store.items {
		cp := *it
		out = append(out, &cp)
		if r.store.dupListAll {
			cp2 := *it
			out = append(out, &cp2)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var testClock = func() time.Time { return time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC) }

func newItem(id, code string, qty int, price int64) *entity.Item {
	item := &entity.Item{
		ID:        id,
		Code:      code,
		Name:      code,
		Quantity:  qty,
		UnitPrice: decimal.NewFromInt(price),
		Status:    entity.ItemStatusDisponible,
	}
	item.RecomputeTotalValue()
	return item
}

func newUseCase(store *fakeStore) *reconciliation.UseCase {
	return reconciliation.NewUseCase(&fakeTxRunner{store: store}, testClock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cycle de vie complet : ouverture, comptage, clôture, validation.
// ──────────────────────────────────────────────────────────────────────────────

func TestOpen_FigeUneLigneParArticle(t *testing.T) {
	store := newFakeStore(
		newItem("it-1", "ORD-HP-001", 2, 350000),
		newItem("it-2", "CHA-001", 10, 25000),
	)
	uc := newUseCase(store)

	inv, err := uc.Open(context.Background(), reconciliation.OpenInput{
		Name: "Inventaire Q1 2025", UserID: "user-1",
	})
	require.NoError(t, err)
	require.NotNil(t, inv)

	assert.Equal(t, entity.InventoryEnCours, inv.Status, "passe en en_cours dès qu'une ligne existe")
	assert.Equal(t, testClock().UTC(), inv.Date.UTC(), "date par défaut : horloge du moteur")

	line, err := getLine(store, inv.ID, "it-1")
	require.NoError(t, err)
	require.NotNil(t, line)
	assert.Equal(t, 2, line.TheoreticalQuantity)
	assert.Equal(t, 2, line.ActualQuantity, "réel initial = théorique")
	assert.Equal(t, 0, line.Difference)
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(350000)), "prix figé à l'ouverture")
}

// getLine relit une ligne hors transaction pour les assertions.
func getLine(store *fakeStore, inventoryID, itemID string) (*entity.InventoryItem, error) {
	repo := &fakeInventoryRepo{store: store}
	return repo.GetLine(inventoryID, itemID)
}

func TestOpen_SansArticlesResteEnPlanifie(t *testing.T) {
	store := newFakeStore()
	uc := newUseCase(store)

	inv, err := uc.Open(context.Background(), reconciliation.OpenInput{Name: "Vide", UserID: "u"})
	require.NoError(t, err)
	assert.Equal(t, entity.InventoryPlanifie, inv.Status)
}

func TestOpen_LigneDupliqueeRefusee(t *testing.T) {
	// une seule ligne par (session, article) : une seconde insertion pour le
	// même article viole la clé primaire et remonte ErrDuplicate
	store := newFakeStore(newItem("it-1", "ART-001", 2, 1000))
	store.dupListAll = true
	uc := newUseCase(store)

	_, err := uc.Open(context.Background(), reconciliation.OpenInput{Name: "Inv", UserID: "u"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestOpen_NomObligatoire(t *testing.T) {
	uc := newUseCase(newFakeStore())
	_, err := uc.Open(context.Background(), reconciliation.OpenInput{UserID: "u"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordCount_RecalculeLesEcarts(t *testing.T) {
	// Scénario Q1 2025 : théorique 2 à 350000, comptage physique 0 →
	// écart −2, écart de valeur −700000. Le stock vivant ne bouge pas.
	store := newFakeStore(newItem("it-1", "ORD-HP-001", 2, 350000))
	uc := newUseCase(store)
	ctx := context.Background()

	inv, err := uc.Open(ctx, reconciliation.OpenInput{Name: "Inventaire Q1 2025", UserID: "u"})
	require.NoError(t, err)

	line, err := uc.RecordCount(ctx, inv.ID, "it-1", 0, "rien en rayon")
	require.NoError(t, err)

	assert.Equal(t, 2, line.TheoreticalQuantity)
	assert.Equal(t, 0, line.ActualQuantity)
	assert.Equal(t, -2, line.Difference)
	assert.True(t, line.ValueDifference.Equal(decimal.NewFromInt(-700000)))
	assert.True(t, line.ActualValue.Equal(decimal.Zero))
	assert.Equal(t, "rien en rayon", line.Notes)

	assert.Equal(t, 2, store.items["it-1"].Quantity, "le comptage ne touche pas le stock vivant")
}

func TestRecordCount_QuantiteNegativeRefusee(t *testing.T) {
	store := newFakeStore(newItem("it-1", "ART-001", 2, 1000))
	uc := newUseCase(store)
	ctx := context.Background()

	inv, err := uc.Open(ctx, reconciliation.OpenInput{Name: "Inv", UserID: "u"})
	require.NoError(t, err)

	_, err = uc.RecordCount(ctx, inv.ID, "it-1", -1, "")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestRecordCount_SessionOuLigneInconnue(t *testing.T) {
	store := newFakeStore(newItem("it-1", "ART-001", 2, 1000))
	uc := newUseCase(store)
	ctx := context.Background()

	_, err := uc.RecordCount(ctx, "absent", "it-1", 1, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	inv, err := uc.Open(ctx, reconciliation.OpenInput{Name: "Inv", UserID: "u"})
	require.NoError(t, err)

	_, err = uc.RecordCount(ctx, inv.ID, "article-absent", 1, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFinalize_AgregeEtPasseEnTermine(t *testing.T) {
	store := newFakeStore(
		newItem("it-1", "ORD-HP-001", 2, 350000),
		newItem("it-2", "CHA-001", 10, 25000),
	)
	uc := newUseCase(store)
	ctx := context.Background()

	inv, err := uc.Open(ctx, reconciliation.OpenInput{Name: "Inventaire Q1 2025", UserID: "u"})
	require.NoError(t, err)

	// les ordinateurs ont disparu, les chaises sont toutes là
	_, err = uc.RecordCount(ctx, inv.ID, "it-1", 0, "")
	require.NoError(t, err)

	done, err := uc.Finalize(ctx, inv.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.InventoryTermine, done.Status)
	assert.Equal(t, 2, done.TotalItems)
	// Σ actual_value = 0×350000 + 10×25000
	assert.True(t, done.TotalValue.Equal(decimal.NewFromInt(250000)))
}

func TestFinalize_SessionSansLigneRefusee(t *testing.T) {
	store := newFakeStore()
	uc := newUseCase(store)
	ctx := context.Background()

	inv, err := uc.Open(ctx, reconciliation.OpenInput{Name: "Vide", UserID: "u"})
	require.NoError(t, err)

	_, err = uc.Finalize(ctx, inv.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestValidate_TermineVersValideEtEtatTerminal(t *testing.T) {
	store := newFakeStore(newItem("it-1", "ART-001", 2, 1000))
	uc := newUseCase(store)
	ctx := context.Background()

	inv, err := uc.Open(ctx, reconciliation.OpenInput{Name: "Inv", UserID: "u"})
	require.NoError(t, err)

	// valider avant la clôture : refusé
	_, err = uc.Validate(ctx, inv.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = uc.Finalize(ctx, inv.ID)
	require.NoError(t, err)

	validated, err := uc.Validate(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InventoryValide, validated.Status)

	// valide est terminal : plus de comptage, plus de clôture, plus de validation
	_, err = uc.RecordCount(ctx, inv.ID, "it-1", 5, "")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = uc.Finalize(ctx, inv.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = uc.Validate(ctx, inv.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	assert.Equal(t, 2, store.items["it-1"].Quantity, "la validation n'ajuste pas le stock vivant")
}

func TestRecordCount_ApresClotureRefuse(t *testing.T) {
	store := newFakeStore(newItem("it-1", "ART-001", 2, 1000))
	uc := newUseCase(store)
	ctx := context.Background()

	inv, err := uc.Open(ctx, reconciliation.OpenInput{Name: "Inv", UserID: "u"})
	require.NoError(t, err)
	_, err = uc.Finalize(ctx, inv.ID)
	require.NoError(t, err)

	_, err = uc.RecordCount(ctx, inv.ID, "it-1", 1, "")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
