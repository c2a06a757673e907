package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentalcloud/dentalcloud-api/internal/application/stock"
	"github.com/dentalcloud/dentalcloud-api/internal/domain"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/entity"
	"github.com/dentalcloud/dentalcloud-api/internal/domain/repository"
	"github.com/dentalcloud/dentalcloud-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en mémoire
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	items     map[string]*entity.CatalogItem
	edges     map[string][]*entity.CatalogItemResource
	resources map[string]*entity.Resource
	variants  map[string]*entity.ResourceVariant
	movements []*entity.StockMovement
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		items:     map[string]*entity.CatalogItem{},
		edges:     map[string][]*entity.CatalogItemResource{},
		resources: map[string]*entity.Resource{},
		variants:  map[string]*entity.ResourceVariant{},
	}
}

// snapshot copie l'état mutable pour émuler le rollback transactionnel.
func (s *fakeStore) snapshot() *fakeStore {
	c := newFakeStore()
	for k, v := range s.items {
		cp := *v
		c.items[k] = &cp
	}
	for k, v := range s.edges {
		c.edges[k] = append([]*entity.CatalogItemResource(nil), v...)
	}
	for k, v := range s.resources {
		cp := *v
		c.resources[k] = &cp
	}
	for k, v := range s.variants {
		cp := *v
		c.variants[k] = &cp
	}
	for _, m := range s.movements {
		cp := *m
		c.movements = append(c.movements, &cp)
	}
	return c
}

func (s *fakeStore) restore(from *fakeStore) {
	s.items = from.items
	s.edges = from.edges
	s.resources = from.resources
	s.variants = from.variants
	s.movements = from.movements
}

type fakeCatalogRepo struct{ s *fakeStore }

func (r *fakeCatalogRepo) Create(item *entity.CatalogItem) error { r.s.items[item.ID] = item; return nil }
func (r *fakeCatalogRepo) GetByID(id string) (*entity.CatalogItem, error) {
	return r.s.items[id], nil
}
func (r *fakeCatalogRepo) GetForUpdate(id string) (*entity.CatalogItem, error) {
	return r.s.items[id], nil
}
func (r *fakeCatalogRepo) ListByLab(string, bool, int, int) ([]*entity.CatalogItem, error) {
	return nil, nil
}
func (r *fakeCatalogRepo) Update(item *entity.CatalogItem) error { r.s.items[item.ID] = item; return nil }
func (r *fakeCatalogRepo) UpdateStock(id string, qty decimal.Decimal) error {
	r.s.items[id].StockQuantity = qty
	return nil
}
func (r *fakeCatalogRepo) SetActive(string, bool) error { return nil }
func (r *fakeCatalogRepo) ListResources(catalogItemID string) ([]*entity.CatalogItemResource, error) {
	return r.s.edges[catalogItemID], nil
}
func (r *fakeCatalogRepo) ReplaceResources(catalogItemID string, edges []*entity.CatalogItemResource) error {
	r.s.edges[catalogItemID] = edges
	return nil
}

type fakeResourceRepo struct{ s *fakeStore }

func (r *fakeResourceRepo) Create(res *entity.Resource) error { r.s.resources[res.ID] = res; return nil }
func (r *fakeResourceRepo) GetByID(id string) (*entity.Resource, error) {
	return r.s.resources[id], nil
}
func (r *fakeResourceRepo) GetForUpdate(id string) (*entity.Resource, error) {
	return r.s.resources[id], nil
}
func (r *fakeResourceRepo) ListByLab(string, int, int) ([]*entity.Resource, error) { return nil, nil }
func (r *fakeResourceRepo) Update(res *entity.Resource) error {
	r.s.resources[res.ID] = res
	return nil
}
func (r *fakeResourceRepo) UpdateStock(id string, qty decimal.Decimal) error {
	r.s.resources[id].StockQuantity = qty
	return nil
}
func (r *fakeResourceRepo) CreateVariant(v *entity.ResourceVariant) error {
	r.s.variants[v.ID] = v
	return nil
}
func (r *fakeResourceRepo) GetVariant(id string) (*entity.ResourceVariant, error) {
	return r.s.variants[id], nil
}
func (r *fakeResourceRepo) GetVariantForUpdate(id string) (*entity.ResourceVariant, error) {
	return r.s.variants[id], nil
}
func (r *fakeResourceRepo) ListVariants(string) ([]*entity.ResourceVariant, error) { return nil, nil }
func (r *fakeResourceRepo) UpdateVariantStock(id string, qty decimal.Decimal) error {
	r.s.variants[id].StockQuantity = qty
	return nil
}

type fakeMovementRepo struct{ s *fakeStore }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.s.movements = append(r.s.movements, m)
	return nil
}
func (r *fakeMovementRepo) ListCatalogMovementsForNote(noteID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.DeliveryNoteID == noteID && m.MovementType == entity.MovementTypeDeliveryNote && !m.Reversed {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *fakeMovementRepo) ListResourceMovementsForNote(noteID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ReferenceType == entity.ReferenceTypeDeliveryNote && m.ReferenceID == noteID &&
			m.MovementType == entity.MovementTypeOut && !m.Reversed {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *fakeMovementRepo) MarkReversed(id string) error {
	for _, m := range r.s.movements {
		if m.ID == id {
			m.Reversed = true
		}
	}
	return nil
}
func (r *fakeMovementRepo) ListByCatalogItem(string, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *fakeMovementRepo) ListByResource(string, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}

// fakeTxRunner émule Commit/Rollback : snapshot avant fn, restauration si erreur.
type fakeTxRunner struct{ s *fakeStore }

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	catalogRepo repository.CatalogRepository,
	resourceRepo repository.ResourceRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	before := t.s.snapshot()
	err := fn(&fakeCatalogRepo{t.s}, &fakeResourceRepo{t.s}, &fakeMovementRepo{t.s})
	if err != nil {
		t.s.restore(before)
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testLab  = "lab-1"
	testUser = "user-1"
	testNote = "bl-1"
)

func newLedger(s *fakeStore) *stock.Ledger {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return stock.NewLedger(&fakeTxRunner{s}, log)
}

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func (s *fakeStore) addItem(id, name string, tracks bool, qty int64) {
	s.items[id] = &entity.CatalogItem{
		ID: id, LabID: testLab, Name: name, DefaultUnit: "unité",
		TracksStock: tracks, StockQuantity: d(qty), IsActive: true,
	}
}

func (s *fakeStore) addResource(id, name string, hasVariants bool, qty int64) {
	s.resources[id] = &entity.Resource{
		ID: id, LabID: testLab, Name: name, HasVariants: hasVariants, StockQuantity: d(qty),
	}
}

func (s *fakeStore) addVariant(id, resourceID, name string, qty int64) {
	s.variants[id] = &entity.ResourceVariant{
		ID: id, ResourceID: resourceID, VariantName: name, StockQuantity: d(qty),
	}
}

func (s *fakeStore) addEdge(itemID, resourceID string, needed int64) {
	s.edges[itemID] = append(s.edges[itemID], &entity.CatalogItemResource{
		CatalogItemID: itemID, ResourceID: resourceID, QuantityNeeded: d(needed),
	})
}

func (s *fakeStore) movementsOfType(mt string) []*entity.StockMovement {
	var out []*entity.StockMovement
	for _, m := range s.movements {
		if m.MovementType == mt {
			out = append(out, m)
		}
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Déduction
// ──────────────────────────────────────────────────────────────────────────────

// Scénario de référence : Crown-A2 consomme 2 unités de poudre céramique par
// unité produite. 5 unités livrées => floor(5/2) = 2 unités de ressource.
func TestDeduct_ResourceBacked_FloorRule(t *testing.T) {
	s := newFakeStore()
	s.addItem("crown", "Crown-A2", false, 0)
	s.addResource("powder", "Poudre céramique", false, 10)
	s.addEdge("crown", "powder", 2)

	err := newLedger(s).DeductForDeliveryNote(context.Background(), testLab, testUser, testNote,
		[]stock.LineItem{{CatalogItemID: "crown", Quantity: d(5)}})
	require.NoError(t, err)

	assert.True(t, s.resources["powder"].StockQuantity.Equal(d(8)),
		"le stock ressource doit passer de 10 à 8")

	outs := s.movementsOfType(entity.MovementTypeOut)
	require.Len(t, outs, 1, "une écriture de sortie ressource")
	assert.True(t, outs[0].Quantity.Equal(d(2)))
	assert.Equal(t, "powder", outs[0].ResourceID)
	assert.Equal(t, testNote, outs[0].ReferenceID)

	audits := s.movementsOfType(entity.MovementTypeDeliveryNote)
	require.Len(t, audits, 1, "une écriture d'audit côté article")
	assert.True(t, audits[0].Quantity.Equal(d(-5)), "quantité signée négative côté article")
	assert.Equal(t, "crown", audits[0].CatalogItemID)
}

// lineQuantity < quantityNeeded => floor = 0 : aucun effet de stock, pas d'échec.
func TestDeduct_QuantityBelowRatio_NoEffectNoFailure(t *testing.T) {
	s := newFakeStore()
	s.addItem("crown", "Crown-A2", false, 0)
	s.addResource("powder", "Poudre céramique", false, 10)
	s.addEdge("crown", "powder", 2)

	err := newLedger(s).DeductForDeliveryNote(context.Background(), testLab, testUser, testNote,
		[]stock.LineItem{{CatalogItemID: "crown", Quantity: d(1)}})
	require.NoError(t, err)
	assert.True(t, s.resources["powder"].StockQuantity.Equal(d(10)), "stock inchangé")
}

// Même montage que le scénario de référence avec stock 1 : 1-2 < 0 => échec
// nommant la ressource, le disponible et le nécessaire ; stock intact.
func TestDeduct_InsufficientResource_FailsAndKeepsStock(t *testing.T) {
	s := newFakeStore()
	s.addItem("crown", "Crown-A2", false, 0)
	s.addResource("powder", "Poudre céramique", false, 1)
	s.addEdge("crown", "powder", 2)

	err := newLedger(s).DeductForDeliveryNote(context.Background(), testLab, testUser, testNote,
		[]stock.LineItem{{CatalogItemID: "crown", Quantity: d(5)}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Poudre céramique")
	assert.Contains(t, err.Error(), "disponible: 1")
	assert.Contains(t, err.Error(), "nécessaire: 2")

	assert.True(t, s.resources["powder"].StockQuantity.Equal(d(1)), "stock intact après échec")
	assert.Empty(t, s.movements, "aucune écriture persistée après rollback")
}

// Ressource à variantes sans sélection => échec dur quel que soit le stock.
func TestDeduct_MissingVariant_AlwaysFails(t *testing.T) {
	s := newFakeStore()
	s.addItem("crown", "Crown-A2", false, 0)
	s.addResource("zircone", "Disque zircone", true, 0)
	s.addVariant("v-a2", "zircone", "Teinte A2", 100)
	s.addEdge("crown", "zircone", 1)

	err := newLedger(s).DeductForDeliveryNote(context.Background(), testLab, testUser, testNote,
		[]stock.LineItem{{CatalogItemID: "crown", Quantity: d(1)}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingVariant)
	assert.Contains(t, err.Error(), "Disque zircone")
	assert.True(t, s.variants["v-a2"].StockQuantity.Equal(d(100)))
}

// La variante manque aussi quand floor(quantité/ratio) = 0 : la sélection
// est exigée avant tout calcul de quantité, pas seulement quand un débit
// aurait lieu.
func TestDeduct_MissingVariant_FailsEvenBelowRatio(t *testing.T) {
	s := newFakeStore()
	s.addItem("crown", "Crown-A2", false, 0)
	s.addResource("zircone", "Disque zircone", true, 0)
	s.addVariant("v-a2", "zircone", "Teinte A2", 100)
	s.addEdge("crown", "zircone", 2)

	err := newLedger(s).DeductForDeliveryNote(context.Background(), testLab, testUser, testNote,
		[]stock.LineItem{{CatalogItemID: "crown", Quantity: d(1)}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingVariant)
	assert.Empty(t, s.movements, "aucune écriture persistée après rollback")
}

func TestDeduct_VariantPath(t *testing.T) {
	s := newFakeStore()
	s.addItem("crown", "Crown-A2", false, 0)
	s.addResource("zircone", "Disque zircone", true, 0)
	s.addVariant("v-a2", "zircone", "Teinte A2", 5)
	s.addEdge("crown", "zircone", 1)

	err := newLedger(s).DeductForDeliveryNote(context.Background(), testLab, testUser, testNote,
		[]stock.LineItem{{
			CatalogItemID:    "crown",
			Quantity:         d(3),
			ResourceVariants: map[string]string{"zircone": "v-a2"},
		}})
	require.NoError(t, err)
	assert.True(t, s.variants["v-a2"].StockQuantity.Equal(d(2)))

	outs := s.movementsOfType(entity.MovementTypeOut)
	require.Len(t, outs, 1)
	assert.Equal(t, "v-a2", outs[0].ResourceVariantID)
	assert.Contains(t, outs[0].Notes, "Teinte A2")
}

// Variante insuffisante : message nommant la variante et la ressource.
func TestDeduct_InsufficientVariant(t *testing.T) {
	s := newFakeStore()
	s.addItem("crown", "Crown-A2", false, 0)
	s.addResource("zircone", "Disque zircone", true, 0)
	s.addVariant("v-a2", "zircone", "Teinte A2", 1)
	s.addEdge("crown", "zircone", 1)

	err := newLedger(s).DeductForDeliveryNote(context.Background(), testLab, testUser, testNote,
		[]stock.LineItem{{
			CatalogItemID:    "crown",
			Quantity:         d(4),
			ResourceVariants: map[string]string{"zircone": "v-a2"},
		}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Teinte A2")
	assert.Contains(t, err.Error(), "Disque zircone")
	assert.True(t, s.variants["v-a2"].StockQuantity.Equal(d(1)))
}

// Article sans nomenclature mais suivi en stock : débit direct.
func TestDeduct_CatalogItemTrackedStock(t *testing.T) {
	s := newFakeStore()
	s.addItem("tray", "Porte-empreinte", true, 10)

	err := newLedger(s).DeductForDeliveryNote(context.Background(), testLab, testUser, testNote,
		[]stock.LineItem{{CatalogItemID: "tray", Quantity: d(4)}})
	require.NoError(t, err)
	assert.True(t, s.items["tray"].StockQuantity.Equal(d(6)))

	err = newLedger(s).DeductForDeliveryNote(context.Background(), testLab, testUser, "bl-2",
		[]stock.LineItem{{CatalogItemID: "tray", Quantity: d(7)}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, s.items["tray"].StockQuantity.Equal(d(6)), "stock intact après échec")
}

// Ni nomenclature ni suivi : la ligne passe, seule l'écriture d'audit existe.
func TestDeduct_NoStockEffect(t *testing.T) {
	s := newFakeStore()
	s.addItem("repair", "Réparation", false, 0)

	err := newLedger(s).DeductForDeliveryNote(context.Background(), testLab, testUser, testNote,
		[]stock.LineItem{{CatalogItemID: "repair", Quantity: d(2)}})
	require.NoError(t, err)
	require.Len(t, s.movements, 1)
	assert.Equal(t, entity.MovementTypeDeliveryNote, s.movements[0].MovementType)
}

// Article introuvable : écart toléré, la ligne est ignorée sans échec global.
func TestDeduct_UnknownItemSkipped(t *testing.T) {
	s := newFakeStore()
	s.addItem("tray", "Porte-empreinte", true, 10)

	err := newLedger(s).DeductForDeliveryNote(context.Background(), testLab, testUser, testNote,
		[]stock.LineItem{
			{CatalogItemID: "missing", Quantity: d(1)},
			{CatalogItemID: "tray", Quantity: d(2)},
		})
	require.NoError(t, err)
	assert.True(t, s.items["tray"].StockQuantity.Equal(d(8)))
}

// Échec sur la deuxième ligne : la première est annulée avec la transaction.
func TestDeduct_MultiItemFailure_RollsBackAll(t *testing.T) {
	s := newFakeStore()
	s.addItem("tray", "Porte-empreinte", true, 10)
	s.addItem("crown", "Crown-A2", false, 0)
	s.addResource("powder", "Poudre céramique", false, 0)
	s.addEdge("crown", "powder", 1)

	err := newLedger(s).DeductForDeliveryNote(context.Background(), testLab, testUser, testNote,
		[]stock.LineItem{
			{CatalogItemID: "tray", Quantity: d(4)},
			{CatalogItemID: "crown", Quantity: d(3)},
		})
	require.Error(t, err)
	assert.True(t, s.items["tray"].StockQuantity.Equal(d(10)),
		"la ligne déjà appliquée doit être annulée par le rollback")
	assert.Empty(t, s.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Restauration
// ──────────────────────────────────────────────────────────────────────────────

// Aller-retour complet sur les trois chemins : article suivi, ressource à
// variante, ressource simple. Tous les soldes reviennent à l'état initial.
func TestRestore_RoundTrip(t *testing.T) {
	s := newFakeStore()
	s.addItem("tray", "Porte-empreinte", true, 10)
	s.addItem("crown", "Crown-A2", false, 0)
	s.addResource("powder", "Poudre céramique", false, 10)
	s.addResource("zircone", "Disque zircone", true, 0)
	s.addVariant("v-a2", "zircone", "Teinte A2", 5)
	s.addEdge("crown", "powder", 2)
	s.addEdge("crown", "zircone", 1)

	ledger := newLedger(s)
	items := []stock.LineItem{
		{CatalogItemID: "tray", Quantity: d(4)},
		{CatalogItemID: "crown", Quantity: d(5),
			ResourceVariants: map[string]string{"zircone": "v-a2"}},
	}
	require.NoError(t, ledger.DeductForDeliveryNote(context.Background(), testLab, testUser, testNote, items))

	assert.True(t, s.items["tray"].StockQuantity.Equal(d(6)))
	assert.True(t, s.resources["powder"].StockQuantity.Equal(d(8)))
	assert.True(t, s.variants["v-a2"].StockQuantity.Equal(d(0)))

	require.NoError(t, ledger.RestoreForDeliveryNote(context.Background(), testLab, testUser, testNote))

	assert.True(t, s.items["tray"].StockQuantity.Equal(d(10)), "article restauré")
	assert.True(t, s.resources["powder"].StockQuantity.Equal(d(10)), "ressource restaurée")
	assert.True(t, s.variants["v-a2"].StockQuantity.Equal(d(5)), "variante restaurée")

	returns := s.movementsOfType(entity.MovementTypeReturn)
	ins := s.movementsOfType(entity.MovementTypeIn)
	assert.Len(t, returns, 2, "une écriture de retour par écriture d'audit")
	assert.Len(t, ins, 2, "une écriture d'entrée par sortie ressource")
}

// Article qui suit son stock ET porte une nomenclature : la déduction passe
// par la nomenclature, le solde article n'est jamais débité. La restauration
// ne doit pas le créditer pour autant.
func TestRestore_EdgeBackedTrackedItem_NoCatalogCredit(t *testing.T) {
	s := newFakeStore()
	s.addItem("crown", "Crown-A2", true, 10)
	s.addResource("powder", "Poudre céramique", false, 10)
	s.addEdge("crown", "powder", 1)

	ledger := newLedger(s)
	require.NoError(t, ledger.DeductForDeliveryNote(context.Background(), testLab, testUser, testNote,
		[]stock.LineItem{{CatalogItemID: "crown", Quantity: d(5)}}))
	assert.True(t, s.items["crown"].StockQuantity.Equal(d(10)), "solde article intact à la déduction")
	assert.True(t, s.resources["powder"].StockQuantity.Equal(d(5)))

	require.NoError(t, ledger.RestoreForDeliveryNote(context.Background(), testLab, testUser, testNote))
	assert.True(t, s.items["crown"].StockQuantity.Equal(d(10)),
		"le solde article ne doit pas être gonflé par la restauration")
	assert.True(t, s.resources["powder"].StockQuantity.Equal(d(10)), "ressource restaurée")
}

// La restauration lit l'historique, pas la liste des lignes : elle
// fonctionne sans connaître les lignes d'origine.
func TestRestore_DrivenByMovementHistory(t *testing.T) {
	s := newFakeStore()
	s.addItem("crown", "Crown-A2", false, 0)
	s.addResource("powder", "Poudre céramique", false, 10)
	s.addEdge("crown", "powder", 2)

	ledger := newLedger(s)
	require.NoError(t, ledger.DeductForDeliveryNote(context.Background(), testLab, testUser, testNote,
		[]stock.LineItem{{CatalogItemID: "crown", Quantity: d(5)}}))

	// La nomenclature change après coup : la restauration ne doit pas s'en servir.
	s.edges["crown"] = nil

	require.NoError(t, ledger.RestoreForDeliveryNote(context.Background(), testLab, testUser, testNote))
	assert.True(t, s.resources["powder"].StockQuantity.Equal(d(10)),
		"la restauration rejoue les écritures, pas la nomenclature actuelle")
}

// Marqueur Reversed : un second appel ne trouve plus rien à compenser.
func TestRestore_SecondCallIsNoOp(t *testing.T) {
	s := newFakeStore()
	s.addItem("tray", "Porte-empreinte", true, 10)

	ledger := newLedger(s)
	require.NoError(t, ledger.DeductForDeliveryNote(context.Background(), testLab, testUser, testNote,
		[]stock.LineItem{{CatalogItemID: "tray", Quantity: d(4)}}))
	require.NoError(t, ledger.RestoreForDeliveryNote(context.Background(), testLab, testUser, testNote))
	assert.True(t, s.items["tray"].StockQuantity.Equal(d(10)))

	require.NoError(t, ledger.RestoreForDeliveryNote(context.Background(), testLab, testUser, testNote))
	assert.True(t, s.items["tray"].StockQuantity.Equal(d(10)),
		"pas de double restauration")
	assert.Len(t, s.movementsOfType(entity.MovementTypeReturn), 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustement manuel
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust(t *testing.T) {
	s := newFakeStore()
	s.addItem("tray", "Porte-empreinte", true, 5)
	s.addItem("repair", "Réparation", false, 0)
	ledger := newLedger(s)
	ctx := context.Background()

	require.NoError(t, ledger.Adjust(ctx, testLab, testUser, "tray", d(3), "inventaire"))
	assert.True(t, s.items["tray"].StockQuantity.Equal(d(8)))

	require.NoError(t, ledger.Adjust(ctx, testLab, testUser, "tray", d(-8), "casse"))
	assert.True(t, s.items["tray"].StockQuantity.Equal(d(0)))

	err := ledger.Adjust(ctx, testLab, testUser, "tray", d(-1), "trop")
	assert.ErrorIs(t, err, domain.ErrNegativeStock)
	assert.True(t, s.items["tray"].StockQuantity.Equal(d(0)), "refus sans écriture")

	err = ledger.Adjust(ctx, testLab, testUser, "repair", d(1), "n/a")
	assert.ErrorIs(t, err, domain.ErrStockNotTracked)

	err = ledger.Adjust(ctx, testLab, testUser, "missing", d(1), "n/a")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	adjusts := s.movementsOfType(entity.MovementTypeAdjustment)
	assert.Len(t, adjusts, 2, "une écriture par ajustement accepté")
}

// ──────────────────────────────────────────────────────────────────────────────
// Mouvements directs de ressources
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterResourceMovement(t *testing.T) {
	s := newFakeStore()
	s.addResource("powder", "Poudre céramique", false, 5)
	s.addResource("zircone", "Disque zircone", true, 0)
	s.addVariant("v-a2", "zircone", "Teinte A2", 2)
	ledger := newLedger(s)
	ctx := context.Background()

	require.NoError(t, ledger.RegisterResourceMovement(ctx, testLab, testUser, stock.ResourceMovementInput{
		ResourceID: "powder", Type: entity.MovementTypeIn, Quantity: d(10), Notes: "réception commande",
	}))
	assert.True(t, s.resources["powder"].StockQuantity.Equal(d(15)))

	require.NoError(t, ledger.RegisterResourceMovement(ctx, testLab, testUser, stock.ResourceMovementInput{
		ResourceID: "zircone", VariantID: "v-a2", Type: entity.MovementTypeOut, Quantity: d(1),
	}))
	assert.True(t, s.variants["v-a2"].StockQuantity.Equal(d(1)))

	// Sortie supérieure au stock : même garde que les déductions.
	err := ledger.RegisterResourceMovement(ctx, testLab, testUser, stock.ResourceMovementInput{
		ResourceID: "powder", Type: entity.MovementTypeOut, Quantity: d(100),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Ressource à variantes sans variante précisée : refus.
	err = ledger.RegisterResourceMovement(ctx, testLab, testUser, stock.ResourceMovementInput{
		ResourceID: "zircone", Type: entity.MovementTypeOut, Quantity: d(1),
	})
	assert.ErrorIs(t, err, domain.ErrMissingVariant)

	// Entrées invalides.
	err = ledger.RegisterResourceMovement(ctx, testLab, testUser, stock.ResourceMovementInput{
		ResourceID: "powder", Type: "sideways", Quantity: d(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	err = ledger.RegisterResourceMovement(ctx, testLab, testUser, stock.ResourceMovementInput{
		ResourceID: "powder", Type: entity.MovementTypeIn, Quantity: d(0),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
