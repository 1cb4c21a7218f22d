package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/denta-stock-api/internal/application/dto"
	"github.com/jhoicas/denta-stock-api/internal/domain"
	"github.com/jhoicas/denta-stock-api/internal/domain/entity"
	"github.com/jhoicas/denta-stock-api/internal/domain/repository"
)

func newItemFixture(t *testing.T) (*ItemUseCase, *MovementUseCase, *memStore) {
	t.Helper()
	store := newMemStore()
	units := &memUnitRepo{units: map[string]entity.Unit{
		"unit-1": {ID: "unit-1", TeamID: testTeamID, Name: "Box", Abbreviation: "bx"},
	}}
	categories := &memCategoryRepo{categories: map[string]entity.Category{
		"cat-1":     {ID: "cat-1", TeamID: testTeamID, Name: "Yesos"},
		"cat-ajena": {ID: "cat-ajena", TeamID: otherTeamID, Name: "Ajena"},
	}}
	tx := &memTxRunner{s: store}
	itemUC := NewItemUseCase(tx, &memItemRepo{s: store}, categories, units, allowAllGate{}, nil)
	movUC := NewMovementUseCase(tx, &memMovementRepo{s: store}, &memItemRepo{s: store}, allowAllGate{}, nil)
	return itemUC, movUC, store
}

func TestItemCreate_StockInicial(t *testing.T) {
	uc, _, store := newItemFixture(t)

	out, err := uc.Create(context.Background(), testIdent(), dto.CreateItemRequest{
		Name: "  Yeso tipo IV  ", UnitID: "unit-1", CurrentStock: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, "Yeso tipo IV", out.Name)
	assert.Equal(t, 25, out.CurrentStock)
	assert.Equal(t, testTeamID, store.items[out.ID].TeamID)
}

func TestItemCreate_Validacion(t *testing.T) {
	uc, _, _ := newItemFixture(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, testIdent(), dto.CreateItemRequest{Name: "", UnitID: "unit-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, testIdent(), dto.CreateItemRequest{Name: "x", UnitID: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, testIdent(), dto.CreateItemRequest{Name: "x", UnitID: "unit-1", CurrentStock: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Unidad de otro equipo o inexistente.
	_, err = uc.Create(ctx, testIdent(), dto.CreateItemRequest{Name: "x", UnitID: "ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Las referencias de categoría se validan igual que las de unidad: una id
// inexistente o de otro equipo es ErrNotFound y no persiste nada.
func TestItemCreate_CategoriaInvalida(t *testing.T) {
	uc, _, store := newItemFixture(t)
	ctx := context.Background()

	out, err := uc.Create(ctx, testIdent(), dto.CreateItemRequest{
		Name: "Disco", UnitID: "unit-1", CategoryID: "cat-1", CurrentStock: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "cat-1", out.CategoryID)

	_, err = uc.Create(ctx, testIdent(), dto.CreateItemRequest{
		Name: "Disco", UnitID: "unit-1", CategoryID: "cat-fantasma",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, testIdent(), dto.CreateItemRequest{
		Name: "Disco", UnitID: "unit-1", CategoryID: "cat-ajena",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, store.items, 1, "los rechazos no escriben nada")
}

func TestItemUpdate_CategoriaInvalida(t *testing.T) {
	uc, _, store := newItemFixture(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, testIdent(), dto.CreateItemRequest{
		Name: "Silicona", UnitID: "unit-1", CategoryID: "cat-1",
	})
	require.NoError(t, err)

	ajena := "cat-ajena"
	_, err = uc.Update(ctx, testIdent(), created.ID, dto.UpdateItemRequest{CategoryID: &ajena})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "cat-1", store.items[created.ID].CategoryID, "la referencia original se conserva")

	fantasma := "cat-fantasma"
	_, err = uc.Update(ctx, testIdent(), created.ID, dto.UpdateItemRequest{CategoryID: &fantasma})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// La cadena vacía desasocia sin validar contra el registro.
	vacia := ""
	out, err := uc.Update(ctx, testIdent(), created.ID, dto.UpdateItemRequest{CategoryID: &vacia})
	require.NoError(t, err)
	assert.Empty(t, out.CategoryID)
}

// Update muta descripciones pero jamás el stock: solo el libro lo escribe.
func TestItemUpdate_NoTocaElStock(t *testing.T) {
	uc, movUC, store := newItemFixture(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, testIdent(), dto.CreateItemRequest{
		Name: "Fresa de carburo", UnitID: "unit-1", CurrentStock: 9,
	})
	require.NoError(t, err)

	name := "Fresa de carburo fina"
	loc := "Estante B2"
	out, err := uc.Update(ctx, testIdent(), created.ID, dto.UpdateItemRequest{Name: &name, Location: &loc})
	require.NoError(t, err)
	assert.Equal(t, name, out.Name)
	assert.Equal(t, 9, store.items[created.ID].CurrentStock)

	// El stock sigue siendo mutable únicamente vía movimiento.
	rec, err := movUC.Record(ctx, testIdent(), dto.RecordMovementRequest{
		ItemID: created.ID, Type: entity.MovementTypeOut, Quantity: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, rec.NewStock)
	assert.Equal(t, 5, store.items[created.ID].CurrentStock)
}

func TestItemArchive(t *testing.T) {
	uc, _, store := newItemFixture(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, testIdent(), dto.CreateItemRequest{
		Name: "Cera de modelar", UnitID: "unit-1", CurrentStock: 3,
	})
	require.NoError(t, err)

	require.NoError(t, uc.Archive(ctx, testIdent(), created.ID))
	assert.True(t, store.items[created.ID].Archived)
	assert.Equal(t, 3, store.items[created.ID].CurrentStock, "el stock queda congelado")
}

// Política de borrado: sin movimientos se elimina de forma permanente.
func TestItemDelete_SinMovimientos(t *testing.T) {
	uc, _, store := newItemFixture(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, testIdent(), dto.CreateItemRequest{
		Name: "Aislante", UnitID: "unit-1",
	})
	require.NoError(t, err)

	out, err := uc.Delete(ctx, testIdent(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.DeleteOutcomeDeleted, out.Outcome)
	_, exists := store.items[created.ID]
	assert.False(t, exists)
}

// Política de borrado: con movimientos, se degrada a archivado (auditoría).
func TestItemDelete_ConMovimientosArchiva(t *testing.T) {
	uc, movUC, store := newItemFixture(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, testIdent(), dto.CreateItemRequest{
		Name: "Revestimiento", UnitID: "unit-1", CurrentStock: 2,
	})
	require.NoError(t, err)
	_, err = movUC.Record(ctx, testIdent(), dto.RecordMovementRequest{
		ItemID: created.ID, Type: entity.MovementTypeOut, Quantity: 1,
	})
	require.NoError(t, err)

	out, err := uc.Delete(ctx, testIdent(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.DeleteOutcomeArchived, out.Outcome)

	it, exists := store.items[created.ID]
	require.True(t, exists, "la fila debe seguir presente")
	assert.True(t, it.Archived)
	assert.Len(t, store.movements, 1, "el libro se preserva intacto")
}

func TestItemDelete_OtroEquipo(t *testing.T) {
	uc, _, store := newItemFixture(t)
	store.items["ajeno"] = entity.Item{ID: "ajeno", TeamID: otherTeamID, Name: "x", UnitID: "u", CreatedAt: time.Now()}

	_, err := uc.Delete(context.Background(), testIdent(), "ajeno")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, exists := store.items["ajeno"]
	assert.True(t, exists)
}

func TestItemList_Filtros(t *testing.T) {
	uc, _, _ := newItemFixture(t)
	ctx := context.Background()

	for _, name := range []string{"Disco A", "Disco B", "Yeso"} {
		_, err := uc.Create(ctx, testIdent(), dto.CreateItemRequest{Name: name, UnitID: "unit-1", CurrentStock: 1})
		require.NoError(t, err)
	}

	out, err := uc.List(ctx, testIdent(), itemFilterSearch("disco"))
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)

	_, err = uc.List(ctx, testIdent(), itemFilterStatus("bogus"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func itemFilterSearch(search string) repository.ItemFilter {
	return repository.ItemFilter{Search: search}
}

func itemFilterStatus(status string) repository.ItemFilter {
	return repository.ItemFilter{Status: status}
}
