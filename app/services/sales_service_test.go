package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lspratas/atelier/app/models"
	"github.com/lspratas/atelier/app/services"
	"github.com/lspratas/atelier/pkg/notify"
)

func TestAdjustStockAppliesDelta(t *testing.T) {
	products := newProductFake(models.Product{Name: "Anel", Price: "R$ 10,00", Stock: 2})
	svc := services.NewSalesService(products, &saleFake{}, nil)

	p, err := products.FindByID(context.Background(), products.items[0].ID)
	require.NoError(t, err)

	require.NoError(t, svc.AdjustStock(context.Background(), &p, 3))
	assert.Equal(t, 5, p.Stock)

	stored, _ := products.FindByID(context.Background(), p.ID)
	assert.Equal(t, 5, stored.Stock)
}

func TestAdjustStockClampsAtZero(t *testing.T) {
	products := newProductFake(models.Product{Name: "Anel", Stock: 1})
	svc := services.NewSalesService(products, &saleFake{}, nil)

	p := products.items[0]
	require.NoError(t, svc.AdjustStock(context.Background(), &p, -5))
	assert.Equal(t, 0, p.Stock)
}

func TestAdjustStockFailureLeavesProductUntouched(t *testing.T) {
	products := newProductFake(models.Product{Name: "Anel", Stock: 2})
	products.updateErr = errors.New("mongo down")

	rec := &noticeRecorder{}
	svc := services.NewSalesService(products, &saleFake{}, rec)

	p := products.items[0]
	err := svc.AdjustStock(context.Background(), &p, -1)

	require.Error(t, err)
	assert.Equal(t, 2, p.Stock)

	last, ok := rec.last()
	require.True(t, ok)
	assert.Equal(t, notify.LevelError, last.Level)
	assert.Equal(t, "Erro ao atualizar estoque.", last.Message)
}

func TestRegisterSaleHappyPath(t *testing.T) {
	products := newProductFake(models.Product{Name: "Anel de Prata", Price: "R$ 25,50", Stock: 1})
	sales := &saleFake{}
	rec := &noticeRecorder{}
	svc := services.NewSalesService(products, sales, rec)

	p := products.items[0]
	sale, err := svc.RegisterSale(context.Background(), &p)

	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
	assert.False(t, sale.ID.IsZero())
	assert.Equal(t, p.ID.Hex(), sale.ProductID)
	assert.Equal(t, "Anel de Prata", sale.ProductName)
	assert.Equal(t, 1, sale.Quantity)
	assert.Equal(t, 25.5, sale.TotalPrice)

	require.Len(t, sales.appended, 1)

	last, ok := rec.last()
	require.True(t, ok)
	assert.Equal(t, notify.LevelSuccess, last.Level)
	assert.Equal(t, "Venda registrada com sucesso!", last.Message)
}

func TestRegisterSaleOutOfStockWritesNothing(t *testing.T) {
	products := newProductFake(models.Product{Name: "Anel", Price: "R$ 10,00", Stock: 0})
	sales := &saleFake{}
	rec := &noticeRecorder{}
	svc := services.NewSalesService(products, sales, rec)

	p := products.items[0]
	_, err := svc.RegisterSale(context.Background(), &p)

	require.ErrorIs(t, err, services.ErrOutOfStock)
	assert.Empty(t, sales.appended)
	assert.Empty(t, products.updates)

	last, ok := rec.last()
	require.True(t, ok)
	assert.Equal(t, "Produto sem estoque!", last.Message)
}

func TestRegisterSaleAppendFailureKeepsDecrement(t *testing.T) {
	products := newProductFake(models.Product{Name: "Anel", Price: "R$ 10,00", Stock: 2})
	sales := &saleFake{appendErr: errors.New("ledger unavailable")}
	rec := &noticeRecorder{}
	svc := services.NewSalesService(products, sales, rec)

	p := products.items[0]
	_, err := svc.RegisterSale(context.Background(), &p)

	require.Error(t, err)

	// The decrement confirmed before the append failed; it is not rolled back.
	stored, _ := products.FindByID(context.Background(), p.ID)
	assert.Equal(t, 1, stored.Stock)
	assert.Empty(t, sales.appended)

	assert.Contains(t, rec.messages(), "Erro ao registrar venda.")
}

func TestHistoryReturnsLedger(t *testing.T) {
	products := newProductFake(models.Product{Name: "Anel", Price: "R$ 10,00", Stock: 3})
	sales := &saleFake{}
	svc := services.NewSalesService(products, sales, nil)

	p := products.items[0]
	_, err := svc.RegisterSale(context.Background(), &p)
	require.NoError(t, err)

	history, err := svc.History(context.Background())
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
