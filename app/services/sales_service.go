package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/lspratas/atelier/app/models"
	"github.com/lspratas/atelier/pkg/currency"
	"github.com/lspratas/atelier/pkg/logger"
	"github.com/lspratas/atelier/pkg/metrics"
	"github.com/lspratas/atelier/pkg/notify"
)

// ErrOutOfStock rejects a sale against a product with zero stock. The
// check happens before any write, so a rejected sale leaves no trace.
var ErrOutOfStock = errors.New("services: product out of stock")

// SalesService owns the two inventory workflows: manual stock adjustment
// and sale registration. Both follow write-then-project: the database write
// confirms first, then the caller's product copy is updated to match.
type SalesService struct {
	products ProductStore
	sales    SaleStore
	notifier notify.Notifier
}

func NewSalesService(products ProductStore, sales SaleStore, notifier notify.Notifier) *SalesService {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &SalesService{products: products, sales: sales, notifier: notifier}
}

// AdjustStock applies a signed delta to the product's stock, clamped at
// zero. On success the write is projected into p; on failure p is left
// untouched.
func (s *SalesService) AdjustStock(ctx context.Context, p *models.Product, delta int) error {
	newStock := p.Stock + delta
	if newStock < 0 {
		newStock = 0
	}

	if err := s.products.Update(ctx, p.ID, bson.M{"stock": newStock}); err != nil {
		logger.WithCtx(ctx).Error("stock update failed",
			"product_id", p.ID.Hex(), "delta", delta, "error", err)
		notify.Error(s.notifier, "Erro ao atualizar estoque.")
		return err
	}

	if delta >= 0 {
		metrics.StockAdjustments.WithLabelValues("up").Inc()
	} else {
		metrics.StockAdjustments.WithLabelValues("down").Inc()
	}

	p.Stock = newStock
	return nil
}

// RegisterSale sells one unit of p: decrement stock, then append the sale
// to the ledger with a snapshot of the product's name and parsed price.
//
// The two writes are not atomic. If the ledger append fails after the
// decrement confirmed, the decrement stands; the gap is logged and
// surfaced, never silently repaired.
func (s *SalesService) RegisterSale(ctx context.Context, p *models.Product) (models.Sale, error) {
	if p.Stock <= 0 {
		notify.Error(s.notifier, "Produto sem estoque!")
		return models.Sale{}, ErrOutOfStock
	}

	const quantity = 1
	if err := s.AdjustStock(ctx, p, -quantity); err != nil {
		return models.Sale{}, err
	}

	sale := models.Sale{
		ProductID:   p.ID.Hex(),
		ProductName: p.Name,
		Quantity:    quantity,
		TotalPrice:  currency.Parse(p.Price) * float64(quantity),
	}

	id, err := s.sales.Append(ctx, sale)
	if err != nil {
		logger.WithCtx(ctx).Warn("sale append failed after stock decrement",
			"product_id", p.ID.Hex(), "stock", p.Stock, "error", err)
		notify.Error(s.notifier, "Erro ao registrar venda.")
		return models.Sale{}, err
	}
	sale.ID = id

	metrics.SalesRegistered.Inc()
	notify.Success(s.notifier, "Venda registrada com sucesso!")
	return sale, nil
}

// History returns the full ledger, newest first.
func (s *SalesService) History(ctx context.Context) ([]models.Sale, error) {
	return s.sales.All(ctx)
}
