package services_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lspratas/atelier/app/models"
	"github.com/lspratas/atelier/app/repositories"
	"github.com/lspratas/atelier/app/services"
)

func fakeUploader(urls *[]string) services.ImageUploader {
	return func(path string, r io.Reader) (string, error) {
		_, _ = io.Copy(io.Discard, r)
		url := "https://cdn.test/" + path
		*urls = append(*urls, url)
		return url, nil
	}
}

func TestSaveCreatesProduct(t *testing.T) {
	products := newProductFake()
	rec := &noticeRecorder{}

	var uploaded []string
	svc := services.NewProductService(products, rec).WithUploader(fakeUploader(&uploaded))

	p, err := svc.Save(context.Background(), services.SaveProductInput{
		Name:     "  Anel de Prata ",
		Price:    "R$ 89,90",
		File:     strings.NewReader("jpeg-bytes"),
		Filename: "anel prata.jpg",
	})

	require.NoError(t, err)
	assert.False(t, p.ID.IsZero())
	assert.Equal(t, "Anel de Prata", p.Name)
	assert.Equal(t, "R$ 89,90", p.Price)
	assert.False(t, p.InShowcase) // new products start hidden
	assert.Equal(t, 0, p.Stock)

	require.Len(t, uploaded, 1)
	assert.Equal(t, uploaded[0], p.Image)
	assert.Contains(t, p.Image, "_anel-prata.jpg")

	assert.Contains(t, rec.messages(), "Produto adicionado com sucesso!")
}

func TestSaveUpdateLeavesStockAndShowcaseAlone(t *testing.T) {
	products := newProductFake(models.Product{
		Name: "Anel", Price: "R$ 10,00", Stock: 4, InShowcase: true, Image: "https://cdn.test/old.jpg",
	})
	rec := &noticeRecorder{}
	svc := services.NewProductService(products, rec)

	id := products.items[0].ID
	p, err := svc.Save(context.Background(), services.SaveProductInput{
		ID:       id.Hex(),
		Name:     "Anel Ajustável",
		Price:    "R$ 12,00",
		ImageURL: "https://cdn.test/old.jpg",
	})

	require.NoError(t, err)
	assert.Equal(t, "Anel Ajustável", p.Name)
	assert.Equal(t, "R$ 12,00", p.Price)
	assert.Equal(t, 4, p.Stock)
	assert.True(t, p.InShowcase)

	assert.Contains(t, rec.messages(), "Produto atualizado com sucesso!")
}

func TestSaveUploadFailureWritesNothing(t *testing.T) {
	products := newProductFake()
	rec := &noticeRecorder{}
	svc := services.NewProductService(products, rec).WithUploader(
		func(string, io.Reader) (string, error) {
			return "", errors.New("bucket gone")
		})

	_, err := svc.Save(context.Background(), services.SaveProductInput{
		Name:     "Anel",
		Price:    "R$ 10,00",
		File:     strings.NewReader("x"),
		Filename: "a.jpg",
	})

	require.Error(t, err)
	assert.Empty(t, products.items)
	assert.Contains(t, rec.messages(), "Erro ao salvar produto.")
}

func TestToggleShowcase(t *testing.T) {
	products := newProductFake(models.Product{Name: "Anel", InShowcase: false})
	rec := &noticeRecorder{}
	svc := services.NewProductService(products, rec)

	p := products.items[0]
	require.NoError(t, svc.ToggleShowcase(context.Background(), &p))
	assert.True(t, p.InShowcase)
	assert.Contains(t, rec.messages(), "Produto adicionado à vitrine!")

	require.NoError(t, svc.ToggleShowcase(context.Background(), &p))
	assert.False(t, p.InShowcase)
	assert.Contains(t, rec.messages(), "Produto removido da vitrine.")
}

func TestDeleteRemovesProduct(t *testing.T) {
	products := newProductFake(models.Product{Name: "Anel"})
	rec := &noticeRecorder{}
	svc := services.NewProductService(products, rec)

	id := products.items[0].ID
	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Empty(t, products.items)
	assert.Contains(t, rec.messages(), "Produto excluído com sucesso!")

	err := svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestDeleteLeavesSaleSnapshotsIntact(t *testing.T) {
	products := newProductFake(models.Product{Name: "Anel de Prata", Price: "R$ 89,90", Stock: 1})
	sales := &saleFake{}
	rec := &noticeRecorder{}

	id := products.items[0].ID
	_, err := sales.Append(context.Background(), models.Sale{
		ProductID:   id.Hex(),
		ProductName: "Anel de Prata",
		Quantity:    1,
		TotalPrice:  89.90,
	})
	require.NoError(t, err)

	svc := services.NewProductService(products, rec)
	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Empty(t, products.items)

	// The ledger keeps its snapshot of the product's name and price.
	history, err := sales.All(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, id.Hex(), history[0].ProductID)
	assert.Equal(t, "Anel de Prata", history[0].ProductName)
	assert.Equal(t, 89.90, history[0].TotalPrice)
}

func TestFindRejectsBadID(t *testing.T) {
	svc := services.NewProductService(newProductFake(), nil)

	_, err := svc.Find(context.Background(), "not-an-objectid")
	assert.Error(t, err)
}
