package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lspratas/atelier/app/jobs"
	"github.com/lspratas/atelier/app/models"
	"github.com/lspratas/atelier/pkg/logger"
	"github.com/lspratas/atelier/pkg/notify"
	"github.com/lspratas/atelier/pkg/storage"
)

// ImageUploader persists a product image and returns its public URL.
// Default implementation is the storage manager's default disk.
type ImageUploader func(path string, r io.Reader) (string, error)

// ProductService owns the catalog's write side: create, edit, delete and
// showcase toggling. Reads for the back-office come through List/Find.
type ProductService struct {
	products ProductStore
	notifier notify.Notifier
	upload   ImageUploader
}

func NewProductService(products ProductStore, notifier notify.Notifier) *ProductService {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &ProductService{
		products: products,
		notifier: notifier,
		upload:   storage.PutPublic,
	}
}

// WithUploader swaps the image upload function (tests use this).
func (s *ProductService) WithUploader(up ImageUploader) *ProductService {
	s.upload = up
	return s
}

// SaveProductInput carries one create or edit submission. ID empty means
// create. File nil means keep ImageURL as-is.
type SaveProductInput struct {
	ID       string
	Name     string
	Price    string // display string, e.g. "R$ 25,50"
	ImageURL string
	File     io.Reader
	Filename string
}

// Save runs the upload-before-write workflow: if a new image was attached
// it is uploaded first, and only a confirmed upload URL ever reaches the
// product record. Stock and showcase state are never touched here.
func (s *ProductService) Save(ctx context.Context, in SaveProductInput) (models.Product, error) {
	imageURL := in.ImageURL
	if in.File != nil {
		path := fmt.Sprintf("products/%d_%s", time.Now().Unix(), safeFilename(in.Filename))
		url, err := s.upload(path, in.File)
		if err != nil {
			logger.WithCtx(ctx).Error("product image upload failed",
				"path", path, "error", err)
			notify.Error(s.notifier, "Erro ao salvar produto.")
			return models.Product{}, err
		}
		imageURL = url
	}

	if in.ID == "" {
		p := models.Product{
			Name:  strings.TrimSpace(in.Name),
			Price: strings.TrimSpace(in.Price),
			Image: imageURL,
		}
		id, err := s.products.Create(ctx, p)
		if err != nil {
			notify.Error(s.notifier, "Erro ao salvar produto.")
			return models.Product{}, err
		}
		p.ID = id

		invalidateCatalog(ctx)
		notify.Success(s.notifier, "Produto adicionado com sucesso!")
		return p, nil
	}

	oid, err := primitive.ObjectIDFromHex(in.ID)
	if err != nil {
		return models.Product{}, fmt.Errorf("services: bad product id %q: %w", in.ID, err)
	}

	// When a new image replaces an old one, the old blob becomes orphaned.
	var previousImage string
	if in.File != nil {
		if prev, err := s.products.FindByID(ctx, oid); err == nil {
			previousImage = prev.Image
		}
	}

	fields := bson.M{
		"name":  strings.TrimSpace(in.Name),
		"price": strings.TrimSpace(in.Price),
		"image": imageURL,
	}
	if err := s.products.Update(ctx, oid, fields); err != nil {
		notify.Error(s.notifier, "Erro ao salvar produto.")
		return models.Product{}, err
	}

	updated, err := s.products.FindByID(ctx, oid)
	if err != nil {
		return models.Product{}, err
	}

	if previousImage != "" && previousImage != imageURL {
		jobs.CleanupImage(previousImage)
	}

	invalidateCatalog(ctx)
	notify.Success(s.notifier, "Produto atualizado com sucesso!")
	return updated, nil
}

// ToggleShowcase flips the product's public visibility, write-then-project.
func (s *ProductService) ToggleShowcase(ctx context.Context, p *models.Product) error {
	next := !p.InShowcase

	if err := s.products.Update(ctx, p.ID, bson.M{"inShowcase": next}); err != nil {
		notify.Error(s.notifier, "Erro ao atualizar a vitrine.")
		return err
	}
	p.InShowcase = next

	invalidateCatalog(ctx)
	if next {
		notify.Success(s.notifier, "Produto adicionado à vitrine!")
	} else {
		notify.Success(s.notifier, "Produto removido da vitrine.")
	}
	return nil
}

// Delete removes the product permanently. Sales keep their snapshots, so
// ledger history survives the deletion; the stored image is cleaned up in
// the background.
func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) error {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		notify.Error(s.notifier, "Erro ao excluir produto.")
		return err
	}

	jobs.CleanupImage(p.Image)
	invalidateCatalog(ctx)
	notify.Success(s.notifier, "Produto excluído com sucesso!")
	return nil
}

// List returns every product ordered by name, for the back-office.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.All(ctx, "name")
}

// Find resolves one product from its hex id.
func (s *ProductService) Find(ctx context.Context, hexID string) (models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return models.Product{}, fmt.Errorf("services: bad product id %q: %w", hexID, err)
	}
	return s.products.FindByID(ctx, oid)
}

// safeFilename flattens a client-supplied filename into something safe to
// embed in a storage key.
func safeFilename(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "-")
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "upload"
	}
	return base
}
