package services_test

import (
	"context"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lspratas/atelier/app/models"
	"github.com/lspratas/atelier/app/repositories"
	"github.com/lspratas/atelier/pkg/collection"
	"github.com/lspratas/atelier/pkg/notify"
)

// productFake is an in-memory ProductStore.
type productFake struct {
	mu    sync.Mutex
	items []models.Product

	updateErr error
	createErr error
	deleteErr error

	updates []bson.M
}

func newProductFake(items ...models.Product) *productFake {
	f := &productFake{}
	for _, p := range items {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		f.items = append(f.items, p)
	}
	return f
}

func (f *productFake) All(_ context.Context, orderBy string) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := append([]models.Product(nil), f.items...)
	if orderBy == "name" {
		out = collection.SortBy(out, func(a, b models.Product) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		})
	}
	return out, nil
}

func (f *productFake) Showcased(_ context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return collection.Filter(f.items, func(p models.Product) bool {
		return p.InShowcase
	}), nil
}

func (f *productFake) FindByID(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.items {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, repositories.ErrNotFound
}

func (f *productFake) Create(_ context.Context, p models.Product) (primitive.ObjectID, error) {
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	p.ID = primitive.NewObjectID()
	f.items = append(f.items, p)
	return p.ID, nil
}

func (f *productFake) Update(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	if f.updateErr != nil {
		return f.updateErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for i, p := range f.items {
		if p.ID != id {
			continue
		}
		for key, val := range fields {
			switch key {
			case "name":
				p.Name = val.(string)
			case "price":
				p.Price = val.(string)
			case "image":
				p.Image = val.(string)
			case "stock":
				p.Stock = val.(int)
			case "inShowcase":
				p.InShowcase = val.(bool)
			}
		}
		f.items[i] = p
		f.updates = append(f.updates, fields)
		return nil
	}
	return repositories.ErrNotFound
}

func (f *productFake) Delete(_ context.Context, id primitive.ObjectID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for i, p := range f.items {
		if p.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

// saleFake is an in-memory append-only SaleStore.
type saleFake struct {
	mu        sync.Mutex
	appended  []models.Sale
	appendErr error
}

func (f *saleFake) All(_ context.Context) ([]models.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Sale(nil), f.appended...), nil
}

func (f *saleFake) Append(_ context.Context, s models.Sale) (primitive.ObjectID, error) {
	if f.appendErr != nil {
		return primitive.NilObjectID, f.appendErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	s.ID = primitive.NewObjectID()
	f.appended = append(f.appended, s)
	return s.ID, nil
}

// noticeRecorder captures pushed notices for assertions.
type noticeRecorder struct {
	mu      sync.Mutex
	notices []notify.Notice
}

func (r *noticeRecorder) Push(n notify.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *noticeRecorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.notices))
	for i, n := range r.notices {
		out[i] = n.Message
	}
	return out
}

func (r *noticeRecorder) last() (notify.Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.notices) == 0 {
		return notify.Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}
