// Package memstore keeps every repository in process memory. It backs the
// "memory" store driver and the service tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Rakhulsr/go-seller-ms/app/models"
	"github.com/Rakhulsr/go-seller-ms/app/repositories"
)

type db struct {
	mu         sync.RWMutex
	products   map[string]models.Product
	bundles    map[string]models.Bundle
	categories map[string]models.Category
	users      map[string]models.User
	sellers    map[string]models.Seller
	discounts  map[string]models.Discount
	sales      map[string]models.Sale
	carts      map[string]models.Cart
	wishlists  map[string]models.Wishlist
}

func New() *repositories.Store {
	d := &db{
		products:   map[string]models.Product{},
		bundles:    map[string]models.Bundle{},
		categories: map[string]models.Category{},
		users:      map[string]models.User{},
		sellers:    map[string]models.Seller{},
		discounts:  map[string]models.Discount{},
		sales:      map[string]models.Sale{},
		carts:      map[string]models.Cart{},
		wishlists:  map[string]models.Wishlist{},
	}
	return &repositories.Store{
		Products:   &productRepository{d},
		Bundles:    &bundleRepository{d},
		Categories: &categoryRepository{d},
		Users:      &userRepository{d},
		Sellers:    &sellerRepository{d},
		Discounts:  &discountRepository{d},
		Sales:      &saleRepository{d},
		Carts:      &cartRepository{d},
		Wishlists:  &wishlistRepository{d},
	}
}

func matches(name, search string) bool {
	search = strings.TrimSpace(search)
	return search == "" || strings.Contains(strings.ToLower(name), strings.ToLower(search))
}

// page sorts and slices the candidates according to the query.
func page[T any](items []T, q repositories.ListQuery, less func(a, b T, sortBy string) bool) []T {
	q = q.Normalize()
	sort.SliceStable(items, func(i, j int) bool {
		if q.Descending() {
			return less(items[j], items[i], q.SortBy)
		}
		return less(items[i], items[j], q.SortBy)
	})
	start := q.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + q.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func copyProduct(p models.Product) models.Product {
	if p.Category != nil {
		c := *p.Category
		p.Category = &c
	}
	return p
}

func copyBundle(b models.Bundle) models.Bundle {
	b.Products = append([]models.BundleItem(nil), b.Products...)
	return b
}

func copySale(s models.Sale) models.Sale {
	s.Categories = append([]string(nil), s.Categories...)
	s.AffectedProducts = append([]models.SaleProduct(nil), s.AffectedProducts...)
	return s
}

func copyDiscount(d models.Discount) models.Discount {
	d.Products = append([]string(nil), d.Products...)
	d.Bundles = append([]string(nil), d.Bundles...)
	return d
}

type productRepository struct{ d *db }

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	stored := copyProduct(*product)
	stored.Category = nil
	r.d.products[product.ID] = stored
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	p, ok := r.d.products[id]
	if !ok {
		return nil, nil
	}
	p = copyProduct(p)
	if c, ok := r.d.categories[p.CategoryID]; ok {
		p.Category = &c
	}
	return &p, nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	products := []models.Product{}
	seen := map[string]bool{}
	for _, id := range ids {
		if p, ok := r.d.products[id]; ok && !seen[id] {
			seen[id] = true
			products = append(products, copyProduct(p))
		}
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	return r.Create(ctx, product)
}

func (r *productRepository) List(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	var candidates []models.Product
	for _, p := range r.d.products {
		if p.UserID == filter.UserID && p.IsActive && matches(p.Name, filter.Search) {
			p = copyProduct(p)
			if c, ok := r.d.categories[p.CategoryID]; ok {
				p.Category = &c
			}
			candidates = append(candidates, p)
		}
	}
	total := int64(len(candidates))
	return page(candidates, filter.ListQuery, func(a, b models.Product, sortBy string) bool {
		switch sortBy {
		case repositories.SortByMRP:
			return a.MRP.LessThan(b.MRP)
		case repositories.SortByCreatedAt:
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.Name < b.Name
	}), total, nil
}

func (r *productRepository) ListInactiveIDs(ctx context.Context) ([]string, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	ids := []string{}
	for id, p := range r.d.products {
		if !p.IsActive {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

type bundleRepository struct{ d *db }

func (r *bundleRepository) Create(ctx context.Context, bundle *models.Bundle) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	r.d.bundles[bundle.ID] = copyBundle(*bundle)
	return nil
}

func (r *bundleRepository) GetByID(ctx context.Context, id string) (*models.Bundle, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	b, ok := r.d.bundles[id]
	if !ok {
		return nil, nil
	}
	b = copyBundle(b)
	return &b, nil
}

func (r *bundleRepository) Update(ctx context.Context, bundle *models.Bundle) error {
	return r.Create(ctx, bundle)
}

func (r *bundleRepository) List(ctx context.Context, filter repositories.BundleFilter) ([]models.Bundle, int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	var candidates []models.Bundle
	for _, b := range r.d.bundles {
		if b.SellerID == filter.SellerID && b.IsActive && matches(b.Name, filter.Search) {
			candidates = append(candidates, copyBundle(b))
		}
	}
	total := int64(len(candidates))
	return page(candidates, filter.ListQuery, func(a, b models.Bundle, sortBy string) bool {
		switch sortBy {
		case repositories.SortByMRP:
			return a.MRP.LessThan(b.MRP)
		case repositories.SortByCreatedAt:
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.Name < b.Name
	}), total, nil
}

func (r *bundleRepository) FindContainingProduct(ctx context.Context, productID string) ([]models.Bundle, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	bundles := []models.Bundle{}
	for _, b := range r.d.bundles {
		for _, item := range b.Products {
			if item.ProductID == productID {
				bundles = append(bundles, copyBundle(b))
				break
			}
		}
	}
	sort.Slice(bundles, func(i, j int) bool { return bundles[i].ID < bundles[j].ID })
	return bundles, nil
}

func (r *bundleRepository) ListInactiveIDs(ctx context.Context) ([]string, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	ids := []string{}
	for id, b := range r.d.bundles {
		if !b.IsActive {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

type categoryRepository struct{ d *db }

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	r.d.categories[category.ID] = *category
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	c, ok := r.d.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *categoryRepository) List(ctx context.Context, query repositories.ListQuery) ([]models.Category, int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	var candidates []models.Category
	for _, c := range r.d.categories {
		if c.IsActive && matches(c.Name, query.Search) {
			candidates = append(candidates, c)
		}
	}
	total := int64(len(candidates))
	return page(candidates, query, func(a, b models.Category, _ string) bool {
		return a.Name < b.Name
	}), total, nil
}

type userRepository struct{ d *db }

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	r.d.users[user.ID] = *user
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	u, ok := r.d.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.Create(ctx, user)
}

type sellerRepository struct{ d *db }

func (r *sellerRepository) Create(ctx context.Context, seller *models.Seller) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	r.d.sellers[seller.ID] = *seller
	return nil
}

func (r *sellerRepository) FindByID(ctx context.Context, id string) (*models.Seller, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	s, ok := r.d.sellers[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *sellerRepository) FindByUserID(ctx context.Context, userID string) (*models.Seller, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	for _, s := range r.d.sellers {
		if s.UserID == userID {
			return &s, nil
		}
	}
	return nil, nil
}

func (r *sellerRepository) Update(ctx context.Context, seller *models.Seller) error {
	return r.Create(ctx, seller)
}

type discountRepository struct{ d *db }

func (r *discountRepository) GetByID(ctx context.Context, id string) (*models.Discount, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	d, ok := r.d.discounts[id]
	if !ok {
		return nil, nil
	}
	d = copyDiscount(d)
	return &d, nil
}

func (r *discountRepository) Save(ctx context.Context, discount *models.Discount) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	r.d.discounts[discount.ID] = copyDiscount(*discount)
	return nil
}

type saleRepository struct{ d *db }

func (r *saleRepository) Create(ctx context.Context, sale *models.Sale) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	r.d.sales[sale.ID] = copySale(*sale)
	return nil
}

func (r *saleRepository) GetByID(ctx context.Context, id string) (*models.Sale, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	s, ok := r.d.sales[id]
	if !ok {
		return nil, nil
	}
	s = copySale(s)
	return &s, nil
}

func (r *saleRepository) Update(ctx context.Context, sale *models.Sale) error {
	return r.Create(ctx, sale)
}

func (r *saleRepository) List(ctx context.Context, query repositories.ListQuery) ([]models.Sale, int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	var candidates []models.Sale
	for _, s := range r.d.sales {
		if s.IsActive && matches(s.Name, query.Search) {
			candidates = append(candidates, copySale(s))
		}
	}
	total := int64(len(candidates))
	return page(candidates, query, func(a, b models.Sale, _ string) bool {
		return a.Name < b.Name
	}), total, nil
}

func (r *saleRepository) MarkItemUnavailable(ctx context.Context, productID string) (int64, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	var affected int64
	for id, s := range r.d.sales {
		s = copySale(s)
		changed := false
		for i := range s.AffectedProducts {
			if s.AffectedProducts[i].ProductID == productID && !s.AffectedProducts[i].IsUnavailable {
				s.AffectedProducts[i].IsUnavailable = true
				affected++
				changed = true
			}
		}
		if changed {
			r.d.sales[id] = s
		}
	}
	return affected, nil
}

type cartRepository struct{ d *db }

func (r *cartRepository) Create(ctx context.Context, cart *models.Cart) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	c := *cart
	c.Items = append([]models.CartItem(nil), cart.Items...)
	r.d.carts[cart.ID] = c
	return nil
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	for _, c := range r.d.carts {
		if c.UserID == userID {
			c.Items = append([]models.CartItem(nil), c.Items...)
			return &c, nil
		}
	}
	return nil, nil
}

func (r *cartRepository) MarkUnavailable(ctx context.Context, kind models.ItemKind, id string) (int64, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	var affected int64
	for cartID, c := range r.d.carts {
		items := append([]models.CartItem(nil), c.Items...)
		changed := false
		for i := range items {
			if items[i].Refers(kind, id) && !items[i].IsUnavailable {
				items[i].IsUnavailable = true
				affected++
				changed = true
			}
		}
		if changed {
			c.Items = items
			r.d.carts[cartID] = c
		}
	}
	return affected, nil
}

type wishlistRepository struct{ d *db }

func (r *wishlistRepository) Create(ctx context.Context, wishlist *models.Wishlist) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	w := *wishlist
	w.Items = append([]models.WishlistItem(nil), wishlist.Items...)
	r.d.wishlists[wishlist.ID] = w
	return nil
}

func (r *wishlistRepository) GetByUserID(ctx context.Context, userID string) (*models.Wishlist, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	for _, w := range r.d.wishlists {
		if w.UserID == userID {
			w.Items = append([]models.WishlistItem(nil), w.Items...)
			return &w, nil
		}
	}
	return nil, nil
}

func (r *wishlistRepository) MarkUnavailable(ctx context.Context, kind models.ItemKind, id string) (int64, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	var affected int64
	for wishlistID, w := range r.d.wishlists {
		items := append([]models.WishlistItem(nil), w.Items...)
		changed := false
		for i := range items {
			if items[i].Refers(kind, id) && !items[i].IsUnavailable {
				items[i].IsUnavailable = true
				affected++
				changed = true
			}
		}
		if changed {
			w.Items = items
			r.d.wishlists[wishlistID] = w
		}
	}
	return affected, nil
}
