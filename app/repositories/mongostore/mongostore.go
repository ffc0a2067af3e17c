// Package mongostore implements the repositories over MongoDB collections.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/Rakhulsr/go-seller-ms/app/models"
	"github.com/Rakhulsr/go-seller-ms/app/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collProducts   = "products"
	collBundles    = "bundles"
	collCategories = "categories"
	collUsers      = "users"
	collSellers    = "sellers"
	collDiscounts  = "discounts"
	collSales      = "sales"
	collCarts      = "carts"
	collWishlists  = "wishlists"
)

func New(db *mongo.Database) *repositories.Store {
	return &repositories.Store{
		Products:   &productRepository{coll: db.Collection(collProducts), categories: db.Collection(collCategories)},
		Bundles:    &bundleRepository{coll: db.Collection(collBundles)},
		Categories: &categoryRepository{coll: db.Collection(collCategories)},
		Users:      &userRepository{coll: db.Collection(collUsers)},
		Sellers:    &sellerRepository{coll: db.Collection(collSellers)},
		Discounts:  &discountRepository{coll: db.Collection(collDiscounts)},
		Sales:      &saleRepository{coll: db.Collection(collSales)},
		Carts:      &itemListRepository{coll: db.Collection(collCarts)},
		Wishlists:  &wishlistRepository{itemListRepository{coll: db.Collection(collWishlists)}},
	}
}

// EnsureIndexes creates the lookup indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		collProducts:   {{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "isActive", Value: 1}}}},
		collBundles:    {{Keys: bson.D{{Key: "sellerId", Value: 1}}}, {Keys: bson.D{{Key: "products.productId", Value: 1}}}},
		collCategories: {{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)}},
		collSellers:    {{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)}},
		collSales:      {{Keys: bson.D{{Key: "affectedProducts.productId", Value: 1}}}},
		collCarts:      {{Keys: bson.D{{Key: "items.productId", Value: 1}}}, {Keys: bson.D{{Key: "items.bundleId", Value: 1}}}},
		collWishlists:  {{Keys: bson.D{{Key: "items.productId", Value: 1}}}, {Keys: bson.D{{Key: "items.bundleId", Value: 1}}}},
	}
	for name, idx := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}

func byID(id string) bson.M {
	return bson.M{"_id": id}
}

func nameSearch(filter bson.M, search string) bson.M {
	if search != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(search), "$options": "i"}
	}
	return filter
}

func findOptions(q repositories.ListQuery) *options.FindOptions {
	q = q.Normalize()
	dir := 1
	if q.Descending() {
		dir = -1
	}
	return options.Find().
		SetSort(bson.D{{Key: q.SortBy, Value: dir}}).
		SetSkip(int64(q.Offset())).
		SetLimit(int64(q.Limit))
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter interface{}) (*T, error) {
	var out T
	if err := coll.FindOne(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func listPage[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, q repositories.ListQuery) ([]T, int64, error) {
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count %s: %w", coll.Name(), err)
	}
	items, err := findAll[T](ctx, coll, filter, findOptions(q))
	return items, total, err
}

func replace(ctx context.Context, coll *mongo.Collection, id string, doc interface{}) error {
	_, err := coll.ReplaceOne(ctx, byID(id), doc, options.Replace().SetUpsert(true))
	return err
}

func inactiveIDs(ctx context.Context, coll *mongo.Collection) ([]string, error) {
	raw, err := coll.Distinct(ctx, "_id", bson.M{"isActive": false})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type productRepository struct {
	coll       *mongo.Collection
	categories *mongo.Collection
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	_, err := r.coll.InsertOne(ctx, product)
	return err
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := findOne[models.Product](ctx, r.coll, byID(id))
	if err != nil || product == nil {
		return product, err
	}
	category, err := findOne[models.Category](ctx, r.categories, byID(product.CategoryID))
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	product.Category = category
	return product, nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	return findAll[models.Product](ctx, r.coll, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	return replace(ctx, r.coll, product.ID, product)
}

func (r *productRepository) List(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, int64, error) {
	query := nameSearch(bson.M{"userId": filter.UserID, "isActive": true}, filter.Search)
	return listPage[models.Product](ctx, r.coll, query, filter.ListQuery)
}

func (r *productRepository) ListInactiveIDs(ctx context.Context) ([]string, error) {
	return inactiveIDs(ctx, r.coll)
}

type bundleRepository struct {
	coll *mongo.Collection
}

func (r *bundleRepository) Create(ctx context.Context, bundle *models.Bundle) error {
	_, err := r.coll.InsertOne(ctx, bundle)
	return err
}

func (r *bundleRepository) GetByID(ctx context.Context, id string) (*models.Bundle, error) {
	return findOne[models.Bundle](ctx, r.coll, byID(id))
}

func (r *bundleRepository) Update(ctx context.Context, bundle *models.Bundle) error {
	return replace(ctx, r.coll, bundle.ID, bundle)
}

func (r *bundleRepository) List(ctx context.Context, filter repositories.BundleFilter) ([]models.Bundle, int64, error) {
	query := nameSearch(bson.M{"sellerId": filter.SellerID, "isActive": true}, filter.Search)
	return listPage[models.Bundle](ctx, r.coll, query, filter.ListQuery)
}

func (r *bundleRepository) FindContainingProduct(ctx context.Context, productID string) ([]models.Bundle, error) {
	return findAll[models.Bundle](ctx, r.coll, bson.M{"products.productId": productID})
}

func (r *bundleRepository) ListInactiveIDs(ctx context.Context) ([]string, error) {
	return inactiveIDs(ctx, r.coll)
}

type categoryRepository struct {
	coll *mongo.Collection
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	_, err := r.coll.InsertOne(ctx, category)
	return err
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	return findOne[models.Category](ctx, r.coll, byID(id))
}

func (r *categoryRepository) List(ctx context.Context, query repositories.ListQuery) ([]models.Category, int64, error) {
	query.SortBy = repositories.SortByName
	return listPage[models.Category](ctx, r.coll, nameSearch(bson.M{"isActive": true}, query.Search), query)
}

type userRepository struct {
	coll *mongo.Collection
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	_, err := r.coll.InsertOne(ctx, user)
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return findOne[models.User](ctx, r.coll, byID(id))
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return replace(ctx, r.coll, user.ID, user)
}

type sellerRepository struct {
	coll *mongo.Collection
}

func (r *sellerRepository) Create(ctx context.Context, seller *models.Seller) error {
	_, err := r.coll.InsertOne(ctx, seller)
	return err
}

func (r *sellerRepository) FindByID(ctx context.Context, id string) (*models.Seller, error) {
	return findOne[models.Seller](ctx, r.coll, byID(id))
}

func (r *sellerRepository) FindByUserID(ctx context.Context, userID string) (*models.Seller, error) {
	return findOne[models.Seller](ctx, r.coll, bson.M{"userId": userID})
}

func (r *sellerRepository) Update(ctx context.Context, seller *models.Seller) error {
	return replace(ctx, r.coll, seller.ID, seller)
}

type discountRepository struct {
	coll *mongo.Collection
}

func (r *discountRepository) GetByID(ctx context.Context, id string) (*models.Discount, error) {
	return findOne[models.Discount](ctx, r.coll, byID(id))
}

func (r *discountRepository) Save(ctx context.Context, discount *models.Discount) error {
	return replace(ctx, r.coll, discount.ID, discount)
}

type saleRepository struct {
	coll *mongo.Collection
}

func (r *saleRepository) Create(ctx context.Context, sale *models.Sale) error {
	_, err := r.coll.InsertOne(ctx, sale)
	return err
}

func (r *saleRepository) GetByID(ctx context.Context, id string) (*models.Sale, error) {
	return findOne[models.Sale](ctx, r.coll, byID(id))
}

func (r *saleRepository) Update(ctx context.Context, sale *models.Sale) error {
	return replace(ctx, r.coll, sale.ID, sale)
}

func (r *saleRepository) List(ctx context.Context, query repositories.ListQuery) ([]models.Sale, int64, error) {
	query.SortBy = repositories.SortByName
	return listPage[models.Sale](ctx, r.coll, nameSearch(bson.M{"isActive": true}, query.Search), query)
}

func (r *saleRepository) MarkItemUnavailable(ctx context.Context, productID string) (int64, error) {
	return markUnavailable(ctx, r.coll, "affectedProducts", "productId", productID)
}

// markUnavailable flags every matching element of an embedded array.
func markUnavailable(ctx context.Context, coll *mongo.Collection, array, key, id string) (int64, error) {
	res, err := coll.UpdateMany(ctx,
		bson.M{array + "." + key: id},
		bson.M{"$set": bson.M{array + ".$[el].isUnavailable": true}},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"el." + key: id}},
		}),
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func itemKey(kind models.ItemKind) (string, error) {
	switch kind {
	case models.ItemKindProduct:
		return "productId", nil
	case models.ItemKindBundle:
		return "bundleId", nil
	}
	return "", fmt.Errorf("unknown item kind %q", kind)
}

// itemListRepository serves carts; wishlists embed it for the shared update.
type itemListRepository struct {
	coll *mongo.Collection
}

func (r *itemListRepository) Create(ctx context.Context, cart *models.Cart) error {
	_, err := r.coll.InsertOne(ctx, cart)
	return err
}

func (r *itemListRepository) GetByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	return findOne[models.Cart](ctx, r.coll, bson.M{"userId": userID})
}

func (r *itemListRepository) MarkUnavailable(ctx context.Context, kind models.ItemKind, id string) (int64, error) {
	key, err := itemKey(kind)
	if err != nil {
		return 0, err
	}
	return markUnavailable(ctx, r.coll, "items", key, id)
}

type wishlistRepository struct {
	itemListRepository
}

func (r *wishlistRepository) Create(ctx context.Context, wishlist *models.Wishlist) error {
	_, err := r.coll.InsertOne(ctx, wishlist)
	return err
}

func (r *wishlistRepository) GetByUserID(ctx context.Context, userID string) (*models.Wishlist, error) {
	return findOne[models.Wishlist](ctx, r.coll, bson.M{"userId": userID})
}
