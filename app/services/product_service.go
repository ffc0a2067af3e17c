package services

import (
	"context"
	"strings"

	"github.com/Rakhulsr/go-seller-ms/app/helpers"
	"github.com/Rakhulsr/go-seller-ms/app/models"
	"github.com/Rakhulsr/go-seller-ms/app/repositories"
	"github.com/Rakhulsr/go-seller-ms/app/utils/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type CreateProductInput struct {
	Name                  string           `json:"name" validate:"required"`
	Description           string           `json:"description" validate:"required"`
	MRP                   *decimal.Decimal `json:"MRP" validate:"required"`
	Stock                 *int             `json:"stock" validate:"required,min=0"`
	CategoryID            string           `json:"categoryId" validate:"required,uuid"`
	SellerDiscountApplied *decimal.Decimal `json:"sellerDiscountApplied"`
	IsActive              *bool            `json:"isActive"`
	IsUnavailable         *bool            `json:"isUnavailable"`
}

type UpdateProductInput struct {
	Name                  *string          `json:"name"`
	Description           *string          `json:"description"`
	MRP                   *decimal.Decimal `json:"MRP"`
	Stock                 *int             `json:"stock" validate:"omitempty,min=0"`
	CategoryID            *string          `json:"categoryId" validate:"omitempty,uuid"`
	SellerDiscountApplied *decimal.Decimal `json:"sellerDiscountApplied"`
	IsActive              *bool            `json:"isActive"`
	IsUnavailable         *bool            `json:"isUnavailable"`
}

func (in UpdateProductInput) empty() bool {
	return in.Name == nil && in.Description == nil && in.MRP == nil && in.Stock == nil &&
		in.CategoryID == nil && in.SellerDiscountApplied == nil && in.IsActive == nil && in.IsUnavailable == nil
}

type ProductDeleteResult struct {
	Product *models.Product `json:"product"`
	Cascade SweepReport     `json:"cascade"`
}

type ProductService struct {
	store       *repositories.Store
	pricer      pricer
	invalidator *InvalidationService
	log         logrus.FieldLogger
}

func NewProductService(store *repositories.Store, invalidator *InvalidationService, log logrus.FieldLogger) *ProductService {
	return &ProductService{
		store:       store,
		pricer:      pricer{discounts: store.Discounts},
		invalidator: invalidator,
		log:         log,
	}
}

func validateMRP(mrp *decimal.Decimal) error {
	if mrp != nil && !mrp.IsPositive() {
		return apperror.Validation("invalid MRP").WithDetails(map[string]string{"MRP": "MRP must be greater than 0."})
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, userID string, in CreateProductInput) (*models.Product, error) {
	if err := helpers.ValidateStruct(in); err != nil {
		return nil, err
	}
	if err := validateMRP(in.MRP); err != nil {
		return nil, err
	}
	if err := validatePercent("sellerDiscountApplied", in.SellerDiscountApplied); err != nil {
		return nil, err
	}

	if _, err := requireActiveUser(ctx, s.store.Users, userID); err != nil {
		return nil, err
	}

	category, err := s.store.Categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, apperror.Internal("failed to load category", err)
	}
	if category == nil {
		return nil, apperror.NotFound("category not found")
	}

	ts := now()
	product := &models.Product{
		ID:                    uuid.New().String(),
		UserID:                userID,
		Name:                  strings.TrimSpace(in.Name),
		Description:           in.Description,
		MRP:                   *in.MRP,
		Stock:                 *in.Stock,
		CategoryID:            category.ID,
		SellerDiscountApplied: nullable(in.SellerDiscountApplied),
		IsActive:              true,
		CreatedAt:             ts,
		UpdatedAt:             ts,
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if in.IsUnavailable != nil {
		product.IsUnavailable = *in.IsUnavailable
	}

	if err := s.pricer.priceProduct(ctx, product); err != nil {
		return nil, err
	}

	if err := s.store.Products.Create(ctx, product); err != nil {
		s.log.WithError(err).Error("Create: failed to store product")
		return nil, apperror.Internal("failed to create product", err)
	}
	product.Category = category

	s.log.WithFields(logrus.Fields{"product_id": product.ID, "user_id": userID}).Info("product created")
	return product, nil
}

// loadOwned fetches a product and enforces ownership and owner status.
func (s *ProductService) loadOwned(ctx context.Context, userID, productID string) (*models.Product, error) {
	product, err := s.store.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, apperror.Internal("failed to load product", err)
	}
	if product == nil {
		return nil, apperror.NotFound("product not found")
	}
	if product.UserID != userID {
		return nil, apperror.Forbidden("product belongs to another seller")
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, userID, productID string, in UpdateProductInput) (*models.Product, error) {
	if in.empty() {
		return nil, apperror.Validation("at least one field must be provided")
	}
	if err := helpers.ValidateStruct(in); err != nil {
		return nil, err
	}
	details := map[string]string{}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		details["name"] = "name must not be empty."
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) == "" {
		details["description"] = "description must not be empty."
	}
	if len(details) > 0 {
		return nil, apperror.Validation("request validation failed").WithDetails(details)
	}
	if err := validateMRP(in.MRP); err != nil {
		return nil, err
	}
	if err := validatePercent("sellerDiscountApplied", in.SellerDiscountApplied); err != nil {
		return nil, err
	}

	product, err := s.loadOwned(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if product.IsBlocked {
		return nil, apperror.Forbidden("product is blocked")
	}
	if _, err := requireActiveUser(ctx, s.store.Users, userID); err != nil {
		return nil, err
	}

	if in.CategoryID != nil && *in.CategoryID != product.CategoryID {
		category, err := s.store.Categories.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, apperror.Internal("failed to load category", err)
		}
		if category == nil {
			return nil, apperror.NotFound("category not found")
		}
		if !category.IsActive {
			return nil, apperror.Validation("category is inactive")
		}
		product.CategoryID = category.ID
		product.Category = category
	}

	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.MRP != nil {
		product.MRP = *in.MRP
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.SellerDiscountApplied != nil {
		product.SellerDiscountApplied = nullable(in.SellerDiscountApplied)
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if in.IsUnavailable != nil {
		product.IsUnavailable = *in.IsUnavailable
	}

	if err := s.pricer.priceProduct(ctx, product); err != nil {
		return nil, err
	}
	product.UpdatedAt = now()

	if err := s.store.Products.Update(ctx, product); err != nil {
		s.log.WithError(err).WithField("product_id", productID).Error("Update: failed to store product")
		return nil, apperror.Internal("failed to update product", err)
	}
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, productID string) (*models.Product, error) {
	product, err := s.store.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, apperror.Internal("failed to load product", err)
	}
	if product == nil || product.Deleted() {
		return nil, apperror.NotFound("product not found")
	}
	if _, err := requireActiveUser(ctx, s.store.Users, product.UserID); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, userID string, q repositories.ListQuery) (Page[models.Product], error) {
	if _, err := requireActiveUser(ctx, s.store.Users, userID); err != nil {
		return Page[models.Product]{}, err
	}
	products, total, err := s.store.Products.List(ctx, repositories.ProductFilter{UserID: userID, ListQuery: q})
	if err != nil {
		return Page[models.Product]{}, apperror.Internal("failed to list products", err)
	}
	return newPage(products, total, q), nil
}

// SoftDelete deactivates the product and sweeps its dependents. Sweep
// failures are reported in the result, never rolled back.
func (s *ProductService) SoftDelete(ctx context.Context, userID, productID string) (*ProductDeleteResult, error) {
	product, err := s.loadOwned(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if _, err := requireActiveUser(ctx, s.store.Users, userID); err != nil {
		return nil, err
	}
	if product.Deleted() {
		return nil, apperror.Conflict("AlreadyDeleted: product is already deleted")
	}

	product.IsActive = false
	product.IsUnavailable = true
	product.UpdatedAt = now()
	if err := s.store.Products.Update(ctx, product); err != nil {
		return nil, apperror.Internal("failed to delete product", err)
	}

	report := s.invalidator.Sweep(ctx, models.ItemKindProduct, product.ID)
	return &ProductDeleteResult{Product: product, Cascade: report}, nil
}
