package services

import (
	"context"
	"strings"

	"github.com/Rakhulsr/go-seller-ms/app/helpers"
	"github.com/Rakhulsr/go-seller-ms/app/models"
	"github.com/Rakhulsr/go-seller-ms/app/repositories"
	"github.com/Rakhulsr/go-seller-ms/app/utils/apperror"
	"github.com/Rakhulsr/go-seller-ms/app/utils/calc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type BundleLineInput struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type CreateBundleInput struct {
	Name           string            `json:"name" validate:"required"`
	Description    string            `json:"description" validate:"required"`
	Stock          *int              `json:"stock" validate:"required,min=0"`
	SellerDiscount *decimal.Decimal  `json:"sellerDiscount"`
	Products       []BundleLineInput `json:"products" validate:"required,min=1,unique=ProductID,dive"`
}

type UpdateBundleInput struct {
	Name           string            `json:"name" validate:"required"`
	Description    string            `json:"description" validate:"required"`
	Stock          *int              `json:"stock" validate:"omitempty,min=0"`
	SellerDiscount *decimal.Decimal  `json:"sellerDiscount"`
	Products       []BundleLineInput `json:"products" validate:"required,min=1,unique=ProductID,dive"`
	IsActive       *bool             `json:"isActive"`
}

type BundleDeleteResult struct {
	Bundle  *models.Bundle `json:"bundle"`
	Cascade SweepReport    `json:"cascade"`
}

type BundleOptions struct {
	// AlwaysReprice recomputes MRP and the seller layer on every update
	// instead of only when a positive seller discount is supplied.
	AlwaysReprice bool
}

type BundleService struct {
	store       *repositories.Store
	pricer      pricer
	invalidator *InvalidationService
	opts        BundleOptions
	log         logrus.FieldLogger
}

func NewBundleService(store *repositories.Store, invalidator *InvalidationService, opts BundleOptions, log logrus.FieldLogger) *BundleService {
	return &BundleService{
		store:       store,
		pricer:      pricer{discounts: store.Discounts},
		invalidator: invalidator,
		opts:        opts,
		log:         log,
	}
}

type memberCheck int

const (
	checkBlocked memberCheck = 1 << iota
	checkInactive
	checkOwner
	checkStock
)

// validateMembers checks lines in a fixed order and fails on the first
// category that has offenders, listing every offending id of that category.
func (s *BundleService) validateMembers(ctx context.Context, ownerID string, lines []BundleLineInput, checks memberCheck) (map[string]models.Product, error) {
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.store.Products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Internal("failed to load bundle products", err)
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var missing, blocked, unavailable, outOfStock []string
	for _, line := range lines {
		p, ok := byID[line.ProductID]
		switch {
		case !ok:
			missing = append(missing, line.ProductID)
		case checks&checkBlocked != 0 && p.IsBlocked:
			blocked = append(blocked, p.ID)
		case checks&checkInactive != 0 && !p.IsActive,
			checks&checkOwner != 0 && p.UserID != ownerID:
			unavailable = append(unavailable, p.ID)
		case checks&checkStock != 0 && p.Stock < line.Quantity:
			outOfStock = append(outOfStock, p.ID)
		}
	}

	switch {
	case len(missing) > 0:
		return nil, apperror.NotFound("some products were not found").WithDetails(map[string][]string{"productIds": missing})
	case len(blocked) > 0:
		return nil, apperror.Forbidden("some products are blocked").WithDetails(map[string][]string{"productIds": blocked})
	case len(unavailable) > 0:
		return nil, apperror.Forbidden("some products are inactive or not owned by you").WithDetails(map[string][]string{"productIds": unavailable})
	case len(outOfStock) > 0:
		return nil, apperror.Validation("some products are out of stock").WithDetails(map[string][]string{"productIds": outOfStock})
	}
	return byID, nil
}

func snapshotLines(lines []BundleLineInput, products map[string]models.Product) ([]models.BundleItem, decimal.Decimal) {
	items := make([]models.BundleItem, 0, len(lines))
	prices := make([]decimal.Decimal, 0, len(lines))
	quantities := make([]int, 0, len(lines))
	for _, line := range lines {
		p := products[line.ProductID]
		items = append(items, models.BundleItem{
			ProductID: p.ID,
			Name:      p.Name,
			MRP:       p.MRP,
			Quantity:  line.Quantity,
		})
		prices = append(prices, p.MRP)
		quantities = append(quantities, line.Quantity)
	}
	return items, calc.BundleMRP(prices, quantities)
}

func (s *BundleService) Create(ctx context.Context, userID string, in CreateBundleInput) (*models.Bundle, error) {
	if err := helpers.ValidateStruct(in); err != nil {
		return nil, err
	}
	if err := validatePercent("sellerDiscount", in.SellerDiscount); err != nil {
		return nil, err
	}
	if _, err := requireActiveUser(ctx, s.store.Users, userID); err != nil {
		return nil, err
	}

	products, err := s.validateMembers(ctx, userID, in.Products, checkBlocked|checkInactive|checkOwner|checkStock)
	if err != nil {
		return nil, err
	}

	items, mrp := snapshotLines(in.Products, products)
	ts := now()
	bundle := &models.Bundle{
		ID:          uuid.New().String(),
		SellerID:    userID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Products:    items,
		MRP:         mrp,
		Stock:       *in.Stock,
		IsActive:    true,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if in.SellerDiscount != nil {
		bundle.SellerDiscount = *in.SellerDiscount
	}
	if err := s.pricer.priceBundle(ctx, bundle, true); err != nil {
		return nil, err
	}

	if err := s.store.Bundles.Create(ctx, bundle); err != nil {
		s.log.WithError(err).Error("Create: failed to store bundle")
		return nil, apperror.Internal("failed to create bundle", err)
	}
	s.log.WithFields(logrus.Fields{"bundle_id": bundle.ID, "user_id": userID}).Info("bundle created")
	return bundle, nil
}

func (s *BundleService) Update(ctx context.Context, userID, bundleID string, in UpdateBundleInput) (*models.Bundle, error) {
	if err := helpers.ValidateStruct(in); err != nil {
		return nil, err
	}
	if err := validatePercent("sellerDiscount", in.SellerDiscount); err != nil {
		return nil, err
	}

	bundle, err := s.store.Bundles.GetByID(ctx, bundleID)
	if err != nil {
		return nil, apperror.Internal("failed to load bundle", err)
	}
	if bundle == nil {
		return nil, apperror.NotFound("bundle not found")
	}
	if bundle.Deleted() {
		return nil, apperror.Conflict("bundle has been deleted")
	}
	if bundle.SellerID != userID {
		return nil, apperror.Forbidden("bundle belongs to another seller")
	}
	if _, err := requireActiveUser(ctx, s.store.Users, userID); err != nil {
		return nil, err
	}

	// Updates only re-check existence, blocked and inactive members.
	products, err := s.validateMembers(ctx, userID, in.Products, checkBlocked|checkInactive)
	if err != nil {
		return nil, err
	}

	items, mrp := snapshotLines(in.Products, products)
	bundle.Name = strings.TrimSpace(in.Name)
	bundle.Description = in.Description
	bundle.Products = items
	if in.Stock != nil {
		bundle.Stock = *in.Stock
	}
	if in.IsActive != nil {
		bundle.IsActive = *in.IsActive
	}

	reprice := s.opts.AlwaysReprice || (in.SellerDiscount != nil && in.SellerDiscount.IsPositive())
	if reprice {
		if in.SellerDiscount != nil {
			bundle.SellerDiscount = *in.SellerDiscount
		}
		bundle.MRP = mrp
	}
	if err := s.pricer.priceBundle(ctx, bundle, reprice); err != nil {
		return nil, err
	}
	bundle.UpdatedAt = now()

	if err := s.store.Bundles.Update(ctx, bundle); err != nil {
		s.log.WithError(err).WithField("bundle_id", bundleID).Error("Update: failed to store bundle")
		return nil, apperror.Internal("failed to update bundle", err)
	}
	return bundle, nil
}

func (s *BundleService) Get(ctx context.Context, bundleID string) (*models.Bundle, error) {
	bundle, err := s.store.Bundles.GetByID(ctx, bundleID)
	if err != nil {
		return nil, apperror.Internal("failed to load bundle", err)
	}
	if bundle == nil || bundle.Deleted() {
		return nil, apperror.NotFound("bundle not found")
	}
	if _, err := requireActiveUser(ctx, s.store.Users, bundle.SellerID); err != nil {
		return nil, err
	}
	return bundle, nil
}

func (s *BundleService) List(ctx context.Context, userID string, q repositories.ListQuery) (Page[models.Bundle], error) {
	if _, err := requireActiveUser(ctx, s.store.Users, userID); err != nil {
		return Page[models.Bundle]{}, err
	}
	bundles, total, err := s.store.Bundles.List(ctx, repositories.BundleFilter{SellerID: userID, ListQuery: q})
	if err != nil {
		return Page[models.Bundle]{}, apperror.Internal("failed to list bundles", err)
	}
	return newPage(bundles, total, q), nil
}

func (s *BundleService) SoftDelete(ctx context.Context, userID, bundleID string) (*BundleDeleteResult, error) {
	bundle, err := s.store.Bundles.GetByID(ctx, bundleID)
	if err != nil {
		return nil, apperror.Internal("failed to load bundle", err)
	}
	if bundle == nil {
		return nil, apperror.NotFound("bundle not found")
	}
	if bundle.SellerID != userID {
		return nil, apperror.Forbidden("bundle belongs to another seller")
	}
	if _, err := requireActiveUser(ctx, s.store.Users, userID); err != nil {
		return nil, err
	}
	if bundle.Deleted() {
		return nil, apperror.Conflict("AlreadyDeleted: bundle is already deleted")
	}

	bundle.IsActive = false
	bundle.IsUnavailable = true
	bundle.UpdatedAt = now()
	if err := s.store.Bundles.Update(ctx, bundle); err != nil {
		return nil, apperror.Internal("failed to delete bundle", err)
	}

	report := s.invalidator.Sweep(ctx, models.ItemKindBundle, bundle.ID)
	return &BundleDeleteResult{Bundle: bundle, Cascade: report}, nil
}
