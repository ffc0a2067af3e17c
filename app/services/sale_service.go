package services

import (
	"context"

	"github.com/Rakhulsr/go-seller-ms/app/helpers"
	"github.com/Rakhulsr/go-seller-ms/app/models"
	"github.com/Rakhulsr/go-seller-ms/app/repositories"
	"github.com/Rakhulsr/go-seller-ms/app/utils/apperror"
	"github.com/Rakhulsr/go-seller-ms/app/utils/calc"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type SaleProductsInput struct {
	ProductIDs []string `json:"productIds" validate:"required,min=1"`
}

type SaleItemFailure struct {
	ProductID string            `json:"productId"`
	Category  apperror.Category `json:"category"`
	Reason    string            `json:"reason"`
}

type SaleAddResult struct {
	Sale     *models.Sale      `json:"sale"`
	Added    []string          `json:"added"`
	Failures []SaleItemFailure `json:"failures"`
}

// Partial reports whether some requested products could not be added.
func (r *SaleAddResult) Partial() bool {
	return len(r.Failures) > 0
}

type SaleRemoveResult struct {
	Sale      *models.Sale `json:"sale"`
	Removed   []string     `json:"removed"`
	NotInSale []string     `json:"notInSale"`
}

type SaleService struct {
	store *repositories.Store
	log   logrus.FieldLogger
}

// saleState is a product's sale fields before a write, used to undo
// product updates when the sale itself cannot be saved.
type saleState struct {
	product     *models.Product
	saleApplied bool
	finalePrice decimal.NullDecimal
}

func snapshotSaleState(p *models.Product) saleState {
	return saleState{product: p, saleApplied: p.SaleApplied, finalePrice: p.FinalePrice}
}

func (s *SaleService) restore(ctx context.Context, saleID string, states []saleState) {
	for _, st := range states {
		st.product.SaleApplied = st.saleApplied
		st.product.FinalePrice = st.finalePrice
		st.product.UpdatedAt = now()
		if err := s.store.Products.Update(ctx, st.product); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{"sale_id": saleID, "product_id": st.product.ID}).Error("failed to restore product sale state")
		}
	}
}

func NewSaleService(store *repositories.Store, log logrus.FieldLogger) *SaleService {
	return &SaleService{store: store, log: log}
}

// prepare validates ids, the caller and the sale shared by add and remove.
func (s *SaleService) prepare(ctx context.Context, userID, saleID string, in SaleProductsInput) (*models.Sale, error) {
	if err := helpers.ValidateStruct(in); err != nil {
		return nil, err
	}
	if invalid := helpers.InvalidUUIDs(append([]string{saleID}, in.ProductIDs...)...); len(invalid) > 0 {
		return nil, apperror.Validation("malformed ids").WithDetails(map[string][]string{"invalidIds": invalid})
	}
	if _, err := requireActiveUser(ctx, s.store.Users, userID); err != nil {
		return nil, err
	}
	sale, err := s.store.Sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, apperror.Internal("failed to load sale", err)
	}
	if sale == nil || !sale.IsActive {
		return nil, apperror.NotFound("sale not found")
	}
	return sale, nil
}

func (s *SaleService) AddProducts(ctx context.Context, userID, saleID string, in SaleProductsInput) (*SaleAddResult, error) {
	sale, err := s.prepare(ctx, userID, saleID, in)
	if err != nil {
		return nil, err
	}
	if sale.Expired(now()) {
		return nil, apperror.Validation("sale has already ended")
	}

	fetched, err := s.store.Products.GetByIDs(ctx, in.ProductIDs)
	if err != nil {
		return nil, apperror.Internal("failed to load products", err)
	}
	eligible := make(map[string]bool, len(fetched))
	var products []models.Product
	for _, p := range fetched {
		if p.IsActive && !p.IsBlocked {
			products = append(products, p)
			eligible[p.ID] = true
		}
	}
	if len(products) == 0 {
		return nil, apperror.NotFound("no active products found")
	}

	var foreign, wrongCategory []string
	for _, p := range products {
		if p.UserID != userID {
			foreign = append(foreign, p.ID)
		}
		if !sale.HasCategory(p.CategoryID) {
			wrongCategory = append(wrongCategory, p.ID)
		}
	}
	if len(foreign) > 0 {
		return nil, apperror.Forbidden("some products are not owned by you").WithDetails(map[string][]string{"productIds": foreign})
	}
	if len(wrongCategory) > 0 {
		return nil, apperror.Validation("some products are outside the sale categories").WithDetails(map[string][]string{"productIds": wrongCategory})
	}

	result := &SaleAddResult{Sale: sale, Added: []string{}, Failures: []SaleItemFailure{}}
	var written []saleState
	for _, id := range in.ProductIDs {
		if !eligible[id] {
			result.Failures = append(result.Failures, SaleItemFailure{
				ProductID: id, Category: apperror.CategoryNotFound, Reason: "product not found or unavailable",
			})
		}
	}

	for i := range products {
		p := &products[i]
		switch {
		case sale.HasProduct(p.ID):
			result.Failures = append(result.Failures, SaleItemFailure{
				ProductID: p.ID, Category: apperror.CategoryConflict, Reason: "product is already in this sale",
			})
			continue
		case p.SaleApplied:
			result.Failures = append(result.Failures, SaleItemFailure{
				ProductID: p.ID, Category: apperror.CategoryConflict, Reason: "product is already part of a sale",
			})
			continue
		}

		finale, err := calc.ApplySaleDiscount(p.MRP, sale.SaleDiscountApplied)
		if err != nil {
			s.restore(ctx, sale.ID, written)
			return nil, apperror.Wrap(apperror.CategoryValidation, "sale discount is invalid", err)
		}
		before := snapshotSaleState(p)
		p.FinalePrice = decimal.NewNullDecimal(finale)
		p.SaleApplied = true
		p.UpdatedAt = now()
		if err := s.store.Products.Update(ctx, p); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{"sale_id": sale.ID, "product_id": p.ID}).Error("AddProducts: failed to update product")
			result.Failures = append(result.Failures, SaleItemFailure{
				ProductID: p.ID, Category: apperror.CategoryInternal, Reason: "failed to update product",
			})
			continue
		}
		written = append(written, before)

		sale.AffectedProducts = append(sale.AffectedProducts, models.SaleProduct{
			ProductID:   p.ID,
			CategoryID:  p.CategoryID,
			ProductName: p.Name,
			ProductMRP:  p.MRP,
			FinalePrice: p.FinalePrice,
		})
		result.Added = append(result.Added, p.ID)
	}

	if len(result.Added) > 0 {
		sale.UpdatedAt = now()
		if err := s.store.Sales.Update(ctx, sale); err != nil {
			s.restore(ctx, sale.ID, written)
			return nil, apperror.Internal("failed to update sale", err)
		}
	}

	s.log.WithFields(logrus.Fields{
		"sale_id":  sale.ID,
		"added":    len(result.Added),
		"failures": len(result.Failures),
	}).Info("products added to sale")
	return result, nil
}

func (s *SaleService) RemoveProducts(ctx context.Context, userID, saleID string, in SaleProductsInput) (*SaleRemoveResult, error) {
	sale, err := s.prepare(ctx, userID, saleID, in)
	if err != nil {
		return nil, err
	}

	fetched, err := s.store.Products.GetByIDs(ctx, in.ProductIDs)
	if err != nil {
		return nil, apperror.Internal("failed to load products", err)
	}
	var products []models.Product
	var foreign []string
	for _, p := range fetched {
		if !p.IsActive {
			continue
		}
		if p.UserID != userID {
			foreign = append(foreign, p.ID)
		}
		products = append(products, p)
	}
	if len(products) == 0 {
		return nil, apperror.NotFound("no active products found")
	}
	if len(foreign) > 0 {
		return nil, apperror.Forbidden("some products are not owned by you").WithDetails(map[string][]string{"productIds": foreign})
	}

	result := &SaleRemoveResult{Sale: sale, Removed: []string{}, NotInSale: []string{}}
	remove := make(map[string]bool, len(products))
	var written []saleState
	for i := range products {
		p := &products[i]
		if !sale.HasProduct(p.ID) {
			result.NotInSale = append(result.NotInSale, p.ID)
			continue
		}
		before := snapshotSaleState(p)
		p.SaleApplied = false
		p.FinalePrice = decimal.NullDecimal{}
		p.UpdatedAt = now()
		if err := s.store.Products.Update(ctx, p); err != nil {
			s.restore(ctx, sale.ID, written)
			return nil, apperror.Internal("failed to update product", err)
		}
		written = append(written, before)
		remove[p.ID] = true
		result.Removed = append(result.Removed, p.ID)
	}

	if len(remove) > 0 {
		kept := make([]models.SaleProduct, 0, len(sale.AffectedProducts))
		for _, item := range sale.AffectedProducts {
			if !remove[item.ProductID] {
				kept = append(kept, item)
			}
		}
		sale.AffectedProducts = kept
		sale.UpdatedAt = now()
		if err := s.store.Sales.Update(ctx, sale); err != nil {
			s.restore(ctx, sale.ID, written)
			return nil, apperror.Internal("failed to update sale", err)
		}
	}
	return result, nil
}

func (s *SaleService) Get(ctx context.Context, saleID string) (*models.Sale, error) {
	sale, err := s.store.Sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, apperror.Internal("failed to load sale", err)
	}
	if sale == nil || !sale.IsActive {
		return nil, apperror.NotFound("sale not found")
	}
	return sale, nil
}

func (s *SaleService) List(ctx context.Context, q repositories.ListQuery) (Page[models.Sale], error) {
	sales, total, err := s.store.Sales.List(ctx, q)
	if err != nil {
		return Page[models.Sale]{}, apperror.Internal("failed to list sales", err)
	}
	return newPage(sales, total, q), nil
}
