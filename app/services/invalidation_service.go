package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/go-seller-ms/app/models"
	"github.com/Rakhulsr/go-seller-ms/app/repositories"
	"github.com/Rakhulsr/go-seller-ms/app/utils/calc"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type StepResult struct {
	Collection string `json:"collection"`
	Matched    int64  `json:"matched"`
	Error      string `json:"error,omitempty"`
}

type SweepReport struct {
	Kind  models.ItemKind `json:"kind"`
	ID    string          `json:"id"`
	Steps []StepResult    `json:"steps"`
}

func (r SweepReport) Failed() bool {
	for _, step := range r.Steps {
		if step.Error != "" {
			return true
		}
	}
	return false
}

type ReconcileReport struct {
	Products int           `json:"products"`
	Bundles  int           `json:"bundles"`
	Failed   int           `json:"failed"`
	Sweeps   []SweepReport `json:"sweeps"`
}

type sweepStep struct {
	collection string
	run        func(ctx context.Context, id string) (int64, error)
}

// InvalidationService propagates a soft-delete to every collection that
// references the deleted product or bundle. Steps run in order, each on its
// own; a failing step is recorded and the next one still runs.
type InvalidationService struct {
	store  *repositories.Store
	pricer pricer
	log    logrus.FieldLogger
}

func NewInvalidationService(store *repositories.Store, log logrus.FieldLogger) *InvalidationService {
	return &InvalidationService{
		store:  store,
		pricer: pricer{discounts: store.Discounts},
		log:    log,
	}
}

func (s *InvalidationService) steps(kind models.ItemKind) []sweepStep {
	shared := []sweepStep{
		{"wishlists", func(ctx context.Context, id string) (int64, error) {
			return s.store.Wishlists.MarkUnavailable(ctx, kind, id)
		}},
		{"carts", func(ctx context.Context, id string) (int64, error) {
			return s.store.Carts.MarkUnavailable(ctx, kind, id)
		}},
		{"sales", s.store.Sales.MarkItemUnavailable},
	}
	if kind == models.ItemKindProduct {
		return append([]sweepStep{{"bundles", s.detachFromBundles}}, shared...)
	}
	return shared
}

func (s *InvalidationService) Sweep(ctx context.Context, kind models.ItemKind, id string) SweepReport {
	report := SweepReport{Kind: kind, ID: id}
	for _, step := range s.steps(kind) {
		matched, err := step.run(ctx, id)
		result := StepResult{Collection: step.collection, Matched: matched}
		entry := s.log.WithFields(logrus.Fields{"kind": kind, "id": id, "step": step.collection, "matched": matched})
		if err != nil {
			result.Error = err.Error()
			entry.WithError(err).Error("invalidation step failed")
		} else {
			entry.Debug("invalidation step done")
		}
		report.Steps = append(report.Steps, result)
	}
	return report
}

// detachFromBundles removes the product from every bundle that lists it.
func (s *InvalidationService) detachFromBundles(ctx context.Context, productID string) (int64, error) {
	bundles, err := s.store.Bundles.FindContainingProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to find bundles: %w", err)
	}
	var detached int64
	var errs []error
	for i := range bundles {
		ok, err := s.DetachProduct(ctx, &bundles[i], productID)
		if err != nil {
			errs = append(errs, fmt.Errorf("bundle %s: %w", bundles[i].ID, err))
			continue
		}
		if ok {
			detached++
		}
	}
	return detached, errors.Join(errs...)
}

// DetachProduct drops productID from the bundle, rebuilds MRP from the
// remaining members' current prices and re-applies both discount layers.
// It reports false when the bundle did not contain the product.
func (s *InvalidationService) DetachProduct(ctx context.Context, bundle *models.Bundle, productID string) (bool, error) {
	if !bundle.RemoveProduct(productID) {
		return false, nil
	}

	live, err := s.store.Products.GetByIDs(ctx, bundle.ProductIDs())
	if err != nil {
		return false, err
	}
	byID := make(map[string]models.Product, len(live))
	for _, p := range live {
		byID[p.ID] = p
	}

	prices := make([]decimal.Decimal, 0, len(bundle.Products))
	quantities := make([]int, 0, len(bundle.Products))
	for i := range bundle.Products {
		if p, ok := byID[bundle.Products[i].ProductID]; ok {
			bundle.Products[i].Name = p.Name
			bundle.Products[i].MRP = p.MRP
		}
		prices = append(prices, bundle.Products[i].MRP)
		quantities = append(quantities, bundle.Products[i].Quantity)
	}
	bundle.MRP = calc.BundleMRP(prices, quantities)

	if err := s.pricer.priceBundle(ctx, bundle, true); err != nil {
		return false, err
	}
	// An emptied or zero-priced bundle cannot carry an admin price.
	if !bundle.SellerDiscounted.Valid || !bundle.SellerDiscounted.Decimal.IsPositive() {
		bundle.AdminDiscountedPrice = decimal.NullDecimal{}
		bundle.AdminDiscountApplied = decimal.NullDecimal{}
	}
	bundle.UpdatedAt = now()
	if err := s.store.Bundles.Update(ctx, bundle); err != nil {
		return false, err
	}
	return true, nil
}

// Reconcile re-runs the sweep for every soft-deleted product and bundle.
// Sweeps are idempotent, so this repairs dependents left behind by an
// earlier partial failure.
func (s *InvalidationService) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	productIDs, err := s.store.Products.ListInactiveIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list deleted products: %w", err)
	}
	bundleIDs, err := s.store.Bundles.ListInactiveIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list deleted bundles: %w", err)
	}

	report := &ReconcileReport{Products: len(productIDs), Bundles: len(bundleIDs)}
	run := func(kind models.ItemKind, ids []string) {
		for _, id := range ids {
			sweep := s.Sweep(ctx, kind, id)
			if sweep.Failed() {
				report.Failed++
			}
			report.Sweeps = append(report.Sweeps, sweep)
		}
	}
	run(models.ItemKindProduct, productIDs)
	run(models.ItemKindBundle, bundleIDs)

	s.log.WithFields(logrus.Fields{
		"products": report.Products,
		"bundles":  report.Bundles,
		"failed":   report.Failed,
	}).Info("reconcile finished")
	return report, nil
}
