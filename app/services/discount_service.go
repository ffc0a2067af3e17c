package services

import (
	"context"
	"time"

	"github.com/Rakhulsr/go-seller-ms/app/helpers"
	"github.com/Rakhulsr/go-seller-ms/app/models"
	"github.com/Rakhulsr/go-seller-ms/app/repositories"
	"github.com/Rakhulsr/go-seller-ms/app/utils/apperror"
	"github.com/Rakhulsr/go-seller-ms/app/utils/calc"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	DiscountActionApply  = "apply"
	DiscountActionRemove = "remove"
)

// DiscountEvent is published by the admin service whenever a discount is
// attached to or detached from seller products and bundles.
type DiscountEvent struct {
	DiscountID    string          `json:"discountId" validate:"required,uuid"`
	Action        string          `json:"action" validate:"required,oneof=apply remove"`
	AdminID       string          `json:"adminId"`
	AdminDiscount decimal.Decimal `json:"adminDiscount"`
	Type          string          `json:"type"`
	Description   string          `json:"description"`
	StartDate     time.Time       `json:"startDate"`
	EndDate       time.Time       `json:"endDate"`
	Products      []string        `json:"products"`
	Bundles       []string        `json:"bundles"`
}

type DiscountSyncReport struct {
	DiscountID string   `json:"discountId"`
	Action     string   `json:"action"`
	Products   []string `json:"products"`
	Bundles    []string `json:"bundles"`
	Missing    []string `json:"missing"`
}

type DiscountService struct {
	store  *repositories.Store
	pricer pricer
	log    logrus.FieldLogger
}

func NewDiscountService(store *repositories.Store, log logrus.FieldLogger) *DiscountService {
	return &DiscountService{
		store:  store,
		pricer: pricer{discounts: store.Discounts},
		log:    log,
	}
}

func (s *DiscountService) ApplyEvent(ctx context.Context, ev DiscountEvent) (*DiscountSyncReport, error) {
	if err := helpers.ValidateStruct(ev); err != nil {
		return nil, err
	}
	if ev.Action == DiscountActionApply {
		return s.apply(ctx, ev)
	}
	return s.remove(ctx, ev)
}

func (s *DiscountService) apply(ctx context.Context, ev DiscountEvent) (*DiscountSyncReport, error) {
	if !calc.Basis(ev.Type).Valid() {
		return nil, apperror.Validation("unknown discount type").WithDetails(map[string]string{
			"type": "type must be one of MRP, sellerDiscounted.",
		})
	}
	if err := validatePercent("adminDiscount", &ev.AdminDiscount); err != nil {
		return nil, err
	}

	discount, err := s.store.Discounts.GetByID(ctx, ev.DiscountID)
	if err != nil {
		return nil, apperror.Internal("failed to load discount", err)
	}
	ts := now()
	if discount == nil {
		discount = &models.Discount{ID: ev.DiscountID, CreatedAt: ts}
	}
	discount.AdminID = ev.AdminID
	discount.AdminDiscount = ev.AdminDiscount
	discount.Description = ev.Description
	discount.StartDate = ev.StartDate
	discount.EndDate = ev.EndDate
	discount.Type = ev.Type
	discount.Status = models.DiscountStatusActive
	discount.Products = mergeIDs(discount.Products, ev.Products)
	discount.Bundles = mergeIDs(discount.Bundles, ev.Bundles)
	discount.UpdatedAt = ts
	if err := s.store.Discounts.Save(ctx, discount); err != nil {
		return nil, apperror.Internal("failed to save discount", err)
	}

	report := s.newReport(ev)
	pct := decimal.NewNullDecimal(ev.AdminDiscount)
	err = s.eachProduct(ctx, ev.Products, report, func(p *models.Product) error {
		p.DiscountID = &discount.ID
		p.AdminDiscountApplied = pct
		p.AdminDiscountedPrice = decimal.NullDecimal{}
		return s.pricer.priceProduct(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	err = s.eachBundle(ctx, ev.Bundles, report, func(b *models.Bundle) error {
		b.DiscountID = &discount.ID
		b.AdminDiscount = pct
		b.AdminDiscountApplied = decimal.NullDecimal{}
		b.AdminDiscountedPrice = decimal.NullDecimal{}
		return s.pricer.priceBundle(ctx, b, false)
	})
	if err != nil {
		return nil, err
	}

	s.logReport(report)
	return report, nil
}

func (s *DiscountService) remove(ctx context.Context, ev DiscountEvent) (*DiscountSyncReport, error) {
	discount, err := s.store.Discounts.GetByID(ctx, ev.DiscountID)
	if err != nil {
		return nil, apperror.Internal("failed to load discount", err)
	}
	if discount == nil {
		return nil, apperror.NotFound("discount not found")
	}
	discount.Status = models.DiscountStatusRemoved
	discount.UpdatedAt = now()
	if err := s.store.Discounts.Save(ctx, discount); err != nil {
		return nil, apperror.Internal("failed to save discount", err)
	}

	report := s.newReport(ev)
	linked := func(id *string) bool { return id != nil && *id == discount.ID }
	err = s.eachProduct(ctx, mergeIDs(discount.Products, ev.Products), report, func(p *models.Product) error {
		if linked(p.DiscountID) {
			p.DiscountID = nil
			p.AdminDiscountApplied = decimal.NullDecimal{}
			p.AdminDiscountedPrice = decimal.NullDecimal{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	err = s.eachBundle(ctx, mergeIDs(discount.Bundles, ev.Bundles), report, func(b *models.Bundle) error {
		if linked(b.DiscountID) {
			b.DiscountID = nil
			b.AdminDiscount = decimal.NullDecimal{}
			b.AdminDiscountApplied = decimal.NullDecimal{}
			b.AdminDiscountedPrice = decimal.NullDecimal{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logReport(report)
	return report, nil
}

func (s *DiscountService) newReport(ev DiscountEvent) *DiscountSyncReport {
	return &DiscountSyncReport{
		DiscountID: ev.DiscountID,
		Action:     ev.Action,
		Products:   []string{},
		Bundles:    []string{},
		Missing:    []string{},
	}
}

func (s *DiscountService) eachProduct(ctx context.Context, ids []string, report *DiscountSyncReport, fn func(*models.Product) error) error {
	for _, id := range ids {
		p, err := s.store.Products.GetByID(ctx, id)
		if err != nil {
			return apperror.Internal("failed to load product", err)
		}
		if p == nil {
			report.Missing = append(report.Missing, id)
			continue
		}
		if err := fn(p); err != nil {
			return err
		}
		p.UpdatedAt = now()
		if err := s.store.Products.Update(ctx, p); err != nil {
			return apperror.Internal("failed to update product", err)
		}
		report.Products = append(report.Products, id)
	}
	return nil
}

func (s *DiscountService) eachBundle(ctx context.Context, ids []string, report *DiscountSyncReport, fn func(*models.Bundle) error) error {
	for _, id := range ids {
		b, err := s.store.Bundles.GetByID(ctx, id)
		if err != nil {
			return apperror.Internal("failed to load bundle", err)
		}
		if b == nil {
			report.Missing = append(report.Missing, id)
			continue
		}
		if err := fn(b); err != nil {
			return err
		}
		b.UpdatedAt = now()
		if err := s.store.Bundles.Update(ctx, b); err != nil {
			return apperror.Internal("failed to update bundle", err)
		}
		report.Bundles = append(report.Bundles, id)
	}
	return nil
}

func (s *DiscountService) logReport(report *DiscountSyncReport) {
	s.log.WithFields(logrus.Fields{
		"discount_id": report.DiscountID,
		"action":      report.Action,
		"products":    len(report.Products),
		"bundles":     len(report.Bundles),
		"missing":     len(report.Missing),
	}).Info("admin discount synced")
}

// mergeIDs appends ids from extra not already present in base.
func mergeIDs(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, id := range list {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}
