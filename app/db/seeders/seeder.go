package seeders

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-seller-ms/app/db/fakers"
	"github.com/Rakhulsr/go-seller-ms/app/repositories"
	"github.com/Rakhulsr/go-seller-ms/app/services"
	"github.com/sirupsen/logrus"
)

type Options struct {
	Sellers           int
	Categories        int
	ProductsPerSeller int
	Sales             int
}

type Report struct {
	Sellers    []string
	Categories []string
	Products   []string
	Sales      []string
}

// Seeder fills a store with demo sellers, categories, products and sales.
// Products go through the product service so stored prices are consistent.
type Seeder struct {
	store    *repositories.Store
	products *services.ProductService
	log      logrus.FieldLogger
}

func NewSeeder(store *repositories.Store, products *services.ProductService, log logrus.FieldLogger) *Seeder {
	return &Seeder{store: store, products: products, log: log}
}

func (s *Seeder) Seed(ctx context.Context, opts Options) (*Report, error) {
	report := &Report{}

	for i := 0; i < opts.Categories; i++ {
		category := fakers.CategoryFaker(i)
		if err := s.store.Categories.Create(ctx, category); err != nil {
			return report, fmt.Errorf("failed to seed category: %w", err)
		}
		report.Categories = append(report.Categories, category.ID)
	}
	if len(report.Categories) == 0 && opts.ProductsPerSeller > 0 {
		return report, fmt.Errorf("products need at least one category")
	}

	for i := 0; i < opts.Sellers; i++ {
		user := fakers.UserFaker()
		if err := s.store.Users.Create(ctx, user); err != nil {
			return report, fmt.Errorf("failed to seed user: %w", err)
		}
		report.Sellers = append(report.Sellers, user.ID)

		for j := 0; j < opts.ProductsPerSeller; j++ {
			categoryID := report.Categories[(i+j)%len(report.Categories)]
			product, err := s.products.Create(ctx, user.ID, fakers.ProductFaker(categoryID))
			if err != nil {
				return report, fmt.Errorf("failed to seed product: %w", err)
			}
			report.Products = append(report.Products, product.ID)
		}
	}

	for i := 0; i < opts.Sales; i++ {
		sale := fakers.SaleFaker(report.Categories)
		if err := s.store.Sales.Create(ctx, sale); err != nil {
			return report, fmt.Errorf("failed to seed sale: %w", err)
		}
		report.Sales = append(report.Sales, sale.ID)
	}

	s.log.WithFields(logrus.Fields{
		"sellers":    len(report.Sellers),
		"categories": len(report.Categories),
		"products":   len(report.Products),
		"sales":      len(report.Sales),
	}).Info("seed finished")
	return report, nil
}
