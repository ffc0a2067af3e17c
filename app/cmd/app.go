package cmd

import (
	"context"

	"github.com/Rakhulsr/go-seller-ms/app/configs"
	"github.com/Rakhulsr/go-seller-ms/app/repositories"
	"github.com/Rakhulsr/go-seller-ms/app/routes"
	"github.com/Rakhulsr/go-seller-ms/app/services"
	"github.com/sirupsen/logrus"
)

// application holds everything a command needs once config is loaded.
type application struct {
	cfg         configs.ENV
	log         *logrus.Logger
	store       *repositories.Store
	closeStore  func() error
	invalidator *services.InvalidationService
	products    *services.ProductService
	bundles     *services.BundleService
	sales       *services.SaleService
	sellers     *services.SellerService
	categories  *services.CategoryService
	discounts   *services.DiscountService
}

func bootstrap(ctx context.Context) (*application, error) {
	cfg, err := configs.LoadEnv()
	if err != nil {
		return nil, err
	}
	log := configs.NewLogger(cfg)

	store, closeStore, err := configs.OpenStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return newApplication(cfg, log, store, closeStore), nil
}

func newApplication(cfg configs.ENV, log *logrus.Logger, store *repositories.Store, closeStore func() error) *application {
	invalidator := services.NewInvalidationService(store, log)
	return &application{
		cfg:         cfg,
		log:         log,
		store:       store,
		closeStore:  closeStore,
		invalidator: invalidator,
		products:    services.NewProductService(store, invalidator, log),
		bundles: services.NewBundleService(store, invalidator, services.BundleOptions{
			AlwaysReprice: cfg.BundleAlwaysReprice,
		}, log),
		sales:      services.NewSaleService(store, log),
		sellers:    services.NewSellerService(store, log),
		categories: services.NewCategoryService(store.Categories),
		discounts:  services.NewDiscountService(store, log),
	}
}

func (a *application) routes() routes.Services {
	return routes.Services{
		Products:   a.products,
		Bundles:    a.bundles,
		Sales:      a.sales,
		Sellers:    a.sellers,
		Categories: a.categories,
	}
}

func (a *application) Close() {
	if a.closeStore == nil {
		return
	}
	if err := a.closeStore(); err != nil {
		a.log.WithError(err).Warn("failed to close store")
	}
}
