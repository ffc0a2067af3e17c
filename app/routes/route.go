package routes

import (
	"net/http"

	"github.com/Rakhulsr/go-seller-ms/app/handlers"
	"github.com/Rakhulsr/go-seller-ms/app/middlewares"
	"github.com/Rakhulsr/go-seller-ms/app/models"
	"github.com/Rakhulsr/go-seller-ms/app/services"
	"github.com/Rakhulsr/go-seller-ms/app/utils/apperror"
	"github.com/Rakhulsr/go-seller-ms/app/utils/renderer"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Services struct {
	Products   *services.ProductService
	Bundles    *services.BundleService
	Sales      *services.SaleService
	Sellers    *services.SellerService
	Categories *services.CategoryService
}

func NewRouter(svc Services, verifier middlewares.TokenVerifier, log logrus.FieldLogger) *mux.Router {
	router := mux.NewRouter()
	router.Use(middlewares.RequestLogger(log))
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		renderer.Error(w, apperror.NotFound("route not found"))
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		renderer.JSON(w, http.StatusMethodNotAllowed, apperror.New(apperror.CategoryValidation, "method not allowed"))
	})

	router.HandleFunc("/healthz", handlers.Health).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middlewares.AuthMiddleware(verifier))

	sellerHandler := handlers.NewSellerHandler(svc.Sellers)
	sellers := api.PathPrefix("/sellers").Subrouter()
	sellers.HandleFunc("/profile", sellerHandler.CreateProfile).Methods(http.MethodPost)
	sellers.HandleFunc("/profile", sellerHandler.UpdateProfile).Methods(http.MethodPut)
	sellers.HandleFunc("/profile", sellerHandler.GetProfile).Methods(http.MethodGet)
	sellers.HandleFunc("/{id}", sellerHandler.Get).Methods(http.MethodGet)

	shop := api.NewRoute().Subrouter()
	shop.Use(middlewares.RequireRole(models.RoleSeller))

	productHandler := handlers.NewProductHandler(svc.Products)
	shop.HandleFunc("/products", productHandler.Create).Methods(http.MethodPost)
	shop.HandleFunc("/products", productHandler.List).Methods(http.MethodGet)
	shop.HandleFunc("/products/{id}", productHandler.Get).Methods(http.MethodGet)
	shop.HandleFunc("/products/{id}", productHandler.Update).Methods(http.MethodPut)
	shop.HandleFunc("/products/{id}", productHandler.Delete).Methods(http.MethodDelete)

	bundleHandler := handlers.NewBundleHandler(svc.Bundles)
	shop.HandleFunc("/bundles", bundleHandler.Create).Methods(http.MethodPost)
	shop.HandleFunc("/bundles", bundleHandler.List).Methods(http.MethodGet)
	shop.HandleFunc("/bundles/{id}", bundleHandler.Get).Methods(http.MethodGet)
	shop.HandleFunc("/bundles/{id}", bundleHandler.Update).Methods(http.MethodPut)
	shop.HandleFunc("/bundles/{id}", bundleHandler.Delete).Methods(http.MethodDelete)

	saleHandler := handlers.NewSaleHandler(svc.Sales)
	shop.HandleFunc("/sales", saleHandler.List).Methods(http.MethodGet)
	shop.HandleFunc("/sales/{id}", saleHandler.Get).Methods(http.MethodGet)
	shop.HandleFunc("/sales/{id}/products", saleHandler.AddProducts).Methods(http.MethodPost)
	shop.HandleFunc("/sales/{id}/products", saleHandler.RemoveProducts).Methods(http.MethodDelete)

	categoryHandler := handlers.NewCategoryHandler(svc.Categories)
	shop.HandleFunc("/categories", categoryHandler.List).Methods(http.MethodGet)
	shop.HandleFunc("/categories/{id}", categoryHandler.Get).Methods(http.MethodGet)

	return router
}
