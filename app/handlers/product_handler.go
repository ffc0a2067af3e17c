package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-seller-ms/app/helpers"
	"github.com/Rakhulsr/go-seller-ms/app/services"
	"github.com/Rakhulsr/go-seller-ms/app/utils/renderer"
)

type ProductHandler struct {
	products *services.ProductService
}

func NewProductHandler(products *services.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CreateProductInput
	if err := decodeJSON(w, r, &in); err != nil {
		renderer.Error(w, err)
		return
	}
	product, err := h.products.Create(r.Context(), helpers.UserIDFromContext(r.Context()), in)
	if err != nil {
		renderer.Error(w, err)
		return
	}
	renderer.JSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in services.UpdateProductInput
	if err := decodeJSON(w, r, &in); err != nil {
		renderer.Error(w, err)
		return
	}
	product, err := h.products.Update(r.Context(), helpers.UserIDFromContext(r.Context()), pathID(r), in)
	if err != nil {
		renderer.Error(w, err)
		return
	}
	renderer.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), pathID(r))
	if err != nil {
		renderer.Error(w, err)
		return
	}
	renderer.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.products.List(r.Context(), helpers.UserIDFromContext(r.Context()), listQuery(r))
	if err != nil {
		renderer.Error(w, err)
		return
	}
	renderer.JSON(w, http.StatusOK, page)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := h.products.SoftDelete(r.Context(), helpers.UserIDFromContext(r.Context()), pathID(r))
	if err != nil {
		renderer.Error(w, err)
		return
	}
	renderer.JSON(w, http.StatusOK, res)
}
