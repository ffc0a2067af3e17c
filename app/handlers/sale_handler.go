package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-seller-ms/app/helpers"
	"github.com/Rakhulsr/go-seller-ms/app/services"
	"github.com/Rakhulsr/go-seller-ms/app/utils/renderer"
)

type SaleHandler struct {
	sales *services.SaleService
}

func NewSaleHandler(sales *services.SaleService) *SaleHandler {
	return &SaleHandler{sales: sales}
}

// AddProducts answers 207 when only some of the products were added.
func (h *SaleHandler) AddProducts(w http.ResponseWriter, r *http.Request) {
	var in services.SaleProductsInput
	if err := decodeJSON(w, r, &in); err != nil {
		renderer.Error(w, err)
		return
	}
	res, err := h.sales.AddProducts(r.Context(), helpers.UserIDFromContext(r.Context()), pathID(r), in)
	if err != nil {
		renderer.Error(w, err)
		return
	}
	status := http.StatusOK
	if res.Partial() {
		status = http.StatusMultiStatus
	}
	renderer.JSON(w, status, res)
}

func (h *SaleHandler) RemoveProducts(w http.ResponseWriter, r *http.Request) {
	var in services.SaleProductsInput
	if err := decodeJSON(w, r, &in); err != nil {
		renderer.Error(w, err)
		return
	}
	res, err := h.sales.RemoveProducts(r.Context(), helpers.UserIDFromContext(r.Context()), pathID(r), in)
	if err != nil {
		renderer.Error(w, err)
		return
	}
	renderer.JSON(w, http.StatusOK, res)
}

func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	sale, err := h.sales.Get(r.Context(), pathID(r))
	if err != nil {
		renderer.Error(w, err)
		return
	}
	renderer.JSON(w, http.StatusOK, sale)
}

func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.sales.List(r.Context(), listQuery(r))
	if err != nil {
		renderer.Error(w, err)
		return
	}
	renderer.JSON(w, http.StatusOK, page)
}
