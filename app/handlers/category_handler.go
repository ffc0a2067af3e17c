package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-seller-ms/app/services"
	"github.com/Rakhulsr/go-seller-ms/app/utils/renderer"
)

type CategoryHandler struct {
	categories *services.CategoryService
}

func NewCategoryHandler(categories *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.Get(r.Context(), pathID(r))
	if err != nil {
		renderer.Error(w, err)
		return
	}
	renderer.JSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.categories.List(r.Context(), listQuery(r))
	if err != nil {
		renderer.Error(w, err)
		return
	}
	renderer.JSON(w, http.StatusOK, page)
}
