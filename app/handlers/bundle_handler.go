package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-seller-ms/app/helpers"
	"github.com/Rakhulsr/go-seller-ms/app/services"
	"github.com/Rakhulsr/go-seller-ms/app/utils/renderer"
)

type BundleHandler struct {
	bundles *services.BundleService
}

func NewBundleHandler(bundles *services.BundleService) *BundleHandler {
	return &BundleHandler{bundles: bundles}
}

func (h *BundleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CreateBundleInput
	if err := decodeJSON(w, r, &in); err != nil {
		renderer.Error(w, err)
		return
	}
	bundle, err := h.bundles.Create(r.Context(), helpers.UserIDFromContext(r.Context()), in)
	if err != nil {
		renderer.Error(w, err)
		return
	}
	renderer.JSON(w, http.StatusCreated, bundle)
}

func (h *BundleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in services.UpdateBundleInput
	if err := decodeJSON(w, r, &in); err != nil {
		renderer.Error(w, err)
		return
	}
	bundle, err := h.bundles.Update(r.Context(), helpers.UserIDFromContext(r.Context()), pathID(r), in)
	if err != nil {
		renderer.Error(w, err)
		return
	}
	renderer.JSON(w, http.StatusOK, bundle)
}

func (h *BundleHandler) Get(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.bundles.Get(r.Context(), pathID(r))
	if err != nil {
		renderer.Error(w, err)
		return
	}
	renderer.JSON(w, http.StatusOK, bundle)
}

func (h *BundleHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.bundles.List(r.Context(), helpers.UserIDFromContext(r.Context()), listQuery(r))
	if err != nil {
		renderer.Error(w, err)
		return
	}
	renderer.JSON(w, http.StatusOK, page)
}

func (h *BundleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := h.bundles.SoftDelete(r.Context(), helpers.UserIDFromContext(r.Context()), pathID(r))
	if err != nil {
		renderer.Error(w, err)
		return
	}
	renderer.JSON(w, http.StatusOK, res)
}
