package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-seller-ms/app/helpers"
	"github.com/Rakhulsr/go-seller-ms/app/services"
	"github.com/Rakhulsr/go-seller-ms/app/utils/renderer"
)

type SellerHandler struct {
	sellers *services.SellerService
}

func NewSellerHandler(sellers *services.SellerService) *SellerHandler {
	return &SellerHandler{sellers: sellers}
}

func (h *SellerHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var in services.SellerProfileInput
	if err := decodeJSON(w, r, &in); err != nil {
		renderer.Error(w, err)
		return
	}
	profile, err := h.sellers.CreateProfile(r.Context(), helpers.UserIDFromContext(r.Context()), in)
	if err != nil {
		renderer.Error(w, err)
		return
	}
	renderer.JSON(w, http.StatusCreated, profile)
}

func (h *SellerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in services.SellerProfileInput
	if err := decodeJSON(w, r, &in); err != nil {
		renderer.Error(w, err)
		return
	}
	profile, err := h.sellers.UpdateProfile(r.Context(), helpers.UserIDFromContext(r.Context()), in)
	if err != nil {
		renderer.Error(w, err)
		return
	}
	renderer.JSON(w, http.StatusOK, profile)
}

func (h *SellerHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.sellers.GetProfile(r.Context(), helpers.UserIDFromContext(r.Context()))
	if err != nil {
		renderer.Error(w, err)
		return
	}
	renderer.JSON(w, http.StatusOK, profile)
}

func (h *SellerHandler) Get(w http.ResponseWriter, r *http.Request) {
	seller, err := h.sellers.GetByID(r.Context(), helpers.UserIDFromContext(r.Context()), pathID(r))
	if err != nil {
		renderer.Error(w, err)
		return
	}
	renderer.JSON(w, http.StatusOK, seller)
}
