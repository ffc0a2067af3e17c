package services

import (
	"context"
	"strings"

	"github.com/Rakhulsr/go-seller-ms/app/helpers"
	"github.com/Rakhulsr/go-seller-ms/app/models"
	"github.com/Rakhulsr/go-seller-ms/app/repositories"
	"github.com/Rakhulsr/go-seller-ms/app/utils/apperror"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type SellerProfileInput struct {
	ShopName          string `json:"shopName" validate:"required,max=255"`
	ShopDescription   string `json:"shopDescription" validate:"required"`
	ShopContactNumber string `json:"shopContactNumber" validate:"required,max=30"`
	BusinessLicense   string `json:"businessLicense" validate:"required,max=100"`
	TaxID             string `json:"taxId" validate:"required,max=100"`
	Website           string `json:"website" validate:"omitempty,url,max=255"`
}

type SellerProfile struct {
	User   *models.User   `json:"user"`
	Seller *models.Seller `json:"seller"`
}

type SellerService struct {
	store *repositories.Store
	log   logrus.FieldLogger
}

func NewSellerService(store *repositories.Store, log logrus.FieldLogger) *SellerService {
	return &SellerService{store: store, log: log}
}

func (in SellerProfileInput) apply(seller *models.Seller) {
	seller.ShopName = strings.TrimSpace(in.ShopName)
	seller.ShopDescription = in.ShopDescription
	seller.ShopContactNumber = in.ShopContactNumber
	seller.BusinessLicense = in.BusinessLicense
	seller.TaxID = in.TaxID
	seller.Website = in.Website
}

// CreateProfile registers the caller as a seller. A user holds at most one
// seller profile.
func (s *SellerService) CreateProfile(ctx context.Context, userID string, in SellerProfileInput) (*SellerProfile, error) {
	if err := helpers.ValidateStruct(in); err != nil {
		return nil, err
	}
	user, err := requireActiveUser(ctx, s.store.Users, userID)
	if err != nil {
		return nil, err
	}
	if user.SellerID != nil {
		return nil, apperror.Conflict("user is already registered as a seller")
	}
	existing, err := s.store.Sellers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("failed to load seller", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("user is already registered as a seller")
	}

	ts := now()
	seller := &models.Seller{ID: uuid.New().String(), UserID: userID, CreatedAt: ts, UpdatedAt: ts}
	in.apply(seller)
	if err := s.store.Sellers.Create(ctx, seller); err != nil {
		return nil, apperror.Internal("failed to create seller", err)
	}

	user.SellerID = &seller.ID
	user.Role = models.RoleSeller
	user.UpdatedAt = ts
	if err := s.store.Users.Update(ctx, user); err != nil {
		return nil, apperror.Internal("failed to link seller to user", err)
	}

	s.log.WithFields(logrus.Fields{"seller_id": seller.ID, "user_id": userID}).Info("seller profile created")
	return &SellerProfile{User: user, Seller: seller}, nil
}

func (s *SellerService) UpdateProfile(ctx context.Context, userID string, in SellerProfileInput) (*SellerProfile, error) {
	if err := helpers.ValidateStruct(in); err != nil {
		return nil, err
	}
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	in.apply(profile.Seller)
	profile.Seller.UpdatedAt = now()
	if err := s.store.Sellers.Update(ctx, profile.Seller); err != nil {
		return nil, apperror.Internal("failed to update seller", err)
	}
	return profile, nil
}

func (s *SellerService) GetProfile(ctx context.Context, userID string) (*SellerProfile, error) {
	user, err := requireActiveUser(ctx, s.store.Users, userID)
	if err != nil {
		return nil, err
	}
	seller, err := s.store.Sellers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("failed to load seller", err)
	}
	if seller == nil {
		return nil, apperror.NotFound("seller profile not found")
	}
	return &SellerProfile{User: user, Seller: seller}, nil
}

// GetByID returns a seller profile; only its owner may read it.
func (s *SellerService) GetByID(ctx context.Context, userID, sellerID string) (*models.Seller, error) {
	if !helpers.IsUUID(sellerID) {
		return nil, apperror.Validation("invalid seller id")
	}
	if _, err := requireActiveUser(ctx, s.store.Users, userID); err != nil {
		return nil, err
	}
	seller, err := s.store.Sellers.FindByID(ctx, sellerID)
	if err != nil {
		return nil, apperror.Internal("failed to load seller", err)
	}
	if seller == nil {
		return nil, apperror.NotFound("seller not found")
	}
	if seller.UserID != userID {
		return nil, apperror.Forbidden("seller profile belongs to another user")
	}
	return seller, nil
}
