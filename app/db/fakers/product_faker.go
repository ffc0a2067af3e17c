package fakers

import (
	"math/rand"
	"strings"
	"time"

	"github.com/Rakhulsr/go-seller-ms/app/models"
	"github.com/Rakhulsr/go-seller-ms/app/services"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

var categoryNames = []string{"Kitchen", "Garden", "Toys", "Books", "Fitness", "Stationery", "Lighting", "Audio"}

func UserFaker() *models.User {
	now := time.Now().UTC()
	return &models.User{
		ID:        uuid.New().String(),
		Name:      faker.Name(),
		Email:     strings.ToLower(uuid.NewString()[:8] + "." + faker.Email()),
		Role:      models.RoleSeller,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func CategoryFaker(i int) *models.Category {
	name := categoryNames[i%len(categoryNames)]
	if i >= len(categoryNames) {
		name = name + " " + faker.Word()
	}
	now := time.Now().UTC()
	return &models.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        slug.Make(name),
		Category:    name,
		Description: faker.Sentence(),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ProductFaker builds a create request with a whole-rupee MRP and an
// optional seller discount in steps of five percent.
func ProductFaker(categoryID string) services.CreateProductInput {
	mrp := decimal.NewFromInt(int64(rand.Intn(9900) + 100))
	stock := rand.Intn(50) + 1
	in := services.CreateProductInput{
		Name:        faker.Word() + " " + faker.Word(),
		Description: faker.Paragraph(),
		MRP:         &mrp,
		Stock:       &stock,
		CategoryID:  categoryID,
	}
	if rand.Intn(2) == 0 {
		pct := decimal.NewFromInt(int64(rand.Intn(10)+1) * 5)
		in.SellerDiscountApplied = &pct
	}
	return in
}

func SaleFaker(categoryIDs []string) *models.Sale {
	now := time.Now().UTC()
	name := faker.Word() + " sale"
	return &models.Sale{
		ID:                  uuid.New().String(),
		Name:                name,
		StartDate:           now,
		EndDate:             now.Add(14 * 24 * time.Hour),
		SaleDiscountApplied: decimal.NewFromInt(int64(rand.Intn(6)+1) * 5),
		Categories:          append([]string(nil), categoryIDs...),
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}
