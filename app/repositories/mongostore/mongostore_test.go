package mongostore

import (
	"testing"

	"github.com/Rakhulsr/go-seller-ms/app/models"
	"github.com/Rakhulsr/go-seller-ms/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFindOptionsPagesAndSorts(t *testing.T) {
	opts := findOptions(repositories.ListQuery{SortBy: repositories.SortByMRP, SortOrder: "desc", Page: 3, Limit: 5})

	assert.Equal(t, bson.D{{Key: "MRP", Value: -1}}, opts.Sort)
	require.NotNil(t, opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.EqualValues(t, 10, *opts.Skip)
	assert.EqualValues(t, 5, *opts.Limit)

	opts = findOptions(repositories.ListQuery{SortBy: "password"})
	assert.Equal(t, bson.D{{Key: "name", Value: 1}}, opts.Sort)
	assert.EqualValues(t, 0, *opts.Skip)
	assert.EqualValues(t, repositories.DefaultLimit, *opts.Limit)
}

func TestNameSearchQuotesInput(t *testing.T) {
	filter := nameSearch(bson.M{"isActive": true}, "mug (large)")
	assert.Equal(t, bson.M{
		"isActive": true,
		"name":     bson.M{"$regex": `mug \(large\)`, "$options": "i"},
	}, filter)

	assert.Equal(t, bson.M{"isActive": true}, nameSearch(bson.M{"isActive": true}, ""))
}

func TestItemKey(t *testing.T) {
	key, err := itemKey(models.ItemKindProduct)
	require.NoError(t, err)
	assert.Equal(t, "productId", key)

	key, err = itemKey(models.ItemKindBundle)
	require.NoError(t, err)
	assert.Equal(t, "bundleId", key)

	_, err = itemKey("coupon")
	assert.Error(t, err)
}
