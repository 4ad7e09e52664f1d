package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"
	"go-stockledger/pkg/apperror"
)

func newCatalog(db *gorm.DB) CatalogService {
	return NewCatalogService(repository.NewProductRepo(db), nil, zerolog.Nop())
}

func validProduct(slug string) *model.Product {
	return &model.Product{
		Name:        "Stainless Bottle",
		Slug:        slug,
		Description: "Insulated bottle that keeps drinks cold",
		Price:       decimal.RequireFromString("19.99"),
		Stock:       5,
		Category:    "kitchen",
		BusinessID:  "biz-1",
	}
}

func TestCreateAndGetProduct(t *testing.T) {
	db := newTestDB(t)
	catalog := newCatalog(db)

	created, err := catalog.Create(validProduct("stainless-bottle"))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := catalog.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "stainless-bottle", got.Slug)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("19.99")))
}

func TestCreateProductSlugConflict(t *testing.T) {
	db := newTestDB(t)
	catalog := newCatalog(db)

	_, err := catalog.Create(validProduct("stainless-bottle"))
	require.NoError(t, err)

	_, err = catalog.Create(validProduct("stainless-bottle"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeConflict))
}

func TestCreateProductInvalidSlug(t *testing.T) {
	db := newTestDB(t)
	catalog := newCatalog(db)

	for _, slug := range []string{"Has Spaces", "UPPER", "trailing-", "-leading", "double--dash"} {
		_, err := catalog.Create(validProduct(slug))
		require.Error(t, err, "slug %q should be rejected", slug)
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation), "slug %q", slug)
	}
}

func TestCreateProductValidation(t *testing.T) {
	db := newTestDB(t)
	catalog := newCatalog(db)

	product := validProduct("short-desc")
	product.Description = "too short"

	_, err := catalog.Create(product)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	product = validProduct("negative-price")
	product.Price = decimal.RequireFromString("-1.00")
	_, err = catalog.Create(product)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestCreateProductPricePrecision(t *testing.T) {
	db := newTestDB(t)
	catalog := newCatalog(db)

	product := validProduct("precise")
	product.Price = decimal.RequireFromString("9.999")

	_, err := catalog.Create(product)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	assert.Contains(t, err.Error(), "2 decimal places")
}

func TestUpdateProductMergesAndRevalidates(t *testing.T) {
	db := newTestDB(t)
	catalog := newCatalog(db)

	created, err := catalog.Create(validProduct("stainless-bottle"))
	require.NoError(t, err)

	newPrice := decimal.RequireFromString("24.50")
	updated, err := catalog.Update(created.ID, &ProductUpdate{Price: &newPrice})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(newPrice))
	assert.Equal(t, "stainless-bottle", updated.Slug)

	// A merge that breaks validation is rejected and leaves the record alone.
	shortName := "x"
	_, err = catalog.Update(created.ID, &ProductUpdate{Name: &shortName})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestUpdateProductSlugConflict(t *testing.T) {
	db := newTestDB(t)
	catalog := newCatalog(db)

	_, err := catalog.Create(validProduct("taken"))
	require.NoError(t, err)
	second, err := catalog.Create(validProduct("available"))
	require.NoError(t, err)

	taken := "taken"
	_, err = catalog.Update(second.ID, &ProductUpdate{Slug: &taken})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeConflict))
}

func TestUpdateProductNotFound(t *testing.T) {
	db := newTestDB(t)
	catalog := newCatalog(db)

	name := "Renamed"
	_, err := catalog.Update(uuid.New(), &ProductUpdate{Name: &name})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound))
}

func TestDeleteProduct(t *testing.T) {
	db := newTestDB(t)
	catalog := newCatalog(db)

	created, err := catalog.Create(validProduct("stainless-bottle"))
	require.NoError(t, err)

	require.NoError(t, catalog.Delete(created.ID))

	_, err = catalog.Get(created.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound))

	err = catalog.Delete(created.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound))
}

func TestSearchProductsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	catalog := newCatalog(db)

	bottle := validProduct("stainless-bottle")
	bottle.Category = "Kitchen"
	_, err := catalog.Create(bottle)
	require.NoError(t, err)

	lamp := validProduct("desk-lamp")
	lamp.Name = "Desk Lamp"
	lamp.Category = "office"
	_, err = catalog.Create(lamp)
	require.NoError(t, err)

	results, err := catalog.Search("KITCHEN")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "stainless-bottle", results[0].Slug)

	results, err = catalog.Search("lamp")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "desk-lamp", results[0].Slug)
}

func TestSearchProductsEmptyQuery(t *testing.T) {
	db := newTestDB(t)
	catalog := newCatalog(db)

	_, err := catalog.Search("   ")
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}
