package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OishiSharmeen04/Pet-Shop/internal/domain"
	apperrors "github.com/OishiSharmeen04/Pet-Shop/pkg/errors"
)

func variantCols() []string {
	return []string{
		"id", "product_id", "sku", "variant_name", "price", "is_default",
		"created_at", "updated_at", "stock_quantity", "inv_updated_at",
	}
}

func sampleVariant() domain.ProductVariant {
	return domain.ProductVariant{
		ID:          "var-1",
		ProductID:   "prod-1",
		SKU:         "KIB-PUP-5KG",
		VariantName: "5kg bag",
		Price:       49.99,
		IsDefault:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestVariantRepository_Create_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewVariantRepository(mock)

	v := sampleVariant()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO product_variants").
		WithArgs(v.ID, v.ProductID, v.SKU, v.VariantName, v.Price, v.IsDefault, v.CreatedAt, v.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO inventories").
		WithArgs(v.ID, 25, v.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), &v, 25)
	require.NoError(t, err)
	require.NotNil(t, v.Inventory)
	assert.Equal(t, 25, v.Inventory.StockQuantity)
	assert.Equal(t, v.ID, v.Inventory.VariantID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVariantRepository_Create_DuplicateSKU_RollsBack(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewVariantRepository(mock)

	v := sampleVariant()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO product_variants").
		WithArgs(v.ID, v.ProductID, v.SKU, v.VariantName, v.Price, v.IsDefault, v.CreatedAt, v.UpdatedAt).
		WillReturnError(uniqueErr)
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &v, 25)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyExists), "expected ErrAlreadyExists, got: %v", err)
	assert.Nil(t, v.Inventory)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVariantRepository_Create_UnknownProduct_RollsBack(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewVariantRepository(mock)

	v := sampleVariant()
	v.ProductID = "missing-prod"

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO product_variants").
		WithArgs(v.ID, v.ProductID, v.SKU, v.VariantName, v.Price, v.IsDefault, v.CreatedAt, v.UpdatedAt).
		WillReturnError(fkErr)
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &v, 25)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrForeignKey), "expected ErrForeignKey, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVariantRepository_GetByID_WithInventory(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewVariantRepository(mock)

	v := sampleVariant()

	mock.ExpectQuery("SELECT .+ FROM product_variants v LEFT JOIN inventories i .+ WHERE v.id =").
		WithArgs(v.ID).
		WillReturnRows(pgxmock.NewRows(variantCols()).AddRow(
			v.ID, v.ProductID, v.SKU, v.VariantName, v.Price, v.IsDefault,
			v.CreatedAt, v.UpdatedAt, intPtr(12), &now,
		))

	got, err := repo.GetByID(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, v.SKU, got.SKU)
	require.NotNil(t, got.Inventory)
	assert.Equal(t, 12, got.Inventory.StockQuantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVariantRepository_GetByID_NoInventoryRow(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewVariantRepository(mock)

	v := sampleVariant()

	mock.ExpectQuery("SELECT .+ FROM product_variants v LEFT JOIN inventories i .+ WHERE v.id =").
		WithArgs(v.ID).
		WillReturnRows(pgxmock.NewRows(variantCols()).AddRow(
			v.ID, v.ProductID, v.SKU, v.VariantName, v.Price, v.IsDefault,
			v.CreatedAt, v.UpdatedAt, nil, nil,
		))

	got, err := repo.GetByID(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Inventory)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVariantRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewVariantRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM product_variants v LEFT JOIN inventories i .+ WHERE v.id =").
		WithArgs("missing-id").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID(context.Background(), "missing-id")
	assert.Nil(t, got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVariantRepository_ListByProduct_DefaultFirst(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewVariantRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM product_variants v .+ WHERE v.product_id = .+ ORDER BY v.is_default DESC").
		WithArgs("prod-1").
		WillReturnRows(pgxmock.NewRows(variantCols()).
			AddRow("var-1", "prod-1", "KIB-PUP-2KG", "2kg bag", 24.99, true, now, now, intPtr(40), &now).
			AddRow("var-2", "prod-1", "KIB-PUP-5KG", "5kg bag", 49.99, false, now, now, intPtr(10), &now))

	got, err := repo.ListByProduct(context.Background(), "prod-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].IsDefault)
	require.NotNil(t, got[1].Inventory)
	assert.Equal(t, 10, got[1].Inventory.StockQuantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVariantRepository_Update_WithStock(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewVariantRepository(mock)

	v := sampleVariant()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE product_variants").
		WithArgs(v.SKU, v.VariantName, v.Price, v.IsDefault, pgxmock.AnyArg(), v.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("INSERT INTO inventories .+ ON CONFLICT \\(variant_id\\) DO UPDATE").
		WithArgs(v.ID, 30, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), &v, intPtr(30))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVariantRepository_Update_WithoutStock(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewVariantRepository(mock)

	v := sampleVariant()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE product_variants").
		WithArgs(v.SKU, v.VariantName, v.Price, v.IsDefault, pgxmock.AnyArg(), v.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), &v, nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVariantRepository_Update_NotFound_RollsBack(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewVariantRepository(mock)

	v := sampleVariant()
	v.ID = "missing-id"

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE product_variants").
		WithArgs(v.SKU, v.VariantName, v.Price, v.IsDefault, pgxmock.AnyArg(), v.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), &v, intPtr(30))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVariantRepository_Delete_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewVariantRepository(mock)

	mock.ExpectExec("DELETE FROM product_variants WHERE id =").
		WithArgs("var-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(context.Background(), "var-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVariantRepository_Delete_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewVariantRepository(mock)

	mock.ExpectExec("DELETE FROM product_variants WHERE id =").
		WithArgs("missing-id").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "missing-id")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
