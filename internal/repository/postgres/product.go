package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/bizmanager-api/internal/model"
	"github.com/jwalitptl/bizmanager-api/internal/repository"
)

const productColumns = `id, owner_id, name, description, unit_type, product_type,
	last_purchase_price, sale_price, stock_quantity, stock_control_enabled,
	is_deleted, created_at, updated_at, deleted_at`

type productRepository struct {
	BaseRepository
}

func NewProductRepository(base BaseRepository) repository.ProductRepository {
	return &productRepository{base}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) (err error) {
	defer r.track("product_create")(&err)

	product.Touch(time.Now().UTC())

	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES (
			:id, :owner_id, :name, :description, :unit_type, :product_type,
			:last_purchase_price, :sale_price, :stock_quantity, :stock_control_enabled,
			:is_deleted, :created_at, :updated_at, :deleted_at
		)
	`, product)
	return translate("product", "create", err)
}

func (r *productRepository) Find(ctx context.Context, ownerID, id uuid.UUID) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1 AND owner_id = $2 AND is_deleted = false
	`
	var product model.Product
	if err := r.db.GetContext(ctx, &product, query, id, ownerID); err != nil {
		return nil, translate("product", "get", err)
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, ownerID uuid.UUID, filter model.ListFilter) ([]*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE owner_id = $1 AND is_deleted = false
		AND ($2 = '' OR name ILIKE $2 ESCAPE '\')
		ORDER BY created_at DESC
	`
	products := []*model.Product{}
	if err := r.db.SelectContext(ctx, &products, query, ownerID, searchPattern(filter)); err != nil {
		return nil, translate("product", "list", err)
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) (err error) {
	defer r.track("product_update")(&err)

	product.UpdatedAt = time.Now().UTC()

	result, err := r.db.NamedExecContext(ctx, `
		UPDATE products SET
			name = :name,
			description = :description,
			unit_type = :unit_type,
			product_type = :product_type,
			last_purchase_price = :last_purchase_price,
			sale_price = :sale_price,
			stock_quantity = :stock_quantity,
			stock_control_enabled = :stock_control_enabled,
			updated_at = :updated_at
		WHERE id = :id AND owner_id = :owner_id AND is_deleted = false
	`, product)
	if err != nil {
		return translate("product", "update", err)
	}
	return expectOne("product", result)
}

func (r *productRepository) SoftDelete(ctx context.Context, ownerID, id uuid.UUID, at time.Time) (err error) {
	defer r.track("product_delete")(&err)

	result, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET is_deleted = true, deleted_at = $1, updated_at = $1
		WHERE id = $2 AND owner_id = $3 AND is_deleted = false
	`, at, id, ownerID)
	if err != nil {
		return translate("product", "delete", err)
	}
	return expectOne("product", result)
}
