package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jwalitptl/bizmanager-api/internal/model"
	"github.com/jwalitptl/bizmanager-api/internal/repository"
	"github.com/jwalitptl/bizmanager-api/pkg/errors"
)

const serviceColumns = `id, owner_id, name, description, pricing_type, base_price, estimated_time,
	is_deleted, created_at, updated_at, deleted_at`

const usageColumns = `id, service_id, product_id, owner_id, quantity`

type serviceRepository struct {
	BaseRepository
}

func NewServiceRepository(base BaseRepository) repository.ServiceRepository {
	return &serviceRepository{base}
}

func (r *serviceRepository) Create(ctx context.Context, service *model.Service) (err error) {
	defer r.track("service_create")(&err)

	service.Touch(time.Now().UTC())

	err = r.WithTx(ctx, serializable, func(tx *sqlx.Tx) error {
		if err := resolveProducts(ctx, tx, service.OwnerID, service.Products); err != nil {
			return err
		}

		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO services (`+serviceColumns+`)
			VALUES (
				:id, :owner_id, :name, :description, :pricing_type, :base_price, :estimated_time,
				:is_deleted, :created_at, :updated_at, :deleted_at
			)
		`, service); err != nil {
			return err
		}

		return insertUsages(ctx, tx, service)
	})
	return translate("service", "create", err)
}

func (r *serviceRepository) Find(ctx context.Context, ownerID, id uuid.UUID) (*model.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE id = $1 AND owner_id = $2 AND is_deleted = false
	`
	var service model.Service
	if err := r.db.GetContext(ctx, &service, query, id, ownerID); err != nil {
		return nil, translate("service", "get", err)
	}

	if err := r.loadUsages(ctx, []*model.Service{&service}); err != nil {
		return nil, translate("service", "get", err)
	}
	return &service, nil
}

func (r *serviceRepository) List(ctx context.Context, ownerID uuid.UUID, filter model.ListFilter) ([]*model.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE owner_id = $1 AND is_deleted = false
		AND ($2 = '' OR name ILIKE $2 ESCAPE '\')
		ORDER BY created_at DESC
	`
	services := []*model.Service{}
	if err := r.db.SelectContext(ctx, &services, query, ownerID, searchPattern(filter)); err != nil {
		return nil, translate("service", "list", err)
	}

	if err := r.loadUsages(ctx, services); err != nil {
		return nil, translate("service", "list", err)
	}
	return services, nil
}

func (r *serviceRepository) Update(ctx context.Context, service *model.Service, replaceUsages bool) (err error) {
	defer r.track("service_update")(&err)

	service.UpdatedAt = time.Now().UTC()

	err = r.WithTx(ctx, serializable, func(tx *sqlx.Tx) error {
		if replaceUsages {
			if err := resolveProducts(ctx, tx, service.OwnerID, service.Products); err != nil {
				return err
			}
		}

		result, err := tx.NamedExecContext(ctx, `
			UPDATE services SET
				name = :name,
				description = :description,
				pricing_type = :pricing_type,
				base_price = :base_price,
				estimated_time = :estimated_time,
				updated_at = :updated_at
			WHERE id = :id AND owner_id = :owner_id AND is_deleted = false
		`, service)
		if err != nil {
			return err
		}
		if err := expectOne("service", result); err != nil {
			return err
		}

		if !replaceUsages {
			return nil
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM service_products WHERE service_id = $1`, service.ID); err != nil {
			return err
		}
		return insertUsages(ctx, tx, service)
	})
	return translate("service", "update", err)
}

func (r *serviceRepository) SoftDelete(ctx context.Context, ownerID, id uuid.UUID, at time.Time) (err error) {
	defer r.track("service_delete")(&err)

	result, err := r.db.ExecContext(ctx, `
		UPDATE services
		SET is_deleted = true, deleted_at = $1, updated_at = $1
		WHERE id = $2 AND owner_id = $3 AND is_deleted = false
	`, at, id, ownerID)
	if err != nil {
		return translate("service", "delete", err)
	}
	return expectOne("service", result)
}

// loadUsages fills Products on every service with a single query.
func (r *serviceRepository) loadUsages(ctx context.Context, services []*model.Service) error {
	if len(services) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*model.Service, len(services))
	ids := make([]string, 0, len(services))
	for _, s := range services {
		s.Products = []model.ServiceProduct{}
		byID[s.ID] = s
		ids = append(ids, s.ID.String())
	}

	var usages []model.ServiceProduct
	err := r.db.SelectContext(ctx, &usages, `
		SELECT `+usageColumns+`
		FROM service_products
		WHERE service_id = ANY($1::uuid[])
		ORDER BY service_id, product_id
	`, pq.StringArray(ids))
	if err != nil {
		return err
	}

	for _, u := range usages {
		if s, ok := byID[u.ServiceID]; ok {
			s.Products = append(s.Products, u)
		}
	}
	return nil
}

// resolveProducts checks that every referenced product is a live product of
// owner. It reads inside tx so the check and the inserts see one snapshot.
func resolveProducts(ctx context.Context, tx *sqlx.Tx, ownerID uuid.UUID, usages []model.ServiceProduct) error {
	wanted := model.ProductIDs(usages)
	if len(wanted) == 0 {
		return nil
	}

	ids := make([]string, 0, len(wanted))
	for _, id := range wanted {
		ids = append(ids, id.String())
	}

	var found []uuid.UUID
	err := tx.SelectContext(ctx, &found, `
		SELECT id FROM products
		WHERE id = ANY($1::uuid[]) AND owner_id = $2 AND is_deleted = false
	`, pq.StringArray(ids), ownerID)
	if err != nil {
		return err
	}

	if len(found) != len(wanted) {
		return repository.ErrUnknownProducts
	}
	return nil
}

func insertUsages(ctx context.Context, tx *sqlx.Tx, service *model.Service) error {
	for i := range service.Products {
		u := &service.Products[i]
		if u.ProductID == uuid.Nil {
			return errors.Integrity(fmt.Errorf("usage %d of service %s has no product", i, service.ID))
		}
		u.ID = uuid.New()
		u.ServiceID = service.ID
		u.OwnerID = service.OwnerID

		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO service_products (`+usageColumns+`)
			VALUES (:id, :service_id, :product_id, :owner_id, :quantity)
		`, u); err != nil {
			return err
		}
	}
	if service.Products == nil {
		service.Products = []model.ServiceProduct{}
	}
	return nil
}
