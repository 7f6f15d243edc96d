package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/bizmanager-api/internal/model"
	"github.com/jwalitptl/bizmanager-api/internal/repository"
)

const clientColumns = `id, owner_id, full_name, phone, email, is_deleted, created_at, updated_at, deleted_at`

type clientRepository struct {
	BaseRepository
}

func NewClientRepository(base BaseRepository) repository.ClientRepository {
	return &clientRepository{base}
}

func (r *clientRepository) Create(ctx context.Context, client *model.Client) (err error) {
	defer r.track("client_create")(&err)

	client.Touch(time.Now().UTC())

	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO clients (`+clientColumns+`)
		VALUES (:id, :owner_id, :full_name, :phone, :email, :is_deleted, :created_at, :updated_at, :deleted_at)
	`, client)
	return translate("client", "create", err)
}

func (r *clientRepository) Find(ctx context.Context, ownerID, id uuid.UUID) (*model.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE id = $1 AND owner_id = $2 AND is_deleted = false
	`
	var client model.Client
	if err := r.db.GetContext(ctx, &client, query, id, ownerID); err != nil {
		return nil, translate("client", "get", err)
	}
	return &client, nil
}

func (r *clientRepository) List(ctx context.Context, ownerID uuid.UUID, filter model.ListFilter) ([]*model.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE owner_id = $1 AND is_deleted = false
		AND ($2 = '' OR full_name ILIKE $2 ESCAPE '\' OR email ILIKE $2 ESCAPE '\')
		ORDER BY created_at DESC
	`
	clients := []*model.Client{}
	if err := r.db.SelectContext(ctx, &clients, query, ownerID, searchPattern(filter)); err != nil {
		return nil, translate("client", "list", err)
	}
	return clients, nil
}

func (r *clientRepository) Update(ctx context.Context, client *model.Client) (err error) {
	defer r.track("client_update")(&err)

	query := `
		UPDATE clients
		SET full_name = $1, phone = $2, email = $3, updated_at = $4
		WHERE id = $5 AND owner_id = $6 AND is_deleted = false
	`
	client.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		client.FullName,
		client.Phone,
		client.Email,
		client.UpdatedAt,
		client.ID,
		client.OwnerID,
	)
	if err != nil {
		return translate("client", "update", err)
	}
	return expectOne("client", result)
}

func (r *clientRepository) SoftDelete(ctx context.Context, ownerID, id uuid.UUID, at time.Time) (err error) {
	defer r.track("client_delete")(&err)

	result, err := r.db.ExecContext(ctx, `
		UPDATE clients
		SET is_deleted = true, deleted_at = $1, updated_at = $1
		WHERE id = $2 AND owner_id = $3 AND is_deleted = false
	`, at, id, ownerID)
	if err != nil {
		return translate("client", "delete", err)
	}
	return expectOne("client", result)
}

func (r *clientRepository) EmailTaken(ctx context.Context, ownerID uuid.UUID, email string, exclude uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM clients
			WHERE owner_id = $1 AND lower(email) = lower($2) AND is_deleted = false AND id <> $3
		)
	`
	var taken bool
	if err := r.db.GetContext(ctx, &taken, query, ownerID, email, exclude); err != nil {
		return false, translate("client", "check", err)
	}
	return taken, nil
}
