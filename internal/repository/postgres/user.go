package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/bizmanager-api/internal/model"
	"github.com/jwalitptl/bizmanager-api/internal/repository"
)

const userColumns = `id, username, email, password_hash, is_active, created_at, updated_at`

type userRepository struct {
	BaseRepository
}

func NewUserRepository(base BaseRepository) repository.UserRepository {
	return &userRepository{base}
}

func (r *userRepository) CreateWithAccount(ctx context.Context, user *model.User, account *model.Account) (err error) {
	defer r.track("user_create")(&err)

	now := time.Now().UTC()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt, user.UpdatedAt = now, now
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	account.UserID = user.ID
	account.CreatedAt, account.UpdatedAt = now, now

	err = r.WithTx(ctx, nil, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO users (`+userColumns+`)
			VALUES (:id, :username, :email, :password_hash, :is_active, :created_at, :updated_at)
		`, user); err != nil {
			return err
		}

		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO accounts (id, user_id, full_name, phone, created_at, updated_at)
			VALUES (:id, :user_id, :full_name, :phone, :created_at, :updated_at)
		`, account)
		return err
	})
	return translate("user", "create", err)
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, translate("user", "get", err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	if err != nil {
		return nil, translate("user", "get", err)
	}
	return &user, nil
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username)
	if err != nil {
		return false, translate("user", "check", err)
	}
	return exists, nil
}
