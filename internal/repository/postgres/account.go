package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/bizmanager-api/internal/model"
	"github.com/jwalitptl/bizmanager-api/internal/repository"
)

type accountRepository struct {
	BaseRepository
}

func NewAccountRepository(base BaseRepository) repository.AccountRepository {
	return &accountRepository{base}
}

func (r *accountRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Account, error) {
	query := `
		SELECT id, user_id, full_name, phone, created_at, updated_at
		FROM accounts
		WHERE user_id = $1
	`
	var account model.Account
	if err := r.db.GetContext(ctx, &account, query, userID); err != nil {
		return nil, translate("account", "get", err)
	}
	return &account, nil
}

func (r *accountRepository) Update(ctx context.Context, account *model.Account) (err error) {
	defer r.track("account_update")(&err)

	query := `
		UPDATE accounts
		SET full_name = $1, phone = $2, updated_at = $3
		WHERE id = $4
	`
	account.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		account.FullName,
		account.Phone,
		account.UpdatedAt,
		account.ID,
	)
	if err != nil {
		return translate("account", "update", err)
	}
	return expectOne("account", result)
}
