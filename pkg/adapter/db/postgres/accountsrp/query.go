package accountsrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/goride/goride/pkg/adapter/db/postgres"
	"github.com/goride/goride/pkg/core/cerr"
	"github.com/goride/goride/pkg/core/model"
)

// uniqueViolation is the SQLSTATE of duplicate key errors.
const uniqueViolation = "23505"

type gAccount struct {
	ID           uuid.UUID `gorm:"primaryKey;type:uuid"`
	Email        string
	DisplayName  string
	PhotoURL     string `gorm:"column:photo_url"`
	PasswordHash string
	CreatedAt    time.Time
}

func (ga *gAccount) TableName() string {
	return "accounts"
}

func (ga *gAccount) Model() *model.Account {
	return &model.Account{
		ID:           ga.ID,
		Email:        ga.Email,
		DisplayName:  ga.DisplayName,
		PhotoURL:     ga.PhotoURL,
		PasswordHash: ga.PasswordHash,
		CreatedAt:    ga.CreatedAt,
	}
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, a *model.Account) error {
	ga := &gAccount{
		ID:           a.ID,
		Email:        a.Email,
		DisplayName:  a.DisplayName,
		PhotoURL:     a.PhotoURL,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt,
	}
	err := q.GORM(ctx).Create(ga).Error
	var pgErr *pgconn.PgError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &pgErr) && pgErr.Code == uniqueViolation:
		return cerr.Conflict(fmt.Errorf("email is taken: %w", err))
	default:
		return fmt.Errorf("query: %w", err)
	}
}

func ByEmail[Q postgres.Queryer](ctx context.Context, q Q, email string) (*model.Account, error) {
	var ga gAccount
	err := q.GORM(ctx).Where("email=?", email).Take(&ga).Error
	switch {
	case err == nil:
		return ga.Model(), nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.NotFound(err)
	default:
		return nil, fmt.Errorf("query: %w", err)
	}
}
