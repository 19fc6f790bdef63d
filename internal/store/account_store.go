package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrUsernameTaken   = errors.New("username already taken")
)

type Account struct {
	ID           string
	Username     string
	PasswordHash string
	DisplayName  string
	CreatedAt    time.Time
}

type AccountStore struct {
	db *pgxpool.Pool
}

func NewAccountStore(db *pgxpool.Pool) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) Create(ctx context.Context, a Account) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO accounts (id, username, password_hash, display_name)
		 VALUES ($1, $2, $3, $4)`,
		a.ID, a.Username, a.PasswordHash, a.DisplayName,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrUsernameTaken
	}
	return err
}

func (s *AccountStore) GetByUsername(ctx context.Context, username string) (Account, error) {
	var a Account
	err := s.db.QueryRow(ctx,
		`SELECT id, username, password_hash, display_name, created_at
		 FROM accounts WHERE username = $1`,
		username,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.DisplayName, &a.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrAccountNotFound
	}
	if err != nil {
		return Account{}, err
	}
	return a, nil
}

func (s *AccountStore) GetByID(ctx context.Context, id string) (Account, error) {
	var a Account
	err := s.db.QueryRow(ctx,
		`SELECT id, username, password_hash, display_name, created_at
		 FROM accounts WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.DisplayName, &a.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrAccountNotFound
	}
	if err != nil {
		return Account{}, err
	}
	return a, nil
}
