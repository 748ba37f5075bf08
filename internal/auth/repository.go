package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zerodivida/zerodivida/internal/platform/db"
	"github.com/zerodivida/zerodivida/internal/shared"
)

// NewUser carries the fields persisted at registration. The credential must
// already be hashed; the repository refuses to write a legacy value.
type NewUser struct {
	Name       string
	Email      string
	CPF        string
	Age        int
	Credential Credential
}

// Repository defines persistence operations for the auth module.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByCPF(ctx context.Context, cpf string) (*User, error)
	ExistsByEmailOrCPF(ctx context.Context, email, cpf string) (bool, error)
	CreateUser(ctx context.Context, user NewUser) (int64, error)
	UpdateCredential(ctx context.Context, userID int64, cred Credential) error
	GetProfile(ctx context.Context, id int64) (*Profile, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const userColumns = `id, name, email, cpf, age, password, created_at, updated_at`

// FindByEmail fetches a user by email.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findBy(ctx, "email", email)
}

// FindByCPF fetches a user by national id.
func (r *PGRepository) FindByCPF(ctx context.Context, cpf string) (*User, error) {
	return r.findBy(ctx, "cpf", cpf)
}

func (r *PGRepository) findBy(ctx context.Context, column, value string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1`, userColumns, column)
	row := r.pool.QueryRow(ctx, query, value)

	var user User
	var stored string
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.CPF, &user.Age, &stored, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	// The encoding variant is fixed here, at the data-access boundary.
	user.Credential = CredentialFromStored(stored)
	return &user, nil
}

// ExistsByEmailOrCPF reports whether any user already claims the email or cpf.
func (r *PGRepository) ExistsByEmailOrCPF(ctx context.Context, email, cpf string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR cpf = $2)`,
		email, cpf,
	).Scan(&exists)
	return exists, err
}

// CreateUser inserts a new account and returns its id. The duplicate check
// and the insert run in one transaction; a concurrent insert slipping between
// them still trips the unique constraints on email and cpf, and both paths
// surface as ErrDuplicateUser.
func (r *PGRepository) CreateUser(ctx context.Context, user NewUser) (int64, error) {
	if user.Credential.Kind() != CredentialHashed {
		return 0, errors.New("auth: refusing to store a non-hashed credential")
	}
	var id int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR cpf = $2)`,
			user.Email, user.CPF,
		).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return shared.ErrDuplicateUser
		}
		return tx.QueryRow(ctx,
			`INSERT INTO users (name, email, cpf, age, password) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			user.Name, user.Email, user.CPF, user.Age, user.Credential.Stored(),
		).Scan(&id)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return 0, shared.ErrDuplicateUser
		}
		return 0, err
	}
	return id, nil
}

// UpdateCredential replaces the stored credential for a user. Only hashed
// values are accepted; legacy is never a writable target.
func (r *PGRepository) UpdateCredential(ctx context.Context, userID int64, cred Credential) error {
	if cred.Kind() != CredentialHashed {
		return errors.New("auth: refusing to store a non-hashed credential")
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password = $1, updated_at = now() WHERE id = $2`,
		cred.Stored(), userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GetProfile fetches the public profile fields for the frontend widget.
func (r *PGRepository) GetProfile(ctx context.Context, id int64) (*Profile, error) {
	var p Profile
	err := r.pool.QueryRow(ctx, `SELECT id, name, email FROM users WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ Repository = (*PGRepository)(nil)
