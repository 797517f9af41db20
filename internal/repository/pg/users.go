package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/BorisRostovskiy/usertable/internal/repository"
	"github.com/BorisRostovskiy/usertable/internal/service"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

const (
	errPgUniqueKeyViolation = "23505"

	couldNotRetrieveAffected = "could not retrieve affected rows: %w"
	schema                   = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
		CONSTRAINT id_uq UNIQUE (id),
		CONSTRAINT email_uq UNIQUE (email)
	);
	CREATE INDEX IF NOT EXISTS created_at_idx ON users USING btree(created_at);
`
)

type (
	// Repo implements service.UserRepo interface
	Repo struct {
		conn *sqlx.DB
		log  *logrus.Logger
	}
)

// New sets up a new Postgres repository.
func New(cfg *Config, log *logrus.Logger) (*Repo, error) {
	conn, err := setupConnectionPool(cfg)
	if err != nil {
		return nil, fmt.Errorf("an error occurred during setup connection pool: %w", err)
	}

	if cfg.ApplySchema {
		if err = applySchema(conn); err != nil {
			return nil, fmt.Errorf("an error occurred during applying schema: %w", err)
		}
	}

	return &Repo{conn: conn, log: log}, nil
}

// CreateUser creates new user with generated ID
func (r *Repo) CreateUser(ctx context.Context, newUser *service.User) (*service.User, error) {
	row := User{
		ID:        uuid.New().String(),
		Name:      newUser.Name,
		Email:     newUser.Email,
		CreatedAt: time.Now().UTC(),
	}
	row.UpdatedAt = row.CreatedAt

	_, err := r.conn.NamedExecContext(ctx,
		`INSERT INTO users (id, name, email, created_at, updated_at)
				VALUES (:id, :name, :email, :created_at, :updated_at)`, row)
	if err != nil {
		if isPgViolation(err, errPgUniqueKeyViolation) {
			return nil, repository.DuplicateKeyError
		}
		return nil, fmt.Errorf("could not create new user: %w", err)
	}

	created := row.toService()
	return &created, nil
}

// ListUsers returns all users, oldest first
func (r *Repo) ListUsers(ctx context.Context) ([]service.User, error) {
	users := make([]User, 0)
	err := r.conn.SelectContext(ctx, &users,
		`SELECT id, name, email, created_at, updated_at FROM users ORDER BY created_at ASC, id ASC`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []service.User{}, nil
		}
		return nil, fmt.Errorf("could not perform select all from users: %w", err)
	}

	result := make([]service.User, len(users))
	for i, u := range users {
		result[i] = u.toService()
	}
	r.log.WithField("component", "pg").Debugf("listed %d users", len(result))
	return result, nil
}

// UpdateUser overwrites name and email of a stored user
func (r *Repo) UpdateUser(ctx context.Context, user *service.User) error {
	result, err := r.conn.ExecContext(ctx,
		`UPDATE users SET name=$1, email=$2, updated_at=$3 WHERE id=$4`,
		user.Name, user.Email, time.Now().UTC(), user.ID.String())
	if err != nil {
		if isPgViolation(err, errPgUniqueKeyViolation) {
			return repository.DuplicateKeyError
		}
		return fmt.Errorf("could not update user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf(couldNotRetrieveAffected, err)
	}
	if affected == 0 {
		return repository.NoUsersFoundError
	}
	return nil
}

// GetUser retrieve user by ID
func (r *Repo) GetUser(ctx context.Context, userID service.UserID) (*service.User, error) {
	var user User
	err := r.conn.GetContext(ctx, &user,
		`SELECT id, name, email, created_at, updated_at FROM users WHERE id=$1`, userID.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.NoUsersFoundError
		}
		return nil, fmt.Errorf("could not select user %s: %w", userID, err)
	}
	found := user.toService()
	return &found, nil
}

// DeleteUser delete user by ID
func (r *Repo) DeleteUser(ctx context.Context, userID service.UserID) error {
	result, err := r.conn.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, userID.String())
	if err != nil {
		return fmt.Errorf("could not delete user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf(couldNotRetrieveAffected, err)
	}
	if affected == 0 {
		return repository.NoUsersFoundError
	}
	return nil
}

// TestConnection tests that the Store can properly connect to the Postgres Server.
func (r *Repo) TestConnection(ctx context.Context) error {
	return r.conn.PingContext(ctx)
}

// Close releases the connection pool
func (r *Repo) Close() error {
	return r.conn.Close()
}

func setupConnectionPool(cfg *Config) (*sqlx.DB, error) {
	conn, err := sqlx.Connect("pgx", cfg.dsn())
	if err != nil {
		return nil, err
	}
	if cfg.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return conn, nil
}

// applySchema applies the schema to a connection
func applySchema(conn *sqlx.DB) error {
	tx, err := conn.Begin()
	if err != nil {
		return err
	}

	defer func() { _ = tx.Rollback() }()

	if _, err = tx.Exec(schema); err != nil {
		return err
	}

	return tx.Commit()
}

func isPgViolation(err error, codes ...string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	for _, code := range codes {
		if pgErr.Code == code {
			return true
		}
	}
	return false
}
