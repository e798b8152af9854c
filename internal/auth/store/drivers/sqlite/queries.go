package sqlite

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so the same queries run
// inside and outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Queries struct {
	db DBTX
}

func newQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

type userRow struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	DateOfBirth  string
	Gender       string
	PasswordHash string
	CreatedAt    int64
	UpdatedAt    int64
}

const userColumns = `id, first_name, last_name, email, date_of_birth, gender, password_hash, created_at, updated_at`

func scanUser(row *sql.Row) (userRow, error) {
	var u userRow
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.DateOfBirth,
		&u.Gender, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

const getUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = ?`

func (q *Queries) GetUserByID(ctx context.Context, id string) (userRow, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByID, id))
}

const getUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE email = ?`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (userRow, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByEmail, email))
}

const createUser = `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateUser(ctx context.Context, u userRow) error {
	_, err := q.db.ExecContext(ctx, createUser,
		u.ID, u.FirstName, u.LastName, u.Email, u.DateOfBirth,
		u.Gender, u.PasswordHash, u.CreatedAt, u.UpdatedAt,
	)
	return err
}

const countUsers = `SELECT COUNT(*) FROM users`

func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countUsers).Scan(&n)
	return n, err
}

type revokedTokenRow struct {
	JTI       string
	UserID    string
	Reason    string
	ExpiresAt int64
	RevokedAt int64
}

const createRevokedToken = `INSERT INTO revoked_tokens (jti, user_id, reason, expires_at, revoked_at) VALUES (?, ?, ?, ?, ?)`

func (q *Queries) CreateRevokedToken(ctx context.Context, r revokedTokenRow) error {
	_, err := q.db.ExecContext(ctx, createRevokedToken, r.JTI, r.UserID, r.Reason, r.ExpiresAt, r.RevokedAt)
	return err
}

const countRevokedToken = `SELECT COUNT(*) FROM revoked_tokens WHERE jti = ?`

func (q *Queries) CountRevokedToken(ctx context.Context, jti string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countRevokedToken, jti).Scan(&n)
	return n, err
}

const deleteExpiredRevokedTokens = `DELETE FROM revoked_tokens WHERE expires_at < ?`

func (q *Queries) DeleteExpiredRevokedTokens(ctx context.Context, now int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteExpiredRevokedTokens, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func toUnixMilli(t time.Time) int64 {
	return t.UnixMilli()
}

func fromUnixMilli(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
