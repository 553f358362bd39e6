package store

import (
	"context"

	"mentorhub-backend-go/internal/models"
)

func (p *Postgres) CreateUser(ctx context.Context, u *models.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now()
	}
	_, err := p.db.ExecContext(ctx, `
INSERT INTO users (id, email, password_hash, created_at)
VALUES ($1, $2, $3, $4)
`, u.ID, u.Email, u.PasswordHash, u.CreatedAt)
	return translate(err)
}

func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := p.db.GetContext(ctx, &u, `
SELECT id, email, password_hash, created_at, last_login_at
FROM users
WHERE lower(email) = lower($1)
`, email)
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (p *Postgres) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := p.db.GetContext(ctx, &u, `
SELECT id, email, password_hash, created_at, last_login_at
FROM users
WHERE id = $1
`, id)
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (p *Postgres) SetLastLogin(ctx context.Context, id string) error {
	_, err := p.db.ExecContext(ctx, `UPDATE users SET last_login_at = $1 WHERE id = $2`, now(), id)
	return translate(err)
}
