package store

import (
	"context"

	"mentorhub-backend-go/internal/models"
)

func (p *Postgres) CreateRepository(ctx context.Context, r *models.Repository) error {
	ts := now()
	r.CreatedAt = ts
	r.UpdatedAt = ts
	_, err := p.db.ExecContext(ctx, `
INSERT INTO repositories (id, name, description, github_url, language, stars, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
`, r.ID, r.Name, r.Description, r.GithubURL, r.Language, r.Stars, ts)
	return translate(err)
}

func (p *Postgres) GetRepository(ctx context.Context, id string) (*models.Repository, error) {
	var r models.Repository
	err := p.db.GetContext(ctx, &r, `
SELECT id, name, description, github_url, language, stars, created_at, updated_at
FROM repositories
WHERE id = $1
`, id)
	if err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (p *Postgres) ListRepositories(ctx context.Context) ([]models.Repository, error) {
	repos := []models.Repository{}
	err := p.db.SelectContext(ctx, &repos, `
SELECT id, name, description, github_url, language, stars, created_at, updated_at
FROM repositories
ORDER BY stars DESC, name
`)
	if err != nil {
		return nil, translate(err)
	}
	return repos, nil
}

func (p *Postgres) UpdateRepository(ctx context.Context, r *models.Repository) error {
	r.UpdatedAt = now()
	res, err := p.db.ExecContext(ctx, `
UPDATE repositories
SET name = $2,
    description = $3,
    github_url = $4,
    language = $5,
    stars = $6,
    updated_at = $7
WHERE id = $1
`, r.ID, r.Name, r.Description, r.GithubURL, r.Language, r.Stars, r.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) DeleteRepository(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM repositories WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) AttachMentor(ctx context.Context, mentorID, repositoryID string) error {
	_, err := p.db.ExecContext(ctx, `
INSERT INTO mentor_repositories (mentor_id, repository_id, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (mentor_id, repository_id) DO NOTHING
`, mentorID, repositoryID, now())
	return translate(err)
}

func (p *Postgres) DetachMentor(ctx context.Context, mentorID, repositoryID string) error {
	_, err := p.db.ExecContext(ctx, `
DELETE FROM mentor_repositories WHERE mentor_id = $1 AND repository_id = $2
`, mentorID, repositoryID)
	return translate(err)
}

func (p *Postgres) ListRepositoriesForMentor(ctx context.Context, mentorID string) ([]models.Repository, error) {
	repos := []models.Repository{}
	err := p.db.SelectContext(ctx, &repos, `
SELECT r.id, r.name, r.description, r.github_url, r.language, r.stars, r.created_at, r.updated_at
FROM repositories r
JOIN mentor_repositories mr ON mr.repository_id = r.id
WHERE mr.mentor_id = $1
ORDER BY r.stars DESC, r.name
`, mentorID)
	if err != nil {
		return nil, translate(err)
	}
	return repos, nil
}
