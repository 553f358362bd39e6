package store

import (
	"context"

	"mentorhub-backend-go/internal/models"
)

func (p *Postgres) CreateProfile(ctx context.Context, profile *models.Profile) error {
	ts := now()
	profile.CreatedAt = ts
	profile.UpdatedAt = ts
	if len(profile.Skills) == 0 {
		profile.Skills = []byte(`[]`)
	}
	if len(profile.Interests) == 0 {
		profile.Interests = []byte(`[]`)
	}
	_, err := p.db.ExecContext(ctx, `
INSERT INTO profiles (id, name, email, role, bio, profile_pic, skills, interests, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
`, profile.ID, profile.Name, profile.Email, profile.Role, profile.Bio, profile.ProfilePic, profile.Skills, profile.Interests, ts)
	return translate(err)
}

func (p *Postgres) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	err := p.db.GetContext(ctx, &profile, `
SELECT id, name, email, role, bio, profile_pic, skills, interests, created_at, updated_at
FROM profiles
WHERE id = $1
`, id)
	if err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (p *Postgres) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	profile.UpdatedAt = now()
	res, err := p.db.ExecContext(ctx, `
UPDATE profiles
SET name = $2,
    bio = $3,
    profile_pic = $4,
    skills = $5,
    interests = $6,
    updated_at = $7
WHERE id = $1
`, profile.ID, profile.Name, profile.Bio, profile.ProfilePic, profile.Skills, profile.Interests, profile.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) ListMentorsForRepository(ctx context.Context, repositoryID string) ([]models.Profile, error) {
	mentors := []models.Profile{}
	err := p.db.SelectContext(ctx, &mentors, `
SELECT pr.id, pr.name, pr.email, pr.role, pr.bio, pr.profile_pic, pr.skills, pr.interests, pr.created_at, pr.updated_at
FROM profiles pr
JOIN mentor_repositories mr ON mr.mentor_id = pr.id
WHERE mr.repository_id = $1
ORDER BY pr.name
`, repositoryID)
	if err != nil {
		return nil, translate(err)
	}
	return mentors, nil
}
