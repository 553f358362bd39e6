package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"mentorhub-backend-go/internal/models"
	"mentorhub-backend-go/internal/store"
)

// AuthResult is returned by login and refresh.
type AuthResult struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresAt    int64        `json:"expiresAt"`
	Profile      *ProfileView `json:"profile"`
}

// AccountService handles signup and token issuance.
type AccountService struct {
	Users    store.UserStore
	Profiles store.ProfileStore
	Tokens   TokenService
}

func NewAccountService(users store.UserStore, profiles store.ProfileStore, tokens TokenService) *AccountService {
	return &AccountService{Users: users, Profiles: profiles, Tokens: tokens}
}

func (s *AccountService) Register(ctx context.Context, name, email, password, role string) (*ProfileView, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || strings.TrimSpace(password) == "" {
		return nil, ErrBadRequest("Name, email and password are required")
	}
	if role != models.RoleStudent && role != models.RoleMentor {
		return nil, ErrBadRequest("Role must be student or mentor")
	}
	if existing, err := s.Users.GetUserByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrBadRequest("User already exists")
	} else if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	hash, err := s.Tokens.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.Users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrBadRequest("User already exists")
		}
		return nil, err
	}
	profile := &models.Profile{
		ID:    user.ID,
		Name:  name,
		Email: email,
		Role:  role,
	}
	if err := s.Profiles.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return toProfileView(profile), nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, ErrUnauthorized("Authentication failed")
	}
	user, err := s.Users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, ErrUnauthorized("Authentication failed")
	}
	if !s.Tokens.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrUnauthorized("Authentication failed")
	}
	profile, err := s.Profiles.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, ErrUnauthorized("Authentication failed")
	}
	_ = s.Users.SetLastLogin(ctx, user.ID)
	return s.issueTokens(user.ID, user.Email, profile)
}

func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	token, claims, err := s.Tokens.ParseToken(refreshToken)
	if err != nil || !token.Valid || claims["typ"] != "refresh" {
		return nil, ErrUnauthorized("Authentication failed")
	}
	userID, _ := claims["sub"].(string)
	if userID == "" {
		return nil, ErrUnauthorized("Authentication failed")
	}
	user, err := s.Users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, ErrUnauthorized("Authentication failed")
	}
	profile, err := s.Profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, ErrUnauthorized("Authentication failed")
	}
	return s.issueTokens(user.ID, user.Email, profile)
}

func (s *AccountService) issueTokens(userID, email string, profile *models.Profile) (*AuthResult, error) {
	access, exp, err := s.Tokens.CreateAccessToken(userID, email, profile.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.Tokens.CreateRefreshToken(userID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    exp,
		Profile:      toProfileView(profile),
	}, nil
}
