package services

import (
	"context"
	"errors"
	"log"
	"time"

	"touragency/internal/adapters/persistence/models"
	"touragency/internal/adapters/persistence/repositories"
	"touragency/internal/adapters/registry"
	"touragency/internal/pkg/jwt"
	"touragency/internal/pkg/password"
)

// Auth errors. Login failures collapse into ErrInvalidCredentials on
// purpose: a caller must not be able to tell "no such account" from
// "wrong password" or "deactivated account".
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService handles authentication business logic
type AuthService struct {
	users  repositories.UserRepository
	tokens registry.TokenRegistry
	issuer *jwt.Issuer
}

// NewAuthService creates a new auth service
func NewAuthService(
	users repositories.UserRepository,
	tokens registry.TokenRegistry,
	issuer *jwt.Issuer,
) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		issuer: issuer,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	Phone       *string
	Address     *string
	DateOfBirth *time.Time
}

// AuthResponse is the bundle returned on login, registration and refresh.
type AuthResponse struct {
	Token        string           `json:"token"`
	RefreshToken string           `json:"refreshToken"`
	ExpiresAt    time.Time        `json:"expiresAt"`
	User         *models.UserInfo `json:"user"`
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, email, plaintext string) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// bcrypt comparison happens outside any lock; it is deliberately slow
	if !password.Verify(plaintext, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issueResponse(ctx, user)
}

// Register creates a new account and logs it in
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	// No unique-constraint error path exists downstream; the pre-check is
	// the duplicate guard.
	taken, err := s.users.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailExists
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        input.Phone,
		Address:      input.Address,
		DateOfBirth:  input.DateOfBirth,
		Role:         models.RoleCustomer,
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("User registered: %s (id=%d)", user.Email, user.ID)

	return s.issueResponse(ctx, user)
}

// Refresh rotates a refresh token: the presented value is redeemed
// (single use) and a brand-new access+refresh pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	email, err := s.tokens.Redeem(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	// The old token is already dead. If the account vanished or was
	// deactivated in the meantime, the session ends here.
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return s.issueResponse(ctx, user)
}

// UserFromToken resolves the current account behind an access token.
// The token arrives through the authorization gate, which has already
// verified the signature; here it is only decoded for its email claim.
func (s *AuthService) UserFromToken(ctx context.Context, accessToken string) (*models.UserInfo, error) {
	claims, err := jwt.Decode(accessToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Email == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return user.ToInfo(), nil
}

// ListUsers returns public projections of active accounts, newest first
func (s *AuthService) ListUsers(ctx context.Context, offset, limit int) ([]*models.UserInfo, int64, error) {
	users, total, err := s.users.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	infos := make([]*models.UserInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, u.ToInfo())
	}
	return infos, total, nil
}

// issueResponse mints the access token, registers a fresh refresh token
// and assembles the response bundle.
func (s *AuthService) issueResponse(ctx context.Context, user *models.User) (*AuthResponse, error) {
	token, expiresAt, err := s.issuer.Issue(user.ID, user.Email, user.FirstName, user.LastName, string(user.Role))
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.NewRefreshValue()
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Store(ctx, refreshToken, user.Email); err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token:        token,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		User:         user.ToInfo(),
	}, nil
}
