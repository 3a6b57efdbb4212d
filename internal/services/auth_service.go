package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"marketplace/internal/apperror"
	"marketplace/internal/models"
	"marketplace/internal/repositories"
	"marketplace/internal/validation"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the bcrypt cost used for every stored password.
const passwordCost = 10

// Claims is the payload of an access token.
type Claims struct {
	UserID string `json:"userId"`
	jwt.StandardClaims
}

// AuthService handles business logic for authentication.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
	now        func() time.Time
}

// NewAuthService creates a new AuthService issuing tokens valid for tokenTTL.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: tokenTTL,
		now:        time.Now,
	}
}

// Register creates a user with a hashed password and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, req *validation.RegisterRequest) (*models.User, string, error) {
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, "", apperror.NewDuplicateKey("email", nil)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, "", apperror.NewInternal("failed to check email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordCost)
	if err != nil {
		return nil, "", apperror.NewInternal("failed to hash password", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}
	user := &models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, "", apperror.NewDuplicateKey("email", err)
		}
		return nil, "", apperror.NewInternal("failed to register user", err)
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login checks the credentials and returns the user with a fresh token. The
// error is the same whether the email is unknown or the password is wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", apperror.NewInvalidCredentials()
		}
		return nil, "", apperror.NewInternal("failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperror.NewInvalidCredentials()
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// IssueToken signs an HS256 token carrying userID.
func (s *AuthService) IssueToken(userID uuid.UUID) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID.String(),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(s.tokenDurat).Unix(),
			IssuedAt:  now.Unix(),
		},
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperror.NewInternal("failed to generate token", err)
	}
	return tokenString, nil
}

// ValidateToken parses and verifies a token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors == jwt.ValidationErrorExpired {
			return nil, apperror.NewTokenExpired(err)
		}
		return nil, apperror.NewInvalidToken(err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, apperror.NewInvalidToken(nil)
	}
	return claims, nil
}

// ResolveToken verifies a token and loads the user it was issued to.
func (s *AuthService) ResolveToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperror.NewInvalidToken(err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.New(apperror.InvalidToken, "Token is not valid.", err)
		}
		return nil, apperror.NewInternal("failed to load token user", err)
	}
	return user, nil
}

// CreateAdmin grants the admin role to the account registered with email,
// creating the account when it does not exist yet.
func (s *AuthService) CreateAdmin(ctx context.Context, email, username, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	existing, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.userRepo.UpdateRole(ctx, existing.ID, models.RoleAdmin); err != nil {
			return nil, fmt.Errorf("failed to promote %s: %w", email, err)
		}
		existing.Role = models.RoleAdmin
		log.Printf("Promoted existing user %s to admin", existing.ID)
		return existing, nil
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("failed to look up %s: %w", email, err)
	}

	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{Email: email, Username: username, PasswordHash: string(hash), Role: models.RoleAdmin}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	log.Printf("Created admin user %s", user.ID)
	return user, nil
}
