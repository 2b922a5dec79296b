package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/Ayesha-Ali676/medical-assistant/internal/platform/auth"
)

var (
	// ErrDuplicate is returned from Signup when the username or email is taken.
	ErrDuplicate = errors.New("username or email already registered")
	// ErrInvalidCredentials is returned from Login on a failed match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service handles clinician signup and login.
type Service struct {
	repo   Repository
	tokens *auth.TokenIssuer
}

func NewService(repo Repository, tokens *auth.TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// SignupInput is the registration payload.
type SignupInput struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	FullName         string `json:"full_name"`
	MedicalLicenseID string `json:"medical_license_id"`
}

func (in *SignupInput) validate() error {
	if in.Username == "" {
		return fmt.Errorf("username is required")
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return fmt.Errorf("valid email is required")
	}
	if len(in.Password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	if in.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	return nil
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Signup registers a new clinician, rejecting duplicate usernames or emails.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*Clinician, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByUsername(ctx, in.Username); err == nil {
		return nil, ErrDuplicate
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrDuplicate
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	c := &Clinician{
		Username:         in.Username,
		Email:            in.Email,
		FullName:         in.FullName,
		MedicalLicenseID: in.MedicalLicenseID,
		PasswordHash:     hashPassword(in.Password),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Session is returned from a successful login.
type Session struct {
	Token     string     `json:"access_token"`
	TokenType string     `json:"token_type"`
	Clinician *Clinician `json:"clinician"`
}

// Login authenticates by username or email and returns a signed token.
func (s *Service) Login(ctx context.Context, login, password string) (*Session, error) {
	c, err := s.repo.GetByUsername(ctx, login)
	if errors.Is(err, ErrNotFound) {
		c, err = s.repo.GetByEmail(ctx, login)
	}
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if c.PasswordHash != hashPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(c.ID.String(), c.Username, c.FullName)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}
	return &Session{Token: token, TokenType: "bearer", Clinician: c}, nil
}
