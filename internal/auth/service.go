package auth

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	userDatamodel "github.com/assetvault/asset-management/internal/core/datamodel/user"
)

type UserRepository interface {
	GetByUsername(username string) (*userDatamodel.User, error)
	Exists(username string) (bool, error)
	Create(u *userDatamodel.User) error
}

// Service performs authentication business logic.
type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// Register creates an account and immediately issues a token, matching
// the register-then-login-free flow of the web client.
func (s *Service) Register(dto RegisterDTO) (*TokenOut, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.Exists(dto.Username)
	if err != nil {
		s.logger.Error("register: username lookup failed", "error", err, "username", dto.Username)
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	role := dto.Role
	if role == "" {
		role = userDatamodel.RoleStaff
	}

	u := &userDatamodel.User{
		Username:     dto.Username,
		PasswordHash: string(hash),
		FullName:     dto.FullName,
		Role:         role,
	}
	if err := s.userRepo.Create(u); err != nil {
		s.logger.Error("register: create failed", "error", err, "username", dto.Username)
		return nil, err
	}

	s.logger.Info("user registered", "username", dto.Username, "role", role)
	return s.issueToken(dto.Username, role)
}

// Authenticate validates credentials and returns a signed token.
func (s *Service) Authenticate(dto LoginDTO) (*TokenOut, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.userRepo.GetByUsername(dto.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	role := u.Role
	if role == "" {
		role = userDatamodel.RoleStaff
	}

	return s.issueToken(u.Username, role)
}

// ValidateAccessToken validates a bearer token and returns its claims.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

func (s *Service) issueToken(username, role string) (*TokenOut, error) {
	token, err := s.tokenGenerator.GenerateToken(username, role)
	if err != nil {
		s.logger.Error("token generation failed", "error", err, "username", username)
		return nil, err
	}
	return &TokenOut{AccessToken: token, TokenType: "bearer"}, nil
}
