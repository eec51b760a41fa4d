package server

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/types"
)

// UserService provides business logic for user authentication operations
type UserService struct {
	db             UserStore
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(db UserStore, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		db:             db,
		passwordConfig: passwordConfig,
	}
}

// Register creates a new user with password authentication
func (s *UserService) Register(ctx context.Context, req *types.CreateUserRequest) (*types.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}
	if err := s.passwordConfig.CheckLength(req.Password); err != nil {
		return nil, &ErrValidation{Field: "password", Message: fmt.Sprintf("must be at most %d bytes", config.MaxPasswordBytes-len(s.passwordConfig.Pepper))}
	}

	// Fast path; the unique constraint below is what actually decides
	exists, err := s.db.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, storeError("check email existence", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	dbUser, err := s.db.CreateUser(ctx, &db.UserCreateInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if db.IsConflict(err, db.UsersEmailKey) {
			return nil, &ErrEmailAlreadyExists{Email: req.Email}
		}
		return nil, storeError("create user", err)
	}

	logrus.WithField("user_id", dbUser.ID).Info("user registered")
	return convertDBUserToTypesUser(dbUser), nil
}

// Login authenticates a user and returns user data
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}

	dbUser, err := s.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, storeError("get user by email", err)
	}

	// Security: Always return generic error if user not found or password wrong
	if dbUser == nil {
		s.passwordConfig.BurnVerify(req.Password)
		return nil, &ErrInvalidCredentials{}
	}

	if !s.passwordConfig.VerifyPassword(req.Password, dbUser.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return convertDBUserToTypesUser(dbUser), nil
}
