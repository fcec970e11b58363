package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"marketpos/internal/model"
	"marketpos/internal/repository"
)

// --- DTOs ---

type CreateUserRequest struct {
	Username    string   `json:"username" binding:"required"`
	Password    string   `json:"password" binding:"required,min=4"`
	Role        string   `json:"role" binding:"required"`
	Phone       string   `json:"phone"`
	Address     string   `json:"address"`
	Permissions []string `json:"permissions"`
}

type UpdateUserRequest struct {
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
	Phone       string   `json:"phone"`
	Address     string   `json:"address"`
	Permissions []string `json:"permissions"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// --- Interface ---

type UserService interface {
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	CreateUser(ctx context.Context, actorID string, req CreateUserRequest) (*model.User, error)
	UpdateUser(ctx context.Context, actorID, id string, req UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, actorID, id string) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context, page, limit int) ([]model.User, int64, error)
}

type userService struct {
	repo      repository.UserRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
}

func NewUserService(repo repository.UserRepository, auditRepo repository.AuditRepository, txManager repository.TransactionManager) UserService {
	return &userService{repo: repo, auditRepo: auditRepo, txManager: txManager}
}

func validRole(role string) bool {
	return role == model.RoleManager || role == model.RoleStaff
}

func validPermissions(codes []string) error {
	known := make(map[string]bool, len(model.AllPermissions))
	for _, p := range model.AllPermissions {
		known[p] = true
	}
	for _, c := range codes {
		if !known[c] {
			return fmt.Errorf("unknown permission code %q", c)
		}
	}
	return nil
}

// JWTSecret resolves the signing key; the fallback is for development only.
func JWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "dev_only_secret"
	}
	return []byte(secret)
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, errors.New("invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid username or password")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID.String(),
		"role":  user.Role,
		"perms": user.Permissions,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString(JWTSecret())
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &TokenResponse{Token: signed, User: user}, nil
}

func (s *userService) CreateUser(ctx context.Context, actorID string, req CreateUserRequest) (*model.User, error) {
	if !validRole(req.Role) {
		return nil, errors.New("invalid role: must be manager or staff")
	}
	if err := validPermissions(req.Permissions); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return nil, errors.New("username already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &model.User{
		Username:    req.Username,
		Password:    string(hashed),
		Role:        req.Role,
		Phone:       req.Phone,
		Address:     req.Address,
		StartDate:   time.Now(),
		Permissions: req.Permissions,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.repo.Create(txCtx, user); createErr != nil {
			return createErr
		}
		return s.auditRepo.Log(txCtx, &model.AuditLog{
			UserID:     parseUserID(actorID),
			Action:     model.ActionCreateUser,
			EntityID:   user.ID.String(),
			EntityName: user.Username,
			Details:    fmt.Sprintf(`{"role": %q}`, user.Role),
		})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, actorID, id string, req UpdateUserRequest) (*model.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if req.Role != "" {
		if !validRole(req.Role) {
			return nil, errors.New("invalid role: must be manager or staff")
		}
		user.Role = req.Role
	}
	if req.Username != "" && req.Username != user.Username {
		if _, lookupErr := s.repo.GetByUsername(ctx, req.Username); lookupErr == nil {
			return nil, errors.New("username already exists")
		}
		user.Username = req.Username
	}
	if req.Password != "" {
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, errors.New("failed to hash password")
		}
		user.Password = string(hashed)
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.Permissions != nil {
		if permErr := validPermissions(req.Permissions); permErr != nil {
			return nil, permErr
		}
		user.Permissions = req.Permissions
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.repo.Update(txCtx, user); updateErr != nil {
			return updateErr
		}
		return s.auditRepo.Log(txCtx, &model.AuditLog{
			UserID:     parseUserID(actorID),
			Action:     model.ActionUpdateUser,
			EntityID:   user.ID.String(),
			EntityName: user.Username,
			Details:    fmt.Sprintf(`{"role": %q}`, user.Role),
		})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, actorID, id string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("user not found")
		}
		return fmt.Errorf("database error: %w", err)
	}
	if user.Username == "admin" {
		return errors.New("the built-in admin account cannot be deleted")
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if delErr := s.repo.Delete(txCtx, userID); delErr != nil {
			return delErr
		}
		return s.auditRepo.Log(txCtx, &model.AuditLog{
			UserID:     parseUserID(actorID),
			Action:     model.ActionDeleteUser,
			EntityID:   userID.String(),
			EntityName: user.Username,
			Details:    `{"deleted": true}`,
		})
	})
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.repo.List(ctx, page, limit)
}
