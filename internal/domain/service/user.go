package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"event-manager-api/internal/domain/common/errorz"
	"event-manager-api/internal/domain/dto"
	"event-manager-api/internal/domain/entity"
	"event-manager-api/internal/domain/policy"
)

type UserStorage interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Get(ctx context.Context, id uint) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetAll(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
	Delete(ctx context.Context, id uint) error
}

type UserService struct {
	userStorage UserStorage
	policy      policy.Policy
}

func NewUserService(storage UserStorage, policy policy.Policy) *UserService {
	return &UserService{
		userStorage: storage,
		policy:      policy,
	}
}

// Register creates a user on behalf of an admin. Only the literal admin
// role claim qualifies; the reserved master username is rejected for any
// requester.
func (s *UserService) Register(ctx context.Context, claims Claims, draft dto.UserCreate) (*entity.User, error) {
	if !s.policy.CanRegisterUsers(claims.Role) {
		return nil, errorz.ErrAdminsOnly
	}
	if s.policy.IsReservedUsername(draft.Username) {
		return nil, errorz.ErrReservedUsername
	}

	if _, err := s.userStorage.GetByUsername(ctx, draft.Username); err == nil {
		return nil, errorz.ErrUsernameTaken
	} else if !errors.Is(err, errorz.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(draft.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role, _ := entity.ParseRole(draft.Role)
	return s.userStorage.Create(ctx, &entity.User{
		Username: draft.Username,
		Password: string(hash),
		Role:     role,
		IsActive: true,
	})
}

func (s *UserService) List(ctx context.Context, claims Claims) ([]entity.User, error) {
	if !s.policy.IsAdminOrMasterClaims(claims.Role, claims.Subject) {
		return nil, errorz.ErrAdminsOnly
	}
	return s.userStorage.GetAll(ctx)
}

func (s *UserService) Get(ctx context.Context, claims Claims, id uint) (*entity.User, error) {
	if !s.policy.IsAdminOrMasterClaims(claims.Role, claims.Subject) {
		return nil, errorz.ErrAdminsOnly
	}
	return s.userStorage.Get(ctx, id)
}

// Update applies only the provided fields, rehashing the password when it
// changes and re-checking username uniqueness and reservation.
func (s *UserService) Update(ctx context.Context, claims Claims, id uint, patch dto.UserUpdate) (*entity.User, error) {
	if !s.policy.IsAdminOrMasterClaims(claims.Role, claims.Subject) {
		return nil, errorz.ErrAdminsOnly
	}

	user, err := s.userStorage.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Username != nil && *patch.Username != user.Username {
		if s.policy.IsReservedUsername(*patch.Username) {
			return nil, errorz.ErrReservedUsername
		}
		if _, err = s.userStorage.GetByUsername(ctx, *patch.Username); err == nil {
			return nil, errorz.ErrUsernameTaken
		} else if !errors.Is(err, errorz.ErrUserNotFound) {
			return nil, err
		}
		user.Username = *patch.Username
	}
	if patch.Password != nil {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, hashErr
		}
		user.Password = string(hash)
	}
	if patch.Role != nil {
		role, _ := entity.ParseRole(*patch.Role)
		user.Role = role
	}

	return s.userStorage.Update(ctx, user)
}

func (s *UserService) Delete(ctx context.Context, claims Claims, id uint) error {
	if !s.policy.IsAdminOrMasterClaims(claims.Role, claims.Subject) {
		return errorz.ErrAdminsOnly
	}

	if _, err := s.userStorage.Get(ctx, id); err != nil {
		return err
	}
	return s.userStorage.Delete(ctx, id)
}
