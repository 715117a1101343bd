package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"juniorpass/internal/cache"
	"juniorpass/internal/domain"
	jwtsvc "juniorpass/internal/pkg/jwt"
)

const blacklistKeyPrefix = "auth:blacklist:"

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ChildRepository interface {
	Create(ctx context.Context, c *domain.Child) error
	ListByParent(ctx context.Context, parentID int64) ([]domain.Child, error)
}

type Service struct {
	users     UserRepository
	children  ChildRepository
	jwt       *jwtsvc.Service
	blacklist cache.Store
}

func NewService(users UserRepository, children ChildRepository, jwt *jwtsvc.Service, blacklist cache.Store) *Service {
	if blacklist == nil {
		blacklist = cache.Nop{}
	}
	return &Service{users: users, children: children, jwt: jwt, blacklist: blacklist}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || len(req.Password) < 8 {
		return nil, ErrValidation
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleParent,
		Name:         req.Name,
		Phone:        req.Phone,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (string, *domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Logout blacklists the token's id for the remainder of its lifetime. With
// no Redis configured this degrades to stateless JWT expiry.
func (s *Service) Logout(ctx context.Context, tokenStr string) error {
	claims, err := s.jwt.ValidateToken(tokenStr)
	if err != nil {
		return ErrInvalidToken
	}
	ttl := claims.RemainingTTL()
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.Set(ctx, blacklistKeyPrefix+claims.ID, "revoked", ttl)
}

// IsRevoked consults the blacklist. Cache errors read as "not revoked":
// the blacklist is an ambient collaborator, never a correctness gate.
func (s *Service) IsRevoked(ctx context.Context, tokenID string) bool {
	if tokenID == "" {
		return false
	}
	_, found := s.blacklist.Get(ctx, blacklistKeyPrefix+tokenID)
	return found
}

func (s *Service) AddChild(ctx context.Context, parentID int64, req AddChildRequest) (*domain.Child, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrValidation
	}
	c := &domain.Child{
		ParentID:  parentID,
		Name:      strings.TrimSpace(req.Name),
		BirthDate: req.BirthDate,
		Gender:    req.Gender,
	}
	if err := s.children.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) ListChildren(ctx context.Context, parentID int64) ([]domain.Child, error) {
	return s.children.ListByParent(ctx, parentID)
}

func isUniqueConstraintError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// The sqlite driver reports constraint violations as plain strings.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique failed")
}
