package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
	"github.com/oksasatya/go-ddd-blog/pkg/validation"
)

type AuthService struct {
	Users               repo.UserRepository
	JWT                 *helpers.JWTManager
	Uploads             *Uploader
	Notify              *Notifier
	Logger              *logrus.Logger
	DefaultProfileImage string
	// HashCost is the bcrypt work factor; zero means bcrypt.DefaultCost.
	HashCost int
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, uploads *Uploader, notify *Notifier, logger *logrus.Logger, defaultProfileImage string) *AuthService {
	return &AuthService{
		Users:               users,
		JWT:                 jwt,
		Uploads:             uploads,
		Notify:              notify,
		Logger:              logger,
		DefaultProfileImage: defaultProfileImage,
	}
}

type SignupInput struct {
	Email        string  `json:"email" form:"email" validate:"required,email"`
	Password     string  `json:"password" form:"password" validate:"required,pwd"`
	ProfileImage *Upload `json:"-" form:"-" validate:"-"`
}

type LoginInput struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// AuthResult is returned by signup and login.
type AuthResult struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      PublicUser `json:"user"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validate(in any) error {
	if err := validation.Validator().Struct(in); err != nil {
		return apperror.ValidationDetails("invalid payload", validation.ToDetails(err))
	}
	return nil
}

// Signup registers a user and signs them in.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validate(in); err != nil {
		return nil, err
	}

	if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperror.DuplicateUser()
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, storeErr(err)
	}

	cost := s.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := helpers.HashPasswordCost(in.Password, cost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u := &entity.User{Email: in.Email, Password: hash, ProfileImage: s.DefaultProfileImage}
	if in.ProfileImage != nil {
		name, err := s.Uploads.Save(ctx, "profileImage", in.ProfileImage)
		if err != nil {
			return nil, err
		}
		u.ProfileImage = name
	}

	if err := s.Users.Create(ctx, u); err != nil {
		if in.ProfileImage != nil {
			s.Uploads.Remove(ctx, u.ProfileImage)
		}
		if errors.Is(err, apperror.ErrDuplicateUser) {
			return nil, err
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Error("create user failed")
		}
		return nil, storeErr(err)
	}

	res, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	s.Notify.Welcome(ctx, u)
	return res, nil
}

// Login answers InvalidCredentials for an unknown email and for a wrong
// password alike.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validate(in); err != nil {
		return nil, err
	}

	u, err := s.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.InvalidCredentials()
		}
		return nil, storeErr(err)
	}
	if !helpers.CompareHashAndPassword(u.Password, in.Password) {
		return nil, apperror.InvalidCredentials()
	}
	return s.issue(u)
}

// Authenticate resolves a token to the user id it was issued for. The user
// record is not re-read.
func (s *AuthService) Authenticate(token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", apperror.Unauthenticated("missing access token")
	}
	claims, err := s.JWT.Parse(token)
	if err != nil {
		return "", apperror.Unauthenticated("invalid or expired token")
	}
	return claims.UserID, nil
}

func (s *AuthService) Profile(ctx context.Context, identity string) (*PublicUser, error) {
	u, err := s.Users.GetByID(ctx, identity)
	if err != nil {
		return nil, storeErr(err)
	}
	pu := NewPublicUser(u)
	return &pu, nil
}

func (s *AuthService) issue(u *entity.User) (*AuthResult, error) {
	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, apperror.Internal(err)
	}
	return &AuthResult{Token: token, ExpiresAt: exp, User: NewPublicUser(u)}, nil
}
