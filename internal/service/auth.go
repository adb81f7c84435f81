package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/NOTIVEAPP/notive-backend/internal/models"
	"github.com/NOTIVEAPP/notive-backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService is the credential store: registration, login and password updates.
type AuthService struct {
	db         *gorm.DB
	bcryptCost int
	now        func() time.Time
}

// NewAuthService builds an AuthService hashing with the given bcrypt cost
// (bcrypt.DefaultCost when out of range).
func NewAuthService(db *gorm.DB, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{db: db, bcryptCost: bcryptCost, now: time.Now}
}

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

func checkPassword(password string) error {
	if len(password) > maxPasswordBytes {
		return validationErr(MsgPasswordTooLong)
	}
	return nil
}

func (s *AuthService) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", validationErr(MsgPasswordTooLong)
	}
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Register creates a user. The email is normalized before the uniqueness
// check; the unique index on users.email settles concurrent registrations.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, validationErr("Error: Missing parameters!")
	}
	if err := util.ValidateName(name); err != nil {
		return nil, nameErr(err, "Error: Missing parameters!")
	}
	if err := checkPassword(password); err != nil {
		return nil, err
	}

	normalized, err := util.NormalizeEmail(email)
	if err != nil {
		return nil, &InvalidEmailError{Err: err}
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", normalized).
		Count(&count).Error; err != nil {
		return nil, storageErr("count users", err)
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	hashed, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:      name,
		Email:     normalized,
		Password:  hashed,
		CreatedAt: s.now().Unix(),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, storageErr("create user", err)
	}
	return &user, nil
}

// Login checks an email/password pair and returns the matching user.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, validationErr("Error: Missing parameters!")
	}

	normalized, err := util.NormalizeEmail(email)
	if err != nil {
		return nil, ErrUnknownEmail
	}

	var user models.User
	err = s.db.WithContext(ctx).Where("email = ?", normalized).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnknownEmail
	}
	if err != nil {
		return nil, storageErr("find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// User returns the user with the given id.
func (s *AuthService) User(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", userID).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: ResourceUser}
	}
	if err != nil {
		return nil, storageErr("find user", err)
	}
	return &user, nil
}

// UpdatePassword rehashes the password of the session user. The email in the
// request must match the session user's address.
func (s *AuthService) UpdatePassword(ctx context.Context, userID uint, email, password string) error {
	if password == "" {
		return validationErr("Error: Missing parameters!")
	}
	if err := checkPassword(password); err != nil {
		return err
	}

	user, err := s.User(ctx, userID)
	if err != nil {
		return err
	}

	normalized, err := util.NormalizeEmail(email)
	if err != nil {
		return &InvalidEmailError{Err: err}
	}
	if normalized != user.Email {
		return &ForbiddenError{Resource: ResourceUser}
	}

	hashed, err := s.hash(password)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("password", hashed).Error; err != nil {
		return storageErr("update password", err)
	}
	return nil
}

// UpdateProfile renames the session user.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if err := util.ValidateName(name); err != nil {
		return nil, nameErr(err, "Error: Provide a name!")
	}

	user, err := s.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(user).Update("name", name).Error; err != nil {
		return nil, storageErr("update profile", err)
	}
	user.Name = name
	return user, nil
}
