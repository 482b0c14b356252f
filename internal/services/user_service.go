package services

import (
	"errors"
	"net/url"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

// dummyHash is compared against when a username does not exist so that
// unknown users and wrong passwords take about the same time.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("spendwise-dummy-password"), bcrypt.DefaultCost)

// userService handles user-related business logic.
type userService struct {
	db   *gorm.DB
	cost int
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db, cost: bcrypt.DefaultCost}
}

// newUserServiceWithCost lets tests hash with bcrypt.MinCost.
func newUserServiceWithCost(db *gorm.DB, cost int) *userService {
	return &userService{db: db, cost: cost}
}

// SignUp registers a new user with a hashed password and a generated avatar.
func (s *userService) SignUp(input SignUpInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	name := strings.TrimSpace(input.Name)
	if username == "" || name == "" || input.Password == "" || input.Gender == "" {
		return nil, apperrors.ErrMissingFields
	}
	if !input.Gender.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Gender must be male, female or diverse")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	if count > 0 {
		return nil, apperrors.ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	user := &models.User{
		Username:       username,
		Name:           name,
		Password:       string(hashedPassword),
		ProfilePicture: DefaultAvatar(username, input.Gender),
		Gender:         input.Gender,
	}

	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	return user, nil
}

// DefaultAvatar returns the generated avatar URL for a new user.
func DefaultAvatar(username string, gender models.Gender) string {
	base := "https://avatar.iran.liara.run/public"
	switch gender {
	case models.GenderMale:
		base += "/boy"
	case models.GenderFemale:
		base += "/girl"
	}
	return base + "?username=" + url.QueryEscape(username)
}

// Authenticate verifies a username/password pair. Unknown usernames and wrong
// passwords fail with the same error.
func (s *userService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &user, nil
}

// GetUser retrieves a user by ID
func (s *userService) GetUser(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return &user, nil
}

// ListUsers returns every user ordered by username.
func (s *userService) ListUsers() ([]models.User, error) {
	users := []models.User{}
	if err := s.db.Order("username").Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return users, nil
}
