package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

// tagService handles shared tags and saved searches.
type tagService struct {
	db          *gorm.DB
	userService UserServicer
}

// NewTagService creates a new TagServicer.
func NewTagService(db *gorm.DB, userService UserServicer) TagServicer {
	return &tagService{db: db, userService: userService}
}

// ListTags returns every tag ordered by name.
func (s *tagService) ListTags() ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := s.db.Order("name").Find(&tags).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return tags, nil
}

// CreateTag creates a shared tag with a unique name.
func (s *tagService) CreateTag(actor *models.User, name string) (*models.Tag, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Tag name is required")
	}

	var count int64
	if err := s.db.Model(&models.Tag{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	if count > 0 {
		return nil, apperrors.ErrTagExists
	}

	tag := &models.Tag{Name: name}
	if err := s.db.Create(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrTagExists
		}
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return tag, nil
}

// UserTags returns the tags attached to a user.
func (s *tagService) UserTags(userID string) ([]models.Tag, error) {
	user, err := s.userService.GetUser(userID)
	if err != nil {
		return nil, err
	}

	tags := []models.Tag{}
	if err := s.db.
		Joins("JOIN user_tags ON user_tags.tag_id = tags.id").
		Where("user_tags.user_id = ?", user.ID).
		Order("tags.name").
		Find(&tags).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return tags, nil
}

// AddUserTag attaches a tag to the actor and returns the user with its tags.
// Attaching a tag twice is a no-op.
func (s *tagService) AddUserTag(actor *models.User, userID, tagID string) (*models.User, error) {
	if actor == nil || actor.ID != userID {
		return nil, apperrors.ErrUnauthorized
	}

	user, err := s.userService.GetUser(userID)
	if err != nil {
		return nil, err
	}

	var tag models.Tag
	if err := s.db.Where("id = ?", tagID).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTagNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	link := &models.UserTag{UserID: user.ID, TagID: tag.ID}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(link).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	tags, err := s.UserTags(user.ID)
	if err != nil {
		return nil, err
	}
	user.Tags = tags
	return user, nil
}

// ListCustomTags returns every saved search ordered by name.
func (s *tagService) ListCustomTags() ([]models.CustomTag, error) {
	customTags := []models.CustomTag{}
	if err := s.db.Order("name").Find(&customTags).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return customTags, nil
}

// GetCustomTag retrieves a saved search by ID.
func (s *tagService) GetCustomTag(id string) (*models.CustomTag, error) {
	var customTag models.CustomTag
	if err := s.db.Where("id = ?", id).First(&customTag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCustomTagNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return &customTag, nil
}

// CreateCustomTag saves a named search term.
func (s *tagService) CreateCustomTag(actor *models.User, name, searchTerm string) (*models.CustomTag, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	name = strings.TrimSpace(name)
	searchTerm = strings.TrimSpace(searchTerm)
	if name == "" || searchTerm == "" {
		return nil, apperrors.ErrMissingFields
	}

	customTag := &models.CustomTag{Name: name, SearchTerm: searchTerm}
	if err := s.db.Create(customTag).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return customTag, nil
}
