package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spendwise/internal/models"
	"spendwise/internal/services"
)

// TagHandler handles tags, user tags and custom tags.
type TagHandler struct {
	tagService services.TagServicer
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagService services.TagServicer) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// CreateTagRequest represents the request payload for creating a tag
type CreateTagRequest struct {
	Name string `json:"name" binding:"max=50"`
}

// AddUserTagRequest names the tag to attach.
type AddUserTagRequest struct {
	TagID string `json:"tag_id" binding:"required,uuid"`
}

// CreateCustomTagRequest represents the request payload for saving a search
type CreateCustomTagRequest struct {
	Name       string `json:"name" binding:"max=50"`
	SearchTerm string `json:"search_term" binding:"max=200"`
}

// TagsResponse lists tags.
type TagsResponse struct {
	Tags []models.Tag `json:"tags"`
}

// TagResponse wraps a single tag.
type TagResponse struct {
	Tag models.Tag `json:"tag"`
}

// CustomTagsResponse lists saved searches.
type CustomTagsResponse struct {
	CustomTags []models.CustomTag `json:"custom_tags"`
}

// CustomTagResponse wraps a single saved search.
type CustomTagResponse struct {
	CustomTag models.CustomTag `json:"custom_tag"`
}

// ListTags returns every tag
// @Summary     List tags
// @Tags        tags
// @Produce     json
// @Success     200 {object} TagsResponse "Tags"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tags [get]
func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.tagService.ListTags()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, TagsResponse{Tags: tags})
}

// CreateTag creates a shared tag
// @Summary     Create a tag
// @Tags        tags
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTagRequest true "Tag"
// @Success     201 {object} TagResponse "Tag created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Tag already exists"
// @Router      /tags [post]
func (h *TagHandler) CreateTag(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	tag, err := h.tagService.CreateTag(currentUser(c), req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, TagResponse{Tag: *tag})
}

// UserTags returns the tags attached to a user
// @Summary     List a user's tags
// @Tags        tags
// @Produce     json
// @Param       id path string true "User ID"
// @Success     200 {object} TagsResponse "Tags"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{id}/tags [get]
func (h *TagHandler) UserTags(c *gin.Context) {
	userID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	tags, err := h.tagService.UserTags(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, TagsResponse{Tags: tags})
}

// AddUserTag attaches a tag to the current user
// @Summary     Attach a tag to a user
// @Tags        tags
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "User ID"
// @Param       request body AddUserTagRequest true "Tag to attach"
// @Success     200 {object} UserResponse "User with tags"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Tag or user not found"
// @Router      /users/{id}/tags [post]
func (h *TagHandler) AddUserTag(c *gin.Context) {
	userID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddUserTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	user, err := h.tagService.AddUserTag(currentUser(c), userID, req.TagID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, UserResponse{User: *user})
}

// ListCustomTags returns every saved search
// @Summary     List custom tags
// @Tags        custom-tags
// @Produce     json
// @Success     200 {object} CustomTagsResponse "Custom tags"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /custom-tags [get]
func (h *TagHandler) ListCustomTags(c *gin.Context) {
	customTags, err := h.tagService.ListCustomTags()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, CustomTagsResponse{CustomTags: customTags})
}

// CreateCustomTag saves a named search term
// @Summary     Create a custom tag
// @Tags        custom-tags
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCustomTagRequest true "Saved search"
// @Success     201 {object} CustomTagResponse "Custom tag created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /custom-tags [post]
func (h *TagHandler) CreateCustomTag(c *gin.Context) {
	var req CreateCustomTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	customTag, err := h.tagService.CreateCustomTag(currentUser(c), req.Name, req.SearchTerm)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, CustomTagResponse{CustomTag: *customTag})
}
