package controllers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/helper-hub/api-go/models"
	"github.com/helper-hub/api-go/utils"
)

type PostController struct {
	DB *gorm.DB
}

type CreatePostRequest struct {
	Title             string   `json:"title" binding:"required"`
	Description       string   `json:"description" binding:"required"`
	Pictures          []string `json:"pictures"`
	Categories        []string `json:"categories"`
	Location          string   `json:"location"`
	LocationLat       *float64 `json:"locationLat"`
	LocationLng       *float64 `json:"locationLng"`
	LocationType      string   `json:"locationType" binding:"omitempty,oneof=online in-person"`
	LocationRadius    int      `json:"locationRadius"`
	LocationPrivacy   string   `json:"locationPrivacy" binding:"omitempty,oneof=exact approximate hidden"`
	ShowExactLocation *bool    `json:"showExactLocation"`
	Urgency           string   `json:"urgency"`
	IsPaid            bool     `json:"isPaid"`
	PaymentType       string   `json:"paymentType" binding:"omitempty,oneof=hourly total"`
	PaymentAmount     *float64 `json:"paymentAmount"`
	ContactType       string   `json:"contactType" binding:"omitempty,oneof=email phone"`
	ContactInfo       string   `json:"contactInfo"`
}

type UpdatePostRequest struct {
	Title             *string  `json:"title"`
	Description       *string  `json:"description"`
	Pictures          []string `json:"pictures"`
	Categories        []string `json:"categories"`
	Location          *string  `json:"location"`
	LocationLat       *float64 `json:"locationLat"`
	LocationLng       *float64 `json:"locationLng"`
	LocationType      *string  `json:"locationType" binding:"omitempty,oneof=online in-person"`
	LocationRadius    *int     `json:"locationRadius"`
	LocationPrivacy   *string  `json:"locationPrivacy" binding:"omitempty,oneof=exact approximate hidden"`
	ShowExactLocation *bool    `json:"showExactLocation"`
	Urgency           *string  `json:"urgency"`
	IsPaid            *bool    `json:"isPaid"`
	PaymentType       *string  `json:"paymentType" binding:"omitempty,oneof=hourly total"`
	PaymentAmount     *float64 `json:"paymentAmount"`
	ContactType       *string  `json:"contactType" binding:"omitempty,oneof=email phone"`
	ContactInfo       *string  `json:"contactInfo"`
}

type ListPostsQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Paid     string `form:"paid" binding:"omitempty,oneof=true false"`
	Urgency  string `form:"urgency"`
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"pageSize,default=10" binding:"min=1,max=50"`
}

func NewPostController(db *gorm.DB) *PostController {
	return &PostController{DB: db}
}

// CreatePost godoc
// @Summary Create a help request
// @Tags posts
// @Accept json
// @Produce json
// @Param post body CreatePostRequest true "Help request"
// @Success 201 {object} models.Post
// @Router /posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.IsPaid && (req.PaymentType == "" || req.PaymentAmount == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paid requests need a payment type and amount"})
		return
	}

	post := models.Post{
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Pictures:        req.Pictures,
		Categories:      req.Categories,
		Location:        req.Location,
		LocationLat:     req.LocationLat,
		LocationLng:     req.LocationLng,
		LocationType:    req.LocationType,
		LocationRadius:  req.LocationRadius,
		LocationPrivacy: req.LocationPrivacy,
		Urgency:         req.Urgency,
		IsPaid:          req.IsPaid,
		PaymentType:     req.PaymentType,
		PaymentAmount:   req.PaymentAmount,
		ContactType:     req.ContactType,
		ContactInfo:     req.ContactInfo,
		UserID:          user.UserID,
	}
	if req.LocationType == "" {
		post.LocationType = "in-person"
	}
	if req.LocationPrivacy == "" {
		post.LocationPrivacy = "exact"
	}
	post.ShowExactLocation = post.LocationPrivacy == "exact"
	if req.ShowExactLocation != nil {
		post.ShowExactLocation = *req.ShowExactLocation
	}

	if err := pc.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "post": post})
}

// ListPosts godoc
// @Summary List help requests with search and filters
// @Tags posts
// @Produce json
// @Param search query string false "Match against title and description"
// @Param category query string false "Filter by category"
// @Param paid query string false "Filter paid or unpaid requests"
// @Param urgency query string false "Filter by urgency"
// @Router /posts [get]
func (pc *PostController) ListPosts(c *gin.Context) {
	var query ListPostsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := pc.DB.Model(&models.Post{})

	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		db = db.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if query.Category != "" {
		db = db.Where("? = ANY(categories)", query.Category)
	}
	if query.Paid != "" {
		db = db.Where("is_paid = ?", query.Paid == "true")
	}
	if query.Urgency != "" {
		db = db.Where("urgency = ?", query.Urgency)
	}

	var total int64
	db.Count(&total)

	offset := (query.Page - 1) * query.PageSize

	var posts []models.Post
	result := db.Preload("User").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.PageSize).
		Find(&posts)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"pagination": &PaginationMeta{
			CurrentPage: query.Page,
			PageSize:    query.PageSize,
			TotalItems:  total,
			TotalPages:  int(math.Ceil(float64(total) / float64(query.PageSize))),
		},
	})
}

// GetPost godoc
// @Summary Fetch a single help request
// @Tags posts
// @Produce json
// @Param postId path integer true "Post ID"
// @Router /posts/{postId} [get]
func (pc *PostController) GetPost(c *gin.Context) {
	var post models.Post
	if err := pc.DB.Preload("User").First(&post, c.Param("postId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

// UpdatePost godoc
// @Summary Update a help request the caller owns
// @Tags posts
// @Accept json
// @Produce json
// @Param postId path integer true "Post ID"
// @Router /posts/{postId} [put]
func (pc *PostController) UpdatePost(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var post models.Post
	if err := pc.DB.First(&post, c.Param("postId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if post.UserID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own posts"})
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Pictures != nil {
		post.Pictures = req.Pictures
		updates["pictures"] = post.Pictures
	}
	if req.Categories != nil {
		post.Categories = req.Categories
		updates["categories"] = post.Categories
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.LocationLat != nil {
		updates["location_lat"] = *req.LocationLat
	}
	if req.LocationLng != nil {
		updates["location_lng"] = *req.LocationLng
	}
	if req.LocationType != nil {
		updates["location_type"] = *req.LocationType
	}
	if req.LocationRadius != nil {
		updates["location_radius"] = *req.LocationRadius
	}
	if req.LocationPrivacy != nil {
		updates["location_privacy"] = *req.LocationPrivacy
	}
	if req.ShowExactLocation != nil {
		updates["show_exact_location"] = *req.ShowExactLocation
	}
	if req.Urgency != nil {
		updates["urgency"] = *req.Urgency
	}
	if req.IsPaid != nil {
		updates["is_paid"] = *req.IsPaid
	}
	if req.PaymentType != nil {
		updates["payment_type"] = *req.PaymentType
	}
	if req.PaymentAmount != nil {
		updates["payment_amount"] = *req.PaymentAmount
	}
	if req.ContactType != nil {
		updates["contact_type"] = *req.ContactType
	}
	if req.ContactInfo != nil {
		updates["contact_info"] = *req.ContactInfo
	}

	if err := pc.DB.Model(&post).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

// DeletePost godoc
// @Summary Delete a help request the caller owns
// @Tags posts
// @Produce json
// @Param postId path integer true "Post ID"
// @Router /posts/{postId} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var post models.Post
	if err := pc.DB.First(&post, c.Param("postId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if post.UserID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own posts"})
		return
	}

	pc.DB.Where("post_id = ?", post.ID).Delete(&models.SavedPost{})
	if err := pc.DB.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post deleted"})
}

// GetUserPosts godoc
// @Summary List help requests created by a user
// @Tags posts
// @Produce json
// @Param userId path integer true "User ID"
// @Router /users/{userId}/posts [get]
func (pc *PostController) GetUserPosts(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var posts []models.Post
	if err := pc.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts})
}

// SavePost godoc
// @Summary Bookmark a help request
// @Tags posts
// @Produce json
// @Param postId path integer true "Post ID"
// @Router /posts/{postId}/save [post]
func (pc *PostController) SavePost(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	postID, err := strconv.Atoi(c.Param("postId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := pc.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	saved := models.SavedPost{UserID: user.UserID, PostID: uint(postID)}
	if err := pc.DB.Create(&saved).Error; err != nil {
		// Unique index makes a second save a no-op.
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post already saved"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Post saved"})
}

// UnsavePost godoc
// @Summary Remove a bookmark
// @Tags posts
// @Produce json
// @Param postId path integer true "Post ID"
// @Router /posts/{postId}/save [delete]
func (pc *PostController) UnsavePost(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	result := pc.DB.Where("user_id = ? AND post_id = ?", user.UserID, c.Param("postId")).
		Delete(&models.SavedPost{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unsave post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post unsaved"})
}

// GetSavedPosts godoc
// @Summary List the caller's bookmarked help requests
// @Tags posts
// @Produce json
// @Router /posts/saved [get]
func (pc *PostController) GetSavedPosts(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var saved []models.SavedPost
	if err := pc.DB.Preload("Post").Preload("Post.User").
		Where("user_id = ?", user.UserID).
		Order("created_at DESC").
		Find(&saved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching saved posts"})
		return
	}

	posts := make([]models.Post, 0, len(saved))
	for _, s := range saved {
		posts = append(posts, s.Post)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts})
}
