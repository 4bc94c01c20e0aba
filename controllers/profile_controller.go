package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/helper-hub/api-go/models"
	"github.com/helper-hub/api-go/utils"
)

type ProfileController struct {
	DB *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{DB: db}
}

// GetProfile godoc
// @Summary The caller's own profile
// @Tags profiles
// @Produce json
// @Router /profile [get]
func (pc *ProfileController) GetProfile(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var dbUser models.User
	if err := pc.DB.First(&dbUser, user.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":                dbUser.ID,
			"username":          dbUser.Username,
			"displayName":       dbUser.DisplayName,
			"email":             dbUser.Email,
			"phone":             dbUser.Phone,
			"bio":               dbUser.Bio,
			"avatar":            dbUser.Avatar,
			"location":          dbUser.Location,
			"website":           dbUser.Website,
			"dateOfBirth":       dbUser.DateOfBirth,
			"profileVisibility": dbUser.ProfileVisibility,
			"showEmail":         dbUser.ShowEmail,
			"showPhone":         dbUser.ShowPhone,
			"emailVerified":     dbUser.EmailVerified,
			"phoneVerified":     dbUser.PhoneVerified,
			"createdAt":         dbUser.CreatedAt,
		},
	})
}

// UpdateProfile godoc
// @Summary Update the caller's profile fields
// @Tags profiles
// @Accept json
// @Produce json
// @Router /profile [put]
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input struct {
		DisplayName       *string `json:"displayName"`
		Bio               *string `json:"bio"`
		Avatar            *string `json:"avatar"`
		Location          *string `json:"location"`
		Website           *string `json:"website"`
		ProfileVisibility *string `json:"profileVisibility" binding:"omitempty,oneof=public friends private"`
		ShowEmail         *bool   `json:"showEmail"`
		ShowPhone         *bool   `json:"showPhone"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var dbUser models.User
	if err := pc.DB.First(&dbUser, user.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updates := map[string]interface{}{}
	if input.DisplayName != nil {
		updates["display_name"] = strings.TrimSpace(*input.DisplayName)
	}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}
	if input.Avatar != nil {
		updates["avatar"] = *input.Avatar
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if input.Website != nil {
		updates["website"] = *input.Website
	}
	if input.ProfileVisibility != nil {
		updates["profile_visibility"] = *input.ProfileVisibility
	}
	if input.ShowEmail != nil {
		updates["show_email"] = *input.ShowEmail
	}
	if input.ShowPhone != nil {
		updates["show_phone"] = *input.ShowPhone
	}

	if err := pc.DB.Model(&dbUser).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully"})
}

// GetPublicProfile godoc
// @Summary A user's public profile by username
// @Tags profiles
// @Produce json
// @Param username path string true "Username without the @ marker"
// @Router /profiles/{username} [get]
func (pc *ProfileController) GetPublicProfile(c *gin.Context) {
	username := strings.TrimPrefix(c.Param("username"), "@")

	var dbUser models.User
	if err := pc.DB.Where("username = ?", username).First(&dbUser).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if dbUser.ProfileVisibility == "private" {
		c.JSON(http.StatusForbidden, gin.H{"error": "This profile is private"})
		return
	}

	profile := gin.H{
		"id":          dbUser.ID,
		"username":    dbUser.Username,
		"displayName": dbUser.DisplayName,
		"bio":         dbUser.Bio,
		"avatar":      dbUser.Avatar,
		"location":    dbUser.Location,
		"website":     dbUser.Website,
		"lastSeen":    dbUser.LastSeen,
		"createdAt":   dbUser.CreatedAt,
	}
	// Contact details stay hidden unless the user opted in.
	if dbUser.ShowEmail {
		profile["email"] = dbUser.Email
	}
	if dbUser.ShowPhone {
		profile["phone"] = dbUser.Phone
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": profile})
}

// SearchProfiles godoc
// @Summary Search public profiles by username or display name
// @Tags profiles
// @Produce json
// @Param q query string true "Search text"
// @Router /profiles [get]
func (pc *ProfileController) SearchProfiles(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	pattern := "%" + strings.TrimPrefix(q, "@") + "%"

	var users []models.User
	if err := pc.DB.
		Where("profile_visibility <> ?", "private").
		Where("username ILIKE ? OR display_name ILIKE ?", pattern, pattern).
		Limit(20).
		Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error searching profiles"})
		return
	}

	results := make([]gin.H, 0, len(users))
	for _, u := range users {
		results = append(results, gin.H{
			"id":          u.ID,
			"username":    u.Username,
			"displayName": u.DisplayName,
			"avatar":      u.Avatar,
			"bio":         u.Bio,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "users": results})
}

// GetPreferences godoc
// @Summary The caller's preferences
// @Tags profiles
// @Produce json
// @Router /profile/preferences [get]
func (pc *ProfileController) GetPreferences(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var prefs models.UserPreference
	if err := pc.DB.Where("user_id = ?", user.UserID).First(&prefs).Error; err != nil {
		// Defaults until the user saves something.
		prefs = models.UserPreference{
			UserID:               user.UserID,
			Theme:                "system",
			Language:             "en",
			NotificationsEnabled: true,
			EmailNotifications:   true,
			PushNotifications:    true,
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "preferences": prefs})
}

// UpdatePreferences godoc
// @Summary Upsert the caller's preferences
// @Tags profiles
// @Accept json
// @Produce json
// @Router /profile/preferences [put]
func (pc *ProfileController) UpdatePreferences(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input struct {
		Theme                *string `json:"theme" binding:"omitempty,oneof=light dark system"`
		Language             *string `json:"language"`
		NotificationsEnabled *bool   `json:"notificationsEnabled"`
		EmailNotifications   *bool   `json:"emailNotifications"`
		PushNotifications    *bool   `json:"pushNotifications"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefs := models.UserPreference{
		UserID:               user.UserID,
		Theme:                "system",
		Language:             "en",
		NotificationsEnabled: true,
		EmailNotifications:   true,
		PushNotifications:    true,
	}
	pc.DB.Where("user_id = ?", user.UserID).First(&prefs)

	if input.Theme != nil {
		prefs.Theme = *input.Theme
	}
	if input.Language != nil {
		prefs.Language = *input.Language
	}
	if input.NotificationsEnabled != nil {
		prefs.NotificationsEnabled = *input.NotificationsEnabled
	}
	if input.EmailNotifications != nil {
		prefs.EmailNotifications = *input.EmailNotifications
	}
	if input.PushNotifications != nil {
		prefs.PushNotifications = *input.PushNotifications
	}
	prefs.UpdatedAt = time.Now()

	if err := pc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&prefs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "preferences": prefs})
}
