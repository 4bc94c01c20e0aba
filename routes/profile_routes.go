package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/helper-hub/api-go/controllers"
)

func SetupProfileRoutes(protected *gin.RouterGroup, profileController *controllers.ProfileController) {
	protected.GET("/profile", profileController.GetProfile)
	protected.PUT("/profile", profileController.UpdateProfile)
	protected.GET("/profile/preferences", profileController.GetPreferences)
	protected.PUT("/profile/preferences", profileController.UpdatePreferences)

	profiles := protected.Group("/profiles")
	{
		profiles.GET("", profileController.SearchProfiles)
		profiles.GET("/:username", profileController.GetPublicProfile)
	}
}
