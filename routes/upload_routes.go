package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/helper-hub/api-go/controllers"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	upload := protected.Group("/upload")
	{
		// Picture upload URL generation for help requests
		upload.POST("/presigned-url", uploadController.GetPresignedURL)
		upload.POST("/multiple-presigned-urls", uploadController.GetMultiplePresignedURLs)

		// Avatar flow: temp upload, confirm, cleanup
		upload.POST("/avatar/presigned-url", uploadController.GetAvatarTempURL)
		upload.POST("/avatar/confirm", uploadController.ConfirmAvatarUpload)
		upload.DELETE("/avatar/temp/:tempKey", uploadController.CleanupTempAvatar)

		// Delete uploaded file
		upload.DELETE("/file/:key", uploadController.DeleteFile)
	}
}
