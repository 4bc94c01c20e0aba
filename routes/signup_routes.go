package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/helper-hub/api-go/controllers"
)

func SetupSignupRoutes(public *gin.RouterGroup, signupController *controllers.SignupController) {
	sessions := public.Group("/signup/sessions")
	{
		sessions.POST("", signupController.StartSession)
		sessions.GET("/:sessionId", signupController.GetSession)
		sessions.PATCH("/:sessionId/form", signupController.UpdateForm)
		sessions.POST("/:sessionId/next", signupController.Next)
		sessions.POST("/:sessionId/back", signupController.Back)
		sessions.POST("/:sessionId/password", signupController.SubmitPassword)
		sessions.POST("/:sessionId/finish", signupController.Finish)
		sessions.DELETE("/:sessionId", signupController.CloseSession)
	}
}
