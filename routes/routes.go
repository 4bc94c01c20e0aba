package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/helper-hub/api-go/config"
	"github.com/helper-hub/api-go/controllers"
	"github.com/helper-hub/api-go/mail"
	"github.com/helper-hub/api-go/middleware"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize controllers
	mailer := mail.NewMailer()
	uploadController := controllers.NewUploadController(db)
	authController := controllers.NewAuthController(db, mailer, uploadController)
	signupController := controllers.NewSignupController(authController)
	postController := controllers.NewPostController(db)
	profileController := controllers.NewProfileController(db)
	placeController := controllers.NewPlaceController(config.GetPlacesConfig())

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/login/google", authController.GoogleLogin)
		public.POST("/refresh-token", authController.RefreshToken)
		public.POST("/password-reset", authController.RequestPasswordReset)
		public.POST("/password-reset/confirm", authController.ConfirmPasswordReset)
		public.POST("/verify", authController.VerifyCode)
		public.POST("/verify/resend", authController.ResendCode)
		public.POST("/register/check-email", authController.RegisterEmailCheck)
		public.POST("/register/check-username", authController.RegisterUsernameCheck)

		SetupSignupRoutes(public, signupController)
		SetupPlaceRoutes(public, placeController)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)

		SetupProfileRoutes(protected, profileController)
		SetupPostRoutes(protected, postController)
		SetupUploadRoutes(protected, uploadController)
	}
}
