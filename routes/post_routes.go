package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/helper-hub/api-go/controllers"
)

func SetupPostRoutes(protected *gin.RouterGroup, postController *controllers.PostController) {
	posts := protected.Group("/posts")
	{
		posts.POST("", postController.CreatePost)
		posts.GET("", postController.ListPosts)
		posts.GET("/saved", postController.GetSavedPosts)
		posts.GET("/:postId", postController.GetPost)
		posts.PUT("/:postId", postController.UpdatePost)
		posts.DELETE("/:postId", postController.DeletePost)
		posts.POST("/:postId/save", postController.SavePost)
		posts.DELETE("/:postId/save", postController.UnsavePost)
	}

	users := protected.Group("/users")
	{
		users.GET("/:userId/posts", postController.GetUserPosts)
	}
}
