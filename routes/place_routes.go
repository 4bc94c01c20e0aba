package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/helper-hub/api-go/controllers"
)

func SetupPlaceRoutes(public *gin.RouterGroup, placeController *controllers.PlaceController) {
	places := public.Group("/places")
	{
		places.GET("/suggest", placeController.Suggest)
		places.GET("/geocode", placeController.Geocode)
		places.GET("/reverse-geocode", placeController.ReverseGeocode)
		places.GET("/cache/stats", placeController.CacheStats)
		places.POST("/cache/clear", placeController.ClearCache)
		places.GET("/:placeId", placeController.GetPlaceDetails)
	}
}
