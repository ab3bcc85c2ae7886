package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"hotel-booking/controllers"
	"hotel-booking/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controller instances into the route table.
func SetupRouter(
	rc *controllers.RoomController,
	bc *controllers.BookingController,
	ac *controllers.AuthController,
	uc *controllers.UserController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimit(rate.Limit(10), 20))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		rooms := api.Group("/rooms")
		{
			// /featured ต้องอยู่ก่อน /:id
			rooms.GET("", rc.GetRooms)
			rooms.GET("/featured", rc.GetFeaturedRooms)
			rooms.GET("/:id", rc.GetRoomByID)
			rooms.GET("/:id/availability", rc.CheckAvailability)
			rooms.POST("", rc.CreateRoom)
			rooms.PATCH("/:id", rc.UpdateRoom)
			rooms.PUT("/:id", rc.UpdateRoom)
			rooms.DELETE("/:id", rc.DeleteRoom)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.PATCH("/:id", bc.UpdateBooking)
			bookings.POST("/:id/cancel", bc.CancelBooking)
			bookings.DELETE("/:id", bc.DeleteBooking)
		}

		users := api.Group("/users")
		{
			users.GET("", uc.GetUsers)
			users.GET("/:id/bookings", bc.GetUserBookings)
			users.DELETE("/:id", uc.DeleteUser)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/register", ac.Register)
			auth.POST("/login", ac.Login)
			auth.POST("/logout", ac.Logout)
		}

		admin := api.Group("/admin")
		{
			admin.GET("/rooms", rc.GetAdminRooms)
		}
	}

	return r
}
