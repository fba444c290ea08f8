package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"hotel-nepal/config"
	"hotel-nepal/controllers"
	"hotel-nepal/middleware"
	"hotel-nepal/observability"
	"hotel-nepal/services"
	"hotel-nepal/store"
	"hotel-nepal/utils"
	"hotel-nepal/validation"
)

// Deps is everything the router needs that is decided at startup.
type Deps struct {
	Repos     store.Repositories
	Cache     services.Cache          // nil without Redis
	Events    services.EventPublisher // nil without RabbitMQ
	Registry  *prometheus.Registry    // nil disables /metrics
	Logger    zerolog.Logger
	StoreName string
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
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

// SetupRouter builds the services over the chosen store and mounts every route.
func SetupRouter(cfg config.Config, d Deps) *gin.Engine {
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn)
	images := services.NewImageService(cfg.UploadDir, cfg.UploadMaxBytes)
	policy := validation.DefaultPasswordPolicy()
	policy.MinLength = cfg.PasswordMinLength

	mailer := utils.NewMailer(utils.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		FromName: cfg.SMTPFromName,
	}, d.Logger)
	bookingSvc := services.NewBookingService(d.Repos.Bookings, d.Repos.Hotels, d.Events, d.Logger).WithNotifier(mailer)

	hc := controllers.NewHotelController(services.NewHotelService(d.Repos.Hotels, d.Cache, d.Logger), cfg.PaginationMaxLimit)
	rc := controllers.NewReviewController(services.NewReviewService(d.Repos.Reviews, d.Repos.Hotels))
	bc := controllers.NewBookingController(bookingSvc)
	uc := controllers.NewUserController(services.NewAuthService(d.Repos.Users, tokens, policy))
	pc := controllers.NewProductController(services.NewProductService(d.Repos.Products, images, d.Logger))
	upc := controllers.NewUploadController(images)

	r := gin.New()
	r.MaxMultipartMemory = cfg.UploadMaxBytes + 1<<20
	r.Use(middleware.Recovery(d.Logger), middleware.Logger(d.Logger), middleware.Metrics())

	origins := parseCorsOrigins(cfg.CorsOrigins)
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
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.Static("/uploads", cfg.UploadDir)
	if d.Registry != nil {
		r.GET("/metrics", gin.WrapH(observability.MetricsHandler(d.Registry)))
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	unsafe := middleware.RejectUnsafeInput(2*cfg.UploadMaxBytes + 1<<20)

	api := r.Group("/api", limiter.Handler())
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "OK",
				"message": "Hotel Nepal API is running",
				"store":   d.StoreName,
			})
		})

		hotels := api.Group("/hotels", unsafe)
		{
			hotels.GET("", hc.GetHotels)
			hotels.POST("", hc.CreateHotel)
			hotels.GET("/:id", hc.GetHotel)
			hotels.PUT("/:id", hc.UpdateHotel)
			hotels.DELETE("/:id", hc.DeleteHotel)

			hotels.GET("/:id/reviews", rc.GetReviews)
			hotels.POST("/:id/reviews", rc.CreateReview)
		}

		bookings := api.Group("/bookings", unsafe)
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/:id", bc.GetBookingDetails)
			bookings.PATCH("/:id/status", bc.UpdateBookingStatus)
			bookings.DELETE("/:id", bc.DeleteBooking)
		}

		// passwords may legitimately contain anything, so no denylist here
		users := api.Group("/users")
		{
			users.POST("/register", uc.Register)
			users.POST("/login", uc.Login)
			users.GET("/profile", middleware.RequireAuth(tokens), uc.Profile)
			users.PATCH("/profile", middleware.RequireAuth(tokens), uc.UpdateProfile)
			users.GET("", uc.GetUsers)
			users.DELETE("/:id", uc.DeleteUser)
		}

		api.POST("/upload-image", upc.UploadImage)
	}

	products := r.Group("/products", limiter.Handler(), unsafe)
	{
		products.POST("/create_product", pc.CreateProduct)
		products.GET("/show_product", pc.ShowProducts)
		products.GET("/:id", pc.GetProduct)
		products.PUT("/:id", pc.UpdateProduct)
		products.DELETE("/:id", pc.DeleteProduct)
	}

	r.NoRoute(func(c *gin.Context) {
		utils.JSONError(c, http.StatusNotFound, "Route not found")
	})

	return r
}
