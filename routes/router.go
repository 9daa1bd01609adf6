package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/frazhaidry/DebugDairy/config"
	"github.com/frazhaidry/DebugDairy/controllers"
	"github.com/frazhaidry/DebugDairy/middlewares"
	"github.com/frazhaidry/DebugDairy/repositories"
)

// SetupRouter wires repositories, controllers and middleware onto a gin
// engine. The mongo database handle is injected here once, at startup.
func SetupRouter(cfg config.Config, db *mongo.Database) *gin.Engine {
	userRepo := repositories.NewUserRepository(db)
	postRepo := repositories.NewPostRepository(db)
	commentRepo := repositories.NewCommentRepository(db)

	authController := controllers.NewAuthController(cfg, userRepo)
	postController := controllers.NewPostController(postRepo, userRepo)
	commentController := controllers.NewCommentController(commentRepo, userRepo)

	requireAuth := middlewares.RequireAuth(cfg.JWTSecret, userRepo.FindByID)

	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ClientOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello from backend")
	})

	api := r.Group("/api")

	auth := api.Group("/auth", middlewares.RateLimit(cfg.AuthRatePerMinute))
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)
	auth.POST("/logout", authController.Logout)
	auth.GET("/me", requireAuth, authController.Me)

	posts := api.Group("/posts")
	posts.GET("", postController.List)
	posts.GET("/:id", postController.Get)
	posts.POST("", requireAuth, postController.Create)
	posts.PUT("/:id", requireAuth, postController.Update)
	posts.DELETE("/:id", requireAuth, postController.Delete)
	posts.PUT("/:id/like", requireAuth, postController.ToggleLike)

	posts.GET("/:id/comments", commentController.List)
	posts.POST("/:id/comments", requireAuth, commentController.Create)
	posts.DELETE("/:id/comments/:commentId", requireAuth, commentController.Delete)

	return r
}
