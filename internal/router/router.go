package router

import (
	"time"

	"github.com/edulinkhq/enroll-backend/internal/database/repository"
	"github.com/edulinkhq/enroll-backend/internal/handlers"
	"github.com/edulinkhq/enroll-backend/internal/middleware"
	"github.com/edulinkhq/enroll-backend/internal/models"
	"github.com/edulinkhq/enroll-backend/internal/services"
	"github.com/edulinkhq/enroll-backend/internal/services/auth"
	"github.com/edulinkhq/enroll-backend/internal/services/events"
	"github.com/edulinkhq/enroll-backend/internal/services/excel"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter wires repositories, services, middleware and routes
func SetupRouter(db *gorm.DB, authService *auth.AuthService, publisher *events.Publisher) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	// Services. The events publisher may be nil when RabbitMQ is unavailable;
	// a typed-nil interface would dodge the nil checks, so convert explicitly.
	var sink services.EventSink
	if publisher != nil {
		sink = publisher
	}
	userService := services.NewUserService(userRepo)
	roleService := services.NewRoleService(roleRepo, userRepo)
	courseService := services.NewCourseService(courseRepo, userRepo)
	enrollmentService := services.NewEnrollmentService(enrollmentRepo, courseRepo, sink)
	rosterService := excel.NewRosterService(courseRepo, enrollmentRepo)

	// Middleware and handlers
	bearer := middleware.NewBearerTokenMiddleware(authService, userRepo)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, enrollmentService)
	courseHandler := handlers.NewCourseHandler(courseService)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentService)
	instructorHandler := handlers.NewInstructorHandler(courseService, enrollmentService)
	adminHandler := handlers.NewAdminHandler(userService, courseService, enrollmentService, roleService, rosterService)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now().Format(time.RFC3339),
			})
		})

		// Auth routes (public)
		authPublic := api.Group("/auth")
		{
			authPublic.POST("/sign-up", authHandler.SignUp)
			authPublic.POST("/sign-in", authHandler.SignIn)
			authPublic.GET("/refresh", authHandler.Refresh)
			authPublic.PATCH("/reset-password", authHandler.ResetPassword)
			authPublic.PATCH("/reactivate", authHandler.Reactivate)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(bearer.RequireAuth())
		{
			authProtected := protected.Group("/auth")
			{
				authProtected.PATCH("/logout", authHandler.Logout)
				authProtected.PATCH("/update-password", authHandler.UpdatePassword)
				authProtected.DELETE("/deactivate", authHandler.Deactivate)
				authProtected.DELETE("/delete-account", authHandler.DeleteAccount)
			}

			users := protected.Group("/users")
			{
				users.GET("/me", userHandler.GetMe)
				users.PATCH("/me", userHandler.UpdateMe)
				users.GET("/me/courses", userHandler.GetMyCourses)
			}

			courses := protected.Group("/courses")
			{
				courses.GET("", courseHandler.ListCourses)
				courses.GET("/:id", courseHandler.GetCourse)
				courses.POST("/:id/enrollments", enrollmentHandler.Enroll)
				courses.DELETE("/:id/enrollments", enrollmentHandler.Unenroll)

				staff := courses.Group("")
				staff.Use(middleware.RequireRoles(models.RoleInstructor, models.RoleAdmin))
				{
					staff.POST("", courseHandler.CreateCourse)
					staff.PUT("/:id", courseHandler.UpdateCourse)
					staff.PATCH("/:id/deactivate", courseHandler.DeactivateCourse)
					staff.PATCH("/:id/reactivate", courseHandler.ReactivateCourse)
					staff.DELETE("/:id", courseHandler.DeleteCourse)
				}
			}

			instructor := protected.Group("/users/instructor/me")
			instructor.Use(middleware.RequireRoles(models.RoleInstructor, models.RoleAdmin))
			{
				instructor.GET("/courses", instructorHandler.GetMyCourses)
				instructor.GET("/courses/:id/students", instructorHandler.GetCourseStudents)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRoles(models.RoleAdmin))
			{
				admin.GET("/students", adminHandler.GetStudents)
				admin.GET("/instructors", adminHandler.GetInstructors)
				admin.GET("/courses", adminHandler.GetCourses)
				admin.GET("/enrollments", adminHandler.GetEnrollments)
				admin.GET("/courses/:id/enrollments", adminHandler.GetCourseEnrollments)
				admin.GET("/courses/:id/roster", adminHandler.ExportCourseRoster)
				admin.PATCH("/users/:id/assign-admin-role", adminHandler.AssignAdminRole)
				admin.PATCH("/users/:id/assign-instructor-role", adminHandler.AssignInstructorRole)
			}
		}
	}

	return r
}
