package routes

import (
	"github.com/gin-gonic/gin"

	config "github.com/astraclub/club-platform-go/config"
	controllers "github.com/astraclub/club-platform-go/controllers"
	middleware "github.com/astraclub/club-platform-go/middleware"
	models "github.com/astraclub/club-platform-go/models"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	r.GET("/metrics", middleware.MetricsHandler())

	// public
	r.GET("/events", controllers.ListEvents(cfg))
	r.GET("/events/:id", controllers.GetEvent(cfg))
	r.GET("/events/:id/registration-form", controllers.GetRegistrationForm(cfg))
	r.POST("/events/:id/registrations", middleware.OptionalAuth(cfg), controllers.SubmitRegistration(cfg))

	r.GET("/news", controllers.ListNews(cfg))
	r.GET("/team", controllers.ListTeamMembers(cfg))
	r.GET("/gallery", controllers.ListGalleryImages(cfg))
	r.POST("/contact", controllers.CreateContactMessage(cfg))

	// back office
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/events", controllers.CreateEvent(cfg))
		admin.PATCH("/events/:id", controllers.UpdateEvent(cfg))
		admin.DELETE("/events/:id", controllers.DeleteEvent(cfg))

		// form builder
		admin.PUT("/events/:id/form", controllers.SaveFormSchema(cfg))
		admin.POST("/events/:id/form/fields", controllers.AddFormField(cfg))
		admin.PATCH("/events/:id/form/fields/:fieldId", controllers.UpdateFormField(cfg))
		admin.DELETE("/events/:id/form/fields/:fieldId", controllers.DeleteFormField(cfg))
		admin.POST("/events/:id/form/fields/:fieldId/move", controllers.MoveFormField(cfg))
		admin.PATCH("/events/:id/form/enabled", controllers.SetFormEnabled(cfg))
		admin.GET("/events/:id/form/preview", controllers.PreviewForm(cfg))

		// registrations
		admin.GET("/registrations", controllers.ListRegistrations(cfg))
		admin.PATCH("/registrations/:id/status", controllers.UpdateRegistrationStatus(cfg))
		admin.DELETE("/registrations/:id", controllers.DeleteRegistration(cfg))

		// content
		admin.POST("/news", controllers.CreateNews(cfg))
		admin.PATCH("/news/:id", controllers.UpdateNews(cfg))
		admin.DELETE("/news/:id", controllers.DeleteNews(cfg))

		admin.POST("/team", controllers.CreateTeamMember(cfg))
		admin.PATCH("/team/:id", controllers.UpdateTeamMember(cfg))
		admin.DELETE("/team/:id", controllers.DeleteTeamMember(cfg))

		admin.POST("/gallery", controllers.CreateGalleryImage(cfg))
		admin.DELETE("/gallery/:id", controllers.DeleteGalleryImage(cfg))

		admin.GET("/users", controllers.ListUsers(cfg))
		admin.PATCH("/users/:id/role", controllers.UpdateUserRole(cfg))
		admin.PATCH("/users/:id/ban", controllers.SetUserBanned(cfg))

		admin.GET("/analytics", controllers.GetAnalytics(cfg))
	}
}
