package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/question-bank-server/controllers"
	"github.com/vnkhanh/question-bank-server/middleware"
)

func SetupRoutes(r *gin.Engine) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/health", controllers.HealthCheck)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", middleware.RateLimitAuth(), controllers.Signup)
		auth.POST("/login", middleware.RateLimitAuth(), controllers.Login)
		auth.PUT("/updateUser", middleware.AuthJWT(), controllers.UpdateUser)
		auth.GET("/userDetail", middleware.AuthJWT(), controllers.UserDetail)
	}

	api := r.Group("/api")
	{
		// Mọi thao tác ghi lên câu hỏi đều là admin-only; list để mở
		questions := api.Group("/questions")
		{
			questions.GET("", controllers.ListQuestions)
			questions.POST("/add", middleware.AuthJWT(), middleware.RequireAdmin(), controllers.AddQuestion)
			questions.POST("/bulk-add", middleware.AuthJWT(), middleware.RequireAdmin(), controllers.BulkAddQuestions)
			questions.POST("/import", middleware.AuthJWT(), middleware.RequireAdmin(), controllers.ImportQuestions)
			questions.PUT("/bulk-update", middleware.AuthJWT(), middleware.RequireAdmin(), controllers.BulkUpdateQuestions)
			questions.PUT("/:id", middleware.AuthJWT(), middleware.RequireAdmin(), controllers.UpdateQuestion)
			questions.DELETE("/:id", middleware.AuthJWT(), middleware.RequireAdmin(), controllers.DeleteQuestion)
		}

		truefalse := api.Group("/truefalse")
		{
			truefalse.GET("", controllers.ListTrueFalse)
			truefalse.POST("/add", middleware.AuthJWT(), middleware.RequireAdmin(), controllers.AddTrueFalse)
			truefalse.POST("/bulk-add", middleware.AuthJWT(), middleware.RequireAdmin(), controllers.BulkAddTrueFalse)
			truefalse.POST("/import", middleware.AuthJWT(), middleware.RequireAdmin(), controllers.ImportTrueFalse)
			truefalse.PUT("/bulk-update", middleware.AuthJWT(), middleware.RequireAdmin(), controllers.BulkUpdateTrueFalse)
			truefalse.PUT("/:id", middleware.AuthJWT(), middleware.RequireAdmin(), controllers.UpdateTrueFalse)
			truefalse.DELETE("/:id", middleware.AuthJWT(), middleware.RequireAdmin(), controllers.DeleteTrueFalse)
		}

		fillblank := api.Group("/fillblank")
		{
			fillblank.GET("", controllers.ListFillBlank)
			fillblank.POST("/add", middleware.AuthJWT(), middleware.RequireAdmin(), controllers.AddFillBlank)
			fillblank.POST("/bulk-add", middleware.AuthJWT(), middleware.RequireAdmin(), controllers.BulkAddFillBlank)
			fillblank.POST("/import", middleware.AuthJWT(), middleware.RequireAdmin(), controllers.ImportFillBlank)
			fillblank.PUT("/bulk-update", middleware.AuthJWT(), middleware.RequireAdmin(), controllers.BulkUpdateFillBlank)
			fillblank.PUT("/:id", middleware.AuthJWT(), middleware.RequireAdmin(), controllers.UpdateFillBlank)
			fillblank.DELETE("/:id", middleware.AuthJWT(), middleware.RequireAdmin(), controllers.DeleteFillBlank)
		}

		exports := api.Group("/exports")
		{
			exports.POST("", middleware.AuthJWT(), middleware.RequireAdmin(), controllers.CreateExport)
			exports.GET("/:job_id", middleware.AuthJWT(), controllers.GetExport)
		}
	}
}
