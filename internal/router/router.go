package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"secaware/internal/auth"
	"secaware/internal/config"
	"secaware/internal/handler"
	appmw "secaware/internal/middleware"
	"secaware/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokens *auth.TokenService,
	sessions auth.SessionStoreInterface,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	reportHandler *handler.ReportHandler,
	quizHandler *handler.QuizHandler,
	contentHandler *handler.ContentHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	// Upload ceiling; the blob store never sees larger bodies.
	e.Use(middleware.BodyLimit("5M"))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Serve stored report attachments.
	e.Static("/static/uploads", cfg.UploadDir)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/articles", contentHandler.ListArticles)
	api.GET("/articles/:id", contentHandler.GetArticle)
	api.GET("/tips", contentHandler.ListTips)
	api.GET("/alerts", contentHandler.ListAlerts)

	// Quiz listing is public but enriches with best scores for a live session.
	api.GET("/quizzes", quizHandler.List, appmw.OptionalSession(tokens, sessions))

	// Secured routes: verified token plus a live server-side session.
	secured := api.Group("",
		echojwt.WithConfig(echojwt.Config{
			SigningKey:  []byte(cfg.JWTSecret),
			TokenLookup: "header:" + echo.HeaderAuthorization,
			NewClaimsFunc: func(c echo.Context) jwt.Claims {
				return new(auth.SessionClaims)
			},
		}),
		appmw.RequireSession(sessions),
	)

	secured.POST("/auth/logout", authHandler.Logout)

	secured.GET("/quizzes/:id", quizHandler.Load)
	secured.POST("/quizzes/:id/submit", quizHandler.Submit)
	secured.GET("/quizzes/:id/result", quizHandler.Result)

	secured.POST("/reports", reportHandler.Submit)
	secured.GET("/reports", reportHandler.ListMine)
	secured.GET("/reports/:id", reportHandler.Get)

	// Admin routes re-read the stored role; the session snapshot is not trusted.
	admin := secured.Group("/admin", appmw.RequireAdmin(userRepo))

	admin.GET("/dashboard", dashboardHandler.Stats)

	admin.GET("/reports", reportHandler.ListAll)
	admin.GET("/reports/:id", reportHandler.GetForAdmin)
	admin.PUT("/reports/:id/status", reportHandler.UpdateStatus)

	admin.POST("/quizzes", quizHandler.Create)
	admin.PUT("/quizzes/:id", quizHandler.Update)
	admin.DELETE("/quizzes/:id", quizHandler.Delete)
	admin.GET("/quizzes/:id/questions", quizHandler.ListQuestions)
	admin.POST("/quizzes/:id/questions", quizHandler.CreateQuestion)
	admin.PUT("/questions/:id", quizHandler.UpdateQuestion)
	admin.DELETE("/questions/:id", quizHandler.DeleteQuestion)

	admin.GET("/articles", contentHandler.ListAllArticles)
	admin.POST("/articles", contentHandler.CreateArticle)
	admin.PUT("/articles/:id", contentHandler.UpdateArticle)
	admin.DELETE("/articles/:id", contentHandler.DeleteArticle)

	admin.GET("/tips-alerts", contentHandler.ListAllTipAlerts)
	admin.POST("/tips-alerts", contentHandler.CreateTipAlert)
	admin.PUT("/tips-alerts/:id", contentHandler.UpdateTipAlert)
	admin.DELETE("/tips-alerts/:id", contentHandler.DeleteTipAlert)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
