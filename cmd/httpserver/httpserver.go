// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/o-lebedeva/tx-bank/internal/accountdelivery"
	"github.com/o-lebedeva/tx-bank/internal/accountrepo"
	"github.com/o-lebedeva/tx-bank/internal/accountservice"
	"github.com/o-lebedeva/tx-bank/internal/middleware"
	"github.com/o-lebedeva/tx-bank/internal/transactiondelivery"
	"github.com/o-lebedeva/tx-bank/internal/transactionrepo"
	"github.com/o-lebedeva/tx-bank/internal/transactionservice"
	"github.com/o-lebedeva/tx-bank/internal/userdelivery"
	"github.com/o-lebedeva/tx-bank/internal/userrepo"
	"github.com/o-lebedeva/tx-bank/internal/userservice"
	"github.com/o-lebedeva/tx-bank/pkg/configpkg"
	"github.com/o-lebedeva/tx-bank/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	userService := userservice.New(userRepo)
	accountService := accountservice.New(accountRepo)
	transactionService := transactionservice.New(transactionRepo, accountService)

	userHandler := userdelivery.NewHandler(userService, tokenMaker, config.AccessTokenDuration)
	accountHandler := accountdelivery.NewHandler(accountService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/users", userHandler.Create)
	engine.POST("/users/login", userHandler.Login)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.POST("/accounts", accountHandler.Create)
	authRoutes.GET("/accounts/:id", accountHandler.Get)

	authRoutes.GET("/users/:id", userHandler.Get)

	authRoutes.POST("/transactions", transactionHandler.Create)
	authRoutes.GET("/transactions/:id", transactionHandler.Get)

	adminRoutes := engine.Group("/").Use(
		middleware.AuthMiddleware(tokenMaker), middleware.AdminMiddleware())

	adminRoutes.GET("/users", userHandler.List)
	adminRoutes.GET("/transactions", transactionHandler.List)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
