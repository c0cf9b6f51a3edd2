package server

import (
	"log/slog"

	"github.com/confdeck/deck-manager/internal/middleware"
	"github.com/confdeck/deck-manager/pkg/event"
	"github.com/confdeck/deck-manager/pkg/health"
	"github.com/confdeck/deck-manager/pkg/live"
	"github.com/confdeck/deck-manager/pkg/proposal"
	"github.com/confdeck/deck-manager/pkg/user"
	"github.com/confdeck/deck-manager/pkg/vote"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func GetEngine(
	logger *slog.Logger,
	eventHandler event.Handler,
	proposalHandler proposal.Handler,
	voteHandler vote.Handler,
	userHandler user.Handler,
	liveHandler live.Handler,
	authMiddleware middleware.AuthenticationMiddleware,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("authorization")
	r.Use(cors.New(corsConfig))

	r.Use(middleware.CorrelationID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.ErrorHandler())

	r.GET("/health", health.Health)

	r.POST("/users", userHandler.SignUp)
	r.GET("/users/validate/:token", userHandler.ValidateEmail)
	r.POST("/refresh", userHandler.RefreshToken)

	basicAuthenticationRouter := r.Group("")
	basicAuthenticationRouter.Use(authMiddleware.BasicAuthentication)
	basicAuthenticationRouter.POST("/tokens", userHandler.SignIn)

	r.GET("/events", eventHandler.List)
	r.GET("/events/:eventSlug", eventHandler.FindBySlug)
	r.GET("/events/:eventSlug/proposals", proposalHandler.List)
	r.GET("/events/:eventSlug/proposals/:proposalSlug", proposalHandler.FindBySlug)

	// mutating routes resolve the actor themselves so anonymous requests are
	// redirected to sign in instead of rejected outright
	optionalAuthenticationRouter := r.Group("")
	optionalAuthenticationRouter.Use(authMiddleware.OptionalTokenAuthentication)
	optionalAuthenticationRouter.POST("/events", eventHandler.Create)
	optionalAuthenticationRouter.PUT("/events/:eventSlug", eventHandler.Update)
	optionalAuthenticationRouter.POST("/events/:eventSlug/proposals", proposalHandler.Create)
	optionalAuthenticationRouter.PUT("/events/:eventSlug/proposals/:proposalSlug", proposalHandler.Update)
	optionalAuthenticationRouter.POST("/events/:eventSlug/proposals/:proposalSlug/vote", voteHandler.CastVote)

	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authMiddleware.TokenAuthentication)
	tokenAuthenticationRouter.GET("/me", userHandler.Me)
	tokenAuthenticationRouter.GET("/me/events", eventHandler.ListMine)
	tokenAuthenticationRouter.GET("/events/:eventSlug/moderation", proposalHandler.ListModeration)
	tokenAuthenticationRouter.DELETE("/tokens", userHandler.SignOut)
	tokenAuthenticationRouter.GET("/subscribe", liveHandler.Subscribe)

	return r
}
