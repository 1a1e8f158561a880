package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"chitchat-backend/internal/auth"
	"chitchat-backend/internal/config"
	"chitchat-backend/internal/db"
	"chitchat-backend/internal/handlers"
	"chitchat-backend/internal/middleware"
	"chitchat-backend/internal/observability"
	"chitchat-backend/internal/rabbitmq"
	"chitchat-backend/internal/repositories"
	"chitchat-backend/internal/services"
	"chitchat-backend/internal/telemetry"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	database, err := db.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}

	shutdownTracing, err := telemetry.SetupTracing(context.Background(), cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("tracing shutdown failed: %v", err)
		}
	}()

	publisher := rabbitmq.NewPublisher(cfg.AmqpURL, cfg.AuditExchange)
	defer publisher.Close()
	log.Printf("audit publisher mode=%s", rabbitmq.PublisherMode(publisher))

	audit := telemetry.NewAuditEmitter(publisher, cfg.AuditRoutingKey, cfg.ServiceName, cfg.Environment)

	if cfg.AmqpURL != "" {
		eventPublisher, err := observability.NewAMQPPublisher(cfg.AmqpURL, cfg.AuditExchange)
		if err != nil {
			log.Printf("event publisher disabled: %v", err)
		} else {
			defer eventPublisher.Close()
			observability.SetPublisher(eventPublisher)
		}
	}

	userRepo := repositories.NewUserRepo(database)
	roomRepo := repositories.NewRoomRepo(database)
	messageRepo := repositories.NewMessageRepo(database)
	contactRepo := repositories.NewContactRepo(database)

	guard := services.NewAccessGuard(roomRepo)
	roomService := services.NewRoomService(roomRepo, userRepo, guard)
	messageService := services.NewMessageService(messageRepo, userRepo, guard)
	friendsService := services.NewFriendsService(contactRepo, userRepo)
	userService := services.NewUserService(userRepo, contactRepo)

	chatHandler := handlers.NewChatHandler(roomService, messageService, audit)
	friendsHandler := handlers.NewFriendsHandler(friendsService, audit)
	userHandler := handlers.NewUserHandler(userService)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer)

	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(observability.HTTPMetricsMiddleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authMiddleware := middleware.AuthMiddleware(tokens)

	api := router.Group("/api", authMiddleware)

	chat := api.Group("/chat")
	chat.GET("/rooms", chatHandler.GetUserRooms)
	chat.POST("/rooms", chatHandler.CreateRoom)
	chat.GET("/rooms/:room_id", chatHandler.GetRoomDetails)
	chat.POST("/rooms/:room_id/participants", chatHandler.AddParticipant)
	chat.DELETE("/rooms/:room_id/participants/:participant_id", chatHandler.RemoveParticipant)
	chat.POST("/rooms/:room_id/messages", chatHandler.SendMessage)
	chat.GET("/rooms/:room_id/messages", chatHandler.GetRoomMessages)

	friends := api.Group("/friends")
	friends.GET("", friendsHandler.GetFriends)
	friends.POST("/requests", friendsHandler.SendFriendRequest)
	friends.GET("/requests", friendsHandler.GetFriendRequests)
	friends.PUT("/requests/:request_id/accept", friendsHandler.AcceptFriendRequest)
	friends.PUT("/requests/:request_id/reject", friendsHandler.RejectFriendRequest)
	friends.DELETE("/:friend_id", friendsHandler.RemoveFriend)

	users := api.Group("/users")
	users.GET("/search", userHandler.SearchUsers)
	users.GET("/find", userHandler.FindUser)

	handlers.RegisterDebugRoutes(router, audit, cfg.DebugRoutes)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
