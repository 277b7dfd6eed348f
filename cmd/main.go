package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"roomchat/backend/internal/api/handler"
	"roomchat/backend/internal/auth"
	"roomchat/backend/internal/chat"
	"roomchat/backend/internal/chathub"
	"roomchat/backend/internal/config"
	"roomchat/backend/internal/models"
	"roomchat/backend/internal/storage"
	"roomchat/backend/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Membership{},
		&models.Message{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting RoomChat Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	authority, err := token.New([]byte(cfg.JWTSecret), cfg.JWTIssuer,
		cfg.AccessTTL, cfg.RefreshTTL, token.NewRedisRevocationStore(rdb))
	if err != nil {
		log.Fatalf("Failed to build token authority: %v", err)
	}

	authSvc := auth.NewService(s, authority)
	rooms := chat.NewRoomService(s)
	messages := chat.NewMessageService(s)

	hub := chathub.NewManagerService(s, messages)
	hub.StartPubSubListener()
	go hub.Run()

	r := gin.Default()
	h := handler.NewHandler(authSvc, rooms, messages, hub, authority)

	r.Use(h.RequireAuth())

	r.GET("/health", h.Health)
	r.GET("/ws", h.ServeWebSocket)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.RefreshTokens)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/me", h.Me)
	}

	chatGroup := r.Group("/chat")
	{
		chatGroup.POST("/rooms", h.CreateRoom)
		chatGroup.GET("/rooms", h.ListRooms)
		chatGroup.POST("/rooms/:id/participants", h.AddParticipant)
		chatGroup.GET("/rooms/:id/participants", h.ListParticipants)
		chatGroup.GET("/rooms/:id/participants/count", h.CountParticipants)
		chatGroup.DELETE("/rooms/:id/participants/:userId", h.RemoveParticipant)
		chatGroup.PUT("/rooms/:id/participants/:userId/role", h.UpdateParticipantRole)
		chatGroup.GET("/rooms/:id/messages", h.ListMessages)
		chatGroup.POST("/rooms/:id/messages", h.SendMessage)
		chatGroup.GET("/messages/:messageId", h.GetMessage)
		chatGroup.PUT("/messages/:messageId", h.EditMessage)
		chatGroup.DELETE("/messages/:messageId", h.DeleteMessage)
		chatGroup.POST("/messages/:messageId/restore", h.RestoreMessage)
	}

	server := &http.Server{
		Addr:           cfg.ListenAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
