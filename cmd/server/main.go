package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mergington/school-management/internal/api/handlers"
	"github.com/mergington/school-management/internal/api/routes"
	"github.com/mergington/school-management/internal/config"
	"github.com/mergington/school-management/internal/repositories"
	"github.com/mergington/school-management/internal/services"
)

func main() {
	// 環境変数の読み込み
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	// データベース接続の初期化
	dbConfig := config.LoadDatabaseConfig()
	if err := config.EnsureDatabase(dbConfig); err != nil {
		log.Fatalf("❌ データベースの作成に失敗しました: %v", err)
	}

	db, err := config.NewDatabase(dbConfig)
	if err != nil {
		log.Fatalf("❌ データベース接続に失敗しました: %v", err)
	}
	defer db.Close()

	// スキーマとシードデータの準備
	if err := config.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("❌ マイグレーションに失敗しました: %v", err)
	}
	if err := repositories.SeedIfEmpty(context.Background(), db); err != nil {
		log.Fatalf("❌ シードデータの投入に失敗しました: %v", err)
	}

	// リポジトリの初期化
	userRepo := repositories.NewMySQLUserRepository(db)
	clubRepo := repositories.NewMySQLClubRepository(db)
	studentRepo := repositories.NewMySQLStudentRepository(db)
	membershipRepo := repositories.NewMySQLMembershipRepository(db)
	sessionRepo := repositories.NewMemorySessionRepository() // Sessionはメモリベース
	log.Printf("✅ MySQLベースのリポジトリを初期化しました")

	// サービスの初期化
	authService := services.NewAuthService(userRepo, sessionRepo)
	activityService := services.NewActivityService(clubRepo, studentRepo, membershipRepo)

	// 期限切れセッションの定期削除
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := sessionRepo.DeleteExpired(context.Background()); err != nil {
				log.Printf("⚠️ セッション掃除に失敗しました: %v", err)
			}
		}
	}()

	// ハンドラーの初期化
	authHandler := handlers.NewAuthHandler(authService)
	activityHandler := handlers.NewActivityHandler(activityService)
	healthHandler := handlers.NewHealthHandler()

	// ルーターの設定
	router := routes.NewRouter(authHandler, activityHandler, healthHandler, authService)

	// サーバーの起動
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 Mergington High School API starting on port %s", port)
	log.Printf("📋 Available endpoints:")
	log.Printf("  - GET    /health")
	log.Printf("  - GET    /activities")
	log.Printf("  - POST   /auth/login")
	log.Printf("  - POST   /auth/logout")
	log.Printf("  - GET    /auth/status")
	log.Printf("  - POST   /activities/:name/signup")
	log.Printf("  - DELETE /activities/:name/unregister")

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
