package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/mergington/school-management/internal/config"
	"github.com/mergington/school-management/internal/repositories"
)

// データベースの作成・マイグレーション・シード投入だけを行うツール。
// サーバー起動時にも同じ処理が走るため、通常は手動実行は不要です。
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	dbConfig := config.LoadDatabaseConfig()
	log.Printf("📦 データベース %s を初期化します (%s:%s)", dbConfig.DBName, dbConfig.Host, dbConfig.Port)

	if err := config.EnsureDatabase(dbConfig); err != nil {
		log.Fatalf("❌ データベースの作成に失敗しました: %v", err)
	}

	db, err := config.NewDatabase(dbConfig)
	if err != nil {
		log.Fatalf("❌ データベース接続に失敗しました: %v", err)
	}
	defer db.Close()

	if err := config.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("❌ マイグレーションに失敗しました: %v", err)
	}

	if err := repositories.SeedIfEmpty(context.Background(), db); err != nil {
		log.Fatalf("❌ シードデータの投入に失敗しました: %v", err)
	}

	log.Printf("✅ データベースの初期化が完了しました")
	log.Printf("📋 デフォルトユーザー:")
	for _, u := range repositories.SeedUsers {
		log.Printf("  - %s / %s (%s)", u.Username, u.Password, u.Role)
	}
}
