package config

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

func LoadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		User:     getEnv("DB_USER", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		DBName:   getEnv("DB_NAME", "school_management"),
	}
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=5s",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}

// ServerDSN はデータベース名を含まないDSNを返します（CREATE DATABASE 用）
func (c *DatabaseConfig) ServerDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/?charset=utf8mb4&parseTime=True&loc=Local&timeout=5s",
		c.User, c.Password, c.Host, c.Port)
}

func NewDatabase(config *DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("mysql", config.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 接続プールの設定
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

// EnsureDatabase はデータベースが存在しない場合に作成します
func EnsureDatabase(config *DatabaseConfig) error {
	db, err := sqlx.Connect("mysql", config.ServerDSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s CHARACTER SET utf8mb4", config.DBName)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", config.DBName, err)
	}

	return nil
}

// RunMigrations はマイグレーションディレクトリの .sql ファイルを順番に実行します。
// 各ファイルは CREATE TABLE IF NOT EXISTS のみを含むため、何度実行しても安全です。
func RunMigrations(db *sqlx.DB, migrationDir string) error {
	files, err := os.ReadDir(migrationDir)
	if err != nil {
		return fmt.Errorf("マイグレーションディレクトリの読み込みに失敗: %w", err)
	}

	// .sqlファイルのみをフィルタリングしてソート
	var sqlFiles []string
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), ".sql") {
			sqlFiles = append(sqlFiles, file.Name())
		}
	}
	sort.Strings(sqlFiles)

	if len(sqlFiles) == 0 {
		return fmt.Errorf("マイグレーションファイルが見つかりません: %s", migrationDir)
	}

	// ファイルを順番に実行
	for _, filename := range sqlFiles {
		path := fmt.Sprintf("%s/%s", migrationDir, filename)

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("マイグレーションファイルの読み込みに失敗 %s: %w", filename, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("マイグレーションの実行に失敗 %s: %w", filename, err)
		}

		log.Printf("✅ マイグレーション完了: %s", filename)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
