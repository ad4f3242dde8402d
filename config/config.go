// Package config はアプリケーション設定を管理します。
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定を保持します。
type Config struct {
	// データディレクトリのパス（SQLite使用時）
	DataDir string

	// HTTPサーバーのポート
	Port string

	// PostgreSQL接続URI（設定されている場合はSQLiteの代わりにPostgreSQLを使用）
	DatabaseURI string
}

// NewConfig は環境変数から設定を読み込み、Configインスタンスを生成します。
// カレントディレクトリに.envファイルがあれば先に読み込みます。
func NewConfig() *Config {
	// .envファイルは任意（存在しなくてもエラーにしない）
	_ = godotenv.Load()

	// データディレクトリの設定
	dataDir := os.Getenv("TODOLIST_DATA_DIR")
	if dataDir == "" {
		dataDir = filepath.Join(".", "data")
	}

	// ポートの設定
	port := os.Getenv("TODOLIST_SERVER_PORT")
	if port == "" {
		port = "8081"
	}

	// PostgreSQL接続URIの設定（未設定の場合はSQLiteを使用）
	databaseURI := os.Getenv("TODOLIST_DATABASE_URI")

	return &Config{
		DataDir:     dataDir,
		Port:        port,
		DatabaseURI: databaseURI,
	}
}
