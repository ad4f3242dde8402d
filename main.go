// Package main はアプリケーションのエントリーポイントを提供します。
package main

import (
	"context"
	"log"

	"github.com/Logan1xl/todolist/api"
	"github.com/Logan1xl/todolist/config"
	"github.com/Logan1xl/todolist/db"
	"github.com/Logan1xl/todolist/service"
	"github.com/Logan1xl/todolist/store"
)

func main() {
	// 設定の読み込み
	cfg := config.NewConfig()

	// ストアの初期化
	// TODOLIST_DATABASE_URIが設定されている場合はPostgreSQL、
	// それ以外はSQLiteを使用する
	var todoStore store.TodoStore
	var err error
	if cfg.DatabaseURI != "" {
		todoStore, err = store.NewPostgresStore(context.Background(), cfg.DatabaseURI)
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL store: %v", err)
		}
	} else {
		todoStore, err = store.NewSQLiteStore(cfg.DataDir, db.Migrate)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite store: %v", err)
		}
	}
	defer todoStore.Close()

	// サービスとサーバーインスタンスの作成
	svc := service.NewTodoService(todoStore)
	server := api.NewServer(svc, cfg)

	// サーバーの起動
	log.Fatal(server.Run(":" + cfg.Port))
}
