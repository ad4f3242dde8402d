// Package store は、データの永続化機能を提供します。
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Logan1xl/todolist/db"
	"github.com/Logan1xl/todolist/model"
	_ "github.com/mattn/go-sqlite3"
)

// TodoStore はTodoの保存と取得を行うインターフェースです。
type TodoStore interface {
	// CreateTodo は新しいTodoを作成し、採番されたIDをtodoに設定します。
	CreateTodo(ctx context.Context, todo *model.Todo) error
	// GetTodo は指定されたIDのTodoを取得します。
	GetTodo(ctx context.Context, id int64) (*model.Todo, error)
	// UpdateTodo は指定されたIDのTodoを更新します。
	UpdateTodo(ctx context.Context, todo *model.Todo) error
	// DeleteTodo は指定されたIDのTodoを削除します。
	DeleteTodo(ctx context.Context, id int64) error
	// ListTodos はすべてのTodoを取得します。
	ListTodos(ctx context.Context) ([]*model.Todo, error)
	// ListTodosByCompleted は完了状態が一致するTodoを取得します。
	ListTodosByCompleted(ctx context.Context, completed bool) ([]*model.Todo, error)
	// SearchTodosByTitle はタイトルに部分一致するTodoを取得します（大文字小文字を区別しない）。
	SearchTodosByTitle(ctx context.Context, query string) ([]*model.Todo, error)
	// CountTodos はTodoの総数を取得します。
	CountTodos(ctx context.Context) (int64, error)
	// CountTodosByCompleted は完了状態が一致するTodoの数を取得します。
	CountTodosByCompleted(ctx context.Context, completed bool) (int64, error)
	// Close はストアの接続を閉じます。
	Close() error
}

// SQLiteStore はSQLiteを使用したTodoStoreの実装です。
type SQLiteStore struct {
	conn    *sql.DB
	queries *db.Queries
}

// NewSQLiteStore は新しいSQLiteStoreを作成します。
func NewSQLiteStore(dataDir string, migrate func(*sql.DB) error) (*SQLiteStore, error) {
	// データディレクトリの作成（存在しない場合）
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// SQLiteデータベースファイルのパス
	dbPath := filepath.Join(dataDir, "todolist.db")

	// SQLiteデータベースへの接続
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	// マイグレーションの実行
	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteStore{
		conn:    conn,
		queries: db.New(conn),
	}, nil
}

// CreateTodo は新しいTodoをデータベースに保存し、採番されたIDをtodoに設定します。
func (s *SQLiteStore) CreateTodo(ctx context.Context, todo *model.Todo) error {
	// バリデーション
	if err := todo.Validate(); err != nil {
		return err
	}

	// sqlcで生成されたクエリを使用
	row, err := s.queries.CreateTodo(ctx, db.CreateTodoParams{
		Title:       todo.Title,
		Description: toNullString(todo.Description),
		Completed:   todo.Completed,
		CreatedAt:   formatTime(todo.CreatedAt),
		UpdatedAt:   formatTime(todo.UpdatedAt),
	})
	if err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}

	// 採番されたIDを反映
	todo.ID = row.ID

	return nil
}

// GetTodo は指定されたIDのTodoを取得します。
func (s *SQLiteStore) GetTodo(ctx context.Context, id int64) (*model.Todo, error) {
	// sqlcで生成されたクエリを使用
	dbTodo, err := s.queries.GetTodo(ctx, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrTodoNotFound
	}
	if err != nil {
		return nil, err
	}

	return loadTodo(dbTodo)
}

// UpdateTodo は指定されたIDのTodoを更新します。
func (s *SQLiteStore) UpdateTodo(ctx context.Context, todo *model.Todo) error {
	// バリデーション
	if err := todo.Validate(); err != nil {
		return err
	}

	// sqlcで生成されたクエリを使用
	result, err := s.queries.UpdateTodo(ctx, db.UpdateTodoParams{
		Title:       todo.Title,
		Description: toNullString(todo.Description),
		Completed:   todo.Completed,
		UpdatedAt:   formatTime(todo.UpdatedAt),
		ID:          todo.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	// 更新された行数を確認
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	// Todoが見つからない場合
	if rowsAffected == 0 {
		return model.ErrTodoNotFound
	}

	return nil
}

// DeleteTodo は指定されたIDのTodoを削除します。
func (s *SQLiteStore) DeleteTodo(ctx context.Context, id int64) error {
	// sqlcで生成されたクエリを使用
	result, err := s.queries.DeleteTodo(ctx, id)
	if err != nil {
		return err
	}

	// 削除された行数を確認
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	// Todoが見つからない場合
	if rowsAffected == 0 {
		return model.ErrTodoNotFound
	}

	return nil
}

// ListTodos はすべてのTodoを取得します。
func (s *SQLiteStore) ListTodos(ctx context.Context) ([]*model.Todo, error) {
	dbTodos, err := s.queries.ListTodos(ctx)
	if err != nil {
		return nil, err
	}

	return loadTodos(dbTodos)
}

// ListTodosByCompleted は完了状態が一致するTodoを取得します。
func (s *SQLiteStore) ListTodosByCompleted(ctx context.Context, completed bool) ([]*model.Todo, error) {
	dbTodos, err := s.queries.ListTodosByCompleted(ctx, completed)
	if err != nil {
		return nil, err
	}

	return loadTodos(dbTodos)
}

// SearchTodosByTitle はタイトルに部分一致するTodoを取得します（大文字小文字を区別しない）。
// 空文字列はすべてのTodoにマッチします。
func (s *SQLiteStore) SearchTodosByTitle(ctx context.Context, query string) ([]*model.Todo, error) {
	dbTodos, err := s.queries.SearchTodosByTitle(ctx, query)
	if err != nil {
		return nil, err
	}

	return loadTodos(dbTodos)
}

// CountTodos はTodoの総数を取得します。
func (s *SQLiteStore) CountTodos(ctx context.Context) (int64, error) {
	return s.queries.CountTodos(ctx)
}

// CountTodosByCompleted は完了状態が一致するTodoの数を取得します。
func (s *SQLiteStore) CountTodosByCompleted(ctx context.Context, completed bool) (int64, error) {
	return s.queries.CountTodosByCompleted(ctx, completed)
}

// Close はデータベース接続を閉じます。
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// formatTime は日時をナノ秒精度のRFC3339形式に統一して保存するためのヘルパーです。
func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// toNullString は*stringをsql.NullStringに変換します。
func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// loadTodo はDBの行からTodoモデルを復元します。
func loadTodo(dbTodo db.Todo) (*model.Todo, error) {
	// 文字列から時間に変換
	createdAt, err := time.Parse(time.RFC3339Nano, dbTodo.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	updatedAt, err := time.Parse(time.RFC3339Nano, dbTodo.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	// NULL許容の説明を変換
	var description *string
	if dbTodo.Description.Valid {
		description = &dbTodo.Description.String
	}

	return model.LoadTodo(dbTodo.ID, dbTodo.Title, description, dbTodo.Completed, createdAt, updatedAt)
}

// loadTodos はDBの行のスライスをTodoモデルのスライスに変換します。
func loadTodos(dbTodos []db.Todo) ([]*model.Todo, error) {
	var todos []*model.Todo
	for _, dbTodo := range dbTodos {
		todo, err := loadTodo(dbTodo)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, nil
}
