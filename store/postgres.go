package store

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"sort"

	"github.com/Logan1xl/todolist/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var pgMigrations embed.FS

// PostgresStore はPostgreSQLを使用したTodoStoreの実装です。
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore は接続URIからPostgresStoreを作成し、マイグレーションを実行します。
func NewPostgresStore(ctx context.Context, uri string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// 接続確認
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{pool: pool}

	// マイグレーションの実行
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// migrate は埋め込まれたマイグレーションファイルを未適用のものから順に適用します。
// 適用済みのバージョンはschema_migrationsテーブルで管理します。
func (s *PostgresStore) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	entries, err := pgMigrations.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	// ファイル名順に適用
	var filenames []string
	for _, entry := range entries {
		if !entry.IsDir() {
			filenames = append(filenames, entry.Name())
		}
	}
	sort.Strings(filenames)

	for _, filename := range filenames {
		// 適用済みかどうか確認
		var exists bool
		err := s.pool.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)",
			filename,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if exists {
			continue
		}

		content, err := pgMigrations.ReadFile("migrations/" + filename)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", filename, err)
		}

		if _, err := s.pool.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", filename, err)
		}

		if _, err := s.pool.Exec(ctx,
			"INSERT INTO schema_migrations (version) VALUES ($1)",
			filename,
		); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", filename, err)
		}
	}

	return nil
}

// CreateTodo は新しいTodoをデータベースに保存し、採番されたIDをtodoに設定します。
func (s *PostgresStore) CreateTodo(ctx context.Context, todo *model.Todo) error {
	// バリデーション
	if err := todo.Validate(); err != nil {
		return err
	}

	return s.pool.QueryRow(ctx,
		`INSERT INTO todos (title, description, completed, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		todo.Title, todo.Description, todo.Completed, todo.CreatedAt, todo.UpdatedAt,
	).Scan(&todo.ID)
}

// GetTodo は指定されたIDのTodoを取得します。
func (s *PostgresStore) GetTodo(ctx context.Context, id int64) (*model.Todo, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, title, description, completed, created_at, updated_at
		 FROM todos WHERE id = $1`,
		id,
	)
	return scanTodo(row)
}

// UpdateTodo は指定されたIDのTodoを更新します。
func (s *PostgresStore) UpdateTodo(ctx context.Context, todo *model.Todo) error {
	// バリデーション
	if err := todo.Validate(); err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE todos SET title = $1, description = $2, completed = $3, updated_at = $4
		 WHERE id = $5`,
		todo.Title, todo.Description, todo.Completed, todo.UpdatedAt, todo.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	// Todoが見つからない場合
	if tag.RowsAffected() == 0 {
		return model.ErrTodoNotFound
	}

	return nil
}

// DeleteTodo は指定されたIDのTodoを削除します。
func (s *PostgresStore) DeleteTodo(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	// Todoが見つからない場合
	if tag.RowsAffected() == 0 {
		return model.ErrTodoNotFound
	}

	return nil
}

// ListTodos はすべてのTodoを取得します。
func (s *PostgresStore) ListTodos(ctx context.Context) ([]*model.Todo, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, description, completed, created_at, updated_at
		 FROM todos ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTodos(rows)
}

// ListTodosByCompleted は完了状態が一致するTodoを取得します。
func (s *PostgresStore) ListTodosByCompleted(ctx context.Context, completed bool) ([]*model.Todo, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, description, completed, created_at, updated_at
		 FROM todos WHERE completed = $1 ORDER BY id`,
		completed,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTodos(rows)
}

// SearchTodosByTitle はタイトルに部分一致するTodoを取得します（大文字小文字を区別しない）。
// 空文字列はすべてのTodoにマッチします。
func (s *PostgresStore) SearchTodosByTitle(ctx context.Context, query string) ([]*model.Todo, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, description, completed, created_at, updated_at
		 FROM todos WHERE title ILIKE $1 ORDER BY id`,
		"%"+query+"%",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTodos(rows)
}

// CountTodos はTodoの総数を取得します。
func (s *PostgresStore) CountTodos(ctx context.Context) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM todos`).Scan(&count)
	return count, err
}

// CountTodosByCompleted は完了状態が一致するTodoの数を取得します。
func (s *PostgresStore) CountTodosByCompleted(ctx context.Context, completed bool) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM todos WHERE completed = $1`,
		completed,
	).Scan(&count)
	return count, err
}

// Close はコネクションプールを閉じます。
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// scanTodo は1行をTodoモデルに変換します。
func scanTodo(row pgx.Row) (*model.Todo, error) {
	var t model.Todo
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrTodoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// scanTodos は結果セットをTodoモデルのスライスに変換します。
func scanTodos(rows pgx.Rows) ([]*model.Todo, error) {
	var todos []*model.Todo
	for rows.Next() {
		var t model.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		todos = append(todos, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return todos, nil
}
