package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/Logan1xl/todolist/db"
	"github.com/Logan1xl/todolist/model"
)

func setupTestStore(t *testing.T) (*SQLiteStore, func()) {
	// テスト用の一時ディレクトリを作成
	tempDir, err := os.MkdirTemp("", "todolist-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	// テスト用のSQLiteストアを初期化（本番と同じマイグレーションを使用）
	store, err := NewSQLiteStore(tempDir, db.Migrate)
	if err != nil {
		os.RemoveAll(tempDir)
		t.Fatalf("Failed to create test store: %v", err)
	}

	// クリーンアップ関数を返す
	cleanup := func() {
		store.Close()
		os.RemoveAll(tempDir)
	}

	return store, cleanup
}

// mustCreateTodo はテスト用のTodoを作成して保存するヘルパーです。
func mustCreateTodo(t *testing.T, store *SQLiteStore, title string, description *string, completed bool) *model.Todo {
	t.Helper()

	todo, err := model.NewTodo(title, description, completed)
	if err != nil {
		t.Fatalf("Failed to build todo: %v", err)
	}
	if err := store.CreateTodo(context.Background(), todo); err != nil {
		t.Fatalf("Failed to create todo: %v", err)
	}
	return todo
}

// TestCreateAndGetTodo tests creating a todo and reading it back
func TestCreateAndGetTodo(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	description := "2 liters, semi-skimmed"
	created := mustCreateTodo(t, store, "Buy milk", &description, false)

	// IDが採番されているか確認
	if created.ID <= 0 {
		t.Fatalf("Expected positive ID after create, got %d", created.ID)
	}

	// 保存したTodoを取得
	got, err := store.GetTodo(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Failed to get todo: %v", err)
	}

	// 各フィールドが保存時と一致するか確認
	if got.Title != created.Title {
		t.Errorf("Expected title %q, got %q", created.Title, got.Title)
	}
	if got.Description == nil || *got.Description != description {
		t.Errorf("Expected description %q, got %v", description, got.Description)
	}
	if got.Completed != created.Completed {
		t.Errorf("Expected completed %v, got %v", created.Completed, got.Completed)
	}

	// 日時がナノ秒精度で往復することを確認
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("Expected CreatedAt %v, got %v", created.CreatedAt, got.CreatedAt)
	}
	if !got.UpdatedAt.Equal(created.UpdatedAt) {
		t.Errorf("Expected UpdatedAt %v, got %v", created.UpdatedAt, got.UpdatedAt)
	}
}

// TestCreateTodoWithoutDescription tests that a nil description round-trips as nil
func TestCreateTodoWithoutDescription(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	created := mustCreateTodo(t, store, "Buy milk", nil, false)

	got, err := store.GetTodo(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Failed to get todo: %v", err)
	}

	// 説明なしはNULLとして保存され、nilで復元されること
	if got.Description != nil {
		t.Errorf("Expected nil description, got %q", *got.Description)
	}
}

// TestGetTodoNotFound tests that a missing todo yields ErrTodoNotFound
func TestGetTodoNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.GetTodo(context.Background(), 999)
	if !errors.Is(err, model.ErrTodoNotFound) {
		t.Errorf("Expected ErrTodoNotFound, got %v", err)
	}
}

// TestUpdateTodo tests updating an existing todo
func TestUpdateTodo(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	description := "original description"
	created := mustCreateTodo(t, store, "Original title", &description, false)

	// 全フィールドを書き換えて更新
	updated := *created
	updated.Title = "Updated title"
	updated.Description = nil
	updated.Completed = true
	updated.UpdatedAt = created.UpdatedAt.Add(time.Second)

	if err := store.UpdateTodo(context.Background(), &updated); err != nil {
		t.Fatalf("Failed to update todo: %v", err)
	}

	got, err := store.GetTodo(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Failed to get todo: %v", err)
	}

	if got.Title != "Updated title" {
		t.Errorf("Expected title %q, got %q", "Updated title", got.Title)
	}
	if got.Description != nil {
		t.Errorf("Expected nil description after update, got %q", *got.Description)
	}
	if !got.Completed {
		t.Error("Expected completed to be true after update")
	}

	// 作成日時は更新されないこと
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("Expected CreatedAt %v to be preserved, got %v", created.CreatedAt, got.CreatedAt)
	}

	// 更新日時は新しい値になること
	if !got.UpdatedAt.Equal(updated.UpdatedAt) {
		t.Errorf("Expected UpdatedAt %v, got %v", updated.UpdatedAt, got.UpdatedAt)
	}
}

// TestUpdateTodoNotFound tests that updating a missing todo yields ErrTodoNotFound
func TestUpdateTodoNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	todo, err := model.LoadTodo(999, "missing", nil, false, time.Now(), time.Now())
	if err != nil {
		t.Fatalf("Failed to build todo: %v", err)
	}

	err = store.UpdateTodo(context.Background(), todo)
	if !errors.Is(err, model.ErrTodoNotFound) {
		t.Errorf("Expected ErrTodoNotFound, got %v", err)
	}
}

// TestDeleteTodo tests deleting an existing todo
func TestDeleteTodo(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	created := mustCreateTodo(t, store, "To be deleted", nil, false)

	if err := store.DeleteTodo(context.Background(), created.ID); err != nil {
		t.Fatalf("Failed to delete todo: %v", err)
	}

	// 削除後は取得できないこと
	_, err := store.GetTodo(context.Background(), created.ID)
	if !errors.Is(err, model.ErrTodoNotFound) {
		t.Errorf("Expected ErrTodoNotFound after delete, got %v", err)
	}
}

// TestDeleteTodoNotFound tests that deleting a missing todo yields ErrTodoNotFound
func TestDeleteTodoNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.DeleteTodo(context.Background(), 999)
	if !errors.Is(err, model.ErrTodoNotFound) {
		t.Errorf("Expected ErrTodoNotFound, got %v", err)
	}
}

// TestListTodos tests listing all todos
func TestListTodos(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	// 空の状態では0件
	todos, err := store.ListTodos(context.Background())
	if err != nil {
		t.Fatalf("Failed to list todos: %v", err)
	}
	if len(todos) != 0 {
		t.Errorf("Expected 0 todos, got %d", len(todos))
	}

	mustCreateTodo(t, store, "First", nil, false)
	mustCreateTodo(t, store, "Second", nil, true)

	todos, err = store.ListTodos(context.Background())
	if err != nil {
		t.Fatalf("Failed to list todos: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("Expected 2 todos, got %d", len(todos))
	}

	// ID昇順で返ること
	if todos[0].Title != "First" {
		t.Errorf("Expected first todo to be %q, got %q", "First", todos[0].Title)
	}
	if todos[1].Title != "Second" {
		t.Errorf("Expected second todo to be %q, got %q", "Second", todos[1].Title)
	}
}

// TestListTodosByCompleted tests filtering todos by completion status
func TestListTodosByCompleted(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	mustCreateTodo(t, store, "Pending one", nil, false)
	mustCreateTodo(t, store, "Pending two", nil, false)
	mustCreateTodo(t, store, "Done", nil, true)

	completed, err := store.ListTodosByCompleted(context.Background(), true)
	if err != nil {
		t.Fatalf("Failed to list completed todos: %v", err)
	}
	if len(completed) != 1 {
		t.Errorf("Expected 1 completed todo, got %d", len(completed))
	}

	pending, err := store.ListTodosByCompleted(context.Background(), false)
	if err != nil {
		t.Fatalf("Failed to list pending todos: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("Expected 2 pending todos, got %d", len(pending))
	}
}

// TestSearchTodosByTitle tests case-insensitive substring search
func TestSearchTodosByTitle(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	mustCreateTodo(t, store, "Buy milk", nil, false)
	mustCreateTodo(t, store, "MILKSHAKE recipe", nil, false)
	mustCreateTodo(t, store, "Read book", nil, false)

	// 大文字小文字を区別せずに部分一致すること
	todos, err := store.SearchTodosByTitle(context.Background(), "milk")
	if err != nil {
		t.Fatalf("Failed to search todos: %v", err)
	}
	if len(todos) != 2 {
		t.Errorf("Expected 2 todos matching %q, got %d", "milk", len(todos))
	}

	// 空文字列はすべてにマッチすること
	todos, err = store.SearchTodosByTitle(context.Background(), "")
	if err != nil {
		t.Fatalf("Failed to search todos: %v", err)
	}
	if len(todos) != 3 {
		t.Errorf("Expected 3 todos for empty query, got %d", len(todos))
	}

	// 一致しない場合は0件
	todos, err = store.SearchTodosByTitle(context.Background(), "xyz")
	if err != nil {
		t.Fatalf("Failed to search todos: %v", err)
	}
	if len(todos) != 0 {
		t.Errorf("Expected 0 todos for non-matching query, got %d", len(todos))
	}
}

// TestCountTodos tests the count queries used by statistics
func TestCountTodos(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	mustCreateTodo(t, store, "First", nil, false)
	mustCreateTodo(t, store, "Second", nil, true)
	mustCreateTodo(t, store, "Third", nil, false)

	total, err := store.CountTodos(context.Background())
	if err != nil {
		t.Fatalf("Failed to count todos: %v", err)
	}
	if total != 3 {
		t.Errorf("Expected total 3, got %d", total)
	}

	completed, err := store.CountTodosByCompleted(context.Background(), true)
	if err != nil {
		t.Fatalf("Failed to count completed todos: %v", err)
	}
	if completed != 1 {
		t.Errorf("Expected 1 completed, got %d", completed)
	}

	pending, err := store.CountTodosByCompleted(context.Background(), false)
	if err != nil {
		t.Fatalf("Failed to count pending todos: %v", err)
	}
	if pending != 2 {
		t.Errorf("Expected 2 pending, got %d", pending)
	}
}
