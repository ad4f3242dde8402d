// Package api はtodolistのAPIサーバー実装を提供します。
package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/Logan1xl/todolist/config"
	"github.com/Logan1xl/todolist/service"
)

// Server はAPIサーバーの構造体です。
type Server struct {
	router  *http.ServeMux
	handler http.Handler
	service *service.TodoService
	config  *config.Config
}

// NewServer は新しいAPIサーバーインスタンスを生成します。
func NewServer(service *service.TodoService, config *config.Config) *Server {
	s := &Server{
		router:  http.NewServeMux(),
		service: service,
		config:  config,
	}
	s.routes()

	// すべてのエンドポイントにCORSとアクセスログを適用
	s.handler = s.corsMiddleware(s.loggingMiddleware(s.router))
	return s
}

// routes はAPIエンドポイントのルーティングを設定します。
func (s *Server) routes() {
	// ヘルスチェックとAPI仕様
	s.router.HandleFunc("GET /healthz", s.handleHealthCheck)
	s.router.HandleFunc("GET /openapi.json", s.handleOpenAPISpec)

	// Todo endpoints
	// "GET /todos/statistics" は "GET /todos/{id}" より具体的なパターンとして優先される
	s.router.HandleFunc("GET /todos", s.handleListTodos)
	s.router.HandleFunc("POST /todos", s.handleCreateTodo)
	s.router.HandleFunc("GET /todos/statistics", s.handleGetStatistics)
	s.router.HandleFunc("GET /todos/{id}", s.handleGetTodo)
	s.router.HandleFunc("PUT /todos/{id}", s.handleUpdateTodo)
	s.router.HandleFunc("DELETE /todos/{id}", s.handleDeleteTodo)
	s.router.HandleFunc("PATCH /todos/{id}/complete", s.handleMarkCompleted)
}

// ServeHTTP はServer構造体をhttp.Handlerとして実装します。
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// ミドルウェアを適用したハンドラーを使用する
	s.handler.ServeHTTP(w, r)
}

// handleHealthCheck はヘルスチェックエンドポイントのハンドラーです。
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	resp := map[string]string{"status": "ok"}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// ListTodosParams represents parameters for listing todos.
type ListTodosParams struct {
	Status *bool
	Search *string
}

// NewListTodosParams creates parameters for todo listing from HTTP request.
func NewListTodosParams(r *http.Request) (*ListTodosParams, error) {
	params := &ListTodosParams{}
	query := r.URL.Query()

	// searchは空文字列でも有効（すべてにマッチする）
	if query.Has("search") {
		search := query.Get("search")
		params.Search = &search
	}

	if raw := query.Get("status"); raw != "" {
		status, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid status parameter: %w", err)
		}
		params.Status = &status
	}

	return params, nil
}

// handleListTodos はTodo一覧取得エンドポイントのハンドラーです。
// searchパラメータがある場合はタイトル検索、statusパラメータがある場合は
// 完了状態での絞り込みを行い、searchが優先されます。
func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	params, err := NewListTodosParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var todos []*service.Todo
	switch {
	case params.Search != nil:
		todos, err = s.service.SearchTodos(r.Context(), *params.Search)
	case params.Status != nil:
		todos, err = s.service.ListTodosByStatus(r.Context(), *params.Status)
	default:
		todos, err = s.service.ListTodos(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	// 空配列を返すためにnilチェック
	if todos == nil {
		todos = []*service.Todo{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(todos); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// CreateTodoParams represents parameters for creating a todo.
type CreateTodoParams struct {
	Input *service.TodoInput
}

// NewCreateTodoParams creates parameters for todo creation from HTTP request.
func NewCreateTodoParams(r *http.Request) (*CreateTodoParams, error) {
	var input service.TodoInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	return &CreateTodoParams{Input: &input}, nil
}

// handleCreateTodo はTodo作成エンドポイントのハンドラーです。
func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	params, err := NewCreateTodoParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	todo, err := s.service.CreateTodo(r.Context(), params.Input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// 成功レスポンスの返却
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(todo); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// GetTodoParams represents parameters for getting a todo.
type GetTodoParams struct {
	ID int64
}

// NewGetTodoParams creates parameters for todo retrieval from HTTP request.
func NewGetTodoParams(r *http.Request) (*GetTodoParams, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid todo id: %w", err)
	}

	return &GetTodoParams{ID: id}, nil
}

// handleGetTodo はTodo取得エンドポイントのハンドラーです。
func (s *Server) handleGetTodo(w http.ResponseWriter, r *http.Request) {
	params, err := NewGetTodoParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	todo, err := s.service.GetTodo(r.Context(), params.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(todo); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// UpdateTodoParams represents parameters for updating a todo.
type UpdateTodoParams struct {
	ID    int64
	Input *service.TodoInput
}

// NewUpdateTodoParams creates parameters for todo update from HTTP request.
func NewUpdateTodoParams(r *http.Request) (*UpdateTodoParams, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid todo id: %w", err)
	}

	var input service.TodoInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	return &UpdateTodoParams{ID: id, Input: &input}, nil
}

// handleUpdateTodo はTodo更新エンドポイントのハンドラーです。
// リクエストボディの内容でTodo全体を置き換えます。
func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	params, err := NewUpdateTodoParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	todo, err := s.service.UpdateTodo(r.Context(), params.ID, params.Input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// 更新成功のレスポンスを返却
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(todo); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// DeleteTodoParams represents parameters for deleting a todo.
type DeleteTodoParams struct {
	ID int64
}

// NewDeleteTodoParams creates parameters for todo deletion from HTTP request.
func NewDeleteTodoParams(r *http.Request) (*DeleteTodoParams, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid todo id: %w", err)
	}

	return &DeleteTodoParams{ID: id}, nil
}

// handleDeleteTodo はTodo削除エンドポイントのハンドラーです。
func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	params, err := NewDeleteTodoParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.service.DeleteTodo(r.Context(), params.ID); err != nil {
		writeError(w, r, err)
		return
	}

	// 削除成功のレスポンスを返す
	w.WriteHeader(http.StatusNoContent)
}

// MarkCompletedParams represents parameters for marking a todo as completed.
type MarkCompletedParams struct {
	ID int64
}

// NewMarkCompletedParams creates parameters for completion marking from HTTP request.
func NewMarkCompletedParams(r *http.Request) (*MarkCompletedParams, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid todo id: %w", err)
	}

	return &MarkCompletedParams{ID: id}, nil
}

// handleMarkCompleted はTodo完了エンドポイントのハンドラーです。
// すでに完了しているTodoに対しても成功を返します。
func (s *Server) handleMarkCompleted(w http.ResponseWriter, r *http.Request) {
	params, err := NewMarkCompletedParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	todo, err := s.service.MarkCompleted(r.Context(), params.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(todo); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// handleGetStatistics はTodoの統計情報エンドポイントのハンドラーです。
func (s *Server) handleGetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.GetStatistics(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// Run はサーバーを指定されたアドレスで起動します。
func (s *Server) Run(addr string) error {
	log.Printf("Server starting on %s", addr)
	return http.ListenAndServe(addr, s)
}
