// Package service は、Todoのビジネスロジックを提供します。
package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/Logan1xl/todolist/model"
	"github.com/Logan1xl/todolist/store"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Todo はAPIレスポンスとして返すTodoの表現です。
type Todo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TodoInput は作成・更新リクエストの入力値です。
type TodoInput struct {
	Title       string  `json:"title" validate:"notblank,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Completed   *bool   `json:"completed"`
}

// Statistics はTodo全体の集計値です。
type Statistics struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// エラーメッセージのフィールド名にはJSONタグ名を使用する
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}

	return v
}

// Validate は入力値を検証し、違反があればフィールドごとのメッセージを
// 持つValidationErrorを返します。
func (in *TodoInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = validationMessage(fe)
	}
	return model.NewValidationError(fields)
}

// validationMessage は検証ルールごとのエラーメッセージを組み立てます。
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank":
		return "must not be blank"
	case "max":
		return fmt.Sprintf("must not exceed %s characters", fe.Param())
	default:
		return "is invalid"
	}
}

// TodoService はTodoに対するビジネス操作を提供します。
type TodoService struct {
	store store.TodoStore
}

// NewTodoService は新しいTodoServiceを作成します。
func NewTodoService(store store.TodoStore) *TodoService {
	return &TodoService{store: store}
}

// CreateTodo は入力値から新しいTodoを作成します。
// completedが未指定の場合はfalseになり、作成日時と更新日時は同じ値になります。
func (s *TodoService) CreateTodo(ctx context.Context, input *TodoInput) (*Todo, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	completed := false
	if input.Completed != nil {
		completed = *input.Completed
	}

	todo, err := model.NewTodo(input.Title, input.Description, completed)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateTodo(ctx, todo); err != nil {
		return nil, err
	}

	return fromModel(todo), nil
}

// GetTodo は指定されたIDのTodoを取得します。
func (s *TodoService) GetTodo(ctx context.Context, id int64) (*Todo, error) {
	todo, err := s.store.GetTodo(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrTodoNotFound) {
			return nil, &model.NotFoundError{ID: id}
		}
		return nil, err
	}
	return fromModel(todo), nil
}

// ListTodos はすべてのTodoを取得します。
func (s *TodoService) ListTodos(ctx context.Context) ([]*Todo, error) {
	todos, err := s.store.ListTodos(ctx)
	if err != nil {
		return nil, err
	}
	return fromModels(todos), nil
}

// ListTodosByStatus は完了状態が一致するTodoを取得します。
func (s *TodoService) ListTodosByStatus(ctx context.Context, completed bool) ([]*Todo, error) {
	todos, err := s.store.ListTodosByCompleted(ctx, completed)
	if err != nil {
		return nil, err
	}
	return fromModels(todos), nil
}

// SearchTodos はタイトルに部分一致するTodoを取得します（大文字小文字を区別しない）。
// 空文字列はすべてのTodoにマッチします。
func (s *TodoService) SearchTodos(ctx context.Context, query string) ([]*Todo, error) {
	todos, err := s.store.SearchTodosByTitle(ctx, query)
	if err != nil {
		return nil, err
	}
	return fromModels(todos), nil
}

// UpdateTodo は指定されたIDのTodoを入力値で全置換します。
// タイトル・説明・完了フラグは入力値で上書きされ（マージではない）、
// IDと作成日時は保持され、更新日時は現在時刻になります。
func (s *TodoService) UpdateTodo(ctx context.Context, id int64, input *TodoInput) (*Todo, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.store.GetTodo(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrTodoNotFound) {
			return nil, &model.NotFoundError{ID: id}
		}
		return nil, err
	}

	// 更新用のTodoを既存のTodoをベースに作成
	updated := *existing
	updated.Title = input.Title
	updated.Description = input.Description
	updated.Completed = false
	if input.Completed != nil {
		updated.Completed = *input.Completed
	}
	updated.UpdatedAt = time.Now()

	if err := s.store.UpdateTodo(ctx, &updated); err != nil {
		if errors.Is(err, model.ErrTodoNotFound) {
			return nil, &model.NotFoundError{ID: id}
		}
		return nil, err
	}

	return fromModel(&updated), nil
}

// DeleteTodo は指定されたIDのTodoを削除します。
func (s *TodoService) DeleteTodo(ctx context.Context, id int64) error {
	if err := s.store.DeleteTodo(ctx, id); err != nil {
		if errors.Is(err, model.ErrTodoNotFound) {
			return &model.NotFoundError{ID: id}
		}
		return err
	}
	return nil
}

// MarkCompleted は指定されたIDのTodoを完了状態にします。
// すでに完了している場合もエラーにはならず、更新日時のみ新しくなります。
func (s *TodoService) MarkCompleted(ctx context.Context, id int64) (*Todo, error) {
	existing, err := s.store.GetTodo(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrTodoNotFound) {
			return nil, &model.NotFoundError{ID: id}
		}
		return nil, err
	}

	updated := *existing
	updated.Completed = true
	updated.UpdatedAt = time.Now()

	if err := s.store.UpdateTodo(ctx, &updated); err != nil {
		if errors.Is(err, model.ErrTodoNotFound) {
			return nil, &model.NotFoundError{ID: id}
		}
		return nil, err
	}

	return fromModel(&updated), nil
}

// GetStatistics はTodoの件数の集計を返します。
// 3つのカウントは独立したクエリで取得されるため、並行して書き込みが
// 行われた場合は互いに厳密には一致しないことがあります。
func (s *TodoService) GetStatistics(ctx context.Context) (*Statistics, error) {
	total, err := s.store.CountTodos(ctx)
	if err != nil {
		return nil, err
	}

	completed, err := s.store.CountTodosByCompleted(ctx, true)
	if err != nil {
		return nil, err
	}

	pending, err := s.store.CountTodosByCompleted(ctx, false)
	if err != nil {
		return nil, err
	}

	return &Statistics{
		Total:     total,
		Completed: completed,
		Pending:   pending,
	}, nil
}

// fromModel はモデルをAPIレスポンス用の表現に変換します。
func fromModel(t *model.Todo) *Todo {
	return &Todo{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// fromModels はモデルのスライスをAPIレスポンス用の表現に変換します。
func fromModels(ts []*model.Todo) []*Todo {
	var todos []*Todo
	for _, t := range ts {
		todos = append(todos, fromModel(t))
	}
	return todos
}
