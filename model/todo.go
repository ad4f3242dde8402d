// Package model は、アプリケーションのデータモデル定義を提供します。
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// タイトルと説明の最大文字数
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

// Todo は1件のタスクを表すモデルです。
type Todo struct {
	ID          int64     // DBのAUTOINCREMENTで自動採番
	Title       string    // タイトル（必須、最大100文字）
	Description *string   // 説明（任意、最大500文字）
	Completed   bool      // 完了フラグ
	CreatedAt   time.Time // 作成日時
	UpdatedAt   time.Time // 更新日時
}

// NewTodo はTodoの新しいインスタンスを作成します。
// IDはデータベース側で自動採番されるため0を設定し、作成日時と更新日時は現在時刻に揃えます。
func NewTodo(title string, description *string, completed bool) (*Todo, error) {
	now := time.Now()
	t := &Todo{
		ID:          0, // DBのAUTOINCREMENTで自動採番
		Title:       title,
		Description: description,
		Completed:   completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadTodo は既存のTodoインスタンスを作成します。
func LoadTodo(id int64, title string, description *string, completed bool, createdAt, updatedAt time.Time) (*Todo, error) {
	// LoadTodoはDBから読み込んだ行用なので、IDは必須
	if id <= 0 {
		return nil, errors.New("id is required for loaded todo")
	}

	t := &Todo{
		ID:          id,
		Title:       title,
		Description: description,
		Completed:   completed,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate はTodoのデータバリデーションを行います。
func (t *Todo) Validate() error {
	// タイトルの検証
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("title is required")
	}
	if utf8.RuneCountInString(t.Title) > MaxTitleLength {
		return errors.New("title must not exceed 100 characters")
	}

	// 説明の検証
	if t.Description != nil && utf8.RuneCountInString(*t.Description) > MaxDescriptionLength {
		return errors.New("description must not exceed 500 characters")
	}

	// 日時の検証
	if t.CreatedAt.IsZero() {
		return errors.New("created_at is required")
	}
	if t.UpdatedAt.IsZero() {
		return errors.New("updated_at is required")
	}
	if t.UpdatedAt.Before(t.CreatedAt) {
		return errors.New("updated_at must not be before created_at")
	}

	return nil
}
