// Package model は、アプリケーションのデータモデル定義を提供します。
package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// センチネルエラー - Todoが見つからない場合
var ErrTodoNotFound = errors.New("todo not found")

// NotFoundError は指定されたIDのTodoが存在しないことを表す型
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Todo not found with id: %d", e.ID)
}

// Unwrap はErrTodoNotFoundを返し、errors.Isでの判定を可能にします。
func (e *NotFoundError) Unwrap() error {
	return ErrTodoNotFound
}

// ValidationError はバリデーションエラーを表す型
// Fieldsはフィールド名からエラーメッセージへのマップです。
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

// NewValidationError はValidationErrorを生成するヘルパー関数
func NewValidationError(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}
