package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Logan1xl/todolist/model"
)

// エラーレスポンスのerrorフィールドに入れるカテゴリ
const (
	errCategoryNotFound   = "resource not found"
	errCategoryValidation = "validation error"
	errCategoryInternal   = "internal server error"
)

// ErrorResponse はエラー時のJSONレスポンスです。
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// ValidationErrorResponse は入力値検証エラー時のJSONレスポンスです。
// フィールドごとのメッセージをerreursに持ちます。
type ValidationErrorResponse struct {
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Erreurs   map[string]string `json:"erreurs"`
	Path      string            `json:"path"`
}

// writeError はエラーの種類に応じたJSON形式のエラーレスポンスを返却します。
// 入力値検証エラーは400、存在しないTodoへのアクセスは404、それ以外は500になります。
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		writeValidationError(w, r, verr)
		return
	}

	var nferr *model.NotFoundError
	if errors.As(err, &nferr) {
		writeErrorResponse(w, r, http.StatusNotFound, errCategoryNotFound, nferr.Error())
		return
	}

	log.Printf("Error handling %s %s: %v", r.Method, r.URL.Path, err)
	writeErrorResponse(w, r, http.StatusInternalServerError, errCategoryInternal, err.Error())
}

// writeErrorResponse は共通形式のエラーレスポンスを返却します。
func writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, category, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	resp := ErrorResponse{
		Timestamp: time.Now(),
		Status:    statusCode,
		Error:     category,
		Message:   message,
		Path:      r.URL.Path,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding error response: %v", err)
	}
}

// writeValidationError は検証エラーのレスポンスを返却します。
func writeValidationError(w http.ResponseWriter, r *http.Request, verr *model.ValidationError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	resp := ValidationErrorResponse{
		Timestamp: time.Now(),
		Status:    http.StatusBadRequest,
		Error:     errCategoryValidation,
		Erreurs:   verr.Fields,
		Path:      r.URL.Path,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding error response: %v", err)
	}
}
