package api

import (
	_ "embed"
	"log"
	"net/http"
)

//go:embed openapi.json
var openAPISpec []byte

// handleOpenAPISpec はAPI仕様書（OpenAPI 3.0）を返却するハンドラーです。
func (s *Server) handleOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(openAPISpec); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}
