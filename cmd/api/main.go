// Command api starts the StaffBoard HTTP API server.
package main

import (
	"log"
	"net/http"

	"StaffBoard-backend/internal/server"
)

// @title StaffBoard API
// @version 1.0
// @description Job board backend with staff verification, admin approval and visitor applications.
// @BasePath /api/v1
func main() {
	srv := server.NewServer()

	log.Printf("Server listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %s", err)
	}
}
