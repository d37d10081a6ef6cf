package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"StaffBoard-backend/internal/auth"
	"StaffBoard-backend/internal/controller/file"
	"StaffBoard-backend/internal/database"
	"StaffBoard-backend/internal/mail"
)

// MyServer holds the shared dependencies handed to every route handler.
type MyServer struct {
	DB        *database.DBinstanceStruct
	Blacklist auth.JwtBlacklistStore
	Mailer    mail.Mailer
	Storage   file.StorageClient
}

// NewServer constructs the http.Server for the API, connecting to the
// database and wiring all handler dependencies.
func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialize: %s", err)
	}

	s := &MyServer{
		DB:        db,
		Blacklist: auth.NewInMemoryBlacklistStore(),
		Mailer:    mail.DefaultMailer(),
		Storage:   file.StorageFromEnv(),
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
