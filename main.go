package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/Davidson1997/bridge-calculator/internal/auth"
	"github.com/Davidson1997/bridge-calculator/internal/calc/assessment"
	"github.com/Davidson1997/bridge-calculator/internal/calc/batch"
	"github.com/Davidson1997/bridge-calculator/internal/calc/importer"
	"github.com/Davidson1997/bridge-calculator/internal/calc/materials"
	"github.com/Davidson1997/bridge-calculator/internal/calc/report"
	"github.com/Davidson1997/bridge-calculator/internal/repo"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

func HandleList(router *mux.Router, db *sql.DB) {
	userRepo := repo.NewPostgresUserDB(db)

	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}

	authEnv := &auth.Authenv{JWTKey: []byte(tokenKey), Repo: userRepo}
	limiter := auth.NewIPRateLimiter(1, 3)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	// Grade catalog is public so forms can populate before login.
	api.HandleFunc("/materials/{kind}/grades", func(w http.ResponseWriter, r *http.Request) {
		grades := materials.Grades(mux.Vars(r)["kind"])
		if grades == nil {
			http.Error(w, "Unknown material kind", http.StatusNotFound)
			return
		}
		writeJSON(w, grades)
	}).Methods("GET")

	secureAPI := api.PathPrefix("/user").Subrouter()
	secureAPI.Use(authEnv.AuthMiddleware)

	assessH := &assessment.Handler{}
	batchH := &batch.Handler{}
	importH := &importer.Handler{}
	reportH := &report.Handler{}

	secureAPI.HandleFunc("/tools/assess", assessH.Assess).Methods("POST")
	secureAPI.HandleFunc("/tools/assess/batch", batchH.Assess).Methods("POST")
	secureAPI.HandleFunc("/tools/assess/import", importH.Assess).Methods("POST")
	secureAPI.HandleFunc("/tools/assess/report", reportH.Generate).Methods("POST")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	db := auth.InitDB()
	defer db.Close()

	router := mux.NewRouter()
	HandleList(router, db)
	handler := CORS(router)

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":443"
	}
	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	log.Println("Starting server on", addr)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServeTLS("server.crt", "server.key"); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Shutdown signal received!")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
