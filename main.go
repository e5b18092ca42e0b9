package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"p9e.in/fleetops/config"
	"p9e.in/fleetops/handlers"
	"p9e.in/fleetops/mailer"
	"p9e.in/fleetops/middleware"
	"p9e.in/fleetops/routes"
	"p9e.in/fleetops/storage"
)

var (
	Version   = "dev"
	BuildTime = ""
)

func main() {
	versionFlag := flag.Bool("version", false, "Print version info and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("Version:   %s\n", Version)
		fmt.Printf("BuildTime: %s\n", BuildTime)
		os.Exit(0)
	}

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	log := config.NewLogger()

	db, err := config.Connect()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	if err := config.Migrations(db); err != nil {
		log.WithError(err).Fatal("could not run migrations")
	}
	if err := config.Seed(db, log); err != nil {
		log.WithError(err).Fatal("could not seed bootstrap data")
	}

	pictures, err := storage.FromEnv(context.Background())
	if err != nil {
		log.WithError(err).Fatal("could not configure picture storage")
	}

	h := handlers.New(db, log, pictures, mailer.NewAlerts(db, log))
	resolver := middleware.DBResolver{DB: db}

	handler := enableCORS(routes.RegisterRoutes(h, resolver))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("server starting")
	log.Fatal(http.ListenAndServe(":"+port, handler))
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, x-storm-userid, x-storm-username, X-Requested-With")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
