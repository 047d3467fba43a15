package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-crm/config"
	"campus-crm/internal/handlers"
	"campus-crm/internal/routes"
	"campus-crm/models"

	"github.com/gin-gonic/gin"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	config.LoadEnv()
	config.ConnectDB()
	config.ConnectRedis()

	if err := config.DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Student{},
		&models.Teacher{},
		&models.Class{},
		&models.Subject{},
		&models.ClassAssignment{},
		&models.FeeStructure{},
		&models.FeePayment{},
		&models.SalaryPayment{},
		&models.AttendanceRecord{},
		&models.LeaveRequest{},
		&models.Notice{},
		&models.InstallmentPlan{},
		&models.Installment{},
	); err != nil {
		slog.Error("Auto-migration failed", "error", err)
		os.Exit(1)
	}

	// Хаб уведомлений: локальная рассылка плюс подписка на Redis.
	go handlers.GlobalHub.Run()
	go handlers.SubscribeEvents()

	r := gin.Default()
	routes.SetupRoutes(r)

	server := &http.Server{
		Addr:    ":" + config.Getenv("PORT", "8080"),
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	slog.Info("Server stopped")
}
