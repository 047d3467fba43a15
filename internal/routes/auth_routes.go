package routes

import (
	"campus-crm/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes регистрирует публичные маршруты.
// Эти маршруты не требуют middleware для проверки токена.
func RegisterAuthRoutes(r *gin.Engine) {
	r.POST("/login", handlers.LoginHandler)
	r.GET("/logout", handlers.LogoutHandler)

	// Банк шлет уведомления о платежах без пользовательского токена;
	// идемпотентность обеспечивается через externalId.
	r.POST("/api/webhooks/bank-payment", handlers.BankPaymentWebhookHandler)
}
