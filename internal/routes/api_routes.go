// campus-crm/internal/routes/api_routes.go
package routes

import (
	"campus-crm/internal/handlers"
	"campus-crm/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes регистрирует все маршруты API, требующие аутентификации.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	apiGroup := api.Group("/api")
	{
		// Профиль пользователя
		profile := apiGroup.Group("/profile")
		{
			profile.GET("", handlers.GetProfileHandler)
			profile.PUT("", handlers.UpdateProfileHandler)
		}

		// --- УВЕДОМЛЕНИЯ ---
		notifications := apiGroup.Group("/notifications")
		{
			notifications.GET("/ws", func(c *gin.Context) {
				handlers.NotificationsWSEndpoint(c)
			})
		}

		// --- УЧЕНИКИ ---
		students := apiGroup.Group("/students")
		{
			students.GET("", handlers.ListStudentsHandler)
			students.GET("/:id", handlers.GetStudentHandler)
			students.POST("", middleware.PermissionMiddleware("students_manage"), handlers.CreateStudentHandler)
			students.PUT("/:id", middleware.PermissionMiddleware("students_manage"), handlers.UpdateStudentHandler)
			students.POST("/:id/withdraw", middleware.PermissionMiddleware("students_manage"), handlers.WithdrawStudentHandler)
			students.DELETE("/:id", middleware.PermissionMiddleware("students_manage"), handlers.DeleteStudentHandler)

			students.GET("/:id/fee-summary", middleware.PermissionMiddleware("fees_view"), handlers.GetStudentFeeSummaryHandler)
			students.GET("/:id/attendance", handlers.GetStudentAttendanceHandler)
			students.POST("/:id/fee-plan/preview", middleware.PermissionMiddleware("fees_view"), handlers.PreviewStudentFeePlanHandler)
		}

		// --- УЧИТЕЛЯ ---
		teachers := apiGroup.Group("/teachers")
		{
			teachers.GET("", handlers.ListTeachersHandler)
			teachers.GET("/:id", handlers.GetTeacherHandler)
			teachers.POST("", middleware.PermissionMiddleware("teachers_manage"), handlers.CreateTeacherHandler)
			teachers.PUT("/:id", middleware.PermissionMiddleware("teachers_manage"), handlers.UpdateTeacherHandler)
			teachers.DELETE("/:id", middleware.PermissionMiddleware("teachers_manage"), handlers.DeleteTeacherHandler)

			teachers.GET("/:id/salary-summary", middleware.PermissionMiddleware("salaries_view"), handlers.GetTeacherSalarySummaryHandler)
		}

		// --- КЛАССЫ И ПРЕДМЕТЫ ---
		classes := apiGroup.Group("/classes")
		{
			classes.GET("", handlers.ListClassesHandler)
			classes.GET("/:id", handlers.GetClassHandler)
			classes.POST("", middleware.PermissionMiddleware("classes_manage"), handlers.CreateClassHandler)
			classes.PUT("/:id", middleware.PermissionMiddleware("classes_manage"), handlers.UpdateClassHandler)
			classes.DELETE("/:id", middleware.PermissionMiddleware("classes_manage"), handlers.DeleteClassHandler)

			classes.GET("/:id/attendance", handlers.GetClassAttendanceHandler)
		}
		subjects := apiGroup.Group("/subjects")
		{
			subjects.GET("", handlers.ListSubjectsHandler)
			subjects.POST("", middleware.PermissionMiddleware("classes_manage"), handlers.CreateSubjectHandler)
			subjects.PUT("/:id", middleware.PermissionMiddleware("classes_manage"), handlers.UpdateSubjectHandler)
			subjects.DELETE("/:id", middleware.PermissionMiddleware("classes_manage"), handlers.DeleteSubjectHandler)
		}

		// --- ПОСЕЩАЕМОСТЬ ---
		attendance := apiGroup.Group("/attendance")
		{
			attendance.POST("", middleware.PermissionMiddleware("attendance_mark"), handlers.MarkAttendanceHandler)
		}

		// --- ОПЛАТА ОБУЧЕНИЯ ---
		fees := apiGroup.Group("/fees")
		{
			fees.GET("/structure", middleware.PermissionMiddleware("fees_view"), handlers.GetFeeStructuresHandler)
			fees.PUT("/structure", middleware.PermissionMiddleware("fees_manage"), handlers.UpdateFeeStructuresHandler)
			fees.GET("/payments", middleware.PermissionMiddleware("fees_view"), handlers.ListFeePaymentsHandler)
			fees.POST("/payments", middleware.PermissionMiddleware("fees_manage"), handlers.RecordFeePaymentHandler)
			fees.GET("/payments/export", middleware.PermissionMiddleware("fees_view"), handlers.ExportFeePaymentsHandler)
			fees.GET("/debtors", middleware.PermissionMiddleware("fees_view"), handlers.ListFeeDebtorsHandler)
		}

		// --- ПЛАНЫ РАССРОЧКИ ---
		feePlans := apiGroup.Group("/fee-plans")
		{
			feePlans.GET("", middleware.PermissionMiddleware("fees_view"), handlers.ListInstallmentPlansHandler)
			feePlans.POST("", middleware.PermissionMiddleware("fees_manage"), handlers.CreateInstallmentPlanHandler)
			feePlans.DELETE("/:id", middleware.PermissionMiddleware("fees_manage"), handlers.DeleteInstallmentPlanHandler)
		}

		// --- ЗАРПЛАТА ---
		salaries := apiGroup.Group("/salaries")
		{
			salaries.GET("/payments", middleware.PermissionMiddleware("salaries_view"), handlers.ListSalaryPaymentsHandler)
			salaries.POST("/payments", middleware.PermissionMiddleware("salaries_manage"), handlers.RecordSalaryPaymentHandler)
			salaries.GET("/payments/export", middleware.PermissionMiddleware("salaries_view"), handlers.ExportSalaryPaymentsHandler)
		}

		// --- ОТПУСКА ---
		leaves := apiGroup.Group("/leaves")
		{
			leaves.GET("", handlers.ListLeaveRequestsHandler)
			leaves.GET("/:id", handlers.GetLeaveRequestHandler)
			leaves.POST("", handlers.CreateLeaveRequestHandler)
			leaves.POST("/:id/decide", middleware.PermissionMiddleware("leaves_decide"), handlers.DecideLeaveRequestHandler)
		}

		// --- ОБЪЯВЛЕНИЯ ---
		notices := apiGroup.Group("/notices")
		{
			notices.GET("", handlers.ListNoticesHandler)
			notices.GET("/:id", handlers.GetNoticeHandler)
			notices.POST("", middleware.PermissionMiddleware("notices_manage"), handlers.CreateNoticeHandler)
			notices.PUT("/:id", middleware.PermissionMiddleware("notices_manage"), handlers.UpdateNoticeHandler)
			notices.DELETE("/:id", middleware.PermissionMiddleware("notices_manage"), handlers.DeleteNoticeHandler)
		}

		// --- АДМИНИСТРИРОВАНИЕ ---
		users := apiGroup.Group("/users", middleware.PermissionMiddleware("users_manage"))
		{
			users.GET("", handlers.ListUsersHandler)
			users.GET("/:id", handlers.GetUserHandler)
			users.POST("", handlers.CreateUserHandler)
			users.PUT("/:id", handlers.UpdateUserHandler)
			users.DELETE("/:id", handlers.DeleteUserHandler)
		}
		roles := apiGroup.Group("/roles", middleware.PermissionMiddleware("roles_manage"))
		{
			roles.GET("", handlers.ListRolesHandler)
			roles.GET("/:id", handlers.GetRoleHandler)
			roles.POST("", handlers.CreateRoleHandler)
			roles.PUT("/:id", handlers.UpdateRoleHandler)
			roles.DELETE("/:id", handlers.DeleteRoleHandler)
		}
		permissions := apiGroup.Group("/permissions", middleware.PermissionMiddleware("roles_manage"))
		{
			permissions.GET("", handlers.ListPermissionsHandler)
			permissions.POST("", handlers.CreatePermissionHandler)
			permissions.PUT("/:id", handlers.UpdatePermissionHandler)
			permissions.DELETE("/:id", handlers.DeletePermissionHandler)
		}
	}
}
