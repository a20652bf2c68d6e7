package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mandihub/mandi_backend/controllers"
	"github.com/mandihub/mandi_backend/middlewares"
	"github.com/mandihub/mandi_backend/models"
)

func InitializeRoutes(router *gin.Engine) {
	router.POST("/register", controllers.Register)
	router.POST("/login", controllers.Login)
	router.POST("/verify-otp", controllers.VerifyOtp)

	// Everything below needs a valid token. Posting endpoints are open to
	// drivers and admins; master data and reports are admin only.
	api := router.Group("/api")
	api.Use(middlewares.RequireAuth())
	{
		api.GET("/me", controllers.GetMe)

		api.GET("/transactions/dashboard/summary", controllers.GetMySummary)
		api.POST("/transactions/sell", controllers.CreateSell)
		api.POST("/transactions/buy", controllers.CreateBuy)
		api.POST("/transactions/shop-buy", controllers.CreateShopBuy)
		api.POST("/transactions/palti", controllers.CreatePalti)
		api.POST("/transactions/weight-loss", controllers.CreateWeightLoss)
		api.POST("/transactions/fuel", controllers.CreateFuel)
		api.GET("/transactions", controllers.ListTransactions)
		api.GET("/transactions/recent", controllers.GetRecentTransactions)
		api.GET("/transactions/:id", controllers.GetTransaction)

		api.POST("/receive-payments", controllers.CreateReceivePayment)

		api.GET("/customers", controllers.ListCustomers)
		api.GET("/customers/:id", controllers.GetCustomer)

		api.GET("/drivers/:id/report", controllers.GetDriverReport)
		api.GET("/drivers/:id/stock", controllers.GetDriverStock)

		api.GET("/notifications", controllers.ListMyNotifications)
		api.PUT("/notifications/read-all", controllers.ReadAllNotifications)
		api.PUT("/notifications/:id/read", controllers.ReadNotification)
	}

	admin := router.Group("/admin")
	admin.Use(middlewares.RequireAuth(), middlewares.RequireRole(string(models.UserRoleAdmin)))
	{
		admin.PUT("/transactions/:id", controllers.UpdateTransaction)
		admin.DELETE("/transactions/:id", controllers.DeleteTransaction)

		admin.POST("/payments", controllers.CreatePayment)
		admin.GET("/payments", controllers.ListPayments)
		admin.DELETE("/payments/:id", controllers.DeletePayment)

		admin.POST("/expenses", controllers.CreateExpense)
		admin.GET("/expenses", controllers.ListExpenses)
		admin.GET("/expenses/summary", controllers.GetExpenseSummary)
		admin.PUT("/expenses/:id", controllers.UpdateExpense)
		admin.DELETE("/expenses/:id", controllers.DeleteExpense)

		admin.GET("/receive-payments", controllers.ListReceivePayments)
		admin.DELETE("/receive-payments/:id", controllers.DeleteTransaction)

		admin.POST("/customers", controllers.CreateCustomer)
		admin.GET("/customers/due", controllers.ListDueCustomers)
		admin.PUT("/customers/:id", controllers.UpdateCustomer)
		admin.GET("/customers/:id/ledger", controllers.GetCustomerLedger)
		admin.POST("/customers/advance", controllers.CreateAdvancePayment)
		admin.POST("/customers/debit-note", controllers.CreateDebitNote)
		admin.POST("/customers/credit-note", controllers.CreateCreditNote)

		admin.POST("/companies", controllers.CreateCompany)
		admin.GET("/companies", controllers.ListCompanies)
		admin.GET("/companies/:id", controllers.GetCompany)
		admin.PUT("/companies/:id", controllers.UpdateCompany)
		admin.DELETE("/companies/:id", controllers.DeleteCompany)
		admin.GET("/companies/:id/ledger", controllers.GetCompanyLedger)

		admin.POST("/drivers", controllers.CreateDriver)
		admin.GET("/drivers", controllers.ListDrivers)
		admin.GET("/drivers/:id", controllers.GetDriver)
		admin.PUT("/drivers/:id", controllers.UpdateDriver)
		admin.PUT("/drivers/:id/status", controllers.SetDriverStatus)
		admin.DELETE("/drivers/:id", controllers.DeleteDriver)

		admin.POST("/vehicles", controllers.CreateVehicle)
		admin.GET("/vehicles", controllers.ListVehicles)
		admin.GET("/vehicles/:id", controllers.GetVehicle)
		admin.PUT("/vehicles/:id", controllers.UpdateVehicle)

		admin.POST("/banks", controllers.CreateBank)
		admin.GET("/banks", controllers.ListBanks)
		admin.GET("/banks/:id", controllers.GetBank)
		admin.PUT("/banks/:id", controllers.UpdateBank)
		admin.POST("/banks/cash-to-bank", controllers.CreateCashToBank)
		admin.POST("/banks/transfer", controllers.CreateBankTransfer)
		admin.POST("/banks/adjust", controllers.AdjustBankBalance)
		admin.POST("/cash/adjust", controllers.AdjustCash)
		admin.GET("/total-capital", controllers.GetTotalCapital)

		admin.POST("/notifications", controllers.CreateNotification)

		admin.POST("/borrowed-money", controllers.CreateBorrowedMoney)
		admin.GET("/borrowed-money", controllers.ListBorrowedMoney)
		admin.PUT("/borrowed-money/:id/returned", controllers.MarkBorrowedMoneyReturned)

		admin.GET("/reports/dashboard", controllers.GetDashboard)
		admin.GET("/reports/cashflow", controllers.GetCashFlowReport)
		admin.GET("/reports/cashflow.xlsx", controllers.ExportCashFlowXlsx)
		admin.GET("/reports/profit", controllers.GetProfitReport)
	}
}
