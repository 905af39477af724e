package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/homely-bites/internal/audit"
	"github.com/BruksfildServices01/homely-bites/internal/auth"
	"github.com/BruksfildServices01/homely-bites/internal/cache"
	"github.com/BruksfildServices01/homely-bites/internal/config"
	"github.com/BruksfildServices01/homely-bites/internal/events"
	"github.com/BruksfildServices01/homely-bites/internal/handlers"
	infraRepo "github.com/BruksfildServices01/homely-bites/internal/infra/repository"
	"github.com/BruksfildServices01/homely-bites/internal/media"
	"github.com/BruksfildServices01/homely-bites/internal/middleware"
	ucFeedback "github.com/BruksfildServices01/homely-bites/internal/usecase/feedback"
	ucOrder "github.com/BruksfildServices01/homely-bites/internal/usecase/order"
)

// Deps are the singletons built in main.
type Deps struct {
	DB        *gorm.DB
	Config    *config.Config
	Log       *slog.Logger
	Audit     *audit.Dispatcher
	Cache     *cache.Cache
	Publisher events.Publisher
	Media     media.Store
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.Recovery(d.Log))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	orderRepo := infraRepo.NewOrderGormRepository(d.DB)
	feedbackRepo := infraRepo.NewFeedbackGormRepository(d.DB)
	reportRepo := infraRepo.NewReportGormRepository(d.DB)

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	hasher := auth.NewHasher(cfg.BcryptCost)
	uploader := media.NewUploader(d.Media, cfg.Media)

	// ======================================================
	// USE CASES
	// ======================================================
	placeOrderUC := ucOrder.NewPlaceOrder(orderRepo, d.Audit, d.Publisher)
	cancelOrderUC := ucOrder.NewCancelOrder(orderRepo, d.Audit, d.Publisher)
	advanceOrderUC := ucOrder.NewAdvanceOrder(orderRepo, d.Audit, d.Publisher)
	claimOrderUC := ucOrder.NewClaimOrder(orderRepo, d.Audit, d.Publisher)
	updateDeliveryUC := ucOrder.NewUpdateDeliveryStatus(orderRepo, d.Audit, d.Publisher)
	listOrdersUC := ucOrder.NewListOrders(orderRepo)

	submitFeedbackUC := ucFeedback.NewSubmitFeedback(feedbackRepo, d.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, issuer, hasher, d.Audit, cfg)
	customerHandler := handlers.NewCustomerHandler(d.DB, hasher, reportRepo, cfg.PublicBaseURL)
	catalogHandler := handlers.NewCatalogHandler(d.DB, reportRepo, d.Cache, cfg.PublicBaseURL)
	chefHandler := handlers.NewChefHandler(d.DB, reportRepo, feedbackRepo, d.Cache, d.Audit, cfg.Timezone, cfg.PublicBaseURL)
	menuHandler := handlers.NewMenuHandler(d.DB, uploader, d.Cache, cfg.PublicBaseURL)
	courierHandler := handlers.NewCourierHandler(d.DB, reportRepo)
	feedbackHandler := handlers.NewFeedbackHandler(submitFeedbackUC, feedbackRepo, d.Cache)
	adminHandler := handlers.NewAdminHandler(d.DB, hasher, feedbackRepo, d.Cache, d.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	orderHandler := handlers.NewOrderHandler(
		orderRepo,
		placeOrderUC,
		cancelOrderUC,
		advanceOrderUC,
		claimOrderUC,
		updateDeliveryUC,
		listOrdersUC,
	)

	authRequired := middleware.AuthMiddleware(issuer)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.Media.Backend == config.MediaLocal {
		r.Static(media.LocalURLPrefix, cfg.Media.UploadDir)
	}

	r.GET("/menu/chef/:chef_id", catalogHandler.ChefMenu)

	// ======================================================
	// CUSTOMER
	// ======================================================
	customer := r.Group("/customer")
	{
		customer.POST("/signup", authHandler.CustomerSignup)
		customer.POST("/signin", authHandler.CustomerSignin)

		secured := customer.Group("/", authRequired, middleware.RequireRole(auth.RoleCustomer))
		{
			secured.GET("/profile", customerHandler.Profile)
			secured.PUT("/profile", customerHandler.UpdateProfile)
			secured.POST("/address", customerHandler.AddAddress)

			// ------------------------------
			// DASHBOARD
			// ------------------------------
			secured.GET("/dashboard/home", customerHandler.Home)
			secured.GET("/dashboard/cart", customerHandler.Cart)
			secured.POST("/dashboard/place-order", orderHandler.Place)
			secured.GET("/dashboard/orders", orderHandler.CustomerOrders)
			secured.GET("/dashboard/orders/stats/summary", customerHandler.Stats)
			secured.GET("/dashboard/orders/:order_id", orderHandler.CustomerOrder)
			secured.PUT("/dashboard/orders/:order_id/cancel", orderHandler.Cancel)

			// ------------------------------
			// SETTINGS
			// ------------------------------
			secured.GET("/dashboard/settings", customerHandler.Settings)
			secured.PUT("/dashboard/settings/profile", customerHandler.UpdateProfile)
			secured.POST("/dashboard/settings/address", customerHandler.AddAddress)
			secured.PUT("/dashboard/settings/address/:address_id", customerHandler.UpdateAddress)
			secured.DELETE("/dashboard/settings/address/:address_id", customerHandler.DeleteAddress)
			secured.POST("/dashboard/settings/change-password", customerHandler.ChangePassword)
			secured.GET("/dashboard/settings/preferences", customerHandler.Preferences)

			// ------------------------------
			// BROWSE / FEEDBACK
			// ------------------------------
			secured.GET("/chefs/all", catalogHandler.BrowseChefs)
			secured.GET("/chef/:chef_id", catalogHandler.ChefDetail)
			secured.GET("/feedbacks", feedbackHandler.Mine)
			secured.POST("/feedbacks", feedbackHandler.Submit)
		}
	}

	r.POST("/feedback", authRequired, middleware.RequireRole(auth.RoleCustomer), feedbackHandler.Submit)

	// ======================================================
	// HOME CHEF
	// ======================================================
	chef := r.Group("/homechef")
	{
		chef.POST("/signup", authHandler.ChefSignup)
		chef.POST("/signin", authHandler.ChefSignin)

		chef.GET("/all", catalogHandler.AllChefs)
		chef.GET("/search", catalogHandler.Search)
		chef.GET("/:chef_id/profile", catalogHandler.ChefProfile)
		chef.GET("/:chef_id/menu", catalogHandler.ChefMenu)

		secured := chef.Group("/", authRequired, middleware.RequireRole(auth.RoleChef))
		{
			secured.GET("/menu", menuHandler.List)
			secured.POST("/menu", menuHandler.Create)
			secured.PUT("/menu/:id", menuHandler.Update)

			secured.GET("/service-areas", chefHandler.ServiceAreas)
			secured.POST("/service-areas", chefHandler.AddServiceArea)
			secured.POST("/service-area", chefHandler.AddServiceArea)
			secured.DELETE("/service-areas/:area_id", chefHandler.DeleteServiceArea)

			secured.GET("/orders", orderHandler.ChefOrders)
			secured.GET("/orders/:order_id", orderHandler.ChefOrder)
			secured.PUT("/orders/:order_id/status", orderHandler.ChefUpdateStatus)

			secured.GET("/earnings", chefHandler.Earnings)
			secured.GET("/profile", chefHandler.Profile)
			secured.PUT("/profile", chefHandler.UpdateProfile)
			secured.GET("/feedbacks", chefHandler.Feedbacks)
		}
	}

	// ======================================================
	// DELIVERY PERSONNEL
	// ======================================================
	delivery := r.Group("/delivery-personnel")
	{
		delivery.POST("/signup", authHandler.CourierSignup)
		delivery.POST("/signin", authHandler.CourierSignin)

		self := delivery.Group("/:id",
			authRequired,
			middleware.RequireRole(auth.RoleCourier),
			middleware.RequireSelf("id"),
		)
		{
			self.GET("", courierHandler.Profile)
			self.GET("/orders", orderHandler.CourierOrders)
			self.GET("/available-orders", orderHandler.AvailableOrders)
			self.PUT("/accept-order", orderHandler.Accept)
			self.PUT("/update-order-status", orderHandler.UpdateDeliveryStatus)
			self.GET("/statistics", courierHandler.Statistics)
			self.PUT("/status", courierHandler.SetStatus)
		}
	}

	// ======================================================
	// ADMIN
	// ======================================================
	admin := r.Group("/admin")
	{
		admin.POST("/login", authHandler.AdminLogin)

		secured := admin.Group("/", authRequired, middleware.RequireRole(auth.RoleAdmin))
		{
			secured.GET("/chefs", adminHandler.Chefs)
			secured.PUT("/chefs/:id/approve", adminHandler.ApproveChef)
			secured.PUT("/chefs/:id/block", adminHandler.BlockChef)
			secured.GET("/chefs/:id/feedbacks", adminHandler.ChefFeedbacks)

			secured.GET("/customers", adminHandler.Customers)
			secured.GET("/orders", orderHandler.AllOrders)
			secured.GET("/feedbacks", adminHandler.Feedbacks)
			secured.POST("/service-areas", adminHandler.AddServiceArea)

			secured.GET("/delivery-personnel", adminHandler.Couriers)
			secured.POST("/delivery-personnel", adminHandler.CreateCourier)
			secured.DELETE("/delivery-personnel/:id", adminHandler.DeleteCourier)
			secured.PUT("/delivery-personnel/:id/password", adminHandler.SetCourierPassword)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
