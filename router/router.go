package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/veggiecommerce/veggie-app/controllers"
	"github.com/veggiecommerce/veggie-app/middlewares"
	"github.com/veggiecommerce/veggie-app/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	vegetableSvc := services.NewVegetableService(db)
	orderSvc := services.NewOrderService(db)

	userCtrl := controllers.NewUserController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	vegetableCtrl := controllers.NewVegetableController(vegetableSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter for login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Catalog browsing needs no login
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/categories/:cat_id", categoryCtrl.GetCategoryByID)

	r.GET("/vegetables", vegetableCtrl.GetAllVegetables)
	r.GET("/vegetables/by-category", vegetableCtrl.GetVegetablesByCategory)
	r.GET("/vegetables/search", vegetableCtrl.SearchVegetables)
	r.GET("/vegetables/:veg_id", vegetableCtrl.GetVegetableByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/profile", userCtrl.GetProfile)

		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.GET("/orders", orderCtrl.GetMyOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		auth.POST("/orders/:order_id/cancel", orderCtrl.CancelOrder)
		auth.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		auth.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
	}

	return r
}
