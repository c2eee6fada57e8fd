package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"storeapi/internal/config"
	"storeapi/internal/database"
	"storeapi/internal/handlers"
	"storeapi/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureCartIndexes(db); err != nil {
		log.Printf("cart index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureRefreshTokenIndexes(db); err != nil {
		log.Printf("refresh token index warning: %v", err)
	}

	r := gin.Default()

	r.POST("/auth/register", handlers.Register(db))
	r.POST("/auth/generate-token", handlers.GenerateToken(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/auth/regenerate-token", handlers.RegenerateToken(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.GET("/auth/me", handlers.GetMe(db, config.AppEnv.JWTSecret))

	r.GET("/products", handlers.GetProducts(db))
	r.GET("/products/:id", handlers.GetProduct(db))
	r.GET("/categories", handlers.GetCategories(db))

	userAuth := middleware.UserAuth(config.AppEnv.JWTSecret)
	adminAuth := middleware.AdminAuth(config.AppEnv.JWTSecret)

	carts := r.Group("/carts")
	carts.Use(userAuth)
	{
		carts.POST("/:userId", handlers.AddItemToCart(db))
		carts.DELETE("/:userId/items/:itemId", handlers.RemoveItemFromCart(db))
		carts.DELETE("/:userId", handlers.ClearCart(db))
		carts.GET("/:userId", handlers.GetCart(db))
	}

	r.POST("/orders/create/user/:userId/cart/:cartId", userAuth, handlers.CreateOrder(db))
	r.GET("/orders/:userId", userAuth, handlers.GetUserOrders(db))
	r.GET("/orders", adminAuth, handlers.GetOrders(db))
	r.PUT("/orders/update/:orderId", adminAuth, handlers.UpdateOrder(db))
	r.DELETE("/orders/:orderId", adminAuth, handlers.DeleteOrder(db))

	admin := r.Group("/admin/api")
	admin.Use(adminAuth)
	{
		admin.GET("/users", handlers.GetUsers(db))

		admin.POST("/products", handlers.CreateProduct(db))
		admin.PUT("/products/:id", handlers.UpdateProduct(db))
		admin.DELETE("/products/:id", handlers.DeleteProduct(db))

		admin.POST("/categories", handlers.CreateCategory(db))
		admin.PUT("/categories/:id", handlers.UpdateCategory(db))
		admin.DELETE("/categories/:id", handlers.DeleteCategory(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
