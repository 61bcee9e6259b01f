package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"petshop-backend/config"
	"petshop-backend/internal/api/admin"
	"petshop-backend/internal/api/cart"
	"petshop-backend/internal/api/community"
	"petshop-backend/internal/api/payment"
	"petshop-backend/internal/api/pet"
	"petshop-backend/internal/api/product"
	"petshop-backend/internal/api/user"
	"petshop-backend/internal/cache"
	"petshop-backend/internal/common"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/middleware"
	"petshop-backend/internal/repository/mysql"
	"petshop-backend/internal/service"
	"petshop-backend/internal/storage"
	"petshop-backend/internal/util"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

type handlers struct {
	auth      *user.AuthHandler
	profile   *user.ProfileHandler
	product   *product.ProductHandler
	cart      *cart.CartHandler
	payment   *payment.PaymentHandler
	community *community.CommunityHandler
	pet       *pet.PetHandler
	admin     *admin.AdminHandler
}

func main() {
	// 初始化配置
	config.Init()
	cfg := config.AppConfig

	// 初始化日志
	util.InitLogger(cfg.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	ctx := context.Background()

	// 设置数据库连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}
	defer db.Close()

	// 容器启动时数据库可能还没就绪
	err = common.WithRetry(ctx, func(ctx context.Context) error {
		return db.PingContext(ctx)
	}, 5, 2*time.Second)
	if err != nil {
		util.Logger.Fatal("数据库连接测试失败", zap.Error(err))
	}
	util.Logger.Info("数据库连接成功")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if cfg.AutoMigrate {
		if err := mysql.Migrate(ctx, db); err != nil {
			util.Logger.Fatal("数据库迁移失败", zap.Error(err))
		}
		util.Logger.Info("数据库迁移完成")
	}

	// 注册自定义验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := util.RegisterValidators(v); err != nil {
			util.Logger.Fatal("注册验证器失败", zap.Error(err))
		}
	}

	blacklist, productCache := setupCache(ctx, cfg)

	objectStorage, err := storage.New(ctx, cfg)
	if err != nil {
		util.Logger.Fatal("初始化存储失败", zap.Error(err), zap.String("driver", cfg.StorageDriver))
	}

	// 初始化存储库
	txManager := mysql.NewTxManager(db)
	userRepo := mysql.NewUserRepository(db)
	productRepo := mysql.NewProductRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	wishlistRepo := mysql.NewWishlistRepository(db)
	cardRepo := mysql.NewPaymentCardRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	commentRepo := mysql.NewCommentRepository(db)
	feedbackRepo := mysql.NewFeedbackRepository(db)
	petRepo := mysql.NewPetRepository(db)

	// 初始化服务
	analytics := errors.NewErrorAnalytics()
	emailService := service.NewEmailService(cfg)
	photoService := service.NewPhotoService(objectStorage, "photos")
	authService := service.NewAuthService(userRepo, blacklist, photoService, emailService)
	userService := service.NewUserService(userRepo, authService, photoService)
	productService := service.NewProductService(productRepo, productCache)
	cartService := service.NewCartService(txManager, cartRepo, productRepo)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo)
	cardService := service.NewPaymentCardService(txManager, cardRepo)
	orderService := service.NewOrderService(txManager, orderRepo, cartRepo, productRepo, cardRepo, userRepo, emailService)
	commentService := service.NewCommentService(commentRepo, productRepo)
	feedbackService := service.NewFeedbackService(feedbackRepo)
	petService := service.NewPetService(petRepo, photoService)
	statsService := service.NewStatsService(userRepo, productRepo, orderRepo, analytics)

	h := handlers{
		auth:      user.NewAuthHandler(authService),
		profile:   user.NewProfileHandler(userService),
		product:   product.NewProductHandler(productService),
		cart:      cart.NewCartHandler(cartService, wishlistService),
		payment:   payment.NewPaymentHandler(cardService, orderService),
		community: community.NewCommunityHandler(commentService, feedbackService),
		pet:       pet.NewPetHandler(petService),
		admin:     admin.NewAdminHandler(statsService, cfg.AdminSecret),
	}

	r := gin.New()

	// 错误监控必须在恢复中间件之前，才能记录 panic
	r.Use(middleware.ErrorMonitorMiddleware(analytics))
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.RequestLogger())

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
		middleware.AdminSecretHeader,
	}
	corsConfig.ExposeHeaders = []string{
		"Content-Length",
		"Content-Type",
	}
	r.Use(cors.New(corsConfig))

	// 令牌可选，受保护路由再由 RequireAuth 拦截
	r.Use(middleware.AuthMiddleware(authService))

	registerRoutes(r, h, cfg.AdminSecret)

	if cfg.Debug {
		for _, route := range r.Routes() {
			util.Logger.Debug("路由",
				zap.String("method", route.Method),
				zap.String("path", route.Path),
				zap.String("handler", route.Handler))
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		util.Logger.Info("服务器正在启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		util.Logger.Error("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭")
}

// setupCache 未配置 Redis 或连接失败时退回进程内实现
func setupCache(ctx context.Context, cfg config.Config) (cache.TokenBlacklist, cache.ProductCache) {
	if cfg.RedisAddr == "" {
		util.Logger.Info("未配置 Redis，使用进程内令牌黑名单")
		return cache.NewMemoryBlacklist(), cache.NoopProductCache{}
	}
	client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		util.Logger.Warn("Redis 连接失败，使用进程内令牌黑名单", zap.Error(err), zap.String("addr", cfg.RedisAddr))
		return cache.NewMemoryBlacklist(), cache.NoopProductCache{}
	}
	util.Logger.Info("Redis 连接成功", zap.String("addr", cfg.RedisAddr))
	return cache.NewRedisBlacklist(client), cache.NewRedisProductCache(client, cfg.ProductCacheTTL)
}

func registerRoutes(r *gin.Engine, h handlers, adminSecret string) {
	auth := middleware.RequireAuth()
	adminOnly := middleware.AdminMiddleware(adminSecret)

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		authRoutes.POST("/signup", h.auth.Signup)
		authRoutes.POST("/login", h.auth.Login)
		authRoutes.POST("/logout", auth, h.auth.Logout)

		userRoutes := api.Group("/user", auth)
		{
			userRoutes.GET("/profile", h.profile.GetProfile)
			userRoutes.PUT("/change-firstname", h.profile.ChangeFirstName)
			userRoutes.PUT("/change-lastname", h.profile.ChangeLastName)
			userRoutes.PUT("/change-email", h.profile.ChangeEmail)
			userRoutes.PUT("/change-password", h.profile.ChangePassword)
			userRoutes.PUT("/change-photo", h.profile.ChangePhoto)
		}

		products := api.Group("/products")
		{
			products.GET("/filter", h.product.FilterProducts)
			products.GET("/:id", h.product.GetProduct)
			products.POST("", adminOnly, h.product.CreateProduct)
			products.PUT("/:id", adminOnly, h.product.UpdateProduct)
			products.DELETE("/:id", adminOnly, h.product.DeleteProduct)
		}

		cartRoutes := api.Group("/cart", auth)
		{
			cartRoutes.GET("", h.cart.GetCart)
			cartRoutes.POST("/add", h.cart.AddToCart)
			cartRoutes.PUT("/items/:cartId", h.cart.UpdateQuantity)
			cartRoutes.DELETE("/items/:cartId", h.cart.RemoveFromCart)
			cartRoutes.DELETE("/clear", h.cart.ClearCart)
			cartRoutes.GET("/total", h.cart.GetCartTotal)
		}

		wishlist := api.Group("/wishlist", auth)
		{
			wishlist.GET("", h.cart.GetWishlist)
			wishlist.POST("/add/:productId", h.cart.AddToWishlist)
			wishlist.DELETE("/remove/:productId", h.cart.RemoveFromWishlist)
			wishlist.GET("/check/:productId", h.cart.CheckWishlist)
			wishlist.DELETE("/clear", h.cart.ClearWishlist)
		}

		cards := api.Group("/payment-cards", auth)
		{
			cards.GET("", h.payment.GetCards)
			cards.POST("", h.payment.AddCard)
			cards.DELETE("/:cardId", h.payment.DeleteCard)
			cards.PUT("/:cardId/default", h.payment.SetDefaultCard)
		}

		orders := api.Group("/orders", auth)
		{
			orders.POST("", h.payment.CreateOrder)
			orders.GET("", h.payment.ListOrders)
			orders.GET("/:orderId", h.payment.GetOrder)
		}

		comments := api.Group("/comments")
		{
			comments.GET("", h.community.ListComments)
			comments.GET("/:id", h.community.GetComment)
			comments.GET("/product/:productId", h.community.ListProductComments)
			comments.GET("/user/:userId", h.community.ListUserComments)
			comments.POST("", auth, h.community.CreateComment)
			comments.PUT("/:id", auth, h.community.UpdateComment)
			comments.DELETE("/:id", auth, h.community.DeleteComment)
		}

		feedback := api.Group("/feedback")
		{
			feedback.GET("", h.community.ListFeedback)
			feedback.GET("/:id", h.community.GetFeedback)
			feedback.GET("/user/:userId", h.community.ListUserFeedback)
			feedback.POST("", auth, h.community.CreateFeedback)
			feedback.PUT("/:id", auth, h.community.UpdateFeedback)
			feedback.DELETE("/:id", auth, h.community.DeleteFeedback)
		}

		pets := api.Group("/pets", auth)
		{
			pets.GET("", h.pet.ListPets)
			pets.GET("/:id", h.pet.GetPet)
			pets.POST("", h.pet.CreatePet)
			pets.PUT("/:id", h.pet.UpdatePet)
			pets.PUT("/:id/photo", h.pet.ChangePhoto)
			pets.DELETE("/:id", h.pet.DeletePet)
		}

		adminRoutes := api.Group("/admin")
		{
			adminRoutes.POST("/verify", h.admin.Verify)
			adminRoutes.GET("/stats", adminOnly, h.admin.GetSystemStats)
		}
	}
}
