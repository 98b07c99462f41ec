package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "smart-campus-service/docs"
	"smart-campus-service/internal/app/controllers"
	"smart-campus-service/internal/app/middleware"
	"smart-campus-service/internal/domain/services/container"
	"smart-campus-service/internal/infrastructure/config"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})
	// 请求追踪
	r.Use(middleware.RequestID())

	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, redisClient)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加IP限流中间件 - 每秒允许10个请求，最多突发20个请求
	api.Use(middleware.IPRateLimiter(10, 20))

	// 健康检查路由
	api.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health", controllers.HandleHealthFunc(container, "ping")) // 兼容Docker健康检查

	// 健康状态路由组
	healthGroup := api.Group("/health")
	healthGroup.GET("/status", controllers.HandleHealthFunc(container, "status"))

	// 认证路由
	api.POST("/auth/login", controllers.HandleUserFunc(container, "login"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加认证中间件
	auth := api.Group("/")
	auth.Use(middleware.AuthenticateAdmin())

	// 添加通用限流中间件 - 每秒30个请求，最多突发50个请求
	auth.Use(middleware.IPRateLimiter(30, 50))

	// 写操作成功后清空响应缓存
	auth.Use(middleware.PurgeOnWrite())

	// 楼宇路由
	buildingGroup := auth.Group("/buildings")
	buildingGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleBuildingFunc(container, "getBuildings"))
	buildingGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleBuildingFunc(container, "getBuilding"))
	buildingGroup.POST("", controllers.HandleBuildingFunc(container, "createBuilding"))
	buildingGroup.PUT("/:id", controllers.HandleBuildingFunc(container, "updateBuilding"))
	buildingGroup.DELETE("/:id", controllers.HandleBuildingFunc(container, "deleteBuilding"))
	buildingGroup.GET("/:id/floors", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleBuildingFunc(container, "getBuildingFloors"))

	// 楼层路由
	floorGroup := auth.Group("/floors")
	floorGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleFloorFunc(container, "getFloors"))
	floorGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleFloorFunc(container, "getFloor"))
	floorGroup.POST("", controllers.HandleFloorFunc(container, "createFloor"))
	floorGroup.PUT("/:id", controllers.HandleFloorFunc(container, "updateFloor"))
	floorGroup.DELETE("/:id", controllers.HandleFloorFunc(container, "deleteFloor"))

	// 地图路由，图片较大不走响应缓存
	mapGroup := auth.Group("/maps")
	{
		mapGroup.GET("", controllers.HandleMapFunc(container, "getMaps"))
		mapGroup.GET("/:id", controllers.HandleMapFunc(container, "getMap"))
		mapGroup.POST("", controllers.HandleMapFunc(container, "createMap"))
		mapGroup.DELETE("/:id", controllers.HandleMapFunc(container, "deleteMap"))
	}

	// 传感器路由
	sensorGroup := auth.Group("/sensors")
	sensorGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleSensorFunc(container, "getSensors"))
	sensorGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleSensorFunc(container, "getSensor"))
	sensorGroup.POST("", controllers.HandleSensorFunc(container, "createSensor"))
	sensorGroup.PUT("/:id", controllers.HandleSensorFunc(container, "updateSensor"))
	sensorGroup.DELETE("/:id", controllers.HandleSensorFunc(container, "deleteSensor"))
	sensorGroup.GET("/:id/latest-measurement", controllers.HandleSensorFunc(container, "getLatestMeasurement"))

	// 植物路由
	plantGroup := auth.Group("/plants")
	plantGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandlePlantFunc(container, "getPlants"))
	plantGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandlePlantFunc(container, "getPlant"))
	plantGroup.POST("", controllers.HandlePlantFunc(container, "createPlant"))
	plantGroup.PUT("/:id", controllers.HandlePlantFunc(container, "updatePlant"))

	// 测量记录路由
	measurementGroup := auth.Group("/measurements")
	measurementGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 10 * time.Second}), controllers.HandleMeasurementFunc(container, "getMeasurements"))
	// 导出生成Excel开销大，按路径单独限流
	measurementGroup.GET("/export", middleware.PathRateLimiter(2, 5), controllers.HandleMeasurementFunc(container, "exportMeasurements"))
	measurementGroup.POST("", controllers.HandleMeasurementFunc(container, "createMeasurement"))
	measurementGroup.DELETE("/:id", controllers.HandleMeasurementFunc(container, "deleteMeasurement"))

	// 浇水记录路由
	scheduleGroup := auth.Group("/watering-schedules")
	scheduleGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 10 * time.Second}), controllers.HandleWateringScheduleFunc(container, "getWateringSchedules"))
	scheduleGroup.POST("", controllers.HandleWateringScheduleFunc(container, "createWateringSchedule"))

	// 用户路由
	userGroup := auth.Group("/users")
	userGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleUserFunc(container, "getUsers"))
	userGroup.GET("/:id", middleware.Cache(middleware.CacheConfig{Expiration: 1 * time.Minute}), controllers.HandleUserFunc(container, "getUser"))
	userGroup.POST("", controllers.HandleUserFunc(container, "createUser"))
	userGroup.PUT("/:id", controllers.HandleUserFunc(container, "updateUser"))
	userGroup.DELETE("/:id", controllers.HandleUserFunc(container, "deleteUser"))

	// 数据维护路由
	auth.POST("/cleanup-orphaned-data", controllers.HandleMaintenanceFunc(container, "cleanupOrphanedData"))
}
