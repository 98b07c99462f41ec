package container

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"smart-campus-service/internal/domain/services"
	"smart-campus-service/internal/infrastructure/config"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService

	// 核心服务
	cascadeService  services.InterfaceCascadeService
	locationService services.InterfaceLocationService

	// 业务服务
	buildingService         services.InterfaceBuildingService
	floorService            services.InterfaceFloorService
	mapService              services.InterfaceMapService
	sensorService           services.InterfaceSensorService
	plantService            services.InterfacePlantService
	measurementService      services.InterfaceMeasurementService
	wateringScheduleService services.InterfaceWateringScheduleService
	userService             services.InterfaceUserService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("database connection is nil")
	}

	if cfg == nil {
		panic("config is nil")
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis connection test failed: %v, caching disabled", err)
			redisClient = nil
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config)
	if c.redis != nil {
		c.redisService = services.NewRedisService(c.config)
	}

	// 初始化核心服务：级联删除引擎和位置解析器
	c.cascadeService = services.NewCascadeService(c.db, c.config)
	c.locationService = services.NewLocationService(c.db, c.config)

	// 初始化业务服务
	c.buildingService = services.NewBuildingService(c.db, c.config, c.cascadeService)
	c.floorService = services.NewFloorService(c.db, c.config, c.cascadeService)
	c.mapService = services.NewMapService(c.db, c.config, c.cascadeService)
	c.sensorService = services.NewSensorService(c.db, c.config, c.cascadeService)
	c.plantService = services.NewPlantService(c.db, c.config)
	c.measurementService = services.NewMeasurementService(c.db, c.config, c.redisService)
	c.wateringScheduleService = services.NewWateringScheduleService(c.db, c.config)
	c.userService = services.NewUserService(c.db, c.config)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "cascade":
		return c.cascadeService
	case "location":
		return c.locationService
	case "building":
		return c.buildingService
	case "floor":
		return c.floorService
	case "map":
		return c.mapService
	case "sensor":
		return c.sensorService
	case "plant":
		return c.plantService
	case "measurement":
		return c.measurementService
	case "watering_schedule":
		return c.wateringScheduleService
	case "user":
		return c.userService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
