package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
)

// 楼宇相关错误码 (101xxx).
const (
	// ErrBuildingNotFound - 404: 楼宇不存在.
	ErrBuildingNotFound int = iota + 101000
	// ErrBuildingAlreadyExist - 400: 楼宇已存在（slug冲突）.
	ErrBuildingAlreadyExist
)

// 楼层相关错误码 (102xxx).
const (
	// ErrFloorNotFound - 404: 楼层不存在.
	ErrFloorNotFound int = iota + 102000
	// ErrFloorAlreadyExist - 400: 同一楼宇内楼层级别已存在.
	ErrFloorAlreadyExist
)

// 地图相关错误码 (103xxx).
const (
	// ErrMapNotFound - 404: 地图不存在.
	ErrMapNotFound int = iota + 103000
)

// 传感器相关错误码 (104xxx).
const (
	// ErrSensorNotFound - 404: 传感器不存在.
	ErrSensorNotFound int = iota + 104000
	// ErrSensorAlreadyExist - 400: 传感器名称已存在.
	ErrSensorAlreadyExist
	// ErrSensorPlacement - 400: 传感器坐标无效.
	ErrSensorPlacement
)

// 植物与养护相关错误码 (105xxx).
const (
	// ErrPlantNotFound - 404: 植物不存在.
	ErrPlantNotFound int = iota + 105000
	// ErrMeasurementNotFound - 404: 测量记录不存在.
	ErrMeasurementNotFound
	// ErrScheduleNotFound - 404: 浇水记录不存在.
	ErrScheduleNotFound
)

// 用户相关错误码 (106xxx).
const (
	// ErrUserNotFound - 404: 用户不存在.
	ErrUserNotFound int = iota + 106000
	// ErrUserAlreadyExist - 400: 用户已存在.
	ErrUserAlreadyExist
	// ErrUserPasswordIncorrect - 401: 用户密码错误.
	ErrUserPasswordIncorrect
)

// 数据库相关错误码 (107xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 107000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
	// ErrCascadeFailed - 500: 级联删除失败，事务已回滚.
	ErrCascadeFailed
)
