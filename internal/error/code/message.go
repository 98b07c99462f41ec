package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:         "success",
	ErrUnknown:         "unknown error",
	ErrBind:            "invalid request parameters",
	ErrValidation:      "request validation failed",
	ErrTokenInvalid:    "invalid authentication token",
	ErrTooManyRequests: "too many requests",

	// 楼宇相关错误码
	ErrBuildingNotFound:     "building not found",
	ErrBuildingAlreadyExist: "building already exists",

	// 楼层相关错误码
	ErrFloorNotFound:     "floor not found",
	ErrFloorAlreadyExist: "floor level already exists in this building",

	// 地图相关错误码
	ErrMapNotFound: "map not found",

	// 传感器相关错误码
	ErrSensorNotFound:     "sensor not found",
	ErrSensorAlreadyExist: "sensor already exists",
	ErrSensorPlacement:    "sensor coordinates must be between 0 and 100",

	// 植物与养护相关错误码
	ErrPlantNotFound:       "plant not found",
	ErrMeasurementNotFound: "measurement not found",
	ErrScheduleNotFound:    "watering schedule not found",

	// 用户相关错误码
	ErrUserNotFound:          "user not found",
	ErrUserAlreadyExist:      "user already exists",
	ErrUserPasswordIncorrect: "incorrect username or password",

	// 数据库相关错误码
	ErrDatabase:      "database error",
	ErrRecordNotFound: "record not found",
	ErrCascadeFailed:  "cascade delete failed, transaction rolled back",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,

	// 楼宇相关错误码
	ErrBuildingNotFound:     StatusNotFound,
	ErrBuildingAlreadyExist: StatusBadRequest,

	// 楼层相关错误码
	ErrFloorNotFound:     StatusNotFound,
	ErrFloorAlreadyExist: StatusBadRequest,

	// 地图相关错误码
	ErrMapNotFound: StatusNotFound,

	// 传感器相关错误码
	ErrSensorNotFound:     StatusNotFound,
	ErrSensorAlreadyExist: StatusBadRequest,
	ErrSensorPlacement:    StatusBadRequest,

	// 植物与养护相关错误码
	ErrPlantNotFound:       StatusNotFound,
	ErrMeasurementNotFound: StatusNotFound,
	ErrScheduleNotFound:    StatusNotFound,

	// 用户相关错误码
	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusBadRequest,
	ErrUserPasswordIncorrect: StatusUnauthorized,

	// 数据库相关错误码
	ErrDatabase:      StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
	ErrCascadeFailed:  StatusInternalServerError,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "unknown error"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
