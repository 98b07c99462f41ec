package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smart-campus-service/internal/domain/models"
)

func newFloorService(t *testing.T) (InterfaceFloorService, *gorm.DB) {
	db := newTestDB(t)
	cascade := NewCascadeService(db, testConfig())
	return NewFloorService(db, testConfig(), cascade), db
}

func TestCreateFloorRequiresBuilding(t *testing.T) {
	svc, _ := newFloorService(t)

	err := svc.CreateFloor(&models.Floor{Name: "F1", BuildingID: 42, Level: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCreateFloorLevelUniquePerBuilding(t *testing.T) {
	svc, db := newFloorService(t)

	a := models.Building{Name: "Lab A", Slug: "lab-a"}
	b := models.Building{Name: "Lab B", Slug: "lab-b"}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)

	require.NoError(t, svc.CreateFloor(&models.Floor{Name: "F1", BuildingID: a.ID, Level: 1}))

	// 同一楼宇同一级别冲突
	err := svc.CreateFloor(&models.Floor{Name: "F1 again", BuildingID: a.ID, Level: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// 不同楼宇可以有相同级别
	require.NoError(t, svc.CreateFloor(&models.Floor{Name: "F1", BuildingID: b.ID, Level: 1}))
}

func TestUpdateFloorLevelConflict(t *testing.T) {
	svc, db := newFloorService(t)

	a := models.Building{Name: "Lab A", Slug: "lab-a"}
	require.NoError(t, db.Create(&a).Error)

	f1 := &models.Floor{Name: "F1", BuildingID: a.ID, Level: 1}
	f2 := &models.Floor{Name: "F2", BuildingID: a.ID, Level: 2}
	require.NoError(t, svc.CreateFloor(f1))
	require.NoError(t, svc.CreateFloor(f2))

	// JSON解码出来的数字是float64，服务层必须兼容
	_, err := svc.UpdateFloor(f2.ID, map[string]interface{}{"level": float64(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// 改成空闲级别则成功
	updated, err := svc.UpdateFloor(f2.ID, map[string]interface{}{"level": float64(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Level)
}

func TestUpdateFloorIgnoresUnknownColumns(t *testing.T) {
	svc, db := newFloorService(t)

	a := models.Building{Name: "Lab A", Slug: "lab-a"}
	require.NoError(t, db.Create(&a).Error)

	f := &models.Floor{Name: "F1", BuildingID: a.ID, Level: 1}
	require.NoError(t, svc.CreateFloor(f))

	// 未知键不产生SQL错误，白名单字段正常生效
	updated, err := svc.UpdateFloor(f.ID, map[string]interface{}{
		"name":  "First Floor",
		"bogus": "value",
	})
	require.NoError(t, err)
	assert.Equal(t, "First Floor", updated.Name)

	// 全部是未知键时为空操作
	updated, err = svc.UpdateFloor(f.ID, map[string]interface{}{"bogus": "value"})
	require.NoError(t, err)
	assert.Equal(t, "First Floor", updated.Name)
	assert.Equal(t, 1, updated.Level)
}

func TestUpdateFloorNameOnlySkipsUniquenessCheck(t *testing.T) {
	svc, db := newFloorService(t)

	a := models.Building{Name: "Lab A", Slug: "lab-a"}
	require.NoError(t, db.Create(&a).Error)

	f := &models.Floor{Name: "F1", BuildingID: a.ID, Level: 1}
	require.NoError(t, svc.CreateFloor(f))

	updated, err := svc.UpdateFloor(f.ID, map[string]interface{}{"name": "First Floor"})
	require.NoError(t, err)
	assert.Equal(t, "First Floor", updated.Name)
	assert.Equal(t, 1, updated.Level)
}
