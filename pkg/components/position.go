package components

import "github.com/gonewx/hinthand/pkg/types"

// PositionComponent 存储实体的本地坐标
// 有 ParentComponent 时为相对父实体的坐标，否则即世界坐标
// 世界坐标通过 entities.GetWorldPosition 沿父链累加得到
type PositionComponent struct {
	types.Vec3
}
