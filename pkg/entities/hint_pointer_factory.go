package entities

import (
	"fmt"
	"log"

	"github.com/gonewx/hinthand/pkg/components"
	"github.com/gonewx/hinthand/pkg/config"
	"github.com/gonewx/hinthand/pkg/ecs"
	"github.com/gonewx/hinthand/pkg/types"
)

// CreateHintPointer 根据预制体创建提示指针实体
//
// 指针创建后处于隐藏状态，由 HintSystem 在提示开始时显示
//
// 参数：
//   - em: 实体管理器
//   - prefab: 指针预制体配置
//   - parent: 父容器实体，0 表示场景根
//   - scale: 初始缩放
//
// 返回：
//   - ecs.EntityID: 指针实体ID，失败时为 0
//   - error: 参数非法
func CreateHintPointer(em *ecs.EntityManager, prefab config.PointerPrefab, parent ecs.EntityID, scale types.Vec3) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if prefab.Name == "" {
		return 0, fmt.Errorf("pointer prefab name is required")
	}
	if parent != 0 && !em.IsAlive(parent) {
		return 0, fmt.Errorf("pointer parent %d does not exist", parent)
	}

	id := NewSceneNode(em, prefab.Name, parent, types.Vec3{})
	em.AddComponent(id, &components.ScaleComponent{ScaleX: scale.X, ScaleY: scale.Y, ScaleZ: scale.Z})
	em.AddComponent(id, &components.VisibilityComponent{Visible: false})
	em.AddComponent(id, &components.HintPointerComponent{
		PrefabName: prefab.Name,
		Width:      prefab.Width,
		Height:     prefab.Height,
		TipOffsetX: prefab.TipOffsetX,
		TipOffsetY: prefab.TipOffsetY,
	})

	log.Printf("[HintPointerFactory] Created pointer '%s' (Entity ID: %d, parent: %d)", prefab.Name, id, parent)
	return id, nil
}

// ApplyPointerPrefab 把预制体的尺寸和指尖偏移写回已有的指针实体
// 配置热重载时使用，实体 ID 和名称保持不变
func ApplyPointerPrefab(em *ecs.EntityManager, id ecs.EntityID, prefab config.PointerPrefab) bool {
	pointer, ok := ecs.GetComponent[*components.HintPointerComponent](em, id)
	if !ok {
		return false
	}
	pointer.Width = prefab.Width
	pointer.Height = prefab.Height
	pointer.TipOffsetX = prefab.TipOffsetX
	pointer.TipOffsetY = prefab.TipOffsetY
	return true
}
