// Package script 提供可热重载的提示目标脚本
//
// 脚本使用 tengo 编写，根据提示类型返回默认目标列表。
// 脚本可读取的全局变量：
//   - hint_type: 提示类型名称（"StartGame" / "Inactivity" / "Custom"）
//   - scene_targets: 场景中所有提示目标节点的名称（按顺序）
//
// 脚本需要给全局变量 targets 赋值，元素可以是：
//   - 字符串：场景节点名称
//   - {x: 1, y: 2, z: 0}：固定的世界坐标
package script

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/gonewx/hinthand/pkg/components"
	"github.com/gonewx/hinthand/pkg/ecs"
	"github.com/gonewx/hinthand/pkg/entities"
	"github.com/gonewx/hinthand/pkg/systems"
	"github.com/gonewx/hinthand/pkg/types"
)

// 脚本中使用的全局变量名
const (
	varHintType     = "hint_type"
	varSceneTargets = "scene_targets"
	varTargets      = "targets"
)

// 脚本可导入的标准库模块
var scriptModules = []string{"fmt", "math", "text", "rand"}

// TargetScript 编译后的目标脚本
type TargetScript struct {
	path          string
	entityManager *ecs.EntityManager
	compiled      *tengo.Compiled
}

// LoadTargetScript 从文件加载并编译目标脚本
func LoadTargetScript(path string, em *ecs.EntityManager) (*TargetScript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read target script %s: %w", path, err)
	}

	ts, err := NewTargetScript(data, em)
	if err != nil {
		return nil, fmt.Errorf("failed to compile target script %s: %w", path, err)
	}
	ts.path = path
	return ts, nil
}

// NewTargetScript 编译一段目标脚本源码
func NewTargetScript(src []byte, em *ecs.EntityManager) (*TargetScript, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}

	compiled, err := compile(src)
	if err != nil {
		return nil, err
	}

	return &TargetScript{
		entityManager: em,
		compiled:      compiled,
	}, nil
}

func compile(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	if err := script.Add(varHintType, ""); err != nil {
		return nil, fmt.Errorf("failed to declare %s: %w", varHintType, err)
	}
	if err := script.Add(varSceneTargets, []interface{}{}); err != nil {
		return nil, fmt.Errorf("failed to declare %s: %w", varSceneTargets, err)
	}
	script.SetImports(stdlib.GetModuleMap(scriptModules...))

	return script.Compile()
}

// Path 返回脚本文件路径，源码创建的脚本为空
func (ts *TargetScript) Path() string {
	return ts.path
}

// Reload 重新读取并编译脚本文件
// 编译失败时保留旧脚本
func (ts *TargetScript) Reload() error {
	if ts.path == "" {
		return fmt.Errorf("target script has no file to reload")
	}

	data, err := os.ReadFile(ts.path)
	if err != nil {
		return fmt.Errorf("failed to read target script %s: %w", ts.path, err)
	}
	compiled, err := compile(data)
	if err != nil {
		return fmt.Errorf("failed to compile target script %s: %w", ts.path, err)
	}

	ts.compiled = compiled
	log.Printf("[TargetScript] Reloaded %s", ts.path)
	return nil
}

// Resolve 运行脚本，返回指定提示类型的目标列表
//
// 无法识别的元素（未知节点名、格式错误的坐标）会被跳过并记录日志，
// 不会使整个列表失败
func (ts *TargetScript) Resolve(hintType types.HintType) ([]systems.HintTarget, error) {
	if err := ts.compiled.Set(varHintType, hintType.String()); err != nil {
		return nil, err
	}
	if err := ts.compiled.Set(varSceneTargets, sceneTargetNames(ts.entityManager)); err != nil {
		return nil, err
	}
	if err := ts.compiled.Run(); err != nil {
		return nil, fmt.Errorf("target script failed: %w", err)
	}

	if !ts.compiled.IsDefined(varTargets) {
		return nil, fmt.Errorf("target script did not define '%s'", varTargets)
	}

	var items []tengo.Object
	switch v := ts.compiled.Get(varTargets).Object().(type) {
	case *tengo.Array:
		items = v.Value
	case *tengo.ImmutableArray:
		items = v.Value
	case *tengo.Undefined:
		return nil, nil
	default:
		return nil, fmt.Errorf("'%s' must be an array, got %s", varTargets, v.TypeName())
	}

	targets := make([]systems.HintTarget, 0, len(items))
	for i, item := range items {
		target, err := ts.toTarget(item)
		if err != nil {
			log.Printf("[TargetScript] Warning: skipping targets[%d]: %v", i, err)
			continue
		}
		targets = append(targets, target)
	}
	return targets, nil
}

// Resolver 把脚本包装成 HintSystem 的默认目标解析器
// 脚本出错时记录日志并返回空列表
func (ts *TargetScript) Resolver() systems.DefaultTargetsResolver {
	return func(hintType types.HintType) []systems.HintTarget {
		targets, err := ts.Resolve(hintType)
		if err != nil {
			log.Printf("[TargetScript] Error: %v", err)
			return nil
		}
		return targets
	}
}

func (ts *TargetScript) toTarget(obj tengo.Object) (systems.HintTarget, error) {
	switch v := obj.(type) {
	case *tengo.String:
		name := strings.TrimSpace(v.Value)
		id, ok := entities.FindByName(ts.entityManager, name)
		if !ok {
			return nil, fmt.Errorf("scene node '%s' not found", name)
		}
		return systems.NewActorTarget(ts.entityManager, id), nil
	case *tengo.Map:
		return pointFromMap(v.Value)
	case *tengo.ImmutableMap:
		return pointFromMap(v.Value)
	default:
		return nil, fmt.Errorf("unsupported target type %s", obj.TypeName())
	}
}

func pointFromMap(m map[string]tengo.Object) (systems.HintTarget, error) {
	var pos types.Vec3
	for key, dst := range map[string]*float64{"x": &pos.X, "y": &pos.Y, "z": &pos.Z} {
		obj, ok := m[key]
		if !ok {
			if key == "z" {
				continue
			}
			return nil, fmt.Errorf("point target is missing '%s'", key)
		}
		value, ok := objectAsFloat(obj)
		if !ok {
			return nil, fmt.Errorf("point target '%s' must be a number, got %s", key, obj.TypeName())
		}
		*dst = value
	}
	return systems.PointTarget{Position: pos}, nil
}

func objectAsFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Int:
		return float64(v.Value), true
	case *tengo.Float:
		return v.Value, true
	default:
		return 0, false
	}
}

// sceneTargetNames 场景提示目标节点的名称，顺序与 SceneHintTargets 一致
func sceneTargetNames(em *ecs.EntityManager) []interface{} {
	var names []interface{}
	for _, target := range systems.SceneHintTargets(em) {
		actor, ok := target.(systems.ActorTarget)
		if !ok {
			continue
		}
		if n, ok := ecs.GetComponent[*components.NameComponent](em, actor.Entity); ok {
			names = append(names, n.Name)
		}
	}
	if names == nil {
		names = []interface{}{}
	}
	return names
}
