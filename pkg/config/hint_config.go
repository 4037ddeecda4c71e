package config

import (
	"fmt"
	"os"

	"github.com/gonewx/hinthand/pkg/types"
	"github.com/gonewx/hinthand/pkg/utils"
	"gopkg.in/yaml.v3"
)

// 提示指针的固定编排参数
// 这些时间是动画节奏的一部分，不开放配置
const (
	// HintSettleDelay 指针出现在第一个目标后、开始第一次移动前的停顿（秒）
	HintSettleDelay = 0.5

	// HintPressHoldDelay 按压动画结束后的停顿（秒）
	HintPressHoldDelay = 0.3

	// MaxHintTargets 单次提示最多指向的目标数，多余的目标被截断
	MaxHintTargets = 3

	// InactivityTickInterval 空闲计时的步长（秒）
	InactivityTickInterval = 1.0
)

// 可配置参数的默认值
const (
	DefaultInactivityDelay = 15
	DefaultPointerScale    = 1.0
	DefaultPressScale      = 0.8
	DefaultPressDuration   = 0.1
	DefaultMoveSpeed       = 0.5

	DefaultPointerPrefabName = "HintHand"
	DefaultPointerWidth      = 40.0
	DefaultPointerHeight     = 56.0
)

// PointerPrefab 提示指针预制体
// 描述创建指针实体所需的模板数据
type PointerPrefab struct {
	Name       string  `yaml:"name"`       // 预制体名称，如 "HintHand"
	Width      float64 `yaml:"width"`      // 缩放 1.0 时的宽度（像素）
	Height     float64 `yaml:"height"`     // 缩放 1.0 时的高度（像素）
	TipOffsetX float64 `yaml:"tipOffsetX"` // 指尖相对实体原点的 X 偏移
	TipOffsetY float64 `yaml:"tipOffsetY"` // 指尖相对实体原点的 Y 偏移
}

// HintConfig 提示指针配置
// 对应 data/hint_config.yaml，所有字段都可选
type HintConfig struct {
	InactivityDelay int           `yaml:"inactivityDelay"` // 空闲阈值（秒），默认 15
	PointerScale    types.Vec3    `yaml:"pointerScale"`    // 指针缩放，默认 (1,1,1)
	PointerOffset   types.Vec3    `yaml:"pointerOffset"`   // 指针相对目标的世界偏移，默认 (0,0,0)
	PressScale      float64       `yaml:"pressScale"`      // 按压缩放倍率，默认 0.8
	PressDuration   float64       `yaml:"pressDuration"`   // 按压单程时长（秒），默认 0.1
	MoveSpeed       float64       `yaml:"moveSpeed"`       // 移动时长（秒），默认 0.5
	MoveEasing      string        `yaml:"moveEasing"`      // 移动缓动曲线名称，空表示线性
	PointerParent   string        `yaml:"pointerParent"`   // 指针父容器名称（NameComponent），空表示场景根
	Pointer         PointerPrefab `yaml:"pointer"`         // 指针预制体
	TargetScript    string        `yaml:"targetScript"`    // 默认目标脚本路径（可选）
}

// DefaultHintConfig 返回全部使用默认值的配置
func DefaultHintConfig() *HintConfig {
	cfg := &HintConfig{}
	applyHintDefaults(cfg)
	return cfg
}

// LoadHintConfig 从YAML文件加载提示配置
// 参数：
//
//	filepath - 配置文件路径
//
// 返回：
//
//	*HintConfig - 解析并补齐默认值后的配置
//	error - 文件读取、解析或校验失败
func LoadHintConfig(filepath string) (*HintConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read hint config file %s: %w", filepath, err)
	}

	cfg, err := ParseHintConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid hint config in %s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseHintConfig 解析YAML数据为提示配置
func ParseHintConfig(data []byte) (*HintConfig, error) {
	var cfg HintConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse hint config YAML: %w", err)
	}

	// 先校验原始值：负数在补默认值之前就应被拒绝
	if err := validateHintConfig(&cfg); err != nil {
		return nil, err
	}

	applyHintDefaults(&cfg)
	return &cfg, nil
}

// applyHintDefaults 为缺失的可选字段设置默认值
// YAML 中未出现的数值字段为零值，按"未配置"处理
func applyHintDefaults(cfg *HintConfig) {
	if cfg.InactivityDelay == 0 {
		cfg.InactivityDelay = DefaultInactivityDelay
	}

	// 零向量视为未配置（零缩放的指针不可见，没有意义）
	if cfg.PointerScale == (types.Vec3{}) {
		cfg.PointerScale = types.Uniform(DefaultPointerScale)
	}

	if cfg.PressScale == 0 {
		cfg.PressScale = DefaultPressScale
	}
	if cfg.PressDuration == 0 {
		cfg.PressDuration = DefaultPressDuration
	}
	if cfg.MoveSpeed == 0 {
		cfg.MoveSpeed = DefaultMoveSpeed
	}

	if cfg.Pointer.Name == "" {
		cfg.Pointer.Name = DefaultPointerPrefabName
	}
	if cfg.Pointer.Width == 0 {
		cfg.Pointer.Width = DefaultPointerWidth
	}
	if cfg.Pointer.Height == 0 {
		cfg.Pointer.Height = DefaultPointerHeight
	}
	// PointerOffset、PointerParent、MoveEasing、TargetScript、TipOffset 默认为零值，无需处理
}

// validateHintConfig 验证提示配置的合法性
func validateHintConfig(cfg *HintConfig) error {
	if cfg.InactivityDelay < 0 {
		return fmt.Errorf("inactivityDelay cannot be negative, got %d", cfg.InactivityDelay)
	}
	if cfg.PressScale < 0 {
		return fmt.Errorf("pressScale cannot be negative, got %v", cfg.PressScale)
	}
	if cfg.PressDuration < 0 {
		return fmt.Errorf("pressDuration cannot be negative, got %v", cfg.PressDuration)
	}
	if cfg.MoveSpeed < 0 {
		return fmt.Errorf("moveSpeed cannot be negative, got %v", cfg.MoveSpeed)
	}
	if _, err := utils.EasingByName(cfg.MoveEasing); err != nil {
		return fmt.Errorf("moveEasing: %w", err)
	}
	if cfg.Pointer.Width < 0 || cfg.Pointer.Height < 0 {
		return fmt.Errorf("pointer size cannot be negative, got %vx%v", cfg.Pointer.Width, cfg.Pointer.Height)
	}
	return nil
}
