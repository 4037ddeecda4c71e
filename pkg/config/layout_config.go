package config

// 布局配置常量
// 本文件定义了提示演示场景的布局参数，所有坐标都是屏幕坐标（场景根即屏幕）

// 窗口配置
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 800

	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 600

	// GameTPS 游戏逻辑帧率，Update 的 dt = 1 / GameTPS
	GameTPS = 60
)

// DemoTarget 演示场景中的一个提示目标
type DemoTarget struct {
	Name   string  // 节点名称，提示脚本通过名称引用
	X, Y   float64 // 世界坐标
	Order  int     // 默认目标顺序
	Radius float64 // 高亮圈半径
}

// DemoTargets 演示场景的提示目标
// 模拟一局塔防游戏开局：先选种子卡，再点草坪种下，然后收集阳光，最后是铲子
var DemoTargets = []DemoTarget{
	{Name: "SeedPacket", X: 120, Y: 70, Order: 1, Radius: 28},
	{Name: "Lawn", X: 360, Y: 320, Order: 2, Radius: 40},
	{Name: "Sun", X: 560, Y: 180, Order: 3, Radius: 24},
	{Name: "Shovel", X: 700, Y: 70, Order: 4, Radius: 22},
}

// HintLayerName 指针父容器节点的名称
const HintLayerName = "HintLayer"

// 状态栏
const (
	// StatusBarHeight 底部状态栏高度
	StatusBarHeight = 64.0

	// StatusTextMarginX 状态栏文字左边距
	StatusTextMarginX = 12.0

	// StatusLineHeight 状态栏行高
	StatusLineHeight = 16.0
)
