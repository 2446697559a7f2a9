package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gonewx/piispis/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// 竞技场刷新触发方式
const (
	ArenaRefreshTick   = "tick"   // 每帧作为 World 系统刷新
	ArenaRefreshResize = "resize" // 只在窗口尺寸变化时刷新
)

// DefaultConfigPath 内嵌默认配置的路径
const DefaultConfigPath = "data/piispis.yaml"

// PiispisConfig 粒子引擎配置
//
// 配置文件位置: data/piispis.yaml（内嵌），可通过 --config 指定外部 YAML 或 TOML 文件覆盖。
// 文件中缺省的字段保留 DefaultPiispisConfig 的值。
type PiispisConfig struct {
	Piispis  ParticleConfig `yaml:"piispis" toml:"piispis"`
	Tick     TickConfig     `yaml:"tick" toml:"tick"`
	Spawn    SpawnConfig    `yaml:"spawn" toml:"spawn"`
	Arena    ArenaConfig    `yaml:"arena" toml:"arena"`
	Render   RenderConfig   `yaml:"render" toml:"render"`
	Terminal TerminalConfig `yaml:"terminal" toml:"terminal"`
}

// ParticleConfig 单个粒子的尺寸与运动参数
type ParticleConfig struct {
	Width  int `yaml:"width" toml:"width"`   // 元素宽度（像素）
	Height int `yaml:"height" toml:"height"` // 元素高度（像素），越界判定使用 Height/2

	BaseVelocityX int `yaml:"baseVelocityX" toml:"baseVelocityX"` // 水平基础速度，方向随机取 ±
	BaseVelocityY int `yaml:"baseVelocityY" toml:"baseVelocityY"` // 垂直基础速度（向上为正）
	AccelerationY int `yaml:"accelerationY" toml:"accelerationY"` // 每 tick 加到 vy 上的加速度（重力为负）

	// 随机抖动范围，取值为 [0, JitterX) 和 [0, JitterY) 的整数
	JitterX int `yaml:"jitterX" toml:"jitterX"`
	JitterY int `yaml:"jitterY" toml:"jitterY"`
}

// TickConfig 调度参数
type TickConfig struct {
	IntervalMs int `yaml:"intervalMs" toml:"intervalMs"` // 粒子更新间隔（毫秒）
	TPS        int `yaml:"tps" toml:"tps"`               // 每秒帧数（ebiten TPS）
}

// SpawnConfig 点击生成参数
type SpawnConfig struct {
	BurstCount int `yaml:"burstCount" toml:"burstCount"` // 每次点击生成的粒子数量

	// 每秒最多响应的点击次数，0 表示不限制
	MaxBurstsPerSecond float64 `yaml:"maxBurstsPerSecond" toml:"maxBurstsPerSecond"`
}

// ArenaConfig 竞技场参数
type ArenaConfig struct {
	Width   int    `yaml:"width" toml:"width"`     // 初始窗口宽度
	Height  int    `yaml:"height" toml:"height"`   // 初始窗口高度，也是首次刷新前的画布高度
	Refresh string `yaml:"refresh" toml:"refresh"` // "tick" 或 "resize"
}

// RenderConfig 渲染参数
type RenderConfig struct {
	SpritePath string `yaml:"spritePath" toml:"spritePath"` // 粒子贴图路径，为空时生成圆角矩形贴图
	Color      []int  `yaml:"color" toml:"color"`           // 纯色矩形的 RGBA
	ShowStats  bool   `yaml:"showStats" toml:"showStats"`   // 是否显示粒子数量等调试信息

	// 未指定贴图（或加载失败）时是否生成圆角矩形贴图；false 时每帧直接填充纯色矩形
	GeneratedSprite bool `yaml:"generatedSprite" toml:"generatedSprite"`

	// 未指定贴图时生成的圆角矩形贴图的圆角半径，0 为直角
	CornerRadius float64 `yaml:"cornerRadius" toml:"cornerRadius"`
}

// TerminalConfig 终端查看器（cmd/piispis-term）参数
// 每个字符单元对应 CellWidth x CellHeight 像素
type TerminalConfig struct {
	CellWidth  int    `yaml:"cellWidth" toml:"cellWidth"`
	CellHeight int    `yaml:"cellHeight" toml:"cellHeight"`
	Glyph      string `yaml:"glyph" toml:"glyph"`
}

// DefaultPiispisConfig 返回默认配置
func DefaultPiispisConfig() *PiispisConfig {
	return &PiispisConfig{
		Piispis: ParticleConfig{
			Width:         58,
			Height:        37,
			BaseVelocityX: 5,
			BaseVelocityY: 15,
			AccelerationY: -1,
			JitterX:       5,
			JitterY:       7,
		},
		Tick: TickConfig{
			IntervalMs: 16,
			TPS:        60,
		},
		Spawn: SpawnConfig{
			BurstCount: 5,
		},
		Arena: ArenaConfig{
			Width:   800,
			Height:  600,
			Refresh: ArenaRefreshTick,
		},
		Render: RenderConfig{
			Color:           []int{245, 166, 35, 255},
			ShowStats:       true,
			GeneratedSprite: true,
			CornerRadius:    8,
		},
		Terminal: TerminalConfig{
			CellWidth:  10,
			CellHeight: 20,
			Glyph:      "●",
		},
	}
}

// ParsePiispisConfig 解析 YAML 配置，缺省字段使用默认值
func ParsePiispisConfig(data []byte) (*PiispisConfig, error) {
	config := DefaultPiispisConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse piispis config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid piispis config: %w", err)
	}

	return config, nil
}

// ParsePiispisConfigTOML 解析 TOML 配置，缺省字段使用默认值
func ParsePiispisConfigTOML(data []byte) (*PiispisConfig, error) {
	config := DefaultPiispisConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse piispis config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid piispis config: %w", err)
	}

	return config, nil
}

// LoadPiispisConfig 从文件系统加载配置
// .toml 后缀按 TOML 解析，其余按 YAML 解析
func LoadPiispisConfig(path string) (*PiispisConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read piispis config %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParsePiispisConfigTOML(data)
	}
	return ParsePiispisConfig(data)
}

// LoadEmbeddedPiispisConfig 从内嵌资源加载配置
func LoadEmbeddedPiispisConfig(path string) (*PiispisConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded piispis config %s: %w", path, err)
	}
	return ParsePiispisConfig(data)
}

// Validate 验证配置有效性
func (c *PiispisConfig) Validate() error {
	p := c.Piispis
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("piispis size must be positive, got %dx%d", p.Width, p.Height)
	}
	// rand.Intn 不接受 0
	if p.JitterX <= 0 || p.JitterY <= 0 {
		return fmt.Errorf("jitter ranges must be positive, got x=%d y=%d", p.JitterX, p.JitterY)
	}

	if c.Tick.IntervalMs <= 0 {
		return fmt.Errorf("tick interval must be positive, got %dms", c.Tick.IntervalMs)
	}
	if c.Tick.TPS <= 0 {
		return fmt.Errorf("tps must be positive, got %d", c.Tick.TPS)
	}

	if c.Spawn.BurstCount < 0 {
		return fmt.Errorf("burst count cannot be negative, got %d", c.Spawn.BurstCount)
	}
	if c.Spawn.MaxBurstsPerSecond < 0 {
		return fmt.Errorf("max bursts per second cannot be negative, got %v", c.Spawn.MaxBurstsPerSecond)
	}

	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return fmt.Errorf("arena size must be positive, got %dx%d", c.Arena.Width, c.Arena.Height)
	}
	if c.Arena.Refresh != ArenaRefreshTick && c.Arena.Refresh != ArenaRefreshResize {
		return fmt.Errorf("arena refresh must be %q or %q, got %q",
			ArenaRefreshTick, ArenaRefreshResize, c.Arena.Refresh)
	}

	if len(c.Render.Color) != 4 {
		return fmt.Errorf("render color must have 4 components (RGBA), got %d", len(c.Render.Color))
	}
	for i, v := range c.Render.Color {
		if v < 0 || v > 255 {
			return fmt.Errorf("render color component %d out of range: %d", i, v)
		}
	}
	if c.Render.CornerRadius < 0 {
		return fmt.Errorf("corner radius cannot be negative, got %v", c.Render.CornerRadius)
	}

	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		return fmt.Errorf("terminal cell size must be positive, got %dx%d",
			c.Terminal.CellWidth, c.Terminal.CellHeight)
	}
	if c.Terminal.Glyph == "" {
		return fmt.Errorf("terminal glyph cannot be empty")
	}

	return nil
}

// Interval 粒子更新间隔
func (c *PiispisConfig) Interval() time.Duration {
	return time.Duration(c.Tick.IntervalMs) * time.Millisecond
}

// FrameDuration 每帧时长（1/TPS 秒）
func (c *PiispisConfig) FrameDuration() time.Duration {
	return time.Second / time.Duration(c.Tick.TPS)
}

// FillColor 纯色矩形颜色
func (c *PiispisConfig) FillColor() color.RGBA {
	return color.RGBA{
		R: uint8(c.Render.Color[0]),
		G: uint8(c.Render.Color[1]),
		B: uint8(c.Render.Color[2]),
		A: uint8(c.Render.Color[3]),
	}
}
