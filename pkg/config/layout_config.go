package config

// 布局配置常量
// 桌面端窗口与文本布局参数
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 480

	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 320

	// TextMarginX 文本左边距
	TextMarginX = 16

	// TextMarginY 文本上边距
	TextMarginY = 16

	// TextLineHeight 调试字体行高
	TextLineHeight = 16
)
