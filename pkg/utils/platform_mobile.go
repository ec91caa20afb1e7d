//go:build mobile

package utils

// IsMobile 检测当前是否在移动设备上运行
// 移动端编译时始终返回 true，App 使用触摸区域代替按键
func IsMobile() bool {
	return true
}
