//go:build mobile

// embed.go - 移动端配置嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// mobile/data/time_manager.yaml 是根目录 data/time_manager.yaml 的副本，
// 因为 //go:embed 不能引用包目录之外的文件，修改配置时需要同步两份。
package mobile

import "embed"

//go:embed data/time_manager.yaml
var dataFS embed.FS
