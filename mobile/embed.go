//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// data/piispis.yaml 需要与项目根目录下的同名文件保持一致。
//
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed data/piispis.yaml
var dataFS embed.FS
