// 包 version：构建信息，发布时通过 -ldflags "-X partner-map/internal/version.Commit=..." 注入
package version

var Commit = "dev"
