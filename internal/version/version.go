// 包 version：构建时通过 -ldflags "-X relief-api/internal/version.Commit=<sha>" 注入
package version

var Commit = "dev"
