package geocode

import (
	"errors"

	"relief-api/internal/postal"
)

var (
	// ErrMiss 表示某一层未命中；属于正常结果，只在层与解析器之间流转，不对外暴露
	ErrMiss = errors.New("geocode: miss")
	// ErrNotFound 为对外唯一的解析失败类别
	ErrNotFound = errors.New("postal code not found")
)

// 文档注释：解析失败（对外）
// 背景：外部服务的传输/响应错误在解析器边界统一折叠为"未找到"，用户侧只看到可操作的提示。
// 约束：errors.Is(err, ErrNotFound) 恒为真；Err 保留底层原因供日志使用，不写入响应体。
type ResolutionError struct {
	Key postal.Key
	Err error
}

func (e *ResolutionError) Error() string {
	return "postal code not found: " + string(e.Key)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

func (e *ResolutionError) Is(target error) bool { return target == ErrNotFound }
