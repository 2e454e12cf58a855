package errors

import (
	stdErrors "errors"
	"sort"
	"strings"
)

// Violation 构造携带违规操作名的契约错误
//
// 消息中附带排序后的操作名，details 中以 DetailOperations 保存原始列表。
func Violation(code ErrorCode, message string, operations ...string) IError {
	ops := append([]string(nil), operations...)
	sort.Strings(ops)

	msg := message
	if len(ops) > 0 {
		msg = message + ": " + strings.Join(ops, ", ")
	}

	err := &AppError{
		code:    code,
		message: msg,
		stack:   captureStack(),
	}
	return err.WithDetails(map[string]any{DetailOperations: ops})
}

// Operations 提取错误中记录的操作名（无则返回 nil）
func Operations(err error) []string {
	var appErr *AppError
	if !stdErrors.As(err, &appErr) {
		return nil
	}
	ops, _ := appErr.Details()[DetailOperations].([]string)
	return ops
}

// DetailString 读取字符串类型的详情
func DetailString(err error, key string) string {
	var appErr *AppError
	if !stdErrors.As(err, &appErr) {
		return ""
	}
	s, _ := appErr.Details()[key].(string)
	return s
}
