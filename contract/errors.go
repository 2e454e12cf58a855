package contract

import "explicit/errors"

// 哨兵错误，配合 errors.Is 按错误代码匹配
var (
	// 声明期
	ErrInvalidDeclaration = errors.NewError(errors.ErrCodeInvalidDeclaration, "invalid declaration")
	ErrAmbiguousContract  = errors.NewError(errors.ErrCodeAmbiguousContract, "ambiguous contract")
	ErrSignatureMismatch  = errors.NewError(errors.ErrCodeSignatureMismatch, "signature mismatch")
	ErrMethodNotFound     = errors.NewError(errors.ErrCodeMethodNotFound, "method not found")
	ErrBindingTarget      = errors.NewError(errors.ErrCodeBindingTarget, "method not in base interfaces")
	ErrDuplicateBinding   = errors.NewError(errors.ErrCodeDuplicateBinding, "duplicate binding")
	ErrClassExists        = errors.NewError(errors.ErrCodeConflict, "class already declared")

	// 声明期（严格）或实例化期
	ErrIncompleteImplementation = errors.NewError(errors.ErrCodeIncompleteImplementation, "incomplete implementation")

	// 视图与调用
	ErrInterfaceNotImplemented = errors.NewError(errors.ErrCodeInterfaceNotImplemented, "interface not implemented")
	ErrUnknownOperation        = errors.NewError(errors.ErrCodeUnknownOperation, "unknown operation")
	ErrInvalidArgument         = errors.NewError(errors.ErrCodeInvalidInput, "invalid argument")
	ErrClassNotFound           = errors.NewError(errors.ErrCodeNotFound, "class not found")
)

// Operations 返回契约错误所涉及的操作名（形如 IFoo.foo）
func Operations(err error) []string {
	return errors.Operations(err)
}
