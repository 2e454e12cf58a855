// Package validation 提供契约声明中名称类字段的校验
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"explicit/errors"
)

var identifierRegex = regexp.MustCompile(`^[\p{L}_][\p{L}\p{Nd}_]*$`)

// ValidateRequired 验证必填字段
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewError(errors.ErrCodeValidation,
			fmt.Sprintf("%s must not be empty", fieldName))
	}
	return nil
}

// ValidateIdentifier 验证 Go 标识符
func ValidateIdentifier(value, fieldName string) error {
	if err := ValidateRequired(value, fieldName); err != nil {
		return err
	}
	if !identifierRegex.MatchString(value) {
		return errors.NewError(errors.ErrCodeValidation,
			fmt.Sprintf("%s %q is not a valid identifier", fieldName, value))
	}
	return nil
}

// ValidateExportedIdentifier 验证导出标识符（reflect 只能看到导出方法）
func ValidateExportedIdentifier(value, fieldName string) error {
	if err := ValidateIdentifier(value, fieldName); err != nil {
		return err
	}
	r, _ := utf8.DecodeRuneInString(value)
	if !unicode.IsUpper(r) {
		return errors.NewError(errors.ErrCodeValidation,
			fmt.Sprintf("%s %q must be exported", fieldName, value))
	}
	return nil
}
