package contract

import (
	"fmt"

	"explicit/errors"
)

func operationNames(ops []*Operation) []string {
	names := make([]string, 0, len(ops))
	for _, op := range ops {
		names = append(names, op.String())
	}
	return names
}

func incomplete(c *Class, missing []*Operation, message string) error {
	return errors.Violation(errors.ErrCodeIncompleteImplementation, message, operationNames(missing)...).
		WithContext(errors.DetailClass, c.Name())
}

// checkInstantiable 实例化期完整性检查，与声明时是否严格无关
func (c *Class) checkInstantiable() error {
	if len(c.missing) == 0 {
		return nil
	}
	return incomplete(c, c.missing,
		fmt.Sprintf("cannot instantiate class %s with unimplemented abstract operations", c.Name()))
}

// MissingFor 返回目标接口范围内未绑定的抽象操作
func (c *Class) MissingFor(iface *Interface) []*Operation {
	var missing []*Operation
	for _, op := range iface.Abstract() {
		if _, ok := c.registry.entries[op.id]; !ok {
			missing = append(missing, op)
		}
	}
	return missing
}

// checkView 视图请求的契约边界：接口可达且对该接口完整
func (c *Class) checkView(iface *Interface) error {
	if !c.Implements(iface) {
		return errors.Newf(errors.ErrCodeInterfaceNotImplemented,
			"class %s does not implement interface %s", c.Name(), iface.name).
			WithContext(errors.DetailClass, c.Name()).
			WithContext(errors.DetailInterface, iface.name)
	}
	if missing := c.MissingFor(iface); len(missing) > 0 {
		return errors.Violation(errors.ErrCodeInterfaceNotImplemented,
			fmt.Sprintf("class %s does not provide implementations for interface %s", c.Name(), iface.name),
			operationNames(missing)...).
			WithContext(errors.DetailClass, c.Name()).
			WithContext(errors.DetailInterface, iface.name)
	}
	return nil
}
