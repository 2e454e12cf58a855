package contract

import (
	"reflect"

	"explicit/errors"
)

// direct 普通成员查找：可达接口上的具体操作按解析结果访问，其余名称取类型自身的方法。
// 抽象操作名永远不会在此解析，只能经由视图访问。
func (c *Catalog) direct(obj any, name string) (reflect.Value, error) {
	class, err := c.classFor(obj)
	if err != nil {
		return reflect.Value{}, err
	}
	recv := reflect.ValueOf(obj)
	// 具体操作名按类型上的解析结果访问，与视图一致（显式绑定优先于同名方法）
	for _, iface := range class.reachable {
		for _, op := range iface.declaredConcrete {
			if op.id.Name == name {
				return class.concrete[op.id].bind(recv), nil
			}
		}
	}
	if m := recv.MethodByName(name); m.IsValid() {
		return m, nil
	}
	return reflect.Value{}, errors.Violation(errors.ErrCodeUnknownOperation,
		"class "+class.Name()+" has no member "+name, name).
		WithContext(errors.DetailClass, class.Name())
}

// Invoke 直接在实例上调用成员（无需视图）
func (c *Catalog) Invoke(obj any, name string, args ...any) ([]any, error) {
	fn, err := c.direct(obj, name)
	if err != nil {
		return nil, err
	}
	return call(fn, name, args)
}

// Invoke 在默认目录中直接调用实例成员
func Invoke(obj any, name string, args ...any) ([]any, error) {
	return defaultCatalog.Invoke(obj, name, args...)
}

// DirectFunc 以类型化函数值返回实例成员
func DirectFunc[F any](obj any, name string) (F, error) {
	return DirectFuncIn[F](defaultCatalog, obj, name)
}

// DirectFuncIn 在指定目录中以类型化函数值返回实例成员
func DirectFuncIn[F any](catalog *Catalog, obj any, name string) (F, error) {
	fn, err := catalog.direct(obj, name)
	if err != nil {
		var zero F
		return zero, err
	}
	return typed[F](fn, name)
}
