package contract

import (
	"reflect"
	"sort"

	"explicit/errors"
)

// View 接口视图：只暴露一个接口的操作，并以接口自身的操作名访问
//
// 访问器在构造时按实现注册表解析（类似虚表）；视图本身不持有其他状态，
// 也不被缓存，每次 As 都重新解析。
type View struct {
	iface     *Interface
	class     *Class
	instance  any
	accessors map[string]reflect.Value
}

// As 在目录中为实例构造接口视图
func (c *Catalog) As(obj any, iface *Interface) (*View, error) {
	if iface == nil {
		return nil, errors.NewError(errors.ErrCodeInvalidInput, "interface must not be nil")
	}
	class, err := c.classFor(obj)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrCodeInterfaceNotImplemented,
			"cannot view instance as "+iface.name).
			WithContext(errors.DetailInterface, iface.name)
	}
	if err := class.checkView(iface); err != nil {
		return nil, err
	}
	return newView(class, iface, obj), nil
}

// ViewOf 预先校验 (实现类型, 接口) 组合，返回可复用的视图构造函数
//
// 校验在任何实例存在之前完成；构造函数只接受类型恰为 t 的实例。
func (c *Catalog) ViewOf(t reflect.Type, iface *Interface) (func(obj any) (*View, error), error) {
	if iface == nil {
		return nil, errors.NewError(errors.ErrCodeInvalidInput, "interface must not be nil")
	}
	if t == nil {
		return nil, errors.NewError(errors.ErrCodeInvalidInput, "class type must not be nil")
	}
	class, ok := c.ClassOf(t)
	if !ok {
		return nil, errors.WrapError(
			errors.Newf(errors.ErrCodeNotFound, "type %s is not a declared class", t),
			errors.ErrCodeInterfaceNotImplemented, "cannot view "+t.String()+" as "+iface.name).
			WithContext(errors.DetailClass, t.String()).
			WithContext(errors.DetailInterface, iface.name)
	}
	if err := class.checkView(iface); err != nil {
		return nil, err
	}

	return func(obj any) (*View, error) {
		if obj == nil || reflect.TypeOf(obj) != t {
			return nil, errors.Newf(errors.ErrCodeInvalidInput,
				"view of %s expects an instance of %s, got %T", iface.name, t, obj)
		}
		return newView(class, iface, obj), nil
	}, nil
}

// ViewOf 在默认目录中为实现类型 T 预先校验接口并返回类型化的视图构造函数
func ViewOf[T any](iface *Interface) (func(obj T) (*View, error), error) {
	return ViewOfIn[T](defaultCatalog, iface)
}

// ViewOfIn 在指定目录中为实现类型 T 返回视图构造函数
func ViewOfIn[T any](catalog *Catalog, iface *Interface) (func(obj T) (*View, error), error) {
	build, err := catalog.ViewOf(reflect.TypeFor[T](), iface)
	if err != nil {
		return nil, err
	}
	return func(obj T) (*View, error) { return build(obj) }, nil
}

// newView 按实现注册表解析接口的每个操作名
func newView(class *Class, iface *Interface, obj any) *View {
	recv := reflect.ValueOf(obj)
	v := &View{
		iface:     iface,
		class:     class,
		instance:  obj,
		accessors: make(map[string]reflect.Value, len(iface.byName)),
	}
	for name := range iface.byName {
		op, _ := iface.Lookup(name)
		if op.kind == KindAbstract {
			v.accessors[name] = recv.MethodByName(class.registry.entries[op.id])
			continue
		}
		v.accessors[name] = class.concrete[op.id].bind(recv)
	}
	return v
}

// As 在默认目录中为实例构造接口视图
func As(obj any, iface *Interface) (*View, error) {
	return defaultCatalog.As(obj, iface)
}

// MustAs 构造接口视图（失败 panic）
func MustAs(obj any, iface *Interface) *View {
	v, err := As(obj, iface)
	if err != nil {
		panic(err)
	}
	return v
}

// Interface 返回视图对应的接口
func (v *View) Interface() *Interface { return v.iface }

// Instance 返回被查看的实例
func (v *View) Instance() any { return v.instance }

// Operations 返回视图可访问的操作名（已排序）
func (v *View) Operations() []string {
	names := make([]string, 0, len(v.accessors))
	for name := range v.accessors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has 判断视图是否暴露该操作名
func (v *View) Has(name string) bool {
	_, ok := v.accessors[name]
	return ok
}

func (v *View) accessor(name string) (reflect.Value, error) {
	fn, ok := v.accessors[name]
	if !ok {
		return reflect.Value{}, errors.Violation(errors.ErrCodeUnknownOperation,
			"interface "+v.iface.name+" has no operation "+name, v.iface.name+"."+name).
			WithContext(errors.DetailInterface, v.iface.name)
	}
	return fn, nil
}

// Call 调用操作，参数与返回值原样转发
func (v *View) Call(name string, args ...any) ([]any, error) {
	fn, err := v.accessor(name)
	if err != nil {
		return nil, err
	}
	return call(fn, v.iface.name+"."+name, args)
}

// Func 以类型化函数值返回视图中的访问器
func Func[F any](v *View, name string) (F, error) {
	fn, err := v.accessor(name)
	if err != nil {
		var zero F
		return zero, err
	}
	return typed[F](fn, v.iface.name+"."+name)
}
