package contract

import (
	"context"
	"reflect"
	"sync"

	"explicit/errors"
	"explicit/logging"
)

// Catalog 实现类型表，按 reflect.Type 索引
//
// 声明通常发生在包初始化阶段；读操作可并发进行。
type Catalog struct {
	classes map[reflect.Type]*Class
	order   []reflect.Type
	logger  logging.Logger
	mutex   sync.RWMutex
}

// Option 目录选项
type Option func(*Catalog)

// WithLogger 指定日志器；未指定时使用全局 Logger
func WithLogger(logger logging.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// NewCatalog 创建目录
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		classes: make(map[reflect.Type]*Class),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCatalog = NewCatalog()

// Default 返回包级默认目录
func Default() *Catalog {
	return defaultCatalog
}

func (c *Catalog) log() logging.Logger {
	if c.logger != nil {
		return c.logger
	}
	return logging.GetLogger()
}

// Implement 声明实现类型并构建其实现注册表
func (c *Catalog) Implement(t reflect.Type, opts ...ClassOption) (*Class, error) {
	spec := &classSpec{}
	for _, opt := range opts {
		if opt != nil {
			opt.applyClass(spec)
		}
	}

	class, err := newClass(t, spec)
	if err != nil {
		return nil, err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.classes[t]; exists {
		return nil, errors.Newf(errors.ErrCodeConflict, "class %s already declared", t).
			WithContext(errors.DetailClass, t.String())
	}
	c.classes[t] = class
	c.order = append(c.order, t)

	names := make([]string, 0, len(class.interfaces))
	for _, iface := range class.interfaces {
		names = append(names, iface.name)
	}
	c.log().Debug(context.Background(), "class declared",
		logging.String("class", class.Name()),
		logging.Strings("interfaces", names),
		logging.Bool("strict", spec.strict),
		logging.Int("bindings", class.registry.Len()),
		logging.Int("missing", len(class.missing)))

	return class, nil
}

// ClassOf 查找实现类型
func (c *Catalog) ClassOf(t reflect.Type) (*Class, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	class, ok := c.classes[t]
	return class, ok
}

// Classes 按声明顺序返回全部实现类型
func (c *Catalog) Classes() []*Class {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	out := make([]*Class, 0, len(c.order))
	for _, t := range c.order {
		out = append(out, c.classes[t])
	}
	return out
}

func (c *Catalog) classFor(obj any) (*Class, error) {
	if obj == nil {
		return nil, errors.NewError(errors.ErrCodeInvalidInput, "instance must not be nil")
	}
	t := reflect.TypeOf(obj)
	class, ok := c.ClassOf(t)
	if !ok {
		return nil, errors.Newf(errors.ErrCodeNotFound, "type %s is not a declared class", t).
			WithContext(errors.DetailClass, t.String())
	}
	return class, nil
}

// Instantiate 对已构造的实例执行实例化期完整性检查
func (c *Catalog) Instantiate(obj any) error {
	class, err := c.classFor(obj)
	if err != nil {
		return err
	}
	return class.checkInstantiable()
}

// Implement 在默认目录中声明实现类型 T
func Implement[T any](opts ...ClassOption) (*Class, error) {
	return defaultCatalog.Implement(reflect.TypeFor[T](), opts...)
}

// ImplementIn 在指定目录中声明实现类型 T
func ImplementIn[T any](catalog *Catalog, opts ...ClassOption) (*Class, error) {
	return catalog.Implement(reflect.TypeFor[T](), opts...)
}

// MustImplement 在默认目录中声明实现类型 T（失败 panic）
func MustImplement[T any](opts ...ClassOption) *Class {
	class, err := Implement[T](opts...)
	if err != nil {
		panic(err)
	}
	return class
}

// Instantiate 校验默认目录中已构造的实例；不完整时返回零值与错误
func Instantiate[T any](obj T) (T, error) {
	return InstantiateIn(defaultCatalog, obj)
}

// InstantiateIn 校验指定目录中已构造的实例
func InstantiateIn[T any](catalog *Catalog, obj T) (T, error) {
	if err := catalog.Instantiate(obj); err != nil {
		var zero T
		return zero, err
	}
	return obj, nil
}

// New 分配 T 的零值实例（指针类型分配其元素）；完整性检查先于分配
func New[T any]() (T, error) {
	return NewIn[T](defaultCatalog)
}

// NewIn 在指定目录中分配实例
func NewIn[T any](catalog *Catalog) (T, error) {
	var zero T
	t := reflect.TypeFor[T]()
	class, ok := catalog.ClassOf(t)
	if !ok {
		return zero, errors.Newf(errors.ErrCodeNotFound, "type %s is not a declared class", t).
			WithContext(errors.DetailClass, t.String())
	}
	if err := class.checkInstantiable(); err != nil {
		return zero, err
	}
	if t.Kind() == reflect.Pointer {
		return reflect.New(t.Elem()).Interface().(T), nil
	}
	return zero, nil
}
