// Package di 提供按显式接口解析的依赖注入容器。
//
// 容器中登记的是已声明实现类型（contract.Catalog）的实例；解析时按接口描述符
// 查找唯一可达的提供者，并返回该接口的视图，而不是 Go 类型断言。
//
// 注意：本包暴露的全局容器（RegisterGlobal/ResolveGlobal/MustResolveGlobal）
// 仅推荐用于快速原型、示例程序。在生产代码中，应在启动阶段构造容器并显式传递；
// 直接依赖全局容器会让测试共享同一容器状态，也让依赖难以从函数签名看出。
package di

import (
	"reflect"
	"sync"

	"explicit/contract"
	"explicit/errors"
)

// Container 依赖注入容器
type Container struct {
	catalog   *contract.Catalog
	providers []any
	types     map[reflect.Type]bool
	mutex     sync.RWMutex
}

// New 创建容器；catalog 为 nil 时使用 contract.Default()
func New(catalog *contract.Catalog) *Container {
	if catalog == nil {
		catalog = contract.Default()
	}
	return &Container{
		catalog: catalog,
		types:   make(map[reflect.Type]bool),
	}
}

// Catalog 返回容器使用的实现类型目录
func (c *Container) Catalog() *contract.Catalog { return c.catalog }

// Register 登记提供者
// 注意：登记前执行实例化期完整性检查；同一实现类型只能登记一个实例
func (c *Container) Register(provider any) error {
	if provider == nil {
		return errors.NewError(errors.ErrCodeInvalidInput, "provider cannot be nil")
	}
	if err := c.catalog.Instantiate(provider); err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	t := reflect.TypeOf(provider)
	if c.types[t] {
		return errors.Newf(errors.ErrCodeConflict, "provider of type %s already registered", t).
			WithContext(errors.DetailClass, t.String())
	}
	c.types[t] = true
	c.providers = append(c.providers, provider)
	return nil
}

// Providers 返回可以到达 iface 的全部提供者（按登记顺序）
func (c *Container) Providers(iface *contract.Interface) []any {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	var out []any
	for _, p := range c.providers {
		class, ok := c.catalog.ClassOf(reflect.TypeOf(p))
		if ok && class.Implements(iface) {
			out = append(out, p)
		}
	}
	return out
}

// Resolve 解析接口：恰有一个提供者时返回其视图
func (c *Container) Resolve(iface *contract.Interface) (*contract.View, error) {
	if iface == nil {
		return nil, errors.NewError(errors.ErrCodeInvalidInput, "interface cannot be nil")
	}

	providers := c.Providers(iface)
	switch len(providers) {
	case 0:
		return nil, errors.Newf(errors.ErrCodeNotFound, "no provider for interface %s", iface.Name()).
			WithContext(errors.DetailInterface, iface.Name())
	case 1:
		return c.catalog.As(providers[0], iface)
	default:
		names := make([]string, 0, len(providers))
		for _, p := range providers {
			names = append(names, reflect.TypeOf(p).String())
		}
		return nil, errors.Newf(errors.ErrCodeConflict, "interface %s has %d providers", iface.Name(), len(providers)).
			WithContext(errors.DetailInterface, iface.Name()).
			WithContext("providers", names)
	}
}

// MustResolve 解析接口（panic版本）
func (c *Container) MustResolve(iface *contract.Interface) *contract.View {
	view, err := c.Resolve(iface)
	if err != nil {
		panic(err)
	}
	return view
}

// Has 检查是否存在可以到达 iface 的提供者
func (c *Container) Has(iface *contract.Interface) bool {
	return len(c.Providers(iface)) > 0
}

// Clear 清空容器
func (c *Container) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.providers = nil
	c.types = make(map[reflect.Type]bool)
}

// 全局容器
var globalContainer = New(nil)

// RegisterGlobal 登记到全局容器
func RegisterGlobal(provider any) error {
	return globalContainer.Register(provider)
}

// ResolveGlobal 从全局容器解析
func ResolveGlobal(iface *contract.Interface) (*contract.View, error) {
	return globalContainer.Resolve(iface)
}

// MustResolveGlobal 从全局容器解析（panic版本）
func MustResolveGlobal(iface *contract.Interface) *contract.View {
	return globalContainer.MustResolve(iface)
}
