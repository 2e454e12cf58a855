// Package contract 提供显式接口契约：声明接口、把实现方法绑定到接口操作、
// 并按单个接口获取对象的窄视图。
//
// 与 Go 原生接口按方法名隐式匹配不同，这里的绑定是显式的：实现者可以为
// 方法任意命名，再通过 Bind 声明“该方法实现 IFoo.foo”。同一类型因此可以
// 同时实现多个含有同名操作的接口而互不冲突，绑定错误在类型声明时即被发现。
//
// 基本用法：
//
//	IFoo := contract.MustDeclare("IFoo", contract.AbstractOf[func(int) string]("foo"))
//
//	type Impl struct{}
//	func (*Impl) FooImplementation(x int) string { return strconv.Itoa(x) }
//
//	contract.MustImplement[*Impl](
//	    contract.Interfaces(IFoo),
//	    contract.Bind(IFoo.Op("foo"), "FooImplementation"),
//	)
//
//	obj, _ := contract.New[*Impl]()
//	view, _ := contract.As(obj, IFoo)
//	out, _ := view.Call("foo", 42) // []any{"42"}
//
// 声明期（Declare / Implement）构建的接口描述符与实现注册表之后不可变，
// 可被任意多个 goroutine 并发读取；视图按请求创建，不做缓存。
package contract
