package contract

// ClassOption 实现类型声明选项
type ClassOption interface {
	applyClass(*classSpec)
}

type classSpec struct {
	interfaces []*Interface
	bindings   []Binding
	strict     bool
}

// Binding 绑定声明：某个方法实现某个操作标识
//
// 仅是元数据，不改变方法的行为或名称；构建注册表时被消费。
type Binding struct {
	target *Operation
	method string
}

// Target 返回被实现的操作
func (b Binding) Target() *Operation { return b.target }

// Method 返回实现方法名
func (b Binding) Method() string { return b.method }

func (b Binding) applyClass(s *classSpec) {
	s.bindings = append(s.bindings, b)
}

// Bind 声明 method 实现 target
//
// target 通过 IFoo.Op("foo") 引用，拼写错误会得到一个悬空操作并在声明时被拒绝。
func Bind(target *Operation, method string) Binding {
	return Binding{target: target, method: method}
}

type interfacesOption []*Interface

func (o interfacesOption) applyClass(s *classSpec) {
	s.interfaces = append(s.interfaces, o...)
}

// Interfaces 指定实现类型声明的接口
func Interfaces(ifaces ...*Interface) ClassOption {
	return interfacesOption(ifaces)
}

type strictOption struct{}

func (strictOption) applyClass(s *classSpec) { s.strict = true }

// Strict 在声明时即要求实现完整（concrete=true）
//
// 默认情况下允许部分实现的类型被声明，完整性推迟到实例化时检查。
func Strict() ClassOption {
	return strictOption{}
}
