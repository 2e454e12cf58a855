package contract

import (
	"fmt"
	"reflect"

	"explicit/errors"
)

// Class 实现类型描述符
type Class struct {
	typ        reflect.Type
	interfaces []*Interface
	reachable  []*Interface
	registry   *Registry

	abstract []*Operation
	concrete map[OperationID]impl
	missing  []*Operation
}

// impl 具体操作在某个实现类型上的解析结果
type impl struct {
	op     *Operation
	method string
	body   reflect.Value
}

// bind 把解析结果绑定到实例上，得到可直接调用的函数值
func (m impl) bind(recv reflect.Value) reflect.Value {
	switch {
	case m.method != "":
		return recv.MethodByName(m.method)
	case m.op.kind == KindStatic:
		return m.body
	default:
		return bindReceiver(m.body, recv)
	}
}

func bindReceiver(body, recv reflect.Value) reflect.Value {
	bt := body.Type()
	return reflect.MakeFunc(withoutReceiver(bt), func(args []reflect.Value) []reflect.Value {
		in := make([]reflect.Value, 0, len(args)+1)
		in = append(in, recv)
		in = append(in, args...)
		if bt.IsVariadic() {
			return body.CallSlice(in)
		}
		return body.Call(in)
	})
}

// newClass 构建实现类型描述符，完成全部声明期校验
func newClass(t reflect.Type, spec *classSpec) (*Class, error) {
	if t == nil {
		return nil, errors.NewError(errors.ErrCodeInvalidDeclaration, "class type must not be nil")
	}
	className := t.String()
	if t.Kind() == reflect.Interface {
		return nil, errors.Newf(errors.ErrCodeInvalidDeclaration,
			"class %s must be a concrete type, not a Go interface", className)
	}
	if len(spec.interfaces) == 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidDeclaration,
			"class %s must declare at least one interface", className)
	}
	seen := make(map[*Interface]bool, len(spec.interfaces))
	for _, iface := range spec.interfaces {
		if iface == nil {
			return nil, errors.Newf(errors.ErrCodeInvalidDeclaration,
				"class %s: interface must not be nil", className)
		}
		if seen[iface] {
			return nil, errors.Newf(errors.ErrCodeInvalidDeclaration,
				"class %s: duplicate interface %s", className, iface.name)
		}
		seen[iface] = true
	}

	reachable, err := linearize(spec.interfaces)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrCodeInvalidDeclaration, "class "+className)
	}

	c := &Class{
		typ:        t,
		interfaces: append([]*Interface(nil), spec.interfaces...),
		reachable:  reachable,
		concrete:   make(map[OperationID]impl),
	}

	// 所声明接口的操作并集（按标识去重）
	known := make(map[OperationID]*Operation)
	var concrete []*Operation
	for _, iface := range spec.interfaces {
		for _, op := range iface.Abstract() {
			if _, ok := known[op.id]; !ok {
				known[op.id] = op
				c.abstract = append(c.abstract, op)
			}
		}
		for _, op := range iface.Concrete() {
			if _, ok := known[op.id]; !ok {
				known[op.id] = op
				concrete = append(concrete, op)
			}
		}
	}

	reg, err := buildRegistry(t, known, spec.bindings, spec.strict)
	if err != nil {
		return nil, err
	}
	c.registry = reg

	for _, op := range concrete {
		resolved, err := c.resolveConcrete(op)
		if err != nil {
			return nil, err
		}
		c.concrete[op.id] = resolved
	}

	for _, op := range c.abstract {
		if _, ok := reg.entries[op.id]; !ok {
			c.missing = append(c.missing, op)
		}
	}
	if spec.strict && len(c.missing) > 0 {
		return nil, incomplete(c, c.missing,
			fmt.Sprintf("concrete class %s does not implement all abstract operations", className))
	}

	return c, nil
}

// resolveConcrete 解析具体操作：显式绑定 > 同名方法 > 继承的默认体
func (c *Class) resolveConcrete(op *Operation) (impl, error) {
	className := c.typ.String()

	if method, ok := c.registry.entries[op.id]; ok {
		return impl{op: op, method: method}, nil
	}

	if m, ok := c.typ.MethodByName(op.id.Name); ok {
		if sig := withoutReceiver(m.Type); sig != op.signature {
			return impl{}, errors.Violation(errors.ErrCodeSignatureMismatch,
				fmt.Sprintf("class %s: method %s overrides a concrete operation with signature %s, expected %s",
					className, m.Name, sig, op.signature),
				op.String()).
				WithContext(errors.DetailClass, className)
		}
		return impl{op: op, method: m.Name}, nil
	}

	body, ok := defaultAlong(c.reachable, op.id)
	if !ok {
		return impl{}, errors.Violation(errors.ErrCodeInternal,
			"class "+className+": concrete operation has no default body", op.String())
	}
	if op.kind == KindConcrete {
		if recvType := body.Type().In(0); !c.typ.AssignableTo(recvType) {
			return impl{}, errors.Violation(errors.ErrCodeSignatureMismatch,
				fmt.Sprintf("class %s cannot be passed as %s to the default body", className, recvType),
				op.String()).
				WithContext(errors.DetailClass, className)
		}
	}
	return impl{op: op, body: body}, nil
}

// Type 返回实现类型
func (c *Class) Type() reflect.Type { return c.typ }

func (c *Class) Name() string { return c.typ.String() }

// Interfaces 返回直接声明的接口
func (c *Class) Interfaces() []*Interface {
	return append([]*Interface(nil), c.interfaces...)
}

// Reachable 返回线性化后可达的全部接口
func (c *Class) Reachable() []*Interface {
	return append([]*Interface(nil), c.reachable...)
}

// Implements 判断接口是否可由该类型到达（直接声明或继承）
func (c *Class) Implements(iface *Interface) bool {
	for _, r := range c.reachable {
		if r == iface {
			return true
		}
	}
	return false
}

func (c *Class) Registry() *Registry { return c.registry }

func (c *Class) Strict() bool { return c.registry.strict }

// Missing 返回尚未绑定的抽象操作
func (c *Class) Missing() []*Operation {
	return append([]*Operation(nil), c.missing...)
}

// Complete 是否已绑定全部可达抽象操作
func (c *Class) Complete() bool { return len(c.missing) == 0 }

func (c *Class) String() string { return c.typ.String() }
