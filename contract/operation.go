package contract

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"

	"explicit/errors"
)

// Kind 操作类别
type Kind int

const (
	// KindAbstract 抽象操作，必须由实现类型绑定
	KindAbstract Kind = iota
	// KindConcrete 带默认实现的操作，默认体的首个参数接收实例
	KindConcrete
	// KindStatic 类型级默认实现，不接收实例
	KindStatic
)

func (k Kind) String() string {
	switch k {
	case KindAbstract:
		return "abstract"
	case KindConcrete:
		return "concrete"
	case KindStatic:
		return "static"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// OperationID 操作标识：(声明接口, 操作名)
//
// 接口部分使用声明时生成的 uuid，两个同名接口各自声明的同名操作是不同标识。
type OperationID struct {
	Interface uuid.UUID
	Name      string
}

// Operation 操作描述符
//
// 每个标识只有一个规范描述符，子接口继承时沿用基接口的指针，从不重新生成。
type Operation struct {
	id        OperationID
	origin    *Interface
	kind      Kind
	signature reflect.Type
	dangling  bool
}

func (o *Operation) ID() OperationID { return o.id }

func (o *Operation) Name() string { return o.id.Name }

// Interface 返回声明该操作的接口
func (o *Operation) Interface() *Interface { return o.origin }

func (o *Operation) Kind() Kind { return o.kind }

// Signature 返回不含接收者的函数类型；抽象操作未声明签名时为 nil
func (o *Operation) Signature() reflect.Type { return o.signature }

func (o *Operation) IsAbstract() bool { return o.kind == KindAbstract }

func (o *Operation) String() string {
	if o.origin == nil {
		return o.id.Name
	}
	return o.origin.name + "." + o.id.Name
}

// OperationDecl 接口体内的一条操作声明
type OperationDecl struct {
	name      string
	kind      Kind
	signature reflect.Type
	body      reflect.Value
	err       error
}

func (d OperationDecl) applyInterface(s *interfaceSpec) {
	s.ops = append(s.ops, d)
}

// Abstract 声明不检查签名的抽象操作
func Abstract(name string) OperationDecl {
	return OperationDecl{name: name, kind: KindAbstract}
}

// AbstractOf 声明带签名的抽象操作，F 为不含接收者的函数类型
func AbstractOf[F any](name string) OperationDecl {
	t := reflect.TypeFor[F]()
	d := OperationDecl{name: name, kind: KindAbstract, signature: t}
	if t.Kind() != reflect.Func {
		d.err = errors.Newf(errors.ErrCodeInvalidDeclaration,
			"signature of operation %q must be a func type, got %s", name, t)
	}
	return d
}

// Concrete 声明带默认实现的操作
//
// body 必须是函数，首个参数接收实例（可为 any、某个 Go 接口或具体类型），
// 其余参数与返回值构成该操作的签名。
func Concrete(name string, body any) OperationDecl {
	d := OperationDecl{name: name, kind: KindConcrete}
	v := reflect.ValueOf(body)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		d.err = errors.Newf(errors.ErrCodeInvalidDeclaration,
			"body of concrete operation %q must be a non-nil func", name)
		return d
	}
	t := v.Type()
	if t.NumIn() == 0 || (t.IsVariadic() && t.NumIn() == 1) {
		d.err = errors.Newf(errors.ErrCodeInvalidDeclaration,
			"body of concrete operation %q must take the instance as its first parameter", name)
		return d
	}
	d.body = v
	d.signature = withoutReceiver(t)
	return d
}

// Static 声明类型级默认实现，body 不接收实例
func Static(name string, body any) OperationDecl {
	d := OperationDecl{name: name, kind: KindStatic}
	v := reflect.ValueOf(body)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		d.err = errors.Newf(errors.ErrCodeInvalidDeclaration,
			"body of static operation %q must be a non-nil func", name)
		return d
	}
	d.body = v
	d.signature = v.Type()
	return d
}

// withoutReceiver 去掉函数类型的首个参数
func withoutReceiver(t reflect.Type) reflect.Type {
	ins := make([]reflect.Type, 0, t.NumIn()-1)
	for i := 1; i < t.NumIn(); i++ {
		ins = append(ins, t.In(i))
	}
	outs := make([]reflect.Type, 0, t.NumOut())
	for i := 0; i < t.NumOut(); i++ {
		outs = append(outs, t.Out(i))
	}
	return reflect.FuncOf(ins, outs, t.IsVariadic())
}
