package contract

import (
	"context"
	"reflect"

	"github.com/google/uuid"

	"explicit/errors"
	"explicit/logging"
	"explicit/validation"
)

// InterfaceOption 接口声明选项：基接口或操作声明
type InterfaceOption interface {
	applyInterface(*interfaceSpec)
}

type interfaceSpec struct {
	bases []*Interface
	ops   []OperationDecl
}

type extendsOption []*Interface

func (e extendsOption) applyInterface(s *interfaceSpec) {
	s.bases = append(s.bases, e...)
}

// Extends 指定基接口，按声明顺序合并
func Extends(bases ...*Interface) InterfaceOption {
	return extendsOption(bases)
}

// Interface 接口描述符
//
// 声明时一次性计算扁平化的抽象/具体操作集合，之后不可变。
type Interface struct {
	id        uuid.UUID
	name      string
	bases     []*Interface
	ancestors []*Interface

	declaredAbstract  []*Operation
	declaredConcrete  []*Operation
	inheritedAbstract []*Operation
	inheritedConcrete []*Operation

	byID   map[OperationID]*Operation
	byName map[string][]*Operation

	// bodies 本接口自身声明或重述的默认体
	bodies map[OperationID]reflect.Value
}

// Declare 声明接口
func Declare(name string, opts ...InterfaceOption) (*Interface, error) {
	if err := validation.ValidateIdentifier(name, "interface name"); err != nil {
		return nil, err
	}

	spec := &interfaceSpec{}
	for _, opt := range opts {
		if opt != nil {
			opt.applyInterface(spec)
		}
	}

	iface := &Interface{
		id:     uuid.New(),
		name:   name,
		bases:  spec.bases,
		byID:   make(map[OperationID]*Operation),
		byName: make(map[string][]*Operation),
		bodies: make(map[OperationID]reflect.Value),
	}

	seenBase := make(map[*Interface]bool, len(spec.bases))
	for _, base := range spec.bases {
		if base == nil {
			return nil, errors.Newf(errors.ErrCodeInvalidDeclaration,
				"interface %s: base interface must not be nil", name)
		}
		if seenBase[base] {
			return nil, errors.Newf(errors.ErrCodeInvalidDeclaration,
				"interface %s: duplicate base interface %s", name, base.name)
		}
		seenBase[base] = true
	}

	ancestors, err := linearize(spec.bases)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrCodeInvalidDeclaration, "interface "+name)
	}
	iface.ancestors = append([]*Interface{iface}, ancestors...)

	for _, base := range spec.bases {
		for _, op := range base.Abstract() {
			iface.inherit(op, &iface.inheritedAbstract)
		}
		for _, op := range base.Concrete() {
			iface.inherit(op, &iface.inheritedConcrete)
		}
	}

	if err := iface.declare(spec.ops); err != nil {
		return nil, err
	}

	logging.GetLogger().Debug(context.Background(), "interface declared",
		logging.String("interface", name),
		logging.Int("abstract", len(iface.Abstract())),
		logging.Int("concrete", len(iface.Concrete())))

	return iface, nil
}

// MustDeclare 声明接口（失败 panic）
func MustDeclare(name string, opts ...InterfaceOption) *Interface {
	iface, err := Declare(name, opts...)
	if err != nil {
		panic(err)
	}
	return iface
}

// inherit 按标识合并基接口的操作，菱形路径上的同一操作只保留一份
func (i *Interface) inherit(op *Operation, into *[]*Operation) {
	if _, ok := i.byID[op.id]; ok {
		return
	}
	i.byID[op.id] = op
	i.byName[op.id.Name] = append(i.byName[op.id.Name], op)
	*into = append(*into, op)
}

func (i *Interface) declare(decls []OperationDecl) error {
	seen := make(map[string]bool, len(decls))
	for _, d := range decls {
		if err := validation.ValidateIdentifier(d.name, "operation name"); err != nil {
			return errors.WrapError(err, errors.ErrCodeInvalidDeclaration, "interface "+i.name)
		}
		if d.err != nil {
			return d.err
		}
		if seen[d.name] {
			return errors.Violation(errors.ErrCodeInvalidDeclaration,
				"interface "+i.name+" declares an operation twice", i.name+"."+d.name)
		}
		seen[d.name] = true

		inherited := i.byName[d.name]
		switch len(inherited) {
		case 0:
			op := &Operation{
				id:        OperationID{Interface: i.id, Name: d.name},
				origin:    i,
				kind:      d.kind,
				signature: d.signature,
			}
			i.byID[op.id] = op
			i.byName[d.name] = []*Operation{op}
			if d.kind == KindAbstract {
				i.declaredAbstract = append(i.declaredAbstract, op)
			} else {
				i.declaredConcrete = append(i.declaredConcrete, op)
				i.bodies[op.id] = d.body
			}
		case 1:
			// 重述继承的操作：保留原标识
			prev := inherited[0]
			if prev.kind != d.kind {
				return errors.Violation(errors.ErrCodeAmbiguousContract,
					"interface "+i.name+" redeclares "+prev.kind.String()+" operation as "+d.kind.String(),
					prev.String())
			}
			if prev.signature == nil && d.signature != nil {
				return errors.Violation(errors.ErrCodeSignatureMismatch,
					"interface "+i.name+" restates untyped operation with signature "+d.signature.String(),
					prev.String())
			}
			if prev.signature != nil && d.signature != nil && prev.signature != d.signature {
				return errors.Violation(errors.ErrCodeSignatureMismatch,
					"interface "+i.name+" restates operation with signature "+d.signature.String()+
						", inherited signature is "+prev.signature.String(),
					prev.String())
			}
			if d.kind != KindAbstract {
				i.bodies[prev.id] = d.body
			}
		default:
			names := make([]string, 0, len(inherited))
			for _, op := range inherited {
				names = append(names, op.String())
			}
			return errors.Violation(errors.ErrCodeAmbiguousContract,
				"interface "+i.name+" redeclares "+d.name+" which is inherited from unrelated interfaces",
				names...)
		}
	}
	return nil
}

// linearize 计算基接口序列的 C3 线性化（不含自身）
func linearize(bases []*Interface) ([]*Interface, error) {
	seqs := make([][]*Interface, 0, len(bases)+1)
	for _, b := range bases {
		seqs = append(seqs, append([]*Interface(nil), b.ancestors...))
	}
	seqs = append(seqs, append([]*Interface(nil), bases...))

	var result []*Interface
	for {
		live := seqs[:0]
		for _, s := range seqs {
			if len(s) > 0 {
				live = append(live, s)
			}
		}
		seqs = live
		if len(seqs) == 0 {
			return result, nil
		}

		var head *Interface
		for _, s := range seqs {
			if !inTail(s[0], seqs) {
				head = s[0]
				break
			}
		}
		if head == nil {
			return nil, errors.NewError(errors.ErrCodeInvalidDeclaration,
				"inconsistent interface hierarchy: no consistent linearization")
		}

		result = append(result, head)
		for k, s := range seqs {
			if s[0] == head {
				seqs[k] = s[1:]
			}
		}
	}
}

func inTail(candidate *Interface, seqs [][]*Interface) bool {
	for _, s := range seqs {
		for _, x := range s[1:] {
			if x == candidate {
				return true
			}
		}
	}
	return false
}

// ID 返回接口声明时生成的标识
func (i *Interface) ID() uuid.UUID { return i.id }

func (i *Interface) Name() string { return i.name }

func (i *Interface) String() string { return i.name }

// Bases 返回直接基接口
func (i *Interface) Bases() []*Interface {
	return append([]*Interface(nil), i.bases...)
}

// Ancestors 返回线性化后的接口链，自身在首位
func (i *Interface) Ancestors() []*Interface {
	return append([]*Interface(nil), i.ancestors...)
}

// Extends 判断 i 是否为 other 或其子接口
func (i *Interface) Extends(other *Interface) bool {
	for _, a := range i.ancestors {
		if a == other {
			return true
		}
	}
	return false
}

// Op 按名称引用操作
//
// 名称不存在时返回一个悬空操作，它不属于任何接口的操作集，
// 绑定到它会在类型声明时报 BindingTargetError，而不是被静默忽略。
// 同名操作来自多个无关基接口时按线性化顺序返回第一个。
func (i *Interface) Op(name string) *Operation {
	if op, ok := i.Lookup(name); ok {
		return op
	}
	return &Operation{
		id:       OperationID{Interface: i.id, Name: name},
		origin:   i,
		kind:     KindAbstract,
		dangling: true,
	}
}

// Lookup 按名称查找操作
func (i *Interface) Lookup(name string) (*Operation, bool) {
	ops := i.byName[name]
	if len(ops) == 0 {
		return nil, false
	}
	if len(ops) == 1 {
		return ops[0], true
	}
	for _, a := range i.ancestors {
		for _, op := range ops {
			if op.origin == a {
				return op, true
			}
		}
	}
	return ops[0], true
}

// Has 判断标识是否属于本接口的扁平化操作集
func (i *Interface) Has(id OperationID) bool {
	_, ok := i.byID[id]
	return ok
}

// Abstract 返回全部抽象操作（继承在前，自身声明在后）
func (i *Interface) Abstract() []*Operation {
	out := make([]*Operation, 0, len(i.inheritedAbstract)+len(i.declaredAbstract))
	out = append(out, i.inheritedAbstract...)
	return append(out, i.declaredAbstract...)
}

// Concrete 返回全部具体操作（含 static）
func (i *Interface) Concrete() []*Operation {
	out := make([]*Operation, 0, len(i.inheritedConcrete)+len(i.declaredConcrete))
	out = append(out, i.inheritedConcrete...)
	return append(out, i.declaredConcrete...)
}

func (i *Interface) DeclaredAbstract() []*Operation {
	return append([]*Operation(nil), i.declaredAbstract...)
}

func (i *Interface) DeclaredConcrete() []*Operation {
	return append([]*Operation(nil), i.declaredConcrete...)
}

func (i *Interface) InheritedAbstract() []*Operation {
	return append([]*Operation(nil), i.inheritedAbstract...)
}

func (i *Interface) InheritedConcrete() []*Operation {
	return append([]*Operation(nil), i.inheritedConcrete...)
}

// Default 返回具体操作生效的默认体：沿线性化链第一个提供默认体的接口胜出，
// 因此最派生接口的重述覆盖基接口。
func (i *Interface) Default(id OperationID) (reflect.Value, bool) {
	return defaultAlong(i.ancestors, id)
}

func defaultAlong(chain []*Interface, id OperationID) (reflect.Value, bool) {
	for _, a := range chain {
		if body, ok := a.bodies[id]; ok {
			return body, true
		}
	}
	return reflect.Value{}, false
}
