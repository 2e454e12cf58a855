package contract

import (
	"fmt"
	"reflect"

	"explicit/errors"
	"explicit/validation"
)

// Registry 实现注册表：操作标识 → 实现方法名
//
// 每个实现类型声明时构建一次，之后不可变。
type Registry struct {
	entries map[OperationID]string
	order   []*Operation
	strict  bool
}

// Entry 注册表条目
type Entry struct {
	Operation *Operation
	Method    string
}

// Lookup 返回绑定到该标识的方法名
func (r *Registry) Lookup(id OperationID) (string, bool) {
	m, ok := r.entries[id]
	return m, ok
}

func (r *Registry) Len() int { return len(r.entries) }

// Strict 是否在声明时要求完整
func (r *Registry) Strict() bool { return r.strict }

// Entries 按绑定声明顺序返回快照
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, op := range r.order {
		out = append(out, Entry{Operation: op, Method: r.entries[op.id]})
	}
	return out
}

// buildRegistry 校验绑定声明并构建注册表
//
// 校验顺序：目标可达 → 无重复绑定 → 方法存在且签名一致。
// 严格模式的完整性检查由调用方在具体操作解析之后执行。
func buildRegistry(t reflect.Type, known map[OperationID]*Operation, bindings []Binding, strict bool) (*Registry, error) {
	className := t.String()

	for _, b := range bindings {
		if b.target == nil {
			return nil, errors.NewError(errors.ErrCodeBindingTarget,
				fmt.Sprintf("class %s: method %s binds a nil operation", className, b.method)).
				WithContext(errors.DetailClass, className)
		}
		if _, ok := known[b.target.id]; !ok || b.target.dangling {
			return nil, errors.Violation(errors.ErrCodeBindingTarget,
				fmt.Sprintf("class %s: method %s is bound to an operation that is not in its base interfaces", className, b.method),
				b.target.String()).
				WithContext(errors.DetailClass, className)
		}
	}

	seen := make(map[OperationID]string, len(bindings))
	for _, b := range bindings {
		if prev, ok := seen[b.target.id]; ok {
			return nil, errors.Violation(errors.ErrCodeDuplicateBinding,
				fmt.Sprintf("class %s: methods %s and %s are both bound to the same operation", className, prev, b.method),
				b.target.String()).
				WithContext(errors.DetailClass, className)
		}
		seen[b.target.id] = b.method
	}

	reg := &Registry{
		entries: make(map[OperationID]string, len(bindings)),
		order:   make([]*Operation, 0, len(bindings)),
		strict:  strict,
	}
	for _, b := range bindings {
		op := known[b.target.id]
		if err := validation.ValidateExportedIdentifier(b.method, "method name"); err != nil {
			return nil, errors.WrapError(err, errors.ErrCodeMethodNotFound,
				fmt.Sprintf("class %s: binding for %s", className, op))
		}
		m, ok := t.MethodByName(b.method)
		if !ok {
			return nil, errors.Violation(errors.ErrCodeMethodNotFound,
				fmt.Sprintf("class %s has no method %s", className, b.method),
				op.String()).
				WithContext(errors.DetailClass, className)
		}
		if op.signature != nil {
			if sig := withoutReceiver(m.Type); sig != op.signature {
				return nil, errors.Violation(errors.ErrCodeSignatureMismatch,
					fmt.Sprintf("class %s: method %s has signature %s, expected %s", className, b.method, sig, op.signature),
					op.String()).
					WithContext(errors.DetailClass, className)
			}
		}
		reg.entries[op.id] = b.method
		reg.order = append(reg.order, op)
	}
	return reg, nil
}
