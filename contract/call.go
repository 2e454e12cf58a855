package contract

import (
	"fmt"
	"reflect"

	"explicit/errors"
)

// call 以原样参数调用已绑定的函数值，参数个数或类型不符时在调用前报错
func call(fn reflect.Value, name string, args []any) ([]any, error) {
	in, err := prepareArgs(fn.Type(), name, args)
	if err != nil {
		return nil, err
	}
	out := fn.Call(in)
	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}
	return results, nil
}

func prepareArgs(ft reflect.Type, name string, args []any) ([]reflect.Value, error) {
	n := ft.NumIn()
	if ft.IsVariadic() {
		if len(args) < n-1 {
			return nil, errors.Newf(errors.ErrCodeInvalidInput,
				"%s expects at least %d arguments, got %d", name, n-1, len(args))
		}
	} else if len(args) != n {
		return nil, errors.Newf(errors.ErrCodeInvalidInput,
			"%s expects %d arguments, got %d", name, n, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var pt reflect.Type
		if ft.IsVariadic() && i >= n-1 {
			pt = ft.In(n - 1).Elem()
		} else {
			pt = ft.In(i)
		}
		v, err := argValue(arg, pt)
		if err != nil {
			return nil, errors.WrapError(err, errors.ErrCodeInvalidInput,
				fmt.Sprintf("%s argument %d", name, i))
		}
		in[i] = v
	}
	return in, nil
}

func argValue(arg any, pt reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch pt.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(pt), nil
		}
		return reflect.Value{}, fmt.Errorf("nil is not assignable to %s", pt)
	}
	v := reflect.ValueOf(arg)
	if !v.Type().AssignableTo(pt) {
		return reflect.Value{}, fmt.Errorf("%s is not assignable to %s", v.Type(), pt)
	}
	return v, nil
}

// typed 把函数值转换为调用方期望的函数类型 F
func typed[F any](fn reflect.Value, name string) (F, error) {
	var zero F
	want := reflect.TypeFor[F]()
	if !fn.Type().ConvertibleTo(want) {
		return zero, errors.Newf(errors.ErrCodeSignatureMismatch,
			"%s has signature %s, requested %s", name, fn.Type(), want)
	}
	return fn.Convert(want).Interface().(F), nil
}
