package contract

import (
	"reflect"
	"strconv"
	"strings"
)

// 测试用接口集合，每个测试重新声明以获得独立的标识
type fixtures struct {
	IFoo          *Interface
	IBar          *Interface
	IFooBar       *Interface
	IWithConcrete *Interface
}

func newFixtures() fixtures {
	return fixtures{
		IFoo: MustDeclare("IFoo", AbstractOf[func(int) string]("foo")),
		IBar: MustDeclare("IBar", AbstractOf[func(int) bool]("bar")),
		IFooBar: MustDeclare("IFooBar",
			AbstractOf[func()]("foo"),
			AbstractOf[func() int]("bar"),
		),
		IWithConcrete: MustDeclare("IWithConcreteMethod",
			AbstractOf[func() string]("abstract_method"),
			Concrete("concrete_method", func(self any) string { return "concrete method result" }),
			Static("class_method", func() string { return "class method result" }),
		),
	}
}

type fooImpl struct {
	prefix string
}

func (f *fooImpl) FooImplementation(x int) string {
	return f.prefix + strconv.Itoa(x)
}

func (f *fooImpl) Helper() string { return "helper" }

type fooBarImpl struct {
	calls []string
}

func (c *fooBarImpl) FooFromIFoo(x int) string { return strconv.Itoa(x) }

func (c *fooBarImpl) BarFromIBar(y int) bool { return y > 5 }

func (c *fooBarImpl) FooFromIFooBar() { c.calls = append(c.calls, "IFooBar.foo") }

func (c *fooBarImpl) BarFromIFooBar() int { return 42 }

type withConcreteImpl struct{}

func (withConcreteImpl) AbstractMethodImpl() string { return "abstract implementation" }

type overridingImpl struct{}

func (overridingImpl) AbstractMethodImpl() string { return "abstract implementation" }

func (overridingImpl) ConcreteOverride() string { return "overridden concrete method" }

type diamondImpl struct{}

func (diamondImpl) BaseImplementation() string { return "base" }

func (diamondImpl) LeftImplementation() int { return 42 }

func (diamondImpl) RightImplementation() bool { return true }

func (diamondImpl) OtherBase() string { return "other" }

type multiImpl struct{}

func (multiImpl) Method1Implementation() string { return "one" }

func (multiImpl) Method2Implementation(x int) int { return x * 2 }

func (multiImpl) Method3Implementation(a string, b bool) float64 {
	if b {
		return float64(len(a))
	}
	return 0
}

type variadicImpl struct{}

func (variadicImpl) Sum(label string, xs ...int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

type greeter struct{ name string }

func (g *greeter) Greet() string { return "HELLO " + strings.ToUpper(g.name) }

type emptyImpl struct{}

func typeOf[T any]() reflect.Type { return reflect.TypeFor[T]() }

type describedImpl struct{}

func (describedImpl) Describe() string { return "own" }

func (describedImpl) Alt() string { return "bound" }
