package contract_test

import (
	"fmt"
	"strings"

	"explicit/contract"
)

var (
	IShape = contract.MustDeclare("IShape",
		contract.AbstractOf[func() float64]("area"),
		contract.Concrete("describe", func(self interface{ Name() string }) string {
			return "shape " + self.Name()
		}),
	)
	INamed = contract.MustDeclare("INamed", contract.AbstractOf[func() string]("name"))
)

type square struct{ side float64 }

func (s *square) Area() float64 { return s.side * s.side }

func (s *square) Name() string { return "square" }

var _ = contract.MustImplement[*square](
	contract.Interfaces(IShape, INamed),
	contract.Bind(IShape.Op("area"), "Area"),
	contract.Bind(INamed.Op("name"), "Name"),
	contract.Strict(),
)

func Example() {
	sq, err := contract.Instantiate(&square{side: 3})
	if err != nil {
		panic(err)
	}

	shape := contract.MustAs(sq, IShape)
	area, _ := shape.Call("area")
	desc, _ := shape.Call("describe")
	fmt.Println(area[0], desc[0])
	fmt.Println(strings.Join(shape.Operations(), ","))
	// Output:
	// 9 shape square
	// area,describe
}

func ExampleFunc() {
	sq, _ := contract.Instantiate(&square{side: 2})
	named := contract.MustAs(sq, INamed)

	name, err := contract.Func[func() string](named, "name")
	if err != nil {
		panic(err)
	}
	fmt.Println(name())
	// Output: square
}

func ExampleInterface_Op() {
	typo := IShape.Op("araa")
	fmt.Println(typo, IShape.Has(typo.ID()))

	_, err := contract.ImplementIn[*square](contract.NewCatalog(),
		contract.Interfaces(IShape),
		contract.Bind(typo, "Area"),
	)
	fmt.Println(contract.Operations(err))
	// Output:
	// IShape.araa false
	// [IShape.araa]
}
