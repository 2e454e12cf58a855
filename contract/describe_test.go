package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDescribeInterface(t *testing.T) {
	base := MustDeclare("IBase", AbstractOf[func() string]("base_method"))
	left := MustDeclare("ILeft", Extends(base),
		AbstractOf[func() int]("left_op"),
		Concrete("describe", func(any) string { return "left" }),
	)

	raw, err := DescribeInterface(left)
	require.NoError(t, err)

	var doc InterfaceDoc
	require.NoError(t, yaml.Unmarshal(raw, &doc))
	assert.Equal(t, "ILeft", doc.Name)
	assert.Equal(t, left.ID().String(), doc.ID)
	assert.Equal(t, []string{"IBase"}, doc.Bases)
	assert.Equal(t, []OperationDoc{{Name: "IBase.base_method", Kind: "abstract", Signature: "func() string"}}, doc.InheritedAbstract)
	assert.Equal(t, []OperationDoc{{Name: "ILeft.left_op", Kind: "abstract", Signature: "func() int"}}, doc.DeclaredAbstract)
	assert.Equal(t, []OperationDoc{{Name: "ILeft.describe", Kind: "concrete", Signature: "func() string"}}, doc.DeclaredConcrete)
	assert.Empty(t, doc.InheritedConcrete)
}

func TestCatalog_Describe(t *testing.T) {
	f := newFixtures()
	cat := newTestCatalog()
	_, err := ImplementIn[*fooBarImpl](cat,
		Interfaces(f.IFoo, f.IBar),
		Bind(f.IFoo.Op("foo"), "FooFromIFoo"),
	)
	require.NoError(t, err)

	raw, err := cat.Describe()
	require.NoError(t, err)

	var doc CatalogDoc
	require.NoError(t, yaml.Unmarshal(raw, &doc))
	require.Len(t, doc.Classes, 1)
	assert.Equal(t, ClassDoc{
		Type:       "*contract.fooBarImpl",
		Strict:     false,
		Interfaces: []string{"IFoo", "IBar"},
		Bindings:   []BindingDoc{{Operation: "IFoo.foo", Method: "FooFromIFoo"}},
		Missing:    []string{"IBar.bar"},
	}, doc.Classes[0])
	require.Len(t, doc.Interfaces, 2)
	assert.Equal(t, "IFoo", doc.Interfaces[0].Name)
	assert.Equal(t, "IBar", doc.Interfaces[1].Name)
}
