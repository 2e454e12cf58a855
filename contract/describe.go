package contract

import (
	"gopkg.in/yaml.v3"
)

// OperationDoc 操作的描述
type OperationDoc struct {
	Name      string `yaml:"name"`
	Kind      string `yaml:"kind"`
	Signature string `yaml:"signature,omitempty"`
}

// InterfaceDoc 接口描述符的描述
type InterfaceDoc struct {
	Name              string         `yaml:"name"`
	ID                string         `yaml:"id"`
	Bases             []string       `yaml:"bases,omitempty"`
	DeclaredAbstract  []OperationDoc `yaml:"declared_abstract,omitempty"`
	DeclaredConcrete  []OperationDoc `yaml:"declared_concrete,omitempty"`
	InheritedAbstract []OperationDoc `yaml:"inherited_abstract,omitempty"`
	InheritedConcrete []OperationDoc `yaml:"inherited_concrete,omitempty"`
}

// BindingDoc 注册表条目的描述
type BindingDoc struct {
	Operation string `yaml:"operation"`
	Method    string `yaml:"method"`
}

// ClassDoc 实现类型的描述
type ClassDoc struct {
	Type       string       `yaml:"type"`
	Strict     bool         `yaml:"strict"`
	Interfaces []string     `yaml:"interfaces"`
	Bindings   []BindingDoc `yaml:"bindings,omitempty"`
	Missing    []string     `yaml:"missing,omitempty"`
}

// CatalogDoc 目录的描述
type CatalogDoc struct {
	Interfaces []InterfaceDoc `yaml:"interfaces,omitempty"`
	Classes    []ClassDoc     `yaml:"classes,omitempty"`
}

func operationDocs(ops []*Operation) []OperationDoc {
	docs := make([]OperationDoc, 0, len(ops))
	for _, op := range ops {
		doc := OperationDoc{Name: op.String(), Kind: op.kind.String()}
		if op.signature != nil {
			doc.Signature = op.signature.String()
		}
		docs = append(docs, doc)
	}
	return docs
}

// Doc 返回接口描述
func (i *Interface) Doc() InterfaceDoc {
	doc := InterfaceDoc{
		Name:              i.name,
		ID:                i.id.String(),
		DeclaredAbstract:  operationDocs(i.declaredAbstract),
		DeclaredConcrete:  operationDocs(i.declaredConcrete),
		InheritedAbstract: operationDocs(i.inheritedAbstract),
		InheritedConcrete: operationDocs(i.inheritedConcrete),
	}
	for _, b := range i.bases {
		doc.Bases = append(doc.Bases, b.name)
	}
	return doc
}

// Doc 返回实现类型描述
func (c *Class) Doc() ClassDoc {
	doc := ClassDoc{
		Type:    c.Name(),
		Strict:  c.registry.strict,
		Missing: operationNames(c.missing),
	}
	for _, iface := range c.interfaces {
		doc.Interfaces = append(doc.Interfaces, iface.name)
	}
	for _, e := range c.registry.Entries() {
		doc.Bindings = append(doc.Bindings, BindingDoc{Operation: e.Operation.String(), Method: e.Method})
	}
	return doc
}

// DescribeInterface 以 YAML 输出接口描述符
func DescribeInterface(iface *Interface) ([]byte, error) {
	return yaml.Marshal(iface.Doc())
}

// Describe 以 YAML 输出目录中的全部实现类型及其可达接口
func (c *Catalog) Describe() ([]byte, error) {
	var doc CatalogDoc
	seen := make(map[*Interface]bool)
	for _, class := range c.Classes() {
		doc.Classes = append(doc.Classes, class.Doc())
		for _, iface := range class.reachable {
			if !seen[iface] {
				seen[iface] = true
				doc.Interfaces = append(doc.Interfaces, iface.Doc())
			}
		}
	}
	return yaml.Marshal(doc)
}
