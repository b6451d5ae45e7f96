package csdl

// Package csdl holds the declaration records a schema document is made of,
// and loaders that read them from JSON and YAML. The records are plain data:
// names are not checked and references are not resolved here. goedm.Builder
// turns them into a model.

// Document is one schema document.
type Document struct {
	// Version is the protocol version, "4.0" or "4.01". Empty means the
	// builder default.
	Version string   `json:"version,omitempty" yaml:"version,omitempty"`
	Schemas []Schema `json:"schemas" yaml:"schemas"`
	// Warnings holds loader findings that did not stop decoding.
	Warnings []Warning `json:"-" yaml:"-"`
}

// Schema declares the elements of one namespace.
type Schema struct {
	Namespace        string            `json:"namespace" yaml:"namespace"`
	Alias            string            `json:"alias,omitempty" yaml:"alias,omitempty"`
	EntityTypes      []EntityType      `json:"entityTypes,omitempty" yaml:"entityTypes,omitempty"`
	ComplexTypes     []ComplexType     `json:"complexTypes,omitempty" yaml:"complexTypes,omitempty"`
	EnumTypes        []EnumType        `json:"enumTypes,omitempty" yaml:"enumTypes,omitempty"`
	TypeDefinitions  []TypeDefinition  `json:"typeDefinitions,omitempty" yaml:"typeDefinitions,omitempty"`
	Terms            []Term            `json:"terms,omitempty" yaml:"terms,omitempty"`
	Actions          []Operation       `json:"actions,omitempty" yaml:"actions,omitempty"`
	Functions        []Operation       `json:"functions,omitempty" yaml:"functions,omitempty"`
	EntityContainers []EntityContainer `json:"entityContainers,omitempty" yaml:"entityContainers,omitempty"`
	Annotations      []Annotations     `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// EntityType declares an entity type. Key lists property names.
type EntityType struct {
	Name                 string               `json:"name" yaml:"name"`
	BaseType             string               `json:"baseType,omitempty" yaml:"baseType,omitempty"`
	Abstract             bool                 `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	OpenType             bool                 `json:"openType,omitempty" yaml:"openType,omitempty"`
	HasStream            bool                 `json:"hasStream,omitempty" yaml:"hasStream,omitempty"`
	Key                  []string             `json:"key,omitempty" yaml:"key,omitempty"`
	Properties           []Property           `json:"properties,omitempty" yaml:"properties,omitempty"`
	NavigationProperties []NavigationProperty `json:"navigationProperties,omitempty" yaml:"navigationProperties,omitempty"`
}

// ComplexType declares a complex type.
type ComplexType struct {
	Name                 string               `json:"name" yaml:"name"`
	BaseType             string               `json:"baseType,omitempty" yaml:"baseType,omitempty"`
	Abstract             bool                 `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	OpenType             bool                 `json:"openType,omitempty" yaml:"openType,omitempty"`
	Properties           []Property           `json:"properties,omitempty" yaml:"properties,omitempty"`
	NavigationProperties []NavigationProperty `json:"navigationProperties,omitempty" yaml:"navigationProperties,omitempty"`
}

// Property declares a structural property. A nil Nullable means true.
type Property struct {
	Name         string `json:"name" yaml:"name"`
	Type         string `json:"type" yaml:"type"`
	Nullable     *bool  `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	DefaultValue string `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
}

// NavigationProperty declares a navigation property.
type NavigationProperty struct {
	Name           string `json:"name" yaml:"name"`
	Type           string `json:"type" yaml:"type"`
	Nullable       *bool  `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Partner        string `json:"partner,omitempty" yaml:"partner,omitempty"`
	ContainsTarget bool   `json:"containsTarget,omitempty" yaml:"containsTarget,omitempty"`
}

// EnumType declares an enum type. UnderlyingType defaults to Edm.Int32.
type EnumType struct {
	Name           string       `json:"name" yaml:"name"`
	UnderlyingType string       `json:"underlyingType,omitempty" yaml:"underlyingType,omitempty"`
	IsFlags        bool         `json:"isFlags,omitempty" yaml:"isFlags,omitempty"`
	Members        []EnumMember `json:"members,omitempty" yaml:"members,omitempty"`
}

// EnumMember declares an enum value. A nil Value continues from the previous
// member (or 0 for the first one).
type EnumMember struct {
	Name  string `json:"name" yaml:"name"`
	Value *int64 `json:"value,omitempty" yaml:"value,omitempty"`
}

// TypeDefinition declares a named primitive type.
type TypeDefinition struct {
	Name           string `json:"name" yaml:"name"`
	UnderlyingType string `json:"underlyingType" yaml:"underlyingType"`
}

// Term declares an annotation term.
type Term struct {
	Name         string `json:"name" yaml:"name"`
	Type         string `json:"type" yaml:"type"`
	Nullable     *bool  `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	AppliesTo    string `json:"appliesTo,omitempty" yaml:"appliesTo,omitempty"`
	DefaultValue string `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
}

// Operation declares an action or a function, depending on the list it
// appears in.
type Operation struct {
	Name          string      `json:"name" yaml:"name"`
	IsBound       bool        `json:"isBound,omitempty" yaml:"isBound,omitempty"`
	IsComposable  bool        `json:"isComposable,omitempty" yaml:"isComposable,omitempty"`
	EntitySetPath string      `json:"entitySetPath,omitempty" yaml:"entitySetPath,omitempty"`
	Parameters    []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	ReturnType    *ReturnType `json:"returnType,omitempty" yaml:"returnType,omitempty"`
}

// Parameter declares an operation parameter.
type Parameter struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Nullable *bool  `json:"nullable,omitempty" yaml:"nullable,omitempty"`
}

// ReturnType declares the result of an operation.
type ReturnType struct {
	Type     string `json:"type" yaml:"type"`
	Nullable *bool  `json:"nullable,omitempty" yaml:"nullable,omitempty"`
}

// EntityContainer declares the members a service exposes.
type EntityContainer struct {
	Name            string            `json:"name" yaml:"name"`
	EntitySets      []EntitySet       `json:"entitySets,omitempty" yaml:"entitySets,omitempty"`
	Singletons      []Singleton       `json:"singletons,omitempty" yaml:"singletons,omitempty"`
	ActionImports   []OperationImport `json:"actionImports,omitempty" yaml:"actionImports,omitempty"`
	FunctionImports []OperationImport `json:"functionImports,omitempty" yaml:"functionImports,omitempty"`
}

// EntitySet declares an entity set. A nil IncludeInServiceDocument means
// true.
type EntitySet struct {
	Name                     string `json:"name" yaml:"name"`
	EntityType               string `json:"entityType" yaml:"entityType"`
	IncludeInServiceDocument *bool  `json:"includeInServiceDocument,omitempty" yaml:"includeInServiceDocument,omitempty"`
}

// Singleton declares a singleton.
type Singleton struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// OperationImport declares an action or function import. Operation is the
// qualified name of the imported operation.
type OperationImport struct {
	Name      string `json:"name" yaml:"name"`
	Operation string `json:"operation" yaml:"operation"`
	EntitySet string `json:"entitySet,omitempty" yaml:"entitySet,omitempty"`
}

// Annotations applies a list of annotations to one target path.
type Annotations struct {
	Target      string       `json:"target" yaml:"target"`
	Annotations []Annotation `json:"annotations" yaml:"annotations"`
}

// Annotation applies a term, optionally qualified, with a value.
type Annotation struct {
	Term       string      `json:"term" yaml:"term"`
	Qualifier  string      `json:"qualifier,omitempty" yaml:"qualifier,omitempty"`
	Expression *Expression `json:"expression,omitempty" yaml:"expression,omitempty"`
}

// Expression kinds.
const (
	ExprString                  = "String"
	ExprInt                     = "Int"
	ExprFloat                   = "Float"
	ExprBool                    = "Bool"
	ExprNull                    = "Null"
	ExprPath                    = "Path"
	ExprCollection              = "Collection"
	ExprLabeledElement          = "LabeledElement"
	ExprLabeledElementReference = "LabeledElementReference"
)

// Expression is an annotation value. Value holds constant and path text,
// Name the label of a labeled element or the target of a reference,
// Expression the labeled value and Items the members of a collection.
type Expression struct {
	Kind       string       `json:"kind" yaml:"kind"`
	Value      string       `json:"value,omitempty" yaml:"value,omitempty"`
	Name       string       `json:"name,omitempty" yaml:"name,omitempty"`
	Expression *Expression  `json:"expression,omitempty" yaml:"expression,omitempty"`
	Items      []Expression `json:"items,omitempty" yaml:"items,omitempty"`
}
