package standard

import (
	"github.com/getkin/kin-openapi/openapi3"
)

const (
	lengthPattern  = `^(auto|0|-?\d+(\.\d+)?(px|%|em|rem)?)$`
	paddingPattern = `^-?\d+(\.\d+)?(px|%|em)?( -?\d+(\.\d+)?(px|%|em)?){0,3}$`
	colorPattern   = `^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+|rgba?\([^)]*\))$`
)

func lengthSchema() *openapi3.Schema {
	return openapi3.NewStringSchema().WithPattern(lengthPattern)
}

func paddingSchema() *openapi3.Schema {
	return openapi3.NewStringSchema().WithPattern(paddingPattern)
}

func colorSchema() *openapi3.Schema {
	return openapi3.NewStringSchema().WithPattern(colorPattern)
}

func enumSchema(values ...string) *openapi3.Schema {
	enum := make([]any, len(values))
	for i, value := range values {
		enum[i] = value
	}
	return openapi3.NewStringSchema().WithEnum(enum...)
}

// attributeSchema builds the object schema used by Registry.Validate. Keys not
// listed are accepted as-is.
func attributeSchema(properties map[string]*openapi3.Schema) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	for name, property := range properties {
		schema.WithProperty(name, property)
	}
	return schema
}

func alignSchema() *openapi3.Schema {
	return enumSchema("left", "center", "right")
}

func boxSchema(extra map[string]*openapi3.Schema) *openapi3.Schema {
	properties := map[string]*openapi3.Schema{
		"padding":          paddingSchema(),
		"background-color": colorSchema(),
	}
	for name, property := range extra {
		properties[name] = property
	}
	return attributeSchema(properties)
}
