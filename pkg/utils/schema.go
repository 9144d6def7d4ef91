package utils

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

func GenerateSchema[T any]() (interface{}, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return schema, nil
}

// reflect T into the plain map form the chat completion tool params expect
func GenerateSchemaMap[T any]() (map[string]interface{}, error) {
	schema, err := GenerateSchema[T]()
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
