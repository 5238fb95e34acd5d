package http

import (
	_ "embed"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPIDocument []byte

var (
	loadDocOnce sync.Once
	loadedDoc   *openapi3.T
	loadDocErr  error
)

// LoadOpenAPI parses and validates the embedded OpenAPI document once per process.
func LoadOpenAPI() (*openapi3.T, error) {
	loadDocOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(openAPIDocument)
		if err != nil {
			loadDocErr = err
			return
		}
		if err = doc.Validate(loader.Context); err != nil {
			loadDocErr = err
			return
		}
		loadedDoc = doc
	})
	return loadedDoc, loadDocErr
}

// swaggerDoc serves the embedded document, converted to JSON, to echo-swagger.
type swaggerDoc struct{}

func (swaggerDoc) ReadDoc() string {
	doc, err := LoadOpenAPI()
	if err != nil {
		return "{}"
	}
	b, err := doc.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(b)
}

func init() {
	swag.Register(swag.Name, swaggerDoc{})
}
