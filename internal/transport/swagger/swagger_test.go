package swagger_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/require"
)

// The served document must stay a loadable, valid OpenAPI 3 document.
func TestOpenAPIDocumentIsValid(t *testing.T) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile("../../../api/openapi.yml")
	require.NoError(t, err)

	require.NoError(t, doc.Validate(context.Background()))
	require.NotEmpty(t, doc.Paths.Map())
}
