// Package docs serves the embedded OpenAPI document and an interactive
// documentation page built on Swagger UI.
package docs

import (
	_ "embed"
	"fmt"
	"net/http"
)

//go:embed openapi.yaml
var openapiSpec []byte

// Spec returns the raw OpenAPI document.
// Contract tests validate this document against the live routes.
func Spec() []byte {
	return openapiSpec
}

const swaggerUIVersion = "5.17.14"

// pageTemplate renders Swagger UI pointed at the served spec.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>%s - API documentation</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@%s/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@%s/swagger-ui-bundle.js"></script>
  <script>
    window.onload = () => {
      SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui",
      });
    };
  </script>
</body>
</html>
`

// Page returns a handler serving the interactive documentation page.
// specURL is the path where SpecHandler is mounted.
func Page(title, specURL string) http.HandlerFunc {
	page := []byte(fmt.Sprintf(pageTemplate, title, swaggerUIVersion, swaggerUIVersion, specURL))

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(page)
	}
}

// SpecHandler returns a handler serving the raw OpenAPI document.
func SpecHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		w.Write(openapiSpec)
	}
}
