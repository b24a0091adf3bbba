package swagger

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	apicontract "github.com/tuanvumaihuynh/pos-backoffice/api-contract"
)

const (
	docsURL     = "/docs"
	specYAMLURL = "/docs/openapi.yml"
	specJSONURL = "/docs/openapi.json"
)

// specJSON renders the embedded contract once, after it passed validation.
var specJSON = sync.OnceValues(func() ([]byte, error) {
	doc, err := apicontract.Load(context.Background())
	if err != nil {
		return nil, err
	}
	return doc.MarshalJSON()
})

// Register serves Swagger UI at /docs and the API contract as YAML and JSON below it.
func Register(r chi.Router) {
	page := []byte(uiPage("POS Back Office API", specYAMLURL))

	r.Get(docsURL, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck
		w.Write(page)
	})

	specBytes := apicontract.GetSpecBytes()
	r.Get(specYAMLURL, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck
		w.Write(specBytes)
	})

	r.Get(specJSONURL, func(w http.ResponseWriter, _ *http.Request) {
		b, err := specJSON()
		if err != nil {
			http.Error(w, "openapi spec unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck
		w.Write(b)
	})
}

func uiPage(title, specPath string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>%s</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.29.3/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.29.3/swagger-ui-bundle.js" crossorigin></script>
<script>
  window.onload = () => {
    window.ui = SwaggerUIBundle({
      url: '%s',
      dom_id: '#swagger-ui',
      deepLinking: true,
      persistAuthorization: true,
    });
  };
</script>
</body>
</html>
`, html.EscapeString(title), specPath)
}
