package httpapi

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"
	"sync"
)

const openAPIPath = "/openapi.yaml"

//go:embed openapi.yaml
var openAPISpec []byte

var docsTemplate = template.Must(template.New("docs").Parse(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <title>{{.Title}}</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: {{.SpecURL}},
        dom_id: '#swagger-ui',
        defaultModelsExpandDepth: 0,
        presets: [SwaggerUIBundle.presets.apis],
      });
    </script>
  </body>
</html>
`))

// docsPage renders once; the page has no per-request content.
var docsPage = sync.OnceValues(func() ([]byte, error) {
	var buf bytes.Buffer
	err := docsTemplate.Execute(&buf, struct {
		Title   string
		SpecURL string
	}{Title: "Football Scout API", SpecURL: openAPIPath})
	return buf.Bytes(), err
})

func (h *Handler) OpenAPI(w http.ResponseWriter, r *http.Request) {
	_, span := startHandlerSpan(r, "OpenAPI")
	defer span.End()

	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	_, _ = w.Write(openAPISpec)
}

func (h *Handler) SwaggerUI(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "SwaggerUI")
	defer span.End()

	page, err := docsPage()
	if err != nil {
		h.logger.ErrorContext(ctx, "render docs page failed", "error", err)
		writeInternalError(ctx, w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}
