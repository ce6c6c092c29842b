package static

import (
	"embed"
	"strings"

	"github.com/valyala/fasthttp"
)

//go:embed index.html app.js
var embedded embed.FS

// Handler serves the embedded browser client. The client is stateless: it
// fetches /tasks and renders the JSON, all business logic stays server-side.
func Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		path := strings.TrimPrefix(string(ctx.Path()), "/")
		if path == "" {
			path = "index.html"
		}

		data, err := embedded.ReadFile(path)
		if err != nil {
			ctx.SetStatusCode(fasthttp.StatusNotFound)
			return
		}

		switch {
		case strings.HasSuffix(path, ".html"):
			ctx.Response.Header.SetContentType("text/html; charset=utf-8")
		case strings.HasSuffix(path, ".js"):
			ctx.Response.Header.SetContentType("application/javascript; charset=utf-8")
		default:
			ctx.Response.Header.SetContentType("application/octet-stream")
		}
		ctx.SetBody(data)
	}
}
