package web

import (
	"html/template"
	"io"

	"github.com/dustin/go-humanize"
	"igdebugger/pkg/render"
)

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"bytes": func(n int) string { return humanize.Bytes(uint64(n)) },
}).Parse(pageHTML))

func writePage(w io.Writer, v render.View) error {
	return pageTemplate.Execute(w, v)
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
  body { font-family: system-ui, sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; color: #1f2933; }
  form.query { display: flex; gap: .5rem; }
  form.query input[type=text] { flex: 1; padding: .5rem; border: 1px solid #cbd2d9; border-radius: 4px; }
  button { padding: .5rem 1rem; border: 0; border-radius: 4px; background: #2563eb; color: #fff; cursor: pointer; }
  button[disabled] { background: #9aa5b1; cursor: not-allowed; }
  .tabs { display: flex; gap: .5rem; margin: 1rem 0; }
  .tabs button { background: #e4e7eb; color: #1f2933; }
  .tabs button.active { background: #2563eb; color: #fff; }
  .error { background: #fde8e8; color: #9b1c1c; padding: .75rem; border-radius: 4px; margin: 1rem 0; }
  .notice-error { color: #c81e1e; }
  .notice-warning { color: #b45309; }
  .response { border: 1px solid #e4e7eb; border-radius: 4px; padding: 1rem; }
  .tiles { display: grid; grid-template-columns: repeat(auto-fill, minmax(8rem, 1fr)); gap: .5rem; }
  .tiles.circle { grid-template-columns: repeat(auto-fill, 4rem); }
  .tile { background: #f5f7fa; overflow: hidden; display: flex; align-items: center; justify-content: center; font-size: .75rem; color: #7b8794; text-align: center; }
  .tile img { width: 100%; height: 100%; object-fit: cover; }
  .tile.square { aspect-ratio: 1 / 1; }
  .tile.portrait { aspect-ratio: 9 / 16; }
  .tile.circle { width: 4rem; height: 4rem; border-radius: 50%; }
  pre { background: #f5f7fa; padding: 1rem; overflow: auto; font-size: .8rem; }
  .muted { color: #7b8794; font-weight: normal; font-size: .8rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>

<form class="query" method="post" action="/fetch">
  <input type="text" name="username" value="{{.Input}}" placeholder="{{.Placeholder}}" required pattern=".*\S.*" autofocus>
  <input type="hidden" name="endpoint" value="{{range .Tabs}}{{if .Active}}{{.Endpoint}}{{end}}{{end}}">
  <button type="submit"{{if .Button.Loading}} disabled{{end}}>{{.Button.Label}}</button>
</form>

<form method="post" action="/select" class="tabs">
  <input type="hidden" name="username" value="{{.Input}}">
  {{range .Tabs}}<button type="submit" name="select" value="{{.Endpoint}}"{{if .Active}} class="active"{{end}}>{{.Label}}</button>
  {{end}}
</form>

{{with .Error}}<div class="error" role="alert">{{.}}</div>{{end}}

{{with .Response}}
<section class="response">
  <h2>{{.Heading}}</h2>
  {{with .Preview}}
  <h3>{{.Heading}}</h3>
  <p>Count: {{.Count}}</p>
  {{with .Notice}}<p class="notice-{{.Severity}}">{{.Text}}</p>{{end}}
  {{if .Tiles}}
  <div class="tiles {{(index .Tiles 0).Shape}}">
    {{range .Tiles}}<div class="tile {{.Shape}}">{{if .HasImage}}<img src="{{.ImageURL}}" alt="{{.Alt}}" loading="lazy">{{else}}{{.Placeholder}}{{end}}</div>
    {{end}}
  </div>
  {{end}}
  {{end}}
  <h3>{{.JSONHeading}} <span class="muted">{{bytes .Size}}</span></h3>
  <pre>{{.JSON}}</pre>
</section>
{{end}}
</body>
</html>
`
