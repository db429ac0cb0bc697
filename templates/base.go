package templates

// Base template - shared structure for all HTML pages.
// Page templates define the "content" block.

func GetBaseTemplates() string {
	return baseTemplate + headerTemplate + footerTemplate
}

var baseTemplate = `{{define "base"}}<!DOCTYPE html>
<html lang="en" class="{{.Theme.Class}}{{if .FollowOS}} follow-os{{end}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <meta name="color-scheme" content="light dark">
  <title>{{.Title}}</title>
  {{- if .FollowOS}}
  <link rel="icon" type="image/svg+xml" href="{{.Theme.LightFaviconURL}}" media="(prefers-color-scheme: light)">
  <link rel="icon" type="image/svg+xml" href="{{.Theme.DarkFaviconURL}}" media="(prefers-color-scheme: dark)">
  {{- else}}
  <link rel="icon" type="image/svg+xml" href="{{.Theme.FaviconURL}}" id="favicon">
  {{- end}}
  <link rel="stylesheet" href="/static/style.css">
</head>
<body>
  <div class="container">
    {{template "header" .}}
    <main id="target">
      {{template "content" .}}
    </main>
    {{template "footer" .}}
  </div>
</body>
</html>{{end}}
`

var headerTemplate = `{{define "header"}}
<header>
  <form method="POST" action="/theme" class="theme-form">
    <input type="hidden" name="return" value="{{.ReturnPath}}">
    {{- if .FollowOS}}
    <button type="submit" name="action" value="dark" class="theme-toggle os-light" title="Switch to dark-mode">🌛</button>
    <button type="submit" name="action" value="light" class="theme-toggle os-dark" title="Switch to light-mode">🌞</button>
    {{- else}}
    <button type="submit" name="action" value="toggle" class="theme-toggle" title="Switch to {{.Theme.OtherClass}}">{{.Theme.ToggleGlyph}}</button>
    {{- end}}
    {{if .ExplicitTheme}}<button type="submit" name="action" value="reset" class="theme-reset" title="Follow the system setting">Auto</button>{{end}}
  </form>
</header>
{{end}}`

var footerTemplate = `{{define "footer"}}
<footer>
  <a href="/">Pick another user</a>
</footer>
{{end}}`
