package templates

// Activity template - a user's event feed with pagination above and below.

func GetActivityTemplate() string {
	return activityContent + paginationTemplate
}

var activityContent = `{{define "content"}}
<div class="activities">
  <h1><a href="{{.UserURL}}">{{.Username}}</a>’s GitHub Activity Log</h1>
  {{if .Error}}
  <div class="error">Error: {{.Error}}</div>
  {{else}}
  <section class="section">
    {{template "pagination" .}}
    <ul>
    {{range .Items}}
      <li class="activity{{if .Failed}} failed{{end}}">
        <details>
          <summary>
            {{.Heading}}{{if .Stamp.Full}} <span title="{{.Stamp.Full}}" class="ts">{{.Stamp.Pretty}}</span>{{end}}
          </summary>
          {{.Details}}
          <pre>{{.Raw}}</pre>
        </details>
      </li>
    {{else}}
      <li class="empty">No public activity on this page.</li>
    {{end}}
    </ul>
    {{template "pagination" .}}
  </section>
  {{end}}
</div>
{{end}}`

var paginationTemplate = `{{define "pagination"}}
<div class="pagination">
  {{range .Pagination}}{{if .Label}}<span>{{.Text}}</span>{{else if .Href}}<a href="{{.Href}}" class="blip" title="Page {{.Page}}">{{.Text}}</a>{{else}}<span class="blip">{{.Text}}</span>{{end}}
  {{end}}
</div>
{{end}}`
