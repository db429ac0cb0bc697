package templates

// Form template - shown when no username can be resolved.

func GetFormTemplate() string {
	return formContent
}

var formContent = `{{define "content"}}
<h1>No user selected</h1>

<form class="form" method="get" action="/">
  <div>
    <label>
      <div>Show activities for user</div>
      <div><input name="user" placeholder="GitHub username" required></div>
    </label>
  </div>

  <div>
    <button type="submit">Go</button>
  </div>
</form>
{{end}}`
