// Package render produces CV previews: an HTML page and a print-quality PDF
// generated from it.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/jonathan/cv-studio/internal/textblock"
	"github.com/jonathan/cv-studio/internal/types"
)

var pageTemplate = template.Must(template.New("cv").Funcs(template.FuncMap{
	"blocks":    blocksHTML,
	"skillList": skillList,
}).Parse(pageHTML))

// blocksHTML renders free text as paragraph and list markup. Consecutive
// list items share one <ul>. Content is escaped here because the result is
// injected as trusted HTML.
func blocksHTML(text string) template.HTML {
	blocks := textblock.Parse(text)
	var sb strings.Builder
	inList := false
	for _, b := range blocks {
		switch b.Kind {
		case textblock.ListItem:
			if !inList {
				sb.WriteString("<ul>")
				inList = true
			}
			sb.WriteString("<li>")
			sb.WriteString(template.HTMLEscapeString(b.Content))
			sb.WriteString("</li>")
		default:
			if inList {
				sb.WriteString("</ul>")
				inList = false
			}
			sb.WriteString("<p>")
			sb.WriteString(template.HTMLEscapeString(b.Content))
			sb.WriteString("</p>")
		}
	}
	if inList {
		sb.WriteString("</ul>")
	}
	return template.HTML(sb.String())
}

func skillList(skills []types.Skill) string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		if s.Name != "" {
			names = append(names, s.Name)
		}
	}
	return strings.Join(names, ", ")
}

// HTML renders the document as a self-contained preview page. Free-text
// fields are parsed into paragraph and list blocks so the preview shows the
// same structure an editor sees.
func HTML(doc types.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, doc.EnsureShape()); err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}
	return buf.Bytes(), nil
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.PersonalInfo.Name}}</title>
<style>
  @page { size: A4; margin: 18mm 16mm; }
  body { font-family: Georgia, "Times New Roman", serif; color: #1a1a1a; margin: 0; line-height: 1.45; }
  header { border-bottom: 2px solid #1a1a1a; padding-bottom: 8px; margin-bottom: 16px; }
  h1 { font-size: 26px; margin: 0; }
  .job-title { font-size: 15px; color: #444; margin: 2px 0 6px; }
  .contact { font-size: 12px; color: #555; }
  .contact span + span::before { content: " \2022  "; color: #999; }
  h2 { font-size: 14px; text-transform: uppercase; letter-spacing: 1px; border-bottom: 1px solid #ccc; padding-bottom: 2px; margin: 18px 0 8px; }
  .entry { break-inside: avoid; margin-bottom: 10px; }
  .entry-head { display: flex; justify-content: space-between; }
  .entry-title { font-weight: bold; font-size: 13px; }
  .entry-sub { font-size: 12px; color: #444; }
  .entry-dates { font-size: 12px; color: #666; white-space: nowrap; }
  .blocks p { margin: 4px 0; font-size: 12px; }
  .blocks ul { margin: 4px 0; padding-left: 18px; }
  .blocks li { font-size: 12px; margin: 2px 0; }
  .skills { font-size: 12px; }
</style>
</head>
<body>
<header>
  <h1>{{.PersonalInfo.Name}}</h1>
  {{if .PersonalInfo.JobTitle}}<div class="job-title">{{.PersonalInfo.JobTitle}}</div>{{end}}
  <div class="contact">
    {{if .PersonalInfo.Email}}<span>{{.PersonalInfo.Email}}</span>{{end}}
    {{if .PersonalInfo.Phone}}<span>{{.PersonalInfo.Phone}}</span>{{end}}
    {{if .PersonalInfo.LinkedIn}}<span>{{.PersonalInfo.LinkedIn}}</span>{{end}}
    {{if .PersonalInfo.GitHub}}<span>{{.PersonalInfo.GitHub}}</span>{{end}}
    {{if .PersonalInfo.Address}}<span>{{.PersonalInfo.Address}}</span>{{end}}
  </div>
</header>

{{if .Summary}}
<section>
  <h2>Summary</h2>
  <div class="blocks">{{blocks .Summary}}</div>
</section>
{{end}}

{{if .Experience}}
<section>
  <h2>Experience</h2>
  {{range .Experience}}
  <div class="entry">
    <div class="entry-head">
      <div>
        <div class="entry-title">{{.JobTitle}}</div>
        <div class="entry-sub">{{.Company}}</div>
      </div>
      <div class="entry-dates">{{.StartDate}}{{if .EndDate}} &ndash; {{.EndDate}}{{end}}</div>
    </div>
    {{if .Description}}<div class="blocks">{{blocks .Description}}</div>{{end}}
  </div>
  {{end}}
</section>
{{end}}

{{if .Education}}
<section>
  <h2>Education</h2>
  {{range .Education}}
  <div class="entry">
    <div class="entry-head">
      <div>
        <div class="entry-title">{{.Degree}}</div>
        <div class="entry-sub">{{.School}}</div>
      </div>
      <div class="entry-dates">{{.StartDate}}{{if .EndDate}} &ndash; {{.EndDate}}{{end}}</div>
    </div>
  </div>
  {{end}}
</section>
{{end}}

{{if .Skills}}
<section>
  <h2>Skills</h2>
  <div class="skills">{{skillList .Skills}}</div>
</section>
{{end}}

{{if .Projects}}
<section>
  <h2>Projects</h2>
  {{range .Projects}}
  <div class="entry">
    <div class="entry-head">
      <div>
        <div class="entry-title">{{.Title}}</div>
        <div class="entry-sub">{{.Role}}{{if .Context}} &middot; {{.Context}}{{end}}</div>
      </div>
    </div>
    {{if .Description}}<div class="blocks">{{blocks .Description}}</div>{{end}}
  </div>
  {{end}}
</section>
{{end}}
</body>
</html>`
