package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"alfredoptarigan/vela/internal/models"
)

const resumeTemplate = `<div class="resume-paper font-serif" style="width: 100%; height: auto; padding: 20mm; background: white; box-sizing: border-box; overflow: hidden; display: block; margin: 0;">
<div class="text-center mb-4" data-section="header">
<h1 class="text-2xl font-bold uppercase tracking-widest text-slate-900 mb-0.5" style="margin: 0;">{{.Name}}</h1>
<p class="text-md font-semibold text-blue-700 mb-2 uppercase tracking-tight" style="margin: 0;">{{.Title}}</p>
<div class="flex flex-wrap justify-center items-center text-xs text-slate-600 border-t border-slate-200 pt-2 font-sans" data-role="contact">
{{- range $i, $item := .Contact}}{{if $i}}<span class="text-slate-300 mx-1" data-role="separator">|</span>{{end}}{{if $item.URL}}<a href="{{$item.URL}}" target="_blank" rel="noopener noreferrer" contenteditable="false" style="color: #2563eb; text-decoration: none; border-bottom: 1px solid #2563eb;">{{$item.Text}}</a>{{else}}<span>{{$item.Text}}</span>{{end}}{{end -}}
</div>
</div>
<div class="mb-4" data-section="summary">
<h2 class="text-sm font-bold text-slate-800 border-b border-slate-800 mb-1.5 uppercase tracking-wider">Professional Summary</h2>
<p class="text-slate-700 text-[12px] leading-snug">{{.Summary}}</p>
</div>
<div class="mb-4" data-section="experience">
<h2 class="text-sm font-bold text-slate-800 border-b border-slate-800 mb-2 uppercase tracking-wider">Professional Experience</h2>
{{- range .Experience}}
<div class="mb-3 last:mb-0" data-role="entry">
<div class="flex justify-between items-baseline mb-0.5" data-role="entry-header">
<h3 class="font-bold text-slate-900 text-[13px]">{{.Role}}</h3>
<span class="text-[11px] italic text-slate-500 font-sans">{{.Dates}}</span>
</div>
<p class="text-blue-700 font-bold text-[11px] mb-1 uppercase tracking-tighter">{{.Company}}</p>
<ul class="list-disc pl-4 text-[12px] text-slate-700 space-y-0.5 leading-tight">
{{- range .Bullets}}<li>{{.}}</li>{{end -}}
</ul>
</div>
{{- end}}
</div>
<div class="mb-4" data-section="skills">
<h2 class="text-sm font-bold text-slate-800 border-b border-slate-800 mb-2 uppercase tracking-wider">Skills &amp; Expertise</h2>
<div class="flex flex-col gap-1.5 font-sans">
<div class="flex items-start gap-2" data-role="technical">
<span class="text-[10px] font-bold text-slate-500 uppercase min-w-[100px] mt-0.5 whitespace-nowrap">Technical:</span>
<div class="flex flex-wrap gap-1">{{range .Technical}}<span class="bg-slate-50 text-slate-900 px-1.5 py-0.5 rounded border border-slate-200 text-[10px] font-medium leading-none whitespace-nowrap" data-role="pill">{{.}}</span>{{end}}</div>
</div>
<div class="flex items-start gap-2" data-role="soft">
<span class="text-[10px] font-bold text-slate-500 uppercase min-w-[100px] mt-0.5 whitespace-nowrap">Professional:</span>
<div class="flex flex-wrap gap-1">{{range .Soft}}<span class="bg-slate-50 text-slate-900 px-1.5 py-0.5 rounded border border-slate-200 text-[10px] font-medium leading-none whitespace-nowrap" data-role="pill">{{.}}</span>{{end}}</div>
</div>
<div class="flex items-start gap-2" data-role="languages">
<span class="text-[10px] font-bold text-slate-500 uppercase min-w-[100px] mt-0.5 whitespace-nowrap">Languages:</span>
<div class="flex flex-wrap gap-1">{{range $i, $lang := .Languages}}{{if $i}}<span class="text-slate-300 text-[10px] mx-1" data-role="separator">|</span>{{end}}<span class="text-[10px] text-slate-700">{{$lang}}</span>{{end}}</div>
</div>
</div>
</div>
<div class="mb-2" data-section="education">
<h2 class="text-sm font-bold text-slate-800 border-b border-slate-800 mb-1.5 uppercase tracking-wider">Education</h2>
{{- range .Education}}
<div class="flex justify-between items-baseline mb-1 last:mb-0" data-role="entry">
<div>
<p class="font-bold text-slate-900 text-[12px]">{{.Degree}}</p>
<p class="text-[11px] text-slate-700">{{.School}}</p>
</div>
<span class="text-[11px] italic text-slate-500 font-sans">{{.Year}}</span>
</div>
{{- end}}
</div>
</div>`

var resumeTmpl = template.Must(template.New("resume").Parse(resumeTemplate))

type contactItem struct {
	Text string
	URL  string
}

type resumeView struct {
	Name       string
	Title      string
	Contact    []contactItem
	Summary    string
	Experience []models.ResumeExperience
	Technical  []string
	Soft       []string
	Languages  []string
	Education  []models.ResumeEducation
}

// RenderResumeToHTML maps ResumeData onto the fixed résumé layout. Entries
// keep their input order; nothing is filtered or truncated apart from empty
// contact fields.
func RenderResumeToHTML(data models.ResumeData) (string, error) {
	info := data.PersonalInfo

	view := resumeView{
		Name:       info.Name,
		Title:      info.Title,
		Contact:    contactLine(info.Contact),
		Summary:    data.Summary,
		Experience: data.Experience,
		Technical:  data.Skills.Technical,
		Soft:       data.Skills.Soft,
		Languages:  data.Languages,
		Education:  data.Education,
	}

	var buf bytes.Buffer
	if err := resumeTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render resume: %w", err)
	}

	return buf.String(), nil
}

func contactLine(c models.Contact) []contactItem {
	var items []contactItem
	for _, field := range []string{c.Email, c.Phone, c.Location} {
		if strings.TrimSpace(field) != "" {
			items = append(items, contactItem{Text: field})
		}
	}

	for _, link := range c.Links {
		if strings.TrimSpace(link.URL) == "" {
			continue
		}
		label := link.Label
		if strings.TrimSpace(label) == "" {
			label = link.URL
		}
		items = append(items, contactItem{Text: label, URL: link.URL})
	}

	return items
}
