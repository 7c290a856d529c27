package services

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"google.golang.org/genai"

	"alfredoptarigan/vela/internal/models"
)

//go:embed resume.schema.json
var resumeJSONSchema []byte

func stringSchema(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

func stringArraySchema(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: stringSchema(""), Description: description}
}

// ResumeSchema is the structured-output schema the provider enforces for
// résumé requests. It mirrors resume.schema.json.
func ResumeSchema() *genai.Schema {
	link := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"label": stringSchema("e.g. LinkedIn, Portfolio, GitHub"),
			"url":   stringSchema(""),
		},
		Required: []string{"label", "url"},
	}

	contact := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"email":    stringSchema(""),
			"phone":    stringSchema(""),
			"location": stringSchema(""),
			"links":    {Type: genai.TypeArray, Items: link},
		},
		Required: []string{"email", "phone", "location", "links"},
	}

	experience := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"role":    stringSchema(""),
			"company": stringSchema(""),
			"dates":   stringSchema(""),
			"bullets": stringArraySchema(""),
		},
		Required: []string{"role", "company", "dates", "bullets"},
	}

	education := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"degree": stringSchema(""),
			"school": stringSchema(""),
			"year":   stringSchema(""),
		},
		Required: []string{"degree", "school", "year"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"personalInfo": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":    stringSchema(""),
					"title":   stringSchema("Truthful title derived from the supplied work history"),
					"contact": contact,
				},
				Required: []string{"name", "title", "contact"},
			},
			"summary": stringSchema(""),
			"skills": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"technical": stringArraySchema("Curated top 8-10 hard skills matching JD"),
					"soft":      stringArraySchema("Curated top 4-5 soft skills matching JD"),
				},
				Required: []string{"technical", "soft"},
			},
			"languages":  stringArraySchema(""),
			"experience": {Type: genai.TypeArray, Items: experience},
			"education":  {Type: genai.TypeArray, Items: education},
		},
		Required: []string{"personalInfo", "summary", "skills", "languages", "experience", "education"},
	}
}

// ParseResumeData validates sanitized model output against the ResumeData
// schema and decodes it.
func ParseResumeData(content string) (*models.ResumeData, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(resumeJSONSchema),
		gojsonschema.NewStringLoader(content),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume JSON: %w", err)
	}

	if !result.Valid() {
		var msgs []string
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("resume JSON does not match schema: %s", strings.Join(msgs, "; "))
	}

	var data models.ResumeData
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume JSON: %w", err)
	}

	return &data, nil
}
