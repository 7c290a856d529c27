package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"alfredoptarigan/vela/internal/models"
)

const (
	AuthorizedLinksHeader = "AUTHORIZED LINKS"
	NoLinksDirective      = "NO LINKS AUTHORIZED: the user supplied no links. Do not output any URL, profile link or placeholder such as linkedin.com/in/yourname. The contact links list must be empty."

	DefaultPolishInstruction = "Improve tone and clarity."

	responseMIMETypeJSON = "application/json"
)

const systemInstruction = `You are a Senior Resume Writer and Career Coach.

NO FABRICATION: treat everything the user provides as a database of facts. Never invent employers, job titles, dates, degrees, certifications, metrics, skills or links. You may only rephrase and select what is supplied.

When rewriting resumes:
1. Analyze the Job Description to identify the top 3-5 required skills and keywords.
2. Rewrite experience bullets with the STAR method (Situation, Task, Action, Result), keeping every fact true to the source.
3. Favour metrics and quantifiable achievements that the user actually reported.
4. SELECT, do not dump: choose only the 8-10 hard skills and 4-5 soft skills from the user's facts that match the job.
5. Put the most relevant items first and use high-impact action verbs.

When writing cover letters:
Avoid robotic intros. Be direct, enthusiastic and professional, connecting the user's facts to the company's needs. Use semantic HTML.

OUTPUT FORMAT: return raw text or markdown only. Never wrap the output in code fences (no ` + "```" + `), and never prefix it with ` + "```html" + ` or any language tag.`

const resumeTaskTemplate = `Tailor a high-impact resume for this job description.

Job Description:
%s

Instructions:
- Return a single JSON object that conforms exactly to the response schema. Every field is required; use empty strings or empty arrays when the facts are missing.
- personalInfo.title: derive it truthfully from the user's real work history. You may reword a held title for clarity, but never claim a role the user has not held.
- summary: honestly bridge the user's real background to the target job. When their field differs from the job, say how their actual experience transfers instead of pretending it matches.
- skills.technical: 8-10 hard skills and skills.soft: 4-5 soft skills, chosen only from the supplied facts and worded like the job ad where truthful.
- experience: keep one entry per real position, in the order given, with STAR-style bullets.`

const coverLetterTaskTemplate = `Write a persuasive, high-level cover letter for the following job.

Job Description:
%s

Instructions:
- Return a professional cover letter in semantic HTML (paragraphs, lists, emphasis).
- Direct impact, enthusiastic tone.
- Use only facts present in the user's material. Do not fabricate achievements, employers or skills.
- Do NOT use markdown code fences.`

const polishSystemInstruction = `You are an executive editor. Your goal is to refine text for clarity, impact and professionalism while keeping the provided HTML structure byte-for-byte identical outside of text nodes.

NO FABRICATION: do not add facts, metrics, skills or links that are not already present.

OUTPUT FORMAT: return the HTML only. Never wrap it in code fences.`

const polishTemplate = `Review the following document content (in HTML format).

Job Context:
%s

Content to Refine:
%s

User Instruction:
%s

Rules:
1. Rewrite only the text inside the existing elements.
2. Preserve every tag, attribute and the nesting exactly as given.
3. Correct grammar and keep the tone professional and impactful.
4. DO NOT change the core facts or metrics, and do not add new facts, skills or links.
5. Return the same HTML structure with polished text content. Do not add markdown backticks.`

// GenerationRequest is the exact payload of one model call.
type GenerationRequest struct {
	Task     models.DocumentType
	Contents []*genai.Content
	Config   *genai.GenerateContentConfig
}

// Parts returns the user parts in order.
func (r *GenerationRequest) Parts() []*genai.Part {
	var parts []*genai.Part
	for _, c := range r.Contents {
		parts = append(parts, c.Parts...)
	}
	return parts
}

// Texts returns the text of every text part in order.
func (r *GenerationRequest) Texts() []string {
	var texts []string
	for _, p := range r.Parts() {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return texts
}

type Temperatures struct {
	Resume      float32
	CoverLetter float32
	Polish      float32
}

func DefaultTemperatures() Temperatures {
	return Temperatures{Resume: 0.3, CoverLetter: 0.7, Polish: 0.2}
}

type PromptBuilder struct {
	temperatures Temperatures
}

func NewPromptBuilder(temperatures Temperatures) *PromptBuilder {
	return &PromptBuilder{temperatures: temperatures}
}

// BuildGenerationRequest assembles source parts, the links directive and the
// task instruction, in that order.
func (pb *PromptBuilder) BuildGenerationRequest(
	task models.DocumentType,
	jobDescription string,
	source models.ProfileSource,
	links []models.ExternalLink,
) (*GenerationRequest, error) {
	if !task.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidDocumentType, task)
	}

	var parts []*genai.Part

	switch {
	case source.IsDocument():
		parts = append(parts,
			genai.NewPartFromBytes(source.Document.Data, source.Document.MimeType),
			genai.NewPartFromText(documentMarker(source.Document)),
		)
	case source.Profile != nil:
		profileJSON, err := json.Marshal(source.Profile)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize profile: %w", err)
		}
		parts = append(parts, genai.NewPartFromText("User Detailed Profile: "+string(profileJSON)))
	default:
		return nil, fmt.Errorf("%w: no profile source", models.ErrNotReady)
	}

	linksPart, err := buildLinksDirective(links)
	if err != nil {
		return nil, err
	}
	parts = append(parts, linksPart)

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	}

	if task == models.DocumentResume {
		parts = append(parts, genai.NewPartFromText(fmt.Sprintf(resumeTaskTemplate, jobDescription)))
		config.Temperature = genai.Ptr(pb.temperatures.Resume)
		config.ResponseMIMEType = responseMIMETypeJSON
		config.ResponseSchema = ResumeSchema()
	} else {
		parts = append(parts, genai.NewPartFromText(fmt.Sprintf(coverLetterTaskTemplate, jobDescription)))
		config.Temperature = genai.Ptr(pb.temperatures.CoverLetter)
	}

	return &GenerationRequest{
		Task:     task,
		Contents: []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		Config:   config,
	}, nil
}

// BuildPolishRequest asks for a text-only rewrite of existing markup.
func (pb *PromptBuilder) BuildPolishRequest(content, jobDescription, instruction string) *GenerationRequest {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		instruction = DefaultPolishInstruction
	}

	prompt := fmt.Sprintf(polishTemplate, jobDescription, content, instruction)

	return &GenerationRequest{
		Contents: genai.Text(prompt),
		Config: &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(polishSystemInstruction, genai.RoleUser),
			Temperature:       genai.Ptr(pb.temperatures.Polish),
		},
	}
}

type authorizedLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// buildLinksDirective lists the only links the model may output. Profile ids
// are dropped so only label and URL reach the model.
func buildLinksDirective(links []models.ExternalLink) (*genai.Part, error) {
	var authorized []authorizedLink
	for _, l := range links {
		if strings.TrimSpace(l.URL) == "" {
			continue
		}
		authorized = append(authorized, authorizedLink{Label: l.Label, URL: l.URL})
	}

	if len(authorized) == 0 {
		return genai.NewPartFromText(NoLinksDirective), nil
	}

	linksJSON, err := json.Marshal(authorized)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize links: %w", err)
	}

	return genai.NewPartFromText(fmt.Sprintf(
		"%s: use these links verbatim and no others. %s", AuthorizedLinksHeader, linksJSON,
	)), nil
}

func documentMarker(doc *models.UploadedDocument) string {
	switch doc.MimeType {
	case models.MimeTypePDF:
		if doc.PageCount > 0 {
			return fmt.Sprintf("Attached is the user's current resume as a PDF file (%d pages).", doc.PageCount)
		}
		return "Attached is the user's current resume as a PDF file."
	case models.MimeTypeText:
		return "Attached is the text of the user's current resume."
	default:
		return fmt.Sprintf("Attached is the user's current resume (%s).", doc.MimeType)
	}
}
