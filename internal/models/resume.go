package models

// ResumeData is the structured résumé returned by the model. Every field is
// required by the response schema; arrays may be empty but are present.
type ResumeData struct {
	PersonalInfo PersonalInfo       `json:"personalInfo"`
	Summary      string             `json:"summary"`
	Skills       Skills             `json:"skills"`
	Languages    []string           `json:"languages"`
	Experience   []ResumeExperience `json:"experience"`
	Education    []ResumeEducation  `json:"education"`
}

type PersonalInfo struct {
	Name    string  `json:"name"`
	Title   string  `json:"title"`
	Contact Contact `json:"contact"`
}

type Contact struct {
	Email    string       `json:"email"`
	Phone    string       `json:"phone"`
	Location string       `json:"location"`
	Links    []ResumeLink `json:"links"`
}

type ResumeLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type Skills struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
}

type ResumeExperience struct {
	Role    string   `json:"role"`
	Company string   `json:"company"`
	Dates   string   `json:"dates"`
	Bullets []string `json:"bullets"`
}

type ResumeEducation struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Year   string `json:"year"`
}
