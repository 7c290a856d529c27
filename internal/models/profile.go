package models

import "github.com/google/uuid"

type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	Dates       string `json:"dates"`
	Description string `json:"description"`
}

type Education struct {
	ID     string `json:"id"`
	Degree string `json:"degree"`
	School string `json:"school"`
	Dates  string `json:"dates"`
}

type ExternalLink struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

// UserProfile is the user's factual career data as typed into the form.
// Skill and language lists are free text.
type UserProfile struct {
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Phone      string         `json:"phone"`
	Location   string         `json:"location"`
	Summary    string         `json:"summary"`
	HardSkills string         `json:"hardSkills"`
	SoftSkills string         `json:"softSkills"`
	Languages  string         `json:"languages"`
	Experience []Experience   `json:"experience"`
	Education  []Education    `json:"education"`
	Links      []ExternalLink `json:"links"`
}

// Clone returns a deep copy so snapshots never share list backing arrays.
func (p UserProfile) Clone() UserProfile {
	out := p
	out.Experience = append([]Experience{}, p.Experience...)
	out.Education = append([]Education{}, p.Education...)
	out.Links = append([]ExternalLink{}, p.Links...)
	return out
}

// EnsureIDs gives every list entry an identifier unique within its list.
// Entries with an empty or repeated id get a fresh UUID.
func (p UserProfile) EnsureIDs() UserProfile {
	out := p.Clone()

	seen := map[string]bool{}
	for i := range out.Experience {
		out.Experience[i].ID = uniqueID(out.Experience[i].ID, seen)
	}

	seen = map[string]bool{}
	for i := range out.Education {
		out.Education[i].ID = uniqueID(out.Education[i].ID, seen)
	}

	seen = map[string]bool{}
	for i := range out.Links {
		out.Links[i].ID = uniqueID(out.Links[i].ID, seen)
	}

	return out
}

func uniqueID(id string, seen map[string]bool) string {
	if id == "" || seen[id] {
		id = uuid.NewString()
	}
	seen[id] = true
	return id
}
