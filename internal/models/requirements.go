package models

// MajorRequirements lists the catalog codes a major expects, split into
// required and elective pools. Loaded from the requirements store; never
// consulted by the combination search itself.
type MajorRequirements struct {
	Major     string   `json:"major"`
	Required  []string `json:"required"`
	Electives []string `json:"electives"`
}
