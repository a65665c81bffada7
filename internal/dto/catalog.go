package dto

// CourseSummary is a catalog search hit without section detail.
type CourseSummary struct {
	Code    string  `json:"code"`
	Title   string  `json:"title"`
	Credits float64 `json:"credits"`
}

// PrerequisiteStatus reports whether a completed-course history covers a
// course's prerequisites. Report-only: nothing is removed from a request on
// the caller's behalf.
type PrerequisiteStatus struct {
	CourseCode    string   `json:"courseCode"`
	Prerequisites []string `json:"prerequisites"`
	Missing       []string `json:"missing,omitempty"`
	Satisfied     bool     `json:"satisfied"`
}
