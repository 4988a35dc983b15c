package dto

type MatchPreviewRequest struct {
	CategoryID     string   `json:"category_id" validate:"omitempty,uuid"`
	JobTypeID      string   `json:"job_type_id" validate:"omitempty,uuid"`
	RequiredSkills []string `json:"required_skills"`
}

type MatchBreakdownResponse struct {
	Skill    float64 `json:"skill"`
	Interest float64 `json:"interest"`
	Goal     float64 `json:"goal"`
}

type MatchResponse struct {
	Label     string                 `json:"label"`
	Value     float64                `json:"value"`
	Breakdown MatchBreakdownResponse `json:"breakdown"`
}
