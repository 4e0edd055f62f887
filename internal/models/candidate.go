package models

// CandidateProfile is echoed back to the caller together with the extracted résumé text.
type CandidateProfile struct {
	Text       string `json:"text"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	LinkedIn   string `json:"linkedin"`
	Skills     string `json:"skills"`
	Experience string `json:"experience"`
}

type UploadResponse struct {
	Success    bool             `json:"success"`
	Profile    CandidateProfile `json:"profile"`
	Evaluation string           `json:"evaluation"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SearchResult struct {
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	LinkedIn string  `json:"linkedin"`
	Score    float32 `json:"score"`
}

type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}
