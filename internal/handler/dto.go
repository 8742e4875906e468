package handler

// Text may be empty; the model is asked to summarize whatever it is given.
type SummarizeTextRequest struct {
	Text     string `json:"text"`
	Model    string `json:"model"`
	MaxWords int    `json:"max_words" binding:"required,gt=0"`
}

type SummarizeArticleRequest struct {
	URL string `json:"url" binding:"required,url"`
}

type SentimentRequest struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

type SummaryResponse struct {
	ID      int64  `json:"id,omitempty"`
	Summary string `json:"summary"`
	Model   string `json:"model"`
	URL     string `json:"url,omitempty"`
}

type SentimentResponse struct {
	ID        int64  `json:"id,omitempty"`
	Sentiment string `json:"sentiment"`
	Model     string `json:"model"`
}

type AnalysisResponse struct {
	ID        int64  `json:"id"`
	JobID     string `json:"job_id,omitempty"`
	Kind      string `json:"kind"`
	SourceURL string `json:"source_url,omitempty"`
	// Publisher and PublishedAt are set for articles that came from a news feed.
	Publisher   string `json:"publisher,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
	Model       string `json:"model"`
	Input       string `json:"input,omitempty"`
	Output      string `json:"output"`
	Status      string `json:"status"`
	Error       string `json:"error,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type AnalysesResponse struct {
	Analyses []AnalysisResponse `json:"analyses"`
	Total    int                `json:"total"`
	Limit    int                `json:"limit"`
	Offset   int                `json:"offset"`
}
