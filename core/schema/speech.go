package schema

// TTSRequest is the body of POST /api/text_to_speech.
type TTSRequest struct {
	Text   string `json:"text"`
	APIKey string `json:"api_key"`
}

// PitchPoint is one voiced sample of a pitch contour.
type PitchPoint struct {
	Time      float64 `json:"time"`
	Frequency float64 `json:"frequency"`
}

// AlignmentSpan is one aligned token. EndFrame is exclusive.
type AlignmentSpan struct {
	Token      string  `json:"token"`
	StartFrame int     `json:"start_frame"`
	EndFrame   int     `json:"end_frame"`
	Score      float64 `json:"score"`
}
