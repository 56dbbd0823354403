package dto

type CorrectTextResponse struct {
	CorrectedText string `json:"corrected_text"`
}

type EvaluateTextResponse struct {
	Feedback string `json:"feedback"`
}
