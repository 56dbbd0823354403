package dto

// ProcessDocumentRequest carries a base64 encoded document.
type ProcessDocumentRequest struct {
	FileContent string `json:"fileContent"`
	FileName    string `json:"fileName"`
}

type CorrectTextRequest struct {
	Text string `json:"text"`
}

type EvaluateTextRequest struct {
	Text     string `json:"text"`
	Question string `json:"question"`
}

// LoginRequest is posted by the login form.
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// RegisterRequest is posted by the register form.
type RegisterRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}
