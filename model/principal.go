package model

// Principal is the logged-in user a session refers to.
type Principal struct {
	SessionID string `json:"sid"`
	UserID    uint64 `json:"uid"`
	UserName  string `json:"username"`
}
