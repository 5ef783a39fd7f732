package models

// Session carries the caller's credentials into every settings store call.
type Session struct {
	Token string
}
