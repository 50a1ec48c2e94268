package domain

type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session is the explicit sign-in context handed to whatever needs the
// current user. The zero value is anonymous.
type Session struct {
	User    *User
	TokenID string
}

func AnonymousSession() Session {
	return Session{}
}

func (s Session) IsAuthenticated() bool {
	return s.User != nil
}

// Clear returns the session to anonymous.
func (s *Session) Clear() {
	s.User = nil
	s.TokenID = ""
}

// Profile is the editable contact card shown on the profile screen.
type Profile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Bio      string `json:"bio,omitempty"`
}
