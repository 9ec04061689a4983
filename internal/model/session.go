package model

// Session is the bearer token and the user it was issued to. The two are
// always set and cleared together.
type Session struct {
	Token string
	User  *User
}

func (s Session) Valid() bool {
	return s.Token != "" && s.User != nil
}
