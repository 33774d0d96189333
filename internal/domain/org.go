package domain

type OrgID string

// Session is the portal context every workflow receives explicitly. There is
// no ambient org identifier anywhere else in the module.
type Session struct {
	Org      OrgID
	Email    string
	APIBase  string
	TokenRef string
	Demo     bool
}

func (s Session) LoggedIn() bool {
	return s.Org != "" && s.TokenRef != ""
}
