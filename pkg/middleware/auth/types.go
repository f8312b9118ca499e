package auth

// Principal is the authenticated caller: a subject plus the capability
// tokens the screen gate evaluates.
type Principal struct {
	Subject      string   `json:"subject"`
	Capabilities []string `json:"capabilities"`
	Provider     string   `json:"provider"`
}

func (p Principal) Authenticated() bool { return p.Subject != "" }
