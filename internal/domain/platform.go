package domain

type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
)

func (p Platform) Scope() Scope {
	return Scope(p)
}

func (p Platform) Title() string {
	switch p {
	case PlatformInstagram:
		return "Instagram"
	case PlatformFacebook:
		return "Facebook"
	default:
		return string(p)
	}
}

// ParsePlatform accepts the lower-case platform names used in configuration.
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(s) {
	case PlatformInstagram, PlatformFacebook:
		return Platform(s), true
	default:
		return "", false
	}
}

// Scope is what a token is valid for.
type Scope string

const (
	ScopeStorage   Scope = "storage"
	ScopeInstagram Scope = Scope(PlatformInstagram)
	ScopeFacebook  Scope = Scope(PlatformFacebook)
)
