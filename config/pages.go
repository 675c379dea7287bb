package config

// Page identifies the view shown in the main panel
type Page int

const (
	PageHome Page = iota
	PageSettings
	PageAccounts
	PageEndpoints
)

func (p Page) String() string {
	switch p {
	case PageHome:
		return "home"
	case PageSettings:
		return "settings"
	case PageAccounts:
		return "accounts"
	case PageEndpoints:
		return "endpoints"
	}
	return "unknown"
}
