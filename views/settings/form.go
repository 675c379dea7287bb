package settings

import (
	"errors"
	"net/mail"
	"strings"

	"domestic-wallet/styles"

	"github.com/charmbracelet/huh"
)

// FormState holds the page-local preferences. It lives for the session only.
type FormState struct {
	DisplayName        string
	Email              string
	EmailNotifications bool
	PushNotifications  bool
	Theme              string
	Language           string
	TwoFactor          bool
	VerificationCode   string
	RecoveryEmail      string
}

// DefaultFormState returns the preferences a fresh session starts with
func DefaultFormState() FormState {
	return FormState{
		EmailNotifications: true,
		PushNotifications:  true,
		Theme:              styles.ThemeDark,
		Language:           "en",
	}
}

// Language is a selectable interface language
type Language struct {
	Code string
	Name string
}

// Languages lists the supported interface languages
var Languages = []Language{
	{Code: "en", Name: "English"},
	{Code: "es", Name: "Español"},
	{Code: "fr", Name: "Français"},
	{Code: "de", Name: "Deutsch"},
	{Code: "ja", Name: "日本語"},
}

// LanguageName returns the display name for code, or code itself when unknown
func LanguageName(code string) string {
	for _, l := range Languages {
		if l.Code == code {
			return l.Name
		}
	}
	return code
}

// ValidateEmail accepts an empty value or a single bare address
func ValidateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return errors.New("enter a valid email address")
	}
	domain := s[strings.LastIndex(s, "@")+1:]
	if !strings.Contains(domain, ".") {
		return errors.New("enter a valid email address")
	}
	return nil
}

// newForm builds the editor for tab, bound to draft
func newForm(tab Tab, draft *FormState) *huh.Form {
	var group *huh.Group

	switch tab {
	case TabAppearance:
		langs := make([]huh.Option[string], 0, len(Languages))
		for _, l := range Languages {
			langs = append(langs, huh.NewOption(l.Name, l.Code))
		}
		group = huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Dark", styles.ThemeDark),
					huh.NewOption("Light", styles.ThemeLight),
				).
				Value(&draft.Theme),
			huh.NewSelect[string]().
				Title("Language").
				Options(langs...).
				Value(&draft.Language),
		).Title("Appearance Settings").Description("Customize how the application looks")

	case TabSecurity:
		group = huh.NewGroup(
			huh.NewConfirm().
				Title("Two-Factor Authentication").
				Description("Add an extra layer of security to your account").
				Affirmative("On").
				Negative("Off").
				Value(&draft.TwoFactor),
			huh.NewInput().
				Title("Verification Code").
				Description("Verification is not available yet").
				Placeholder("000000").
				CharLimit(6).
				Value(&draft.VerificationCode).
				Validate(validateCode),
			huh.NewInput().
				Title("Recovery Email").
				Description("This email will be used for account recovery and security alerts").
				Placeholder("recovery@email.com").
				Value(&draft.RecoveryEmail).
				Validate(ValidateEmail),
		).Title("Security Settings").Description("Manage your account security")

	default:
		group = huh.NewGroup(
			huh.NewInput().
				Title("Display Name (Optional)").
				Placeholder("Enter a display name").
				CharLimit(50).
				Value(&draft.DisplayName),
			huh.NewInput().
				Title("Email Address").
				Description("Used for notifications and recovery").
				Placeholder("your@email.com").
				Value(&draft.Email).
				Validate(ValidateEmail),
			huh.NewConfirm().
				Title("Email Notifications").
				Affirmative("On").
				Negative("Off").
				Value(&draft.EmailNotifications),
			huh.NewConfirm().
				Title("Push Notifications").
				Affirmative("On").
				Negative("Off").
				Value(&draft.PushNotifications),
		).Title("Account Information").Description("Manage your account details and preferences")
	}

	form := huh.NewForm(group).WithTheme(huh.ThemeCatppuccin()).WithShowHelp(true)
	form.Init()
	return form
}

// validateCode accepts an empty value or six digits
func validateCode(s string) error {
	if s == "" {
		return nil
	}
	if len(s) != 6 || strings.Trim(s, "0123456789") != "" {
		return errors.New("enter the 6-digit code from your authenticator app")
	}
	return nil
}
