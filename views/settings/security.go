package settings

import (
	"fmt"
	"net/url"
	"os"
	"runtime"
	"strings"

	"github.com/mdp/qrterminal/v3"
)

// Device is a session shown under Connected Devices
type Device struct {
	Name       string
	Platform   string
	LastActive string
	Current    bool
}

// CurrentDevice describes the machine this session runs on
func CurrentDevice() Device {
	name, err := os.Hostname()
	if err != nil || name == "" {
		name = "Current Device"
	}
	return Device{
		Name:       name,
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
		LastActive: "Just now",
		Current:    true,
	}
}

// setupURI is the enrollment link encoded in the two-factor QR code.
// Enrollment is not implemented, so the secret is a fixed placeholder.
func setupURI(address string) string {
	label := url.PathEscape("Domestic Wallet:" + address)
	return fmt.Sprintf("otpauth://totp/%s?secret=PLACEHOLDER&issuer=%s", label, url.QueryEscape("Domestic Wallet"))
}

// TwoFactorQR renders the enrollment QR code for address with half blocks
func TwoFactorQR(address string) string {
	var b strings.Builder
	qrterminal.GenerateHalfBlock(setupURI(address), qrterminal.L, &b)
	return strings.TrimRight(b.String(), "\n")
}
