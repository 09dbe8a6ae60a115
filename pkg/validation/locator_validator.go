package validation

import (
	"net/url"
	"strings"

	apperrors "go-ocr-compare/internal/errors"
)

// LocatorValidator checks image locators before any fetch is attempted.
type LocatorValidator struct {
	allowedSchemes []string
	allowedHosts   []string
}

// NewLocatorValidator creates a validator accepting every scheme the loader
// can dispatch on.
func NewLocatorValidator() *LocatorValidator {
	return &LocatorValidator{
		allowedSchemes: []string{"file", "http", "https", "az", "gs"},
		allowedHosts:   []string{}, // empty means all hosts allowed
	}
}

// NewLocatorValidatorWithOptions creates a validator with custom scheme and
// host restrictions.
func NewLocatorValidatorWithOptions(schemes []string, hosts []string) *LocatorValidator {
	return &LocatorValidator{
		allowedSchemes: schemes,
		allowedHosts:   hosts,
	}
}

// ValidateLocator validates if the locator is acceptable for image loading.
// Bare paths count as local files.
func (v *LocatorValidator) ValidateLocator(locator string) error {
	if strings.TrimSpace(locator) == "" {
		return apperrors.NewValidationError("locator cannot be empty", nil)
	}

	if !strings.Contains(locator, "://") {
		if !v.isSchemeAllowed("file") {
			return apperrors.NewValidationError("local file locators not allowed", nil)
		}
		return nil
	}

	parsed, err := url.Parse(locator)
	if err != nil {
		return apperrors.NewValidationError("invalid locator format", err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if !v.isSchemeAllowed(scheme) {
		return apperrors.NewValidationError("locator scheme not allowed: "+scheme, nil)
	}

	if scheme == "http" || scheme == "https" {
		if parsed.Host == "" {
			return apperrors.NewValidationError("URL must have a valid host", nil)
		}
		if len(v.allowedHosts) > 0 && !v.isHostAllowed(parsed.Host) {
			return apperrors.NewValidationError("URL host not allowed", nil)
		}
	}

	return nil
}

func (v *LocatorValidator) isSchemeAllowed(scheme string) bool {
	for _, allowed := range v.allowedSchemes {
		if scheme == allowed {
			return true
		}
	}
	return false
}

// isHostAllowed checks if the URL host is in the allowed list
// Returns true if no host restrictions are set (empty allowedHosts)
func (v *LocatorValidator) isHostAllowed(host string) bool {
	if len(v.allowedHosts) == 0 {
		return true
	}
	for _, allowed := range v.allowedHosts {
		if host == allowed {
			return true
		}
	}
	return false
}
