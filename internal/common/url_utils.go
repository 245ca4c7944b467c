package common

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ternarybob/arbor"
)

// ValidateSeedURL validates a crawler seed URL before it is handed to the
// browser crawler collaborator, and flags local/test hosts so they aren't
// mistaken for a real issuer investor-relations page.
// Returns: (isValid bool, isTestURL bool, warnings []string, err error)
func ValidateSeedURL(seedURL string, logger arbor.ILogger) (bool, bool, []string, error) {
	warnings := []string{}

	parsedURL, err := url.Parse(seedURL)
	if err != nil {
		return false, false, warnings, fmt.Errorf("invalid URL format: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return false, false, warnings, fmt.Errorf("invalid URL scheme: %s (expected http or https)", parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return false, false, warnings, fmt.Errorf("URL host is empty")
	}

	isTestURL := false
	host := strings.ToLower(parsedURL.Host)

	if strings.HasPrefix(host, "localhost") {
		isTestURL = true
		warnings = append(warnings, fmt.Sprintf("test URL detected: %s uses localhost", seedURL))
	}
	if strings.HasPrefix(host, "127.0.0.1") {
		isTestURL = true
		warnings = append(warnings, fmt.Sprintf("test URL detected: %s uses 127.0.0.1", seedURL))
	}
	if strings.HasPrefix(host, "0.0.0.0") {
		isTestURL = true
		warnings = append(warnings, fmt.Sprintf("test URL detected: %s uses 0.0.0.0", seedURL))
	}
	if strings.HasPrefix(host, "[::1]") {
		isTestURL = true
		warnings = append(warnings, fmt.Sprintf("test URL detected: %s uses IPv6 localhost", seedURL))
	}

	if logger != nil {
		logger.Debug().
			Str("seed_url", seedURL).
			Bool("is_test_url", isTestURL).
			Strs("warnings", warnings).
			Msg("seed URL validated")
	}

	return true, isTestURL, warnings, nil
}
