package cli

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/robfig/cron/v3"
)

var indexNowKeyPattern = regexp.MustCompile(`^[a-zA-Z0-9-]{8,128}$`)

// validateCronExpression accepts standard five-field expressions and descriptors like @daily
func validateCronExpression(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}

	if _, err := cron.ParseStandard(input); err != nil {
		return "", fmt.Errorf("invalid cron expression: %s (%v)", input, err)
	}
	return input, nil
}

// validateBaseURL requires an absolute http or https URL
func validateBaseURL(input string) (string, error) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "http://") && !strings.HasPrefix(input, "https://") {
		return "", fmt.Errorf("URL must start with http:// or https://")
	}

	u, err := url.Parse(input)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid URL: %s", input)
	}
	return strings.TrimRight(input, "/"), nil
}

// validateIndexNowKey checks the key format IndexNow accepts. Empty means disabled.
func validateIndexNowKey(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}
	if !indexNowKeyPattern.MatchString(input) {
		return "", fmt.Errorf("key must be 8-128 characters of letters, digits or dashes")
	}
	return input, nil
}
