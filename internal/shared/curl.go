// Utilities for parsing cURL commands copied from the Strapi admin panel.
package shared

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
)

var (
	curlHeaderRegex = regexp.MustCompile(`(?:-H|--header)\s+'([^']+)'|(?:-H|--header)\s+"([^"]+)"`)
	curlURLRegex    = regexp.MustCompile(`https?://[^\s'"]+`)
)

// CurlRequest represents the parts of a cURL command needed to configure the CMS client.
type CurlRequest struct {
	URL     string
	Headers map[string]string
}

// ParseCurlFile reads a .sh file containing a cURL command and extracts its request.
func ParseCurlFile(filepath string) (*CurlRequest, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

// ParseCurlCommand parses a cURL command string and extracts the target URL and headers.
//
// Header names are lower-cased; values are kept as written.
func ParseCurlCommand(data []byte) (*CurlRequest, error) {
	curlCmd := string(data)
	curlCmd = strings.ReplaceAll(curlCmd, "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	headers := make(map[string]string)
	for _, match := range curlHeaderRegex.FindAllStringSubmatch(curlCmd, -1) {
		headerLine := match[1]
		if headerLine == "" {
			headerLine = match[2]
		}

		key, value, ok := strings.Cut(headerLine, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		headers[strings.ToLower(key)] = strings.TrimSpace(value)
	}

	target := curlURLRegex.FindString(curlHeaderRegex.ReplaceAllString(curlCmd, " "))
	if len(headers) == 0 && target == "" {
		return nil, fmt.Errorf("%w: no headers or URL found in curl command", ErrInvalidInput)
	}

	return &CurlRequest{URL: target, Headers: headers}, nil
}

// BearerToken returns the token from an "Authorization: Bearer <token>" header.
func (c *CurlRequest) BearerToken() (string, error) {
	auth, ok := c.Headers["authorization"]
	if !ok {
		return "", fmt.Errorf("%w: no authorization header", ErrMissingCredentials)
	}

	scheme, token, found := strings.Cut(strings.TrimSpace(auth), " ")
	if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("%w: authorization header is not a bearer token", ErrInvalidCredentials)
	}
	return strings.TrimSpace(token), nil
}

// BaseURL returns the scheme and host of the copied request, e.g. https://cms.example.com
func (c *CurlRequest) BaseURL() string {
	if c.URL == "" {
		return ""
	}
	u, err := url.Parse(c.URL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
