package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeRepositoryURL reduces a git remote to a comparable "host/path" form.
// Credentials, scheme, port, a trailing ".git" and trailing slashes are removed
// and the result is lower-cased, so scp-style and URL-style remotes of the same
// repository compare equal.
func NormalizeRepositoryURL(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}

	var host, path string
	if strings.Contains(value, "://") {
		parsed, err := url.Parse(value)
		if err != nil {
			return fallbackNormalize(value)
		}
		host = parsed.Hostname()
		path = parsed.Path
	} else if at := strings.Index(value, "@"); at >= 0 || strings.Contains(value, ":") {
		// scp-like syntax: [user@]host:path
		rest := value
		if at >= 0 {
			rest = value[at+1:]
		}
		colon := strings.Index(rest, ":")
		if colon < 0 {
			return fallbackNormalize(rest)
		}
		host = rest[:colon]
		path = rest[colon+1:]
	} else {
		return fallbackNormalize(value)
	}

	return joinHostPath(host, path)
}

func joinHostPath(host, path string) string {
	path = strings.Trim(strings.ToLower(path), "/")
	path = strings.TrimSuffix(path, ".git")
	path = strings.TrimRight(path, "/")
	return strings.ToLower(host) + "/" + path
}

func fallbackNormalize(value string) string {
	value = strings.TrimRight(strings.ToLower(value), "/")
	value = strings.TrimSuffix(value, ".git")
	return strings.TrimRight(value, "/")
}

// SameRepository reports whether two remotes point at the same repository.
func SameRepository(a, b string) bool {
	na, nb := NormalizeRepositoryURL(a), NormalizeRepositoryURL(b)
	return na != "" && na == nb
}

// CredentialedCloneURL embeds username and token into an http(s) repository URL.
func CredentialedCloneURL(repositoryURI, username, token string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(repositoryURI))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedCloneURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", ErrUnsupportedCloneURL
	}
	if token == "" {
		parsed.User = url.User(username)
	} else {
		parsed.User = url.UserPassword(username, token)
	}
	return parsed.String(), nil
}

// RedactURL hides any password embedded in a URL.
func RedactURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.User == nil {
		return raw
	}
	return parsed.Redacted()
}

// RepositoryDirName is the folder name git would pick when cloning uri.
func RepositoryDirName(uri string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(uri), "/")
	trimmed = strings.TrimSuffix(trimmed, ".git")
	if idx := strings.LastIndexAny(trimmed, "/:"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	if trimmed == "" {
		return "repository"
	}
	return trimmed
}
