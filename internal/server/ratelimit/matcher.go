package ratelimit

import "strings"

// MatchEndpoint finds the rule for a request. Exact paths win over prefix rules
// (paths ending in "/"). GET /health is never limited.
func MatchEndpoint(path, method string, rules []EndpointConfig) (EndpointConfig, bool) {
	if path == "/health" && method == "GET" {
		return EndpointConfig{Path: path, Method: method}, true
	}

	for _, rule := range rules {
		if rule.Method == method && rule.Path == path {
			return rule, true
		}
	}
	for _, rule := range rules {
		if rule.Method == method && strings.HasSuffix(rule.Path, "/") && strings.HasPrefix(path, rule.Path) {
			return rule, true
		}
	}
	return EndpointConfig{}, false
}
