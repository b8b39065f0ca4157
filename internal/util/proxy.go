package util

import (
	"net/http"
	"net/url"
	"strings"
)

// NewProxyFunc creates a proxy function from explicit settings. With no
// explicit proxies it falls back to the standard environment variables.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	bypass := parseNoProxy(noProxy)

	return func(req *http.Request) (*url.URL, error) {
		if hostBypassesProxy(req.URL.Hostname(), bypass) {
			return nil, nil
		}
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

// parseNoProxy splits a comma-separated bypass list
func parseNoProxy(noProxy string) []string {
	if noProxy == "" {
		return nil
	}
	var hosts []string
	for _, part := range strings.Split(noProxy, ",") {
		if host := strings.ToLower(strings.TrimSpace(part)); host != "" {
			hosts = append(hosts, strings.TrimPrefix(host, "."))
		}
	}
	return hosts
}

// hostBypassesProxy reports whether host equals or is a subdomain of any
// bypass entry
func hostBypassesProxy(host string, bypass []string) bool {
	host = strings.ToLower(host)
	for _, entry := range bypass {
		if host == entry || strings.HasSuffix(host, "."+entry) {
			return true
		}
	}
	return false
}
