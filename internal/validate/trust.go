package validate

import (
	"net/url"
	"strings"

	"github.com/ppiankov/coldtrail/internal/model"
)

// TrustClassifier assigns source hosts to trust tiers. Tiers are reported
// alongside extracted records but never gate extraction or matching.
type TrustClassifier struct {
	config   model.TrustConfig
	official map[string]bool
	news     map[string]bool
}

// NewTrustClassifier creates a classifier from configuration
func NewTrustClassifier(cfg model.TrustConfig) *TrustClassifier {
	classifier := &TrustClassifier{
		config:   cfg,
		official: make(map[string]bool),
		news:     make(map[string]bool),
	}

	// Build official domain map
	for _, domain := range cfg.OfficialDomains {
		classifier.official[strings.ToLower(domain)] = true
	}

	// Build news domain map
	for _, domain := range cfg.NewsDomains {
		classifier.news[strings.ToLower(domain)] = true
	}

	return classifier
}

// Classify maps a URL to a trust tier
func (c *TrustClassifier) Classify(rawURL string) model.TrustTier {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return model.TrustUnknown
	}

	host := parsed.Host

	// Remove port from host
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}
	host = strings.ToLower(host)

	// Check explicit per-host overrides from config
	if c.config.DomainMap != nil {
		if tierStr, ok := c.config.DomainMap[host]; ok {
			return parseTrustTier(tierStr)
		}
	}

	// Check official domains, exact or as a parent domain
	if matchesDomain(host, c.official) {
		return model.TrustOfficial
	}

	// Check news domains
	if matchesDomain(host, c.news) {
		return model.TrustNews
	}

	// Government and military hosts count as official even when unlisted
	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".mil") {
		return model.TrustOfficial
	}

	return model.TrustUnknown
}

// matchesDomain reports whether host equals or is a subdomain of any entry
func matchesDomain(host string, domains map[string]bool) bool {
	if domains[host] {
		return true
	}
	for domain := range domains {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// parseTrustTier converts a config tier string to a TrustTier
func parseTrustTier(tier string) model.TrustTier {
	switch strings.ToLower(tier) {
	case "official":
		return model.TrustOfficial
	case "news":
		return model.TrustNews
	default:
		return model.TrustUnknown
	}
}
