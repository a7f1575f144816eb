package standard

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	contentPolicyOnce sync.Once
	contentPolicy     *bluemonday.Policy
)

// sanitizeContent cleans editor supplied markup for text and button blocks.
func sanitizeContent(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return contentSanitizer().Sanitize(trimmed)
}

func contentSanitizer() *bluemonday.Policy {
	contentPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowStyles(
			"color", "background-color", "font-size", "font-family", "font-weight",
			"font-style", "line-height", "text-align", "text-decoration",
		).Globally()
		policy.AllowAttrs("target").OnElements("a")
		policy.AllowAttrs("class").Globally()
		contentPolicy = policy
	})
	return contentPolicy
}
