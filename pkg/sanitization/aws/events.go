package aws

import (
	"regexp"

	"github.com/klothoplatform/klotho-constructs/pkg/sanitization"
)

// EventBridgeRuleSanitizer returns a sanitized EventBridge rule name when applied.
var EventBridgeRuleSanitizer = sanitization.NewSanitizer(
	[]sanitization.Rule{
		// strip any characters not matching [a-zA-Z0-9._-]
		{
			Pattern:     regexp.MustCompile(`[^\w.-]+`),
			Replacement: "",
		},
	}, 64)
