package aws

import (
	"regexp"

	"github.com/klothoplatform/klotho-constructs/pkg/sanitization"
)

// FifoSuffix must terminate the name of every FIFO queue.
const FifoSuffix = ".fifo"

// SqsQueueSanitizer returns a sanitized queue name (without the FIFO suffix) when applied.
var SqsQueueSanitizer = sanitization.NewSanitizer(
	[]sanitization.Rule{
		// strip any characters not matching [a-zA-Z0-9-_]
		{
			Pattern:     regexp.MustCompile(`[^\w-]+`),
			Replacement: "",
		},
	}, 80)

// SqsQueueName sanitizes name and, for FIFO queues, appends the ".fifo" suffix while
// keeping the whole name within the 80 character limit.
func SqsQueueName(name string, fifo bool) string {
	name = SqsQueueSanitizer.Apply(name)
	if !fifo {
		return name
	}
	if limit := SqsQueueSanitizer.MaxLength - len(FifoSuffix); len(name) > limit {
		name = name[:limit]
	}
	return name + FifoSuffix
}
