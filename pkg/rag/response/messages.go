package response

import (
	"fmt"
	"strings"

	"rag-chat-be/internal/constant"
)

// IsGreeting reports an exact, case-insensitive match against the greeting list.
func IsGreeting(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, g := range constant.Greetings {
		if q == g {
			return true
		}
	}
	return false
}

func VideoIngested(title string) string {
	return fmt.Sprintf(constant.VideoIngestedReply, title)
}

func PDFIngested(filename string) string {
	return fmt.Sprintf(constant.PDFIngestedReply, filename)
}
