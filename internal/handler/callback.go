// Package handler provides Telegram bot command handlers.
package handler

import (
	"fmt"
	"strings"
)

const (
	// CallbackPrefix is the prefix for all casino game callback data.
	CallbackPrefix = "casino_"
)

// EncodeCallback encodes an action and parameter into callback data.
func EncodeCallback(action string, param string) string {
	if param != "" {
		return fmt.Sprintf("%s%s_%s", CallbackPrefix, action, param)
	}
	return fmt.Sprintf("%s%s", CallbackPrefix, action)
}

// DecodeCallback decodes callback data into action and parameter.
func DecodeCallback(data string) (action string, param string) {
	if !strings.HasPrefix(data, CallbackPrefix) {
		return "", ""
	}

	content := strings.TrimPrefix(data, CallbackPrefix)
	parts := strings.SplitN(content, "_", 2)
	action = parts[0]
	if len(parts) > 1 {
		param = parts[1]
	}
	return action, param
}
