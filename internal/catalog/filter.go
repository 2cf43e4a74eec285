package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects which descriptors the capability filter keeps.
type Mode string

const (
	// ModeOpenAIResponses keeps models tagged with the "responses" capability.
	ModeOpenAIResponses Mode = "openai-responses"
	// ModeNonOpenAIChat keeps non-OpenAI-format models that support chat completion.
	// ARM never tags these with "responses" even though the Responses API serves them.
	ModeNonOpenAIChat Mode = "non-openai-chat"
)

// ErrUnknownMode is returned by ParseMode for unrecognized mode names.
var ErrUnknownMode = errors.New("unknown capability mode")

// ParseMode converts a mode name into a Mode. An empty name selects ModeOpenAIResponses.
func ParseMode(name string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(name))) {
	case "", ModeOpenAIResponses:
		return ModeOpenAIResponses, nil
	case ModeNonOpenAIChat:
		return ModeNonOpenAIChat, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// Label describes the models a mode selects, for report headers.
func (m Mode) Label() string {
	if m == ModeNonOpenAIChat {
		return "non-OpenAI chat-capable models (work with Responses API)"
	}
	return "OpenAI models with Responses API support"
}

// Include reports whether the descriptor passes the given mode's predicate.
func Include(d Descriptor, mode Mode) bool {
	switch mode {
	case ModeOpenAIResponses:
		return hasCapability(d, CapabilityResponses)
	case ModeNonOpenAIChat:
		return d.Format != OpenAIFormat && hasCapability(d, CapabilityChatCompletion)
	default:
		return false
	}
}

func hasCapability(d Descriptor, name string) bool {
	value, ok := d.Capabilities[name]
	return ok && value == TruthyFlag
}
