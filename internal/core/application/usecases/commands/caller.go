package commands

import "strings"

// Caller identifies who asked for a command and the request it belongs to.
// An empty ActorUserID stands for the system or an anonymous caller.
type Caller struct {
	ActorUserID   string
	CorrelationID string
}

func NewCaller(actorUserID, correlationID string) Caller {
	return Caller{
		ActorUserID:   strings.TrimSpace(actorUserID),
		CorrelationID: strings.TrimSpace(correlationID),
	}
}
