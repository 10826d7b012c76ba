package workflow

import (
	"log/slog"
	"strings"
)

// Branch identifies one of the five response-generation policies.
type Branch string

const (
	BranchInterested     Branch = "interested"
	BranchNotInterested  Branch = "not_interested"
	BranchWrongPerson    Branch = "wrong_person"
	BranchCheckBackLater Branch = "check_back_later"
	BranchFollowUp       Branch = "follow_up"
)

// Route maps a classification label to a branch. Exact match after
// trimming; anything unrecognized (case variants included) deliberately
// falls back to the interested branch with a warning rather than failing
// the run. Never errors, no model call.
func Route(classification string, logger *slog.Logger) Branch {
	switch strings.TrimSpace(classification) {
	case ClassificationInterested:
		return BranchInterested
	case ClassificationNotInterested:
		return BranchNotInterested
	case ClassificationWrongPerson:
		return BranchWrongPerson
	case ClassificationCheckBackLater:
		return BranchCheckBackLater
	case ClassificationFollowUp:
		return BranchFollowUp
	default:
		logger.Warn("unrecognized classification, defaulting to interested branch",
			"classification", classification,
		)
		return BranchInterested
	}
}
