package domain

import (
	"strings"

	"github.com/bookswapapp/bookswap-server/internal/errors"
)

// maxIssueDescriptionLen bounds the free-text description of an issue.
const maxIssueDescriptionLen = 1000

// Issue is one party's complaint about a swap (book never arrived, damaged
// beyond the listing, etc). Raising one moves the swap into dispute. A
// sub-swap holds at most one; SubSwap enforces that.
type Issue struct {
	ID          string `json:"id"`
	SubSwapID   string `json:"sub_swap_id"`
	UserID      string `json:"user_id"`
	Description string `json:"description"`
}

// NewIssue validates and creates an issue, reporting every violation at
// once. The description is trimmed before length checks.
func NewIssue(issueID, subSwapID, userID, description string) (*Issue, *errors.Error) {
	description = strings.TrimSpace(description)

	var v errors.Violations
	v.Check(issueID != "", "Issue id is required")
	if subSwapID == "" {
		v.Add(errors.NotFound("Sub swap not found"))
	}
	if userID == "" {
		v.Add(errors.NotFound("User not found"))
	}
	v.Check(description != "", "Description is required")
	v.Check(len(description) <= maxIssueDescriptionLen, "Description must be at most 1000 characters")
	if err := v.Err(); err != nil {
		return nil, err
	}

	return &Issue{
		ID:          issueID,
		SubSwapID:   subSwapID,
		UserID:      userID,
		Description: description,
	}, nil
}
