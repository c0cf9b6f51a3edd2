package model

import (
	"time"

	"github.com/confdeck/deck-manager/internal/errdef"
)

// Vote domain object recording one rating decision per (proposal, voter)
// pair. A repeated vote by the same voter replaces the stored rate.
type Vote struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	ProposalID uint      `gorm:"index:idx_vote_proposal_voter,unique" json:"proposalId"`
	UserID     uint      `gorm:"index:idx_vote_proposal_voter,unique" json:"userId"`
	Rate       int       `json:"rate"`
}

// Fixed rate vocabulary. The numeric values are total-order comparable and
// feed the mean aggregation on Proposal.Rate.
const (
	RateSad      = 1
	RateHappy    = 2
	RateLaughing = 3
)

// RateTokens is the closed vocabulary of rate tokens accepted when casting a
// vote.
var RateTokens = map[string]int{
	"sad":      RateSad,
	"happy":    RateHappy,
	"laughing": RateLaughing,
}

// ParseRateToken resolves a rate token against the fixed vocabulary.
func ParseRateToken(token string) (int, error) {
	rate, ok := RateTokens[token]
	if !ok {
		return 0, errdef.NewBadRequest("unknown rate %q", token)
	}
	return rate, nil
}
