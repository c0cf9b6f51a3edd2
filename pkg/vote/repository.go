package vote

import (
	"fmt"

	"github.com/confdeck/deck-manager/pkg/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

// Result is the refreshed aggregate after a vote was recorded.
type Result struct {
	Rate  int   `json:"rate"`
	Votes int64 `json:"votes"`
}

// upsert records the rate for the (proposal, voter) pair and recomputes the
// proposal's aggregate rate from a consistent read within the same
// transaction. A second vote by the same voter overwrites the first.
func (r repository) upsert(proposalID, userID uint, rate int) (Result, error) {
	var result Result

	errTx := r.db.Transaction(func(tx *gorm.DB) error {
		err := writeVote(tx, proposalID, userID, rate)
		if err != nil {
			return err
		}

		var aggregate struct {
			Total int64
			Votes int64
		}
		err = tx.
			Model(&model.Vote{}).
			Where("proposal_id = ?", proposalID).
			Select("COALESCE(SUM(rate), 0) AS total, COUNT(*) AS votes").
			Scan(&aggregate).Error
		if err != nil {
			return fmt.Errorf("failed to aggregate votes of proposal %d: %v", proposalID, err)
		}

		// mean of the numeric rate values, truncated to the integer
		result.Votes = aggregate.Votes
		result.Rate = int(aggregate.Total / aggregate.Votes)

		return tx.
			Model(&model.Proposal{}).
			Where("id = ?", proposalID).
			Update("rate", result.Rate).Error
	})

	return result, errTx
}

// writeVote inserts the vote or overwrites the stored rate in a single
// statement. The conflict target is the composite unique index on
// (proposal_id, user_id), so concurrent first votes by the same voter
// collapse into one row without aborting the surrounding transaction.
func writeVote(tx *gorm.DB, proposalID, userID uint, rate int) error {
	vote := model.Vote{ProposalID: proposalID, UserID: userID, Rate: rate}
	return tx.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "proposal_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rate", "updated_at"}),
		}).
		Create(&vote).Error
}

func (r repository) count(proposalID uint) (int64, error) {
	var count int64
	err := r.db.
		Model(&model.Vote{}).
		Where("proposal_id = ?", proposalID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count votes of proposal %d: %v", proposalID, err)
	}
	return count, nil
}
