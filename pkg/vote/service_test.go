package vote

import (
	"sync"
	"testing"
	"time"

	"github.com/confdeck/deck-manager/internal/errdef"
	"github.com/confdeck/deck-manager/pkg/event"
	"github.com/confdeck/deck-manager/pkg/inttest"
	"github.com/confdeck/deck-manager/pkg/live"
	"github.com/confdeck/deck-manager/pkg/model"
	"github.com/confdeck/deck-manager/pkg/proposal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixtures struct {
	db     *gorm.DB
	author *model.User
	voter  *model.User
	rupy   *model.Event
}

func setup(t *testing.T, allowPublicVoting bool) (*Service, fixtures) {
	t.Helper()

	db := inttest.SetupDB(t)

	author := &model.User{Email: "admin@confdeck.org"}
	require.NoError(t, db.Create(author).Error)
	voter := &model.User{Email: "user@confdeck.org"}
	require.NoError(t, db.Create(voter).Error)

	rupy := &model.Event{
		Title:             "RuPy",
		Slug:              "rupy",
		UserID:            author.ID,
		DueDate:           time.Now().Add(24 * time.Hour),
		IsPublished:       true,
		AllowPublicVoting: allowPublicVoting,
	}
	require.NoError(t, db.Create(rupy).Error)

	zombies := &model.Proposal{
		Title:   "Python For Zombies",
		Slug:    "python-for-zombies",
		EventID: rupy.ID,
		UserID:  author.ID,
	}
	require.NoError(t, db.Create(zombies).Error)

	eventService := event.NewService(event.NewRepository(db))
	proposalService := proposal.NewService(proposal.NewRepository(db), eventService)
	service := NewService(NewRepository(db), proposalService, live.NewBroker())

	return service, fixtures{db: db, author: author, voter: voter, rupy: rupy}
}

func (f fixtures) voteCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&model.Vote{}).Count(&count).Error)
	return count
}

func (f fixtures) proposalRate(t *testing.T) int {
	t.Helper()
	var p model.Proposal
	require.NoError(t, f.db.Where("slug = ?", "python-for-zombies").First(&p).Error)
	return p.Rate
}

func TestCastVote(t *testing.T) {
	service, f := setup(t, true)

	result, err := service.CastVote(model.NewActor(f.voter), "rupy", "python-for-zombies", "laughing")

	require.NoError(t, err)
	assert.Equal(t, 3, result.Rate)
	assert.Equal(t, int64(1), result.Votes)
	assert.Equal(t, int64(1), f.voteCount(t))
	assert.Equal(t, 3, f.proposalRate(t))
}

func TestCastVoteUnknownRate(t *testing.T) {
	service, f := setup(t, true)

	_, err := service.CastVote(model.NewActor(f.voter), "rupy", "python-for-zombies", "whatever")

	require.True(t, errdef.IsBadRequest(err), "expected bad request, got %v", err)
	assert.Equal(t, int64(0), f.voteCount(t))
	assert.Equal(t, 0, f.proposalRate(t))
}

func TestCastVoteAnonymous(t *testing.T) {
	service, f := setup(t, true)

	_, err := service.CastVote(model.Anonymous(), "rupy", "python-for-zombies", "sad")

	require.True(t, errdef.IsUnauthorized(err), "expected unauthorized, got %v", err)
	assert.Equal(t, int64(0), f.voteCount(t))
	assert.Equal(t, 0, f.proposalRate(t))
}

func TestCastVoteVotingDisabled(t *testing.T) {
	service, f := setup(t, false)

	_, err := service.CastVote(model.NewActor(f.voter), "rupy", "python-for-zombies", "sad")

	require.True(t, errdef.IsVotingDisabled(err), "expected voting disabled, got %v", err)
	assert.Equal(t, int64(0), f.voteCount(t))
	assert.Equal(t, 0, f.proposalRate(t))
}

func TestCastVoteOwnProposal(t *testing.T) {
	service, f := setup(t, true)

	_, err := service.CastVote(model.NewActor(f.author), "rupy", "python-for-zombies", "sad")

	require.True(t, errdef.IsForbidden(err), "expected forbidden, got %v", err)
	assert.Equal(t, int64(0), f.voteCount(t))
	assert.Equal(t, 0, f.proposalRate(t))
}

func TestCastVoteUnknownProposal(t *testing.T) {
	service, f := setup(t, true)

	_, err := service.CastVote(model.NewActor(f.voter), "rupy", "unknown", "sad")

	require.True(t, errdef.IsNotFound(err), "expected not found, got %v", err)
	assert.Equal(t, int64(0), f.voteCount(t))
}

func TestCastVoteReplacesPreviousVote(t *testing.T) {
	service, f := setup(t, true)
	actor := model.NewActor(f.voter)

	_, err := service.CastVote(actor, "rupy", "python-for-zombies", "laughing")
	require.NoError(t, err)

	result, err := service.CastVote(actor, "rupy", "python-for-zombies", "happy")

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Votes, "a repeated vote replaces, it does not add a row")
	assert.Equal(t, 2, result.Rate, "the rate reflects only the latest vote")
	assert.Equal(t, int64(1), f.voteCount(t))
	assert.Equal(t, 2, f.proposalRate(t))
}

func TestCastVoteConcurrentFirstVotes(t *testing.T) {
	service, f := setup(t, true)
	actor := model.NewActor(f.voter)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.CastVote(actor, "rupy", "python-for-zombies", "laughing")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), f.voteCount(t), "concurrent first votes collapse into one row")
	assert.Equal(t, 3, f.proposalRate(t))
}

func TestCastVoteRateIsTruncatedMean(t *testing.T) {
	service, f := setup(t, true)

	another := &model.User{Email: "another@confdeck.org"}
	require.NoError(t, f.db.Create(another).Error)

	_, err := service.CastVote(model.NewActor(f.voter), "rupy", "python-for-zombies", "laughing")
	require.NoError(t, err)

	// (3 + 2) / 2 votes truncates to 2
	result, err := service.CastVote(model.NewActor(another), "rupy", "python-for-zombies", "happy")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Rate)
	assert.Equal(t, int64(2), result.Votes)

	third := &model.User{Email: "third@confdeck.org"}
	require.NoError(t, f.db.Create(third).Error)

	// (3 + 2 + 1) / 3 votes is exactly 2
	result, err = service.CastVote(model.NewActor(third), "rupy", "python-for-zombies", "sad")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Rate)
	assert.Equal(t, int64(3), result.Votes)
}

func TestCount(t *testing.T) {
	service, f := setup(t, true)

	var p model.Proposal
	require.NoError(t, f.db.Where("slug = ?", "python-for-zombies").First(&p).Error)

	count, err := service.Count(p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, err = service.CastVote(model.NewActor(f.voter), "rupy", "python-for-zombies", "happy")
	require.NoError(t, err)

	count, err = service.Count(p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
