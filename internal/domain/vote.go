package domain

import (
	"time"

	"github.com/google/uuid"
)

type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// Value maps a direction to the signed value stored in the votes table.
func (d VoteDirection) Value() int {
	if d == VoteDown {
		return -1
	}
	return 1
}

func DirectionFromValue(v int) VoteDirection {
	if v < 0 {
		return VoteDown
	}
	return VoteUp
}

type Vote struct {
	ID            uuid.UUID `json:"id" db:"vote_id"`
	PublicationID uuid.UUID `json:"id_publicacao" db:"publication_id"`
	VoterID       uuid.UUID `json:"id_utilizador" db:"voter_id"`
	Value         int       `json:"valor" db:"value"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type VoteSummary struct {
	Upvotes   int64          `json:"upvotes"`
	Downvotes int64          `json:"downvotes"`
	UserVote  *VoteDirection `json:"user_vote"`
}

type CastVoteInput struct {
	Direction VoteDirection `json:"direcao" validate:"required,oneof=up down"`
}
