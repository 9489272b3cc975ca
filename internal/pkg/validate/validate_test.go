package validate

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plataforma-formacao/internal/domain"
)

func TestStruct_CommentBody(t *testing.T) {
	valid := domain.CreateCommentInput{PublicationID: uuid.New(), Body: "Bom trabalho"}
	require.NoError(t, Struct(valid))

	t.Run("Blank body", func(t *testing.T) {
		in := valid
		in.Body = "   "
		err := Struct(in)

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Contains(t, err.Error(), "descricao_comentario")
	})

	t.Run("256 runes is accepted", func(t *testing.T) {
		in := valid
		in.Body = strings.Repeat("é", domain.MaxCommentLength)
		assert.NoError(t, Struct(in))
	})

	t.Run("257 runes is rejected", func(t *testing.T) {
		in := valid
		in.Body = strings.Repeat("a", domain.MaxCommentLength+1)
		err := Struct(in)

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Contains(t, err.Error(), "256")
	})

	t.Run("Missing publication", func(t *testing.T) {
		in := valid
		in.PublicationID = uuid.Nil
		err := Struct(in)

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Contains(t, err.Error(), "id_publicacao")
	})
}

func TestStruct_ResolveDecision(t *testing.T) {
	assert.NoError(t, Struct(domain.ResolveReportInput{State: domain.ReportApproved}))

	err := Struct(domain.ResolveReportInput{State: domain.ReportPending})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "estado")
}

func TestStruct_VoteDirection(t *testing.T) {
	assert.NoError(t, Struct(domain.CastVoteInput{Direction: domain.VoteDown}))
	assert.Error(t, Struct(domain.CastVoteInput{Direction: "sideways"}))
}
