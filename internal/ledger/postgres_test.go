package ledger

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewPGLedger(t *testing.T) {
	pool := &pgxpool.Pool{}
	l := NewPGLedger(pool)
	assert.NotNil(t, l)
}
