package billing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentalcloud/dentalcloud-api/internal/domain"
	"github.com/dentalcloud/dentalcloud-api/pkg/logger"
)

func testLog() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func TestWithNumberRetry_SuccesImmediat(t *testing.T) {
	calls := 0
	err := withNumberRetry(testLog(), "facture", func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithNumberRetry_ReessaieSurDuplicat(t *testing.T) {
	calls := 0
	err := withNumberRetry(testLog(), "facture", func() error {
		calls++
		if calls < 3 {
			return domain.ErrDuplicate
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls, "doit réessayer jusqu'au succès")
}

func TestWithNumberRetry_AbandonneApresCinqTentatives(t *testing.T) {
	calls := 0
	err := withNumberRetry(testLog(), "proforma", func() error {
		calls++
		return domain.ErrDuplicate
	})
	require.Error(t, err)
	assert.Equal(t, numberingAttempts, calls)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Contains(t, err.Error(), "proforma")
}

func TestWithNumberRetry_NePasReessayerAutreErreur(t *testing.T) {
	boom := errors.New("connexion perdue")
	calls := 0
	err := withNumberRetry(testLog(), "bon de livraison", func() error {
		calls++
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls, "seul le numéro dupliqué déclenche une nouvelle tentative")
}
