package billing

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/dentalcloud/dentalcloud-api/internal/domain"
	"github.com/dentalcloud/dentalcloud-api/pkg/logger"
)

// numberingAttempts nombre de tentatives quand l'insertion échoue sur un
// numéro dupliqué.
const numberingAttempts = 5

// withNumberRetry exécute fn et réessaie sur domain.ErrDuplicate : deux
// créations simultanées peuvent tirer le même numéro avant que l'une ne
// commit. Un délai aléatoire désynchronise les concurrents.
func withNumberRetry(log *logger.Logger, what string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= numberingAttempts; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, domain.ErrDuplicate) {
			return err
		}
		wait := time.Duration(10*attempt+rand.IntN(40)) * time.Millisecond
		log.Warn().Str("document", what).Int("attempt", attempt).
			Dur("wait", wait).Msg("numéro dupliqué, nouvelle tentative")
		time.Sleep(wait)
	}
	return fmt.Errorf("numérotation %s épuisée après %d tentatives: %w", what, numberingAttempts, err)
}
