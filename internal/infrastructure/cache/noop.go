package cache

import (
	"context"
	"time"

	"github.com/dentalcloud/dentalcloud-api/internal/application/dashboard"
)

var _ dashboard.Cache = (*Noop)(nil)

// Noop cache inactif, utilisé quand Redis n'est pas configuré. Get renvoie
// toujours (nil, nil) : tout est recalculé à chaque requête.
type Noop struct{}

// NewNoop construit le cache inactif.
func NewNoop() *Noop { return &Noop{} }

func (Noop) Get(context.Context, string) ([]byte, error)              { return nil, nil }
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Noop) DeletePrefix(context.Context, string) error               { return nil }
