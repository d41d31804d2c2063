package repositories

import (
	"context"
	"time"
)

// storeTimeout bounds every round-trip to the store. There is no retry logic;
// a timeout fails the enclosing request.
const storeTimeout = 5 * time.Second

func storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storeTimeout)
}
