package pairing

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/blazern/recipe-calculator-server-sub000/internal/metrics"
	"github.com/blazern/recipe-calculator-server-sub000/internal/pkg/logger"
)

// Allocator hands out unique, short-lived numeric pairing codes within one
// family. The six phases of a borrow assume they observe a single
// consistent transaction snapshot throughout, so BorrowPairingCode and
// FullyResetPersistentState serialize on mu: callers needing concurrent
// throughput should run separate Allocator instances (each with its own
// family) rather than share one across goroutines.
type Allocator struct {
	mu       sync.Mutex
	family   string
	left     int32
	right    int32
	lifeSecs int64
	now      NowSource
	rng      RandSource
	log      *logger.Logger
}

// New constructs an allocator using the real system clock and a
// math/rand-backed generator.
func New(family string, left, right int32, lifeSecs int64, log *logger.Logger) (*Allocator, error) {
	return NewExtended(family, left, right, lifeSecs, SystemNowSource{}, SystemRandSource{}, log)
}

// NewExtended additionally accepts the now/rand capability interfaces —
// production wiring uses New; tests inject stubs here to force specific
// draws and clock sequences.
func NewExtended(family string, left, right int32, lifeSecs int64, now NowSource, rng RandSource, log *logger.Logger) (*Allocator, error) {
	if left < 0 {
		return nil, NewInvalidBoundsError("codes_range_left must be >= 0")
	}
	if right < left {
		return nil, NewInvalidBoundsError("codes_range_right must be >= codes_range_left")
	}
	if err := globalRegistry.acquire(family); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Allocator{
		family:   family,
		left:     left,
		right:    right,
		lifeSecs: lifeSecs,
		now:      now,
		rng:      rng,
		log:      log.Named("pairing"),
	}, nil
}

// Close releases the family name in the process-wide registry. Go has no
// deterministic destructors, so callers must invoke this explicitly when
// they are done with the instance — the one place this allocator asks
// more of its caller than the original did.
func (a *Allocator) Close() {
	globalRegistry.release(a.family)
}

// BorrowPairingCode runs the six-phase allocation inside one serializable
// transaction on conn. On detected persistent-state corruption it resets
// the family and retries the whole operation exactly once; a second
// failure surfaces to the caller.
func (a *Allocator) BorrowPairingCode(ctx context.Context, user UserRef, conn Connection) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	code, err := a.borrowOnce(ctx, user, conn)
	if err == nil || !isCorruption(err) {
		return code, err
	}

	a.log.Warn("persistent state corrupted, resetting family and retrying once",
		zap.String("family", a.family), zap.Error(err))
	metrics.PersistentStateResetsTotal.Inc()
	if resetErr := a.resetPersistentStateLocked(ctx, conn); resetErr != nil {
		return "", resetErr
	}
	return a.borrowOnce(ctx, user, conn)
}

// FullyResetPersistentState deletes all of the family's rows, restoring
// the pristine shape. Intended for administrative and self-heal use only.
func (a *Allocator) FullyResetPersistentState(ctx context.Context, conn Connection) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.resetPersistentStateLocked(ctx, conn)
}

func (a *Allocator) resetPersistentStateLocked(ctx context.Context, conn Connection) error {
	return conn.Transact(ctx, func(ctx context.Context, store Store) error {
		if err := store.Codes.DeleteFamily(ctx, a.family); err != nil {
			return err
		}
		return store.Ranges.DeleteFamily(ctx, a.family)
	})
}

func (a *Allocator) borrowOnce(ctx context.Context, user UserRef, conn Connection) (string, error) {
	var result string
	err := conn.Transact(ctx, func(ctx context.Context, store Store) error {
		now, err := a.now.NowSecs()
		if err != nil {
			return &UnrecoverableSystemError{Err: err}
		}
		if err := a.validateTime(ctx, store, now); err != nil {
			return err
		}
		if err := a.maybeInitFamily(ctx, store); err != nil {
			return err
		}
		if err := a.freeOldCodes(ctx, store, now); err != nil {
			return err
		}
		if err := a.validateFreeRanges(ctx, store); err != nil {
			return err
		}
		code, err := a.selectAndSplit(ctx, store, user, now)
		if err != nil {
			return err
		}
		result = code
		return nil
	})
	return result, err
}

// phase 1
func (a *Allocator) validateTime(ctx context.Context, store Store, now int64) error {
	newer, err := store.Codes.SelectFirstNewerThan(ctx, now, a.family)
	if err != nil {
		return err
	}
	if newer != nil {
		return newCorruption("taken code %d has creation_time %d after now %d", newer.ID, newer.CreationTime, now)
	}
	return nil
}

// phase 2
func (a *Allocator) maybeInitFamily(ctx context.Context, store Store) error {
	any, err := store.Codes.SelectAny(ctx, a.family)
	if err != nil {
		return err
	}
	if any != nil {
		return nil
	}
	// A free range may already exist with no taken codes (a family that
	// lost its last user). Probe for one before writing the wrapping
	// range, or lazy init would duplicate it.
	probe, err := store.Ranges.SelectFirstToTheLeftOf(ctx, a.right+1, a.family)
	if err != nil {
		return err
	}
	if probe != nil {
		return nil
	}
	_, err = store.Ranges.Insert(ctx, a.left, a.right, a.family)
	return err
}

// phase 3
func (a *Allocator) freeOldCodes(ctx context.Context, store Store, now int64) error {
	cutoff := now - a.lifeSecs
	reclaimed, err := store.Codes.DeleteOlderThan(ctx, cutoff, a.family)
	if err != nil {
		return err
	}
	for _, code := range reclaimed {
		if err := a.returnFreeRange(ctx, store, code.Val); err != nil {
			return err
		}
	}
	return nil
}

// returnFreeRange implements the merge rule: a reclaimed value is given
// back to the free-range set, merging with an adjacent neighbor on either
// side if one exists, or becoming an isolated singleton otherwise.
func (a *Allocator) returnFreeRange(ctx context.Context, store Store, v int32) error {
	existing, err := store.Ranges.SelectFirstRangeWithValueInside(ctx, v, a.family)
	if err != nil {
		return err
	}
	if existing != nil {
		return newCorruption("reclaimed value %d already inside free range [%d,%d]", v, existing.Left, existing.Right)
	}

	left, err := store.Ranges.SelectFirstToTheLeftOf(ctx, v, a.family)
	if err != nil {
		return err
	}
	right, err := store.Ranges.SelectFirstToTheRightOf(ctx, v, a.family)
	if err != nil {
		return err
	}

	switch {
	case left != nil && right != nil && left.Right == v-1 && right.Left == v+1:
		if err := store.Ranges.DeleteByID(ctx, left.ID); err != nil {
			return err
		}
		if err := store.Ranges.DeleteByID(ctx, right.ID); err != nil {
			return err
		}
		_, err = store.Ranges.Insert(ctx, left.Left, right.Right, a.family)
		return err
	case left != nil && left.Right == v-1:
		if err := store.Ranges.DeleteByID(ctx, left.ID); err != nil {
			return err
		}
		_, err = store.Ranges.Insert(ctx, left.Left, v, a.family)
		return err
	case right != nil && right.Left == v+1:
		if err := store.Ranges.DeleteByID(ctx, right.ID); err != nil {
			return err
		}
		_, err = store.Ranges.Insert(ctx, v, right.Right, a.family)
		return err
	default:
		_, err = store.Ranges.Insert(ctx, v, v, a.family)
		return err
	}
}

// phase 4 — the self-healing anchor: a family with no live users must be
// forced back to its pristine shape.
func (a *Allocator) validateFreeRanges(ctx context.Context, store Store) error {
	any, err := store.Codes.SelectAny(ctx, a.family)
	if err != nil {
		return err
	}
	if any != nil {
		return nil
	}
	ranges, err := store.Ranges.SelectFamily(ctx, a.family)
	if err != nil {
		return err
	}
	if len(ranges) != 1 || ranges[0].Left != a.left || ranges[0].Right != a.right {
		return newCorruption("family has no taken codes but free ranges are not pristine: %+v", ranges)
	}
	return nil
}

// phase 5 + 6
func (a *Allocator) selectAndSplit(ctx context.Context, store Store, user UserRef, now int64) (string, error) {
	rn1 := a.rng.GenRange(a.left, a.right)

	chosen, err := store.Ranges.SelectFirstRangeWithValueInside(ctx, rn1, a.family)
	if err != nil {
		return "", err
	}
	if chosen == nil {
		leftCand, err := store.Ranges.SelectFirstToTheLeftOf(ctx, rn1+1, a.family)
		if err != nil {
			return "", err
		}
		rightCand, err := store.Ranges.SelectFirstToTheRightOf(ctx, rn1-1, a.family)
		if err != nil {
			return "", err
		}
		preferred, fallback := leftCand, rightCand
		if !a.rng.GenBool() {
			preferred, fallback = rightCand, leftCand
		}
		switch {
		case preferred != nil:
			chosen = preferred
		case fallback != nil:
			chosen = fallback
		default:
			return "", ErrOutOfPairingCodes
		}
	}

	rn2 := a.rng.GenRange(chosen.Left, chosen.Right)

	if err := store.Ranges.DeleteByID(ctx, chosen.ID); err != nil {
		return "", err
	}
	if rn2 != chosen.Left {
		if _, err := store.Ranges.Insert(ctx, chosen.Left, rn2-1, a.family); err != nil {
			return "", err
		}
	}
	if rn2 != chosen.Right {
		if _, err := store.Ranges.Insert(ctx, rn2+1, chosen.Right, a.family); err != nil {
			return "", err
		}
	}
	if _, err := store.Codes.Insert(ctx, int64(user), rn2, now, a.family); err != nil {
		return "", err
	}

	return formatCode(rn2, a.right), nil
}
