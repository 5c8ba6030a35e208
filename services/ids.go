package services

import (
	"context"
	"fmt"
)

// Entity kinds with their own id sequence.
const (
	KindUser       = "user"
	KindAdmin      = "admin"
	KindAttraction = "attraction"
	KindReview     = "review"
)

// NextID returns the smallest positive integer not in existing. Freed ids are
// handed out again before the sequence grows.
func NextID(existing []int) int {
	if len(existing) == 0 {
		return 1
	}

	used := make(map[int]struct{}, len(existing))
	highest := 0
	for _, id := range existing {
		if id <= 0 {
			continue
		}
		used[id] = struct{}{}
		if id > highest {
			highest = id
		}
	}

	for i := 1; i <= highest+1; i++ {
		if _, ok := used[i]; !ok {
			return i
		}
	}
	return highest + 1
}

// IDAllocator hands out ids and holds the per-kind lock until the new record
// has been written, so two creators of the same kind cannot pick the same id.
type IDAllocator struct {
	locker Locker
}

func NewIDAllocator(locker Locker) *IDAllocator {
	if locker == nil {
		locker = NewLocalLocker()
	}
	return &IDAllocator{locker: locker}
}

// Allocate reads the ids in use through ids, computes the next one and passes
// it to create while the lock for kind is held.
func (a *IDAllocator) Allocate(ctx context.Context, kind string, ids func(context.Context) ([]int, error), create func(id int) error) (int, error) {
	unlock, err := a.locker.Lock(ctx, "ids:"+kind)
	if err != nil {
		return 0, fmt.Errorf("lock %s ids: %w", kind, err)
	}
	defer unlock()

	existing, err := ids(ctx)
	if err != nil {
		return 0, fmt.Errorf("list %s ids: %w", kind, err)
	}

	id := NextID(existing)
	if err := create(id); err != nil {
		return 0, err
	}
	return id, nil
}
