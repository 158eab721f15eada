package pairing

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memState is the shared backing state for the in-memory Connection used
// to exercise the six-phase algorithm without a database.
type memState struct {
	mu     sync.Mutex
	nextID int64
	ranges map[int64]*CodeRange
	codes  map[int64]*TakenCode
}

func newMemState() *memState {
	return &memState{ranges: make(map[int64]*CodeRange), codes: make(map[int64]*TakenCode)}
}

func (m *memState) Transact(ctx context.Context, fn func(ctx context.Context, store Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx, Store{Ranges: memRangeStore{m}, Codes: memTakenCodeStore{m}})
}

func (m *memState) selectFamily(family string) []*CodeRange {
	var out []*CodeRange
	for _, r := range m.ranges {
		if r.Family == family {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Right != out[j].Right {
			return out[i].Right > out[j].Right
		}
		return out[i].Left < out[j].Left
	})
	return out
}

type memRangeStore struct{ s *memState }

func (r memRangeStore) Insert(ctx context.Context, left, right int32, family string) (*CodeRange, error) {
	if right < left {
		return nil, NewInvalidBoundsError("right < left")
	}
	r.s.nextID++
	cr := &CodeRange{ID: r.s.nextID, Left: left, Right: right, Family: family}
	r.s.ranges[cr.ID] = cr
	return cr, nil
}

func (r memRangeStore) SelectByID(ctx context.Context, id int64) (*CodeRange, error) {
	return r.s.ranges[id], nil
}

func (r memRangeStore) SelectFamily(ctx context.Context, family string) ([]*CodeRange, error) {
	return r.s.selectFamily(family), nil
}

func (r memRangeStore) DeleteByID(ctx context.Context, id int64) error {
	delete(r.s.ranges, id)
	return nil
}

func (r memRangeStore) DeleteFamily(ctx context.Context, family string) error {
	for id, cr := range r.s.ranges {
		if cr.Family == family {
			delete(r.s.ranges, id)
		}
	}
	return nil
}

func (r memRangeStore) SelectFirstToTheLeftOf(ctx context.Context, v int32, family string) (*CodeRange, error) {
	var best *CodeRange
	for _, cr := range r.s.ranges {
		if cr.Family != family || cr.Right >= v {
			continue
		}
		if best == nil || cr.Right > best.Right {
			best = cr
		}
	}
	return best, nil
}

func (r memRangeStore) SelectFirstToTheRightOf(ctx context.Context, v int32, family string) (*CodeRange, error) {
	var best *CodeRange
	for _, cr := range r.s.ranges {
		if cr.Family != family || cr.Left <= v {
			continue
		}
		if best == nil || cr.Left < best.Left {
			best = cr
		}
	}
	return best, nil
}

func (r memRangeStore) SelectFirstRangeWithValueInside(ctx context.Context, v int32, family string) (*CodeRange, error) {
	for _, cr := range r.s.ranges {
		if cr.Family == family && cr.Left <= v && v <= cr.Right {
			return cr, nil
		}
	}
	return nil, nil
}

type memTakenCodeStore struct{ s *memState }

func (c memTakenCodeStore) Insert(ctx context.Context, appUserID int64, val int32, creationTime int64, family string) (*TakenCode, error) {
	c.s.nextID++
	tc := &TakenCode{ID: c.s.nextID, AppUserID: appUserID, Val: val, CreationTime: creationTime, Family: family}
	c.s.codes[tc.ID] = tc
	return tc, nil
}

func (c memTakenCodeStore) SelectByID(ctx context.Context, id int64) (*TakenCode, error) {
	return c.s.codes[id], nil
}

func (c memTakenCodeStore) SelectByAppUser(ctx context.Context, appUserID int64, family string) (*TakenCode, error) {
	for _, tc := range c.s.codes {
		if tc.Family == family && tc.AppUserID == appUserID {
			return tc, nil
		}
	}
	return nil, nil
}

func (c memTakenCodeStore) SelectByValue(ctx context.Context, val int32, family string) (*TakenCode, error) {
	for _, tc := range c.s.codes {
		if tc.Family == family && tc.Val == val {
			return tc, nil
		}
	}
	return nil, nil
}

func (c memTakenCodeStore) SelectAny(ctx context.Context, family string) (*TakenCode, error) {
	for _, tc := range c.s.codes {
		if tc.Family == family {
			return tc, nil
		}
	}
	return nil, nil
}

func (c memTakenCodeStore) SelectFirstNewerThan(ctx context.Context, t int64, family string) (*TakenCode, error) {
	for _, tc := range c.s.codes {
		if tc.Family == family && tc.CreationTime > t {
			return tc, nil
		}
	}
	return nil, nil
}

func (c memTakenCodeStore) DeleteByID(ctx context.Context, id int64) error {
	delete(c.s.codes, id)
	return nil
}

func (c memTakenCodeStore) DeleteFamily(ctx context.Context, family string) error {
	for id, tc := range c.s.codes {
		if tc.Family == family {
			delete(c.s.codes, id)
		}
	}
	return nil
}

func (c memTakenCodeStore) DeleteOlderThan(ctx context.Context, t int64, family string) ([]*TakenCode, error) {
	var out []*TakenCode
	for id, tc := range c.s.codes {
		if tc.Family == family && tc.CreationTime <= t {
			out = append(out, tc)
			delete(c.s.codes, id)
		}
	}
	return out, nil
}

type fixedNow struct{ seq []int64 }

func (f *fixedNow) NowSecs() (int64, error) {
	v := f.seq[0]
	if len(f.seq) > 1 {
		f.seq = f.seq[1:]
	}
	return v, nil
}

type fixedRand struct {
	ints []int32
	bool bool
}

func (f *fixedRand) GenRange(lo, hi int32) int32 {
	v := f.ints[0]
	if len(f.ints) > 1 {
		f.ints = f.ints[1:]
	}
	return v
}

func (f *fixedRand) GenBool() bool { return f.bool }

func TestBorrowPairingCode_FirstAllocationOnFreshFamily(t *testing.T) {
	store := newMemState()
	rng := &fixedRand{ints: []int32{15, 15}}
	now := &fixedNow{seq: []int64{1000}}
	alloc, err := NewExtended("fam1", 0, 9999, 300, now, rng, nil)
	require.NoError(t, err)
	defer alloc.Close()

	code, err := alloc.BorrowPairingCode(context.Background(), UserRef(1), store)
	require.NoError(t, err)
	assert.Equal(t, "0015", code)

	ranges := store.selectFamily("fam1")
	assert.Len(t, ranges, 2)
	assert.Equal(t, 1, len(store.codes))
}

func TestBorrowPairingCode_OutOfCodesOnTightFamily(t *testing.T) {
	store := newMemState()
	rng := &fixedRand{ints: []int32{0, 0, 1, 1}}
	now := &fixedNow{seq: []int64{1000}}
	alloc, err := NewExtended("fam-tight", 0, 1, 300, now, rng, nil)
	require.NoError(t, err)
	defer alloc.Close()

	ctx := context.Background()
	_, err = alloc.BorrowPairingCode(ctx, UserRef(1), store)
	require.NoError(t, err)
	_, err = alloc.BorrowPairingCode(ctx, UserRef(2), store)
	require.NoError(t, err)
	_, err = alloc.BorrowPairingCode(ctx, UserRef(3), store)
	assert.ErrorIs(t, err, ErrOutOfPairingCodes)
}

func TestBorrowPairingCode_ReclaimedIsolatedSingleton(t *testing.T) {
	store := newMemState()
	// RNG forces 15, then 16, then 14; lifetime of 100s means a third
	// call at t=1100 reclaims the first code (created at t=1000) but not
	// the second (created at t=1001). At reclaim time 14 is still free, so
	// 15 first merges back into [0,15]; drawing 14 in the same call then
	// splits that into [0,13] and a lone [15,15].
	rng := &fixedRand{ints: []int32{15, 15, 16, 16, 14, 14}}
	now := &fixedNow{seq: []int64{1000}}
	alloc, err := NewExtended("fam2", 0, 9999, 100, now, rng, nil)
	require.NoError(t, err)
	defer alloc.Close()
	ctx := context.Background()

	_, err = alloc.BorrowPairingCode(ctx, UserRef(1), store)
	require.NoError(t, err)

	now.seq = []int64{1001}
	_, err = alloc.BorrowPairingCode(ctx, UserRef(2), store)
	require.NoError(t, err)

	now.seq = []int64{1100}
	code, err := alloc.BorrowPairingCode(ctx, UserRef(3), store)
	require.NoError(t, err)
	assert.Equal(t, "0014", code)

	found := map[string]bool{}
	for _, r := range store.selectFamily("fam2") {
		found[rangeKey(r)] = true
	}
	assert.True(t, found["0-13"], "%+v", store.ranges)
	assert.True(t, found["15-15"], "reclaimed 15 must be an isolated singleton: %+v", store.ranges)
	assert.True(t, found["17-9999"], "%+v", store.ranges)

	vals := map[int32]bool{}
	for _, c := range store.codes {
		if c.Family == "fam2" {
			vals[c.Val] = true
		}
	}
	assert.Equal(t, map[int32]bool{14: true, 16: true}, vals)
}

func TestBorrowPairingCode_ReclamationMergesBothNeighbors(t *testing.T) {
	store := newMemState()
	rng := &fixedRand{ints: []int32{15, 15}}
	now := &fixedNow{seq: []int64{1000}}
	alloc, err := NewExtended("fam3", 0, 9999, 100, now, rng, nil)
	require.NoError(t, err)
	defer alloc.Close()
	ctx := context.Background()

	_, err = alloc.BorrowPairingCode(ctx, UserRef(1), store)
	require.NoError(t, err)

	rng.ints = []int32{30, 30}
	now.seq = []int64{2000}
	code, err := alloc.BorrowPairingCode(ctx, UserRef(2), store)
	require.NoError(t, err)
	assert.Equal(t, "0030", code)

	found := map[string]bool{}
	for _, r := range store.selectFamily("fam3") {
		found[rangeKey(r)] = true
	}
	assert.True(t, found["0-29"], "%+v", store.ranges)
	assert.True(t, found["31-9999"], "%+v", store.ranges)
}

func TestBorrowPairingCode_ClockGoesBackwardResetsFamily(t *testing.T) {
	store := newMemState()
	rng := &fixedRand{ints: []int32{42, 42}}
	now := &fixedNow{seq: []int64{9999}}
	alloc, err := NewExtended("fam4", 0, 9999, 300, now, rng, nil)
	require.NoError(t, err)
	defer alloc.Close()
	ctx := context.Background()

	_, err = alloc.BorrowPairingCode(ctx, UserRef(1), store)
	require.NoError(t, err)

	now.seq = []int64{9998}
	code, err := alloc.BorrowPairingCode(ctx, UserRef(2), store)
	require.NoError(t, err)
	assert.Equal(t, "0042", code)

	var live int
	for _, c := range store.codes {
		if c.Family == "fam4" {
			live++
		}
	}
	assert.Equal(t, 1, live)
}

func TestBorrowPairingCode_DifferentFamiliesAreIndependent(t *testing.T) {
	store := newMemState()
	now := &fixedNow{seq: []int64{1000}}
	rngA := &fixedRand{ints: []int32{15, 15}}
	allocA, err := NewExtended("famA", 0, 9999, 300, now, rngA, nil)
	require.NoError(t, err)
	defer allocA.Close()

	_, err = allocA.BorrowPairingCode(context.Background(), UserRef(1), store)
	require.NoError(t, err)

	assert.Empty(t, store.selectFamily("famB"))
}

func TestNewExtended_RejectsBadBounds(t *testing.T) {
	_, err := NewExtended("fam-bounds", -1, 10, 300, SystemNowSource{}, SystemRandSource{}, nil)
	var invalidBounds *InvalidBoundsError
	assert.ErrorAs(t, err, &invalidBounds)

	_, err = NewExtended("fam-bounds-2", 10, 5, 300, SystemNowSource{}, SystemRandSource{}, nil)
	assert.ErrorAs(t, err, &invalidBounds)
}

func TestNewExtended_SameFamilyRejectedUntilClosed(t *testing.T) {
	alloc, err := NewExtended("fam-unique", 0, 9, 300, SystemNowSource{}, SystemRandSource{}, nil)
	require.NoError(t, err)

	_, err = NewExtended("fam-unique", 0, 9, 300, SystemNowSource{}, SystemRandSource{}, nil)
	assert.ErrorIs(t, err, ErrSameNamedFamilyExists)

	alloc.Close()

	alloc2, err := NewExtended("fam-unique", 0, 9, 300, SystemNowSource{}, SystemRandSource{}, nil)
	require.NoError(t, err)
	alloc2.Close()
}

func rangeKey(r *CodeRange) string {
	return strconv.Itoa(int(r.Left)) + "-" + strconv.Itoa(int(r.Right))
}
