package swipe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mdating/mdating-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTxRunner struct {
	beginErr error
}

func (f fakeTxRunner) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	return fn(nil)
}

type quotaUpdate struct {
	count int
	date  time.Time
}

type fakeUserRepo struct {
	users        map[uuid.UUID]*entity.User
	quotaUpdates []quotaUpdate
	updateErr    error

	candidates      []entity.User
	total           int64
	candidatesErr   error
	gotSex          entity.SexType
	gotExcludeIDs   []uuid.UUID
	gotOffset       int
	gotLimit        int
	candidatesCalls int
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmailOrPhone(ctx context.Context, email string, phone *string) (*entity.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UpdateSwipeQuota(ctx context.Context, tx *gorm.DB, id uuid.UUID, count int, swipeDate time.Time) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.quotaUpdates = append(f.quotaUpdates, quotaUpdate{count: count, date: swipeDate})
	return nil
}

func (f *fakeUserRepo) Save(ctx context.Context, user *entity.User) (*entity.User, error) {
	return user, nil
}

func (f *fakeUserRepo) FindCandidates(ctx context.Context, sex entity.SexType, excludeIDs []uuid.UUID, offset, limit int) ([]entity.User, int64, error) {
	f.candidatesCalls++
	f.gotSex = sex
	f.gotExcludeIDs = excludeIDs
	f.gotOffset = offset
	f.gotLimit = limit
	return f.candidates, f.total, f.candidatesErr
}

type swipeRecord struct {
	userID       uuid.UUID
	swipedUserID uuid.UUID
	swipeType    entity.SwipeType
}

type fakeSwipeRepo struct {
	likedBack    bool
	likedBackErr error
	createErr    error
	created      []swipeRecord

	todayIDs    []uuid.UUID
	todayErr    error
	cachedPairs []swipeRecord
	cacheErr    error
}

func (f *fakeSwipeRepo) CreateActivity(ctx context.Context, tx *gorm.DB, userID, swipedUserID uuid.UUID, swipeType entity.SwipeType) (*entity.SwipeActivity, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, swipeRecord{userID: userID, swipedUserID: swipedUserID, swipeType: swipeType})
	return &entity.SwipeActivity{ID: uuid.New(), UserID: userID, SwipedUserID: swipedUserID, SwipeType: swipeType}, nil
}

func (f *fakeSwipeRepo) HasLikedBack(ctx context.Context, tx *gorm.DB, userID, swipedUserID uuid.UUID) (bool, error) {
	return f.likedBack, f.likedBackErr
}

func (f *fakeSwipeRepo) TodaySwipedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return f.todayIDs, f.todayErr
}

func (f *fakeSwipeRepo) CacheSwipedToday(ctx context.Context, userID, swipedUserID uuid.UUID) error {
	if f.cacheErr != nil {
		return f.cacheErr
	}
	f.cachedPairs = append(f.cachedPairs, swipeRecord{userID: userID, swipedUserID: swipedUserID})
	return nil
}

type matchPair struct {
	user1ID uuid.UUID
	user2ID uuid.UUID
}

type fakeMatchRepo struct {
	createErr error
	// alreadyMatched mimics the insert hitting an existing row: no error,
	// nothing inserted.
	alreadyMatched bool
	created        []matchPair
}

func (f *fakeMatchRepo) CreateMatch(ctx context.Context, tx *gorm.DB, user1ID, user2ID uuid.UUID) (*entity.Match, bool, error) {
	if f.createErr != nil {
		return nil, false, f.createErr
	}
	if f.alreadyMatched {
		return &entity.Match{User1ID: user1ID, User2ID: user2ID}, false, nil
	}
	f.created = append(f.created, matchPair{user1ID: user1ID, user2ID: user2ID})
	return &entity.Match{ID: uuid.New(), User1ID: user1ID, User2ID: user2ID}, true, nil
}

func (f *fakeMatchRepo) FindByUsers(ctx context.Context, userID, otherUserID uuid.UUID) ([]entity.Match, error) {
	return nil, nil
}

var testNow = time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)

func newTestUseCase(users *fakeUserRepo, swipes *fakeSwipeRepo, matches *fakeMatchRepo) *swipeUseCase {
	return &swipeUseCase{
		tx:        fakeTxRunner{},
		userRepo:  users,
		swipeRepo: swipes,
		matchRepo: matches,
		now:       func() time.Time { return testNow },
	}
}

func freeUser(count int, lastSwipe *time.Time) *entity.User {
	return &entity.User{
		ID:              uuid.New(),
		Email:           "actor@example.com",
		Name:            "Actor",
		Sex:             entity.SexMale,
		AccountType:     entity.AccountFree,
		DailySwipeCount: count,
		LastSwipeDate:   lastSwipe,
	}
}

func likeRequest(target uuid.UUID) entity.SwipeRequest {
	return entity.SwipeRequest{SwipedUserID: target.String(), SwipeType: entity.SwipeLike}
}

func TestSwipeActorNotFound(t *testing.T) {
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
	swipes := &fakeSwipeRepo{}
	matches := &fakeMatchRepo{}
	u := newTestUseCase(users, swipes, matches)

	_, err := u.Swipe(context.Background(), uuid.New(), likeRequest(uuid.New()))

	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrNotFound)
	assert.Empty(t, swipes.created)
}

func TestSwipeQuotaExceededOnEleventh(t *testing.T) {
	actor := freeUser(10, &testNow)
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{actor.ID: actor}}
	swipes := &fakeSwipeRepo{}
	matches := &fakeMatchRepo{}
	u := newTestUseCase(users, swipes, matches)

	_, err := u.Swipe(context.Background(), actor.ID, likeRequest(uuid.New()))

	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrQuotaExceeded)
	assert.Contains(t, err.Error(), "daily swipe limit of 10 swipes for free accounts")
	assert.Empty(t, swipes.created)
	assert.Empty(t, users.quotaUpdates)
}

func TestSwipeTenthIsAllowed(t *testing.T) {
	actor := freeUser(9, &testNow)
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{actor.ID: actor}}
	swipes := &fakeSwipeRepo{}
	matches := &fakeMatchRepo{}
	u := newTestUseCase(users, swipes, matches)

	result, err := u.Swipe(context.Background(), actor.ID, likeRequest(uuid.New()))

	require.NoError(t, err)
	assert.False(t, result.IsMatch)
	assert.Equal(t, MessageRecorded, result.Message)
	require.Len(t, users.quotaUpdates, 1)
	assert.Equal(t, 10, users.quotaUpdates[0].count)
}

func TestSwipeNewDayResetsCount(t *testing.T) {
	yesterday := testNow.AddDate(0, 0, -1)
	actor := freeUser(10, &yesterday)
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{actor.ID: actor}}
	swipes := &fakeSwipeRepo{}
	matches := &fakeMatchRepo{}
	u := newTestUseCase(users, swipes, matches)

	result, err := u.Swipe(context.Background(), actor.ID, likeRequest(uuid.New()))

	require.NoError(t, err)
	assert.False(t, result.IsMatch)
	require.Len(t, users.quotaUpdates, 1)
	assert.Equal(t, 1, users.quotaUpdates[0].count)
	assert.Equal(t, testNow, users.quotaUpdates[0].date)
}

func TestSwipePremiumIsNeverLimited(t *testing.T) {
	actor := freeUser(99, &testNow)
	actor.AccountType = entity.AccountPremium
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{actor.ID: actor}}
	swipes := &fakeSwipeRepo{}
	matches := &fakeMatchRepo{}
	u := newTestUseCase(users, swipes, matches)

	result, err := u.Swipe(context.Background(), actor.ID, likeRequest(uuid.New()))

	require.NoError(t, err)
	assert.False(t, result.IsMatch)
	require.Len(t, users.quotaUpdates, 1)
	assert.Equal(t, 100, users.quotaUpdates[0].count)
}

func TestSwipeMutualLikeCreatesMatch(t *testing.T) {
	actor := freeUser(0, nil)
	target := uuid.New()
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{actor.ID: actor}}
	swipes := &fakeSwipeRepo{likedBack: true}
	matches := &fakeMatchRepo{}
	u := newTestUseCase(users, swipes, matches)

	result, err := u.Swipe(context.Background(), actor.ID, likeRequest(target))

	require.NoError(t, err)
	assert.True(t, result.IsMatch)
	assert.Equal(t, MessageMatch, result.Message)
	require.Len(t, matches.created, 1)
	assert.Equal(t, actor.ID, matches.created[0].user1ID)
	assert.Equal(t, target, matches.created[0].user2ID)
	require.Len(t, swipes.cachedPairs, 1)
}

func TestSwipePassNeverMatches(t *testing.T) {
	actor := freeUser(0, nil)
	target := uuid.New()
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{actor.ID: actor}}
	swipes := &fakeSwipeRepo{likedBack: true}
	matches := &fakeMatchRepo{}
	u := newTestUseCase(users, swipes, matches)

	result, err := u.Swipe(context.Background(), actor.ID, entity.SwipeRequest{
		SwipedUserID: target.String(),
		SwipeType:    entity.SwipePass,
	})

	require.NoError(t, err)
	assert.False(t, result.IsMatch)
	assert.Equal(t, MessageRecorded, result.Message)
	assert.Empty(t, matches.created)
	require.Len(t, swipes.created, 1)
	assert.Equal(t, entity.SwipePass, swipes.created[0].swipeType)
}

func TestSwipeLikeWithoutReciprocity(t *testing.T) {
	actor := freeUser(0, nil)
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{actor.ID: actor}}
	swipes := &fakeSwipeRepo{likedBack: false}
	matches := &fakeMatchRepo{}
	u := newTestUseCase(users, swipes, matches)

	result, err := u.Swipe(context.Background(), actor.ID, likeRequest(uuid.New()))

	require.NoError(t, err)
	assert.False(t, result.IsMatch)
	assert.Empty(t, matches.created)
}

func TestSwipeExistingMatchStillReportsMatch(t *testing.T) {
	// Two users liking each other near-simultaneously can both reach the
	// match insert, and a repeat LIKE while reciprocity stands hits the
	// existing row every time. The insert does nothing on conflict, so
	// the transaction stays live and the quota update still commits; the
	// caller sees a match, never an internal error.
	actor := freeUser(0, nil)
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{actor.ID: actor}}
	swipes := &fakeSwipeRepo{likedBack: true}
	matches := &fakeMatchRepo{alreadyMatched: true}
	u := newTestUseCase(users, swipes, matches)

	result, err := u.Swipe(context.Background(), actor.ID, likeRequest(uuid.New()))

	require.NoError(t, err)
	assert.True(t, result.IsMatch)
	assert.Equal(t, MessageMatch, result.Message)
	assert.Empty(t, matches.created)
	require.Len(t, users.quotaUpdates, 1)
	require.Len(t, swipes.created, 1)
}

func TestSwipeWrapsUnexpectedStoreFailure(t *testing.T) {
	actor := freeUser(0, nil)
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{actor.ID: actor}}
	storeErr := errors.New("connection reset")
	swipes := &fakeSwipeRepo{createErr: storeErr}
	matches := &fakeMatchRepo{}
	u := newTestUseCase(users, swipes, matches)

	_, err := u.Swipe(context.Background(), actor.ID, likeRequest(uuid.New()))

	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrTransactionFailure)
	assert.ErrorIs(t, err, storeErr)
	assert.Empty(t, users.quotaUpdates)
	assert.Empty(t, swipes.cachedPairs)
}

func TestSwipeCacheFailureDoesNotFailTheSwipe(t *testing.T) {
	actor := freeUser(0, nil)
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{actor.ID: actor}}
	swipes := &fakeSwipeRepo{cacheErr: errors.New("redis down")}
	matches := &fakeMatchRepo{}
	u := newTestUseCase(users, swipes, matches)

	result, err := u.Swipe(context.Background(), actor.ID, likeRequest(uuid.New()))

	require.NoError(t, err)
	assert.Equal(t, MessageRecorded, result.Message)
}

func TestListCandidatesNotFound(t *testing.T) {
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
	u := newTestUseCase(users, &fakeSwipeRepo{}, &fakeMatchRepo{})

	_, err := u.ListCandidates(context.Background(), uuid.New(), 1, 10)

	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrNotFound)
	assert.Equal(t, 0, users.candidatesCalls)
}

func TestListCandidatesExcludesSelfAndTodaySwipes(t *testing.T) {
	actor := freeUser(0, nil)
	swipedToday := uuid.New()
	users := &fakeUserRepo{
		users: map[uuid.UUID]*entity.User{actor.ID: actor},
		total: 6,
	}
	swipes := &fakeSwipeRepo{todayIDs: []uuid.UUID{swipedToday}}
	u := newTestUseCase(users, swipes, &fakeMatchRepo{})

	result, err := u.ListCandidates(context.Background(), actor.ID, 1, 10)

	require.NoError(t, err)
	assert.Equal(t, entity.SexFemale, users.gotSex)
	assert.Contains(t, users.gotExcludeIDs, actor.ID)
	assert.Contains(t, users.gotExcludeIDs, swipedToday)
	assert.Equal(t, int64(6), result.Total)
	assert.Equal(t, int64(1), result.TotalPage)
}

func TestListCandidatesPagination(t *testing.T) {
	actor := freeUser(0, nil)
	actor.Sex = entity.SexFemale
	users := &fakeUserRepo{
		users: map[uuid.UUID]*entity.User{actor.ID: actor},
		total: 12,
	}
	u := newTestUseCase(users, &fakeSwipeRepo{}, &fakeMatchRepo{})

	result, err := u.ListCandidates(context.Background(), actor.ID, 2, 5)

	require.NoError(t, err)
	assert.Equal(t, entity.SexMale, users.gotSex)
	assert.Equal(t, 5, users.gotOffset)
	assert.Equal(t, 5, users.gotLimit)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, int64(3), result.TotalPage)
}

func TestListCandidatesDefaultsPageAndLimit(t *testing.T) {
	actor := freeUser(0, nil)
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{actor.ID: actor}}
	u := newTestUseCase(users, &fakeSwipeRepo{}, &fakeMatchRepo{})

	result, err := u.ListCandidates(context.Background(), actor.ID, 0, 0)

	require.NoError(t, err)
	assert.Equal(t, 0, users.gotOffset)
	assert.Equal(t, 10, users.gotLimit)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.Limit)
}
