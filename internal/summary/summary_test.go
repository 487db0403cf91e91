package summary

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	dbpkg "github.com/servquick/household-services/internal/db"
	"github.com/servquick/household-services/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func seedRequests(t *testing.T, db *gorm.DB) (customerID, professionalID uint) {
	t.Helper()

	svc := models.Service{Name: "Plumbing", Price: 250}
	require.NoError(t, db.Create(&svc).Error)

	alice := models.User{Username: "alice", PasswordHash: "x", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&alice).Error)
	customer := models.CustomerProfile{UserID: alice.ID}
	require.NoError(t, db.Create(&customer).Error)

	bob := models.User{Username: "bob", PasswordHash: "x", Role: models.RoleProfessional}
	require.NoError(t, db.Create(&bob).Error)
	professional := models.ProfessionalProfile{UserID: bob.ID, ServiceID: svc.ID, IsApproved: true}
	require.NoError(t, db.Create(&professional).Error)

	mk := func(status string, rating *int) {
		sr := models.ServiceRequest{
			ServiceID:      svc.ID,
			CustomerID:     customer.ID,
			ProfessionalID: &professional.ID,
			DateOfRequest:  time.Now(),
			Status:         status,
			Rating:         rating,
		}
		require.NoError(t, db.Create(&sr).Error)
	}

	four, five := 4, 5
	mk("requested", nil)
	mk("requested", nil)
	mk("accepted", nil)
	mk("rejected", nil)
	mk("closed", &four)
	mk("closed", &five)

	return customer.ID, professional.ID
}

func TestForCustomer(t *testing.T) {
	db := newTestDB(t)
	customerID, _ := seedRequests(t, db)
	svc := NewService(db, NewCache(nil))

	out, err := svc.ForCustomer(context.Background(), customerID)
	require.NoError(t, err)
	assert.Equal(t, StatusCounts{Requested: 2, Accepted: 1, Rejected: 1, Closed: 2}, out.Requests)

	// Someone else's scope is empty.
	empty, err := svc.ForCustomer(context.Background(), customerID+99)
	require.NoError(t, err)
	assert.Equal(t, StatusCounts{}, empty.Requests)
}

func TestForProfessional(t *testing.T) {
	db := newTestDB(t)
	_, professionalID := seedRequests(t, db)
	svc := NewService(db, NewCache(nil))

	out, err := svc.ForProfessional(context.Background(), professionalID)
	require.NoError(t, err)
	assert.Equal(t, StatusCounts{Requested: 2, Accepted: 1, Rejected: 1, Closed: 2}, out.Requests)
	assert.Equal(t, [5]int64{0, 0, 0, 1, 1}, out.Ratings)
}

func TestForAdmin(t *testing.T) {
	db := newTestDB(t)
	seedRequests(t, db)
	svc := NewService(db, NewCache(nil))

	out, err := svc.ForAdmin(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, out.Customers)
	assert.EqualValues(t, 1, out.Professionals)
	assert.Equal(t, StatusCounts{Requested: 2, Accepted: 1, Rejected: 1, Closed: 2}, out.Requests)
}

func TestCachedReads(t *testing.T) {
	db := newTestDB(t)
	customerID, _ := seedRequests(t, db)
	svc := NewService(db, NewCache(newTestRedis(t)))

	first, err := svc.ForCustomer(context.Background(), customerID)
	require.NoError(t, err)

	// New rows within the TTL are invisible: the cached aggregate is served.
	require.NoError(t, db.Create(&models.ServiceRequest{
		ServiceID:     1,
		CustomerID:    customerID,
		DateOfRequest: time.Now(),
		Status:        "requested",
	}).Error)

	second, err := svc.ForCustomer(context.Background(), customerID)
	require.NoError(t, err)
	assert.Equal(t, first.Requests, second.Requests)
}

func TestCacheExpiry(t *testing.T) {
	db := newTestDB(t)
	customerID, _ := seedRequests(t, db)

	mr := miniredis.RunT(t)
	svc := NewService(db, NewCache(redis.NewClient(&redis.Options{Addr: mr.Addr()})))

	_, err := svc.ForCustomer(context.Background(), customerID)
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.ServiceRequest{
		ServiceID:     1,
		CustomerID:    customerID,
		DateOfRequest: time.Now(),
		Status:        "requested",
	}).Error)

	mr.FastForward(cacheTTL + time.Second)

	out, err := svc.ForCustomer(context.Background(), customerID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, out.Requests.Requested)
}

func TestCacheGetSet(t *testing.T) {
	cache := NewCache(newTestRedis(t))
	ctx := context.Background()

	var miss CustomerSummary
	assert.False(t, cache.Get(ctx, "summary:customer:1", &miss))

	in := CustomerSummary{Requests: StatusCounts{Requested: 3}}
	cache.Set(ctx, "summary:customer:1", in)

	var hit CustomerSummary
	require.True(t, cache.Get(ctx, "summary:customer:1", &hit))
	assert.Equal(t, in, hit)
}

func TestNilCacheDegradesGracefully(t *testing.T) {
	cache := NewCache(nil)
	ctx := context.Background()

	var out CustomerSummary
	assert.False(t, cache.Get(ctx, "summary:customer:1", &out))
	cache.Set(ctx, "summary:customer:1", out)
}
