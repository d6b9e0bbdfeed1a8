//go:build integration
// +build integration

package integration

import (
	"context"
	"fmt"
	"testing"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/valpere/nalsi/internal/config"
	"github.com/valpere/nalsi/internal/database"
	"github.com/valpere/nalsi/internal/services"
	"github.com/valpere/nalsi/pkg/metrics"
	"github.com/valpere/nalsi/pkg/weather"
	"github.com/valpere/nalsi/tests/helpers"
)

type UserServiceTestSuite struct {
	db          *gorm.DB
	pgContainer testcontainers.Container
	metrics     *metrics.Metrics
	userService *services.UserService
}

func setupUserServiceTest(t *testing.T) *UserServiceTestSuite {
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}

	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err)

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	// Connect runs the migrations
	db, err := database.Connect(&config.DatabaseConfig{
		Host:     pgHost,
		Port:     pgPort.Int(),
		User:     "testuser",
		Password: "testpass",
		Name:     "testdb",
		SSLMode:  "disable",
	}, false)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg, reg)

	return &UserServiceTestSuite{
		db:          db,
		pgContainer: pgContainer,
		metrics:     m,
		userService: services.NewUserService(db, m, helpers.NewSilentTestLogger()),
	}
}

func (suite *UserServiceTestSuite) teardown(t *testing.T) {
	if suite.db != nil {
		_ = database.Close(suite.db)
	}

	if suite.pgContainer != nil {
		require.NoError(t, suite.pgContainer.Terminate(context.Background()))
	}
}

func tgUser(id int64) *gotgbot.User {
	return &gotgbot.User{
		Id:        id,
		FirstName: "Min-jun",
		LastName:  "Kim",
		Username:  fmt.Sprintf("user%d", id),
	}
}

func TestIntegration_UserServiceRegisterUser(t *testing.T) {
	suite := setupUserServiceTest(t)
	defer suite.teardown(t)

	ctx := context.Background()

	require.NoError(t, suite.userService.RegisterUser(ctx, tgUser(1001), "ko-KR"))

	user, err := suite.userService.GetUser(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, "Min-jun", user.FirstName)
	assert.Equal(t, "ko-KR", user.Language)

	// Registering again refreshes the profile but keeps the chosen language
	renamed := tgUser(1001)
	renamed.FirstName = "Minjun"
	require.NoError(t, suite.userService.RegisterUser(ctx, renamed, "en-US"))

	user, err = suite.userService.GetUser(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, "Minjun", user.FirstName)
	assert.Equal(t, "ko-KR", user.Language)
}

func TestIntegration_UserServiceSavedLocation(t *testing.T) {
	suite := setupUserServiceTest(t)
	defer suite.teardown(t)

	ctx := context.Background()
	require.NoError(t, suite.userService.RegisterUser(ctx, tgUser(1002), "ko-KR"))

	_, ok, err := suite.userService.SavedQuery(ctx, 1002)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, suite.userService.SetCoordinates(ctx, 1002, 37.5665, 126.978, "Jung-gu"))

	q, ok, err := suite.userService.SavedQuery(ctx, 1002)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, weather.ByCoords(37.5665, 126.978), q)

	// A saved city replaces the coordinates
	require.NoError(t, suite.userService.SetCity(ctx, 1002, "Busan"))

	q, ok, err = suite.userService.SavedQuery(ctx, 1002)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, weather.ByName("Busan"), q)
}

func TestIntegration_UserServiceLanguage(t *testing.T) {
	suite := setupUserServiceTest(t)
	defer suite.teardown(t)

	ctx := context.Background()

	assert.Equal(t, "en-US", suite.userService.GetLanguage(ctx, 1003, "en-US"))
	assert.ErrorIs(t, suite.userService.SetLanguage(ctx, 1003, "uk-UA"), services.ErrUserNotFound)

	require.NoError(t, suite.userService.RegisterUser(ctx, tgUser(1003), "en-US"))
	require.NoError(t, suite.userService.SetLanguage(ctx, 1003, "uk-UA"))

	assert.Equal(t, "uk-UA", suite.userService.GetLanguage(ctx, 1003, "en-US"))
}

func TestIntegration_UserServiceRefreshUserCount(t *testing.T) {
	suite := setupUserServiceTest(t)
	defer suite.teardown(t)

	ctx := context.Background()
	for id := int64(1); id <= 3; id++ {
		require.NoError(t, suite.userService.RegisterUser(ctx, tgUser(id), "ko-KR"))
	}

	count, err := suite.userService.RefreshUserCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
