package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/valpere/nalsi/internal/models"
	"github.com/valpere/nalsi/pkg/metrics"
	"github.com/valpere/nalsi/pkg/weather"
)

// ErrUserNotFound is returned when no preferences are stored for a user
var ErrUserNotFound = errors.New("user not found")

// UserService stores per-user preferences: language and default location
type UserService struct {
	db      *gorm.DB
	metrics *metrics.Metrics
	logger  *zerolog.Logger
}

func NewUserService(db *gorm.DB, metricsCollector *metrics.Metrics, logger *zerolog.Logger) *UserService {
	return &UserService{
		db:      db,
		metrics: metricsCollector,
		logger:  logger,
	}
}

// RegisterUser creates the user on first contact and refreshes their profile afterwards.
// A language chosen with /language is never overwritten by the Telegram client language.
func (s *UserService) RegisterUser(ctx context.Context, tgUser *gotgbot.User, language string) error {
	user := &models.User{
		ID:        tgUser.Id,
		Username:  tgUser.Username,
		FirstName: tgUser.FirstName,
		LastName:  tgUser.LastName,
		Language:  language,
	}
	if err := user.Validate(); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "first_name", "last_name", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		return fmt.Errorf("failed to register user %d: %w", tgUser.Id, err)
	}

	s.logger.Debug().
		Int64("user_id", user.ID).
		Str("name", user.GetDisplayName()).
		Msg("Registered user")

	return nil
}

func (s *UserService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	return &user, nil
}

// SetCity saves a default city and forgets any shared coordinates
func (s *UserService) SetCity(ctx context.Context, userID int64, city string) error {
	q := weather.ByName(city)
	if err := q.Validate(); err != nil {
		return err
	}

	return s.update(ctx, userID, map[string]interface{}{
		"city":       q.City(),
		"has_coords": false,
		"latitude":   0,
		"longitude":  0,
	})
}

// SetCoordinates saves a shared location; cityName is the name the provider returned for it
func (s *UserService) SetCoordinates(ctx context.Context, userID int64, lat, lon float64, cityName string) error {
	if err := weather.ByCoords(lat, lon).Validate(); err != nil {
		return err
	}

	return s.update(ctx, userID, map[string]interface{}{
		"city":       strings.TrimSpace(cityName),
		"has_coords": true,
		"latitude":   lat,
		"longitude":  lon,
	})
}

func (s *UserService) SetLanguage(ctx context.Context, userID int64, language string) error {
	if strings.TrimSpace(language) == "" {
		return errors.New("language must not be empty")
	}

	return s.update(ctx, userID, map[string]interface{}{
		"language": language,
	})
}

// GetLanguage returns the stored language, or fallback when none is stored
func (s *UserService) GetLanguage(ctx context.Context, userID int64, fallback string) string {
	user, err := s.GetUser(ctx, userID)
	if err != nil || user.Language == "" {
		return fallback
	}
	return user.Language
}

// SavedQuery returns the user's default location, if any
func (s *UserService) SavedQuery(ctx context.Context, userID int64) (weather.LocationQuery, bool, error) {
	user, err := s.GetUser(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return weather.LocationQuery{}, false, nil
	}
	if err != nil {
		return weather.LocationQuery{}, false, err
	}

	q, ok := user.SavedQuery()
	return q, ok, nil
}

// RefreshUserCount publishes the number of stored users as a gauge
func (s *UserService) RefreshUserCount(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	if s.metrics != nil {
		s.metrics.SetGauge("registered_users", float64(count))
	}
	return count, nil
}

func (s *UserService) update(ctx context.Context, userID int64, fields map[string]interface{}) error {
	result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update user %d: %w", userID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	s.logger.Debug().
		Int64("user_id", userID).
		Int("fields", len(fields)).
		Msg("Updated user preferences")

	return nil
}
