package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/markdown-blog-api/internal/models"
	"github.com/markdown-blog-api/internal/repository"
	"github.com/rs/zerolog"
)

type settingService struct {
	repo repository.SettingRepository
	log  zerolog.Logger
}

func newSettingService(repo repository.SettingRepository, log zerolog.Logger) *settingService {
	return &settingService{
		repo: repo,
		log:  log.With().Str("service", "setting").Logger(),
	}
}

// All returns every stored setting as a key-value map
func (s *settingService) All(ctx context.Context) (map[string]string, error) {
	settings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	values := make(map[string]string, len(settings))
	for _, setting := range settings {
		values[setting.Key] = setting.Value
	}
	return values, nil
}

// Update stores the writable keys in values and reports the rest as ignored.
// Ignored keys may hold any JSON value; writable keys must be strings.
func (s *settingService) Update(ctx context.Context, values map[string]any) (*models.SettingsUpdateResult, error) {
	if len(values) == 0 {
		return nil, models.NewValidationError("no settings provided")
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !models.WritableSettings[key] {
			continue
		}
		if _, ok := values[key].(string); !ok {
			return nil, models.NewValidationError(fmt.Sprintf("%s must be a string", key))
		}
	}

	result := &models.SettingsUpdateResult{Updated: []string{}, Ignored: []string{}}
	for _, key := range keys {
		if !models.WritableSettings[key] {
			result.Ignored = append(result.Ignored, key)
			continue
		}
		if err := s.repo.Upsert(ctx, key, values[key].(string)); err != nil {
			return nil, err
		}
		result.Updated = append(result.Updated, key)
	}

	if len(result.Ignored) > 0 {
		s.log.Warn().Strs("keys", result.Ignored).Msg("Ignored settings outside the allow-list")
	}
	s.log.Info().Strs("keys", result.Updated).Msg("Settings updated")

	return result, nil
}
