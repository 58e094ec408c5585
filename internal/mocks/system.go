package mocks

import (
	"context"

	"github.com/markdown-blog-api/internal/database"
)

// MockSystem is a SystemInspector with canned answers
type MockSystem struct {
	HealthErr  error
	TableInfos []database.TableInfo
	TablesErr  error
}

func (m *MockSystem) HealthCheck(ctx context.Context) error {
	return m.HealthErr
}

func (m *MockSystem) Tables(ctx context.Context) ([]database.TableInfo, error) {
	if m.TablesErr != nil {
		return nil, m.TablesErr
	}
	return m.TableInfos, nil
}
