//go:build !integration

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/guttosm/tier-pricing-service/internal/mocks"
	"github.com/guttosm/tier-pricing-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLoggingService_CreateLog(t *testing.T) {
	existing := primitive.NewObjectID()

	tests := []struct {
		name      string
		entry     *model.LogEntry
		repoErr   error
		wantError bool
	}{
		{
			name:  "fills id and timestamp",
			entry: &model.LogEntry{Level: "info", Message: "tiers updated", Actor: "ops", ActionType: model.ActionUpdateTiers},
		},
		{
			name:  "keeps existing id",
			entry: &model.LogEntry{ID: existing, Level: "info", Message: "cart priced"},
		},
		{
			name:      "repository error",
			entry:     &model.LogEntry{Level: "info", Message: "cart priced"},
			repoErr:   errors.New("database error"),
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockLogsRepository(t)
			repo.On("Create", mock.Anything, mock.MatchedBy(func(doc *repository.LogEntryDocument) bool {
				return !doc.ID.IsZero() && !doc.Timestamp.IsZero() && doc.Actor == tt.entry.Actor
			})).Return(tt.repoErr)

			err := NewLoggingService(repo).CreateLog(context.Background(), tt.entry)

			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.False(t, tt.entry.ID.IsZero())
			if tt.name == "keeps existing id" {
				assert.Equal(t, existing, tt.entry.ID)
			}
		})
	}
}

func TestLoggingService_CreateLogs(t *testing.T) {
	t.Run("batch", func(t *testing.T) {
		repo := mocks.NewMockLogsRepository(t)
		repo.On("CreateMany", mock.Anything, mock.MatchedBy(func(docs []*repository.LogEntryDocument) bool {
			return len(docs) == 2 && docs[1].ActionType == model.ActionPriceCart
		})).Return(nil)

		err := NewLoggingService(repo).CreateLogs(context.Background(), []*model.LogEntry{
			{Level: "info", Message: "calculated", ActionType: model.ActionCalculate},
			{Level: "info", Message: "cart priced", ActionType: model.ActionPriceCart},
		})
		assert.NoError(t, err)
	})

	t.Run("empty batch skips the repository", func(t *testing.T) {
		repo := mocks.NewMockLogsRepository(t)
		assert.NoError(t, NewLoggingService(repo).CreateLogs(context.Background(), nil))
	})

	t.Run("repository error", func(t *testing.T) {
		repo := mocks.NewMockLogsRepository(t)
		repo.On("CreateMany", mock.Anything, mock.Anything).Return(errors.New("database error"))

		err := NewLoggingService(repo).CreateLogs(context.Background(), []*model.LogEntry{{Message: "x"}})
		assert.Error(t, err)
	})
}

func TestLoggingService_QueryAndCount(t *testing.T) {
	start := time.Now().Add(-time.Hour)
	opts := model.LogQueryOptions{ActionType: model.ActionUpdateTiers, StartTime: &start, Limit: 10}
	matchOpts := mock.MatchedBy(func(o repository.LogQueryOptions) bool {
		return o.ActionType == model.ActionUpdateTiers && o.StartTime == &start && o.Limit == 10
	})

	t.Run("query converts documents", func(t *testing.T) {
		repo := mocks.NewMockLogsRepository(t)
		repo.On("Query", mock.Anything, matchOpts).Return([]*repository.LogEntryDocument{
			{ID: primitive.NewObjectID(), Message: "tiers updated", Actor: "ops", ActionType: model.ActionUpdateTiers},
		}, nil)

		entries, err := NewLoggingService(repo).QueryLogs(context.Background(), opts)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "ops", entries[0].Actor)
	})

	t.Run("query error", func(t *testing.T) {
		repo := mocks.NewMockLogsRepository(t)
		repo.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("database error"))

		entries, err := NewLoggingService(repo).QueryLogs(context.Background(), opts)
		assert.Error(t, err)
		assert.Nil(t, entries)
	})

	t.Run("count", func(t *testing.T) {
		repo := mocks.NewMockLogsRepository(t)
		repo.On("Count", mock.Anything, matchOpts).Return(int64(7), nil)

		count, err := NewLoggingService(repo).CountLogs(context.Background(), opts)
		require.NoError(t, err)
		assert.Equal(t, int64(7), count)
	})
}
