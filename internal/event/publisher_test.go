package event

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvaleed/quill/internal/domain"
)

func TestLoggingPublisher_Publish(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewLoggingPublisher(slog.New(slog.NewJSONHandler(&buf, nil)))

	author := uuid.New()
	article := domain.NewArticle(author, "Title", "article body", domain.NewEvent("x", author, nil).Timestamp)
	require.NoError(t, p.Publish(context.Background(), domain.ArticleCreatedEvent(article)))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "event published", entry["msg"])
	assert.Equal(t, domain.EventArticleCreated, entry["event_type"])
	assert.Equal(t, author.String(), entry["actor_id"])
	assert.Equal(t, "events", entry["component"])
	assert.Contains(t, entry["data"], article.ID.String())
}

func TestNoopPublisher(t *testing.T) {
	t.Parallel()

	p := NewNoopPublisher()
	assert.NoError(t, p.Publish(context.Background(), domain.PasswordChangedEvent(uuid.New())))
	assert.NoError(t, p.Close())
}

func TestNew(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	disabled := New(false, logger)
	assert.IsType(t, &NoopPublisher{}, disabled)
	require.NoError(t, disabled.Publish(context.Background(), domain.PasswordChangedEvent(uuid.New())))
	assert.Zero(t, buf.Len(), "disabled publisher must not log events")

	enabled := New(true, logger)
	assert.IsType(t, &LoggingPublisher{}, enabled)
	require.NoError(t, enabled.Publish(context.Background(), domain.PasswordChangedEvent(uuid.New())))
	assert.Contains(t, buf.String(), domain.EventAccountPasswordChanged)
}
