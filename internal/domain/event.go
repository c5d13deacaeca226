package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a domain event that occurred.
// Events are immutable facts about something that happened.
type Event struct {
	ID        uuid.UUID
	Type      string
	Timestamp time.Time
	ActorID   uuid.UUID
	Data      map[string]any
}

// Event type constants
const (
	EventAccountRegistered      = "account.registered"
	EventAccountUpdated         = "account.updated"
	EventAccountPasswordChanged = "account.password_changed"
	EventAccountLoggedIn        = "account.logged_in"
	EventArticleCreated         = "article.created"
	EventArticleUpdated         = "article.updated"
	EventArticleDeleted         = "article.deleted"
)

// NewEvent creates a new domain event.
func NewEvent(eventType string, actorID uuid.UUID, data map[string]any) Event {
	if data == nil {
		data = make(map[string]any)
	}
	return Event{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		ActorID:   actorID,
		Data:      data,
	}
}

func AccountRegisteredEvent(a *Account) Event {
	return NewEvent(EventAccountRegistered, a.ID, map[string]any{
		"email": a.Email,
		"name":  a.Name,
	})
}

func AccountUpdatedEvent(a *Account, emailChanged bool) Event {
	return NewEvent(EventAccountUpdated, a.ID, map[string]any{
		"email":         a.Email,
		"email_changed": emailChanged,
	})
}

func PasswordChangedEvent(accountID uuid.UUID) Event {
	return NewEvent(EventAccountPasswordChanged, accountID, nil)
}

func AccountLoggedInEvent(accountID uuid.UUID) Event {
	return NewEvent(EventAccountLoggedIn, accountID, nil)
}

func ArticleCreatedEvent(a *Article) Event {
	return NewEvent(EventArticleCreated, a.AuthorID, map[string]any{
		"article_id": a.ID.String(),
		"title":      a.Title,
	})
}

func ArticleUpdatedEvent(a *Article) Event {
	return NewEvent(EventArticleUpdated, a.AuthorID, map[string]any{
		"article_id": a.ID.String(),
	})
}

func ArticleDeletedEvent(a *Article) Event {
	return NewEvent(EventArticleDeleted, a.AuthorID, map[string]any{
		"article_id": a.ID.String(),
	})
}
