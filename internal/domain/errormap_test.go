package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMap_FirstMessageWins(t *testing.T) {
	t.Parallel()

	var m ErrorMap
	assert.True(t, m.Empty())

	m.Add("title", "Title cannot be blank")
	m.Add("title", "Title must be at least 3 characters long")
	m.Add("body", "Body cannot be blank")

	assert.Equal(t, 2, m.Len())
	msg, ok := m.Get("title")
	require.True(t, ok)
	assert.Equal(t, "Title cannot be blank", msg)
	assert.Equal(t, []string{"title", "body"}, m.Fields())
}

func TestErrorMap_MarshalJSONKeepsOrder(t *testing.T) {
	t.Parallel()

	var m ErrorMap
	m.Add("title", "a")
	m.Add("body", "b")
	m.Add("author", "c")

	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"title":"a","body":"b","author":"c"}`, string(b))

	var empty ErrorMap
	b, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))
}

func TestValidationError_UnwrapsToErrValidation(t *testing.T) {
	t.Parallel()

	var m ErrorMap
	m.Add("email", "Email is required")
	err := error(NewValidationError(m))

	assert.True(t, errors.Is(err, ErrValidation))
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.True(t, ve.Errors.Has("email"))
}

func TestNotFoundError(t *testing.T) {
	t.Parallel()

	err := error(&NotFoundError{Resource: "Article"})
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "Article not found or not authorized", err.Error())
}

func TestErrInvalidLogin_IsUnauthorized(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.Is(ErrInvalidLogin, ErrUnauthorized))
	assert.False(t, errors.Is(ErrInvalidCredential, ErrUnauthorized))
}

func TestArticleInput_ContentAlias(t *testing.T) {
	t.Parallel()

	var in ArticleInput
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Hello","content":"legacy body text"}`), &in))
	assert.Equal(t, "legacy body text", in.Body)

	require.NoError(t, json.Unmarshal([]byte(`{"title":"Hello","body":"new","content":"old"}`), &in))
	assert.Equal(t, "new", in.Body)
}

func TestLoginInput_UsernameAlias(t *testing.T) {
	t.Parallel()

	var in LoginInput
	require.NoError(t, json.Unmarshal([]byte(`{"username":"a@example.com","password":"secret123"}`), &in))
	assert.Equal(t, "a@example.com", in.Email)
	assert.Equal(t, "secret123", in.Password)
}
