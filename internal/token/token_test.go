package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helppsico/mockapi/internal/models"
)

var testClaims = models.Claims{ID: "1", Email: "a@b.com", Name: "a", Role: models.RolePatient}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newService(t *testing.T, c *clock) *Service {
	t.Helper()
	s, err := New([]byte("test-secret"), WithClock(c.now))
	require.NoError(t, err)
	return s
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	c := &clock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	s := newService(t, c)

	tok, err := s.Issue(testClaims)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	want := testClaims
	want.IssuedAt = c.t.Unix()
	want.ExpiresAt = c.t.Add(DefaultTTL).Unix()

	got, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	c.t = c.t.Add(23*time.Hour + 59*time.Minute)
	got, err = s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestVerify_ExpiredAfterTTL(t *testing.T) {
	c := &clock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	s := newService(t, c)

	tok, err := s.Issue(testClaims)
	require.NoError(t, err)

	c.t = c.t.Add(DefaultTTL + time.Second)
	_, err = s.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestIssue_IgnoresTimesInInput(t *testing.T) {
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := newService(t, &clock{t: issued})

	in := testClaims
	in.IssuedAt = 1
	in.ExpiresAt = 2
	tok, err := s.Issue(in)
	require.NoError(t, err)

	got, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, issued.Unix(), got.IssuedAt)
	assert.Equal(t, issued.Add(DefaultTTL).Unix(), got.ExpiresAt)
}

func TestIssue_PayloadShape(t *testing.T) {
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := newService(t, &clock{t: issued})

	tok, err := s.Issue(testClaims)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, map[string]any{
		"id":    "1",
		"email": "a@b.com",
		"name":  "a",
		"role":  "patient",
		"iat":   float64(issued.Unix()),
		"exp":   float64(issued.Add(24 * time.Hour).Unix()),
	}, got)
}

func TestVerify_Rejects(t *testing.T) {
	c := &clock{t: time.Now()}
	s := newService(t, c)
	valid, err := s.Issue(testClaims)
	require.NoError(t, err)

	other, err := New([]byte("another-secret"), WithClock(c.now))
	require.NoError(t, err)
	foreign, err := other.Issue(testClaims)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":  "1",
		"exp": c.t.Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "1"}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"tampered signature", valid[:len(valid)-2] + "xx"},
		{"other secret", foreign},
		{"alg none", none},
		{"missing exp", noExp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Verify(tt.token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidToken))
		})
	}
}

func TestWithTTL(t *testing.T) {
	c := &clock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	s, err := New([]byte("k"), WithClock(c.now), WithTTL(time.Minute))
	require.NoError(t, err)

	tok, err := s.Issue(testClaims)
	require.NoError(t, err)

	c.t = c.t.Add(2 * time.Minute)
	_, err = s.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
