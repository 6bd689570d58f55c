package credentials

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestKeeperRoundTrip(t *testing.T) {
	k := NewMemoryKeeper()

	if _, ok := k.AccessToken(); ok {
		t.Error("AccessToken() present on empty keeper")
	}

	k.SetAccessToken("Bearer abc")
	if err := k.SetRefreshToken("refresh-1"); err != nil {
		t.Fatalf("SetRefreshToken: %v", err)
	}

	access, ok := k.AccessToken()
	if !ok || access != "Bearer abc" {
		t.Errorf("AccessToken() = %q, %v; want Bearer abc, true", access, ok)
	}
	refresh, ok := k.RefreshToken()
	if !ok || refresh != "refresh-1" {
		t.Errorf("RefreshToken() = %q, %v; want refresh-1, true", refresh, ok)
	}

	if err := k.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := k.AccessToken(); ok {
		t.Error("access token survived Clear")
	}
	if _, ok := k.RefreshToken(); ok {
		t.Error("refresh token survived Clear")
	}
}

func TestMemoryCookiesExpiry(t *testing.T) {
	c := NewMemoryCookies()
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("accessToken", "tok", time.Minute)

	if _, ok := c.Get("accessToken"); !ok {
		t.Fatal("cookie missing before expiry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("accessToken"); ok {
		t.Error("cookie returned after expiry")
	}
}

func TestFileDurablePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	first, err := NewFileDurable(path)
	require.NoError(t, err)
	require.NoError(t, first.Set("refreshToken", "refresh-2"))

	second, err := NewFileDurable(path)
	require.NoError(t, err)

	got, ok := second.Get("refreshToken")
	require.True(t, ok)
	require.Equal(t, "refresh-2", got)

	require.NoError(t, second.Delete("refreshToken"))
	_, ok = second.Get("refreshToken")
	require.False(t, ok)
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(20 * time.Minute).Truncate(time.Second)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	got, err := TokenExpiry("Bearer " + signed)
	require.NoError(t, err)
	require.True(t, got.Equal(exp), "expiry = %v, want %v", got, exp)

	_, err = TokenExpiry("")
	require.Error(t, err)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{})
	signed, err = noExp.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = TokenExpiry(signed)
	require.Error(t, err)
}
