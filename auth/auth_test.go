package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_And_Compare(t *testing.T) {
	req := require.New(t)
	password := "CorrectHorseBatteryStaple1!"

	hash, err := HashPassword(password)
	req.NoError(err)
	req.Contains(hash, "$argon2id$")

	match, err := ComparePassword(password, hash)
	req.NoError(err)
	req.True(match)

	match, err = ComparePassword("wrong password", hash)
	req.NoError(err)
	req.False(match)
}

func TestHashPassword_Unique_Salt(t *testing.T) {
	req := require.New(t)

	h1, err := HashPassword("same input")
	req.NoError(err)
	h2, err := HashPassword("same input")
	req.NoError(err)

	// Same password, different salt, different hash
	req.NotEqual(h1, h2)
}

func TestComparePassword_Invalid_Format(t *testing.T) {
	req := require.New(t)
	_, err := ComparePassword("whatever", "not-an-encoded-hash")
	req.Error(err)
}

func TestToken_RoundTrip(t *testing.T) {
	req := require.New(t)
	userID := "user-42"

	token, err := GenerateToken(userID, time.Hour)
	req.NoError(err)
	req.NotEmpty(token)

	claims, err := ValidateToken(token)
	req.NoError(err)
	req.Equal(userID, claims.UserID)
	req.Equal("quickchat", claims.Issuer)
}

func TestToken_Expired(t *testing.T) {
	req := require.New(t)

	token, err := GenerateToken("user-42", -time.Minute)
	req.NoError(err)

	_, err = ValidateToken(token)
	req.Error(err)
}

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name    string
		request SignupRequest
		wantErr bool
	}{
		{
			"valid request",
			SignupRequest{FullName: "Ada Lovelace", Email: "ada@example.com", Password: "secret1", Bio: "hi there"},
			false,
		},
		{
			"missing full name",
			SignupRequest{Email: "ada@example.com", Password: "secret1", Bio: "hi"},
			true,
		},
		{
			"malformed email",
			SignupRequest{FullName: "Ada", Email: "not-an-email", Password: "secret1", Bio: "hi"},
			true,
		},
		{
			"password too short",
			SignupRequest{FullName: "Ada", Email: "ada@example.com", Password: "abc", Bio: "hi"},
			true,
		},
		{
			"missing bio",
			SignupRequest{FullName: "Ada", Email: "ada@example.com", Password: "secret1"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSignup(tt.request)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
