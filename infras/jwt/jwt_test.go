package jwt_test

import (
	"testing"
	"time"

	"hotel/config"
	hotelJWT "hotel/infras/jwt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func sign(t *testing.T, claims hotelJWT.Claims, key string, method jwt.SigningMethod) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(key))
	require.NoError(t, err)

	return token
}

func TestValidateToken(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = secret
	cfg.JWT.Issuer = "hotel"

	svc := hotelJWT.New(cfg)
	now := time.Now()

	valid := hotelJWT.Claims{
		UserID: "u1",
		Email:  "frontdesk@example.com",
		Role:   "receptionist",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "hotel",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))

	wrongIssuer := valid
	wrongIssuer.Issuer = "someone-else"

	noUser := valid
	noUser.UserID = ""

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "valid", token: sign(t, valid, secret, jwt.SigningMethodHS256)},
		{name: "expired", token: sign(t, expired, secret, jwt.SigningMethodHS256), wantErr: hotelJWT.ErrExpiredToken},
		{name: "wrong secret", token: sign(t, valid, "other", jwt.SigningMethodHS256), wantErr: hotelJWT.ErrInvalidToken},
		{name: "wrong issuer", token: sign(t, wrongIssuer, secret, jwt.SigningMethodHS256), wantErr: hotelJWT.ErrInvalidToken},
		{name: "wrong algorithm", token: sign(t, valid, secret, jwt.SigningMethodHS512), wantErr: hotelJWT.ErrInvalidToken},
		{name: "missing user", token: sign(t, noUser, secret, jwt.SigningMethodHS256), wantErr: hotelJWT.ErrInvalidClaim},
		{name: "garbage", token: "not-a-token", wantErr: hotelJWT.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "u1", claims.UserID)
			assert.Equal(t, "receptionist", claims.Role)
		})
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := hotelJWT.ExtractTokenFromHeader("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = hotelJWT.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = hotelJWT.ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)

	_, err = hotelJWT.ExtractTokenFromHeader("Bearer ")
	assert.Error(t, err)
}
