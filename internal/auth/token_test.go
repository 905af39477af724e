package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_RoundTripPerRole(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	cases := []Principal{
		{Role: RoleCustomer, SubjectID: 7},
		{Role: RoleChef, SubjectID: 3},
		{Role: RoleCourier, SubjectID: 11},
		{Role: RoleAdmin, SubjectID: 0},
	}
	for _, p := range cases {
		t.Run(string(p.Role), func(t *testing.T) {
			tok, err := iss.Issue(p)
			require.NoError(t, err)

			got, err := iss.Verify(tok)
			require.NoError(t, err)
			assert.Equal(t, p, got)
		})
	}
}

func TestIssuer_ClaimNames(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	tok, err := iss.Issue(Principal{Role: RoleCourier, SubjectID: 5})
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)

	assert.EqualValues(t, 5, claims["driver_id"])
	assert.Equal(t, "delivery", claims["role"])
	assert.NotContains(t, claims, "customer_id")
	assert.Contains(t, claims, "exp")
}

func TestIssuer_RejectsExpired(t *testing.T) {
	iss := NewIssuer("secret", time.Minute)
	issuedAt := time.Now().Add(-time.Hour)
	iss.now = func() time.Time { return issuedAt }

	tok, err := iss.Issue(Principal{Role: RoleCustomer, SubjectID: 1})
	require.NoError(t, err)

	iss.now = time.Now
	_, err = iss.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_RejectsWrongSecret(t *testing.T) {
	tok, err := NewIssuer("one", time.Hour).Issue(Principal{Role: RoleChef, SubjectID: 1})
	require.NoError(t, err)

	_, err = NewIssuer("two", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_RejectsTokenWithoutExpiry(t *testing.T) {
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"customer_id": 1, "role": "customer"})
	tok, err := raw.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewIssuer("secret", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_RejectsMissingSubject(t *testing.T) {
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "chef",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	tok, err := raw.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewIssuer("secret", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_RejectsUnknownRole(t *testing.T) {
	assert.False(t, Role("superuser").Valid())

	_, err := NewIssuer("secret", time.Hour).Issue(Principal{Role: "superuser", SubjectID: 1})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHasher(t *testing.T) {
	h := NewHasher(4)
	hash, err := h.Hash("s3cret!")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, h.Compare(hash, "s3cret!"))
	assert.False(t, h.Compare(hash, "wrong"))
}
