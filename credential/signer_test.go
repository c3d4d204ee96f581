package credential_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/rider-docs-api/credential"
)

func fixedIssuer(signer *credential.Signer) credential.Issuer {
	i := credential.NewIssuer(24*time.Hour, signer)
	i.Now = func() time.Time { return issuedAt }
	return i
}

func TestNewSignerEmptyKeyDisablesSigning(t *testing.T) {
	assert.Nil(t, credential.NewSigner(""))
}

func TestIssuerUnsignedByDefault(t *testing.T) {
	issuer := fixedIssuer(nil)

	tok, s, err := issuer.Issue("rider-1", sampleRefs())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(tok.Signature, "unsigned_"))
	assert.Equal(t, issuedAt.Add(24*time.Hour), *tok.ExpiresAt)

	decoded, err := credential.Decode(s)
	require.NoError(t, err)
	assert.Equal(t, tok, decoded)

	// anything goes without a signer
	decoded.RiderID = "tampered"
	assert.NoError(t, issuer.Check(decoded))
}

func TestIssuerSignedRoundTrip(t *testing.T) {
	issuer := fixedIssuer(credential.NewSigner("s3cret"))

	tok, s, err := issuer.Issue("rider-1", sampleRefs())
	require.NoError(t, err)
	assert.Len(t, tok.Signature, 64)

	decoded, err := credential.Decode(s)
	require.NoError(t, err)
	assert.NoError(t, issuer.Check(decoded))
}

func TestIssuerSignedRejectsTampering(t *testing.T) {
	issuer := fixedIssuer(credential.NewSigner("s3cret"))

	_, s, err := issuer.Issue("rider-1", sampleRefs())
	require.NoError(t, err)
	decoded, err := credential.Decode(s)
	require.NoError(t, err)

	decoded.Documents[1].Status = "verified-by-me"
	assert.ErrorIs(t, issuer.Check(decoded), credential.ErrBadSignature)

	other := fixedIssuer(credential.NewSigner("different"))
	fresh, err := credential.Decode(s)
	require.NoError(t, err)
	assert.ErrorIs(t, other.Check(fresh), credential.ErrBadSignature)
}

func TestIssuerRequiresRider(t *testing.T) {
	_, _, err := fixedIssuer(nil).Issue("", sampleRefs())
	assert.ErrorIs(t, err, credential.ErrMissingRider)
}
