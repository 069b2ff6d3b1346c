package utility

import "strings"

// fingerprintSalt is mixed between the header values hashed by GetFingerprint.
const fingerprintSalt = "K2s8#q!vX4^pL0@zR7&nW3*eT6(yU1)oI9-aS5+dF2=gH8~jK4|lZ7" +
	"xC0?vB3<nM6>qW9[eR2]tY5{uI8}oP1;aS4:dF7,gH0.jK3/lL6_zX9"

// GetFingerprint returns the hex digest, computed with alg, of the
// User-Agent, DNT and Accept-Language headers of rc interleaved with a
// fixed salt. Missing headers, or a nil rc, count as empty strings, so the
// result depends only on those three values and alg.
func GetFingerprint(rc *RequestContext, alg HashAlgorithm) (string, error) {
	var sb strings.Builder
	sb.WriteString(fingerprintSalt)
	sb.WriteString(rc.Header("User-Agent"))
	sb.WriteString(fingerprintSalt)
	sb.WriteString(rc.Header("DNT"))
	sb.WriteString(fingerprintSalt)
	sb.WriteString(rc.Header("Accept-Language"))
	sb.WriteString(fingerprintSalt)

	return HexDigest(alg, []byte(sb.String()))
}
