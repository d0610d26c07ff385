// Package cookie provides secure HTTP cookie management with tamper-proof
// signing and secret rotation.
//
// SecureOptions returns environment-appropriate attributes (Secure and
// the real domain in production, localhost-friendly settings otherwise);
// ValidateValue rejects oversized values and markup/injection characters.
//
// Signed values append a hex SHA-256 signature so the client cannot alter
// them:
//
//	m, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")})
//	err = m.SetSigned(w, "gatekit_session", sessionID.String())
//	value, err := m.GetSigned(r, "gatekit_session")
//
// The first secret signs new cookies; every secret is tried on
// verification, so rotating secrets keeps existing cookies valid.
package cookie
