package common

// AuthHeaderName is the HTTP header carrying the bearer credential on
// outbound requests.
const AuthHeaderName = "Authorization"

// CredentialKey is the credential store key under which the bearer token
// is persisted.
const CredentialKey = "authToken"
