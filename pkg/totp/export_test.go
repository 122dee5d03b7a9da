package totp

// CheckRandomSourceFrom exposes the capability check with an injected reader.
var CheckRandomSourceFrom = checkRandomSource
