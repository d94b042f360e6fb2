// Package auth verifies access tokens issued by the account service. This
// service never issues tokens itself; it only checks that a caller holds a
// valid HS256 access token signed with the shared secret.
package auth
