package auth

import "net/http"

// Required reports whether a request with the given HTTP method must present
// a valid bearer token.
//
// No signing secret means the server runs open and nothing requires auth.
// Otherwise GET requests are exempt while readOnlyWithoutAuth is set; every
// other method must authenticate.
func Required(enabled, readOnlyWithoutAuth bool, method string) bool {
	if !enabled {
		return false
	}
	if readOnlyWithoutAuth && method == http.MethodGet {
		return false
	}
	return true
}
