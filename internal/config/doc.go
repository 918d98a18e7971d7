// Package config resolves where the POS service lives.
//
// A single setting matters: the API base URL. It can come from (highest
// precedence first) an explicit flag, the SNACKDASH_API_URL environment
// variable, the api_url key in ~/.config/snackdash/config.toml, or the
// default http://localhost:5000/api. A missing config file falls through
// silently; a malformed one is an error.
package config
