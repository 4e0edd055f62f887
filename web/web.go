// Package web holds the static application form.
package web

import _ "embed"

//go:embed index.html
var IndexHTML []byte
