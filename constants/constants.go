package constants

import (
	"github.com/licensex-io/licensex"
)

type Header struct {
	Name  string
	Value string
}

var (
	DefaultResponseHeaders = []Header{
		{Name: "Server", Value: "LicenseX/" + licensex.VERSION},
	}
)
