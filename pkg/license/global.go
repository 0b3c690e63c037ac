package license

import (
	"sync/atomic"
)

var (
	globalLicenser = defaultGlobalLicenser()
)

type licenserHolder struct{ value Licenser }

func defaultGlobalLicenser() *atomic.Value {
	v := &atomic.Value{}
	v.Store(licenserHolder{&UnverifiedLicenser{}})
	return v
}

func GetLicenser() Licenser {
	return globalLicenser.Load().(licenserHolder).value
}

func SetLicenser(licenser Licenser) {
	globalLicenser.Store(licenserHolder{licenser})
}
