package duolog

import (
	"fmt"
	"net"
	"os"
	"runtime"
)

// HostInfo carries the static process identity facts stamped into log line
// prefixes. Values are captured once at startup and treated as immutable for
// the process lifetime.
type HostInfo struct {
	PID      int
	Platform string // GOOS-GOARCH
	Runtime  string // Go runtime version
	IP       string // first non-loopback IPv4
	Hostname string
}

// DetectHost captures the local process identity. Lookup failures fall back
// to placeholder values; logging must come up even on a degraded host.
func DetectHost() HostInfo {
	h := HostInfo{
		PID:      os.Getpid(),
		Platform: fmt.Sprintf("%s-%s", runtime.GOOS, runtime.GOARCH),
		Runtime:  runtime.Version(),
		IP:       "0.0.0.0",
		Hostname: "localhost",
	}
	if name, err := os.Hostname(); err == nil && name != "" {
		h.Hostname = name
	}
	if addrs, err := net.InterfaceAddrs(); err == nil {
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok || ipNet.IP.IsLoopback() {
				continue
			}
			if v4 := ipNet.IP.To4(); v4 != nil {
				h.IP = v4.String()
				break
			}
		}
	}
	return h
}
