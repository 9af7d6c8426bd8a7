package system

import (
	"errors"
	"net"
	"strings"
)

// LocalIPv4 returns the first non-loopback IPv4 address of an interface
// that is up.
func LocalIPv4() (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		if ip := firstIPv4(addrs); ip != "" {
			return ip, nil
		}
	}
	return "", errors.New("no IPv4 address found")
}

func firstIPv4(addrs []net.Addr) string {
	for _, addr := range addrs {
		var ip net.IP
		switch v := addr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}
		if ip4 := ip.To4(); ip4 != nil && !ip4.IsLoopback() {
			return ip4.String()
		}
	}
	return ""
}

// WebURL builds the URL of the web UI for a host IP and a listen address
// such as ":80" or "0.0.0.0:8080". Without an IP there is no URL.
func WebURL(ip, listenAddr string) string {
	host := strings.TrimSpace(ip)
	if host == "" {
		return ""
	}
	port := ""
	if _, p, err := net.SplitHostPort(listenAddr); err == nil {
		port = p
	}
	if port == "" || port == "80" {
		return "http://" + host + "/"
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}
