// Package discovery centralizes the default listen and dial addresses of
// launchpad processes.
package discovery

import (
	"net"
	"strconv"
	"strings"
)

// ServiceLaunchpad is the landing service identity.
const ServiceLaunchpad = "launchpad"

// DefaultHost is the host launchpad binds and dials when none is configured.
const DefaultHost = "localhost"

var grpcPorts = map[string]int{
	ServiceLaunchpad: 8081,
}

var httpPorts = map[string]int{
	ServiceLaunchpad: 8080,
}

// DefaultGRPCAddr returns the conventional gRPC address for a service.
func DefaultGRPCAddr(service string) string {
	return defaultAddr(strings.TrimSpace(service), grpcPorts)
}

// DefaultHTTPAddr returns the conventional HTTP address for a service.
func DefaultHTTPAddr(service string) string {
	return defaultAddr(strings.TrimSpace(service), httpPorts)
}

// OrDefaultGRPCAddr returns value when set, otherwise the service convention.
func OrDefaultGRPCAddr(value, service string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	return DefaultGRPCAddr(service)
}

// OrDefaultHTTPAddr returns value when set, otherwise the service convention.
func OrDefaultHTTPAddr(value, service string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	return DefaultHTTPAddr(service)
}

func defaultAddr(service string, ports map[string]int) string {
	port, ok := ports[service]
	if !ok || port <= 0 {
		return ""
	}
	return net.JoinHostPort(DefaultHost, strconv.Itoa(port))
}
