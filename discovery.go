/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"net"
	"os"

	"github.com/hashicorp/mdns"
)

const mdnsService = "_constellation._tcp"

// advertiseTXT describes this instance to mDNS browsers.
func advertiseTXT(cfg *Config, instance string) []string {
	return []string{
		"path=" + cfg.prefix + "/",
		"scheme=" + cfg.scheme(),
		"version=" + releaseVersion,
		"id=" + instance,
	}
}

// advertise announces the board on the local network so devices in the
// same room can find it without typing an address. The returned function
// withdraws the announcement.
func advertise(cfg *Config, instance string) (func(), error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	var ips []net.IP
	if ip := net.ParseIP(cfg.bind); ip != nil && !ip.IsUnspecified() {
		ips = []net.IP{ip}
	}

	service, err := mdns.NewMDNSService(host, mdnsService, "", "", cfg.port, ips, advertiseTXT(cfg, instance))
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}

	logf(cfg, "SERVE: Advertising %s as %q on port %d", mdnsService, host, cfg.port)

	return func() {
		if err := server.Shutdown(); err != nil {
			logf(cfg, "ERROR: Stopping mDNS server: %v", err)
		}
	}, nil
}
