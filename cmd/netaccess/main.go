package main

import (
	"fmt"
	"os"

	"power_monitor/internal/logger"
	"power_monitor/internal/netaccess"
)

func main() {
	log := logger.Get(logger.InfoLevel)

	if err := netaccess.RequireRoot(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	prov := netaccess.NewProvisioner(log.Infof)
	results := prov.Apply(netaccess.ServiceRules)

	fmt.Println("Firewall provisioning summary:")
	for _, res := range results {
		switch res.Outcome {
		case netaccess.OutcomeCreated:
			fmt.Printf("  [+] %-20s port %-5d created\n", res.Rule.Name, res.Rule.Port)
		case netaccess.OutcomeSkipped:
			fmt.Printf("  [=] %-20s port %-5d already allowed\n", res.Rule.Name, res.Rule.Port)
		case netaccess.OutcomeFailed:
			fmt.Printf("  [!] %-20s port %-5d failed: %v\n", res.Rule.Name, res.Rule.Port, res.Err)
		}
	}

	ips, err := netaccess.LocalIPv4s()
	if err != nil {
		log.Errorw("failed to list host addresses", "err", err)
		return
	}

	fmt.Println("\nHost IPv4 addresses:")
	for _, ip := range ips {
		fmt.Printf("  %s\n", ip)
	}

	if len(ips) > 0 {
		fmt.Println("\nService URLs:")
		for _, u := range netaccess.ServiceURLs(ips[0], netaccess.ServiceRules) {
			fmt.Printf("  %s\n", u)
		}
	}
}
