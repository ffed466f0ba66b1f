package handlers

import (
	"context"
	"fmt"

	"github.com/ostred/syncup/internal/config"
	"github.com/ostred/syncup/internal/gcloud"
	"github.com/ostred/syncup/internal/util/prerequisites"
)

// checkTools is replaceable in tests.
var checkTools = prerequisites.CheckAll

// Doctor handles the doctor command: a read-only report of local tool
// availability, authentication state, and which deployment resources
// currently exist. It never mutates anything.
func Doctor(ctx context.Context, projectID string) error {
	results := checkTools()
	for _, r := range results.Results {
		if r.Found {
			printStatus(true, "%s (%s)", r.Tool.Name, r.Path)
		} else {
			printStatus(false, "%s missing - %s", r.Tool.Name, r.Tool.InstallURL)
		}
	}
	if results.HasErrors() {
		return results.Error()
	}

	cloud := newCloudClient()

	account, err := cloud.Auth().ActiveAccount(ctx)
	if err != nil {
		printStatus(false, "not authenticated: %v", err)
		return err
	}
	printStatus(true, "authenticated as %s", account)

	if projectID == "" {
		fmt.Println("no --project given; skipping resource checks")
		return nil
	}

	cfg := config.Default()
	cfg.ProjectID = projectID

	if err := cloud.Projects().Describe(ctx, projectID); err != nil {
		printStatus(false, "project %s: %v", projectID, err)
		return err
	}
	printStatus(true, "project %s accessible", projectID)

	if ip, err := cloud.Addresses().Describe(ctx, projectID, cfg.Region(), config.AddressName); err == nil {
		printStatus(true, "address %s (%s)", config.AddressName, ip)
	} else if gcloud.IsNotFound(err) {
		printStatus(false, "address %s not provisioned", config.AddressName)
	} else {
		return err
	}

	if inst, err := cloud.Instances().Describe(ctx, projectID, cfg.Zone, config.InstanceName); err == nil {
		printStatus(true, "instance %s (%s)", config.InstanceName, inst.Status)
	} else if gcloud.IsNotFound(err) {
		printStatus(false, "instance %s not provisioned", config.InstanceName)
	} else {
		return err
	}

	for _, rule := range cfg.FirewallRules() {
		if err := cloud.Firewalls().Describe(ctx, projectID, rule.Name); err == nil {
			printStatus(true, "firewall rule %s", rule.Name)
		} else if gcloud.IsNotFound(err) {
			printStatus(false, "firewall rule %s not provisioned", rule.Name)
		} else {
			return err
		}
	}

	return nil
}

func printStatus(ok bool, format string, v ...interface{}) {
	marker := "[--]"
	if ok {
		marker = "[ok]"
	}
	fmt.Printf("%s %s\n", marker, fmt.Sprintf(format, v...))
}
