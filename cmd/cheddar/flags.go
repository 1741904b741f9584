package main

import (
	"github.com/spf13/pflag"

	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/config"
)

// addPolicyFlag declares the shared policy-file flag.
func addPolicyFlag(fs *pflag.FlagSet) {
	fs.String("policy", "", "Path to policy YAML (empty: built-in defaults)")
}

// addFormatFlag declares the shared output-format flag.
func addFormatFlag(fs *pflag.FlagSet) {
	fs.String("format", "table", "Output format (table|json)")
}

// policyFromFlags resolves the policy flag into a validated policy.
func policyFromFlags(fs *pflag.FlagSet) (*config.Policy, error) {
	path, _ := fs.GetString("policy")
	if path == "" {
		return config.DefaultPolicy(), nil
	}
	return config.LoadPolicy(path)
}
