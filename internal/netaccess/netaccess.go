// Package netaccess provisions host firewall rules for the product's
// service ports via iptables.
package netaccess

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// ruleComment tags every rule we create so reruns can recognize them.
const ruleComment = "power-monitor"

// Rule describes one service port to allow inbound.
type Rule struct {
	Name     string
	Port     int
	Protocol string
}

// ServiceRules is the fixed set of ports the deployment exposes.
var ServiceRules = []Rule{
	{Name: "Grafana Dashboard", Port: 3000, Protocol: "tcp"},
	{Name: "Prometheus Metrics", Port: 9090, Protocol: "tcp"},
	{Name: "Backend API", Port: 3001, Protocol: "tcp"},
	{Name: "Frontend Dev Server", Port: 5173, Protocol: "tcp"},
}

// Outcome is the terminal state of one provisioning attempt.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeSkipped Outcome = "skipped-duplicate"
	OutcomeFailed  Outcome = "failed"
)

// Result pairs a rule with its outcome. Err is set only for OutcomeFailed.
type Result struct {
	Rule    Rule
	Outcome Outcome
	Err     error
}

// Runner abstracts command execution so tests can stand in for iptables.
type Runner interface {
	Run(name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Run(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// Provisioner applies the service rules against the host firewall.
type Provisioner struct {
	runner Runner
	logger func(string, ...interface{})
}

// NewProvisioner creates a provisioner that shells out to iptables.
func NewProvisioner(logger func(string, ...interface{})) *Provisioner {
	return &Provisioner{runner: execRunner{}, logger: logger}
}

// NewProvisionerWithRunner is NewProvisioner with an injected runner (tests).
func NewProvisionerWithRunner(runner Runner, logger func(string, ...interface{})) *Provisioner {
	return &Provisioner{runner: runner, logger: logger}
}

// RequireRoot reports an error when the process lacks the privilege to
// modify the firewall.
func RequireRoot() error {
	if os.Geteuid() != 0 {
		return fmt.Errorf("must run as root to modify firewall rules (euid %d)", os.Geteuid())
	}
	return nil
}

// Apply attempts every service rule in order and returns one result per
// rule. A failure never aborts the batch; there is no rollback or retry.
func (p *Provisioner) Apply(rules []Rule) []Result {
	results := make([]Result, 0, len(rules))
	for _, r := range rules {
		results = append(results, p.apply(r))
	}
	return results
}

func (p *Provisioner) apply(r Rule) Result {
	if p.ruleExists(r) {
		p.logger("Rule for %s (port %d) already exists, skipping", r.Name, r.Port)
		return Result{Rule: r, Outcome: OutcomeSkipped}
	}

	if err := p.runner.Run("iptables", ruleArgs("-A", r)...); err != nil {
		p.logger("Failed to add rule for %s (port %d): %v", r.Name, r.Port, err)
		return Result{Rule: r, Outcome: OutcomeFailed, Err: fmt.Errorf("add rule for %q: %w", r.Name, err)}
	}

	p.logger("Allowed inbound %s on port %d for %s", r.Protocol, r.Port, r.Name)
	return Result{Rule: r, Outcome: OutcomeCreated}
}

// ruleExists probes with `iptables -C`, which exits non-zero when the rule
// is absent.
func (p *Provisioner) ruleExists(r Rule) bool {
	return p.runner.Run("iptables", ruleArgs("-C", r)...) == nil
}

func ruleArgs(action string, r Rule) []string {
	return []string{
		action, "INPUT",
		"-p", r.Protocol,
		"--dport", strconv.Itoa(r.Port),
		"-j", "ACCEPT",
		"-m", "comment", "--comment", ruleComment,
	}
}
