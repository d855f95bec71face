package observability

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type alertRule struct {
	Alert       string            `yaml:"alert"`
	Expr        string            `yaml:"expr"`
	For         string            `yaml:"for"`
	Labels      map[string]string `yaml:"labels"`
	Annotations map[string]string `yaml:"annotations"`
}

type ruleFile struct {
	Groups []struct {
		Name  string      `yaml:"name"`
		Rules []alertRule `yaml:"rules"`
	} `yaml:"groups"`
}

// Series the console and the worker export; rules may only query these.
var exported = map[string]bool{
	"console_http_requests_total":                     true,
	"console_http_request_duration_seconds_bucket":    true,
	"console_http_requests_in_flight":                 true,
	"console_backend_requests_total":                  true,
	"console_backend_request_duration_seconds_bucket": true,
	"console_jobs_total":                              true,
	"console_job_duration_seconds_bucket":             true,
	"console_printer_bytes_total":                     true,
}

var seriesName = regexp.MustCompile(`console_[a-z_]+`)

func loadRules(t *testing.T) []alertRule {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "deploy", "prometheus", "alerts", "console.yml"))
	require.NoError(t, err)

	var file ruleFile
	require.NoError(t, yaml.Unmarshal(data, &file))
	for _, g := range file.Groups {
		if g.Name == "console" {
			return g.Rules
		}
	}
	t.Fatal("console alert group missing")
	return nil
}

func TestConsoleAlertRules(t *testing.T) {
	expected := map[string]string{
		"ConsoleHighErrorRate": "critical",
		"BackendUnavailable":   "critical",
		"ConsoleSlowPages":     "warning",
		"ReceiptPrintFailures": "warning",
	}
	rules := loadRules(t)
	require.Len(t, rules, len(expected))

	for _, rule := range rules {
		severity, ok := expected[rule.Alert]
		require.True(t, ok, "unexpected rule %q", rule.Alert)
		assert.Equal(t, severity, rule.Labels["severity"], rule.Alert)
		assert.NotEmpty(t, rule.Annotations["summary"], rule.Alert)
		assert.NotEmpty(t, rule.For, rule.Alert)
	}
}

func TestAlertRulesQueryExportedSeries(t *testing.T) {
	for _, rule := range loadRules(t) {
		names := seriesName.FindAllString(rule.Expr, -1)
		require.NotEmpty(t, names, rule.Alert)
		for _, name := range names {
			assert.True(t, exported[name], "%s queries unknown series %s", rule.Alert, name)
		}
	}
}
