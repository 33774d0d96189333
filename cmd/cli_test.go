package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsRequireLoginWithoutSession(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "keys", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestLoginRequiresOrgAndToken(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "login")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--org is required")

	_, _, err = executeCLI(t, home, "login", "--org", "org_1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--token is required")
}

func TestLoginPersistsSessionAndToken(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "login", "--org", "org_1", "--email", "dev@example.com", "--token", "tok_test_123")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged in to org_1")

	stdout, _, err = executeCLI(t, home, "account", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "org_1")
	assert.Contains(t, stdout, "dev@example.com")

	// The token lands in the file secret store, not the session file.
	sessionData, err := os.ReadFile(filepath.Join(home, ".felora", "session.toml"))
	require.NoError(t, err)
	assert.NotContains(t, string(sessionData), "tok_test_123")

	entries, err := os.ReadDir(filepath.Join(home, ".felora", "secrets"))
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestLoginDemoThenLogout(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "login", "--demo")
	require.NoError(t, err)
	assert.Contains(t, stdout, "demo mode")

	stdout, _, err = executeCLI(t, home, "account", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "org_demo")
	assert.Contains(t, stdout, "demo")

	stdout, _, err = executeCLI(t, home, "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged out")

	_, _, err = executeCLI(t, home, "keys", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestDemoEnvOverrideWithoutSessionFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("FELORA_DEMO", "1")

	stdout, _, err := executeCLI(t, home, "keys", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "flr_live_a1b2c3d4")
}

func TestKeysListShowsDemoKeys(t *testing.T) {
	home := demoHome(t)

	stdout, _, err := executeCLI(t, home, "keys", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "flr_live_a1b2c3d4")
	assert.Contains(t, stdout, "Production API Key")
	assert.Contains(t, stdout, "Active")
}

func TestKeysCreateRequiresName(t *testing.T) {
	home := demoHome(t)

	_, _, err := executeCLI(t, home, "keys", "create")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"name\" not set")
}

func TestKeysCreatePrintsSecretOnce(t *testing.T) {
	home := demoHome(t)

	stdout, _, err := executeCLI(t, home, "keys", "create", "--name", "CI Key")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Created key")
	assert.Contains(t, stdout, "Secret:")
	assert.Contains(t, stdout, "not retrievable later")
}

func TestKeysCreateJSONOutput(t *testing.T) {
	home := demoHome(t)

	stdout, _, err := executeCLI(t, home, "keys", "create", "--name", "CI Key", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"keyId\"")
}

func TestKeysRevokeAbortsWithoutConfirmation(t *testing.T) {
	home := demoHome(t)

	stdout, _, err := executeCLI(t, home, "keys", "revoke", "flr_live_a1b2c3d4")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Aborted.")
}

func TestKeysRevokeWithYes(t *testing.T) {
	home := demoHome(t)

	_, stderr, err := executeCLI(t, home, "keys", "revoke", "flr_live_a1b2c3d4", "--yes")
	require.NoError(t, err)
	assert.Contains(t, stderr, "API key revoked")

	stdout, _, err := executeCLI(t, home, "keys", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "flr_live_e5f6g7h8")
}

func TestUsageShowsMetrics(t *testing.T) {
	home := demoHome(t)

	stdout, _, err := executeCLI(t, home, "usage")
	require.NoError(t, err)
	assert.Contains(t, stdout, "API requests")
	assert.Contains(t, stdout, "73%")
	assert.NotContains(t, stdout, "Approaching plan limits")
}

func TestUsageJSONOutput(t *testing.T) {
	home := demoHome(t)

	stdout, _, err := executeCLI(t, home, "usage", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"api_requests\"")
}

func TestPlanListMarksCurrentAndPopular(t *testing.T) {
	home := demoHome(t)

	stdout, _, err := executeCLI(t, home, "plan", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Starter")
	assert.Contains(t, stdout, "Professional")
	assert.Contains(t, stdout, "Enterprise")
	assert.Contains(t, stdout, "Most Popular")
	assert.Contains(t, stdout, "(current plan)")
}

func TestPlanSelectSamePlanIsNoop(t *testing.T) {
	home := demoHome(t)

	stdout, _, err := executeCLI(t, home, "plan", "select", "starter")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Already on plan starter")
}

func TestPlanSelectUnknownPlan(t *testing.T) {
	home := demoHome(t)

	_, _, err := executeCLI(t, home, "plan", "select", "mega")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plan not found")
}

func TestPlanSelectSwitchesWithYes(t *testing.T) {
	home := demoHome(t)

	stdout, stderr, err := executeCLI(t, home, "plan", "select", "professional", "--yes")
	require.NoError(t, err)
	assert.Contains(t, stdout, "You're switching from Starter ($29/month) to Professional ($99/month)")
	assert.Contains(t, stdout, "prorated")
	assert.Contains(t, stdout, "Professional")
	assert.Contains(t, stderr, "Subscription updated successfully!")
}

func TestSubscriptionShowDemo(t *testing.T) {
	home := demoHome(t)

	stdout, _, err := executeCLI(t, home, "subscription", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Starter")
	assert.Contains(t, stdout, "Active")
	assert.Contains(t, stdout, "renews:")
}

func TestSubscriptionCancelWithYes(t *testing.T) {
	home := demoHome(t)

	stdout, stderr, err := executeCLI(t, home, "subscription", "cancel", "--yes")
	require.NoError(t, err)
	assert.Contains(t, stderr, "canceled at the end of the current period")
	assert.Contains(t, stdout, "cancels at the end of the current period")
}

func TestInvoicesListShowsFormattedAmounts(t *testing.T) {
	home := demoHome(t)

	stdout, _, err := executeCLI(t, home, "invoices")
	require.NoError(t, err)
	assert.Contains(t, stdout, "FLR-0001")
	assert.Contains(t, stdout, "$29.00")
	assert.Contains(t, stdout, "Paid")
	assert.Contains(t, stdout, "Open")
}

func TestPaymentListShowsDemoMethods(t *testing.T) {
	home := demoHome(t)

	stdout, _, err := executeCLI(t, home, "payment", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Visa •••• 4242")
	assert.Contains(t, stdout, "Mastercard •••• 5555")
	assert.Contains(t, stdout, "(default)")
}

func TestPaymentAddHappyPath(t *testing.T) {
	home := demoHome(t)

	_, stderr, err := executeCLI(t, home, append([]string{"payment", "add"}, demoCardFlags("4242424242424242")...)...)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Payment method added successfully!")

	stdout, _, err := executeCLI(t, home, "payment", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "4242")
}

func TestPaymentAddDeclinedCardShowsProviderMessage(t *testing.T) {
	home := demoHome(t)

	_, stderr, err := executeCLI(t, home, append([]string{"payment", "add"}, demoCardFlags("4000000000000002")...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "card declined")
	assert.Contains(t, stderr, "card declined")
}

func TestPaymentAddMissingFieldsFailsBeforeSubmit(t *testing.T) {
	home := demoHome(t)

	_, _, err := executeCLI(t, home, "payment", "add", "--name", "Ada Lovelace")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required fields")
}

func TestPaymentRemoveAbortsWithoutConfirmation(t *testing.T) {
	home := demoHome(t)

	stdout, _, err := executeCLI(t, home, "payment", "remove", "pm_2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Aborted.")
}

func TestPaymentDefaultReassignsSingleDefault(t *testing.T) {
	home := demoHome(t)

	stdout, stderr, err := executeCLI(t, home, "payment", "default", "pm_2")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Default payment method updated")

	var defaults int
	for _, line := range strings.Split(stdout, "\n") {
		if strings.Contains(line, "(default)") {
			defaults++
			assert.Contains(t, line, "pm_2")
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestBillingOverviewJSON(t *testing.T) {
	home := demoHome(t)

	stdout, _, err := executeCLI(t, home, "billing", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"subscription\"")
	assert.Contains(t, stdout, "\"payment_methods\"")
	assert.Contains(t, stdout, "\"usage\"")
}

func TestBillingInfoShowDemo(t *testing.T) {
	home := demoHome(t)

	stdout, _, err := executeCLI(t, home, "billing", "info", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Demo Org")
	assert.Contains(t, stdout, "demo@felora.io")
}

func TestBillingInfoUpdateEchoesNewValues(t *testing.T) {
	home := demoHome(t)

	stdout, _, err := executeCLI(t, home, "billing", "info", "update",
		"--name", "Acme Corp",
		"--email", "billing@acme.test",
		"--country", "US",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Billing information updated.")
	assert.Contains(t, stdout, "Acme Corp")
	assert.Contains(t, stdout, "billing@acme.test")
}

func TestUnknownCommandFails(t *testing.T) {
	home := demoHome(t)

	_, _, err := executeCLI(t, home, "teams")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command \"teams\"")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// demoHome prepares a HOME with a saved demo session, the offline fixture
// every read-path test runs against.
func demoHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	_, _, err := executeCLI(t, home, "login", "--demo")
	require.NoError(t, err)
	return home
}

func demoCardFlags(number string) []string {
	return []string{
		"--name", "Ada Lovelace",
		"--email", "ada@example.com",
		"--line1", "1 Analytical Way",
		"--city", "London",
		"--state", "LDN",
		"--postal-code", "EC1A",
		"--country", "GB",
		"--card-number", number,
		"--exp-month", "12",
		"--exp-year", "2030",
		"--cvc", "123",
	}
}
