package customers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netline-isp/isp-console/internal/shared"
)

func validForm() Form {
	return Form{
		Name:                "Bilal Ahmed",
		Username:            "bilal",
		Password:            "pass1",
		NationalID:          "3520212345671",
		Mobile:              "03001234567",
		Email:               "bilal@example.com",
		Plan:                "pkg-1",
		ConnectionType:      "ct-1",
		ConnectionStartDate: "2024-03-01",
	}
}

func TestCheckStepOnlyReportsActiveStep(t *testing.T) {
	v := shared.NewValidator()
	f := Form{Name: "Bilal", Username: "bi"}

	errs := f.CheckStep(v, ModeCreate, 0)
	assert.Equal(t, shared.FormErrors{
		"username":   "Username must be at least 3 characters",
		"password":   "Password is required",
		"nationalId": "National ID is required",
	}, errs)
	assert.NotContains(t, errs, "mobile")
}

func TestFieldMessages(t *testing.T) {
	v := shared.NewValidator()
	cases := []struct {
		field, value, want string
	}{
		{"mobile", "", "Mobile number is required"},
		{"mobile", "030012", "Must be between 11 digits"},
		{"mobile", "0300123456a", "Must contain only numbers"},
		{"mobile", "03001234567", ""},
		{"nationalId", "1234", "Must be between 13 characters"},
		{"nationalId", "12345678901234", "Must be between 13 characters"},
		{"email", "", ""},
		{"email", "a b@c.d", "Invalid email format"},
		{"email", "user@isp.pk", ""},
		{"password", "abc", "Password must be at least 4 characters"},
		{"plan", "", "Plan is required"},
		{"connectionType", "", "Connection type is required"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CheckField(v, ModeCreate, tc.field, tc.value), "%s=%q", tc.field, tc.value)
	}
	assert.Equal(t, "", CheckField(v, ModeEdit, "password", ""))
	assert.Equal(t, "Activation date is required", CheckField(v, ModeEdit, "connectionStartDate", ""))
	assert.Equal(t, "", CheckField(v, ModeEdit, "unknown", "x"))
}

func TestCheckThroughFindsFirstFailingStep(t *testing.T) {
	v := shared.NewValidator()
	f := validForm()
	f.Mobile = ""
	f.Plan = ""

	errs, first := f.CheckThrough(v, ModeCreate, len(Steps)-1)
	assert.Equal(t, 1, first)
	assert.Equal(t, "Mobile number is required", errs["mobile"])
	assert.Equal(t, "Plan is required", errs["plan"])

	_, first = validForm().CheckThrough(v, ModeCreate, len(Steps)-1)
	assert.Equal(t, -1, first)
}

func TestUpdateInputOmitsPasswordAndUnchangedPlan(t *testing.T) {
	f := validForm()
	f.Password = ""
	f.OriginalPlan = "pkg-1"
	in, err := f.UpdateInput()
	require.NoError(t, err)
	assert.Empty(t, in.Password)
	assert.Empty(t, in.Plan)

	unix, err := shared.DateInputToUnix("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, unix, in.ConnectionStartDate)

	f.Plan = "pkg-2"
	in, err = f.UpdateInput()
	require.NoError(t, err)
	assert.Equal(t, "pkg-2", in.Plan)
}

func TestCreateInputDefaultsToPending(t *testing.T) {
	in := validForm().CreateInput()
	assert.Equal(t, StatusPending, in.Status)
	assert.Equal(t, "pass1", in.Password)
}

func TestFormFromCustomerRoundTripsActivationDate(t *testing.T) {
	unix, err := shared.DateInputToUnix("2023-11-30")
	require.NoError(t, err)
	c := &Customer{ID: "c1", Plan: PlanRef{ID: "pkg-1"}, ConnectionStartDate: float64(unix)}
	f := FormFromCustomer(c)
	assert.Equal(t, "2023-11-30", f.ConnectionStartDate)
	assert.Equal(t, "pkg-1", f.OriginalPlan)
}
