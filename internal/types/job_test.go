//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validJobRequest() CreateJobRequest {
	return CreateJobRequest{
		Title:        "Backend Developer",
		Company:      "ServerSide Technologies",
		Location:     "Boston, MA",
		Type:         JobTypeFullTime,
		Description:  "Build APIs.",
		Requirements: "Go\nSQL",
	}
}

func TestCreateJobRequest_Validation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *CreateJobRequest)
		wantField string
	}{
		{name: "valid without salary", mutate: func(*CreateJobRequest) {}},
		{name: "valid with salary", mutate: func(r *CreateJobRequest) { r.Salary = "$1" }},
		{name: "free-form type", mutate: func(r *CreateJobRequest) { r.Type = "Internship" }},
		{name: "empty title", mutate: func(r *CreateJobRequest) { r.Title = "" }, wantField: "title"},
		{name: "blank company", mutate: func(r *CreateJobRequest) { r.Company = "   " }, wantField: "company"},
		{name: "empty location", mutate: func(r *CreateJobRequest) { r.Location = "" }, wantField: "location"},
		{name: "empty type", mutate: func(r *CreateJobRequest) { r.Type = "" }, wantField: "type"},
		{name: "empty description", mutate: func(r *CreateJobRequest) { r.Description = "\n" }, wantField: "description"},
		{name: "empty requirements", mutate: func(r *CreateJobRequest) { r.Requirements = "" }, wantField: "requirements"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validJobRequest()
			tt.mutate(&req)
			req.Normalize()

			err := req.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.wantField, verrs[0].Field())
		})
	}
}

func TestApplicationStatus_Valid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusAccepted.Valid())
	assert.True(t, StatusRejected.Valid())
	assert.False(t, ApplicationStatus("withdrawn").Valid())
	assert.False(t, ApplicationStatus("").Valid())
}

func TestApplyRequest_Validation(t *testing.T) {
	assert.NoError(t, (&ApplyRequest{JobID: uuid.New()}).Validate())
	assert.Error(t, (&ApplyRequest{}).Validate(), "nil job id must be rejected")
}

func TestSetStatusRequest_Validation(t *testing.T) {
	assert.NoError(t, (&SetStatusRequest{Status: StatusAccepted}).Validate())
	assert.Error(t, (&SetStatusRequest{Status: "archived"}).Validate())
	assert.Error(t, (&SetStatusRequest{}).Validate())
}
