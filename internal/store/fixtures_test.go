package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Fixtures provides factory functions for creating test data.
// All factory methods use testify/require to fail fast on errors.
type Fixtures struct {
	t      *testing.T
	testDB *TestDB
	ctx    context.Context
}

// NewFixtures creates a new Fixtures instance for test data generation.
func NewFixtures(t *testing.T, testDB *TestDB) *Fixtures {
	t.Helper()
	return &Fixtures{
		t:      t,
		testDB: testDB,
		ctx:    context.Background(),
	}
}

// ProfileOpts customizes profile creation.
type ProfileOpts struct {
	Name string
	Role string
}

// CreateProfile inserts an advisor profile unless opts say otherwise.
func (f *Fixtures) CreateProfile(opts ...func(*ProfileOpts)) Profile {
	f.t.Helper()
	o := ProfileOpts{Name: "Test Advisor", Role: ProfileRoleAdvisor}
	for _, fn := range opts {
		fn(&o)
	}

	id := uuid.New()
	profile, err := f.testDB.Store.CreateProfile(f.ctx, CreateProfileParams{
		ID:    id,
		Email: id.String() + "@example.com",
		Name:  o.Name,
		Role:  o.Role,
	})
	require.NoError(f.t, err, "failed to create test profile")
	return profile
}

// CreateClient inserts a client for the advisor.
func (f *Fixtures) CreateClient(advisorID uuid.UUID, name string) Client {
	f.t.Helper()
	id := uuid.New()
	f.testDB.MustExec(f.t,
		`INSERT INTO clients (id, advisor_id, name, email) VALUES ($1, $2, $3, $4)`,
		id, advisorID, name, name+"@example.com")

	client, err := f.testDB.Store.GetClientByID(f.ctx, id)
	require.NoError(f.t, err, "failed to load test client")
	return client
}

// CreateCall inserts an uploaded call for the advisor.
func (f *Fixtures) CreateCall(advisorID uuid.UUID, clientID *uuid.UUID) Call {
	f.t.Helper()
	call, err := f.testDB.Store.CreateCall(f.ctx, CreateCallParams{
		ID:            uuid.New(),
		AdvisorID:     advisorID,
		ClientID:      clientID,
		AudioFilename: "meeting.wav",
		AudioPath:     "/tmp/" + uuid.New().String() + ".wav",
	})
	require.NoError(f.t, err, "failed to create test call")
	return call
}

// CreateSummary writes a summary for the call with the given client response.
func (f *Fixtures) CreateSummary(call Call, clientResponse string) Summary {
	f.t.Helper()
	summary, err := f.testDB.Store.UpsertSummary(f.ctx, UpsertSummaryParams{
		CallID:         call.ID,
		AdvisorID:      call.AdvisorID,
		Summary:        "Discussed a monthly SIP",
		Goals:          []string{"Retirement"},
		ClientResponse: &clientResponse,
	})
	require.NoError(f.t, err, "failed to create test summary")
	return summary
}
