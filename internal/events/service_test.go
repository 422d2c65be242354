package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epic-events/epic-events/internal/collaborators"
	"github.com/epic-events/epic-events/internal/contracts"
	"github.com/epic-events/epic-events/internal/shared"
)

type mockRepository struct {
	events map[int64]*Event
	nextID int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{events: make(map[int64]*Event)}
}

func (m *mockRepository) FindByID(_ context.Context, id int64) (*Event, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *e
	return &clone, nil
}

func (m *mockRepository) ContractHasEvent(_ context.Context, contractID int64) (bool, error) {
	for _, e := range m.events {
		if e.ContractID == contractID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepository) Create(_ context.Context, e *Event) error {
	m.nextID++
	e.ID = m.nextID
	clone := *e
	m.events[e.ID] = &clone
	return nil
}

func (m *mockRepository) Update(_ context.Context, e *Event) error {
	if _, ok := m.events[e.ID]; !ok {
		return shared.ErrNotFound
	}
	clone := *e
	m.events[e.ID] = &clone
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.events[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *mockRepository) List(_ context.Context, filter ListFilter) ([]Event, error) {
	var out []Event
	for _, e := range m.events {
		if filter.SupportID != nil && !e.AssignedTo(*filter.SupportID) {
			continue
		}
		if filter.Unassigned && e.SupportCollaboratorID != nil {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

type mockContractDirectory struct {
	contracts map[int64]*contracts.Contract
}

func (m *mockContractDirectory) Get(_ context.Context, id int64) (*contracts.Contract, error) {
	c, ok := m.contracts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

type mockSupportDirectory struct {
	supports map[int64]*collaborators.Collaborator
}

func (m *mockSupportDirectory) FindSupport(_ context.Context, id int64) (*collaborators.Collaborator, error) {
	c, ok := m.supports[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc       *Service
	repo      *mockRepository
	contracts *mockContractDirectory
}

func newFixture() fixture {
	repo := newMockRepository()
	contractDir := &mockContractDirectory{contracts: map[int64]*contracts.Contract{
		1: {ID: 1, ClientID: 10, Signed: true},
		2: {ID: 2, ClientID: 11, Signed: false},
		3: {ID: 3, ClientID: 12, Signed: true},
	}}
	supportDir := &mockSupportDirectory{supports: map[int64]*collaborators.Collaborator{
		20: {ID: 20, Name: "Sam", RoleName: "support"},
		21: {ID: 21, Name: "Sal", RoleName: "support"},
	}}
	svc := NewService(repo, contractDir, supportDir)
	svc.now = func() time.Time { return testNow }
	return fixture{svc: svc, repo: repo, contracts: contractDir}
}

func supportActor(id int64) *shared.Actor {
	return &shared.Actor{ID: id, RoleID: 2, RoleName: "support"}
}

func validCreate() CreateInput {
	return CreateInput{
		ContractID:  1,
		Description: "Launch party",
		DateStart:   testNow.Add(24 * time.Hour),
		DateEnd:     testNow.Add(30 * time.Hour),
		Location:    "53 Rue du Château, Candé-sur-Beuvron",
		Attendees:   75,
	}
}

func TestCreateDerivesClientFromContract(t *testing.T) {
	f := newFixture()

	e, err := f.svc.Create(context.Background(), validCreate())
	require.NoError(t, err)
	assert.NotZero(t, e.ID)
	assert.Equal(t, int64(10), e.ClientID)
	assert.Nil(t, e.SupportCollaboratorID)
}

func TestCreateWithSupportAssignment(t *testing.T) {
	f := newFixture()

	in := validCreate()
	supportID := int64(20)
	in.SupportID = &supportID
	e, err := f.svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, e.SupportCollaboratorID)
	assert.Equal(t, int64(20), *e.SupportCollaboratorID)

	// A collaborator outside the support role reads as missing.
	in = validCreate()
	in.ContractID = 3
	badID := int64(42)
	in.SupportID = &badID
	_, err = f.svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateDateRules(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	in := validCreate()
	in.DateEnd = in.DateStart.Add(-time.Hour)
	_, err := f.svc.Create(ctx, in)
	assert.True(t, shared.IsValidation(err))

	in = validCreate()
	in.DateEnd = in.DateStart
	_, err = f.svc.Create(ctx, in)
	assert.True(t, shared.IsValidation(err))

	in = validCreate()
	in.DateStart = testNow.Add(-time.Hour)
	in.DateEnd = testNow.Add(time.Hour)
	_, err = f.svc.Create(ctx, in)
	assert.True(t, shared.IsValidation(err))
}

func TestCreateRequiresSignedContract(t *testing.T) {
	f := newFixture()

	in := validCreate()
	in.ContractID = 2
	_, err := f.svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, shared.ErrStateConflict)
}

func TestCreateUnknownContract(t *testing.T) {
	f := newFixture()

	in := validCreate()
	in.ContractID = 42
	_, err := f.svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateSecondEventOnContract(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, validCreate())
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, validCreate())
	assert.ErrorIs(t, err, shared.ErrStateConflict)
}

func createAssigned(t *testing.T, f fixture, supportID int64) *Event {
	t.Helper()
	in := validCreate()
	in.SupportID = &supportID
	e, err := f.svc.Create(context.Background(), in)
	require.NoError(t, err)
	return e
}

func TestUpdateAsSupportRequiresAssignment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	e := createAssigned(t, f, 20)

	loc := "Somewhere else"
	_, err := f.svc.UpdateAsSupport(ctx, supportActor(21), SupportUpdateInput{ID: e.ID, Location: &loc})
	assert.ErrorIs(t, err, shared.ErrOwnership)

	updated, err := f.svc.UpdateAsSupport(ctx, supportActor(20), SupportUpdateInput{ID: e.ID, Location: &loc})
	require.NoError(t, err)
	assert.Equal(t, "Somewhere else", updated.Location)
}

func TestUpdateAsSupportUnassignedEvent(t *testing.T) {
	f := newFixture()
	e, err := f.svc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	loc := "Somewhere else"
	_, err = f.svc.UpdateAsSupport(context.Background(), supportActor(20), SupportUpdateInput{ID: e.ID, Location: &loc})
	assert.ErrorIs(t, err, shared.ErrOwnership)
}

func TestUpdateAsSupportMergedDateCheck(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	actor := supportActor(20)
	e := createAssigned(t, f, 20)

	// Moving the end before the stored start must fail even though the new
	// end is a well-formed date on its own.
	badEnd := e.DateStart.Add(-time.Hour)
	_, err := f.svc.UpdateAsSupport(ctx, actor, SupportUpdateInput{ID: e.ID, DateEnd: &badEnd})
	assert.True(t, shared.IsValidation(err))

	// Moving the start past the stored end fails the same way.
	badStart := e.DateEnd.Add(time.Hour)
	_, err = f.svc.UpdateAsSupport(ctx, actor, SupportUpdateInput{ID: e.ID, DateStart: &badStart})
	assert.True(t, shared.IsValidation(err))

	// Moving both together is judged on the new pair.
	newStart := testNow.Add(48 * time.Hour)
	newEnd := newStart.Add(6 * time.Hour)
	updated, err := f.svc.UpdateAsSupport(ctx, actor, SupportUpdateInput{ID: e.ID, DateStart: &newStart, DateEnd: &newEnd})
	require.NoError(t, err)
	assert.Equal(t, newStart, updated.DateStart)
	assert.Equal(t, newEnd, updated.DateEnd)
}

func TestUpdateAsSupportAttendeesZeroApplies(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	e := createAssigned(t, f, 20)
	require.Equal(t, 75, e.Attendees)

	zero := 0
	updated, err := f.svc.UpdateAsSupport(ctx, supportActor(20), SupportUpdateInput{ID: e.ID, Attendees: &zero})
	require.NoError(t, err)
	assert.Zero(t, updated.Attendees)

	// Leaving attendees out keeps the stored value.
	loc := "New venue"
	updated, err = f.svc.UpdateAsSupport(ctx, supportActor(20), SupportUpdateInput{ID: e.ID, Location: &loc})
	require.NoError(t, err)
	assert.Zero(t, updated.Attendees)
}

func TestUpdateAsSupportContractChange(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	actor := supportActor(20)
	e := createAssigned(t, f, 20)

	// Unsigned target contract is rejected.
	unsigned := int64(2)
	_, err := f.svc.UpdateAsSupport(ctx, actor, SupportUpdateInput{ID: e.ID, ContractID: &unsigned})
	assert.ErrorIs(t, err, shared.ErrStateConflict)

	// A signed, free contract is accepted and the client follows it.
	free := int64(3)
	updated, err := f.svc.UpdateAsSupport(ctx, actor, SupportUpdateInput{ID: e.ID, ContractID: &free})
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated.ContractID)
	assert.Equal(t, int64(12), updated.ClientID)

	// Restating the current contract is a no-op, not a conflict.
	same := int64(3)
	_, err = f.svc.UpdateAsSupport(ctx, actor, SupportUpdateInput{ID: e.ID, ContractID: &same})
	assert.NoError(t, err)
}

func TestUpdateAsManagementReassignsSupport(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	e := createAssigned(t, f, 20)

	updated, err := f.svc.UpdateAsManagement(ctx, ManagementUpdateInput{ID: e.ID, SupportID: 21})
	require.NoError(t, err)
	require.NotNil(t, updated.SupportCollaboratorID)
	assert.Equal(t, int64(21), *updated.SupportCollaboratorID)

	// Only the assignment changes on this path.
	assert.Equal(t, e.Description, updated.Description)
	assert.Equal(t, e.Location, updated.Location)

	_, err = f.svc.UpdateAsManagement(ctx, ManagementUpdateInput{ID: e.ID, SupportID: 42})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = f.svc.UpdateAsManagement(ctx, ManagementUpdateInput{ID: 999, SupportID: 21})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	e, err := f.svc.Create(ctx, validCreate())
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, e.ID))
	assert.ErrorIs(t, f.svc.Delete(ctx, e.ID), shared.ErrNotFound)
}

func TestListFilters(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	assigned := validCreate()
	supportID := int64(20)
	assigned.SupportID = &supportID
	_, err := f.svc.Create(ctx, assigned)
	require.NoError(t, err)

	unassigned := validCreate()
	unassigned.ContractID = 3
	_, err = f.svc.Create(ctx, unassigned)
	require.NoError(t, err)

	all, err := f.svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := f.svc.List(ctx, ListFilter{SupportID: &supportID})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].AssignedTo(20))

	free, err := f.svc.List(ctx, ListFilter{Unassigned: true})
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Nil(t, free[0].SupportCollaboratorID)
}
