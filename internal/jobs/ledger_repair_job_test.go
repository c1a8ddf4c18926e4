package jobs

import (
	"errors"
	"testing"
	"time"

	"custody/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLedgerRepairJob_RunOnce(t *testing.T) {
	repairer := new(MockRepairer)
	lock := new(MockRunLock)
	job := NewLedgerRepairJob(repairer, lock, "0 * * * * *", 30*time.Second, zap.NewNop())

	lock.On("Obtain", mock.Anything, ledgerRepairLockKey, time.Minute).Return(nil).Once()
	repairer.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RepairPendingMovementsCommand) bool {
		return cmd.Validate() == nil && cmd.MinAge() == 30*time.Second
	})).Return(commands.RepairReport{Completed: 2, RolledBack: 1}, nil).Once()

	require.NoError(t, job.RunOnce(t.Context()))

	repairer.AssertExpectations(t)
	assert.Equal(t, 1, lock.released)
}

func TestLedgerRepairJob_RunOnceReturnsRepairFailure(t *testing.T) {
	repairer := new(MockRepairer)
	lock := new(MockRunLock)
	job := NewLedgerRepairJob(repairer, lock, "0 * * * * *", 0, zap.NewNop())

	lock.On("Obtain", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	repairer.On("Handle", mock.Anything, mock.Anything).
		Return(commands.RepairReport{Failed: 1}, errors.New("repair movement 42: boom")).Once()

	err := job.RunOnce(t.Context())

	require.ErrorContains(t, err, "boom")
	assert.Equal(t, 1, lock.released, "lock is released on failure too")
}

func TestLedgerRepairJob_SkipsWhileAnotherInstanceRuns(t *testing.T) {
	repairer := new(MockRepairer)
	lock := new(MockRunLock)
	job := NewLedgerRepairJob(repairer, lock, "0 * * * * *", 0, zap.NewNop())

	lock.On("Obtain", mock.Anything, mock.Anything, mock.Anything).Return(errLockHeld).Once()

	require.NoError(t, job.RunOnce(t.Context()))

	repairer.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestLedgerRepairJob_LockFailure(t *testing.T) {
	repairer := new(MockRepairer)
	lock := new(MockRunLock)
	job := NewLedgerRepairJob(repairer, lock, "0 * * * * *", 0, zap.NewNop())

	lock.On("Obtain", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis: connection refused")).Once()

	require.Error(t, job.RunOnce(t.Context()))
	repairer.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestJobManager_StartAllStopsStartedJobsOnFailure(t *testing.T) {
	repairJob := NewLedgerRepairJob(new(MockRepairer), LocalRunLock{}, "0 */5 * * * *", 0, zap.NewNop())
	agingJob := NewAgingReportJob(new(MockAgingReader), LocalRunLock{}, "not a schedule", t.TempDir(), zap.NewNop())

	err := NewJobManager(repairJob, agingJob).StartAll()

	require.ErrorContains(t, err, "aging report")
}

func TestJobManager_StartAndStop(t *testing.T) {
	repairJob := NewLedgerRepairJob(new(MockRepairer), LocalRunLock{}, "0 0 3 * * *", 0, zap.NewNop())
	agingJob := NewAgingReportJob(new(MockAgingReader), LocalRunLock{}, "0 0 6 * * *", t.TempDir(), zap.NewNop())
	manager := NewJobManager(repairJob, agingJob)

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
