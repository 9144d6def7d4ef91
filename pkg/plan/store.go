package plan

import (
	"sync"
	"time"

	"coach/pkg/types"
)

// Store keeps one record per athlete key. Records are never evicted,
// matching the service's poll-then-download lifecycle.
type Store struct {
	mu      sync.RWMutex
	records map[string]types.PlanRecord

	// optional snapshot file written on terminal transitions
	snapshotPath string
}

func NewStore(snapshotPath string) *Store {
	return &Store{
		records:      make(map[string]types.PlanRecord),
		snapshotPath: snapshotPath,
	}
}

func (s *Store) Get(athleteName string) (types.PlanRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[types.AthleteKey(athleteName)]
	return record, ok
}

func (s *Store) SetProcessing(athleteName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[types.AthleteKey(athleteName)] = types.PlanRecord{
		Status:    types.PlanStatusProcessing,
		UpdatedAt: time.Now(),
	}
}

func (s *Store) SetCompleted(athleteName string, message string, excelFilePath string) {
	s.mu.Lock()
	s.records[types.AthleteKey(athleteName)] = types.PlanRecord{
		Status:        types.PlanStatusCompleted,
		Message:       message,
		ExcelFilePath: excelFilePath,
		UpdatedAt:     time.Now(),
	}
	s.mu.Unlock()
	s.snapshot()
}

func (s *Store) SetFailed(athleteName string, errMessage string) {
	s.mu.Lock()
	s.records[types.AthleteKey(athleteName)] = types.PlanRecord{
		Status:    types.PlanStatusFailed,
		Error:     errMessage,
		UpdatedAt: time.Now(),
	}
	s.mu.Unlock()
	s.snapshot()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
