package plan

import (
	"os"

	"coach/pkg/types"

	log "github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"
)

// snapshot persists the record map so finished plans survive a restart.
// Best effort, a failed write only logs.
func (s *Store) snapshot() {
	if s.snapshotPath == "" {
		return
	}

	s.mu.RLock()
	records := make(map[string]types.PlanRecord, len(s.records))
	for k, v := range s.records {
		records[k] = v
	}
	s.mu.RUnlock()

	data, err := msgpack.Marshal(records)
	if err != nil {
		log.Errorf("fail to encode plan store snapshot: %v", err)
		return
	}
	if err := os.WriteFile(s.snapshotPath, data, 0o644); err != nil {
		log.Errorf("fail to write plan store snapshot: %v", err)
	}
}

// Load restores records from the snapshot file. Processing records are not
// restored, their goroutines died with the previous process.
func (s *Store) Load() error {
	if s.snapshotPath == "" {
		return nil
	}

	data, err := os.ReadFile(s.snapshotPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var records map[string]types.PlanRecord
	if err := msgpack.Unmarshal(data, &records); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, record := range records {
		if record.Status == types.PlanStatusProcessing {
			continue
		}
		s.records[key] = record
	}
	return nil
}
