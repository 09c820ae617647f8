package datasource

import (
	"fmt"

	"github.com/snapsense/snapsense-server/internal/domain"
	"github.com/snapsense/snapsense-server/internal/id"
)

// LiveEvent implements Source with a random module replay: accuracy between
// 78% and 98% and 20 to 59 EXP.
func (m *MockSource) LiveEvent(profileID string) domain.ActivityEvent {
	m.mu.Lock()
	module := domain.Modules[m.rng.IntN(len(domain.Modules))]
	accuracy := 0.78 + m.rng.Float64()*0.2
	exp := 20 + m.rng.IntN(40)
	m.mu.Unlock()

	return domain.ActivityEvent{
		ID:        id.NewEventID(),
		ProfileID: profileID,
		Message:   fmt.Sprintf("%s replayed at %.0f%% accuracy", module.Label, accuracy*100),
		Module:    module.ID,
		Timestamp: m.now().UTC(),
		Accuracy:  accuracy,
		Exp:       exp,
		Live:      true,
	}
}
