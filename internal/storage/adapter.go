package storage

import (
	"encoding/json"
	"fmt"

	"github.com/nissyi-gh/taskdeck/internal/model"
	"github.com/sirupsen/logrus"
)

// Adapter serializes the task collection into one named slot.
type Adapter struct {
	slot Slot
	key  string
	log  logrus.FieldLogger
}

// NewAdapter returns an adapter storing tasks under key in slot.
func NewAdapter(slot Slot, key string, log logrus.FieldLogger) *Adapter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Adapter{slot: slot, key: key, log: log.WithField("slot", key)}
}

// Load returns the persisted collection. A missing slot yields an empty
// collection; unreadable or corrupt content is logged and also yields an
// empty collection.
func (a *Adapter) Load() []model.Task {
	raw, found, err := a.slot.Get(a.key)
	if err != nil {
		a.log.WithError(err).Warn("read tasks failed, starting empty")
		return []model.Task{}
	}
	if !found {
		a.log.Debug("no saved tasks")
		return []model.Task{}
	}

	var tasks []model.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		a.log.WithError(err).Warn("saved tasks are corrupt, starting empty")
		return []model.Task{}
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	a.log.WithField("count", len(tasks)).Debug("loaded tasks")
	return tasks
}

// Save overwrites the slot with the full collection.
func (a *Adapter) Save(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	raw, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := a.slot.Set(a.key, raw); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
