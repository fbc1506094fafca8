// Package controllers contains the background reconciliation loops of the
// bot: the expiry sweep, the tier decay sweep and the two due-queue drains.
package controllers

import (
	"github.com/PancyStudios/SuspensionBotGo/pkg/database"
	"github.com/PancyStudios/SuspensionBotGo/pkg/models"
)

// Store is the persistence surface the controllers need. The production
// implementation delegates to the database package; tests supply fakes.
type Store interface {
	AllSuspensions() ([]*models.Suspension, error)
	FindOrCreate(discordID string) (*models.Suspension, error)
	Save(record *models.Suspension) error
	Unsuspend(discordID string) error

	DueEntries(queue models.DueQueue) ([]*models.DueEntry, error)
	RemoveDue(queue models.DueQueue, discordID string) error
	QueueUnsuspensionDue(discordID string) error
}

// dbStore is the mongo-backed Store used in production.
type dbStore struct{}

// NewStore returns the Store backed by the global data managers.
func NewStore() Store {
	return dbStore{}
}

func (dbStore) AllSuspensions() ([]*models.Suspension, error) {
	return database.GetAllSuspensions()
}

func (dbStore) FindOrCreate(discordID string) (*models.Suspension, error) {
	return database.FindOrCreateSuspension(discordID)
}

func (dbStore) Save(record *models.Suspension) error {
	return database.SaveSuspension(record)
}

func (dbStore) Unsuspend(discordID string) error {
	return database.Unsuspend(discordID)
}

func (dbStore) DueEntries(queue models.DueQueue) ([]*models.DueEntry, error) {
	return database.GetDueEntries(queue)
}

func (dbStore) RemoveDue(queue models.DueQueue, discordID string) error {
	return database.RemoveDueEntry(queue, discordID)
}

func (dbStore) QueueUnsuspensionDue(discordID string) error {
	return database.RecordUnsuspensionDue(discordID)
}
