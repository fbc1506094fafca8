package controllers

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PancyStudios/SuspensionBotGo/pkg/models"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeStore struct {
	records        map[string]*models.Suspension
	queues         map[models.DueQueue]map[string]*models.DueEntry
	unsuspendCalls []string
	saveCalls      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records: make(map[string]*models.Suspension),
		queues: map[models.DueQueue]map[string]*models.DueEntry{
			models.QueueSuspensionDue:   {},
			models.QueueUnsuspensionDue: {},
			models.QueueBanDue:          {},
		},
	}
}

func (f *fakeStore) AllSuspensions() ([]*models.Suspension, error) {
	var out []*models.Suspension
	for _, r := range f.records {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeStore) FindOrCreate(discordID string) (*models.Suspension, error) {
	if r, ok := f.records[discordID]; ok {
		return r, nil
	}
	r := models.NewSuspension(discordID)
	f.records[discordID] = r
	return r, nil
}

func (f *fakeStore) Save(record *models.Suspension) error {
	f.records[record.DiscordID] = record
	f.saveCalls++
	return nil
}

func (f *fakeStore) Unsuspend(discordID string) error {
	f.unsuspendCalls = append(f.unsuspendCalls, discordID)
	if r, ok := f.records[discordID]; ok {
		r.Suspended = false
		r.Ends = nil
		r.SuspendedRoles = []string{}
	}
	return nil
}

func (f *fakeStore) DueEntries(queue models.DueQueue) ([]*models.DueEntry, error) {
	var out []*models.DueEntry
	for _, e := range f.queues[queue] {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeStore) RemoveDue(queue models.DueQueue, discordID string) error {
	delete(f.queues[queue], discordID)
	return nil
}

func (f *fakeStore) QueueUnsuspensionDue(discordID string) error {
	if _, ok := f.queues[models.QueueUnsuspensionDue][discordID]; ok {
		return nil
	}
	f.queues[models.QueueUnsuspensionDue][discordID] = &models.DueEntry{
		DiscordID: discordID,
		CreatedAt: testNow,
	}
	return nil
}

func (f *fakeStore) addDue(queue models.DueQueue, entry *models.DueEntry) {
	f.queues[queue][entry.DiscordID] = entry
}

type fakeGuild struct {
	mu      sync.Mutex
	members map[string][]string
	notices []string
	failAdd bool
}

func newFakeGuild() *fakeGuild {
	return &fakeGuild{members: make(map[string][]string)}
}

func (g *fakeGuild) MemberRoles(userID string) ([]string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	roles, ok := g.members[userID]
	if !ok {
		return nil, false, nil
	}
	out := make([]string, len(roles))
	copy(out, roles)
	return out, true, nil
}

func (g *fakeGuild) AddRole(userID, roleID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failAdd {
		return fmt.Errorf("role add rejected")
	}
	for _, r := range g.members[userID] {
		if r == roleID {
			return nil
		}
	}
	g.members[userID] = append(g.members[userID], roleID)
	return nil
}

func (g *fakeGuild) RemoveRole(userID, roleID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	roles := g.members[userID]
	for i, r := range roles {
		if r == roleID {
			g.members[userID] = append(roles[:i], roles[i+1:]...)
			return nil
		}
	}
	return nil
}

func (g *fakeGuild) Notify(message string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.notices = append(g.notices, message)
	return nil
}

func (g *fakeGuild) hasRole(userID, roleID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range g.members[userID] {
		if r == roleID {
			return true
		}
	}
	return false
}

func suspendedRecord(id string, ends time.Time) *models.Suspension {
	r := models.NewSuspension(id)
	r.Suspended = true
	e := ends
	r.Ends = &e
	return r
}

func TestExpirySweepQueuesOnlyExpired(t *testing.T) {
	store := newFakeStore()
	store.records["expired"] = suspendedRecord("expired", testNow.Add(-time.Hour))
	store.records["active"] = suspendedRecord("active", testNow.Add(time.Hour))
	store.records["clean"] = models.NewSuspension("clean")

	sweep := NewExpirySweep(store)
	sweep.Pass(testNow)

	queue := store.queues[models.QueueUnsuspensionDue]
	if _, ok := queue["expired"]; !ok {
		t.Error("expected expired user to be queued")
	}
	if _, ok := queue["active"]; ok {
		t.Error("active suspension must not be queued")
	}
	if _, ok := queue["clean"]; ok {
		t.Error("unsuspended user must not be queued")
	}

	// A second pass over the same state must not duplicate anything.
	sweep.Pass(testNow)
	if len(queue) != 1 {
		t.Errorf("expected 1 queued entry after second pass, got %d", len(queue))
	}
}

func TestDecaySweepSavesOnlyChangedRecords(t *testing.T) {
	store := newFakeStore()

	stale := models.NewSuspension("stale")
	stale.Major.Tier = 2
	past := testNow.Add(-24 * time.Hour)
	stale.Major.Decays = &past
	store.records["stale"] = stale

	fresh := models.NewSuspension("fresh")
	fresh.Minor.Tier = 1
	future := testNow.Add(24 * time.Hour)
	fresh.Minor.Decays = &future
	store.records["fresh"] = fresh

	NewDecaySweep(store).Pass(testNow)

	if stale.Major.Tier != 1 {
		t.Errorf("expected stale tier to decay to 1, got %d", stale.Major.Tier)
	}
	if fresh.Minor.Tier != 1 {
		t.Errorf("fresh tier must not decay, got %d", fresh.Minor.Tier)
	}
	if store.saveCalls != 1 {
		t.Errorf("expected exactly 1 save, got %d", store.saveCalls)
	}
}

func TestSuspensionDrainEnactsForPresentMember(t *testing.T) {
	store := newFakeStore()
	guild := newFakeGuild()
	guild.members["u1"] = []string{"rank-a", "rank-b", "other"}

	store.records["u1"] = suspendedRecord("u1", testNow.Add(48*time.Hour))
	store.addDue(models.QueueSuspensionDue, &models.DueEntry{
		DiscordID: "u1",
		CreatedAt: testNow,
		Category:  "major",
		Reason:    "prueba",
	})

	enforcer := NewEnforcer(guild, store, "susp-role", []string{"rank-a", "rank-b"})
	NewSuspensionDrain(store, enforcer, guild, nil).Pass(testNow)

	if !guild.hasRole("u1", "susp-role") {
		t.Error("expected suspended role to be added")
	}
	if guild.hasRole("u1", "rank-a") || guild.hasRole("u1", "rank-b") {
		t.Error("expected rank roles to be stripped")
	}
	if !guild.hasRole("u1", "other") {
		t.Error("non-rank role must survive")
	}
	if got := store.records["u1"].SuspendedRoles; len(got) != 2 {
		t.Errorf("expected 2 cached roles, got %v", got)
	}
	if len(store.queues[models.QueueSuspensionDue]) != 0 {
		t.Error("expected queue entry to be consumed")
	}
	if len(guild.notices) != 1 {
		t.Errorf("expected 1 notice, got %d", len(guild.notices))
	}
}

func TestSuspensionDrainRetriesWhileAbsent(t *testing.T) {
	store := newFakeStore()
	guild := newFakeGuild()

	store.records["away"] = suspendedRecord("away", testNow.Add(48*time.Hour))
	store.addDue(models.QueueSuspensionDue, &models.DueEntry{DiscordID: "away", CreatedAt: testNow.Add(-365 * 24 * time.Hour)})

	enforcer := NewEnforcer(guild, store, "susp-role", nil)
	drain := NewSuspensionDrain(store, enforcer, guild, nil)

	// However old the entry is, an absent user keeps it alive.
	for i := 0; i < 3; i++ {
		drain.Pass(testNow)
	}

	if len(store.queues[models.QueueSuspensionDue]) != 1 {
		t.Error("expected entry to survive while the user is absent")
	}
}

func TestSuspensionDrainDiscardsStaleEntry(t *testing.T) {
	store := newFakeStore()
	guild := newFakeGuild()
	guild.members["u1"] = []string{"rank-a"}

	store.records["u1"] = models.NewSuspension("u1") // lifted meanwhile
	store.addDue(models.QueueSuspensionDue, &models.DueEntry{DiscordID: "u1", CreatedAt: testNow})

	enforcer := NewEnforcer(guild, store, "susp-role", []string{"rank-a"})
	NewSuspensionDrain(store, enforcer, guild, nil).Pass(testNow)

	if len(store.queues[models.QueueSuspensionDue]) != 0 {
		t.Error("expected stale entry to be discarded")
	}
	if guild.hasRole("u1", "susp-role") {
		t.Error("stale entry must not touch roles")
	}
	if !guild.hasRole("u1", "rank-a") {
		t.Error("stale entry must not strip roles")
	}
}

func TestUnsuspensionDrainRestoresPresentMember(t *testing.T) {
	store := newFakeStore()
	guild := newFakeGuild()
	guild.members["u1"] = []string{"susp-role"}

	record := suspendedRecord("u1", testNow.Add(-time.Hour))
	record.SuspendedRoles = []string{"rank-a", "rank-b"}
	store.records["u1"] = record
	store.addDue(models.QueueUnsuspensionDue, &models.DueEntry{DiscordID: "u1", CreatedAt: testNow.Add(-time.Hour)})

	enforcer := NewEnforcer(guild, store, "susp-role", []string{"rank-a", "rank-b"})
	NewUnsuspensionDrain(store, enforcer, guild, nil).Pass(testNow)

	if guild.hasRole("u1", "susp-role") {
		t.Error("expected suspended role to be removed")
	}
	if !guild.hasRole("u1", "rank-a") || !guild.hasRole("u1", "rank-b") {
		t.Error("expected cached roles to be restored")
	}
	if record.Suspended {
		t.Error("expected record to be cleared")
	}
	if len(store.queues[models.QueueUnsuspensionDue]) != 0 {
		t.Error("expected queue entry to be consumed")
	}
	if len(store.unsuspendCalls) != 1 {
		t.Errorf("expected 1 unsuspend call, got %d", len(store.unsuspendCalls))
	}
}

func TestUnsuspensionDrainKeepsAbsentUserDuringGrace(t *testing.T) {
	store := newFakeStore()
	guild := newFakeGuild()

	// Queued a day ago but the suspension ended only an hour ago; the
	// grace window has barely started.
	store.records["away"] = suspendedRecord("away", testNow.Add(-time.Hour))
	store.addDue(models.QueueUnsuspensionDue, &models.DueEntry{DiscordID: "away", CreatedAt: testNow.Add(-24 * time.Hour)})

	enforcer := NewEnforcer(guild, store, "susp-role", nil)
	NewUnsuspensionDrain(store, enforcer, guild, nil).Pass(testNow)

	if len(store.queues[models.QueueUnsuspensionDue]) != 1 {
		t.Error("expected entry to wait out the grace window")
	}
	if !store.records["away"].Suspended {
		t.Error("record must stay suspended during grace")
	}
}

func TestUnsuspensionDrainClearsAbandonedRecord(t *testing.T) {
	store := newFakeStore()
	guild := newFakeGuild()

	// The end date is well past the grace window, but the entry was only
	// queued an hour ago. The window counts from the end date, so the
	// record is still abandoned.
	store.records["gone"] = suspendedRecord("gone", testNow.Add(-100*24*time.Hour))
	store.addDue(models.QueueUnsuspensionDue, &models.DueEntry{DiscordID: "gone", CreatedAt: testNow.Add(-time.Hour)})

	enforcer := NewEnforcer(guild, store, "susp-role", nil)
	NewUnsuspensionDrain(store, enforcer, guild, nil).Pass(testNow)

	if len(store.queues[models.QueueUnsuspensionDue]) != 0 {
		t.Error("expected abandoned entry to be removed")
	}
	if store.records["gone"].Suspended {
		t.Error("expected abandoned record to be cleared")
	}
}

func TestUnsuspensionDrainDiscardsExtendedSuspension(t *testing.T) {
	store := newFakeStore()
	guild := newFakeGuild()
	guild.members["u1"] = []string{"susp-role"}

	// Extended after the expiry sweep queued it.
	store.records["u1"] = suspendedRecord("u1", testNow.Add(72*time.Hour))
	store.addDue(models.QueueUnsuspensionDue, &models.DueEntry{DiscordID: "u1", CreatedAt: testNow.Add(-time.Hour)})

	enforcer := NewEnforcer(guild, store, "susp-role", nil)
	NewUnsuspensionDrain(store, enforcer, guild, nil).Pass(testNow)

	if len(store.queues[models.QueueUnsuspensionDue]) != 0 {
		t.Error("expected stale entry to be discarded")
	}
	if !guild.hasRole("u1", "susp-role") {
		t.Error("extended suspension must keep its role")
	}
	if !store.records["u1"].Suspended {
		t.Error("extended suspension must stay suspended")
	}
}

func TestSweeperRunsOnFixedDelayAndStops(t *testing.T) {
	var runs int32
	s := NewSweeper("test", 10*time.Millisecond, func() {
		atomic.AddInt32(&runs, 1)
	})

	s.Start()
	time.Sleep(60 * time.Millisecond)
	s.Stop()

	got := atomic.LoadInt32(&runs)
	if got == 0 {
		t.Fatal("expected sweeper to run at least once")
	}

	// No further runs after Stop.
	time.Sleep(30 * time.Millisecond)
	if after := atomic.LoadInt32(&runs); after != got {
		t.Errorf("sweeper ran after Stop: %d -> %d", got, after)
	}
}

func TestSweeperRecoversFromPanic(t *testing.T) {
	var runs int32
	s := NewSweeper("panics", 10*time.Millisecond, func() {
		atomic.AddInt32(&runs, 1)
		panic("boom")
	})

	s.Start()
	time.Sleep(45 * time.Millisecond)
	s.Stop()

	if atomic.LoadInt32(&runs) < 2 {
		t.Error("expected sweeper to keep running after a panic")
	}
}
