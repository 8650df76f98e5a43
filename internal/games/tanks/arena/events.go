package arena

// EventKind classifies something that happened during a tick.
type EventKind int

const (
	EventFired EventKind = iota
	EventFireRejected
	EventReloaded
	EventHit
	EventReflected
	EventTankDestroyed
	EventObstacleDestroyed
	EventBoxSpawned
	EventBoxExpired
	EventPickup
	EventPowerUpExpired
	EventShieldExpired
	EventStateChanged
)

var eventNames = map[EventKind]string{
	EventFired:             "fired",
	EventFireRejected:      "fire rejected",
	EventReloaded:          "reloaded",
	EventHit:               "hit",
	EventReflected:         "reflected",
	EventTankDestroyed:     "tank destroyed",
	EventObstacleDestroyed: "obstacle destroyed",
	EventBoxSpawned:        "power box spawned",
	EventBoxExpired:        "power box expired",
	EventPickup:            "pickup",
	EventPowerUpExpired:    "power-up expired",
	EventShieldExpired:     "shield expired",
	EventStateChanged:      "state changed",
}

// String returns the event name used in logs.
func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event records one occurrence. Fields not meaningful for a kind are zero,
// except Tank which is NoTank when no tank is involved.
type Event struct {
	Kind  EventKind
	Tank  TankID // actor: shooter, collector, reloading tank
	Index int    // pool slot (bullet, obstacle) where relevant
	Value int    // damage, ammo after reload, remaining health
	Box   BoxType
	Bomb  bool  // explosive bullet
	From  State // for EventStateChanged
	To    State
}

// TickResult describes one call to Simulation.Tick.
type TickResult struct {
	Tick   uint64
	State  State
	Events []Event
}

// Has reports whether an event of the given kind occurred.
func (r TickResult) Has(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
