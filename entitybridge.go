package canvas

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// CommitEventType names what changed at a commit boundary.
type CommitEventType uint8

const (
	// CommitNodeCreated fires once per node newly present after a commit
	// that wasn't present before it (insert, duplicate, paste).
	CommitNodeCreated CommitEventType = iota
	// CommitNodeDeleted fires once per node present before a commit and
	// absent after it (delete, cut).
	CommitNodeDeleted
	// CommitGraphChanged fires once per commit regardless of the above,
	// covering moves/resizes/rotations/reorders/undo/redo that don't change
	// the node set.
	CommitGraphChanged
)

// CommitEvent carries one observed change at a commit boundary.
type CommitEvent struct {
	Type   CommitEventType
	NodeID NodeID // zero value for CommitGraphChanged
}

// CommitObserver is notified of graph changes at commit boundaries. It
// generalizes the teacher's per-node interaction-event bridge to whole-graph
// commit events, since this domain's ECS consumers care about node
// lifecycle (created/deleted) and overall graph churn, not per-pointer
// interaction detail.
type CommitObserver interface {
	ObserveCommit(event CommitEvent)
}

// ObservedUndoStack wraps an UndoStack so every Push notifies an observer
// with a CommitGraphChanged event. It embeds *UndoStack so every other
// method (Undo, Redo, Past, Future, ...) passes through unchanged.
type ObservedUndoStack struct {
	*UndoStack
	observer CommitObserver
}

// NewObservedUndoStack wraps stack so every future Push notifies observer.
func NewObservedUndoStack(stack *UndoStack, observer CommitObserver) *ObservedUndoStack {
	return &ObservedUndoStack{UndoStack: stack, observer: observer}
}

// Push notifies the observer of a graph-level commit, then delegates to the
// wrapped stack. Precise per-node created/deleted events are the caller's
// responsibility via NotifyNodeCreated/NotifyNodeDeleted, since a Snapshot
// carries no stable node identity to diff against (RestoreGraph allocates a
// fresh NodeID for every node on every restore) — only the live Graph does.
func (o *ObservedUndoStack) Push(snap Snapshot) {
	if o.observer != nil {
		o.observer.ObserveCommit(CommitEvent{Type: CommitGraphChanged})
	}
	o.UndoStack.Push(snap)
}

// NotifyNodeCreated and NotifyNodeDeleted let a caller that already knows
// the precise node identity (the Canvas, which has the live Graph) emit a
// precise per-node event rather than relying on snapshot diffing.
func NotifyNodeCreated(observer CommitObserver, id NodeID) {
	if observer != nil {
		observer.ObserveCommit(CommitEvent{Type: CommitNodeCreated, NodeID: id})
	}
}

func NotifyNodeDeleted(observer CommitObserver, id NodeID) {
	if observer != nil {
		observer.ObserveCommit(CommitEvent{Type: CommitNodeDeleted, NodeID: id})
	}
}

// DonburiCommitEventType is the Donburi event type for canvas commit events.
// Subscribe to it in an ECS system with events.Subscribe to receive node
// created/deleted/graph-changed notifications, mirroring the teacher's
// ecs.InteractionEventType adapter but keyed to commit events instead of
// pointer/drag/pinch events.
var DonburiCommitEventType = events.NewEventType[CommitEvent]()

// donburiObserver publishes CommitEvents into a Donburi world as typed
// events, the same bridge shape as the teacher's ecs.donburiStore.
type donburiObserver struct {
	world donburi.World
}

// NewDonburiObserver returns a CommitObserver that publishes every commit
// event onto world via DonburiCommitEventType.
func NewDonburiObserver(world donburi.World) CommitObserver {
	return &donburiObserver{world: world}
}

func (d *donburiObserver) ObserveCommit(event CommitEvent) {
	DonburiCommitEventType.Publish(d.world, event)
}
