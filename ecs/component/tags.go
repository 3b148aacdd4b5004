package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// CameraTarget marks the entity the camera follows.
type CameraTarget struct{}

var CameraTargetComponent = NewComponent[CameraTarget]()

// Collidable marks a level cell that needs a static collider.
type Collidable struct{}

var CollidableComponent = NewComponent[Collidable]()

type Alive struct{}

var AliveComponent = NewComponent[Alive]()

type Dead struct{}

var DeadComponent = NewComponent[Dead]()

// Configured is added once an entity's level setup has run.
type Configured struct{}

var ConfiguredComponent = NewComponent[Configured]()
