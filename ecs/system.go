package ecs

// System represents a behavior that operates on entities with specific components.
// Systems may declare exported Query and Singleton fields, which the Scheduler
// binds at registration, and keep any other state between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
