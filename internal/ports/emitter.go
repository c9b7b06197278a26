package ports

// Emitter sends one outbound bridge message.
type Emitter interface {
	Emit(command string, payload any) error
}
