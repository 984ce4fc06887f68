package component

// AIStateInterrupt is a one-shot request that the AISystem force an agent into
// State on its next update. The AISystem consumes and removes it; the move
// runs the same exit/entry actions as any other transition.
type AIStateInterrupt struct {
	State StateID
}

var AIStateInterruptComponent = NewComponent[AIStateInterrupt]()
